package logging

import "context"

type contextKey string

const (
	workspaceIDKey contextKey = "workspace_id"
	userIDKey      contextKey = "user_id"
	operationKey   contextKey = "op"
)

// WithScope adds the caller's workspace and user to the context for log
// enrichment. It is never read back for authorization.
func WithScope(ctx context.Context, workspaceID, userID string) context.Context {
	ctx = context.WithValue(ctx, workspaceIDKey, workspaceID)
	return context.WithValue(ctx, userIDKey, userID)
}

// WithOperation tags the context with the engine operation being executed.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

// GetWorkspaceID retrieves the workspace ID from the context.
// Returns empty string if not present.
func GetWorkspaceID(ctx context.Context) string {
	return getString(ctx, workspaceIDKey)
}

// GetUserID retrieves the user ID from the context.
// Returns empty string if not present.
func GetUserID(ctx context.Context) string {
	return getString(ctx, userIDKey)
}

// GetOperation retrieves the operation name from the context.
func GetOperation(ctx context.Context) string {
	return getString(ctx, operationKey)
}

func getString(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
