package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies workspace_id, user_id and op from the event's context
// onto the log event.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	ctx := e.GetCtx()
	if ctx == context.Background() || ctx == nil {
		return
	}

	for _, kv := range [...]struct{ key, val string }{
		{"workspace_id", GetWorkspaceID(ctx)},
		{"user_id", GetUserID(ctx)},
		{"op", GetOperation(ctx)},
	} {
		if kv.val != "" {
			e.Str(kv.key, kv.val)
		}
	}
}
