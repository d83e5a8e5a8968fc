package logging

import (
	"context"
	"testing"
)

func TestWithScope(t *testing.T) {
	ctx := WithScope(context.Background(), "ws-1", "user-1")

	if got := GetWorkspaceID(ctx); got != "ws-1" {
		t.Errorf("GetWorkspaceID() = %q, want %q", got, "ws-1")
	}

	if got := GetUserID(ctx); got != "user-1" {
		t.Errorf("GetUserID() = %q, want %q", got, "user-1")
	}
}

func TestWithOperation(t *testing.T) {
	ctx := WithOperation(context.Background(), "delete")

	if got := GetOperation(ctx); got != "delete" {
		t.Errorf("GetOperation() = %q, want %q", got, "delete")
	}
}

func TestGetters_NotPresent(t *testing.T) {
	ctx := context.Background()

	if got := GetWorkspaceID(ctx); got != "" {
		t.Errorf("GetWorkspaceID() = %q, want empty string", got)
	}
	if got := GetUserID(ctx); got != "" {
		t.Errorf("GetUserID() = %q, want empty string", got)
	}
	if got := GetOperation(ctx); got != "" {
		t.Errorf("GetOperation() = %q, want empty string", got)
	}
}
