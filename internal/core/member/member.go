// Package member defines workspace team members, the entries the assignee
// directory resolves names against.
package member

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a member does not exist in the workspace.
	ErrNotFound = errors.New("member not found")
	// ErrDuplicate is returned when a member with the same name already exists
	// in the workspace (names compare case-insensitively).
	ErrDuplicate = errors.New("member already exists")
)

// Member is a person work items can be assigned to.
type Member struct {
	ID          string    `json:"member_id"`
	WorkspaceID string    `json:"workspace_id"`
	Name        string    `json:"member_name"`
	Team        string    `json:"team,omitempty"`
	Email       string    `json:"email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store defines member persistence.
type Store interface {
	// Add persists a new member. Returns ErrDuplicate on a name clash.
	Add(ctx context.Context, m Member) error

	// List returns the workspace's members ordered by name.
	List(ctx context.Context, workspaceID string) ([]Member, error)

	// Remove deletes a member by id. Returns ErrNotFound if absent.
	Remove(ctx context.Context, workspaceID, id string) error
}
