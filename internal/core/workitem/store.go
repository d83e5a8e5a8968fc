package workitem

import (
	"context"
	"time"
)

// Store defines work item persistence. Every method is scoped to the
// identity's (workspace, user) pair; rows outside it behave as absent.
type Store interface {
	// Create inserts one fully populated item.
	Create(ctx context.Context, item Item) error

	// Get returns the item with the given id.
	// Returns ErrNotFound if it does not exist in scope.
	Get(ctx context.Context, ident Identity, id ID) (Item, error)

	// Closure returns the item and all of its descendants, ordered with
	// OrderClosure. Returns ErrNotFound if the root does not exist in scope.
	Closure(ctx context.Context, ident Identity, id ID) ([]Item, error)

	// DeleteClosure computes and removes the closure of id in one
	// transaction and returns the removed items. Either every row is removed
	// or none is. Returns ErrNotFound if the root does not exist in scope.
	DeleteClosure(ctx context.Context, ident Identity, id ID) ([]Item, error)

	// Update writes exactly the fields present in patch plus updatedAt and
	// returns the re-read row. Returns ErrNotFound if the item does not exist
	// in scope.
	Update(ctx context.Context, ident Identity, id ID, patch Patch, updatedAt time.Time) (Item, error)

	// List returns items of the given kinds (all kinds when empty), ordered by
	// creation time.
	List(ctx context.Context, ident Identity, kinds ...Kind) ([]Item, error)
}

// Assignee is a resolved directory entry.
type Assignee struct {
	ID   string
	Name string
}

// Directory resolves assignee names within a workspace.
type Directory interface {
	// Lookup finds a member by case-insensitive exact name match. ok is false
	// when no member matches.
	Lookup(ctx context.Context, workspaceID, name string) (a Assignee, ok bool, err error)
}
