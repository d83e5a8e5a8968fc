package stores

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/proma/internal/core/member"
	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/colonyops/proma/internal/data/db"
)

// MemberStore implements member.Store and the workitem.Directory lookup
// using SQLite.
type MemberStore struct {
	db *db.DB
}

var (
	_ member.Store       = (*MemberStore)(nil)
	_ workitem.Directory = (*MemberStore)(nil)
)

// NewMemberStore creates a new SQLite-backed member store.
func NewMemberStore(db *db.DB) *MemberStore {
	return &MemberStore{db: db}
}

// nameKey folds a name for case-insensitive matching. Folding happens in Go
// so that non-ASCII names compare correctly.
func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Add persists a new member.
func (s *MemberStore) Add(ctx context.Context, m member.Member) error {
	err := s.db.Queries().CreateTeamMember(ctx, db.TeamMember{
		MemberID:    m.ID,
		WorkspaceID: m.WorkspaceID,
		MemberName:  strings.TrimSpace(m.Name),
		NameKey:     nameKey(m.Name),
		Team:        toNullString(m.Team),
		Email:       toNullString(m.Email),
		CreatedAt:   m.CreatedAt.UnixNano(),
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%q: %w", m.Name, member.ErrDuplicate)
		}
		return fmt.Errorf("create team member: %w", err)
	}
	return nil
}

// List returns the workspace's members ordered by name.
func (s *MemberStore) List(ctx context.Context, workspaceID string) ([]member.Member, error) {
	rows, err := s.db.Queries().ListTeamMembers(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("list team members: %w", err)
	}

	members := make([]member.Member, 0, len(rows))
	for _, row := range rows {
		members = append(members, rowToMember(row))
	}
	return members, nil
}

// Remove deletes a member by id.
func (s *MemberStore) Remove(ctx context.Context, workspaceID, id string) error {
	n, err := s.db.Queries().DeleteTeamMember(ctx, workspaceID, id)
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	if n == 0 {
		return member.ErrNotFound
	}
	return nil
}

// Lookup finds a member by case-insensitive exact name within a workspace.
func (s *MemberStore) Lookup(ctx context.Context, workspaceID, name string) (workitem.Assignee, bool, error) {
	key := nameKey(name)
	if key == "" {
		return workitem.Assignee{}, false, nil
	}

	row, err := s.db.Queries().GetTeamMemberByNameKey(ctx, workspaceID, key)
	if err != nil {
		if IsNotFoundError(err) {
			return workitem.Assignee{}, false, nil
		}
		return workitem.Assignee{}, false, storageError("lookup team member", err)
	}

	return workitem.Assignee{ID: row.MemberID, Name: row.MemberName}, true, nil
}

func rowToMember(row db.TeamMember) member.Member {
	return member.Member{
		ID:          row.MemberID,
		WorkspaceID: row.WorkspaceID,
		Name:        row.MemberName,
		Team:        fromNullString(row.Team),
		Email:       fromNullString(row.Email),
		CreatedAt:   time.Unix(0, row.CreatedAt),
	}
}
