package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries runs the statements in this package against a DBTX.
type Queries struct {
	db DBTX
}

// New returns queries bound to db.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns queries bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// WorkItem is a row of the work_items table.
type WorkItem struct {
	ItemID         string
	WorkspaceID    string
	UserID         string
	Type           string
	EpicID         sql.NullString
	EpicName       sql.NullString
	TaskID         sql.NullString
	TaskName       sql.NullString
	SubTaskID      sql.NullString
	SubTaskName    sql.NullString
	Description    sql.NullString
	Category       sql.NullString
	Priority       string
	Status         string
	AssigneeID     sql.NullString
	AssigneeName   sql.NullString
	StartDate      sql.NullString
	DueDate        sql.NullString
	DeadlineExtend sql.NullString
	CreatedAt      int64
	UpdatedAt      int64
}

// TeamMember is a row of the team_members table.
type TeamMember struct {
	MemberID    string
	WorkspaceID string
	MemberName  string
	NameKey     string
	Team        sql.NullString
	Email       sql.NullString
	CreatedAt   int64
}
