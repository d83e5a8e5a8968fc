package db

import (
	"context"
	"fmt"
	"strings"
)

const workItemColumns = `item_id, workspace_id, user_id, type, epic_id, epic_name, task_id, task_name,
	sub_task_id, sub_task_name, description, category, priority, status, assignee_id,
	assignee_name, start_date, due_date, deadline_extend, created_at, updated_at`

// Scope addresses one item inside a (workspace, user) pair.
type Scope struct {
	WorkspaceID string
	UserID      string
	ItemID      string
}

const createWorkItem = `INSERT INTO work_items (` + workItemColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateWorkItem(ctx context.Context, arg WorkItem) error {
	_, err := q.db.ExecContext(ctx, createWorkItem,
		arg.ItemID, arg.WorkspaceID, arg.UserID, arg.Type,
		arg.EpicID, arg.EpicName, arg.TaskID, arg.TaskName,
		arg.SubTaskID, arg.SubTaskName, arg.Description, arg.Category,
		arg.Priority, arg.Status, arg.AssigneeID, arg.AssigneeName,
		arg.StartDate, arg.DueDate, arg.DeadlineExtend,
		arg.CreatedAt, arg.UpdatedAt,
	)
	return err
}

const getWorkItem = `SELECT ` + workItemColumns + ` FROM work_items
WHERE workspace_id = ? AND user_id = ? AND item_id = ?`

func (q *Queries) GetWorkItem(ctx context.Context, arg Scope) (WorkItem, error) {
	row := q.db.QueryRowContext(ctx, getWorkItem, arg.WorkspaceID, arg.UserID, arg.ItemID)
	return scanWorkItem(row)
}

// The sub-task branch follows task_id into the epic's task set rather than
// the sub-task's own epic_id, so a sub-task is reached only through its task.
const listEpicClosure = `SELECT ` + workItemColumns + ` FROM work_items
WHERE workspace_id = ?1 AND user_id = ?2 AND (
	item_id = ?3
	OR (type = 'Task' AND epic_id = ?3)
	OR (type = 'Sub-task' AND task_id IN (
		SELECT item_id FROM work_items
		WHERE workspace_id = ?1 AND user_id = ?2 AND type = 'Task' AND epic_id = ?3
	))
)`

// ListEpicClosure returns the epic, its tasks and their sub-tasks, unordered.
func (q *Queries) ListEpicClosure(ctx context.Context, arg Scope) ([]WorkItem, error) {
	return q.listWorkItems(ctx, listEpicClosure, arg.WorkspaceID, arg.UserID, arg.ItemID)
}

const listTaskClosure = `SELECT ` + workItemColumns + ` FROM work_items
WHERE workspace_id = ?1 AND user_id = ?2 AND (
	item_id = ?3
	OR (type = 'Sub-task' AND task_id = ?3)
)`

// ListTaskClosure returns the task and its sub-tasks, unordered.
func (q *Queries) ListTaskClosure(ctx context.Context, arg Scope) ([]WorkItem, error) {
	return q.listWorkItems(ctx, listTaskClosure, arg.WorkspaceID, arg.UserID, arg.ItemID)
}

// ListWorkItemsParams filters ListWorkItems. Empty Types means every type.
type ListWorkItemsParams struct {
	WorkspaceID string
	UserID      string
	Types       []string
}

func (q *Queries) ListWorkItems(ctx context.Context, arg ListWorkItemsParams) ([]WorkItem, error) {
	query := `SELECT ` + workItemColumns + ` FROM work_items WHERE workspace_id = ? AND user_id = ?`
	args := []any{arg.WorkspaceID, arg.UserID}
	if len(arg.Types) > 0 {
		query += ` AND type IN (` + placeholders(len(arg.Types)) + `)`
		for _, t := range arg.Types {
			args = append(args, t)
		}
	}
	query += ` ORDER BY created_at ASC, item_id ASC`
	return q.listWorkItems(ctx, query, args...)
}

// DeleteWorkItemsParams names the rows to delete within one scope.
type DeleteWorkItemsParams struct {
	WorkspaceID string
	UserID      string
	ItemIDs     []string
}

// DeleteWorkItems removes the listed rows and returns how many were removed.
func (q *Queries) DeleteWorkItems(ctx context.Context, arg DeleteWorkItemsParams) (int64, error) {
	if len(arg.ItemIDs) == 0 {
		return 0, nil
	}
	query := `DELETE FROM work_items WHERE workspace_id = ? AND user_id = ? AND item_id IN (` +
		placeholders(len(arg.ItemIDs)) + `)`
	args := make([]any, 0, len(arg.ItemIDs)+2)
	args = append(args, arg.WorkspaceID, arg.UserID)
	for _, id := range arg.ItemIDs {
		args = append(args, id)
	}
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Assignment sets one column in an UPDATE.
type Assignment struct {
	Column string
	Value  any
}

var updatableColumns = map[string]bool{
	"epic_name":       true,
	"task_name":       true,
	"sub_task_name":   true,
	"description":     true,
	"category":        true,
	"priority":        true,
	"status":          true,
	"assignee_id":     true,
	"assignee_name":   true,
	"start_date":      true,
	"due_date":        true,
	"deadline_extend": true,
}

// UpdateWorkItemColumnsParams describes a sparse update of one row.
type UpdateWorkItemColumnsParams struct {
	Scope
	Set       []Assignment
	UpdatedAt int64
}

// UpdateWorkItemColumns writes exactly the assigned columns plus updated_at.
// Column names are checked against a fixed allowlist; values are always bound
// as parameters.
func (q *Queries) UpdateWorkItemColumns(ctx context.Context, arg UpdateWorkItemColumnsParams) (int64, error) {
	clauses := make([]string, 0, len(arg.Set)+1)
	args := make([]any, 0, len(arg.Set)+4)
	for _, a := range arg.Set {
		if !updatableColumns[a.Column] {
			return 0, fmt.Errorf("column %q is not updatable", a.Column)
		}
		clauses = append(clauses, a.Column+" = ?")
		args = append(args, a.Value)
	}
	clauses = append(clauses, "updated_at = ?")
	args = append(args, arg.UpdatedAt, arg.WorkspaceID, arg.UserID, arg.ItemID)

	query := `UPDATE work_items SET ` + strings.Join(clauses, ", ") +
		` WHERE workspace_id = ? AND user_id = ? AND item_id = ?`
	res, err := q.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) listWorkItems(ctx context.Context, query string, args ...any) ([]WorkItem, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []WorkItem
	for rows.Next() {
		i, err := scanWorkItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWorkItem(row scanner) (WorkItem, error) {
	var i WorkItem
	err := row.Scan(
		&i.ItemID, &i.WorkspaceID, &i.UserID, &i.Type,
		&i.EpicID, &i.EpicName, &i.TaskID, &i.TaskName,
		&i.SubTaskID, &i.SubTaskName, &i.Description, &i.Category,
		&i.Priority, &i.Status, &i.AssigneeID, &i.AssigneeName,
		&i.StartDate, &i.DueDate, &i.DeadlineExtend,
		&i.CreatedAt, &i.UpdatedAt,
	)
	return i, err
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
