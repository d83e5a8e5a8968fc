package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/colonyops/proma/internal/data/db"
)

// ItemStore implements workitem.Store using SQLite.
type ItemStore struct {
	db *db.DB
}

var _ workitem.Store = (*ItemStore)(nil)

// NewItemStore creates a new SQLite-backed work item store.
func NewItemStore(db *db.DB) *ItemStore {
	return &ItemStore{db: db}
}

// Create inserts a fully populated item.
func (s *ItemStore) Create(ctx context.Context, item workitem.Item) error {
	if err := s.db.Queries().CreateWorkItem(ctx, itemToRow(item)); err != nil {
		return storageError("create work item", err)
	}
	return nil
}

// Get returns a single item in scope.
func (s *ItemStore) Get(ctx context.Context, ident workitem.Identity, id workitem.ID) (workitem.Item, error) {
	row, err := s.db.Queries().GetWorkItem(ctx, scopeOf(ident, id))
	if err != nil {
		if IsNotFoundError(err) {
			return workitem.Item{}, fmt.Errorf("%s %s: %w", id.Kind, id, workitem.ErrNotFound)
		}
		return workitem.Item{}, storageError("get work item", err)
	}

	item := rowToItem(row)
	if item.Type != id.Kind {
		return workitem.Item{}, fmt.Errorf("%s %s: %w", id.Kind, id, workitem.ErrNotFound)
	}
	return item, nil
}

// Closure returns the item and its descendants in presentation order.
func (s *ItemStore) Closure(ctx context.Context, ident workitem.Identity, id workitem.ID) ([]workitem.Item, error) {
	return closure(ctx, s.db.Queries(), ident, id)
}

// DeleteClosure removes the closure of id in a single transaction. The closure
// is read inside the same transaction that deletes it, and the delete must
// remove exactly the rows that were read or the transaction is rolled back.
func (s *ItemStore) DeleteClosure(ctx context.Context, ident workitem.Identity, id workitem.ID) ([]workitem.Item, error) {
	var removed []workitem.Item

	err := s.db.WithTx(ctx, func(q *db.Queries) error {
		items, err := closure(ctx, q, ident, id)
		if err != nil {
			return err
		}

		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.ID())
		}

		n, err := q.DeleteWorkItems(ctx, db.DeleteWorkItemsParams{
			WorkspaceID: ident.WorkspaceID,
			UserID:      ident.UserID,
			ItemIDs:     ids,
		})
		if err != nil {
			return storageError("delete work items", err)
		}
		if n != int64(len(ids)) {
			return storageError("delete work items",
				fmt.Errorf("removed %d rows, expected %d", n, len(ids)))
		}

		removed = items
		return nil
	})
	if err != nil {
		return nil, txError("delete work items", err)
	}

	return removed, nil
}

// Update writes the present patch fields and updated_at, then re-reads the row.
func (s *ItemStore) Update(ctx context.Context, ident workitem.Identity, id workitem.ID, patch workitem.Patch, updatedAt time.Time) (workitem.Item, error) {
	var updated workitem.Item

	err := s.db.WithTx(ctx, func(q *db.Queries) error {
		n, err := q.UpdateWorkItemColumns(ctx, db.UpdateWorkItemColumnsParams{
			Scope:     scopeOf(ident, id),
			Set:       patchAssignments(id.Kind, patch),
			UpdatedAt: updatedAt.UnixNano(),
		})
		if err != nil {
			return storageError("update work item", err)
		}
		if n == 0 {
			return fmt.Errorf("%s %s: %w", id.Kind, id, workitem.ErrNotFound)
		}

		row, err := q.GetWorkItem(ctx, scopeOf(ident, id))
		if err != nil {
			return storageError("reload work item", err)
		}
		updated = rowToItem(row)
		return nil
	})
	if err != nil {
		return workitem.Item{}, txError("update work item", err)
	}

	return updated, nil
}

// List returns items of the given kinds in creation order.
func (s *ItemStore) List(ctx context.Context, ident workitem.Identity, kinds ...workitem.Kind) ([]workitem.Item, error) {
	types := make([]string, 0, len(kinds))
	for _, k := range kinds {
		types = append(types, string(k))
	}

	rows, err := s.db.Queries().ListWorkItems(ctx, db.ListWorkItemsParams{
		WorkspaceID: ident.WorkspaceID,
		UserID:      ident.UserID,
		Types:       types,
	})
	if err != nil {
		return nil, storageError("list work items", err)
	}

	items := make([]workitem.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, rowToItem(row))
	}
	return items, nil
}

func closure(ctx context.Context, q *db.Queries, ident workitem.Identity, id workitem.ID) ([]workitem.Item, error) {
	var (
		rows []db.WorkItem
		err  error
	)

	scope := scopeOf(ident, id)
	switch id.Kind {
	case workitem.KindEpic:
		rows, err = q.ListEpicClosure(ctx, scope)
	case workitem.KindTask:
		rows, err = q.ListTaskClosure(ctx, scope)
	default:
		var row db.WorkItem
		row, err = q.GetWorkItem(ctx, scope)
		if err == nil {
			rows = []db.WorkItem{row}
		} else if IsNotFoundError(err) {
			err = nil
		}
	}
	if err != nil {
		return nil, storageError("load closure", err)
	}

	items := make([]workitem.Item, 0, len(rows))
	rootFound := false
	for _, row := range rows {
		it := rowToItem(row)
		if row.ItemID == id.String() && it.Type == id.Kind {
			rootFound = true
		}
		items = append(items, it)
	}
	if !rootFound {
		return nil, fmt.Errorf("%s %s: %w", id.Kind, id, workitem.ErrNotFound)
	}

	return workitem.OrderClosure(items), nil
}

func scopeOf(ident workitem.Identity, id workitem.ID) db.Scope {
	return db.Scope{WorkspaceID: ident.WorkspaceID, UserID: ident.UserID, ItemID: id.String()}
}

// patchAssignments maps the present patch fields onto their columns.
func patchAssignments(kind workitem.Kind, p workitem.Patch) []db.Assignment {
	var set []db.Assignment
	add := func(column string, v *string) {
		if v != nil {
			set = append(set, db.Assignment{Column: column, Value: toNullString(*v)})
		}
	}

	add(workitem.NameField(kind), p.Name)
	add(workitem.FieldDescription, p.Description)
	add(workitem.FieldCategory, p.Category)
	if p.Priority != nil {
		set = append(set, db.Assignment{Column: workitem.FieldPriority, Value: string(*p.Priority)})
	}
	if p.Status != nil {
		set = append(set, db.Assignment{Column: workitem.FieldStatus, Value: string(*p.Status)})
	}
	add("assignee_id", p.AssigneeID)
	add(workitem.FieldAssigneeName, p.AssigneeName)
	add(workitem.FieldStartDate, p.StartDate)
	add(workitem.FieldDueDate, p.DueDate)
	add(workitem.FieldDeadlineExtend, p.DeadlineExtend)
	return set
}

func itemToRow(it workitem.Item) db.WorkItem {
	return db.WorkItem{
		ItemID:         it.ID(),
		WorkspaceID:    it.WorkspaceID,
		UserID:         it.UserID,
		Type:           string(it.Type),
		EpicID:         toNullString(it.EpicID),
		EpicName:       toNullString(it.EpicName),
		TaskID:         toNullString(it.TaskID),
		TaskName:       toNullString(it.TaskName),
		SubTaskID:      toNullString(it.SubTaskID),
		SubTaskName:    toNullString(it.SubTaskName),
		Description:    toNullString(it.Description),
		Category:       toNullString(it.Category),
		Priority:       string(it.Priority),
		Status:         string(it.Status),
		AssigneeID:     toNullString(it.AssigneeID),
		AssigneeName:   toNullString(it.AssigneeName),
		StartDate:      toNullString(it.StartDate),
		DueDate:        toNullString(it.DueDate),
		DeadlineExtend: toNullString(it.DeadlineExtend),
		CreatedAt:      it.CreatedAt.UnixNano(),
		UpdatedAt:      it.UpdatedAt.UnixNano(),
	}
}

func rowToItem(row db.WorkItem) workitem.Item {
	kind, ok := workitem.ParseKind(row.Type)
	if !ok {
		kind = workitem.Kind(row.Type)
	}
	priority, ok := workitem.ParsePriority(row.Priority)
	if !ok {
		priority = workitem.Priority(row.Priority)
	}
	status, ok := workitem.ParseStatus(row.Status)
	if !ok {
		status = workitem.Status(row.Status)
	}

	return workitem.Item{
		WorkspaceID:    row.WorkspaceID,
		UserID:         row.UserID,
		EpicID:         fromNullString(row.EpicID),
		EpicName:       fromNullString(row.EpicName),
		TaskID:         fromNullString(row.TaskID),
		TaskName:       fromNullString(row.TaskName),
		SubTaskID:      fromNullString(row.SubTaskID),
		SubTaskName:    fromNullString(row.SubTaskName),
		Description:    fromNullString(row.Description),
		Category:       fromNullString(row.Category),
		Priority:       priority,
		Status:         status,
		AssigneeID:     fromNullString(row.AssigneeID),
		AssigneeName:   fromNullString(row.AssigneeName),
		StartDate:      fromNullString(row.StartDate),
		DueDate:        fromNullString(row.DueDate),
		DeadlineExtend: fromNullString(row.DeadlineExtend),
		Type:           kind,
		CreatedAt:      time.Unix(0, row.CreatedAt),
		UpdatedAt:      time.Unix(0, row.UpdatedAt),
	}
}
