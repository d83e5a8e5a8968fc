package proma

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/proma/internal/core/clock"
	"github.com/colonyops/proma/internal/core/logging"
	"github.com/colonyops/proma/internal/core/report"
	"github.com/colonyops/proma/internal/core/validate"
	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"
)

// DefaultDueOffsetDays is added to the start date when no due date is given.
const DefaultDueOffsetDays = 7

// CreateInput carries the fields of a new work item. Name may be given as
// Name or as the kind-specific field (epic_name, task_name, sub_task_name).
type CreateInput struct {
	Type           string `json:"type"`
	Name           string `json:"name,omitempty"`
	EpicName       string `json:"epic_name,omitempty"`
	TaskName       string `json:"task_name,omitempty"`
	SubTaskName    string `json:"sub_task_name,omitempty"`
	EpicID         string `json:"epic_id,omitempty"`
	TaskID         string `json:"task_id,omitempty"`
	Description    string `json:"description,omitempty"`
	Category       string `json:"category,omitempty"`
	Priority       string `json:"priority,omitempty"`
	Status         string `json:"status,omitempty"`
	AssigneeName   string `json:"assignee_name,omitempty"`
	StartDate      string `json:"start_date,omitempty"`
	DueDate        string `json:"due_date,omitempty"`
	DeadlineExtend string `json:"deadline_extend,omitempty"`
}

func (in CreateInput) nameFor(kind workitem.Kind) string {
	if strings.TrimSpace(in.Name) != "" {
		return strings.TrimSpace(in.Name)
	}
	switch kind {
	case workitem.KindEpic:
		return strings.TrimSpace(in.EpicName)
	case workitem.KindTask:
		return strings.TrimSpace(in.TaskName)
	case workitem.KindSubTask:
		return strings.TrimSpace(in.SubTaskName)
	}
	return ""
}

// CascadeResult is an item together with its descendants.
type CascadeResult struct {
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	ItemType   workitem.Kind   `json:"item_type"`
	TotalCount int             `json:"total_count"`
	Items      []workitem.Item `json:"items"`
}

// DeleteResult describes a cascade delete or its preview.
type DeleteResult struct {
	Status       string          `json:"status"`
	Message      string          `json:"message"`
	DeletedCount workitem.Counts `json:"deleted_count"`
	AffectedIDs  []string        `json:"affected_ids"`
	DryRun       bool            `json:"dry_run"`
}

// ListFilter selects items for List, ListTree and Report.
type ListFilter struct {
	// Scope is "All" (or empty) or one of the kinds.
	Scope string
	// Period is one of workitem.Periods; empty means all.
	Period string
	// Assignee is a case-insensitive substring of the assignee name.
	Assignee string
}

// ReportRequest configures Report.
type ReportRequest struct {
	Period           string
	Scope            string
	IncludeAssignees bool
	IncludeAlerts    bool
}

// WorkItemService is the hierarchical work item engine. Every operation takes
// the caller's identity explicitly and only sees rows owned by it.
type WorkItemService struct {
	store       workitem.Store
	dir         workitem.Directory
	clock       clock.Clock
	log         zerolog.Logger
	recentLimit int
}

// NewWorkItemService creates a new WorkItemService. dir may be nil, in which
// case every assignee resolves to the caller.
func NewWorkItemService(store workitem.Store, dir workitem.Directory, clk clock.Clock, log zerolog.Logger) *WorkItemService {
	return &WorkItemService{
		store:       store,
		dir:         dir,
		clock:       clk,
		log:         log.With().Str("component", "workitem-service").Logger(),
		recentLimit: report.DefaultRecentLimit,
	}
}

// SetRecentLimit sets how many items the report's recent activity lists.
func (s *WorkItemService) SetRecentLimit(n int) {
	if n > 0 {
		s.recentLimit = n
	}
}

func (s *WorkItemService) begin(ctx context.Context, ident workitem.Identity, op string) (context.Context, error) {
	ctx = logging.WithOperation(logging.WithScope(ctx, ident.WorkspaceID, ident.UserID), op)
	if err := criterio.ValidateStruct(
		criterio.Run("workspace_id", ident.WorkspaceID, validate.Name),
		criterio.Run("user_id", ident.UserID, validate.Name),
	); err != nil {
		return ctx, workitem.Invalid(err)
	}
	return ctx, nil
}

// Create validates and inserts a new item, filling in defaults, and returns
// the stored item.
func (s *WorkItemService) Create(ctx context.Context, ident workitem.Identity, in CreateInput) (workitem.Item, error) {
	ctx, err := s.begin(ctx, ident, "create")
	if err != nil {
		return workitem.Item{}, err
	}

	kind, ok := workitem.ParseKind(in.Type)
	if !ok {
		return workitem.Item{}, workitem.Invalid(criterio.NewFieldErrors("type",
			fmt.Errorf("must be one of Epic, Task, Sub-task, got %q", in.Type)))
	}

	loc := s.clock.Location()
	name := in.nameFor(kind)
	in.StartDate = strings.TrimSpace(in.StartDate)
	in.DueDate = strings.TrimSpace(in.DueDate)

	var epicCheck, taskCheck error
	if kind != workitem.KindEpic {
		epicCheck = validate.IDField("epic_id", in.EpicID, workitem.KindEpic)
	}
	if kind == workitem.KindSubTask {
		taskCheck = validate.IDField("task_id", in.TaskID, workitem.KindTask)
	}

	err = criterio.ValidateStruct(
		validate.NameField(workitem.NameField(kind), name),
		epicCheck,
		taskCheck,
		criterio.Run("priority", in.Priority, optionalEnum(workitem.ParsePriority)),
		criterio.Run("status", in.Status, optionalEnum(workitem.ParseStatus)),
		validate.DateField("start_date", in.StartDate, loc),
		validate.DateField("due_date", in.DueDate, loc),
		validate.DateField("deadline_extend", in.DeadlineExtend, loc),
		validate.DueNotBeforeStart("due_date", in.StartDate, in.DueDate, loc),
	)
	if err != nil {
		return workitem.Item{}, workitem.Invalid(err)
	}

	now := s.clock.Now()
	start := in.StartDate
	if start == "" {
		start = clock.FormatDate(now)
	}
	due := in.DueDate
	if due == "" {
		// start was validated above.
		startDay, _ := clock.ParseDate(start, loc)
		due = clock.FormatDate(clock.AddDays(startDay, DefaultDueOffsetDays))
	}

	priority := workitem.PriorityMedium
	if p, ok := workitem.ParsePriority(in.Priority); ok {
		priority = p
	}
	status := workitem.StatusTodo
	if st, ok := workitem.ParseStatus(in.Status); ok {
		status = st
	}

	assignee := s.resolveAssignee(ctx, ident, in.AssigneeName)
	id := workitem.NewID(kind)

	item := workitem.Item{
		WorkspaceID:    ident.WorkspaceID,
		UserID:         ident.UserID,
		Description:    in.Description,
		Category:       in.Category,
		Priority:       priority,
		Status:         status,
		AssigneeID:     assignee.ID,
		AssigneeName:   assignee.Name,
		StartDate:      start,
		DueDate:        due,
		DeadlineExtend: strings.TrimSpace(in.DeadlineExtend),
		Type:           kind,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	switch kind {
	case workitem.KindEpic:
		item.EpicID, item.EpicName = id.String(), name
	case workitem.KindTask:
		item.EpicID = strings.TrimSpace(in.EpicID)
		item.TaskID, item.TaskName = id.String(), name
	case workitem.KindSubTask:
		item.EpicID = strings.TrimSpace(in.EpicID)
		item.TaskID = strings.TrimSpace(in.TaskID)
		item.SubTaskID, item.SubTaskName = id.String(), name
	}

	if err := s.fillParents(ctx, ident, &item); err != nil {
		return workitem.Item{}, err
	}

	if err := s.store.Create(ctx, item); err != nil {
		return workitem.Item{}, fmt.Errorf("create %s: %w", strings.ToLower(string(kind)), err)
	}

	s.log.Info().Ctx(ctx).
		Str("id", item.ID()).
		Str("type", string(kind)).
		Msg("work item created")

	return item, nil
}

// fillParents copies parent names onto a new row when the parents exist.
// Missing parents are allowed; a Sub-task whose parent Task belongs to a
// different Epic is rejected.
func (s *WorkItemService) fillParents(ctx context.Context, ident workitem.Identity, item *workitem.Item) error {
	if item.Type == workitem.KindSubTask {
		taskID, _ := workitem.ParseIDOf(item.TaskID, workitem.KindTask)
		task, err := s.store.Get(ctx, ident, taskID)
		switch {
		case err == nil:
			if task.EpicID != "" && task.EpicID != item.EpicID {
				return workitem.Invalid(criterio.NewFieldErrors("epic_id",
					fmt.Errorf("task %s belongs to epic %s", task.TaskID, task.EpicID)))
			}
			item.TaskName = task.TaskName
			item.EpicName = task.EpicName
		case errors.Is(err, workitem.ErrNotFound):
		default:
			return fmt.Errorf("load parent task: %w", err)
		}
	}

	if item.Type != workitem.KindEpic && item.EpicName == "" {
		epicID, _ := workitem.ParseIDOf(item.EpicID, workitem.KindEpic)
		epic, err := s.store.Get(ctx, ident, epicID)
		switch {
		case err == nil:
			item.EpicName = epic.EpicName
		case errors.Is(err, workitem.ErrNotFound):
		default:
			return fmt.Errorf("load parent epic: %w", err)
		}
	}
	return nil
}

// resolveAssignee looks name up in the directory. An empty name, a miss, or
// a lookup failure resolves to the caller.
func (s *WorkItemService) resolveAssignee(ctx context.Context, ident workitem.Identity, name string) workitem.Assignee {
	fallback := workitem.Assignee{ID: ident.UserID, Name: ident.UserName}
	name = strings.TrimSpace(name)
	if name == "" || s.dir == nil {
		return fallback
	}

	a, ok, err := s.dir.Lookup(ctx, ident.WorkspaceID, name)
	if err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Str("assignee", name).Msg("assignee lookup failed, using caller")
		return fallback
	}
	if !ok {
		s.log.Warn().Ctx(ctx).Str("assignee", name).Msg("assignee not found, using caller")
		return fallback
	}
	return a
}

// GetCascade returns the item with the given id and all of its descendants.
func (s *WorkItemService) GetCascade(ctx context.Context, ident workitem.Identity, rawID string) (CascadeResult, error) {
	ctx, err := s.begin(ctx, ident, "get_cascade")
	if err != nil {
		return CascadeResult{}, err
	}

	id, err := workitem.ParseID(rawID)
	if err != nil {
		return CascadeResult{}, err
	}

	items, err := s.store.Closure(ctx, ident, id)
	if err != nil {
		return CascadeResult{}, fmt.Errorf("get %s: %w", id, err)
	}

	msg := fmt.Sprintf("Found %s for %s %s", describeCounts(workitem.CountKinds(items)), id.Kind, id)
	s.log.Debug().Ctx(ctx).Msg(msg)

	return CascadeResult{
		Status:     "success",
		Message:    msg,
		ItemType:   id.Kind,
		TotalCount: len(items),
		Items:      items,
	}, nil
}

// DeleteCascade removes the item and all of its descendants. With dryRun it
// only reports what would be removed.
//
// The delete itself ignores cancellation of ctx once started so that the
// transaction always runs to commit or rollback.
func (s *WorkItemService) DeleteCascade(ctx context.Context, ident workitem.Identity, rawID string, dryRun bool) (DeleteResult, error) {
	ctx, err := s.begin(ctx, ident, "delete_cascade")
	if err != nil {
		return DeleteResult{}, err
	}

	id, err := workitem.ParseID(rawID)
	if err != nil {
		return DeleteResult{}, err
	}

	var items []workitem.Item
	if dryRun {
		items, err = s.store.Closure(ctx, ident, id)
	} else {
		items, err = s.store.DeleteClosure(context.WithoutCancel(ctx), ident, id)
	}
	if err != nil {
		return DeleteResult{}, fmt.Errorf("delete %s: %w", id, err)
	}

	counts := workitem.CountKinds(items)
	action := "Deleted"
	if dryRun {
		action = "Would delete"
	}
	msg := fmt.Sprintf("%s %s (total: %d items)", action, describeCounts(counts), counts.Total())

	affected := make([]string, 0, len(items))
	for _, it := range items {
		affected = append(affected, it.ID())
	}

	s.log.Info().Ctx(ctx).Bool("dry_run", dryRun).Str("id", id.String()).Msg(msg)

	return DeleteResult{
		Status:       "success",
		Message:      msg,
		DeletedCount: counts,
		AffectedIDs:  affected,
		DryRun:       dryRun,
	}, nil
}

// Update applies a sparse set of field changes and returns the updated item.
// Only the supplied fields change; update_at always moves forward.
func (s *WorkItemService) Update(ctx context.Context, ident workitem.Identity, rawID string, fields map[string]string) (workitem.Item, error) {
	ctx, err := s.begin(ctx, ident, "update")
	if err != nil {
		return workitem.Item{}, err
	}

	id, err := workitem.ParseID(rawID)
	if err != nil {
		return workitem.Item{}, err
	}

	patch, err := workitem.PatchFromMap(id.Kind, fields)
	if err != nil {
		return workitem.Item{}, err
	}

	current, err := s.store.Get(ctx, ident, id)
	if err != nil {
		return workitem.Item{}, fmt.Errorf("update %s: %w", id, err)
	}

	loc := s.clock.Location()
	merged := patch.Apply(current)
	var dateErrs []error
	if patch.StartDate != nil {
		dateErrs = append(dateErrs, validate.DateField("start_date", *patch.StartDate, loc))
	}
	if patch.DueDate != nil {
		dateErrs = append(dateErrs, validate.DateField("due_date", *patch.DueDate, loc))
	}
	if patch.DeadlineExtend != nil {
		dateErrs = append(dateErrs, validate.DateField("deadline_extend", *patch.DeadlineExtend, loc))
	}
	if patch.StartDate != nil || patch.DueDate != nil {
		dateErrs = append(dateErrs, validate.DueNotBeforeStart("due_date", merged.StartDate, merged.DueDate, loc))
	}
	if err := criterio.ValidateStruct(dateErrs...); err != nil {
		return workitem.Item{}, workitem.Invalid(err)
	}

	if patch.AssigneeName != nil {
		a := s.resolveAssignee(ctx, ident, *patch.AssigneeName)
		patch.AssigneeID = &a.ID
		patch.AssigneeName = &a.Name
	}

	updatedAt := s.clock.Now()
	if !updatedAt.After(current.UpdatedAt) {
		updatedAt = current.UpdatedAt.Add(time.Microsecond)
	}

	item, err := s.store.Update(ctx, ident, id, patch, updatedAt)
	if err != nil {
		return workitem.Item{}, fmt.Errorf("update %s: %w", id, err)
	}

	s.log.Info().Ctx(ctx).Str("id", id.String()).Int("fields", len(fields)).Msg("work item updated")
	return item, nil
}

// List returns the items matching filter ordered by creation time.
// Items whose dates cannot be parsed are left out of dated periods.
func (s *WorkItemService) List(ctx context.Context, ident workitem.Identity, filter ListFilter) ([]workitem.Item, error) {
	ctx, err := s.begin(ctx, ident, "list")
	if err != nil {
		return nil, err
	}

	kinds, err := parseScope(filter.Scope)
	if err != nil {
		return nil, err
	}
	period, err := workitem.ParsePeriod(filter.Period)
	if err != nil {
		return nil, err
	}

	items, err := s.store.List(ctx, ident, kinds...)
	if err != nil {
		return nil, fmt.Errorf("list work items: %w", err)
	}

	today := clock.Today(s.clock)
	needle := strings.ToLower(strings.TrimSpace(filter.Assignee))

	out := make([]workitem.Item, 0, len(items))
	for _, it := range items {
		if !period.Matches(it, today) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(it.AssigneeName), needle) {
			continue
		}
		out = append(out, it)
	}
	return out, nil
}

// ListTree is List grouped into Epic, Task, Sub-task trees. Items whose parent
// is not part of the result become roots.
func (s *WorkItemService) ListTree(ctx context.Context, ident workitem.Identity, filter ListFilter) ([]*workitem.Node, error) {
	items, err := s.List(ctx, ident, filter)
	if err != nil {
		return nil, err
	}
	return workitem.BuildTree(items), nil
}

// Report aggregates the items selected by the request's period and scope.
// An empty period means this_week.
func (s *WorkItemService) Report(ctx context.Context, ident workitem.Identity, req ReportRequest) (report.Report, error) {
	if strings.TrimSpace(req.Period) == "" {
		req.Period = string(workitem.PeriodThisWeek)
	}
	period, err := workitem.ParsePeriod(req.Period)
	if err != nil {
		return report.Report{}, err
	}

	items, err := s.List(ctx, ident, ListFilter{Scope: req.Scope, Period: string(period)})
	if err != nil {
		return report.Report{}, err
	}

	scope := strings.TrimSpace(req.Scope)
	if scope == "" {
		scope = "all"
	}

	return report.Build(items, report.Options{
		Period:           period,
		Scope:            scope,
		IncludeAssignees: req.IncludeAssignees,
		IncludeAlerts:    req.IncludeAlerts,
		Now:              s.clock.Now(),
		RecentLimit:      s.recentLimit,
	}), nil
}

// parseScope maps "All" or empty to every kind.
func parseScope(scope string) ([]workitem.Kind, error) {
	scope = strings.TrimSpace(scope)
	if scope == "" || strings.EqualFold(scope, "all") {
		return nil, nil
	}
	kind, ok := workitem.ParseKind(scope)
	if !ok {
		return nil, workitem.Invalid(criterio.NewFieldErrors("scope",
			fmt.Errorf("must be one of All, Epic, Task, Sub-task, got %q", scope)))
	}
	return []workitem.Kind{kind}, nil
}

func optionalEnum[T any](parse func(string) (T, bool)) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		if _, ok := parse(s); !ok {
			return fmt.Errorf("unknown value %q", s)
		}
		return nil
	}
}

func describeCounts(c workitem.Counts) string {
	var parts []string
	if c.Epic > 0 {
		parts = append(parts, fmt.Sprintf("%d epic(s)", c.Epic))
	}
	if c.Task > 0 {
		parts = append(parts, fmt.Sprintf("%d task(s)", c.Task))
	}
	if c.SubTask > 0 {
		parts = append(parts, fmt.Sprintf("%d subtask(s)", c.SubTask))
	}
	return strings.Join(parts, ", ")
}
