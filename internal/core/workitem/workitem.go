// Package workitem defines the Epic/Task/Sub-task domain model, the typed
// identifier scheme used to dispatch operations, and the persistence contracts
// the engine consumes.
package workitem

import (
	"strings"
	"time"
)

// Kind is the hierarchy level of a work item.
type Kind string

const (
	KindEpic    Kind = "Epic"
	KindTask    Kind = "Task"
	KindSubTask Kind = "Sub-task"
)

// Kinds lists every kind in hierarchy order.
var Kinds = []Kind{KindEpic, KindTask, KindSubTask}

// ParseKind accepts the canonical names plus the legacy spellings found in
// older rows ("Sub_task", "subtask").
func ParseKind(s string) (Kind, bool) {
	switch normalizeToken(s) {
	case "epic":
		return KindEpic, true
	case "task":
		return KindTask, true
	case "subtask":
		return KindSubTask, true
	}
	return "", false
}

// Rank orders kinds Epic < Task < Sub-task.
func (k Kind) Rank() int {
	switch k {
	case KindEpic:
		return 0
	case KindTask:
		return 1
	case KindSubTask:
		return 2
	}
	return 3
}

// Priority is the urgency of a work item.
type Priority string

const (
	PriorityHighest Priority = "Highest"
	PriorityHigh    Priority = "High"
	PriorityMedium  Priority = "Medium"
	PriorityLow     Priority = "Low"
	PriorityLowest  Priority = "Lowest"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityHighest, PriorityHigh, PriorityMedium, PriorityLow, PriorityLowest}

// ParsePriority matches a priority case-insensitively.
func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, true
		}
	}
	return "", false
}

// Status is the workflow state of a work item.
type Status string

const (
	StatusTodo       Status = "To-do"
	StatusInProgress Status = "In-progress"
	StatusDone       Status = "Done"
)

// Statuses lists every status in workflow order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// ParseStatus accepts "To-do", "To do", "todo", "In progress", "Inprogress"
// and similar variants.
func ParseStatus(s string) (Status, bool) {
	switch normalizeToken(s) {
	case "todo":
		return StatusTodo, true
	case "inprogress":
		return StatusInProgress, true
	case "done":
		return StatusDone, true
	}
	return "", false
}

func normalizeToken(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}

// Identity scopes every operation to a (workspace, user) pair. UserName is the
// fallback assignee name when a lookup misses.
type Identity struct {
	WorkspaceID string `json:"workspace_id"`
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
}

// Item is one flattened row: exactly one of Epic, Task or Sub-task.
//
// Dates are kept as the strings they were written with so that historical
// rows with malformed values still load; parsing happens where a date is used.
type Item struct {
	WorkspaceID    string    `json:"workspace_id"`
	UserID         string    `json:"user_id"`
	EpicID         string    `json:"epic_id,omitempty"`
	EpicName       string    `json:"epic_name,omitempty"`
	TaskID         string    `json:"task_id,omitempty"`
	TaskName       string    `json:"task_name,omitempty"`
	SubTaskID      string    `json:"sub_task_id,omitempty"`
	SubTaskName    string    `json:"sub_task_name,omitempty"`
	Description    string    `json:"description,omitempty"`
	Category       string    `json:"category,omitempty"`
	Priority       Priority  `json:"priority"`
	Status         Status    `json:"status"`
	AssigneeID     string    `json:"assignee_id,omitempty"`
	AssigneeName   string    `json:"assignee_name,omitempty"`
	StartDate      string    `json:"start_date,omitempty"`
	DueDate        string    `json:"due_date,omitempty"`
	DeadlineExtend string    `json:"deadline_extend,omitempty"`
	Type           Kind      `json:"type"`
	CreatedAt      time.Time `json:"create_at"`
	UpdatedAt      time.Time `json:"update_at"`
}

// ID returns the item's own identifier, selected by its type.
func (it Item) ID() string {
	switch it.Type {
	case KindEpic:
		return it.EpicID
	case KindTask:
		return it.TaskID
	case KindSubTask:
		return it.SubTaskID
	}
	return ""
}

// Name returns the item's own name, selected by its type.
func (it Item) Name() string {
	switch it.Type {
	case KindEpic:
		return it.EpicName
	case KindTask:
		return it.TaskName
	case KindSubTask:
		return it.SubTaskName
	}
	return ""
}

// EffectiveDue is the date used for time windows: due_date, falling back to
// start_date.
func (it Item) EffectiveDue() string {
	if strings.TrimSpace(it.DueDate) != "" {
		return it.DueDate
	}
	return it.StartDate
}
