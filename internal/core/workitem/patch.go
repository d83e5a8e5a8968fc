package workitem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hay-kot/criterio"
)

// Field names accepted by an update.
const (
	FieldEpicName       = "epic_name"
	FieldTaskName       = "task_name"
	FieldSubTaskName    = "sub_task_name"
	FieldDescription    = "description"
	FieldCategory       = "category"
	FieldPriority       = "priority"
	FieldStatus         = "status"
	FieldAssigneeName   = "assignee_name"
	FieldStartDate      = "start_date"
	FieldDueDate        = "due_date"
	FieldDeadlineExtend = "deadline_extend"
)

// NameField returns the name column owned by kind.
func NameField(kind Kind) string {
	switch kind {
	case KindEpic:
		return FieldEpicName
	case KindTask:
		return FieldTaskName
	case KindSubTask:
		return FieldSubTaskName
	}
	return ""
}

var nameFields = map[string]bool{FieldEpicName: true, FieldTaskName: true, FieldSubTaskName: true}

// Patch is a sparse set of field changes. A nil pointer means "leave as is".
//
// AssigneeID is never set from caller input; it is filled in when the
// assignee name is resolved.
type Patch struct {
	Name           *string
	Description    *string
	Category       *string
	Priority       *Priority
	Status         *Status
	AssigneeID     *string
	AssigneeName   *string
	StartDate      *string
	DueDate        *string
	DeadlineExtend *string
}

// PatchFromMap builds a Patch for an item of the given kind. Only the name
// field of that kind is accepted; unknown keys and unparseable enum values are
// field errors. Dates are trimmed and start and due dates cannot be blanked.
// An empty map is rejected.
func PatchFromMap(kind Kind, fields map[string]string) (Patch, error) {
	if len(fields) == 0 {
		return Patch{}, Invalidf("at least one field is required")
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var (
		p    Patch
		errs criterio.FieldErrorsBuilder
	)

	for _, key := range keys {
		value := fields[key]
		switch key {
		case FieldDescription:
			p.Description = &value
		case FieldCategory:
			p.Category = &value
		case FieldPriority:
			pr, ok := ParsePriority(value)
			if !ok {
				errs = errs.Append(key, fmt.Errorf("unknown priority %q", value))
				continue
			}
			p.Priority = &pr
		case FieldStatus:
			st, ok := ParseStatus(value)
			if !ok {
				errs = errs.Append(key, fmt.Errorf("unknown status %q", value))
				continue
			}
			p.Status = &st
		case FieldAssigneeName, "assignee":
			p.AssigneeName = &value
		case FieldStartDate, FieldDueDate:
			date := strings.TrimSpace(value)
			if date == "" {
				errs = errs.Append(key, fmt.Errorf("date cannot be empty"))
				continue
			}
			if key == FieldStartDate {
				p.StartDate = &date
			} else {
				p.DueDate = &date
			}
		case FieldDeadlineExtend:
			// Blank clears the extension.
			date := strings.TrimSpace(value)
			p.DeadlineExtend = &date
		default:
			if !nameFields[key] {
				errs = errs.Append(key, fmt.Errorf("unknown field"))
				continue
			}
			if key != NameField(kind) {
				errs = errs.Append(key, fmt.Errorf("cannot be set on a %s, use %s", kind, NameField(kind)))
				continue
			}
			if strings.TrimSpace(value) == "" {
				errs = errs.Append(key, fmt.Errorf("name cannot be empty"))
				continue
			}
			name := strings.TrimSpace(value)
			p.Name = &name
		}
	}

	if err := errs.ToError(); err != nil {
		return Patch{}, Invalid(err)
	}
	return p, nil
}

// Apply returns a copy of it with the patch applied.
func (p Patch) Apply(it Item) Item {
	if p.Name != nil {
		switch it.Type {
		case KindEpic:
			it.EpicName = *p.Name
		case KindTask:
			it.TaskName = *p.Name
		case KindSubTask:
			it.SubTaskName = *p.Name
		}
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&it.Description, p.Description)
	set(&it.Category, p.Category)
	set(&it.AssigneeID, p.AssigneeID)
	set(&it.AssigneeName, p.AssigneeName)
	set(&it.StartDate, p.StartDate)
	set(&it.DueDate, p.DueDate)
	set(&it.DeadlineExtend, p.DeadlineExtend)
	if p.Priority != nil {
		it.Priority = *p.Priority
	}
	if p.Status != nil {
		it.Status = *p.Status
	}
	return it
}
