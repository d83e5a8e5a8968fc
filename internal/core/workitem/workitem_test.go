package workitem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnums(t *testing.T) {
	kinds := map[string]Kind{"Epic": KindEpic, "task": KindTask, "Sub-task": KindSubTask, "Sub_task": KindSubTask, "subtask": KindSubTask}
	for in, want := range kinds {
		got, ok := ParseKind(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseKind("story")
	assert.False(t, ok)

	statuses := map[string]Status{"To-do": StatusTodo, "To do": StatusTodo, "todo": StatusTodo, "In progress": StatusInProgress, "Inprogress": StatusInProgress, "DONE": StatusDone}
	for in, want := range statuses {
		got, ok := ParseStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok = ParseStatus("blocked")
	assert.False(t, ok)

	p, ok := ParsePriority("highest")
	assert.True(t, ok)
	assert.Equal(t, PriorityHighest, p)
	_, ok = ParsePriority("urgent")
	assert.False(t, ok)
}

func TestItemIDAndName(t *testing.T) {
	sub := Item{Type: KindSubTask, EpicID: "epic-1", TaskID: "task-1", SubTaskID: "subtask-1", TaskName: "T", SubTaskName: "S"}
	assert.Equal(t, "subtask-1", sub.ID())
	assert.Equal(t, "S", sub.Name())

	task := Item{Type: KindTask, EpicID: "epic-1", TaskID: "task-1", TaskName: "T"}
	assert.Equal(t, "task-1", task.ID())
	assert.Equal(t, "T", task.Name())
}

func TestEffectiveDue(t *testing.T) {
	assert.Equal(t, "02/01/2026", Item{StartDate: "01/01/2026", DueDate: "02/01/2026"}.EffectiveDue())
	assert.Equal(t, "01/01/2026", Item{StartDate: "01/01/2026", DueDate: "  "}.EffectiveDue())
}

func TestValidationError(t *testing.T) {
	inner := errors.New("name is required")
	err := Invalid(inner)
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, inner)
	assert.NoError(t, Invalid(nil))

	storage := StorageError("create", errors.New("disk full"))
	assert.ErrorIs(t, storage, ErrStorage)
	assert.Contains(t, storage.Error(), "disk full")
}
