package report

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday 10 June 2026, 09:00 in UTC+7.
var now = time.Date(2026, 6, 10, 9, 0, 0, 0, time.FixedZone("ICT", 7*3600))

func task(id, assignee string, status workitem.Status, priority workitem.Priority, due string, updated time.Time) workitem.Item {
	return workitem.Item{
		Type:         workitem.KindTask,
		EpicID:       "epic-1",
		TaskID:       id,
		TaskName:     "name " + id,
		Status:       status,
		Priority:     priority,
		AssigneeName: assignee,
		DueDate:      due,
		UpdatedAt:    updated,
	}
}

func fixture() []workitem.Item {
	return []workitem.Item{
		{Type: workitem.KindEpic, EpicID: "epic-1", EpicName: "Launch", Status: workitem.StatusInProgress, Priority: workitem.PriorityMedium, DueDate: "30/06/2026", UpdatedAt: now.Add(-time.Hour)},
		task("task-a", "Lan", workitem.StatusTodo, workitem.PriorityHigh, "12/06/2026", now.Add(-48*time.Hour)),
		task("task-b", "Lan", workitem.StatusDone, workitem.PriorityLow, "01/06/2026", now.Add(-2*time.Hour)),
		task("task-c", "", workitem.StatusTodo, workitem.PriorityMedium, "05/06/2026", now.Add(-30*24*time.Hour)),
		task("task-d", "Minh", workitem.StatusInProgress, workitem.PriorityHighest, "not a date", now.Add(-3*time.Hour)),
	}
}

func TestBuild_Summary(t *testing.T) {
	r := Build(fixture(), Options{Period: workitem.PeriodThisWeek, Scope: "all", Now: now})

	assert.Equal(t, 5, r.Summary.TotalItems)
	assert.Equal(t, workitem.Counts{Epic: 1, Task: 4}, r.Summary.ByType)
	assert.Equal(t, map[string]int{"To-do": 2, "In-progress": 2, "Done": 1}, r.Summary.ByStatus)
	assert.Equal(t, 1, r.Summary.ByPriority["Highest"])
	assert.Equal(t, 0, r.Summary.ByPriority["Lowest"])

	assert.Equal(t, "10/06/2026 09:00:00", r.GeneratedAt)
	assert.Equal(t, "this_week", r.TimePeriod)
	assert.Equal(t, "08/06/2026 - 14/06/2026", r.PeriodRange)
	assert.Equal(t, "all", r.Scope)
	assert.Nil(t, r.AssigneeBreakdown)
	assert.Nil(t, r.Alerts)
}

func TestBuild_TimeAnalysis(t *testing.T) {
	r := Build(fixture(), Options{Period: workitem.PeriodThisWeek, Now: now})

	assert.Equal(t, 1, r.TimeAnalysis.DueSoon, "task-a is due in two days")
	assert.Equal(t, 1, r.TimeAnalysis.Overdue, "task-c only; task-b is done")
	assert.Equal(t, 1, r.TimeAnalysis.CompletedThisPeriod)

	r = Build(fixture(), Options{Period: workitem.PeriodToday, Now: now.Add(48 * time.Hour)})
	assert.Equal(t, 0, r.TimeAnalysis.CompletedThisPeriod)
}

func TestBuild_Alerts(t *testing.T) {
	r := Build(fixture(), Options{Period: workitem.PeriodAll, IncludeAlerts: true, Now: now})
	require.NotNil(t, r.Alerts)

	require.Len(t, r.Alerts.DueSoon, 1)
	assert.Equal(t, "task-a", r.Alerts.DueSoon[0].ID)

	require.Len(t, r.Alerts.Overdue, 1)
	assert.Equal(t, "task-c", r.Alerts.Overdue[0].ID)
	assert.Equal(t, 5, r.Alerts.Overdue[0].DaysOverdue)
	assert.Equal(t, Unassigned, r.Alerts.Overdue[0].Assignee)

	require.Len(t, r.Alerts.HighPriorityTodo, 1)
	assert.Equal(t, "task-a", r.Alerts.HighPriorityTodo[0].ID)
}

func TestBuild_AssigneeBreakdown(t *testing.T) {
	r := Build(fixture(), Options{IncludeAssignees: true, Now: now})

	require.Contains(t, r.AssigneeBreakdown, "Lan")
	lan := r.AssigneeBreakdown["Lan"]
	assert.Equal(t, 2, lan.TotalTasks)
	assert.Equal(t, 1, lan.ByStatus["Done"])
	assert.Equal(t, 1, lan.ByPriority["High"])
	assert.Len(t, lan.Tasks, 2)

	assert.Equal(t, 2, r.AssigneeBreakdown[Unassigned].TotalTasks, "epic and task-c")
	assert.Equal(t, 1, r.AssigneeBreakdown["Minh"].TotalTasks)
}

func TestBuild_RecentActivity(t *testing.T) {
	var items []workitem.Item
	for i := 0; i < 15; i++ {
		items = append(items, task(fmt.Sprintf("task-%02d", i), "", workitem.StatusTodo, workitem.PriorityMedium, "", now.Add(time.Duration(i)*time.Minute)))
	}

	r := Build(items, Options{Now: now})
	require.Len(t, r.RecentActivity, DefaultRecentLimit)
	assert.Equal(t, "task-14", r.RecentActivity[0].ID)
	assert.Equal(t, "task-05", r.RecentActivity[9].ID)
	assert.Equal(t, "10/06/2026 09:14:00", r.RecentActivity[0].UpdatedAt)

	r = Build(items, Options{Now: now, RecentLimit: 3})
	assert.Len(t, r.RecentActivity, 3)
}

func TestBuild_Deterministic(t *testing.T) {
	opts := Options{Period: workitem.PeriodThisMonth, IncludeAlerts: true, IncludeAssignees: true, Now: now}

	a, err := json.Marshal(Build(fixture(), opts))
	require.NoError(t, err)
	b, err := json.Marshal(Build(fixture(), opts))
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestBuild_Empty(t *testing.T) {
	r := Build(nil, Options{IncludeAlerts: true, Now: now})
	assert.Zero(t, r.Summary.TotalItems)
	assert.NotNil(t, r.RecentActivity)
	assert.NotNil(t, r.Alerts.Overdue)
	assert.Equal(t, "all", r.TimePeriod)
}
