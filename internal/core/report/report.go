// Package report summarizes an already fetched list of work items. It has no
// store access and its output depends only on its input.
package report

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/colonyops/proma/internal/core/clock"
	"github.com/colonyops/proma/internal/core/workitem"
)

// Unassigned groups items with no assignee name.
const Unassigned = "Unassigned"

// DefaultRecentLimit is the number of recently updated items listed.
const DefaultRecentLimit = 10

// Options controls what Build computes.
type Options struct {
	Period           workitem.Period
	Scope            string
	IncludeAssignees bool
	IncludeAlerts    bool
	// Now anchors "today" and is rendered as generated_at. Its location is
	// the location dates are evaluated in.
	Now         time.Time
	RecentLimit int
}

// Report is the aggregate returned to callers.
type Report struct {
	Summary           Summary                   `json:"summary"`
	TimeAnalysis      TimeAnalysis              `json:"time_analysis"`
	AssigneeBreakdown map[string]*AssigneeStats `json:"assignee_breakdown,omitempty"`
	Alerts            *Alerts                   `json:"alerts,omitempty"`
	RecentActivity    []Activity                `json:"recent_activity"`
	GeneratedAt       string                    `json:"generated_at"`
	TimePeriod        string                    `json:"time_period"`
	PeriodRange       string                    `json:"period_range"`
	Scope             string                    `json:"scope"`
}

// Summary holds the headline counts.
type Summary struct {
	TotalItems int             `json:"total_items"`
	ByType     workitem.Counts `json:"by_type"`
	ByStatus   map[string]int  `json:"by_status"`
	ByPriority map[string]int  `json:"by_priority"`
}

// TimeAnalysis holds the date-driven counts.
type TimeAnalysis struct {
	DueSoon             int `json:"due_soon"`
	Overdue             int `json:"overdue"`
	CompletedThisPeriod int `json:"completed_this_period"`
}

// AssigneeStats is one assignee's share of the items.
type AssigneeStats struct {
	TotalTasks int            `json:"total_tasks"`
	ByStatus   map[string]int `json:"by_status"`
	ByPriority map[string]int `json:"by_priority"`
	Tasks      []Entry        `json:"tasks"`
}

// Alerts lists items that need attention.
type Alerts struct {
	DueSoon          []Entry `json:"due_soon"`
	Overdue          []Entry `json:"overdue"`
	HighPriorityTodo []Entry `json:"high_priority_todo"`
}

// Entry is the compact form of an item used in lists.
type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Assignee    string `json:"assignee"`
	StartDate   string `json:"start_date,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	DaysOverdue int    `json:"days_overdue,omitempty"`
}

// Activity is an entry of the recent activity list.
type Activity struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Assignee  string `json:"assignee"`
	UpdatedAt string `json:"updated_at"`
}

// Build aggregates items. Items whose dates cannot be parsed are left out of
// date-based sections only.
func Build(items []workitem.Item, opts Options) Report {
	today := clock.StartOfDay(opts.Now)
	limit := opts.RecentLimit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	r := Report{
		Summary:        summarize(items),
		TimeAnalysis:   analyzeTime(items, opts.Period, today),
		RecentActivity: recent(items, limit, opts.Now.Location()),
		GeneratedAt:    clock.FormatTimestamp(opts.Now),
		TimePeriod:     opts.Period.String(),
		PeriodRange:    opts.Period.Label(today),
		Scope:          opts.Scope,
	}
	if opts.IncludeAssignees {
		r.AssigneeBreakdown = byAssignee(items)
	}
	if opts.IncludeAlerts {
		r.Alerts = alerts(items, today)
	}
	return r
}

func statusCounts() map[string]int {
	m := make(map[string]int, len(workitem.Statuses))
	for _, s := range workitem.Statuses {
		m[string(s)] = 0
	}
	return m
}

func priorityCounts() map[string]int {
	m := make(map[string]int, len(workitem.Priorities))
	for _, p := range workitem.Priorities {
		m[string(p)] = 0
	}
	return m
}

func summarize(items []workitem.Item) Summary {
	s := Summary{
		TotalItems: len(items),
		ByType:     workitem.CountKinds(items),
		ByStatus:   statusCounts(),
		ByPriority: priorityCounts(),
	}
	for _, it := range items {
		s.ByStatus[string(it.Status)]++
		s.ByPriority[string(it.Priority)]++
	}
	return s
}

func analyzeTime(items []workitem.Item, period workitem.Period, today time.Time) TimeAnalysis {
	var ta TimeAnalysis
	completedWindow := completionWindow(period, today)

	for _, it := range items {
		if workitem.PeriodDueSoon.Matches(it, today) {
			ta.DueSoon++
		}
		if workitem.PeriodOverdue.Matches(it, today) {
			ta.Overdue++
		}
		if it.Status == workitem.StatusDone && !it.UpdatedAt.IsZero() &&
			completedWindow.Contains(clock.StartOfDay(it.UpdatedAt.In(today.Location()))) {
			ta.CompletedThisPeriod++
		}
	}
	return ta
}

// completionWindow is the window completions are counted in. Only the
// calendar periods restrict it; forward-looking periods count every
// completion.
func completionWindow(period workitem.Period, today time.Time) workitem.Window {
	switch period {
	case workitem.PeriodToday, workitem.PeriodThisWeek, workitem.PeriodThisMonth:
		return period.Window(today)
	}
	return workitem.Window{}
}

func assigneeOf(it workitem.Item) string {
	if strings.TrimSpace(it.AssigneeName) == "" {
		return Unassigned
	}
	return it.AssigneeName
}

func entryOf(it workitem.Item) Entry {
	return Entry{
		ID:        it.ID(),
		Name:      it.Name(),
		Type:      string(it.Type),
		Status:    string(it.Status),
		Priority:  string(it.Priority),
		Assignee:  assigneeOf(it),
		StartDate: it.StartDate,
		DueDate:   it.DueDate,
	}
}

func byAssignee(items []workitem.Item) map[string]*AssigneeStats {
	out := make(map[string]*AssigneeStats)
	for _, it := range items {
		name := assigneeOf(it)
		stats, ok := out[name]
		if !ok {
			stats = &AssigneeStats{ByStatus: statusCounts(), ByPriority: priorityCounts()}
			out[name] = stats
		}
		stats.TotalTasks++
		stats.ByStatus[string(it.Status)]++
		stats.ByPriority[string(it.Priority)]++
		stats.Tasks = append(stats.Tasks, entryOf(it))
	}
	return out
}

func alerts(items []workitem.Item, today time.Time) *Alerts {
	a := &Alerts{
		DueSoon:          []Entry{},
		Overdue:          []Entry{},
		HighPriorityTodo: []Entry{},
	}
	for _, it := range items {
		if workitem.PeriodDueSoon.Matches(it, today) {
			a.DueSoon = append(a.DueSoon, entryOf(it))
		}
		if workitem.PeriodOverdue.Matches(it, today) {
			e := entryOf(it)
			// Matches already proved the date parses.
			due, _ := clock.ParseDate(it.EffectiveDue(), today.Location())
			e.DaysOverdue = int(math.Round(today.Sub(due).Hours() / 24))
			a.Overdue = append(a.Overdue, e)
		}
		if it.Status == workitem.StatusTodo &&
			(it.Priority == workitem.PriorityHighest || it.Priority == workitem.PriorityHigh) {
			a.HighPriorityTodo = append(a.HighPriorityTodo, entryOf(it))
		}
	}
	return a
}

func recent(items []workitem.Item, limit int, loc *time.Location) []Activity {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b workitem.Item) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID(), b.ID())
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]Activity, 0, len(sorted))
	for _, it := range sorted {
		out = append(out, Activity{
			ID:        it.ID(),
			Name:      it.Name(),
			Type:      string(it.Type),
			Status:    string(it.Status),
			Assignee:  assigneeOf(it),
			UpdatedAt: clock.FormatTimestamp(it.UpdatedAt.In(loc)),
		})
	}
	return out
}
