package workitem

import (
	"fmt"
	"strings"
	"time"

	"github.com/colonyops/proma/internal/core/clock"
)

// Period is a named time window anchored on "today".
type Period string

const (
	PeriodAll       Period = "all"
	PeriodToday     Period = "today"
	PeriodThisWeek  Period = "this_week"
	PeriodThisMonth Period = "this_month"
	PeriodDueSoon   Period = "due_soon"
	PeriodNextMonth Period = "next_month"
	PeriodOverdue   Period = "overdue"
)

// DueSoonDays is the look-ahead of PeriodDueSoon, inclusive of today.
const DueSoonDays = 3

// Periods lists every period accepted by ParsePeriod.
var Periods = []Period{PeriodAll, PeriodToday, PeriodThisWeek, PeriodThisMonth, PeriodDueSoon, PeriodNextMonth, PeriodOverdue}

// ParsePeriod validates a period name. An empty string means PeriodAll.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PeriodAll, nil
	}
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", Invalidf("unknown time period %q", s)
}

// Window is an inclusive range of calendar days. Zero bounds are open.
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether day falls inside the window.
func (w Window) Contains(day time.Time) bool {
	if !w.From.IsZero() && day.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && day.After(w.To) {
		return false
	}
	return true
}

// Window returns the range of days the period covers relative to today.
// today must already be truncated to midnight.
func (p Period) Window(today time.Time) Window {
	switch p {
	case PeriodToday:
		return Window{From: today, To: today}
	case PeriodThisWeek:
		monday := clock.AddDays(today, -((int(today.Weekday()) + 6) % 7))
		return Window{From: monday, To: clock.AddDays(monday, 6)}
	case PeriodThisMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return Window{From: first, To: first.AddDate(0, 1, -1)}
	case PeriodDueSoon:
		return Window{From: today, To: clock.AddDays(today, DueSoonDays)}
	case PeriodNextMonth:
		first := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, today.Location())
		return Window{From: first, To: first.AddDate(0, 1, -1)}
	case PeriodOverdue:
		return Window{To: clock.AddDays(today, -1)}
	}
	return Window{}
}

// Matches reports whether the item falls in the period. Items whose
// effective due date cannot be parsed never match a dated period.
func (p Period) Matches(it Item, today time.Time) bool {
	if p == PeriodAll || p == "" {
		return true
	}
	if p == PeriodOverdue && it.Status == StatusDone {
		return false
	}
	due, err := clock.ParseDate(it.EffectiveDue(), today.Location())
	if err != nil {
		return false
	}
	return p.Window(today).Contains(due)
}

func (p Period) String() string {
	if p == "" {
		return string(PeriodAll)
	}
	return string(p)
}

// Label is the human readable window, e.g. "01/06/2026 - 07/06/2026".
func (p Period) Label(today time.Time) string {
	w := p.Window(today)
	switch {
	case w.From.IsZero() && w.To.IsZero():
		return "all time"
	case w.From.IsZero():
		return fmt.Sprintf("before %s", clock.FormatDate(today))
	}
	return fmt.Sprintf("%s - %s", clock.FormatDate(w.From), clock.FormatDate(w.To))
}
