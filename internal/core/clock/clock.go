// Package clock provides the engine's single fixed-timezone notion of "now"
// and the dd/MM/yyyy date format used for every stored date.
package clock

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultTimezone is used when no timezone is configured.
	DefaultTimezone = "Asia/Ho_Chi_Minh"

	// DateLayout is the stored format of start_date, due_date and deadline_extend.
	DateLayout = "02/01/2006"
	// TimestampLayout is the display format of timestamps.
	TimestampLayout = "02/01/2006 15:04:05"
)

// Clock returns the current time in a fixed location.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// Zoned is the wall clock pinned to one location.
type Zoned struct {
	loc *time.Location
}

// New loads the named IANA timezone. An empty name selects DefaultTimezone.
func New(timezone string) (*Zoned, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &Zoned{loc: loc}, nil
}

func (z *Zoned) Now() time.Time { return time.Now().In(z.loc) }

func (z *Zoned) Location() *time.Location { return z.loc }

// Fixed always returns the same instant. Used by tests and by callers that
// need a stable "today" across one operation.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

func (f Fixed) Location() *time.Location { return f.T.Location() }

// Today returns midnight of the current day in the clock's location.
func Today(c Clock) time.Time {
	return StartOfDay(c.Now())
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDate renders t as dd/MM/yyyy.
func FormatDate(t time.Time) string { return t.Format(DateLayout) }

// FormatTimestamp renders t as dd/MM/yyyy HH:mm:ss.
func FormatTimestamp(t time.Time) string { return t.Format(TimestampLayout) }

// ParseDate parses either dd/MM/yyyy or dd/MM/yyyy HH:mm:ss in loc and
// returns the calendar day at midnight.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range []string{DateLayout, TimestampLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return StartOfDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected dd/MM/yyyy", s)
}

// AddDays shifts a calendar day by n days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}
