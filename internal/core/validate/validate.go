// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/colonyops/proma/internal/core/clock"
	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/hay-kot/criterio"
)

// Name validates a name is non-empty after trimming whitespace.
func Name(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

// NameField returns a criterio validator for names.
func NameField(field, name string) error {
	return criterio.Run(field, name, Name)
}

// IDOf returns a validator requiring an identifier of the given kind.
func IDOf(kind workitem.Kind) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s id is required", strings.ToLower(string(kind)))
		}
		_, err := workitem.ParseIDOf(s, kind)
		return err
	}
}

// IDField returns a criterio validator for an identifier of the given kind.
func IDField(field, value string, kind workitem.Kind) error {
	return criterio.Run(field, value, IDOf(kind))
}

// Date validates an optional dd/MM/yyyy date. Empty is accepted.
func Date(loc *time.Location) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		_, err := clock.ParseDate(s, loc)
		return err
	}
}

// DateField returns a criterio validator for an optional date.
func DateField(field, value string, loc *time.Location) error {
	return criterio.Run(field, value, Date(loc))
}

// DueNotBeforeStart rejects a due date that falls before the start date.
// Either side that is empty or unparseable is ignored; format errors are
// reported by DateField.
func DueNotBeforeStart(field, start, due string, loc *time.Location) error {
	s, err := clock.ParseDate(start, loc)
	if err != nil {
		return nil
	}
	d, err := clock.ParseDate(due, loc)
	if err != nil {
		return nil
	}
	if d.Before(s) {
		return criterio.NewFieldErrors(field, fmt.Errorf("due date %s is before start date %s", due, start))
	}
	return nil
}

// Email validates an optional bare email address. Display names and angle
// brackets are rejected.
func Email(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return fmt.Errorf("invalid email %q", s)
	}
	return nil
}
