package workitem

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var prefixes = map[Kind]string{
	KindEpic:    "epic-",
	KindTask:    "task-",
	KindSubTask: "subtask-",
}

// ID is an identifier whose kind has already been decoded from its prefix.
type ID struct {
	Kind Kind
	raw  string
}

// NewID generates a fresh identifier for kind: the kind prefix followed by a
// random 128-bit suffix in hex.
func NewID(kind Kind) ID {
	return ID{Kind: kind, raw: prefixes[kind] + strings.ReplaceAll(uuid.NewString(), "-", "")}
}

// ParseID decodes the kind of an identifier from its prefix. The prefix is the
// only signal used for dispatch.
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	// "subtask-" is checked before "task-" so the longer prefix wins.
	for _, kind := range []Kind{KindSubTask, KindEpic, KindTask} {
		prefix := prefixes[kind]
		if strings.HasPrefix(s, prefix) && len(s) > len(prefix) {
			return ID{Kind: kind, raw: s}, nil
		}
	}
	return ID{}, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
}

// ParseIDOf parses s and requires it to be of the given kind.
func ParseIDOf(s string, kind Kind) (ID, error) {
	id, err := ParseID(s)
	if err != nil {
		return ID{}, err
	}
	if id.Kind != kind {
		return ID{}, fmt.Errorf("%w: %q is a %s id, expected %s", ErrInvalidIdentifier, s, id.Kind, kind)
	}
	return id, nil
}

func (id ID) String() string { return id.raw }

// IsZero reports whether the id was never set.
func (id ID) IsZero() bool { return id.raw == "" }
