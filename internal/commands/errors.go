package commands

import (
	"errors"
	"io"

	"github.com/colonyops/proma/internal/core/member"
	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/colonyops/proma/pkg/iojson"
	"github.com/hay-kot/criterio"
)

// WriteError reports a failed command on w as a JSON error envelope carrying
// the error kind and, for validation failures, the offending fields. Errors
// with an empty message (an exit code after the command printed its own
// report) are not written.
func WriteError(w io.Writer, err error) {
	if err == nil || err.Error() == "" {
		return
	}
	_ = iojson.WriteError(w, err.Error(), errorData(err))
}

func errorData(err error) map[string]any {
	data := map[string]any{"kind": errorKind(err)}

	var fe criterio.FieldErrors
	if errors.As(err, &fe) {
		fields := make(map[string]string, len(fe))
		for _, f := range fe {
			fields[f.Field] = f.Err.Error()
		}
		data["fields"] = fields
	}
	return data
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, workitem.ErrValidation):
		return "validation"
	case errors.Is(err, workitem.ErrNotFound), errors.Is(err, member.ErrNotFound):
		return "not_found"
	case errors.Is(err, workitem.ErrInvalidIdentifier):
		return "invalid_id"
	case errors.Is(err, member.ErrDuplicate):
		return "conflict"
	case errors.Is(err, workitem.ErrBusy):
		return "busy"
	case errors.Is(err, workitem.ErrStorage):
		return "storage"
	}
	return "error"
}
