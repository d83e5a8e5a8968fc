// Package iojson holds helpers for reading and writing JSON on a command
// line: pretty documents for single results, one object per line for lists,
// and a fixed error envelope.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is the envelope written to stderr when a command fails.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// fallbackError is built by hand so it cannot fail to encode.
func fallbackError(msg string, cause error) string {
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(cause.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// MarshalError renders an error envelope. If data cannot be encoded the
// envelope notes the encoding failure instead.
func MarshalError(msg string, data map[string]any) string {
	bits, err := json.Marshal(Error{Message: msg, Data: data})
	if err != nil {
		return fallbackError(msg, err)
	}
	return string(bits)
}

// WriteError writes an error envelope to w.
func WriteError(w io.Writer, msg string, data map[string]any) error {
	_, err := fmt.Fprintln(w, MarshalError(msg, data))
	return err
}

// WriteWith writes obj as indented JSON to w. Encoding failures are reported
// on ew.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, err = fmt.Fprintln(ew, fallbackError("encode output", err))
		return err
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// WriteLine writes obj as a single line of compact JSON.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("encode line: %w", err)
	}
	_, err = fmt.Fprintln(w, string(bits))
	return err
}
