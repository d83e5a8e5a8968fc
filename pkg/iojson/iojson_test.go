package iojson

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLine(&buf, map[string]int{"a": 1}))
	require.NoError(t, WriteLine(&buf, map[string]int{"b": 2}))
	assert.Equal(t, "{\"a\":1}\n{\"b\":2}\n", buf.String())

	assert.Error(t, WriteLine(&buf, math.NaN()))
}

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, map[string]string{"k": "v"}))
	assert.Equal(t, "{\n  \"k\": \"v\"\n}\n", out.String())
	assert.Empty(t, errOut.String())

	out.Reset()
	require.NoError(t, WriteWith(&out, &errOut, math.Inf(1)))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "json_error")
}

func TestMarshalError(t *testing.T) {
	var e Error
	require.NoError(t, json.Unmarshal([]byte(MarshalError(`bad "input"`, map[string]any{"field": "x"})), &e))
	assert.Equal(t, `bad "input"`, e.Message)
	assert.Equal(t, "x", e.Data["field"])

	var fallback map[string]any
	require.NoError(t, json.Unmarshal([]byte(MarshalError("oops", map[string]any{"f": func() {}})), &fallback))
	assert.Equal(t, "oops", fallback["message"])
}

type sample struct {
	Name string `json:"name"`
}

func TestFileReader(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"x"}`), 0o644))

		fr := &FileReader[sample]{path: path}
		assert.True(t, fr.IsSet())
		got, err := fr.Read()
		require.NoError(t, err)
		assert.Equal(t, "x", got.Name)
	})

	t.Run("stdin", func(t *testing.T) {
		fr := &FileReader[sample]{stdin: strings.NewReader(`{"name":"y"}`)}
		got, err := fr.Read()
		require.NoError(t, err)
		assert.Equal(t, "y", got.Name)
	})

	t.Run("unknown field", func(t *testing.T) {
		fr := &FileReader[sample]{stdin: strings.NewReader(`{"nam":"y"}`)}
		_, err := fr.Read()
		assert.ErrorContains(t, err, "decode JSON")
	})

	t.Run("missing file", func(t *testing.T) {
		fr := &FileReader[sample]{path: filepath.Join(t.TempDir(), "nope.json")}
		_, err := fr.Read()
		assert.ErrorContains(t, err, "open file")
	})
}
