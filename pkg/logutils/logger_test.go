package logutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	_, closer, err := New("loud", "")
	defer closer()
	require.Error(t, err)
}

func TestNew_AppendsToFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "proma.log")

	l, closer, err := New("info", file)
	require.NoError(t, err)
	l.Info().Msg("first")
	l.Debug().Msg("filtered")
	closer()

	l, closer, err = New("info", file)
	require.NoError(t, err)
	l.Info().Msg("second")
	closer()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"first"`)
	assert.Contains(t, string(data), `"message":"second"`)
	assert.NotContains(t, string(data), "filtered")
}
