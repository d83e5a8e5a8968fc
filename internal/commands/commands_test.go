package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/colonyops/proma/internal/core/clock"
	"github.com/colonyops/proma/internal/core/config"
	"github.com/colonyops/proma/internal/core/workitem"
	"github.com/colonyops/proma/internal/data/db"
	"github.com/colonyops/proma/internal/proma"
	"github.com/colonyops/proma/pkg/iojson"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func TestParseAssignments(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []string
		want    map[string]string
		wantErr string
	}{
		{name: "single", pairs: []string{"status=Done"}, want: map[string]string{"status": "Done"}},
		{name: "value with equals", pairs: []string{"description=a=b"}, want: map[string]string{"description": "a=b"}},
		{name: "empty value", pairs: []string{"category="}, want: map[string]string{"category": ""}},
		{name: "none", pairs: nil, want: map[string]string{}},
		{name: "missing equals", pairs: []string{"status"}, wantErr: "expected field=value"},
		{name: "empty key", pairs: []string{"=x"}, wantErr: "expected field=value"},
		{name: "duplicate", pairs: []string{"status=Done", "status=To-do"}, wantErr: "more than once"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAssignments(tt.pairs)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlags_Identity(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Identity = config.IdentityConfig{WorkspaceID: "ws-cfg", UserID: "u-cfg", UserName: "Config User"}

	f := &Flags{Config: &cfg}
	assert.Equal(t, workitem.Identity{WorkspaceID: "ws-cfg", UserID: "u-cfg", UserName: "Config User"}, f.Identity())

	f.UserID = "u-flag"
	f.UserName = "Flag User"
	assert.Equal(t, workitem.Identity{WorkspaceID: "ws-cfg", UserID: "u-flag", UserName: "Flag User"}, f.Identity())

	assert.Equal(t, workitem.Identity{WorkspaceID: "ws"}, (&Flags{WorkspaceID: "ws"}).Identity())
}

func TestValidateConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	out := validateConfig(&cfg, "")
	assert.True(t, out.Valid)
	assert.Len(t, out.Warnings, 2)

	cfg.Timezone = "Nowhere/Special"
	out = validateConfig(&cfg, "")
	assert.False(t, out.Valid)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, "timezone", out.Errors[0].Field)
}

// harness runs commands against a real database the way main wires them.
type harness struct {
	flags *Flags
	app   *proma.App
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Identity = config.IdentityConfig{WorkspaceID: "ws-1", UserID: "user-1", UserName: "Owner"}

	database, err := db.Open(cfg.DataDir, db.DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	loc, err := time.LoadLocation(clock.DefaultTimezone)
	require.NoError(t, err)
	clk := clock.Fixed{T: time.Date(2026, 6, 10, 9, 0, 0, 0, loc)}

	return &harness{
		flags: &Flags{Config: &cfg},
		app:   proma.NewApp(&cfg, database, clk, zerolog.Nop()),
	}
}

// run executes args on a freshly registered root so flag state never leaks
// between invocations.
func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := &cli.Command{Name: "proma", Writer: &out, ErrWriter: &errOut}
	root = NewCreateCmd(h.flags, h.app).Register(root)
	root = NewGetCmd(h.flags, h.app).Register(root)
	root = NewDeleteCmd(h.flags, h.app).Register(root)
	root = NewUpdateCmd(h.flags, h.app).Register(root)
	root = NewListCmd(h.flags, h.app).Register(root)
	root = NewReportCmd(h.flags, h.app).Register(root)
	root = NewMemberCmd(h.flags, h.app).Register(root)
	root = NewDBCmd(h.flags, h.app).Register(root)

	err := root.Run(context.Background(), append([]string{"proma"}, args...))
	return out.String(), err
}

func (h *harness) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := h.run(t, args...)
	require.NoError(t, err)
	return out
}

func decodeJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(s), &v), s)
	return v
}

func TestCommands_Hierarchy(t *testing.T) {
	h := newHarness(t)

	epic := decodeJSON[workitem.Item](t, h.mustRun(t, "create", "--type", "Epic", "--name", "Launch"))
	task := decodeJSON[workitem.Item](t, h.mustRun(t, "create", "--type", "Task", "--name", "Design", "--epic", epic.EpicID))
	sub := decodeJSON[workitem.Item](t, h.mustRun(t, "create", "--type", "Sub-task", "--name", "Wireframe", "--epic", epic.EpicID, "--task", task.TaskID))

	res := decodeJSON[proma.CascadeResult](t, h.mustRun(t, "get", epic.EpicID))
	assert.Equal(t, 3, res.TotalCount)
	require.Len(t, res.Items, 3)
	assert.Equal(t, sub.SubTaskID, res.Items[2].SubTaskID)

	updated := decodeJSON[workitem.Item](t, h.mustRun(t, "update", "--set", "status=Done", "--set", "category=design", task.TaskID))
	assert.Equal(t, workitem.StatusDone, updated.Status)
	assert.Equal(t, "design", updated.Category)

	lines := strings.Split(strings.TrimSpace(h.mustRun(t, "list", "--scope", "Task")), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, task.TaskID, decodeJSON[workitem.Item](t, lines[0]).TaskID)

	outline := h.mustRun(t, "list", "--tree", "--format", "text")
	assert.Contains(t, outline, "[Epic] "+epic.EpicID)
	assert.Contains(t, outline, "\n    [Sub-task] "+sub.SubTaskID)

	preview := decodeJSON[proma.DeleteResult](t, h.mustRun(t, "delete", epic.EpicID))
	assert.True(t, preview.DryRun)
	assert.Equal(t, 3, preview.DeletedCount.Total())

	deleted := decodeJSON[proma.DeleteResult](t, h.mustRun(t, "delete", "--dry-run=false", epic.EpicID))
	assert.False(t, deleted.DryRun)

	_, err := h.run(t, "get", epic.EpicID)
	assert.ErrorIs(t, err, workitem.ErrNotFound)
}

func TestCommands_CreateFromFile(t *testing.T) {
	h := newHarness(t)

	path := filepath.Join(t.TempDir(), "item.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"Epic","epic_name":"From file","priority":"High"}`), 0o644))

	epic := decodeJSON[workitem.Item](t, h.mustRun(t, "create", "-f", path))
	assert.Equal(t, "From file", epic.EpicName)
	assert.Equal(t, workitem.PriorityHigh, epic.Priority)
}

func TestCommands_Errors(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "get")
	assert.ErrorContains(t, err, "missing <id>")

	_, err = h.run(t, "update", "epic-1")
	assert.ErrorIs(t, err, workitem.ErrValidation)

	_, err = h.run(t, "update", "--set", "nonsense", "epic-1")
	assert.ErrorContains(t, err, "expected field=value")

	_, err = h.run(t, "create", "--type", "Task", "--name", "T")
	assert.ErrorIs(t, err, workitem.ErrValidation)
}

func TestCommands_MembersAndReport(t *testing.T) {
	h := newHarness(t)

	h.mustRun(t, "member", "add", "--name", "Lan", "--team", "Platform")
	lines := strings.Split(strings.TrimSpace(h.mustRun(t, "member", "ls")), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"member_name":"Lan"`)

	item := decodeJSON[workitem.Item](t, h.mustRun(t, "create", "--type", "Epic", "--name", "E", "--assignee", "lan"))
	assert.Equal(t, "Lan", item.AssigneeName)

	var r struct {
		TimePeriod        string         `json:"time_period"`
		AssigneeBreakdown map[string]any `json:"assignee_breakdown"`
	}
	require.NoError(t, json.Unmarshal([]byte(h.mustRun(t, "report", "--period", "all", "--assignees")), &r))
	assert.Equal(t, "all", r.TimePeriod)
	assert.Contains(t, r.AssigneeBreakdown, "Lan")
}

func TestWriteError(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "get", "epic-00000000-0000-0000-0000-000000000000")
	require.Error(t, err)

	var buf bytes.Buffer
	WriteError(&buf, err)
	e := decodeJSON[iojson.Error](t, buf.String())
	assert.Equal(t, err.Error(), e.Message)
	assert.Equal(t, "not_found", e.Data["kind"])

	_, err = h.run(t, "create", "--type", "Task", "--name", "T")
	require.Error(t, err)

	buf.Reset()
	WriteError(&buf, err)
	e = decodeJSON[iojson.Error](t, buf.String())
	assert.Equal(t, "validation", e.Data["kind"])
	fields, ok := e.Data["fields"].(map[string]any)
	require.True(t, ok, "fields: %v", e.Data)
	assert.Contains(t, fields, "epic_id")

	buf.Reset()
	WriteError(&buf, cli.Exit("", 1))
	WriteError(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestCommands_DBRollback(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	countMigrations := func() int {
		var n int
		require.NoError(t, h.app.DB.Conn().QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&n))
		return n
	}

	before := countMigrations()
	require.Positive(t, before)

	out := h.mustRun(t, "db", "rollback")
	assert.JSONEq(t, `{"reverted":1}`, out)
	assert.Equal(t, before-1, countMigrations())

	_, err := h.run(t, "db", "rollback", "--steps", "99")
	assert.ErrorContains(t, err, "only")
	assert.Equal(t, before-1, countMigrations())
}
