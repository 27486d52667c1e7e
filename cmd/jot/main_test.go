package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/core"
)

// resetFlags restores every flag of cmd and its children to its default,
// since the commands are package-level and survive between runs.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	resetFlags(rootCmd)
	cfg = nil

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setupCLI(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(viper.Reset)
	return t.TempDir()
}

func listJSONNotes(t *testing.T, args ...string) []core.Note {
	t.Helper()
	out, err := run(t, append([]string{"list", "--json"}, args...)...)
	require.NoError(t, err)
	var notes []core.Note
	require.NoError(t, json.Unmarshal([]byte(out), &notes))
	return notes
}

func TestCLI_AddListEditDelete(t *testing.T) {
	dir := setupCLI(t)

	out, err := run(t, "add", "--data-dir", dir, "--title", "Groceries", "--content", "milk")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	_, err = run(t, "add", "--data-dir", dir, "-t", "Meeting")
	require.NoError(t, err)

	notes := listJSONNotes(t, "--data-dir", dir)
	require.Len(t, notes, 2)
	assert.Equal(t, "Meeting", notes[0].Title, "most recent first")

	_, err = run(t, "edit", id, "--data-dir", dir, "--content", "milk, eggs")
	require.NoError(t, err)

	notes = listJSONNotes(t, "--data-dir", dir)
	require.Len(t, notes, 2)
	assert.Equal(t, id, notes[0].ID, "edited note moves to the top")
	assert.Equal(t, "Groceries", notes[0].Title, "title flag not given keeps the title")
	assert.Equal(t, "milk, eggs", notes[0].Content)

	out, err = run(t, "rm", id, "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+id)

	notes = listJSONNotes(t, "--data-dir", dir)
	require.Len(t, notes, 1)
	assert.Equal(t, "Meeting", notes[0].Title)

	// Deleting again is fine.
	_, err = run(t, "delete", id, "--data-dir", dir)
	require.NoError(t, err)
}

func TestCLI_AddRejectsBlankTitle(t *testing.T) {
	dir := setupCLI(t)

	_, err := run(t, "add", "--data-dir", dir, "--title", "   ")
	assert.ErrorIs(t, err, core.ErrEmptyTitle)

	assert.Empty(t, listJSONNotes(t, "--data-dir", dir))
}

func TestCLI_EditUnknown(t *testing.T) {
	dir := setupCLI(t)

	_, err := run(t, "edit", "missing", "--data-dir", dir, "--title", "x")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestCLI_ListFormats(t *testing.T) {
	dir := setupCLI(t)
	for _, title := range []string{"work: plan", "home: chores", "work: review"} {
		_, err := run(t, "add", "--data-dir", dir, "--title", title)
		require.NoError(t, err)
	}

	notes := listJSONNotes(t, "--data-dir", dir, "--match", "work:*")
	require.Len(t, notes, 2)
	assert.Equal(t, "work: review", notes[0].Title)

	out, err := run(t, "list", "--data-dir", dir, "--yaml", "--match", "home*")
	require.NoError(t, err)
	assert.Contains(t, out, "title: 'home: chores'")

	out, err = run(t, "list", "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "work: plan")

	_, err = run(t, "list", "--data-dir", dir, "--json", "--yaml")
	assert.Error(t, err)

	_, err = run(t, "list", "--data-dir", dir, "--match", "[oops")
	assert.Error(t, err)
}

func TestCLI_EmptyList(t *testing.T) {
	dir := setupCLI(t)

	out, err := run(t, "list", "--data-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No notes.")
}

func TestCLI_SQLiteStorage(t *testing.T) {
	dir := setupCLI(t)

	_, err := run(t, "add", "--data-dir", dir, "--storage", "sqlite", "--title", "in sqlite")
	require.NoError(t, err)

	notes := listJSONNotes(t, "--data-dir", dir, "--storage", "sqlite")
	require.Len(t, notes, 1)
	assert.Equal(t, "in sqlite", notes[0].Title)

	// The file driver does not see it.
	assert.Empty(t, listJSONNotes(t, "--data-dir", dir))
}

func TestCLI_InvalidConfig(t *testing.T) {
	dir := setupCLI(t)

	_, err := run(t, "list", "--data-dir", dir, "--storage", "redis")
	assert.ErrorContains(t, err, "storage.driver")
}

func TestCLI_Remote(t *testing.T) {
	setupCLI(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[{"id":"r1","title":"from server","content":"","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`))
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"r2","title":"posted","content":"","createdAt":"2024-01-02T00:00:00Z","updatedAt":"2024-01-02T00:00:00Z"}`))
		default:
			http.Error(w, "unsupported", http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()
	t.Setenv("JOT_API_BASE_URL", srv.URL)

	notes := listJSONNotes(t)
	require.Len(t, notes, 1)
	assert.Equal(t, "from server", notes[0].Title)

	out, err := run(t, "add", "--title", "posted")
	require.NoError(t, err)
	assert.Equal(t, "r2", strings.TrimSpace(out))

	_, err = run(t, "rm", "r1")
	var te *core.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusMethodNotAllowed, te.StatusCode)
}

func TestCLI_Status(t *testing.T) {
	dir := setupCLI(t)

	out, err := run(t, "status", "--data-dir", dir, "--storage", "memory")
	require.NoError(t, err)

	var report struct {
		Config struct {
			Storage struct {
				Driver string `json:"driver"`
			} `json:"storage"`
		} `json:"config"`
		Service struct {
			Backend string `json:"backend"`
			Remote  bool   `json:"remote"`
		} `json:"service"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "memory", report.Config.Storage.Driver)
	assert.Equal(t, "local", report.Service.Backend)
	assert.False(t, report.Service.Remote)

	out, err = run(t, "status", "--api-base", "http://127.0.0.1:1")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "remote", report.Service.Backend)
	assert.True(t, report.Service.Remote)
}

func TestCLI_Version(t *testing.T) {
	setupCLI(t)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Regexp(t, `^jot version \d+\.\d+\.\d+`, out)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "ERROR", parseLevel("ERROR").String())
	assert.Equal(t, "WARN", parseLevel("").String())
}

func TestCLI_WatchUnsupported(t *testing.T) {
	setupCLI(t)

	_, err := run(t, "watch", "--storage", "memory")
	assert.ErrorIs(t, err, core.ErrWatchUnsupported)
}
