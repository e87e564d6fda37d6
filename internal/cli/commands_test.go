package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWorkspace lays out a working directory with a config file and one
// intake mail thread, returning the config path.
func writeWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "mail"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mail", "thread-jane.json"), []byte(`{
  "key": "thread-jane",
  "messages": [
    {
      "from": "Intake Forms <forms@osp.example.edu>",
      "subject": "Proposal Intake submission from Jane Smith",
      "date": "2025-09-02",
      "body": "What is your email address? jsmith@example.edu Who is the sponsor? NSF List any co-investigators? Bob Jones Official deadline? 10/30/2025 Lead organization deadline? Expected submission date?"
    }
  ]
}`), 0o644))

	// Event dates track the clock so they land inside the seeding window.
	year := time.Now().Year() + 1
	require.NoError(t, os.WriteFile(filepath.Join(dir, "calendar.json"), []byte(fmt.Sprintf(`[
  {"title": "Thanksgiving Day", "date": "%d-11-27"},
  {"title": "Christmas Day (observed)", "date": "%d-12-26"}
]`, year, year)), 0o644))

	cfg := fmt.Sprintf(`
intake:
  path: %s/intake.csv
mail:
  path: %s/mail
calendar:
  events_path: %s/calendar.json
  holidays_path: %s/holidays.csv
output:
  dir: %s/checklists
ledger:
  path: %s/runway.db
`, dir, dir, dir, dir, dir, dir)
	cfgPath := filepath.Join(dir, "runway.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRunCommandEndToEnd(t *testing.T) {
	cfgPath := writeWorkspace(t)

	// Seed first; run itself never touches the holiday store.
	out, err := execute(t, "seed", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded 1 holidays from 2 events")

	out, err = execute(t, "run", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "ingest:    1 of 1 threads appended")
	assert.Contains(t, out, "generate:  1 of 1 records generated")

	// The document is on disk under its derived name.
	dir := filepath.Dir(cfgPath)
	_, err = os.Stat(filepath.Join(dir, "checklists", "Jane Smith - NSF - 10-30-2025.yaml"))
	require.NoError(t, err)

	// The seeded holiday store kept Thanksgiving and dropped the
	// observed Christmas shift.
	data, err := os.ReadFile(filepath.Join(dir, "holidays.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Thanksgiving Day")
	assert.NotContains(t, string(data), "observed")

	// A second run changes nothing.
	out, err = execute(t, "run", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "ingest:    0 of 1 threads appended")
	assert.Contains(t, out, "generate:  0 of 1 records generated")
	assert.Contains(t, out, "reconcile: 0 of 1 documents updated")
}

func TestIngestThenGenerateCommands(t *testing.T) {
	cfgPath := writeWorkspace(t)

	out, err := execute(t, "ingest", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Appended 1 of 1 threads")

	out, err = execute(t, "generate", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Generated 1 of 1 records")
}

func TestSeedCommandJSONOutput(t *testing.T) {
	cfgPath := writeWorkspace(t)

	out, err := execute(t, "seed", "--config", cfgPath, "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), data["fetched"])
	assert.Equal(t, float64(1), data["seeded"])
}

func TestStatusCommand(t *testing.T) {
	cfgPath := writeWorkspace(t)

	_, err := execute(t, "run", "--config", cfgPath)
	require.NoError(t, err)

	out, err := execute(t, "status", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Threads ingested:    1")
	assert.Contains(t, out, "Documents generated: 1")
	assert.Contains(t, out, "Holidays:            0 (fingerprint ")
	assert.Contains(t, out, "Jane Smith - NSF - 10-30-2025")
	assert.Contains(t, out, "Recent events:")
}

func TestReconcileCommandNoDocuments(t *testing.T) {
	cfgPath := writeWorkspace(t)

	out, err := execute(t, "reconcile", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Updated 0 of 0 documents")
}

func TestMissingConfigIsCommandError(t *testing.T) {
	_, err := execute(t, "run", "--config", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
