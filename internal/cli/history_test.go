package cli

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lobis/restG4/internal/ir"
	"github.com/lobis/restG4/internal/store"
)

// seedLedger applies configs into a fresh ledger, one run per id.
func seedLedger(t *testing.T, runs map[string]string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	rootOpts := &RootOptions{Format: "text"}
	for _, id := range []string{"run-1", "run-2", "run-3"} {
		config, ok := runs[id]
		if !ok {
			continue
		}
		cmd := newApplyCommand(rootOpts, newTestApply(id))
		_, _, err := execute(t, cmd, "--db", dbPath, configPath(config))
		require.NoError(t, err)
	}
	return dbPath
}

func TestHistoryListsRuns(t *testing.T) {
	dbPath := seedLedger(t, map[string]string{"run-1": "livermore.cue", "run-2": "standard.yaml"})

	out, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "run-1")
	assert.Contains(t, out, "em=G4EmLivermorePhysics")
	assert.Contains(t, out, "em=G4EmStandardPhysics_option4")
	assert.Less(t, strings.Index(out, "run-1"), strings.Index(out, "run-2"))
}

func TestHistoryJSONFilterByConfig(t *testing.T) {
	dbPath := seedLedger(t, map[string]string{
		"run-1": "livermore.cue",
		"run-2": "standard.yaml",
		"run-3": "livermore.cue",
	})

	out, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "json"}), "--db", dbPath)
	require.NoError(t, err)
	var all struct {
		Data []ir.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &all))
	require.Len(t, all.Data, 3)

	hash := all.Data[0].ConfigHash
	out, _, err = execute(t, NewHistoryCommand(&RootOptions{Format: "json"}), "--db", dbPath, "--config", hash)
	require.NoError(t, err)
	var filtered struct {
		Data []ir.Run `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &filtered))
	require.Len(t, filtered.Data, 2)
	assert.Equal(t, "run-1", filtered.Data[0].ID)
	assert.Equal(t, "run-3", filtered.Data[1].ID)
}

func TestHistoryShowRun(t *testing.T) {
	dbPath := seedLedger(t, map[string]string{"run-1": "livermore.cue"})

	out, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", dbPath, "--run", "run-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Run run-1 (seq 1, applied)")
	assert.Contains(t, out, "001 energy_range 1 keV 1000000 keV")
	assert.Contains(t, out, "030 cut neutron 0.1 mm")
	assert.Contains(t, out, ir.DiagHadronicCount)
}

func TestHistoryUnknownRun(t *testing.T) {
	dbPath := seedLedger(t, map[string]string{"run-1": "livermore.cue"})

	out, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", dbPath, "--run", "missing")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "run not found")
}

func TestHistoryEmptyLedger(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded")
}

func TestHistoryMissingDatabase(t *testing.T) {
	dbPath := seedLedger(t, map[string]string{})

	// Nothing was applied, so the file does not exist yet
	_, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", dbPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database not found")
}

func TestHistoryRequiresDB(t *testing.T) {
	_, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}

func TestHistoryRunAndConfigExclusive(t *testing.T) {
	dbPath := seedLedger(t, map[string]string{"run-1": "livermore.cue"})

	_, _, err := execute(t, NewHistoryCommand(&RootOptions{Format: "text"}), "--db", dbPath, "--run", "run-1", "--config", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

