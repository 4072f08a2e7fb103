package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lobis/restG4/internal/engine"
	"github.com/lobis/restG4/internal/ir"
	"github.com/lobis/restG4/internal/store"
)

func newTestApply(ids ...string) *ApplyOptions {
	return &ApplyOptions{RunIDs: engine.NewFixedGenerator(ids...)}
}

func TestApplyPrintsTrace(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	cmd := newApplyCommand(rootOpts, newTestApply("run-1"))

	out, _, err := execute(t, cmd, configPath("livermore.cue"))
	require.NoError(t, err)

	assert.Contains(t, out, "Run run-1 (applied)")
	assert.Contains(t, out, "001 energy_range 1 keV 1000000 keV")
	assert.Contains(t, out, "008 construct_processes G4EmLivermorePhysics")
	assert.Contains(t, out, "023 step_limiter ion(6,14)=C14 ionStep")
	assert.Contains(t, out, "030 cut neutron 0.1 mm")
	assert.Contains(t, out, "30 engine call(s)")
}

func TestApplyJSON(t *testing.T) {
	rootOpts := &RootOptions{Format: "json"}
	cmd := newApplyCommand(rootOpts, newTestApply("run-json"))

	out, _, err := execute(t, cmd, configPath("penelope.json"))
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   ApplyResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-json", resp.Data.RunID)
	assert.Equal(t, ir.RunApplied, resp.Data.Status)
	assert.Zero(t, resp.Data.Seq, "no ledger, no seq")
	require.NotEmpty(t, resp.Data.Trace)
	assert.Equal(t, "energy_range", resp.Data.Trace[0].Op)
	assert.Equal(t, int64(1), resp.Data.Trace[0].Seq)
}

func TestApplyRecordsRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	rootOpts := &RootOptions{Format: "text"}
	for _, id := range []string{"run-a", "run-b"} {
		cmd := newApplyCommand(rootOpts, newTestApply(id))
		_, _, err := execute(t, cmd, "--db", dbPath, configPath("livermore.cue"))
		require.NoError(t, err)
	}

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	runs, err := st.ListRuns(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-a", runs[0].ID)
	assert.Equal(t, int64(1), runs[0].Seq)
	assert.Equal(t, int64(2), runs[1].Seq)
	assert.Equal(t, runs[0].ConfigHash, runs[1].ConfigHash)
	assert.Equal(t, runs[0].ResolutionHash, runs[1].ResolutionHash)

	run, err := st.ReadRun(context.Background(), "run-a")
	require.NoError(t, err)
	assert.Len(t, run.Trace, 30)
	assert.Equal(t, "G4EmLivermorePhysics", run.Electromagnetic)
	assert.Equal(t, ir.ResolverVersion, run.ResolverVersion)
}

func TestApplyExclusivityRecordsNothing(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	rootOpts := &RootOptions{Format: "text"}
	cmd := newApplyCommand(rootOpts, newTestApply("never"))
	out, _, err := execute(t, cmd, "--db", dbPath, configPath("exclusivity.cue"))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "EXCLUSIVITY_VIOLATION")
	assert.NotContains(t, out, "energy_range")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()
	runs, err := st.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestApplyDefaultRunIDIsUUID(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	out, _, err := execute(t, NewApplyCommand(rootOpts), configPath("standard.yaml"))
	require.NoError(t, err)

	line := strings.SplitN(out, "\n", 2)[0]
	require.True(t, strings.HasPrefix(line, "Run "))
	id := strings.Fields(line)[1]
	assert.Len(t, id, 36)
}

func TestApplyMissingConfig(t *testing.T) {
	rootOpts := &RootOptions{Format: "text"}
	_, _, err := execute(t, NewApplyCommand(rootOpts), "/nonexistent/physics.cue")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
