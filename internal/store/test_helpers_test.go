package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/lobis/restG4/internal/ir"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun creates a run with minimal required fields and n engine calls.
func createTestRun(id, configHash string, calls int) ir.Run {
	trace := make([]ir.EngineCall, calls)
	for i := range trace {
		trace[i] = ir.EngineCall{
			Seq:    int64(i + 1),
			Op:     "cut",
			Target: fmt.Sprintf("particle-%d", i),
			Value:  "0.1 mm",
		}
	}
	return ir.Run{
		ID:              id,
		Status:          ir.RunApplied,
		ConfigHash:      configHash,
		ResolutionHash:  "resolution-" + configHash,
		Electromagnetic: "G4EmLivermorePhysics",
		Hadronic:        []string{"G4HadronElasticPhysicsHP"},
		Trace:           trace,
		ResolverVersion: ir.ResolverVersion,
		IRVersion:       ir.IRVersion,
	}
}
