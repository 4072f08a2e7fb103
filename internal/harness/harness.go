package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/lobis/restG4/internal/compiler"
	"github.com/lobis/restG4/internal/engine"
	"github.com/lobis/restG4/internal/ir"
	"github.com/lobis/restG4/internal/physics"
	"github.com/lobis/restG4/internal/store"
	"github.com/lobis/restG4/internal/testutil"
)

// Error codes reported for failures that are not resolution or validation codes.
const (
	ErrCodeCompile = "COMPILE_ERROR"
	ErrCodeApply   = "APPLY_FAILED"
)

// Harness is the test execution engine.
// It runs scenarios with a deterministic clock and a fixed run id.
type Harness struct {
	store  *store.Store
	clock  *testutil.DeterministicClock
	runIDs *testutil.FixedRunIDGenerator
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// Deterministic helpers ensure reproducible results.
//
// Execution flow:
// 1. Create fresh in-memory run ledger
// 2. Compile and validate the physics description
// 3. Resolve modules, cuts and limiters
// 4. Apply the setup against a recording engine
// 5. Record the run and read its trace back
// 6. Return result with pass/fail, trace, and errors
//
// An error is returned only when the scenario itself cannot be executed;
// resolution failures are outcomes checked against expect.error.
func Run(scenario *Scenario) (*Result, error) {
	// Create fresh in-memory SQLite database
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	h := &Harness{
		store:  st,
		clock:  testutil.NewDeterministicClock(),
		runIDs: testutil.NewFixedRunIDGenerator(scenario.RunID),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	result := NewResult()
	if err := h.execute(context.Background(), scenario, result); err != nil {
		return nil, err
	}

	checkExpectations(scenario, result)
	if result.ErrorCode == "" {
		for _, msg := range EvaluateAssertions(result.Trace, scenario.Assertions) {
			result.AddError(msg)
		}
	}

	return result, nil
}

func (h *Harness) execute(ctx context.Context, scenario *Scenario, result *Result) error {
	cfg, err := loadConfig(scenario)
	if err != nil {
		var ce *compiler.CompileError
		if errors.As(err, &ce) {
			result.ErrorCode = ErrCodeCompile
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	if errs := compiler.Validate(cfg); len(errs) > 0 {
		result.ErrorCode = errs[0].Code
		return nil
	}

	setup, err := physics.Build(cfg, physics.BuildOptions{Logger: h.logger})
	if err != nil {
		var re *physics.ResolveError
		if errors.As(err, &re) {
			result.ErrorCode = string(re.Code)
			return nil
		}
		return fmt.Errorf("failed to resolve: %w", err)
	}
	result.Resolution = setup.Resolution()

	rec := engine.NewRecorder(engine.WithClock(h.clock))
	run := ir.Run{
		ID:              h.runIDs.Generate(),
		Status:          ir.RunApplied,
		Electromagnetic: result.Resolution.Electromagnetic,
		Hadronic:        result.Resolution.Hadronic,
		Diagnostics:     result.Resolution.Diagnostics,
		ResolverVersion: ir.ResolverVersion,
		IRVersion:       ir.IRVersion,
	}
	if run.ConfigHash, err = ir.ConfigHash(cfg); err != nil {
		return err
	}
	if run.ResolutionHash, err = ir.ResolutionHash(result.Resolution); err != nil {
		return err
	}

	applyErr := engine.NewExecutor(engine.WithLogger(h.logger)).ApplySetup(ctx, rec, setup)
	if applyErr != nil {
		run.Status = ir.RunFailed
		run.Error = applyErr.Error()
		result.ErrorCode = ErrCodeApply
	}
	run.Trace = rec.Calls()

	if _, _, err := h.store.WriteRun(ctx, run); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	stored, err := h.store.ReadRun(ctx, run.ID)
	if err != nil {
		return fmt.Errorf("failed to read run back: %w", err)
	}
	result.Trace = stored.Trace

	return nil
}

func loadConfig(scenario *Scenario) (*ir.PhysicsConfig, error) {
	if scenario.ConfigFile != "" {
		return compiler.LoadPath(scenario.ConfigFile)
	}
	return compiler.CompileSource(scenario.Name+".cue", []byte(scenario.Config))
}
