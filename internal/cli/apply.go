package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lobis/restG4/internal/engine"
	"github.com/lobis/restG4/internal/ir"
	"github.com/lobis/restG4/internal/store"
)

// ApplyOptions holds flags for the apply command.
type ApplyOptions struct {
	DBPath string
	// RunIDs overrides run id generation; nil uses UUIDv7.
	RunIDs engine.RunIDGenerator
}

// ApplyResult is the JSON payload of the apply command.
type ApplyResult struct {
	RunID          string          `json:"run_id"`
	Seq            int64           `json:"seq,omitempty"`
	Status         string          `json:"status"`
	ConfigHash     string          `json:"config_hash"`
	ResolutionHash string          `json:"resolution_hash"`
	Trace          []ir.EngineCall `json:"trace"`
	Error          string          `json:"error,omitempty"`
}

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	return newApplyCommand(rootOpts, &ApplyOptions{})
}

func newApplyCommand(rootOpts *RootOptions, opts *ApplyOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <config>",
		Short: "Resolve a physics description and apply it to a recording engine",
		Long: `Resolve a physics description and drive a recording engine through particle
construction, process construction, step limiters and production cuts.

The engine call trace is printed. With --db the run is recorded in the run
ledger, including failed runs.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "path to run ledger database (optional)")

	return cmd
}

func runApply(rootOpts *RootOptions, opts *ApplyOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}
	logger := newLogger(rootOpts, formatter.GetErrWriter())

	r, err := resolveConfig(formatter, logger, path)
	if err != nil {
		return err
	}

	runIDs := opts.RunIDs
	if runIDs == nil {
		runIDs = engine.UUIDv7Generator{}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rec := engine.NewRecorder()
	applyErr := engine.NewExecutor(engine.WithLogger(logger)).ApplySetup(ctx, rec, r.setup)

	run := ir.Run{
		ID:              runIDs.Generate(),
		Status:          ir.RunApplied,
		ConfigHash:      r.configHash,
		ResolutionHash:  r.resolutionHash,
		Electromagnetic: r.resolution.Electromagnetic,
		Hadronic:        r.resolution.Hadronic,
		Diagnostics:     r.resolution.Diagnostics,
		Trace:           rec.Calls(),
		ResolverVersion: ir.ResolverVersion,
		IRVersion:       ir.IRVersion,
	}
	if applyErr != nil {
		run.Status = ir.RunFailed
		run.Error = applyErr.Error()
	}

	if opts.DBPath != "" {
		seq, err := recordRun(ctx, opts.DBPath, run)
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		run.Seq = seq
		formatter.VerboseLog("Recorded run %s (seq %d) in %s", run.ID, seq, opts.DBPath)
	}

	if applyErr != nil {
		_ = formatter.Error(ErrCodeApplyFailed, applyErr.Error(), map[string]any{"run_id": run.ID})
		return WrapExitError(ExitFailure, "apply failed", applyErr)
	}

	if formatter.Format == "json" {
		return formatter.Success(ApplyResult{
			RunID:          run.ID,
			Seq:            run.Seq,
			Status:         run.Status,
			ConfigHash:     run.ConfigHash,
			ResolutionHash: run.ResolutionHash,
			Trace:          run.Trace,
		})
	}

	fmt.Fprintf(formatter.Writer, "Run %s (%s)\n", run.ID, run.Status)
	fmt.Fprintln(formatter.Writer)
	fmt.Fprint(formatter.Writer, engine.FormatTrace(run.Trace))
	fmt.Fprintln(formatter.Writer)
	fmt.Fprintf(formatter.Writer, "%d engine call(s), resolution %s\n", len(run.Trace), run.ResolutionHash)
	return nil
}

// recordRun opens the ledger at path and writes run, returning its seq.
func recordRun(ctx context.Context, path string, run ir.Run) (int64, error) {
	st, err := store.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open database: %w", err)
	}
	defer st.Close()

	seq, _, err := st.WriteRun(ctx, run)
	if err != nil {
		return 0, err
	}
	return seq, nil
}
