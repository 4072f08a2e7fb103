package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lobis/restG4/internal/engine"
	"github.com/lobis/restG4/internal/ir"
	"github.com/lobis/restG4/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	DBPath     string
	RunID      string
	ConfigHash string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs from the run ledger",
		Long: `List runs recorded by apply --db, oldest first.

With --run, show one run including its engine call trace.
With --config, list only runs of the given config hash.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "path to run ledger database (required)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show a single run with its trace")
	cmd.Flags().StringVar(&opts.ConfigHash, "config", "", "filter runs by config hash")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(rootOpts *RootOptions, opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    rootOpts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   rootOpts.Verbose,
	}

	if opts.RunID != "" && opts.ConfigHash != "" {
		_ = formatter.Error(ErrCodeGeneric, "--run and --config are mutually exclusive", nil)
		return NewExitError(ExitCommandError, "--run and --config are mutually exclusive")
	}

	// Opening a missing path would create an empty ledger.
	if _, err := os.Stat(opts.DBPath); os.IsNotExist(err) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("database not found: %s", opts.DBPath), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.DBPath))
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.RunID != "" {
		return showRun(ctx, formatter, st, opts.RunID)
	}

	var runs []ir.Run
	if opts.ConfigHash != "" {
		runs, err = st.ListRunsByConfig(ctx, opts.ConfigHash)
	} else {
		runs, err = st.ListRuns(ctx)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded")
		return nil
	}
	for _, run := range runs {
		em := run.Electromagnetic
		if em == "" {
			em = "-"
		}
		fmt.Fprintf(formatter.Writer, "%4d  %s  %-7s  %s  em=%s hadronic=%s\n",
			run.Seq, run.ID, run.Status, shortHash(run.ConfigHash), em, strings.Join(run.Hadronic, ","))
	}
	return nil
}

func showRun(ctx context.Context, formatter *OutputFormatter, st *store.Store, id string) error {
	run, err := st.ReadRun(ctx, id)
	if errors.Is(err, store.ErrRunNotFound) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("run not found: %s", id), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("run not found: %s", id))
	}
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(run)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Run %s (seq %d, %s)\n", run.ID, run.Seq, run.Status)
	fmt.Fprintf(w, "Config hash:     %s\n", run.ConfigHash)
	fmt.Fprintf(w, "Resolution hash: %s\n", run.ResolutionHash)
	fmt.Fprintf(w, "Resolver:        %s (IR %s)\n", run.ResolverVersion, run.IRVersion)
	if run.Error != "" {
		fmt.Fprintf(w, "Error:           %s\n", run.Error)
	}
	for _, d := range run.Diagnostics {
		fmt.Fprintf(w, "  [%s] %s\n", d.Level, d)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, engine.FormatTrace(run.Trace))
	return nil
}

// shortHash trims a hex hash for list output.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
