package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lobis/restG4/internal/ir"
	"github.com/lobis/restG4/internal/physics"
)

// ResolveResult is the JSON payload of the resolve command.
type ResolveResult struct {
	ConfigHash     string         `json:"config_hash"`
	ResolutionHash string         `json:"resolution_hash"`
	Resolution     *ir.Resolution `json:"resolution"`
}

// resolved is the outcome of loading, validating and resolving a config.
type resolved struct {
	config         *ir.PhysicsConfig
	setup          *physics.Setup
	resolution     *ir.Resolution
	configHash     string
	resolutionHash string
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <config>",
		Short: "Resolve a physics description without applying it",
		Long: `Resolve a physics description into its module selection, production cut
table and step limiter plan, and print the result.

Nothing is applied to an engine. Use apply to drive construction.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runResolve(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	r, err := resolveConfig(formatter, newLogger(opts, formatter.GetErrWriter()), path)
	if err != nil {
		return err
	}

	if formatter.Format == "json" {
		return formatter.Success(ResolveResult{
			ConfigHash:     r.configHash,
			ResolutionHash: r.resolutionHash,
			Resolution:     r.resolution,
		})
	}

	writeResolution(formatter, r)
	return nil
}

// resolveConfig loads, validates and resolves a physics description.
// Failures are written through the formatter and returned as ExitErrors.
func resolveConfig(formatter *OutputFormatter, logger *slog.Logger, path string) (*resolved, error) {
	cfg, err := loadAndValidate(formatter, path)
	if err != nil {
		return nil, err
	}

	setup, err := physics.Build(cfg, physics.BuildOptions{Logger: logger})
	if err != nil {
		return nil, outputResolveError(formatter, err)
	}

	r := &resolved{config: cfg, setup: setup, resolution: setup.Resolution()}
	if r.configHash, err = ir.ConfigHash(cfg); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to hash config", err)
	}
	if r.resolutionHash, err = ir.ResolutionHash(r.resolution); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to hash resolution", err)
	}
	return r, nil
}

// outputResolveError reports a resolution failure. Resolution failures are
// properties of the config, so they exit with ExitFailure.
func outputResolveError(formatter *OutputFormatter, err error) error {
	var re *physics.ResolveError
	if !errors.As(err, &re) {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "resolution failed", err)
	}

	var details any
	if len(re.Names) > 0 {
		details = map[string]any{"names": re.Names}
	}
	msg := re.Message
	if re.Code == physics.ErrCodeExclusivityViolation {
		msg = fmt.Sprintf("%s: %s", re.Message, strings.Join(re.Names, ", "))
	}
	_ = formatter.Error(string(re.Code), msg, details)
	return NewExitError(ExitFailure, re.Error())
}

// writeResolution prints a resolution in text format.
func writeResolution(formatter *OutputFormatter, r *resolved) {
	w := formatter.Writer
	res := r.resolution
	title := cases.Title(language.English)

	fmt.Fprintln(w, "Modules:")
	categories := []struct {
		category ir.Category
		names    []string
	}{
		{ir.CategoryDecay, nonEmpty(res.Decay)},
		{ir.CategoryRadioactiveDecay, nonEmpty(res.RadioactiveDecay)},
		{ir.CategoryElectromagnetic, nonEmpty(res.Electromagnetic)},
		{ir.CategoryHadronic, res.Hadronic},
	}
	for _, c := range categories {
		label := title.String(strings.ReplaceAll(string(c.category), "_", " "))
		names := "(none)"
		if len(c.names) > 0 {
			names = strings.Join(c.names, ", ")
		}
		fmt.Fprintf(w, "  %-18s %s\n", label+":", names)
	}
	if res.EMOptions != nil {
		fmt.Fprintf(w, "  EM options:        fluo=%t auger=%t pixe=%t\n",
			res.EMOptions.Fluorescence, res.EMOptions.Auger, res.EMOptions.PIXE)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Production cuts:")
	fmt.Fprintf(w, "  %-8s %s\n", "default", res.Cuts.Default)
	for _, sc := range res.Cuts.SpeciesCuts() {
		fmt.Fprintf(w, "  %-8s %s\n", sc.Species, sc.Cut)
	}
	fmt.Fprintf(w, "  window   %s\n", res.Cuts.Window)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Step limiters (%d):\n", len(res.Limiters.Rules))
	for _, rule := range res.Limiters.Rules {
		fmt.Fprintf(w, "  %s\n", rule)
	}

	if len(res.Diagnostics) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Diagnostics:")
		for _, d := range res.Diagnostics {
			fmt.Fprintf(w, "  [%s] %s\n", d.Level, d)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Config hash:     %s\n", r.configHash)
	fmt.Fprintf(w, "Resolution hash: %s\n", r.resolutionHash)
}

func nonEmpty(name string) []string {
	if name == "" {
		return nil
	}
	return []string{name}
}
