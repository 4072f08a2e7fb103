package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lobis/restG4/internal/compiler"
	"github.com/lobis/restG4/internal/ir"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool                       `json:"valid"`
	ConfigHash string                     `json:"config_hash,omitempty"`
	Modules    int                        `json:"modules"`
	Errors     []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config>",
		Short: "Validate a physics description without resolving it",
		Long: `Validate a physics description (CUE, JSON or YAML file, or CUE package directory).

Checks syntax, units and field values. Module selection rules such as
electromagnetic exclusivity are checked by resolve and apply.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	cfg, err := loadAndValidate(formatter, path)
	if err != nil {
		return err
	}

	hash, err := ir.ConfigHash(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to hash config", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, ConfigHash: hash, Modules: len(cfg.Modules)})
	}

	fmt.Fprintf(formatter.Writer, "✓ Physics description valid (%d module(s))\n", len(cfg.Modules))
	formatter.VerboseLog("config hash: %s", hash)
	return nil
}

// loadAndValidate loads a physics description and runs schema validation,
// writing any failure through the formatter.
func loadAndValidate(formatter *OutputFormatter, path string) (*ir.PhysicsConfig, error) {
	formatter.VerboseLog("Loading %s", path)

	cfg, err := LoadConfig(path)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return nil, outputLoadError(formatter, loadErr)
		}
		return nil, outputLoadError(formatter, &LoadError{Code: ErrCodeGeneric, Message: err.Error()})
	}

	if errs := compiler.Validate(cfg); len(errs) > 0 {
		return nil, outputValidationErrors(formatter, errs)
	}

	return cfg, nil
}

// outputLoadError outputs a single load error.
func outputLoadError(formatter *OutputFormatter, loadErr *LoadError) error {
	var details any
	if loadErr.Pos.IsValid() {
		details = map[string]any{"file": loadErr.Pos.Filename(), "line": loadErr.Pos.Line()}
	}
	_ = formatter.Error(loadErr.Code, loadErr.Message, details)
	// Load errors are command-level errors (exit code 2)
	return NewExitError(ExitCommandError, loadErr.Error())
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		result := ValidationResult{
			Valid:  false,
			Errors: errs,
		}

		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", err.Code, err.Field, err.Message)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
