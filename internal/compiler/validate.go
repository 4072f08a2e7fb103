package compiler

import (
	"fmt"
	"strings"

	"github.com/lobis/restG4/internal/ir"
)

// Validation error codes (E100-E199)
const (
	// General validation errors (E100)
	ErrUnsupportedIRType = "E100" // unsupported IR type for validation

	// PhysicsConfig errors (E101-E109)
	ErrModuleNameEmpty   = "E101" // module name is required
	ErrCutNotPositive    = "E102" // production cut must be > 0
	ErrWindowNotPositive = "E103" // energy window bound must be > 0
	ErrWindowInverted    = "E104" // energy window min must be <= max
	ErrUnknownVerbosity  = "E105" // verbosity out of range
	ErrIonStepNameEmpty  = "E106" // ion step name is required
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate validates a compiled physics config against schema rules.
// Returns all errors found (does not fail-fast).
//
// Module exclusivity is not checked here: it is a resolution rule and
// surfaces from the resolver with its own error code.
func Validate(v any) []ValidationError {
	switch cfg := v.(type) {
	case *ir.PhysicsConfig:
		return validatePhysicsConfig(cfg)
	case ir.PhysicsConfig:
		return validatePhysicsConfig(&cfg)
	default:
		return []ValidationError{{
			Field:   "type",
			Message: fmt.Sprintf("unsupported IR type: %T", v),
			Code:    ErrUnsupportedIRType,
		}}
	}
}

func validatePhysicsConfig(cfg *ir.PhysicsConfig) []ValidationError {
	var errs []ValidationError

	if cfg.Verbosity < ir.VerbositySilent || cfg.Verbosity > ir.VerbosityExtreme {
		errs = append(errs, ValidationError{
			Field:   "verboseLevel",
			Message: fmt.Sprintf("unknown verbosity level %d", int(cfg.Verbosity)),
			Code:    ErrUnknownVerbosity,
		})
	}

	for i, m := range cfg.Modules {
		if strings.TrimSpace(m.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("modules[%d].name", i),
				Message: "module name is required",
				Code:    ErrModuleNameEmpty,
			})
		}
	}

	cuts := []struct {
		field string
		value *ir.Length
	}{
		{"cuts.default", cfg.Cuts.Default},
		{"cuts.gamma", cfg.Cuts.Gamma},
		{"cuts.electron", cfg.Cuts.Electron},
		{"cuts.positron", cfg.Cuts.Positron},
		{"cuts.muon", cfg.Cuts.Muon},
		{"cuts.neutron", cfg.Cuts.Neutron},
	}
	for _, c := range cuts {
		if c.value != nil && *c.value <= 0 {
			errs = append(errs, ValidationError{
				Field:   c.field,
				Message: fmt.Sprintf("production cut must be positive, got %s", c.value),
				Code:    ErrCutNotPositive,
			})
		}
	}

	if w := cfg.CutEnergyWindow; w != nil {
		errs = append(errs, validateWindow(*w)...)
	}

	for i, name := range cfg.IonStepNames {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("ionStepNames[%d]", i),
				Message: "ion name is required",
				Code:    ErrIonStepNameEmpty,
			})
		}
	}

	return errs
}

func validateWindow(w ir.EnergyWindow) []ValidationError {
	var errs []ValidationError
	if w.Min <= 0 {
		errs = append(errs, ValidationError{
			Field:   "cutEnergyWindow.min",
			Message: fmt.Sprintf("energy bound must be positive, got %s", w.Min),
			Code:    ErrWindowNotPositive,
		})
	}
	if w.Max <= 0 {
		errs = append(errs, ValidationError{
			Field:   "cutEnergyWindow.max",
			Message: fmt.Sprintf("energy bound must be positive, got %s", w.Max),
			Code:    ErrWindowNotPositive,
		})
	}
	if len(errs) == 0 && w.Min > w.Max {
		errs = append(errs, ValidationError{
			Field:   "cutEnergyWindow",
			Message: fmt.Sprintf("min must not exceed max, got %s", w),
			Code:    ErrWindowInverted,
		})
	}
	return errs
}
