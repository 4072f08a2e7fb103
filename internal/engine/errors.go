package engine

import (
	"errors"
	"fmt"
)

// Execution phases reported in ApplyError.
const (
	PhaseEnergyRange = "energy_range"
	PhaseParticles   = "particles"
	PhaseProcesses   = "processes"
	PhaseLimiters    = "limiters"
	PhaseCuts        = "cuts"
)

// ApplyError reports an engine failure while applying a setup.
type ApplyError struct {
	// Phase is the execution phase that failed.
	Phase string

	// Target names the module, command, particle or species involved.
	Target string

	// Err is the error returned by the engine.
	Err error
}

// Error implements the error interface.
func (e *ApplyError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("apply %s (%s): %v", e.Phase, e.Target, e.Err)
	}
	return fmt.Sprintf("apply %s: %v", e.Phase, e.Err)
}

// Unwrap returns the engine error.
func (e *ApplyError) Unwrap() error {
	return e.Err
}

// IsApplyError reports whether err is, or wraps, an ApplyError.
// Uses errors.As to handle wrapped errors.
func IsApplyError(err error) bool {
	var ae *ApplyError
	return errors.As(err, &ae)
}
