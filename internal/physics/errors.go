package physics

import (
	"errors"
	"fmt"
	"strings"
)

// ResolveErrorCode categorizes resolution failures.
type ResolveErrorCode string

const (
	// ErrCodeExclusivityViolation indicates more than one electromagnetic
	// module was selected. It is fatal: the run must not proceed.
	ErrCodeExclusivityViolation ResolveErrorCode = "EXCLUSIVITY_VIOLATION"

	// ErrCodeInvalidCutWindow indicates a non-positive or inverted
	// production energy window.
	ErrCodeInvalidCutWindow ResolveErrorCode = "INVALID_CUT_WINDOW"

	// ErrCodeInvalidCut indicates a non-positive production cut length.
	ErrCodeInvalidCut ResolveErrorCode = "INVALID_CUT"
)

// ResolveError is returned when a physics description cannot be resolved
// into a consistent setup. No artifact is produced alongside it.
type ResolveError struct {
	// Code identifies the error category.
	Code ResolveErrorCode

	// Message is a human-readable description.
	Message string

	// Names lists the offending module names or species, in declaration order.
	Names []string
}

// Error implements the error interface.
func (e *ResolveError) Error() string {
	if len(e.Names) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(e.Names, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewExclusivityError creates a ResolveError naming every electromagnetic
// module that was selected.
func NewExclusivityError(names []string) *ResolveError {
	return &ResolveError{
		Code:    ErrCodeExclusivityViolation,
		Message: "more than one electromagnetic physics module enabled",
		Names:   append([]string(nil), names...),
	}
}

// IsExclusivityViolation reports whether err is, or wraps, an electromagnetic
// exclusivity violation.
func IsExclusivityViolation(err error) bool {
	return hasCode(err, ErrCodeExclusivityViolation)
}

// IsInvalidCutWindow reports whether err is, or wraps, an invalid energy window.
func IsInvalidCutWindow(err error) bool {
	return hasCode(err, ErrCodeInvalidCutWindow)
}

// IsInvalidCut reports whether err is, or wraps, an invalid cut length.
func IsInvalidCut(err error) bool {
	return hasCode(err, ErrCodeInvalidCut)
}

func hasCode(err error, code ResolveErrorCode) bool {
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Code == code
	}
	return false
}
