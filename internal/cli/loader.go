package cli

import (
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue/token"

	"github.com/lobis/restG4/internal/compiler"
	"github.com/lobis/restG4/internal/ir"
)

// LoadError represents an error that occurred while loading a physics description.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadConfig loads and compiles a physics description from a file or a CUE
// package directory. It does not validate; see compiler.Validate.
func LoadConfig(path string) (*ir.PhysicsConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("config not found: %s", path)}
	}

	cfg, err := compiler.LoadPath(path)
	if err != nil {
		return nil, convertCompileError(err)
	}
	return cfg, nil
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    MapFieldToErrorCode(compileErr.Field),
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	return &LoadError{
		Code:    ErrCodeLoadFailed,
		Message: err.Error(),
	}
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeLoadFailed  = "E004" // Config load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE evaluation failed
	ErrCodeBadValue    = "E007" // Malformed field value (unit, verbosity, option kind)
	ErrCodeDatabase    = "E008" // Run ledger error
	ErrCodeApplyFailed = "E009" // Engine rejected a call during apply

	// Resolution errors use the resolver's own codes
	ErrCodeExclusivity = "EXCLUSIVITY_VIOLATION"
)

// MapFieldToErrorCode maps a compiler error field to an error code.
func MapFieldToErrorCode(field string) string {
	switch field {
	case "cue":
		return ErrCodeBuildFailed
	case compiler.PhysicsPath:
		return ErrCodeLoadFailed
	case "":
		return ErrCodeGeneric
	default:
		return ErrCodeBadValue
	}
}
