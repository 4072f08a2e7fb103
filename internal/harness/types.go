package harness

import "github.com/lobis/restG4/internal/ir"

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expectations and assertions match.
	Pass bool `json:"pass"`

	// ErrorCode is the resolution or validation code the run stopped with.
	// Empty when the setup resolved and applied.
	ErrorCode string `json:"error_code,omitempty"`

	// Resolution is the resolved setup. Nil when resolution failed.
	Resolution *ir.Resolution `json:"resolution,omitempty"`

	// Trace contains every engine call read back from the run ledger, in order.
	Trace []ir.EngineCall `json:"trace"`

	// Errors contains expectation failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []ir.EngineCall{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
