package harness

import (
	"fmt"
	"strings"

	"github.com/lobis/restG4/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string          // Assertion type for categorization
	Expected string          // Human-readable expected outcome
	Actual   string          // Human-readable actual outcome
	Trace    []ir.EngineCall // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	// Header with assertion type
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)

	// Expected vs Actual (most important info)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	// Full trace for context
	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, call := range e.Trace {
		fmt.Fprintf(&buf, "  %s\n", call)
	}

	return buf.String()
}

// EvaluateAssertions runs every assertion against the trace and returns one
// message per failure.
func EvaluateAssertions(trace []ir.EngineCall, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertTraceContains:
			err = assertTraceContains(trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(trace, a)
		case AssertTraceCount:
			err = assertTraceCount(trace, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

// callText renders a call without its seq.
func callText(c ir.EngineCall) string {
	parts := []string{c.Op}
	if c.Target != "" {
		parts = append(parts, c.Target)
	}
	if c.Value != "" {
		parts = append(parts, c.Value)
	}
	return strings.Join(parts, " ")
}

// matchCall reports whether a call matches a pattern. A pattern matches the
// full call text or any leading run of its words, so "cut" matches every
// cut and "cut gamma" matches the gamma cut whatever its value.
func matchCall(c ir.EngineCall, pattern string) bool {
	pattern = strings.Join(strings.Fields(pattern), " ")
	if pattern == "" {
		return false
	}
	text := callText(c)
	return text == pattern || strings.HasPrefix(text, pattern+" ")
}

// assertTraceContains checks if the trace contains a call matching the pattern.
func assertTraceContains(trace []ir.EngineCall, assertion Assertion) error {
	for _, call := range trace {
		if matchCall(call, assertion.Call) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("call %q", assertion.Call),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks if calls appear in the specified order.
// Calls don't need to be consecutive (intervening calls are allowed).
func assertTraceOrder(trace []ir.EngineCall, assertion Assertion) error {
	// Step 1: Find first position of each expected call
	positions := make(map[string]int)

	for i, call := range trace {
		for _, pattern := range assertion.Calls {
			if positions[pattern] == 0 && matchCall(call, pattern) {
				positions[pattern] = i + 1 // 1-indexed for readability
			}
		}
	}

	// Step 2: Verify all calls found
	for _, pattern := range assertion.Calls {
		if positions[pattern] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all calls present: %q", assertion.Calls),
				Actual:   fmt.Sprintf("missing call: %s", pattern),
				Trace:    trace,
			}
		}
	}

	// Step 3: Verify order
	for i := 1; i < len(assertion.Calls); i++ {
		prev := assertion.Calls[i-1]
		curr := assertion.Calls[i]

		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("calls in order: %q", assertion.Calls),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}

	return nil
}

// assertTraceCount checks if the op appears exactly the specified number of times.
func assertTraceCount(trace []ir.EngineCall, assertion Assertion) error {
	count := 0
	for _, call := range trace {
		if call.Op == assertion.Op {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Op),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}

	return nil
}
