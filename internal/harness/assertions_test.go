package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lobis/restG4/internal/ir"
)

func sampleTrace() []ir.EngineCall {
	return []ir.EngineCall{
		{Seq: 1, Op: "energy_range", Target: "1 keV", Value: "1000000 keV"},
		{Seq: 2, Op: "add_transportation"},
		{Seq: 3, Op: "command", Target: "/process/em/fluo true"},
		{Seq: 4, Op: "cut", Target: "gamma", Value: "0.1 mm"},
		{Seq: 5, Op: "cut", Target: "e-", Value: "0.1 mm"},
	}
}

func TestMatchCall(t *testing.T) {
	call := ir.EngineCall{Seq: 4, Op: "cut", Target: "gamma", Value: "0.1 mm"}

	assert.True(t, matchCall(call, "cut"))
	assert.True(t, matchCall(call, "cut gamma"))
	assert.True(t, matchCall(call, "cut gamma 0.1 mm"))
	assert.True(t, matchCall(call, "  cut   gamma  "))
	assert.False(t, matchCall(call, "cut gam"))
	assert.False(t, matchCall(call, "cut gamma 1 mm"))
	assert.False(t, matchCall(call, ""))
}

func TestAssertTraceContains(t *testing.T) {
	assert.NoError(t, assertTraceContains(sampleTrace(), Assertion{Call: "command /process/em/fluo true"}))

	err := assertTraceContains(sampleTrace(), Assertion{Call: "cut neutron"})
	require.Error(t, err)

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertTraceContains, ae.Type)
	assert.Contains(t, err.Error(), "004 cut gamma 0.1 mm")
}

func TestAssertTraceOrder(t *testing.T) {
	assert.NoError(t, assertTraceOrder(sampleTrace(), Assertion{Calls: []string{"energy_range", "cut gamma", "cut e-"}}))

	err := assertTraceOrder(sampleTrace(), Assertion{Calls: []string{"cut e-", "cut gamma"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "should be before")

	err = assertTraceOrder(sampleTrace(), Assertion{Calls: []string{"energy_range", "step_limiter"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing call: step_limiter")
}

func TestAssertTraceCount(t *testing.T) {
	assert.NoError(t, assertTraceCount(sampleTrace(), Assertion{Op: "cut", Count: 2}))
	assert.NoError(t, assertTraceCount(sampleTrace(), Assertion{Op: "step_limiter", Count: 0}))

	err := assertTraceCount(sampleTrace(), Assertion{Op: "cut", Count: 6})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 occurrences")
}

func TestEvaluateAssertions(t *testing.T) {
	errs := EvaluateAssertions(sampleTrace(), []Assertion{
		{Type: AssertTraceCount, Op: "cut", Count: 2},
		{Type: AssertTraceContains, Call: "default_cut"},
		{Type: "bogus"},
	})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[1], "unknown assertion type")
}
