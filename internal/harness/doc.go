// Package harness provides conformance testing for physics descriptions.
//
// A scenario carries an inline CUE physics description and the expected
// outcome of resolving it and applying it against the recording engine.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	run_id: optional-fixed-run-id
//	config: |
//	  physics: {
//	    modules: ["G4DecayPhysics", "G4EmLivermorePhysics"]
//	  }
//	expect:
//	  error: EXCLUSIVITY_VIOLATION        # or a validation code such as E102
//	  electromagnetic: G4EmLivermorePhysics
//	  hadronic: [G4HadronElasticPhysicsHP]
//	  em_options: {fluorescence: true, auger: true, pixe: false}
//	  cuts: {gamma: "0.01 mm"}
//	  limiters: ["e- e-Step", "ion(6,14) ionStep"]
//	  limiter_count: 4
//	  diagnostics: [NO_EM_PHYSICS]
//	assertions:
//	  - type: trace_contains
//	    call: "cut gamma 0.01 mm"
//	  - type: trace_order
//	    calls: ["add_transportation", "cut neutron 0.1 mm"]
//	  - type: trace_count
//	    op: step_limiter
//	    count: 4
//	golden: true
//
// Calls are matched without their seq prefix. A call pattern with only an op
// matches any call of that op.
//
// # Execution
//
// Each scenario runs against a fresh in-memory run ledger with a
// deterministic clock and a fixed run id. The trace checked by assertions
// and golden files is the one read back from the ledger, so a scenario also
// exercises the ledger round trip.
//
// # Golden Files
//
// With golden: true the trace is compared against
// testdata/scenarios/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
