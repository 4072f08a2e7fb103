// Package physics resolves a parsed physics description into the artifacts
// the assembly executor applies to the simulation engine.
//
// Resolution is a single linear pass, executed once before any simulation
// worker exists:
//
//  1. Resolver.Resolve selects modules through the Registry and enforces
//     electromagnetic exclusivity, producing an Assembly.
//  2. AssignCuts builds the production CutTable.
//  3. Planner.Plan builds the StepLimiterPlan: fixed-name rules followed by
//     the closed ion sweep Z in [1,40], A in [2Z,3Z].
//
// Build runs all three and is all-or-nothing: on any error no artifact is
// returned, so the executor never sees a partial setup.
//
// Nothing in this package touches the engine. Modules only call into the
// narrow Host capability when the executor drives them.
package physics
