// Package ir provides the value types shared by the physics resolver.
//
// This package contains type definitions and pure helpers only. All other
// internal packages import ir; ir imports nothing internal.
//
// Key design constraints:
//   - NO float types anywhere - lengths are integer nanometres, energies
//     integer electronvolts
//   - All JSON tags use snake_case
//   - Resolved artifacts (CutTable, StepLimiterPlan, Resolution) are values
//     and are never mutated after construction
//   - Logical clocks (seq) only, never wall-clock timestamps
package ir
