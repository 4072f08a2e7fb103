// Package engine applies a resolved physics setup to a simulation engine.
//
// The simulation engine itself is an external collaborator reached through
// the Engine capability interface. The Executor drives it in a fixed order:
//
//  1. Production energy window
//  2. Phase 1, particle definitions: Decay, Electromagnetic,
//     RadioactiveDecay, then every Hadronic module in declared order
//  3. Phase 2, process construction: transportation, Electromagnetic
//     followed by its options, Decay, RadioactiveDecay followed by its
//     settings, then every Hadronic module in declared order
//  4. Step limiter plan, in planned order
//  5. Cut table: global default first, then gamma, e-, e+, mu+, mu-, neutron
//
// Execution is single-threaded and happens exactly once per run, before any
// simulation worker exists.
//
// Recorder is an in-memory Engine that records every call with a logical
// sequence number. It backs dry runs, the run ledger and golden traces.
package engine
