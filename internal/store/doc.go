// Package store provides the SQLite-backed run ledger.
//
// Each recorded run holds:
//   - Identity: a time-sortable run id and a logical seq
//   - Inputs: the config hash of the physics description
//   - Outputs: the resolution hash, selected EM and hadronic modules, diagnostics
//   - Trace: every engine call made while applying the setup, in order
//
// Writes are idempotent on run id. All queries order by seq, never by
// timestamps, so listing a ledger is deterministic.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Hashes are computed by internal/ir using canonical JSON and SHA-256 with
// domain separation; the store only persists them.
package store
