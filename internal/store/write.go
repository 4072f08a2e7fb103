package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lobis/restG4/internal/ir"
)

// WriteRun records a run and its engine call trace in one transaction.
// The ledger assigns the run's seq; the assigned value is returned.
//
// Uses ON CONFLICT(id) DO NOTHING for idempotency: writing the same run id
// twice keeps the first record and returns its seq with inserted=false.
func (s *Store) WriteRun(ctx context.Context, run ir.Run) (seq int64, inserted bool, err error) {
	hadronicJSON, err := marshalHadronic(run.Hadronic)
	if err != nil {
		return 0, false, fmt.Errorf("write run: %w", err)
	}
	diagsJSON, err := marshalDiagnostics(run.Diagnostics)
	if err != nil {
		return 0, false, fmt.Errorf("write run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var existing int64
	err = tx.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, run.ID).Scan(&existing)
	switch {
	case err == nil:
		return existing, false, nil
	case !errors.Is(err, sql.ErrNoRows):
		return 0, false, fmt.Errorf("write run: lookup: %w", err)
	}

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, false, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, status, config_hash, resolution_hash, electromagnetic, hadronic, diagnostics, error, resolver_version, ir_version)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		seq,
		run.Status,
		run.ConfigHash,
		run.ResolutionHash,
		run.Electromagnetic,
		hadronicJSON,
		diagsJSON,
		run.Error,
		run.ResolverVersion,
		run.IRVersion,
	)
	if err != nil {
		return 0, false, fmt.Errorf("write run: %w", err)
	}

	for _, call := range run.Trace {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_calls (run_id, seq, op, target, value)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, call.Seq, call.Op, call.Target, call.Value)
		if err != nil {
			return 0, false, fmt.Errorf("write run call %d: %w", call.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, true, nil
}
