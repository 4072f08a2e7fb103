package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lobis/restG4/internal/ir"
)

// ErrRunNotFound is returned by ReadRun for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

const runColumns = `id, seq, status, config_hash, resolution_hash, electromagnetic, hadronic, diagnostics, error, resolver_version, ir_version`

// ReadRun returns a run with its full engine call trace.
func (s *Store) ReadRun(ctx context.Context, id string) (ir.Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return ir.Run{}, fmt.Errorf("read run %s: %w", id, err)
	}

	run.Trace, err = s.readCalls(ctx, id)
	if err != nil {
		return ir.Run{}, err
	}
	return run, nil
}

// ListRuns returns all runs without their traces, ordered by seq.
// Returns an empty slice (not nil) for an empty ledger.
func (s *Store) ListRuns(ctx context.Context) ([]ir.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	return collectRuns(rows)
}

// ListRunsByConfig returns the runs recorded for one config hash, ordered by seq.
// Re-applying an unchanged description appends runs with the same
// resolution hash.
func (s *Store) ListRunsByConfig(ctx context.Context, configHash string) ([]ir.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE config_hash = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, configHash)
	if err != nil {
		return nil, fmt.Errorf("query runs by config: %w", err)
	}
	return collectRuns(rows)
}

func collectRuns(rows *sql.Rows) ([]ir.Run, error) {
	defer rows.Close()

	runs := []ir.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func (s *Store) readCalls(ctx context.Context, runID string) ([]ir.EngineCall, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, op, target, value
		FROM run_calls
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run calls: %w", err)
	}
	defer rows.Close()

	calls := []ir.EngineCall{}
	for rows.Next() {
		var c ir.EngineCall
		if err := rows.Scan(&c.Seq, &c.Op, &c.Target, &c.Value); err != nil {
			return nil, fmt.Errorf("scan run call: %w", err)
		}
		calls = append(calls, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run calls: %w", err)
	}
	return calls, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (ir.Run, error) {
	var (
		run          ir.Run
		hadronicJSON string
		diagsJSON    string
	)
	err := row.Scan(
		&run.ID,
		&run.Seq,
		&run.Status,
		&run.ConfigHash,
		&run.ResolutionHash,
		&run.Electromagnetic,
		&hadronicJSON,
		&diagsJSON,
		&run.Error,
		&run.ResolverVersion,
		&run.IRVersion,
	)
	if err != nil {
		return ir.Run{}, err
	}

	if run.Hadronic, err = unmarshalHadronic(hadronicJSON); err != nil {
		return ir.Run{}, err
	}
	if run.Diagnostics, err = unmarshalDiagnostics(diagsJSON); err != nil {
		return ir.Run{}, err
	}
	run.Trace = []ir.EngineCall{}
	return run, nil
}
