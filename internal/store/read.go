package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned by ReadRun for unknown IDs.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded simulation.
type Run struct {
	ID          string `json:"id"`
	Seq         int64  `json:"seq"`
	Machine     string `json:"machine"`
	MachineHash string `json:"machine_hash"`
	Input       string `json:"input"`
	Strategy    string `json:"strategy"`
	MaxSteps    int    `json:"max_steps"`
	Accepted    bool   `json:"accepted"`
	Steps       int    `json:"steps"`
	Explored    int    `json:"explored"`

	// Tape is the decoded result tape, empty when none was reported.
	Tape string `json:"tape,omitempty"`
}

const runColumns = `id, seq, machine, machine_hash, input, strategy, max_steps, accepted, steps, explored, tape`

// ReadRun returns the run with the given ID.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return r, err
}

// ReadRuns returns the latest limit runs, oldest first. An empty machine
// matches every machine; limit <= 0 returns all runs.
//
// Returns an empty slice (not nil) if no runs match.
func (s *Store) ReadRuns(ctx context.Context, machine string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}

	// Deterministic ordering - ORDER BY seq ASC, id COLLATE BINARY ASC
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+` FROM (
			SELECT `+runColumns+`
			FROM runs
			WHERE ? = '' OR machine = ?
			ORDER BY seq DESC
			LIMIT ?
		)
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, machine, machine, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	err := row.Scan(
		&r.ID,
		&r.Seq,
		&r.Machine,
		&r.MachineHash,
		&r.Input,
		&r.Strategy,
		&r.MaxSteps,
		&r.Accepted,
		&r.Steps,
		&r.Explored,
		&r.Tape,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("scan run: %w", err)
	}
	return r, nil
}
