package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// WriteRun inserts a run and assigns its Seq. Uses ON CONFLICT(id) DO
// NOTHING for idempotency: rewriting an existing ID leaves the stored row
// alone and sets r.Seq to the stored value.
func (s *Store) WriteRun(ctx context.Context, r *Run) error {
	if r.ID == "" {
		return fmt.Errorf("write run: id is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	defer tx.Rollback()

	var seq int64
	err = tx.QueryRowContext(ctx, `SELECT seq FROM runs WHERE id = ?`, r.ID).Scan(&seq)
	switch {
	case err == nil:
		r.Seq = seq
		return tx.Commit()
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("write run: %w", err)
	}

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, machine, machine_hash, input, strategy, max_steps, accepted, steps, explored, tape)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		r.ID,
		seq,
		r.Machine,
		r.MachineHash,
		r.Input,
		r.Strategy,
		r.MaxSteps,
		r.Accepted,
		r.Steps,
		r.Explored,
		r.Tape,
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	r.Seq = seq
	return nil
}
