package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"packageTrackingManagement/internal/db"
	"packageTrackingManagement/models"
)

type TrackingRepository struct {
	db *db.DB
}

func NewTrackingRepository(d *db.DB) *TrackingRepository {
	return &TrackingRepository{db: d}
}

// RegisterInitial flips a package from untracked to tracked and appends its
// first checkpoint. The conditional UPDATE and the INSERT run in a single
// transaction, so two concurrent callers cannot both observe "untracked" and
// both insert an initial checkpoint: exactly one wins the affected-rows guard.
//
// Returns ErrNotFound when the package does not exist and ErrAlreadyTracked
// when it has already transitioned; in both cases nothing is appended.
func (r *TrackingRepository) RegisterInitial(ctx context.Context, packageID int64, city, timestamp string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		r.db.Rebind(`UPDATE packages SET is_tracked = ? WHERE id = ? AND is_tracked = ?`),
		true, packageID, false)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		var tracked bool
		err := tx.QueryRowContext(ctx,
			r.db.Rebind(`SELECT is_tracked FROM packages WHERE id = ?`), packageID,
		).Scan(&tracked)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return ErrAlreadyTracked
	}

	if _, err := tx.ExecContext(ctx,
		r.db.Rebind(`INSERT INTO tracking_info (package_id, city, timestamp) VALUES (?, ?, ?)`),
		packageID, city, timestamp); err != nil {
		return err
	}
	return tx.Commit()
}

// Append adds one checkpoint to a tracked package. The insert is guarded by
// the package's tracking state in a single statement, so an untracked or
// missing package appends nothing regardless of concurrent callers.
func (r *TrackingRepository) Append(ctx context.Context, packageID int64, city, timestamp string) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(`INSERT INTO tracking_info (package_id, city, timestamp)
			SELECT id, ?, ? FROM packages WHERE id = ? AND is_tracked = ?`),
		city, timestamp, packageID, true)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	// Nothing inserted: classify the refusal for the caller.
	var tracked bool
	err = r.db.QueryRowContext(ctx,
		r.db.Rebind(`SELECT is_tracked FROM packages WHERE id = ?`), packageID,
	).Scan(&tracked)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrNotTracked
}

// History returns a package's checkpoints ordered by timestamp ascending.
// A package with no checkpoints yields an empty slice, not an error.
func (r *TrackingRepository) History(ctx context.Context, packageID int64) ([]models.TrackingCheckpoint, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		r.db.Rebind(`SELECT id, package_id, city, timestamp FROM tracking_info
			WHERE package_id = ? ORDER BY timestamp ASC, id ASC`),
		packageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.TrackingCheckpoint
	for rows.Next() {
		var c models.TrackingCheckpoint
		if err := rows.Scan(&c.ID, &c.PackageID, &c.City, &c.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
