package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"packageTrackingManagement/internal/db"
	"packageTrackingManagement/models"
)

type PackageRepository struct {
	db *db.DB
}

func NewPackageRepository(d *db.DB) *PackageRepository {
	return &PackageRepository{db: d}
}

const packageColumns = `id, sender_id, receiver_id, name, description, sender_city, destination_city, is_tracked, creation_date`

// Create inserts a new package and returns its generated id. IsTracked starts
// false; CreatedAt is set here, once, and never updated. A missing sender or
// receiver surfaces as ErrNotFound via the foreign key violation.
func (r *PackageRepository) Create(ctx context.Context, p *models.Package) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	createdAt := time.Now().UTC().Format(time.RFC3339)
	var id int64
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind(`INSERT INTO packages (sender_id, receiver_id, name, description, sender_city, destination_city, is_tracked, creation_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		p.SenderID, p.ReceiverID, p.Name, p.Description, p.SenderCity, p.DestinationCity, false, createdAt,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	p.ID = id
	p.IsTracked = false
	p.CreatedAt = createdAt
	return id, nil
}

// Delete removes a package and reports whether a row was actually deleted.
// Deleting an id twice returns (false, nil) the second time.
func (r *PackageRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM packages WHERE id = ?`), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PackageRepository) GetByID(ctx context.Context, id int64) (*models.Package, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var p models.Package
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind(`SELECT `+packageColumns+` FROM packages WHERE id = ?`), id,
	).Scan(&p.ID, &p.SenderID, &p.ReceiverID, &p.Name, &p.Description, &p.SenderCity, &p.DestinationCity, &p.IsTracked, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByUser returns packages where the user is sender or receiver, newest first.
func (r *PackageRepository) ListByUser(ctx context.Context, userID int64) ([]models.Package, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		r.db.Rebind(`SELECT `+packageColumns+` FROM packages
			WHERE sender_id = ? OR receiver_id = ?
			ORDER BY creation_date DESC, id DESC`),
		userID, userID)
	if err != nil {
		return nil, err
	}
	return scanPackages(rows)
}

// Search applies the membership filter plus a case-insensitive substring match
// on name or description. An empty term matches everything ListByUser returns.
func (r *PackageRepository) Search(ctx context.Context, userID int64, term string) ([]models.Package, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		r.db.Rebind(`SELECT `+packageColumns+` FROM packages
			WHERE (sender_id = ? OR receiver_id = ?)
			  AND (LOWER(name) LIKE '%' || LOWER(?) || '%' OR LOWER(description) LIKE '%' || LOWER(?) || '%')
			ORDER BY creation_date DESC, id DESC`),
		userID, userID, term, term)
	if err != nil {
		return nil, err
	}
	return scanPackages(rows)
}

// ListAll returns every package joined with sender/receiver usernames, newest first.
func (r *PackageRepository) ListAll(ctx context.Context) ([]models.Package, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx,
		`SELECT p.id, p.sender_id, p.receiver_id, p.name, p.description, p.sender_city, p.destination_city,
			p.is_tracked, p.creation_date, sender.username, receiver.username
		FROM packages p
		JOIN users sender ON p.sender_id = sender.id
		JOIN users receiver ON p.receiver_id = receiver.id
		ORDER BY p.creation_date DESC, p.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Package
	for rows.Next() {
		var p models.Package
		if err := rows.Scan(&p.ID, &p.SenderID, &p.ReceiverID, &p.Name, &p.Description, &p.SenderCity,
			&p.DestinationCity, &p.IsTracked, &p.CreatedAt, &p.SenderUsername, &p.ReceiverUsername); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanPackages(rows *sql.Rows) ([]models.Package, error) {
	defer rows.Close()
	var out []models.Package
	for rows.Next() {
		var p models.Package
		if err := rows.Scan(&p.ID, &p.SenderID, &p.ReceiverID, &p.Name, &p.Description, &p.SenderCity,
			&p.DestinationCity, &p.IsTracked, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
