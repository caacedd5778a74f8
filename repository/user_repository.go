package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"packageTrackingManagement/internal/db"
	"packageTrackingManagement/models"
)

type UserRepository struct {
	db *db.DB
}

func NewUserRepository(d *db.DB) *UserRepository {
	return &UserRepository{db: d}
}

// Create inserts a new user. Returns ErrConflict when the username or email
// is already taken. The existence check and the insert share one transaction;
// the UNIQUE constraints remain as the backstop for concurrent registrations.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash, email, role string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var existing int64
	err = tx.QueryRowContext(ctx,
		r.db.Rebind(`SELECT id FROM users WHERE username = ? OR email = ?`),
		username, email,
	).Scan(&existing)
	if err == nil {
		return nil, ErrConflict
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		r.db.Rebind(`INSERT INTO users (username, password_hash, email, role) VALUES (?, ?, ?, ?) RETURNING id`),
		username, passwordHash, email, role,
	).Scan(&id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &models.User{ID: id, Username: username, PasswordHash: passwordHash, Email: email, Role: role}, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind(`SELECT id, username, password_hash, email, role FROM users WHERE id = ?`), id,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind(`SELECT id, username, password_hash, email, role FROM users WHERE username = ?`), username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ListAll returns every user ordered by username ascending.
func (r *UserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT id, username, password_hash, email, role FROM users ORDER BY username ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Role); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
