package auth

import (
	"context"
	"database/sql"
	"fmt"
)

// Settings keys for the two stored PIN hashes.
const (
	keyAdminPIN = "admin_pin"
	keyUserPIN  = "user_pin"
)

// Repository handles PIN hash persistence in the settings table
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new auth repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// PINHashes returns the stored admin and user PIN hashes. A missing row
// yields an empty string for that role.
func (r *Repository) PINHashes(ctx context.Context) (adminHash, userHash string, err error) {
	query := `SELECT key, value FROM settings WHERE key IN ($1, $2)`

	rows, err := r.db.QueryContext(ctx, query, keyAdminPIN, keyUserPIN)
	if err != nil {
		return "", "", fmt.Errorf("failed to load pin hashes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return "", "", fmt.Errorf("failed to scan setting: %w", err)
		}
		switch key {
		case keyAdminPIN:
			adminHash = value
		case keyUserPIN:
			userHash = value
		}
	}

	return adminHash, userHash, rows.Err()
}

// SetPINHash stores a PIN hash, inserting or replacing the settings row
func (r *Repository) SetPINHash(ctx context.Context, key, hash string) error {
	query := `
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`

	if _, err := r.db.ExecContext(ctx, query, key, hash); err != nil {
		return fmt.Errorf("failed to store pin hash: %w", err)
	}

	return nil
}
