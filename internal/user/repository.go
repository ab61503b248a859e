package user

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles user data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new user repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, name string, avatar, avatarThumb *string) (*User, error) {
	query := `
		INSERT INTO users (name, avatar, avatar_thumb)
		VALUES ($1, $2, $3)
		RETURNING id, name, avatar, avatar_thumb, is_active, created_at
	`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, name, avatar, avatarThumb).Scan(
		&user.ID,
		&user.Name,
		&user.Avatar,
		&user.AvatarThumb,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// GetByID retrieves a user by their ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT id, name, avatar, avatar_thumb, is_active, created_at
		FROM users
		WHERE id = $1
	`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Avatar,
		&user.AvatarThumb,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// ListActive retrieves all active users ordered by name
func (r *Repository) ListActive(ctx context.Context) ([]*User, error) {
	query := `
		SELECT id, name, avatar, avatar_thumb, is_active, created_at
		FROM users
		WHERE is_active
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Avatar,
			&user.AvatarThumb,
			&user.IsActive,
			&user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// Update modifies an existing user's name, avatar and thumbnail
func (r *Repository) Update(ctx context.Context, id int64, name string, avatar, avatarThumb *string) (*User, error) {
	query := `
		UPDATE users
		SET name = $2, avatar = $3, avatar_thumb = $4
		WHERE id = $1
		RETURNING id, name, avatar, avatar_thumb, is_active, created_at
	`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, id, name, avatar, avatarThumb).Scan(
		&user.ID,
		&user.Name,
		&user.Avatar,
		&user.AvatarThumb,
		&user.IsActive,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Deactivate soft-deletes a user so historical expense rows stay intact
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE users SET is_active = FALSE WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("user not found")
	}

	return nil
}
