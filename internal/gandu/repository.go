package gandu

import (
	"context"
	"database/sql"
	"fmt"
)

// historyLimit caps the history feed to the most recent tagged events.
const historyLimit = 50

// Repository handles gandu stat queries
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new gandu repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// History returns the most recently archived events that have a tagged user
func (r *Repository) History(ctx context.Context) ([]*HistoryEntry, error) {
	query := `
		SELECT ev.id, ev.name, ev.archived_at, u.id, u.name, u.avatar_thumb
		FROM events ev
		JOIN users u ON ev.gandu_id = u.id
		ORDER BY ev.archived_at DESC NULLS LAST
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load gandu history: %w", err)
	}
	defer rows.Close()

	var entries []*HistoryEntry
	for rows.Next() {
		entry := &HistoryEntry{}
		if err := rows.Scan(
			&entry.EventID,
			&entry.EventName,
			&entry.ArchivedAt,
			&entry.UserID,
			&entry.UserName,
			&entry.UserAvatar,
		); err != nil {
			return nil, fmt.Errorf("failed to scan gandu history entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Leaderboard returns per-user tag counts, most tagged first, ties broken
// by most recent tag
func (r *Repository) Leaderboard(ctx context.Context) ([]*LeaderboardEntry, error) {
	query := `
		SELECT u.id, u.name, u.avatar_thumb, COUNT(ev.id), MAX(ev.archived_at)
		FROM users u
		JOIN events ev ON ev.gandu_id = u.id
		GROUP BY u.id, u.name, u.avatar_thumb
		ORDER BY COUNT(ev.id) DESC, MAX(ev.archived_at) DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load gandu leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*LeaderboardEntry
	for rows.Next() {
		entry := &LeaderboardEntry{}
		if err := rows.Scan(
			&entry.UserID,
			&entry.UserName,
			&entry.UserAvatar,
			&entry.GanduCount,
			&entry.LastGanduAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
