package event

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Repository handles event data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new event repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const eventColumns = `id, name, start_date, end_date, is_active, total_amount, per_head, participants_count, settlements_json, gandu_id, created_at, archived_at`

func scanEvent(row interface{ Scan(...interface{}) error }) (*Event, error) {
	event := &Event{}
	err := row.Scan(
		&event.ID,
		&event.Name,
		&event.StartDate,
		&event.EndDate,
		&event.IsActive,
		&event.TotalAmount,
		&event.PerHead,
		&event.ParticipantsCount,
		&event.SettlementsJSON,
		&event.GanduID,
		&event.CreatedAt,
		&event.ArchivedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// GetByID retrieves an event by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// GetActive retrieves the current active event, if any
func (r *Repository) GetActive(ctx context.Context) (*Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE is_active ORDER BY id DESC LIMIT 1`

	event, err := scanEvent(r.db.QueryRowContext(ctx, query))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active event: %w", err)
	}

	return event, nil
}

// Create inserts a new active event and seeds one unset expense row per
// participant, all in a single transaction.
func (r *Repository) Create(ctx context.Context, name, startDate, endDate string, userIDs []int64) (*Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (name, start_date, end_date)
		VALUES ($1, $2, $3)
		RETURNING ` + eventColumns

	event, err := scanEvent(tx.QueryRowContext(ctx, query, name, startDate, endDate))
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if len(userIDs) > 0 {
		seedQuery := `
			INSERT INTO expenses (event_id, user_id, amount)
			SELECT $1, unnest($2::bigint[]), NULL
		`
		if _, err := tx.ExecContext(ctx, seedQuery, event.ID, pq.Array(userIDs)); err != nil {
			return nil, fmt.Errorf("failed to seed expenses: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit event creation: %w", err)
	}

	return event, nil
}

// ActiveUserIDs returns the IDs of all active users
func (r *Repository) ActiveUserIDs(ctx context.Context) ([]int64, error) {
	query := `SELECT id FROM users WHERE is_active ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// ExpenseAmounts returns every expense row for an event, unset amounts included
func (r *Repository) ExpenseAmounts(ctx context.Context, eventID int64) ([]UserAmount, error) {
	query := `SELECT user_id, amount FROM expenses WHERE event_id = $1 ORDER BY user_id`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense amounts: %w", err)
	}
	defer rows.Close()

	var amounts []UserAmount
	for rows.Next() {
		var ua UserAmount
		if err := rows.Scan(&ua.UserID, &ua.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense amount: %w", err)
		}
		amounts = append(amounts, ua)
	}

	return amounts, rows.Err()
}

// Archive freezes the computed snapshot onto the event and deactivates it
func (r *Repository) Archive(ctx context.Context, id int64, snap *Snapshot) (time.Time, error) {
	query := `
		UPDATE events
		SET is_active = FALSE,
		    archived_at = NOW(),
		    total_amount = $2,
		    per_head = $3,
		    participants_count = $4,
		    settlements_json = $5
		WHERE id = $1
		RETURNING archived_at
	`

	var archivedAt time.Time
	err := r.db.QueryRowContext(ctx, query, id,
		snap.TotalAmount, snap.PerHead, snap.ParticipantsCount, snap.SettlementsJSON,
	).Scan(&archivedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to archive event: %w", err)
	}

	return archivedAt, nil
}

// Delete removes an event; its expense rows are removed by cascade
func (r *Repository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

// List retrieves all events, newest first
func (r *Repository) List(ctx context.Context) ([]*Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// LiveTotalsByEvent aggregates current expense rows for every event in one
// query, so the history view avoids an N+1.
func (r *Repository) LiveTotalsByEvent(ctx context.Context) (map[int64]LiveTotals, error) {
	query := `
		SELECT event_id, COUNT(*), COALESCE(SUM(amount), 0)
		FROM expenses
		GROUP BY event_id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate live totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[int64]LiveTotals)
	for rows.Next() {
		var eventID int64
		var lt LiveTotals
		if err := rows.Scan(&eventID, &lt.Count, &lt.Total); err != nil {
			return nil, fmt.Errorf("failed to scan live totals: %w", err)
		}
		totals[eventID] = lt
	}

	return totals, rows.Err()
}

// AnalyticsTimeline returns per-event totals, oldest first, filtered by the
// inclusive start_date range (empty bounds are ignored).
func (r *Repository) AnalyticsTimeline(ctx context.Context, startDate, endDate string) ([]*TimelineEntry, error) {
	query := `
		SELECT e.name, e.start_date, e.end_date, COALESCE(SUM(x.amount), 0) AS total
		FROM events e
		JOIN expenses x ON e.id = x.event_id
		WHERE ($1 = '' OR e.start_date >= $1)
		  AND ($2 = '' OR e.start_date <= $2)
		GROUP BY e.id
		ORDER BY e.start_date ASC
	`

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics timeline: %w", err)
	}
	defer rows.Close()

	var entries []*TimelineEntry
	for rows.Next() {
		entry := &TimelineEntry{}
		if err := rows.Scan(&entry.Name, &entry.StartDate, &entry.EndDate, &entry.Total); err != nil {
			return nil, fmt.Errorf("failed to scan timeline entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// AnalyticsByUser returns per-user spend totals within the date range,
// biggest spender first.
func (r *Repository) AnalyticsByUser(ctx context.Context, startDate, endDate string) ([]*UserSpend, error) {
	query := `
		SELECT u.id, u.name, COALESCE(SUM(x.amount), 0) AS total
		FROM expenses x
		JOIN users u ON x.user_id = u.id
		JOIN events e ON x.event_id = e.id
		WHERE ($1 = '' OR e.start_date >= $1)
		  AND ($2 = '' OR e.start_date <= $2)
		GROUP BY u.id, u.name
		ORDER BY total DESC
	`

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics by user: %w", err)
	}
	defer rows.Close()

	var spends []*UserSpend
	for rows.Next() {
		spend := &UserSpend{}
		if err := rows.Scan(&spend.UserID, &spend.Name, &spend.Total); err != nil {
			return nil, fmt.Errorf("failed to scan user spend: %w", err)
		}
		spends = append(spends, spend)
	}

	return spends, rows.Err()
}
