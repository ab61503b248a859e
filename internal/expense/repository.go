package expense

import (
	"context"
	"database/sql"
	"fmt"
)

// Repository handles expense data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ActiveEvent retrieves the current active event, if any
func (r *Repository) ActiveEvent(ctx context.Context) (*ActiveEvent, error) {
	query := `
		SELECT id, name, start_date, end_date, gandu_id
		FROM events
		WHERE is_active
		ORDER BY id DESC
		LIMIT 1
	`

	event := &ActiveEvent{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&event.ID,
		&event.Name,
		&event.StartDate,
		&event.EndDate,
		&event.GanduID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active event: %w", err)
	}

	return event, nil
}

// ListByEvent retrieves all expense rows for an event joined with user
// names, ordered by name
func (r *Repository) ListByEvent(ctx context.Context, eventID int64) ([]*Expense, error) {
	query := `
		SELECT e.id, e.event_id, e.user_id, e.amount, e.updated_at, u.name
		FROM expenses e
		JOIN users u ON e.user_id = u.id
		WHERE e.event_id = $1
		ORDER BY u.name
	`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.EventID,
			&expense.UserID,
			&expense.Amount,
			&expense.UpdatedAt,
			&expense.UserName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, rows.Err()
}

// GetByEventAndUser retrieves a single expense row for an (event, user) pair
func (r *Repository) GetByEventAndUser(ctx context.Context, eventID, userID int64) (*Expense, error) {
	query := `
		SELECT id, event_id, user_id, amount, updated_at
		FROM expenses
		WHERE event_id = $1 AND user_id = $2
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, eventID, userID).Scan(
		&expense.ID,
		&expense.EventID,
		&expense.UserID,
		&expense.Amount,
		&expense.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// UpdateAmount sets the amount on an existing expense row
func (r *Repository) UpdateAmount(ctx context.Context, id int64, amount float64) error {
	query := `UPDATE expenses SET amount = $2, updated_at = NOW() WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, amount); err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}

	return nil
}

// Create inserts a late-joining expense row with an initial amount
func (r *Repository) Create(ctx context.Context, eventID, userID int64, amount float64) error {
	query := `INSERT INTO expenses (event_id, user_id, amount) VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, eventID, userID, amount); err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}

	return nil
}

// AssignGandu records the event's Gandu. The conditional WHERE makes the
// assignment first-wins: once gandu_id is set it is never overwritten.
func (r *Repository) AssignGandu(ctx context.Context, eventID, userID int64) error {
	query := `UPDATE events SET gandu_id = $2 WHERE id = $1 AND gandu_id IS NULL`

	if _, err := r.db.ExecContext(ctx, query, eventID, userID); err != nil {
		return fmt.Errorf("failed to assign gandu: %w", err)
	}

	return nil
}
