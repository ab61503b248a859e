package expense

import "time"

// Expense is one participant's declared spend for one event. Amount is nil
// until the participant has entered a figure; zero is a real entry.
type Expense struct {
	ID        int64     `json:"id"`
	EventID   int64     `json:"event_id"`
	UserID    int64     `json:"user_id"`
	Amount    *float64  `json:"amount"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated via JOIN
	UserName string `json:"user_name,omitempty"`
}

// ActiveEvent is the slice of the events table the expense feature reads.
type ActiveEvent struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	GanduID   *int64 `json:"gandu_id,omitempty"`
}

// Stats are the live figures for the active event. PerHead divides the
// running total by the participant count, not by how many have paid.
type Stats struct {
	Total      float64 `json:"total"`
	UsersCount int     `json:"users_count"`
	PerHead    float64 `json:"per_head"`
}
