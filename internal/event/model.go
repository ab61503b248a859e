package event

import (
	"time"

	"github.com/hamzash/kharcha/internal/event/settle"
)

// Event represents one bounded group-expense period. Totals are
// live-computed while the event is active and frozen once archived.
type Event struct {
	ID                int64      `json:"id"`
	Name              string     `json:"name"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	IsActive          bool       `json:"is_active"`
	TotalAmount       float64    `json:"total_amount"`
	PerHead           float64    `json:"per_head"`
	ParticipantsCount int        `json:"participants_count"`
	SettlementsJSON   *string    `json:"-"`
	GanduID           *int64     `json:"gandu_id,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	ArchivedAt        *time.Time `json:"archived_at,omitempty"`
}

// UserAmount is one expense row as the lifecycle sees it: who, and what
// they declared. A nil amount means "not yet entered", distinct from zero.
type UserAmount struct {
	UserID int64
	Amount *float64
}

// Snapshot is the frozen financial summary written onto an event at
// archival time. Once written it is never recomputed.
type Snapshot struct {
	TotalAmount       float64
	PerHead           float64
	ParticipantsCount int
	SettlementsJSON   string
}

// LiveTotals is the aggregate over an event's current expense rows.
type LiveTotals struct {
	Count int
	Total float64
}

// HistoryItem is one entry in the event history view. For archived events
// with a frozen snapshot the figures come verbatim from the snapshot;
// otherwise they are computed live.
type HistoryItem struct {
	ID                int64
	Name              string
	StartDate         string
	EndDate           string
	IsActive          bool
	TotalAmount       float64
	PerHead           float64
	ParticipantsCount int
	Settlements       []settle.Transfer
	GanduID           *int64
	ArchivedAt        *time.Time
}

// TimelineEntry is the per-event total within an analytics date range.
type TimelineEntry struct {
	Name      string  `json:"name"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Total     float64 `json:"total"`
}

// UserSpend is one user's aggregate spend within an analytics date range.
type UserSpend struct {
	UserID int64   `json:"user_id"`
	Name   string  `json:"name"`
	Total  float64 `json:"total"`
}

// Summary is the overall picture for an analytics date range.
type Summary struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
	Avg   float64 `json:"avg"`
}

// Highlights are the most and least expensive events in the range. Both
// are nil when the range holds no events.
type Highlights struct {
	Max *TimelineEntry `json:"max"`
	Min *TimelineEntry `json:"min"`
}

// Analytics bundles the date-range-filtered aggregate views.
type Analytics struct {
	Summary    Summary          `json:"summary"`
	Timeline   []*TimelineEntry `json:"timeline"`
	ByUser     []*UserSpend     `json:"by_user"`
	Highlights Highlights       `json:"highlights"`
}
