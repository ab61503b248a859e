package gandu

import "time"

// HistoryEntry is one archived event and the user who was tagged last.
type HistoryEntry struct {
	EventID    int64      `json:"event_id"`
	EventName  string     `json:"event_name"`
	ArchivedAt *time.Time `json:"archived_at"`
	UserID     int64      `json:"user_id"`
	UserName   string     `json:"user_name"`
	UserAvatar *string    `json:"user_avatar,omitempty"`
}

// LeaderboardEntry is one user's total tag count.
type LeaderboardEntry struct {
	UserID      int64      `json:"user_id"`
	UserName    string     `json:"user_name"`
	UserAvatar  *string    `json:"user_avatar,omitempty"`
	GanduCount  int        `json:"gandu_count"`
	LastGanduAt *time.Time `json:"last_gandu_at"`
}

// Stats bundles the full gandu picture: recent history, the leaderboard,
// and the reigning king (most frequently tagged; nil when nobody has been
// tagged yet).
type Stats struct {
	History     []*HistoryEntry     `json:"history"`
	Leaderboard []*LeaderboardEntry `json:"leaderboard"`
	King        *LeaderboardEntry   `json:"king"`
}
