package user

import "time"

// User represents a participant. Users are never hard-deleted: IsActive is
// flipped off instead, so historical expense rows keep rendering.
type User struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Avatar      *string   `json:"avatar,omitempty"`
	AvatarThumb *string   `json:"avatar_thumb,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}
