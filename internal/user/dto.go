package user

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Name   string  `json:"name" validate:"required"`
	Avatar *string `json:"avatar,omitempty"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// UserResponse represents the response for a single user
type UserResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Avatar      *string `json:"avatar,omitempty"`
	AvatarThumb *string `json:"avatar_thumb,omitempty"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
}

// ToResponse converts a User model to a UserResponse DTO
func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Avatar:      u.Avatar,
		AvatarThumb: u.AvatarThumb,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
