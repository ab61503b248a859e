package user

import (
	"context"
	"errors"
	"log"
	"strings"
)

// Common errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrNameRequired = errors.New("name is required")
)

// Service handles user business logic
type Service struct {
	repo *Repository
}

// NewService creates a new user service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new user. Thumbnail generation is best-effort: a bad
// avatar is logged and stored without a thumbnail rather than aborting.
func (s *Service) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	return s.repo.Create(ctx, req.Name, req.Avatar, deriveThumb(req.Avatar))
}

// GetByID retrieves a user by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ListActive retrieves all active users
func (s *Service) ListActive(ctx context.Context) ([]*User, error) {
	return s.repo.ListActive(ctx)
}

// Update modifies a user's name or avatar; a changed avatar regenerates
// the thumbnail
func (s *Service) Update(ctx context.Context, id int64, req *UpdateUserRequest) (*User, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	name := existing.Name
	if req.Name != nil {
		name = *req.Name
	}

	avatar := existing.Avatar
	avatarThumb := existing.AvatarThumb
	if req.Avatar != nil {
		avatar = req.Avatar
		avatarThumb = deriveThumb(req.Avatar)
	}

	return s.repo.Update(ctx, id, name, avatar, avatarThumb)
}

// Deactivate soft-deletes a user
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrUserNotFound
	}

	return s.repo.Deactivate(ctx, id)
}

func deriveThumb(avatar *string) *string {
	if avatar == nil {
		return nil
	}

	thumb, err := Thumbnail(*avatar)
	if err != nil {
		log.Printf("avatar thumbnail generation failed: %v", err)
		return nil
	}
	return &thumb
}
