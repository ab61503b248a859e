package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	mw "github.com/hamzash/kharcha/pkg/middleware"
)

// tokenTTL is how long a login session stays valid.
const tokenTTL = 7 * 24 * time.Hour

// Common errors
var (
	ErrInvalidPIN = errors.New("invalid PIN")
	ErrPINMissing = errors.New("PIN is required")
)

// Store is the persistence surface the auth feature needs. *Repository
// satisfies it; tests swap in a fake.
type Store interface {
	PINHashes(ctx context.Context) (adminHash, userHash string, err error)
	SetPINHash(ctx context.Context, key, hash string) error
}

// Service handles PIN authentication and rotation
type Service struct {
	repo      Store
	jwtSecret string
}

// NewService creates a new auth service with store dependency injected
func NewService(repo Store, jwtSecret string) *Service {
	return &Service{repo: repo, jwtSecret: jwtSecret}
}

// Login resolves a PIN to a role and issues a session token. The admin
// hash is checked first so a shared PIN can never be downgraded.
func (s *Service) Login(ctx context.Context, pin string) (*LoginResponse, error) {
	if pin == "" {
		return nil, ErrPINMissing
	}

	adminHash, userHash, err := s.repo.PINHashes(ctx)
	if err != nil {
		return nil, err
	}

	var role mw.Role
	switch {
	case adminHash != "" && bcrypt.CompareHashAndPassword([]byte(adminHash), []byte(pin)) == nil:
		role = mw.RoleAdmin
	case userHash != "" && bcrypt.CompareHashAndPassword([]byte(userHash), []byte(pin)) == nil:
		role = mw.RoleUser
	default:
		return nil, ErrInvalidPIN
	}

	token, err := mw.NewToken(s.jwtSecret, role, tokenTTL)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{Role: string(role), Token: token}, nil
}

// UpdatePINs re-hashes and stores whichever PINs the request carries
func (s *Service) UpdatePINs(ctx context.Context, req *UpdatePINsRequest) error {
	if req.AdminPIN != nil && *req.AdminPIN != "" {
		if err := s.setPIN(ctx, keyAdminPIN, *req.AdminPIN); err != nil {
			return err
		}
	}

	if req.UserPIN != nil && *req.UserPIN != "" {
		if err := s.setPIN(ctx, keyUserPIN, *req.UserPIN); err != nil {
			return err
		}
	}

	return nil
}

// EnsureDefaultPINs seeds hashes for any PIN that has never been set, so a
// fresh install is immediately usable
func (s *Service) EnsureDefaultPINs(ctx context.Context, defaultAdminPIN, defaultUserPIN string) error {
	adminHash, userHash, err := s.repo.PINHashes(ctx)
	if err != nil {
		return err
	}

	if adminHash == "" {
		if err := s.setPIN(ctx, keyAdminPIN, defaultAdminPIN); err != nil {
			return err
		}
		log.Println("Default admin PIN initialized")
	}

	if userHash == "" {
		if err := s.setPIN(ctx, keyUserPIN, defaultUserPIN); err != nil {
			return err
		}
		log.Println("Default user PIN initialized")
	}

	return nil
}

func (s *Service) setPIN(ctx context.Context, key, pin string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.SetPINHash(ctx, key, string(hash))
}
