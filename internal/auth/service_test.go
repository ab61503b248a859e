package auth

import (
	"context"
	"testing"

	mw "github.com/hamzash/kharcha/pkg/middleware"
)

const testSecret = "test-secret"

// fakeStore keeps PIN hashes in memory.
type fakeStore struct {
	hashes map[string]string
}

func (f *fakeStore) PINHashes(_ context.Context) (string, string, error) {
	return f.hashes[keyAdminPIN], f.hashes[keyUserPIN], nil
}

func (f *fakeStore) SetPINHash(_ context.Context, key, hash string) error {
	f.hashes[key] = hash
	return nil
}

func newSeededService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	store := &fakeStore{hashes: make(map[string]string)}
	service := NewService(store, testSecret)
	if err := service.EnsureDefaultPINs(context.Background(), "1234", "0000"); err != nil {
		t.Fatalf("failed to seed pins: %v", err)
	}
	return service, store
}

func TestLoginResolvesRoles(t *testing.T) {
	service, _ := newSeededService(t)
	ctx := context.Background()

	cases := []struct {
		pin  string
		role string
	}{
		{"1234", "admin"},
		{"0000", "user"},
	}
	for _, tc := range cases {
		result, err := service.Login(ctx, tc.pin)
		if err != nil {
			t.Fatalf("login with %q failed: %v", tc.pin, err)
		}
		if result.Role != tc.role {
			t.Errorf("pin %q: expected role %q, got %q", tc.pin, tc.role, result.Role)
		}

		parsed, err := mw.ParseToken(testSecret, result.Token)
		if err != nil {
			t.Fatalf("token for %q does not verify: %v", tc.pin, err)
		}
		if string(parsed) != tc.role {
			t.Errorf("token carries role %q, expected %q", parsed, tc.role)
		}
	}
}

func TestLoginRejectsUnknownPIN(t *testing.T) {
	service, _ := newSeededService(t)

	if _, err := service.Login(context.Background(), "9999"); err != ErrInvalidPIN {
		t.Errorf("expected ErrInvalidPIN, got %v", err)
	}
	if _, err := service.Login(context.Background(), ""); err != ErrPINMissing {
		t.Errorf("expected ErrPINMissing, got %v", err)
	}
}

func TestUpdatePINsRotates(t *testing.T) {
	service, _ := newSeededService(t)
	ctx := context.Background()

	newPIN := "4321"
	if err := service.UpdatePINs(ctx, &UpdatePINsRequest{AdminPIN: &newPIN}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := service.Login(ctx, "1234"); err != ErrInvalidPIN {
		t.Errorf("old admin PIN should be rejected, got %v", err)
	}

	result, err := service.Login(ctx, "4321")
	if err != nil {
		t.Fatalf("new admin PIN failed: %v", err)
	}
	if result.Role != "admin" {
		t.Errorf("expected admin role, got %q", result.Role)
	}

	// User PIN untouched.
	if _, err := service.Login(ctx, "0000"); err != nil {
		t.Errorf("user PIN should still work, got %v", err)
	}
}

func TestEnsureDefaultPINsIsIdempotent(t *testing.T) {
	service, store := newSeededService(t)
	before := store.hashes[keyAdminPIN]

	if err := service.EnsureDefaultPINs(context.Background(), "1234", "0000"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.hashes[keyAdminPIN] != before {
		t.Error("existing hashes must not be reseeded")
	}
}
