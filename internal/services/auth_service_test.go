package services

import (
	"errors"
	"testing"
)

func TestAuthServiceRegisterSeedsFreeCredits(t *testing.T) {
	t.Parallel()

	_, repositories := openServicesTestDB(t)
	service := NewAuthService(repositories.Users, 3)

	user, err := service.Register(" Traveler@Example.com ", "StrongPass1", "  Robin ")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "traveler@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.DisplayName != "Robin" {
		t.Fatalf("expected trimmed display name, got %q", user.DisplayName)
	}
	if user.FreeCredits != 3 || user.Credits != 0 {
		t.Fatalf("expected 3 free and 0 paid credits, got %d and %d", user.FreeCredits, user.Credits)
	}
	if user.PasswordHash == "StrongPass1" {
		t.Fatal("expected password to be hashed")
	}

	if _, err := service.Register("traveler@example.com", "StrongPass1", ""); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for a duplicate email, got %v", err)
	}
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	t.Parallel()

	service := NewAuthService(nil, 3)
	if _, err := service.Register("not-email", "StrongPass1", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for bad email, got %v", err)
	}
	if _, err := service.Register("user@example.com", "weak", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for weak password, got %v", err)
	}
}

func TestAuthServiceAuthenticate(t *testing.T) {
	t.Parallel()

	_, repositories := openServicesTestDB(t)
	service := NewAuthService(repositories.Users, 0)
	registered, err := service.Register("login@example.com", "StrongPass1", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := service.Authenticate("LOGIN@example.com", "StrongPass1")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %d, got %d", registered.ID, user.ID)
	}

	if _, err := service.Authenticate("login@example.com", "WrongPass1"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid for wrong password, got %v", err)
	}
	if _, err := service.Authenticate("nobody@example.com", "StrongPass1"); !errors.Is(err, ErrAuthCredentialsInvalid) {
		t.Fatalf("expected ErrAuthCredentialsInvalid for unknown email, got %v", err)
	}
}
