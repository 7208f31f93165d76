package services

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeAuthEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "normalizes case and spaces", raw: " USER@EXAMPLE.COM ", want: "user@example.com"},
		{name: "invalid email returns empty", raw: "not-email", want: ""},
		{name: "display name form returns empty", raw: "Ann <ann@example.com>", want: ""},
		{name: "empty returns empty", raw: "   ", want: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := NormalizeAuthEmail(testCase.raw); got != testCase.want {
				t.Fatalf("NormalizeAuthEmail(%q) = %q, want %q", testCase.raw, got, testCase.want)
			}
		})
	}
}

func TestNormalizeCredentialsInput(t *testing.T) {
	t.Parallel()

	email, password, err := NormalizeCredentialsInput(" USER@EXAMPLE.COM ", "  StrongPass1  ")
	if err != nil {
		t.Fatalf("expected valid credentials input, got %v", err)
	}
	if email != "user@example.com" || password != "StrongPass1" {
		t.Fatalf("expected normalized credentials, got %q / %q", email, password)
	}

	for _, pair := range [][2]string{{"not-email", "StrongPass1"}, {"user@example.com", " "}} {
		if _, _, err := NormalizeCredentialsInput(pair[0], pair[1]); !errors.Is(err, ErrAuthCredentialsInvalid) {
			t.Fatalf("expected ErrAuthCredentialsInvalid for %q, got %v", pair[0], err)
		}
	}
}

func TestNormalizeDisplayName(t *testing.T) {
	t.Parallel()

	name, err := NormalizeDisplayName("  Ada   Lovelace ")
	if err != nil {
		t.Fatalf("expected valid display name, got %v", err)
	}
	if name != "Ada Lovelace" {
		t.Fatalf("expected collapsed whitespace, got %q", name)
	}

	if _, err := NormalizeDisplayName(strings.Repeat("n", maxDisplayNameLength+1)); KindOf(err) != KindValidation {
		t.Fatalf("expected validation kind for long display name, got %v", err)
	}
}
