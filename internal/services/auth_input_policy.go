package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

const maxDisplayNameLength = 80

var ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")

// NormalizeAuthEmail lower-cases a bare address. Display-name forms such as
// "Ann <ann@example.com>" are rejected so invite emails compare exactly.
func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	address, err := mail.ParseAddress(email)
	if err != nil || address.Address != email {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

func NormalizeDisplayName(raw string) (string, error) {
	displayName := strings.Join(strings.Fields(raw), " ")
	if len([]rune(displayName)) > maxDisplayNameLength {
		return "", fmt.Errorf("%w: display name is longer than %d characters", ErrValidation, maxDisplayNameLength)
	}
	return displayName, nil
}
