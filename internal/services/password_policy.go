package services

import (
	"errors"
	"fmt"
	"unicode"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

var ErrWeakPassword = errors.New("weak password")

// ValidatePasswordStrength accepts 8 to 72 byte passwords mixing upper case,
// lower case and digits. The returned error wraps ErrWeakPassword and names the
// first rule that failed.
func ValidatePasswordStrength(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return fmt.Errorf("%w: use at least %d characters", ErrWeakPassword, minPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: use at most %d bytes", ErrWeakPassword, maxPasswordBytes)
	}

	var hasUpper, hasLower, hasDigit bool
	for _, char := range password {
		hasUpper = hasUpper || unicode.IsUpper(char)
		hasLower = hasLower || unicode.IsLower(char)
		hasDigit = hasDigit || unicode.IsDigit(char)
	}

	switch {
	case !hasUpper:
		return fmt.Errorf("%w: add an upper case letter", ErrWeakPassword)
	case !hasLower:
		return fmt.Errorf("%w: add a lower case letter", ErrWeakPassword)
	case !hasDigit:
		return fmt.Errorf("%w: add a digit", ErrWeakPassword)
	}
	return nil
}
