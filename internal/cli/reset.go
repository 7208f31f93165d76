package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/tripplanner/internal/db"
	"github.com/terraincognita07/tripplanner/internal/security"
	"github.com/terraincognita07/tripplanner/internal/services"
	"golang.org/x/crypto/bcrypt"
)

// RunResetPasswordCommand sets a new password for the account. The password is
// read from the terminal without echo; when stdin is not a terminal a temporary
// password is generated and printed instead.
func RunResetPasswordCommand(dbPath string, email string, stdin *os.File, out io.Writer) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return errors.New("a valid email is required")
	}

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	users := db.NewUserRepository(database)

	user, err := users.FindByNormalizedEmail(normalizedEmail)
	if err != nil {
		if db.IsNotFound(err) {
			return fmt.Errorf("user %s not found", normalizedEmail)
		}
		return fmt.Errorf("load user: %w", err)
	}

	password, generated, err := promptNewPassword(stdin, out)
	if err != nil {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := users.UpdatePasswordHash(user.ID, string(passwordHash)); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintf(out, "Password reset for %s\n", normalizedEmail)
	if generated {
		fmt.Fprintf(out, "Temporary password: %s\n", password)
	}
	return nil
}

func promptNewPassword(stdin *os.File, out io.Writer) (string, bool, error) {
	fmt.Fprint(out, "New password: ")
	entered, err := readSecretLine(stdin)
	fmt.Fprintln(out)
	if errors.Is(err, errNoTerminal) {
		temporary, genErr := generateTemporaryPassword(12)
		if genErr != nil {
			return "", false, fmt.Errorf("generate temporary password: %w", genErr)
		}
		return temporary, true, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read password: %w", err)
	}

	if err := services.ValidatePasswordStrength(entered); err != nil {
		return "", false, fmt.Errorf("new password rejected: %w", err)
	}
	return entered, false, nil
}

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	for {
		candidate, err := security.RandomString(length, alphabet)
		if err != nil {
			return "", err
		}
		if services.ValidatePasswordStrength(candidate) == nil {
			return candidate, nil
		}
	}
}
