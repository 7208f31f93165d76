package cli

import (
	"fmt"
	"io"

	"github.com/terraincognita07/tripplanner/internal/db"
	"github.com/terraincognita07/tripplanner/internal/services"
)

func RunGrantCreditsCommand(dbPath string, email string, credits int, freeCredits int, out io.Writer) error {
	normalizedEmail := services.NormalizeAuthEmail(email)
	if normalizedEmail == "" {
		return fmt.Errorf("a valid email is required")
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

	balance, err := services.NewCreditService(users).Grant(user.ID, credits, freeCredits)
	if err != nil {
		return fmt.Errorf("grant credits: %w", err)
	}

	fmt.Fprintf(out, "Granted %d paid and %d free credit(s) to %s\n", credits, freeCredits, normalizedEmail)
	fmt.Fprintf(out, "Balance: %d paid, %d free\n", balance.Credits, balance.FreeCredits)
	return nil
}
