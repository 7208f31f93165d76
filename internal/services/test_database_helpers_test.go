package services

import (
	"path/filepath"
	"testing"

	"github.com/terraincognita07/tripplanner/internal/db"
	"github.com/terraincognita07/tripplanner/internal/models"
	"gorm.io/gorm"
)

func openServicesTestDB(t *testing.T) (*gorm.DB, *db.Repositories) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "tripplanner-services-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return database, db.NewRepositories(database)
}

func createTestUser(t *testing.T, repositories *db.Repositories, email string, credits int, freeCredits int) models.User {
	t.Helper()

	user := models.User{
		Email:        email,
		PasswordHash: "test-hash",
		Credits:      credits,
		FreeCredits:  freeCredits,
	}
	if err := repositories.Users.Create(&user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func createTestPlan(t *testing.T, repositories *db.Repositories, ownerID uint, destination string) models.Plan {
	t.Helper()

	plan := models.NewManualPlan(ownerID, destination, "a relaxed week of food and walks", models.TripDetails{})
	plan.Slug = newPlanSlug(destination)
	if err := repositories.Plans.Create(&plan); err != nil {
		t.Fatalf("create plan: %v", err)
	}
	return plan
}
