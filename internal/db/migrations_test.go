package db

import (
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openRawSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "tripplanner-migrations-test.db")
	database, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{})
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
	return database
}

func TestApplyMigrationsRunsInOrderOnce(t *testing.T) {
	t.Parallel()

	database := openRawSQLite(t)
	files := fstest.MapFS{
		"002_add_column.sql": {Data: []byte("ALTER TABLE notes ADD COLUMN body TEXT NOT NULL DEFAULT '';")},
		"001_create.sql":     {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY);")},
		"README.md":          {Data: []byte("not a migration")},
	}

	if err := applyMigrations(database, files); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if err := applyMigrations(database, files); err != nil {
		t.Fatalf("second apply should be a no-op: %v", err)
	}

	var applied int64
	if err := database.Raw("SELECT COUNT(*) FROM schema_migrations").Scan(&applied).Error; err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 2 {
		t.Fatalf("expected 2 recorded migrations, got %d", applied)
	}
}

func TestApplyMigrationsRejectsModifiedMigration(t *testing.T) {
	t.Parallel()

	database := openRawSQLite(t)
	files := fstest.MapFS{
		"001_create.sql": {Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY);")},
	}
	if err := applyMigrations(database, files); err != nil {
		t.Fatalf("first apply: %v", err)
	}

	files["001_create.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE notes (id INTEGER PRIMARY KEY, extra TEXT);")}
	err := applyMigrations(database, files)
	if err == nil || !strings.Contains(err.Error(), "modified") {
		t.Fatalf("expected modified migration error, got %v", err)
	}
}

func TestLoadMigrationsRejectsDuplicateVersions(t *testing.T) {
	t.Parallel()

	files := fstest.MapFS{
		"001_a.sql": {Data: []byte("SELECT 1;")},
		"001_b.sql": {Data: []byte("SELECT 2;")},
	}
	if _, err := loadMigrations(files); err == nil {
		t.Fatal("expected duplicate version error")
	}
}

func TestSplitSQLStatements(t *testing.T) {
	t.Parallel()

	statements := splitSQLStatements("CREATE TABLE a (id INTEGER);\n\n  ;CREATE INDEX idx ON a(id);  ")
	if len(statements) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(statements), statements)
	}
}
