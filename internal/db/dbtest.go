package db

import (
	"os"
	"testing"
)

// InitTestDB connects to the database named by TEST_DATABASE_URL and runs
// migrations. Tests that need Postgres call it first and are skipped when the
// variable is unset, so the unit suite stays runnable without infrastructure.
func InitTestDB(t *testing.T) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database test")
	}
	if err := Init(dsn); err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	if err := RunMigrations("../../migrations"); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
}
