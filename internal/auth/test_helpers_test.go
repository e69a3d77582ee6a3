package auth

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/vrfurtado/climacore/internal/infrastructure/database"
	_ "github.com/vrfurtado/climacore/migrations" // register embedded migrations
)

// testDB opens a temporary migrated database for repository tests.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "auth_test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	return db.DB
}
