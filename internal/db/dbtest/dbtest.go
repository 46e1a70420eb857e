// Package dbtest opens throwaway in-memory stores for tests.
package dbtest

import (
	"testing"

	"fastpay/internal/config"
	"fastpay/internal/db"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// New returns a migrated store backed by a private in-memory SQLite database
func New(t testing.TB) (*db.Store, *gorm.DB) {
	t.Helper()
	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBDSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	gdb, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store := db.NewStore(gdb)
	t.Cleanup(func() { _ = store.Close() })
	return store, gdb
}
