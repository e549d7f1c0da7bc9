package database

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"vegetable-orders/internal/config"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OpenTest opens a private in-memory SQLite database for one test.
func OpenTest(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := Open(config.DriverSQLite, dsn, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
