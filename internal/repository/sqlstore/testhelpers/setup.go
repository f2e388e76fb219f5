package testhelpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/pereval-service/internal/repository/sqlstore"
)

// TestDB represents a test database connection
type TestDB struct {
	DB     *sqlstore.DB
	Logger *zap.Logger
}

// SetupTestDB initializes a test database connection.
// Priority:
// 1. TEST_DB_DSN - PostgreSQL через lib/pq
// 2. in-memory SQLite
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	logger := zap.NewNop()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		db, err := sqlstore.OpenSQLiteMemory(logger)
		if err != nil {
			t.Fatalf("Failed to open in-memory sqlite: %v", err)
		}
		return &TestDB{DB: db, Logger: logger}
	}

	// Retry connection with exponential backoff to wait for DB recovery
	var sqlxDB *sqlx.DB
	var err error
	maxRetries := 5
	retryDelay := 500 * time.Millisecond

	for i := 0; i < maxRetries; i++ {
		sqlxDB, err = sqlx.Connect(sqlstore.DriverPostgres, dsn)
		if err == nil {
			break
		}
		if i < maxRetries-1 {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i+1, maxRetries, retryDelay)
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}
	if err != nil {
		t.Fatalf("Failed to connect to test database after %d attempts: %v", maxRetries, err)
	}

	tdb := &TestDB{DB: sqlstore.NewDBForTest(sqlxDB, logger), Logger: logger}
	if err := tdb.DB.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}
	if err := tdb.Cleanup(context.Background()); err != nil {
		t.Fatalf("Failed to cleanup test database: %v", err)
	}
	return tdb
}

// Close closes the database connection
func (tdb *TestDB) Close() {
	if tdb.DB != nil {
		_ = tdb.DB.Close()
	}
}

// Cleanup cleans up test data
func (tdb *TestDB) Cleanup(ctx context.Context) error {
	// Truncate tables in correct order (respecting FK constraints)
	tables := []string{"images", "levels", "perevals", "areas", "users"}

	for _, table := range tables {
		query := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)
		if tdb.DB.DriverName() == sqlstore.DriverSQLite {
			query = fmt.Sprintf("DELETE FROM %s", table)
		}
		if _, err := tdb.DB.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("cleanup %s: %w", table, err)
		}
	}

	return nil
}
