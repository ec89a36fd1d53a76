package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yodaslang/yodas-api/internal/ciutil"
	"github.com/yodaslang/yodas-api/internal/platform/sqlstore"
)

// cleanupOrder lists every table children first so rows can be deleted
// without violating foreign keys. Only the SQLite schema has a sessions
// table.
var cleanupOrder = []string{"setlinkagetable", "settable", "spanishtable", "japanesetable", "users"}

// External connects to the database named by YODAS_TEST_DB_URL, migrates it
// and empties every table before and after the test. The test is skipped
// when no database is configured, unless ciutil.RequireExternalDatabase.
//
// External databases are shared, so tests using them must not run in
// parallel.
func External(t *testing.T) (*sql.DB, sqlstore.Dialect) {
	t.Helper()

	cfg, ok := ciutil.ExternalDatabase()
	if !ok {
		if ciutil.RequireExternalDatabase() {
			t.Fatalf("%s must be set", ciutil.EnvTestDBURL)
		}
		t.Skipf("%s not set; skipping external database test", ciutil.EnvTestDBURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	db, dialect, err := sqlstore.Open(ctx, cfg)
	require.NoError(t, err, "failed to open external test database")

	quiet := slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelWarn}))
	require.NoError(t, sqlstore.Migrate(ctx, db, dialect, sqlstore.MigrateUp, quiet),
		"failed to migrate external test database")

	truncate(t, db, dialect)
	t.Cleanup(func() {
		truncate(t, db, dialect)
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close external test database: %v", err)
		}
	})

	return db, dialect
}

func truncate(t *testing.T, db *sql.DB, dialect sqlstore.Dialect) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	tables := cleanupOrder
	if dialect == sqlstore.DialectSQLite {
		tables = append([]string{"sessions"}, tables...)
	}
	for _, table := range tables {
		if _, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("Warning: failed to empty %s: %v", table, err)
		}
	}
}
