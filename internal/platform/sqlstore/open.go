package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the pgx driver
	"github.com/yodaslang/yodas-api/internal/config"
)

// Open connects to the configured database, applies the pool settings and
// verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, Dialect, error) {
	dialect, err := DialectForDriver(cfg.Driver)
	if err != nil {
		return nil, "", err
	}

	dsn, err := normalizeDSN(dialect, cfg.URL)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if dialect == DialectSQLite && isSQLiteMemory(dsn) {
		// Every connection to :memory: would see its own empty database.
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	return db, dialect, nil
}

// normalizeDSN adjusts driver options the stores rely on. MySQL needs
// parseTime so DATE and DATETIME columns scan into time values.
func normalizeDSN(d Dialect, dsn string) (string, error) {
	if d != DialectMySQL {
		return dsn, nil
	}

	mcfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid mysql DSN: %w", err)
	}
	mcfg.ParseTime = true
	return mcfg.FormatDSN(), nil
}

func isSQLiteMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
