package sqlstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yodaslang/yodas-api/internal/store"
)

// Dialect names the SQL flavour spoken by the connected database.
type Dialect string

// Supported dialects.
const (
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
	DialectSQLite   Dialect = "sqlite3"
)

// DialectForDriver maps a database/sql driver name to its Dialect.
func DialectForDriver(driver string) (Dialect, error) {
	switch driver {
	case "pgx", "postgres":
		return DialectPostgres, nil
	case "mysql":
		return DialectMySQL, nil
	case "sqlite3":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Rebind rewrites ? placeholders into the form the dialect expects.
// Queries built by this package never contain a literal question mark.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RandomFunc is the SQL expression used to shuffle rows.
func (d Dialect) RandomFunc() string {
	if d == DialectMySQL {
		return "RAND()"
	}
	return "RANDOM()"
}

// placeholders returns "?, ?, ?" with n markers.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// int64Args converts ids into query arguments.
func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// insertReturningID runs an INSERT of a single row and returns the id the
// database generated for it.
func insertReturningID(ctx context.Context, db store.DBTX, d Dialect, query string, args ...any) (int64, error) {
	if d == DialectPostgres {
		var id int64
		err := db.QueryRowContext(ctx, d.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
