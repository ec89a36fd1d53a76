package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/yodaslang/yodas-api/internal/store"
)

// PostgreSQL error codes
const (
	pgUniqueViolationCode     = "23505"
	pgForeignKeyViolationCode = "23503"
	pgCheckViolationCode      = "23514"
	pgNotNullViolationCode    = "23502"
)

// MySQL error numbers
const (
	mysqlDuplicateEntry    uint16 = 1062
	mysqlRowIsReferenced   uint16 = 1451
	mysqlNoReferencedRow   uint16 = 1452
	mysqlBadNullError      uint16 = 1048
	mysqlCheckConstraintID uint16 = 3819
)

// MapError maps a driver error to the store sentinel errors so that callers
// can test with errors.Is regardless of the database in use. Errors with no
// mapping are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	switch {
	case IsUniqueViolation(err):
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case isConstraintViolation(err):
		return fmt.Errorf("%w: constraint violation: %v", store.ErrInvalidEntity, err)
	}

	return err
}

// IsUniqueViolation reports whether err is a unique or primary key
// violation on any supported database.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolationCode
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}

func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolationCode, pgCheckViolationCode, pgNotNullViolationCode:
			return true
		}
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlRowIsReferenced, mysqlNoReferencedRow, mysqlBadNullError, mysqlCheckConstraintID:
			return true
		}
		return false
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrConstraint
	}

	return false
}

// storeErr wraps a failed statement as a StoreError carrying the mapped
// driver error.
func storeErr(entity, operation, message string, err error) error {
	return store.NewStoreError(entity, operation, message, MapError(err))
}
