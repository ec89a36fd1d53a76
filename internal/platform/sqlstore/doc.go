// Package sqlstore implements the store interfaces on database/sql.
//
// One implementation serves PostgreSQL (through pgx), MySQL and SQLite.
// Queries are written with ? placeholders and rebound for the active
// Dialect. Schema migrations for each dialect are embedded and applied
// with goose.
package sqlstore
