// Package testdb provides throwaway databases for tests. Each database is
// an in-memory SQLite instance with every migration applied, so store and
// service tests run without external services.
package testdb
