package testdb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AppliesMigrations(t *testing.T) {
	db := New(t)

	for _, table := range []string{"spanishtable", "japanesetable", "settable", "setlinkagetable", "users", "sessions"} {
		var name string
		err := db.QueryRowContext(context.Background(),
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestNew_Isolated(t *testing.T) {
	first := New(t)
	second := New(t)

	_, err := first.Exec("INSERT INTO spanishtable (word, definition) VALUES ('hola', 'hello')")
	require.NoError(t, err)

	var count int
	require.NoError(t, second.QueryRow("SELECT COUNT(*) FROM spanishtable").Scan(&count))
	assert.Zero(t, count)
}

func TestWithTx_RollsBack(t *testing.T) {
	db := New(t)

	WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := tx.Exec("INSERT INTO spanishtable (word, definition) VALUES ('hola', 'hello')")
		require.NoError(t, err)
	})

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM spanishtable").Scan(&count))
	assert.Zero(t, count)
}
