package sqlstore_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/platform/sqlstore"
	"github.com/yodaslang/yodas-api/internal/testdb"
)

type stores struct {
	db       *sql.DB
	terms    *sqlstore.TermStore
	sets     *sqlstore.SetStore
	linkages *sqlstore.LinkageStore
	users    *sqlstore.UserStore
}

func newStores(t *testing.T) stores {
	t.Helper()
	db := testdb.New(t)
	return stores{
		db:       db,
		terms:    sqlstore.NewTermStore(db, testdb.Dialect, nil),
		sets:     sqlstore.NewSetStore(db, testdb.Dialect, nil),
		linkages: sqlstore.NewLinkageStore(db, testdb.Dialect, nil),
		users:    sqlstore.NewUserStore(db, testdb.Dialect, nil),
	}
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), testdb.TestTimeout)
	t.Cleanup(cancel)
	return ctx
}

func seedTerms(t *testing.T, s stores, lang domain.Language, words ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(words))
	for _, w := range words {
		id, err := s.terms.Create(testContext(t), lang, domain.TermEntry{Word: w, Definition: "def of " + w})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func seedSet(t *testing.T, s stores, lang domain.Language, name, folder string) *domain.Set {
	t.Helper()
	set, err := domain.NewSet(lang, name, folder, "", time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, s.sets.Create(testContext(t), set))
	return set
}
