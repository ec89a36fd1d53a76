package service

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

var fixedNow = time.Date(2025, 10, 25, 14, 30, 0, 0, time.UTC)

// fixture wires the services to a fresh database.
type fixture struct {
	db           *sql.DB
	terms        *sqlstore.TermStore
	sets         *sqlstore.SetStore
	linkages     *sqlstore.LinkageStore
	associations AssociationService
	setService   SetService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testdb.New(t)
	f := &fixture{
		db:       db,
		terms:    sqlstore.NewTermStore(db, testdb.Dialect, nil),
		sets:     sqlstore.NewSetStore(db, testdb.Dialect, nil),
		linkages: sqlstore.NewLinkageStore(db, testdb.Dialect, nil),
	}

	var err error
	f.associations, err = NewAssociationService(db, f.sets, f.terms, f.linkages, nil)
	require.NoError(t, err)
	f.setService, err = NewSetService(db, f.sets, f.linkages, f.associations, nil,
		WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	return f
}

func (f *fixture) seedTerms(t *testing.T, lang domain.Language, words ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(words))
	for _, w := range words {
		id, err := f.terms.Create(context.Background(), lang, domain.TermEntry{Word: w, Definition: w + " meaning"})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func (f *fixture) seedSet(t *testing.T, lang domain.Language, name, folder string) *domain.Set {
	t.Helper()
	set, err := f.setService.CreateSet(context.Background(), string(lang), name, folder, "")
	require.NoError(t, err)
	return set
}

func (f *fixture) linkedIDs(t *testing.T, setID int64, lang domain.Language) []int64 {
	t.Helper()
	terms, err := f.linkages.TermsForSet(context.Background(), setID, lang)
	require.NoError(t, err)
	ids := make([]int64, 0, len(terms))
	for _, term := range terms {
		ids = append(ids, term.ID)
	}
	return ids
}
