package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/store"
)

func TestCreateSet(t *testing.T) {
	ctx := context.Background()

	t.Run("dates the set with the clock", func(t *testing.T) {
		f := newFixture(t)

		set, err := f.setService.CreateSet(ctx, "japanese", "  漢字 N5 ", "JLPT", "first kanji")
		require.NoError(t, err)
		assert.Positive(t, set.ID)
		assert.Equal(t, "漢字 N5", set.Name)
		assert.Equal(t, "2025-10-25", set.DateCreated.String())
		assert.Equal(t, set.DateCreated, set.DateModified)

		stored, err := f.sets.GetByID(ctx, set.ID)
		require.NoError(t, err)
		assert.Equal(t, set.Name, stored.Name)
		assert.Equal(t, domain.LanguageJapanese, stored.Language)
	})

	t.Run("names are not unique", func(t *testing.T) {
		f := newFixture(t)
		a := f.seedSet(t, domain.LanguageSpanish, "Verbs", "Week 1")
		b := f.seedSet(t, domain.LanguageSpanish, "Verbs", "Week 1")
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		f := newFixture(t)
		tests := []struct {
			name   string
			lang   string
			set    string
			folder string
			err    error
		}{
			{"unsupported language", "french", "Basics", "Week 1", domain.ErrUnsupportedLanguage},
			{"empty name", "spanish", " ", "Week 1", domain.ErrEmptyContent},
			{"punctuation in name", "spanish", "Basics!", "Week 1", domain.ErrInvalidSetName},
			{"empty folder", "spanish", "Basics", "", domain.ErrEmptyContent},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := f.setService.CreateSet(ctx, tt.lang, tt.set, tt.folder, "")
				assert.ErrorIs(t, err, tt.err)
				assert.True(t, domain.IsValidationError(err))
			})
		}

		sets, err := f.sets.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, sets)
	})
}

func TestCreateSetWithTerms(t *testing.T) {
	ctx := context.Background()

	t.Run("full", func(t *testing.T) {
		f := newFixture(t)
		ids := f.seedTerms(t, domain.LanguageSpanish, "comer", "beber")

		res, err := f.setService.CreateSetWithTerms(ctx, "spanish", "Food", "Week 2", "", ids)
		require.NoError(t, err)
		assert.Equal(t, CreateStatusFull, res.Status())
		require.NotNil(t, res.TermReport)
		assert.Equal(t, ids, res.TermReport.Inserted)
		assert.Equal(t, ids, f.linkedIDs(t, res.Set.ID, domain.LanguageSpanish))
	})

	t.Run("no terms requested", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.setService.CreateSetWithTerms(ctx, "spanish", "Later", "Week 2", "", nil)
		require.NoError(t, err)
		assert.Equal(t, CreateStatusFull, res.Status())
		assert.Nil(t, res.TermReport)
	})

	t.Run("partial keeps the set", func(t *testing.T) {
		f := newFixture(t)
		ids := f.seedTerms(t, domain.LanguageSpanish, "correr")

		res, err := f.setService.CreateSetWithTerms(ctx, "spanish", "Sport", "Week 2", "", []int64{ids[0], 555})
		require.NoError(t, err)
		assert.Equal(t, CreateStatusPartial, res.Status())
		assert.Equal(t, []int64{555}, res.TermReport.UnknownTerms)

		stored, err := f.sets.GetByID(ctx, res.Set.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sport", stored.Name)
		assert.Empty(t, f.linkedIDs(t, res.Set.ID, domain.LanguageSpanish))
	})

	t.Run("link failure keeps the set and reports it", func(t *testing.T) {
		f := newFixture(t)
		linkErr := errors.New("too many SQL variables")
		svc, err := NewSetService(f.db, f.sets, f.linkages, failingAssociations{err: linkErr}, nil,
			WithClock(func() time.Time { return fixedNow }))
		require.NoError(t, err)

		res, err := svc.CreateSetWithTerms(ctx, "spanish", "Greetings", "Basics", "", []int64{1, 2, 3})
		require.NoError(t, err)
		require.NotNil(t, res.Set)
		assert.Equal(t, CreateStatusPartial, res.Status())
		assert.Nil(t, res.TermReport)
		assert.ErrorIs(t, res.LinkErr, linkErr)

		stored, err := f.sets.ListByLanguage(ctx, domain.LanguageSpanish)
		require.NoError(t, err)
		require.Len(t, stored, 1)
		assert.Equal(t, res.Set.ID, stored[0].ID)
	})

	t.Run("bad ids create nothing", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.setService.CreateSetWithTerms(ctx, "spanish", "Broken", "Week 2", "", []int64{0})
		assert.ErrorIs(t, err, domain.ErrInvalidID)

		sets, err := f.sets.ListAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, sets)
	})
}

func TestDeleteSet(t *testing.T) {
	ctx := context.Background()

	t.Run("no match deletes nothing", func(t *testing.T) {
		f := newFixture(t)
		f.seedSet(t, domain.LanguageSpanish, "Keep", "Week 1")

		res, err := f.setService.DeleteSet(ctx, "Ghost", "spanish")
		require.NoError(t, err)
		assert.Zero(t, res.Affected)

		sets, err := f.sets.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, sets, 1)
	})

	t.Run("single match cascades to linkages", func(t *testing.T) {
		f := newFixture(t)
		ids := f.seedTerms(t, domain.LanguageSpanish, "uno", "dos")
		doomed := f.seedSet(t, domain.LanguageSpanish, "Numbers", "Week 1")
		other := f.seedSet(t, domain.LanguageSpanish, "Other", "Week 1")
		_, err := f.associations.AddTerms(ctx, doomed.ID, ids)
		require.NoError(t, err)
		_, err = f.associations.AddTerms(ctx, other.ID, ids[:1])
		require.NoError(t, err)

		res, err := f.setService.DeleteSet(ctx, "Numbers", "spanish")
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Affected)
		assert.Equal(t, int64(2), res.UnlinkedTerms)

		_, err = f.sets.GetByID(ctx, doomed.ID)
		assert.ErrorIs(t, err, store.ErrSetNotFound)
		assert.Empty(t, f.linkedIDs(t, doomed.ID, domain.LanguageSpanish))
		assert.Equal(t, ids[:1], f.linkedIDs(t, other.ID, domain.LanguageSpanish))
	})

	t.Run("same name in another language is untouched", func(t *testing.T) {
		f := newFixture(t)
		f.seedSet(t, domain.LanguageSpanish, "Basics", "Week 1")
		jp := f.seedSet(t, domain.LanguageJapanese, "Basics", "Week 1")

		res, err := f.setService.DeleteSet(ctx, "Basics", "spanish")
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Affected)

		_, err = f.sets.GetByID(ctx, jp.ID)
		assert.NoError(t, err)
	})

	t.Run("ambiguous name deletes nothing", func(t *testing.T) {
		f := newFixture(t)
		f.seedSet(t, domain.LanguageSpanish, "Twice", "Week 1")
		f.seedSet(t, domain.LanguageSpanish, "Twice", "Week 2")

		_, err := f.setService.DeleteSet(ctx, "Twice", "spanish")
		assert.ErrorIs(t, err, store.ErrAmbiguousSet)

		sets, err := f.sets.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, sets, 2)
	})

	t.Run("validates input", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.setService.DeleteSet(ctx, "", "spanish")
		assert.ErrorIs(t, err, domain.ErrEmptyContent)
		_, err = f.setService.DeleteSet(ctx, "Basics", "german")
		assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
	})
}

func TestDeleteSetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes set and linkages", func(t *testing.T) {
		f := newFixture(t)
		ids := f.seedTerms(t, domain.LanguageJapanese, "水")
		set := f.seedSet(t, domain.LanguageJapanese, "Nature", "Unit 2")
		_, err := f.associations.AddTerms(ctx, set.ID, ids)
		require.NoError(t, err)

		res, err := f.setService.DeleteSetByID(ctx, set.ID)
		require.NoError(t, err)
		assert.Equal(t, &DeleteSetResult{Affected: 1, UnlinkedTerms: 1}, res)
	})

	t.Run("missing set", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.setService.DeleteSetByID(ctx, 404)
		assert.ErrorIs(t, err, store.ErrSetNotFound)
	})
}

func TestUpdateSetFolder(t *testing.T) {
	ctx := context.Background()

	t.Run("second identical update changes nothing", func(t *testing.T) {
		f := newFixture(t)
		set := f.seedSet(t, domain.LanguageSpanish, "Travel", "Week 1")

		res, err := f.setService.UpdateSetFolder(ctx, "Travel", "spanish", "Week 9")
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Affected)
		assert.Equal(t, MessageChangeSuccessful, res.Message())

		res, err = f.setService.UpdateSetFolder(ctx, "Travel", "spanish", "Week 9")
		require.NoError(t, err)
		assert.Zero(t, res.Affected)
		assert.Equal(t, MessageNoChangesMade, res.Message())

		stored, err := f.sets.GetByID(ctx, set.ID)
		require.NoError(t, err)
		assert.Equal(t, "Week 9", stored.Folder)
	})

	t.Run("stamps the modification date", func(t *testing.T) {
		f := newFixture(t)
		set := f.seedSet(t, domain.LanguageSpanish, "Dated", "Week 1")

		later, err := NewSetService(f.db, f.sets, f.linkages, f.associations, nil,
			WithClock(func() time.Time { return fixedNow.AddDate(0, 0, 3) }))
		require.NoError(t, err)

		_, err = later.UpdateSetFolder(ctx, "Dated", "spanish", "Week 2")
		require.NoError(t, err)

		stored, err := f.sets.GetByID(ctx, set.ID)
		require.NoError(t, err)
		assert.Equal(t, "2025-10-25", stored.DateCreated.String())
		assert.Equal(t, "2025-10-28", stored.DateModified.String())
	})

	t.Run("moves every set with the name", func(t *testing.T) {
		f := newFixture(t)
		f.seedSet(t, domain.LanguageSpanish, "Dup", "A")
		f.seedSet(t, domain.LanguageSpanish, "Dup", "B")

		res, err := f.setService.UpdateSetFolder(ctx, "Dup", "spanish", "B")
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.Affected)

		folders, err := f.setService.ListFolders(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"B"}, folders)
	})

	t.Run("rejects an empty folder", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.setService.UpdateSetFolder(ctx, "Travel", "spanish", "   ")
		assert.ErrorIs(t, err, domain.ErrEmptyContent)
	})
}

func TestListSets(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	es := f.seedSet(t, domain.LanguageSpanish, "Uno", "A")
	f.seedSet(t, domain.LanguageJapanese, "Ni", "A")

	sets, err := f.setService.ListSets(ctx, "SPANISH")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, es.ID, sets[0].ID)

	_, err = f.setService.ListSets(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnsupportedLanguage)
}

func TestDeleteSet_StoreFailureRollsBack(t *testing.T) {
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sets := &MockSetStore{}
	sets.On("FindIDsByName", mock.Anything, "Basics", domain.LanguageSpanish).Return([]int64{6}, nil)
	sets.On("DeleteByID", mock.Anything, int64(6)).Return(int64(0), errors.New("lock timeout"))
	links := &MockLinkageStore{}
	links.On("DeleteBySet", mock.Anything, int64(6)).Return(int64(3), nil)

	dbMock.ExpectBegin()
	dbMock.ExpectRollback()

	assoc, err := NewAssociationService(db, sets, &MockTermStore{}, links, nil)
	require.NoError(t, err)
	svc, err := NewSetService(db, sets, links, assoc, nil)
	require.NoError(t, err)

	_, err = svc.DeleteSet(context.Background(), "Basics", "spanish")
	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "delete_set", svcErr.Operation)
	assert.NoError(t, dbMock.ExpectationsWereMet())
	sets.AssertExpectations(t)
	links.AssertExpectations(t)
}

// failingAssociations fails every AddTerms call with err.
type failingAssociations struct {
	AssociationService
	err error
}

func (a failingAssociations) AddTerms(context.Context, int64, []int64) (*domain.AddTermsResult, error) {
	return nil, a.err
}
