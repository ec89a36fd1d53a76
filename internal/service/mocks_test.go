package service

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"
	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/store"
)

// The mocks return themselves from WithTx so expectations set on them
// apply inside transactions too.

// MockSetStore mocks store.SetStore
type MockSetStore struct {
	mock.Mock
}

func (m *MockSetStore) Create(ctx context.Context, set *domain.Set) error {
	args := m.Called(ctx, set)
	return args.Error(0)
}

func (m *MockSetStore) GetByID(ctx context.Context, id int64) (*domain.Set, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Set), args.Error(1)
}

func (m *MockSetStore) ListByLanguage(ctx context.Context, lang domain.Language) ([]*domain.Set, error) {
	args := m.Called(ctx, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Set), args.Error(1)
}

func (m *MockSetStore) ListAll(ctx context.Context) ([]*domain.Set, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Set), args.Error(1)
}

func (m *MockSetStore) ListFolders(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSetStore) FindIDsByName(ctx context.Context, name string, lang domain.Language) ([]int64, error) {
	args := m.Called(ctx, name, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockSetStore) UpdateFolder(
	ctx context.Context,
	name string,
	lang domain.Language,
	folder string,
	modified domain.Date,
) (int64, error) {
	args := m.Called(ctx, name, lang, folder, modified)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSetStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSetStore) WithTx(tx *sql.Tx) store.SetStore {
	return m
}

// MockTermStore mocks store.TermStore
type MockTermStore struct {
	mock.Mock
}

func (m *MockTermStore) ListAll(ctx context.Context, lang domain.Language) ([]domain.Term, error) {
	args := m.Called(ctx, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Term), args.Error(1)
}

func (m *MockTermStore) ListPage(ctx context.Context, lang domain.Language, page, pageSize int) ([]domain.Term, error) {
	args := m.Called(ctx, lang, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Term), args.Error(1)
}

func (m *MockTermStore) Count(ctx context.Context, lang domain.Language) (int64, error) {
	args := m.Called(ctx, lang)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTermStore) Random(ctx context.Context, lang domain.Language, n int) ([]domain.Term, error) {
	args := m.Called(ctx, lang, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Term), args.Error(1)
}

func (m *MockTermStore) Create(ctx context.Context, lang domain.Language, entry domain.TermEntry) (int64, error) {
	args := m.Called(ctx, lang, entry)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTermStore) CreateMany(ctx context.Context, lang domain.Language, entries []domain.TermEntry) (int64, error) {
	args := m.Called(ctx, lang, entries)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTermStore) DeleteByWord(ctx context.Context, lang domain.Language, word string) (int64, error) {
	args := m.Called(ctx, lang, word)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTermStore) ExistingIDs(ctx context.Context, lang domain.Language, ids []int64) ([]int64, error) {
	args := m.Called(ctx, lang, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockTermStore) WithTx(tx *sql.Tx) store.TermStore {
	return m
}

// MockLinkageStore mocks store.LinkageStore
type MockLinkageStore struct {
	mock.Mock
}

func (m *MockLinkageStore) ExistingTermIDs(ctx context.Context, setID int64, termIDs []int64) ([]int64, error) {
	args := m.Called(ctx, setID, termIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockLinkageStore) Insert(ctx context.Context, setID int64, termIDs []int64) error {
	args := m.Called(ctx, setID, termIDs)
	return args.Error(0)
}

func (m *MockLinkageStore) Delete(ctx context.Context, setID int64, termIDs []int64) (int64, error) {
	args := m.Called(ctx, setID, termIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLinkageStore) DeleteBySet(ctx context.Context, setID int64) (int64, error) {
	args := m.Called(ctx, setID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLinkageStore) TermsForSet(ctx context.Context, setID int64, lang domain.Language) ([]domain.LinkedTerm, error) {
	args := m.Called(ctx, setID, lang)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LinkedTerm), args.Error(1)
}

func (m *MockLinkageStore) DeleteOrphans(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLinkageStore) WithTx(tx *sql.Tx) store.LinkageStore {
	return m
}

// MockUserStore mocks store.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
