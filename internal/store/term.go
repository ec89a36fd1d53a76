package store

import (
	"context"
	"database/sql"

	"github.com/yodaslang/yodas-api/internal/domain"
)

// TermStore defines persistence for the per-language term tables.
// Every method selects its table from lang; an unsupported language is
// rejected with domain.ErrUnsupportedLanguage before any statement runs.
type TermStore interface {
	// ListAll returns every term of the language ordered by id.
	ListAll(ctx context.Context, lang domain.Language) ([]domain.Term, error)

	// ListPage returns one page of terms ordered by id. Pages start at 1.
	ListPage(ctx context.Context, lang domain.Language, page, pageSize int) ([]domain.Term, error)

	// Count returns the number of terms of the language.
	Count(ctx context.Context, lang domain.Language) (int64, error)

	// Random returns up to n terms in random order.
	Random(ctx context.Context, lang domain.Language, n int) ([]domain.Term, error)

	// Create inserts a single term and returns its id.
	Create(ctx context.Context, lang domain.Language, entry domain.TermEntry) (int64, error)

	// CreateMany inserts all entries with one statement and returns the
	// number of rows inserted.
	CreateMany(ctx context.Context, lang domain.Language, entries []domain.TermEntry) (int64, error)

	// DeleteByWord removes every term with the given word and returns the
	// number of rows removed.
	DeleteByWord(ctx context.Context, lang domain.Language, word string) (int64, error)

	// ExistingIDs returns the subset of ids present in the language table.
	ExistingIDs(ctx context.Context, lang domain.Language, ids []int64) ([]int64, error)

	// WithTx returns a new TermStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TermStore
}
