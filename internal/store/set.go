package store

import (
	"context"
	"database/sql"

	"github.com/yodaslang/yodas-api/internal/domain"
)

// SetStore defines persistence for set metadata.
type SetStore interface {
	// Create inserts the set and stores the generated id on it.
	Create(ctx context.Context, set *domain.Set) error

	// GetByID retrieves a set by id.
	// Returns ErrSetNotFound if the set does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Set, error)

	// ListByLanguage returns the sets of one language ordered by id.
	ListByLanguage(ctx context.Context, lang domain.Language) ([]*domain.Set, error)

	// ListAll returns every set ordered by id.
	ListAll(ctx context.Context) ([]*domain.Set, error)

	// ListFolders returns the distinct folder names across all languages.
	ListFolders(ctx context.Context) ([]string, error)

	// FindIDsByName returns the ids of all sets with the given name and
	// language. Names are not unique, so more than one id may come back.
	FindIDsByName(ctx context.Context, name string, lang domain.Language) ([]int64, error)

	// UpdateFolder moves every set matching name and language into folder
	// and stamps modified. Rows already in folder are left untouched, so
	// the returned count is the number of sets that actually changed.
	UpdateFolder(
		ctx context.Context,
		name string,
		lang domain.Language,
		folder string,
		modified domain.Date,
	) (int64, error)

	// DeleteByID removes a set row and returns the number of rows removed.
	DeleteByID(ctx context.Context, id int64) (int64, error)

	// WithTx returns a new SetStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SetStore
}
