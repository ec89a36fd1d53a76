package store

import (
	"context"
	"database/sql"

	"github.com/yodaslang/yodas-api/internal/domain"
)

// LinkageStore defines persistence for the association rows between sets
// and terms. A (set, term) pair is unique; inserting an existing pair
// fails with ErrDuplicate.
type LinkageStore interface {
	// ExistingTermIDs returns which of termIDs are already linked to setID.
	ExistingTermIDs(ctx context.Context, setID int64, termIDs []int64) ([]int64, error)

	// Insert links every term id to the set with a single statement.
	Insert(ctx context.Context, setID int64, termIDs []int64) error

	// Delete unlinks the given term ids from the set and returns the number
	// of rows removed.
	Delete(ctx context.Context, setID int64, termIDs []int64) (int64, error)

	// DeleteBySet removes every linkage row of the set.
	DeleteBySet(ctx context.Context, setID int64) (int64, error)

	// TermsForSet joins the set's linkage rows with the term table of lang,
	// in linkage insertion order.
	TermsForSet(ctx context.Context, setID int64, lang domain.Language) ([]domain.LinkedTerm, error)

	// DeleteOrphans removes linkage rows whose set no longer exists.
	DeleteOrphans(ctx context.Context) (int64, error)

	// WithTx returns a new LinkageStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) LinkageStore
}
