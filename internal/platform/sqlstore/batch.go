package sqlstore

import (
	"context"
	"database/sql"

	"github.com/yodaslang/yodas-api/internal/store"
)

// MaxBatchSize bounds the rows or ids bound into one statement. Inserts
// bind two values per row, which keeps every statement under 999
// variables, the lowest limit among the supported databases.
const MaxBatchSize = 400

// chunk splits items into consecutive slices of at most size elements.
func chunk[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	out := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := min(start+size, len(items))
		out = append(out, items[start:end])
	}
	return out
}

// inBatchTx runs fn against db. When the work spans several statements and
// db is not already a transaction, fn runs inside a new one so the batch
// is applied all or nothing.
func inBatchTx(ctx context.Context, db store.DBTX, batches int, fn func(ctx context.Context, db store.DBTX) error) error {
	beginner, ok := db.(store.TxBeginner)
	if batches <= 1 || !ok {
		return fn(ctx, db)
	}
	return store.RunInTransaction(ctx, beginner, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, tx)
	})
}
