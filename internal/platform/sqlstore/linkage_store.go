package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/platform/logger"
	"github.com/yodaslang/yodas-api/internal/store"
)

// LinkageStore implements store.LinkageStore over setlinkagetable.
type LinkageStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewLinkageStore creates a LinkageStore. If logger is nil, a default
// logger will be used.
func NewLinkageStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *LinkageStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &LinkageStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "linkage_store")),
	}
}

var _ store.LinkageStore = (*LinkageStore)(nil)

// WithTx implements store.LinkageStore.WithTx
func (s *LinkageStore) WithTx(tx *sql.Tx) store.LinkageStore {
	return &LinkageStore{db: tx, dialect: s.dialect, logger: s.logger}
}

// ExistingTermIDs implements store.LinkageStore.ExistingTermIDs
func (s *LinkageStore) ExistingTermIDs(ctx context.Context, setID int64, termIDs []int64) ([]int64, error) {
	if len(termIDs) == 0 {
		return nil, nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	var ids []int64
	var err error
	for _, batch := range chunk(termIDs, MaxBatchSize) {
		query := fmt.Sprintf(
			"SELECT word_id FROM setlinkagetable WHERE set_id = ? AND word_id IN (%s)",
			placeholders(len(batch)),
		)
		args := append([]any{setID}, int64Args(batch)...)

		var part []int64
		part, err = queryIDs(ctx, s.db, s.dialect.Rebind(query), args...)
		if err != nil {
			break
		}
		ids = append(ids, part...)
	}
	if err != nil {
		log.Error("failed to look up linked terms",
			slog.String("error", err.Error()),
			slog.Int64("set_id", setID),
			logger.IDs("term_ids", termIDs))
		return nil, storeErr("linkage", "lookup", "failed to look up linked terms", err)
	}
	return ids, nil
}

// Insert implements store.LinkageStore.Insert
func (s *LinkageStore) Insert(ctx context.Context, setID int64, termIDs []int64) error {
	if len(termIDs) == 0 {
		return nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	batches := chunk(termIDs, MaxBatchSize)
	err := inBatchTx(ctx, s.db, len(batches), func(ctx context.Context, db store.DBTX) error {
		for _, batch := range batches {
			rows := make([]string, len(batch))
			args := make([]any, 0, 2*len(batch))
			for i, id := range batch {
				rows[i] = "(?, ?)"
				args = append(args, id, setID)
			}

			query := "INSERT INTO setlinkagetable (word_id, set_id) VALUES " + strings.Join(rows, ", ")
			if _, err := db.ExecContext(ctx, s.dialect.Rebind(query), args...); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("linkage insert hit an existing pair",
				slog.Int64("set_id", setID),
				logger.IDs("term_ids", termIDs))
		} else {
			log.Error("failed to insert linkages",
				slog.String("error", err.Error()),
				slog.Int64("set_id", setID),
				logger.IDs("term_ids", termIDs))
		}
		return storeErr("linkage", "insert", "failed to link terms", err)
	}

	log.Debug("terms linked", slog.Int64("set_id", setID), slog.Int("count", len(termIDs)))
	return nil
}

// Delete implements store.LinkageStore.Delete
func (s *LinkageStore) Delete(ctx context.Context, setID int64, termIDs []int64) (int64, error) {
	if len(termIDs) == 0 {
		return 0, nil
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	batches := chunk(termIDs, MaxBatchSize)
	var n int64
	err := inBatchTx(ctx, s.db, len(batches), func(ctx context.Context, db store.DBTX) error {
		for _, batch := range batches {
			query := fmt.Sprintf(
				"DELETE FROM setlinkagetable WHERE set_id = ? AND word_id IN (%s)",
				placeholders(len(batch)),
			)
			args := append([]any{setID}, int64Args(batch)...)

			res, err := db.ExecContext(ctx, s.dialect.Rebind(query), args...)
			if err != nil {
				return err
			}
			affected, err := res.RowsAffected()
			if err != nil {
				return err
			}
			n += affected
		}
		return nil
	})
	if err != nil {
		log.Error("failed to delete linkages",
			slog.String("error", err.Error()),
			slog.Int64("set_id", setID),
			logger.IDs("term_ids", termIDs))
		return 0, storeErr("linkage", "delete", "failed to unlink terms", err)
	}
	return n, nil
}

// DeleteBySet implements store.LinkageStore.DeleteBySet
func (s *LinkageStore) DeleteBySet(ctx context.Context, setID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	n, err := s.execAffected(ctx, "DELETE FROM setlinkagetable WHERE set_id = ?", setID)
	if err != nil {
		log.Error("failed to delete linkages of set",
			slog.String("error", err.Error()),
			slog.Int64("set_id", setID))
		return 0, storeErr("linkage", "delete", "failed to unlink set", err)
	}
	return n, nil
}

// TermsForSet implements store.LinkageStore.TermsForSet
func (s *LinkageStore) TermsForSet(
	ctx context.Context,
	setID int64,
	lang domain.Language,
) ([]domain.LinkedTerm, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	table, err := lang.TermTable()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT t.id, t.word, t.definition, l.id
		FROM setlinkagetable l
		JOIN %s t ON t.id = l.word_id
		WHERE l.set_id = ?
		ORDER BY l.id`, table)

	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(query), setID)
	if err != nil {
		log.Error("failed to load terms for set",
			slog.String("error", err.Error()),
			slog.Int64("set_id", setID),
			slog.String("table", table))
		return nil, storeErr("linkage", "terms_for_set", "failed to load terms", err)
	}
	defer func() { _ = rows.Close() }()

	terms := make([]domain.LinkedTerm, 0)
	for rows.Next() {
		var lt domain.LinkedTerm
		if err := rows.Scan(&lt.ID, &lt.Word, &lt.Definition, &lt.LinkageID); err != nil {
			return nil, storeErr("linkage", "terms_for_set", "failed to scan term", err)
		}
		terms = append(terms, lt)
	}
	if err := rows.Err(); err != nil {
		log.Error("failed to iterate terms for set",
			slog.String("error", err.Error()),
			slog.Int64("set_id", setID))
		return nil, storeErr("linkage", "terms_for_set", "failed to load terms", err)
	}

	return terms, nil
}

// DeleteOrphans implements store.LinkageStore.DeleteOrphans
func (s *LinkageStore) DeleteOrphans(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	n, err := s.execAffected(ctx, `DELETE FROM setlinkagetable
		WHERE NOT EXISTS (SELECT 1 FROM settable s WHERE s.id = setlinkagetable.set_id)`)
	if err != nil {
		log.Error("failed to delete orphaned linkages", slog.String("error", err.Error()))
		return 0, storeErr("linkage", "delete_orphans", "failed to delete orphaned linkages", err)
	}

	if n > 0 {
		log.Info("orphaned linkages removed", slog.Int64("count", n))
	}
	return n, nil
}

func (s *LinkageStore) execAffected(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
