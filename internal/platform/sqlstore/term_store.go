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

// Paging defaults applied when a caller passes a non-positive value.
const (
	DefaultPageSize    = 10
	DefaultRandomCount = 5
)

// TermStore implements store.TermStore over the per-language term tables.
type TermStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewTermStore creates a TermStore. If logger is nil, a default logger
// will be used.
func NewTermStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *TermStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TermStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "term_store")),
	}
}

var _ store.TermStore = (*TermStore)(nil)

// WithTx implements store.TermStore.WithTx
func (s *TermStore) WithTx(tx *sql.Tx) store.TermStore {
	return &TermStore{db: tx, dialect: s.dialect, logger: s.logger}
}

func (s *TermStore) table(log *slog.Logger, lang domain.Language) (string, error) {
	table, err := lang.TermTable()
	if err != nil {
		log.Warn("term table lookup failed", slog.String("language", string(lang)))
		return "", err
	}
	return table, nil
}

// ListAll implements store.TermStore.ListAll
func (s *TermStore) ListAll(ctx context.Context, lang domain.Language) ([]domain.Term, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	table, err := s.table(log, lang)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT id, word, definition FROM %s ORDER BY id", table)
	terms, err := s.queryTerms(ctx, query)
	if err != nil {
		log.Error("failed to list terms",
			slog.String("error", err.Error()),
			slog.String("table", table))
		return nil, storeErr("term", "list", "failed to list terms", err)
	}

	return terms, nil
}

// ListPage implements store.TermStore.ListPage
func (s *TermStore) ListPage(
	ctx context.Context,
	lang domain.Language,
	page, pageSize int,
) ([]domain.Term, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	table, err := s.table(log, lang)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	offset := (page - 1) * pageSize

	query := fmt.Sprintf("SELECT id, word, definition FROM %s ORDER BY id LIMIT ? OFFSET ?", table)
	terms, err := s.queryTerms(ctx, query, pageSize, offset)
	if err != nil {
		log.Error("failed to list term page",
			slog.String("error", err.Error()),
			slog.String("table", table),
			slog.Int("page", page),
			slog.Int("page_size", pageSize))
		return nil, storeErr("term", "list_page", "failed to list terms", err)
	}

	return terms, nil
}

// Count implements store.TermStore.Count
func (s *TermStore) Count(ctx context.Context, lang domain.Language) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	table, err := s.table(log, lang)
	if err != nil {
		return 0, err
	}

	var count int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		log.Error("failed to count terms",
			slog.String("error", err.Error()),
			slog.String("table", table))
		return 0, storeErr("term", "count", "failed to count terms", err)
	}

	return count, nil
}

// Random implements store.TermStore.Random
func (s *TermStore) Random(ctx context.Context, lang domain.Language, n int) ([]domain.Term, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	table, err := s.table(log, lang)
	if err != nil {
		return nil, err
	}

	if n < 1 {
		n = DefaultRandomCount
	}

	query := fmt.Sprintf("SELECT id, word, definition FROM %s ORDER BY %s LIMIT ?", table, s.dialect.RandomFunc())
	terms, err := s.queryTerms(ctx, query, n)
	if err != nil {
		log.Error("failed to select random terms",
			slog.String("error", err.Error()),
			slog.String("table", table),
			slog.Int("count", n))
		return nil, storeErr("term", "random", "failed to select random terms", err)
	}

	return terms, nil
}

// Create implements store.TermStore.Create
func (s *TermStore) Create(ctx context.Context, lang domain.Language, entry domain.TermEntry) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	table, err := s.table(log, lang)
	if err != nil {
		return 0, err
	}
	if err := entry.Validate(); err != nil {
		return 0, err
	}

	query := fmt.Sprintf("INSERT INTO %s (word, definition) VALUES (?, ?)", table)
	id, err := insertReturningID(ctx, s.db, s.dialect, query, entry.Word, entry.Definition)
	if err != nil {
		log.Error("failed to create term",
			slog.String("error", err.Error()),
			slog.String("table", table),
			slog.String("word", entry.Word))
		return 0, storeErr("term", "create", "failed to create term", err)
	}

	log.Debug("term created", slog.String("table", table), slog.Int64("term_id", id))
	return id, nil
}

// CreateMany implements store.TermStore.CreateMany
func (s *TermStore) CreateMany(
	ctx context.Context,
	lang domain.Language,
	entries []domain.TermEntry,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	table, err := s.table(log, lang)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return 0, err
		}
	}

	batches := chunk(entries, MaxBatchSize)
	var n int64
	err = inBatchTx(ctx, s.db, len(batches), func(ctx context.Context, db store.DBTX) error {
		for _, batch := range batches {
			rows := make([]string, len(batch))
			args := make([]any, 0, 2*len(batch))
			for i, e := range batch {
				rows[i] = "(?, ?)"
				args = append(args, e.Word, e.Definition)
			}

			query := fmt.Sprintf("INSERT INTO %s (word, definition) VALUES %s", table, strings.Join(rows, ", "))
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
		log.Error("failed to insert terms",
			slog.String("error", err.Error()),
			slog.String("table", table),
			slog.Int("count", len(entries)))
		return 0, storeErr("term", "create_many", "failed to insert terms", err)
	}

	log.Info("terms inserted", slog.String("table", table), slog.Int64("count", n))
	return n, nil
}

// DeleteByWord implements store.TermStore.DeleteByWord
func (s *TermStore) DeleteByWord(ctx context.Context, lang domain.Language, word string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	table, err := s.table(log, lang)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE word = ?", table)
	res, err := s.db.ExecContext(ctx, s.dialect.Rebind(query), word)
	if err != nil {
		log.Error("failed to delete terms",
			slog.String("error", err.Error()),
			slog.String("table", table),
			slog.String("word", word))
		return 0, storeErr("term", "delete", "failed to delete terms", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, storeErr("term", "delete", "failed to read affected rows", err)
	}
	if n == 0 {
		log.Warn("no terms matched word",
			slog.String("table", table),
			slog.String("word", word))
	}

	return n, nil
}

// ExistingIDs implements store.TermStore.ExistingIDs
func (s *TermStore) ExistingIDs(ctx context.Context, lang domain.Language, ids []int64) ([]int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	table, err := s.table(log, lang)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	var found []int64
	for _, batch := range chunk(ids, MaxBatchSize) {
		query := fmt.Sprintf("SELECT id FROM %s WHERE id IN (%s)", table, placeholders(len(batch)))
		var part []int64
		part, err = queryIDs(ctx, s.db, s.dialect.Rebind(query), int64Args(batch)...)
		if err != nil {
			break
		}
		found = append(found, part...)
	}
	if err != nil {
		log.Error("failed to look up term ids",
			slog.String("error", err.Error()),
			slog.String("table", table),
			logger.IDs("term_ids", ids))
		return nil, storeErr("term", "lookup", "failed to look up terms", err)
	}

	return found, nil
}

func (s *TermStore) queryTerms(ctx context.Context, query string, args ...any) ([]domain.Term, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	terms := make([]domain.Term, 0)
	for rows.Next() {
		var t domain.Term
		if err := rows.Scan(&t.ID, &t.Word, &t.Definition); err != nil {
			return nil, err
		}
		terms = append(terms, t)
	}
	return terms, rows.Err()
}

// queryIDs runs a single-column id query.
func queryIDs(ctx context.Context, db store.DBTX, query string, args ...any) ([]int64, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
