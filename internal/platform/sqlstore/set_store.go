package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/platform/logger"
	"github.com/yodaslang/yodas-api/internal/store"
)

const setColumns = "id, langOfSet, setName, setFolder, description, dateCreated, dateModified"

// SetStore implements store.SetStore over the settable table.
type SetStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewSetStore creates a SetStore. If logger is nil, a default logger will
// be used.
func NewSetStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *SetStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SetStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "set_store")),
	}
}

var _ store.SetStore = (*SetStore)(nil)

// WithTx implements store.SetStore.WithTx
func (s *SetStore) WithTx(tx *sql.Tx) store.SetStore {
	return &SetStore{db: tx, dialect: s.dialect, logger: s.logger}
}

// Create implements store.SetStore.Create
func (s *SetStore) Create(ctx context.Context, set *domain.Set) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := set.Validate(); err != nil {
		log.Warn("set validation failed during create",
			slog.String("error", err.Error()),
			slog.String("set_name", set.Name))
		return err
	}

	query := `INSERT INTO settable (langOfSet, setName, setFolder, description, dateCreated, dateModified)
		VALUES (?, ?, ?, ?, ?, ?)`
	id, err := insertReturningID(ctx, s.db, s.dialect, query,
		string(set.Language),
		set.Name,
		set.Folder,
		set.Description,
		set.DateCreated,
		set.DateModified,
	)
	if err != nil {
		log.Error("failed to create set",
			slog.String("error", err.Error()),
			slog.String("set_name", set.Name),
			slog.String("language", string(set.Language)))
		return storeErr("set", "create", "failed to create set", err)
	}

	set.ID = id
	log.Info("set created",
		slog.Int64("set_id", id),
		slog.String("set_name", set.Name),
		slog.String("language", string(set.Language)))
	return nil
}

// GetByID implements store.SetStore.GetByID
func (s *SetStore) GetByID(ctx context.Context, id int64) (*domain.Set, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	row := s.db.QueryRowContext(ctx, s.dialect.Rebind("SELECT "+setColumns+" FROM settable WHERE id = ?"), id)
	set, err := scanSet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("set not found", slog.Int64("set_id", id))
			return nil, store.ErrSetNotFound
		}
		log.Error("failed to get set by ID",
			slog.String("error", err.Error()),
			slog.Int64("set_id", id))
		return nil, storeErr("set", "get", "failed to get set", err)
	}

	return set, nil
}

// ListByLanguage implements store.SetStore.ListByLanguage
func (s *SetStore) ListByLanguage(ctx context.Context, lang domain.Language) ([]*domain.Set, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sets, err := s.querySets(ctx, "SELECT "+setColumns+" FROM settable WHERE langOfSet = ? ORDER BY id", string(lang))
	if err != nil {
		log.Error("failed to list sets by language",
			slog.String("error", err.Error()),
			slog.String("language", string(lang)))
		return nil, storeErr("set", "list", "failed to list sets", err)
	}
	return sets, nil
}

// ListAll implements store.SetStore.ListAll
func (s *SetStore) ListAll(ctx context.Context) ([]*domain.Set, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sets, err := s.querySets(ctx, "SELECT "+setColumns+" FROM settable ORDER BY id")
	if err != nil {
		log.Error("failed to list sets", slog.String("error", err.Error()))
		return nil, storeErr("set", "list", "failed to list sets", err)
	}
	return sets, nil
}

// ListFolders implements store.SetStore.ListFolders
func (s *SetStore) ListFolders(ctx context.Context) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT setFolder FROM settable ORDER BY setFolder")
	if err != nil {
		log.Error("failed to list folders", slog.String("error", err.Error()))
		return nil, storeErr("set", "list_folders", "failed to list folders", err)
	}
	defer func() { _ = rows.Close() }()

	folders := make([]string, 0)
	for rows.Next() {
		var folder string
		if err := rows.Scan(&folder); err != nil {
			return nil, storeErr("set", "list_folders", "failed to scan folder", err)
		}
		folders = append(folders, folder)
	}
	if err := rows.Err(); err != nil {
		log.Error("failed to iterate folders", slog.String("error", err.Error()))
		return nil, storeErr("set", "list_folders", "failed to list folders", err)
	}

	return folders, nil
}

// FindIDsByName implements store.SetStore.FindIDsByName
func (s *SetStore) FindIDsByName(ctx context.Context, name string, lang domain.Language) ([]int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.dialect.Rebind("SELECT id FROM settable WHERE setName = ? AND langOfSet = ? ORDER BY id")
	ids, err := queryIDs(ctx, s.db, query, name, string(lang))
	if err != nil {
		log.Error("failed to resolve set name",
			slog.String("error", err.Error()),
			slog.String("set_name", name),
			slog.String("language", string(lang)))
		return nil, storeErr("set", "find", "failed to resolve set name", err)
	}
	return ids, nil
}

// UpdateFolder implements store.SetStore.UpdateFolder
func (s *SetStore) UpdateFolder(
	ctx context.Context,
	name string,
	lang domain.Language,
	folder string,
	modified domain.Date,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := s.dialect.Rebind(`UPDATE settable SET setFolder = ?, dateModified = ?
		WHERE setName = ? AND langOfSet = ? AND setFolder <> ?`)
	res, err := s.db.ExecContext(ctx, query, folder, modified, name, string(lang), folder)
	if err != nil {
		log.Error("failed to update set folder",
			slog.String("error", err.Error()),
			slog.String("set_name", name),
			slog.String("language", string(lang)),
			slog.String("folder", folder))
		return 0, storeErr("set", "update_folder", "failed to update folder", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, storeErr("set", "update_folder", "failed to read affected rows", err)
	}

	log.Debug("set folder updated",
		slog.String("set_name", name),
		slog.String("folder", folder),
		slog.Int64("affected", n))
	return n, nil
}

// DeleteByID implements store.SetStore.DeleteByID
func (s *SetStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.db.ExecContext(ctx, s.dialect.Rebind("DELETE FROM settable WHERE id = ?"), id)
	if err != nil {
		log.Error("failed to delete set",
			slog.String("error", err.Error()),
			slog.Int64("set_id", id))
		return 0, storeErr("set", "delete", "failed to delete set", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, storeErr("set", "delete", "failed to read affected rows", err)
	}
	return n, nil
}

func (s *SetStore) querySets(ctx context.Context, query string, args ...any) ([]*domain.Set, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	sets := make([]*domain.Set, 0)
	for rows.Next() {
		set, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSet(row rowScanner) (*domain.Set, error) {
	var set domain.Set
	var lang string
	err := row.Scan(
		&set.ID,
		&lang,
		&set.Name,
		&set.Folder,
		&set.Description,
		&set.DateCreated,
		&set.DateModified,
	)
	if err != nil {
		return nil, err
	}
	set.Language = domain.Language(lang)
	return &set, nil
}
