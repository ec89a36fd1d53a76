package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/platform/logger"
	"github.com/yodaslang/yodas-api/internal/store"
)

// UserStore implements store.UserStore over the users table.
type UserStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

// NewUserStore creates a UserStore. If logger is nil, a default logger
// will be used.
func NewUserStore(db store.DBTX, dialect Dialect, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserStore{
		db:      db,
		dialect: dialect,
		logger:  logger.With(slog.String("component", "user_store")),
	}
}

var _ store.UserStore = (*UserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{db: tx, dialect: s.dialect, logger: s.logger}
}

// Create implements store.UserStore.Create
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if user.HashedPassword == "" {
		return domain.ErrEmptyHashedPassword
	}
	if user.Username == "" {
		return domain.ErrEmptyUsername
	}

	id, err := insertReturningID(ctx, s.db, s.dialect,
		"INSERT INTO users (username, hashed_password, created_at) VALUES (?, ?, ?)",
		user.Username, user.HashedPassword, user.CreatedAt.UTC())
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("username already exists", slog.String("username", user.Username))
			return fmt.Errorf("%w: %s", store.ErrUsernameExists, user.Username)
		}
		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("username", user.Username))
		return storeErr("user", "create", "failed to create user", err)
	}

	user.ID = id
	user.Password = ""
	log.Info("user created", slog.Int64("user_id", id), slog.String("username", user.Username))
	return nil
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var user domain.User
	err := s.db.QueryRowContext(ctx,
		s.dialect.Rebind("SELECT id, username, hashed_password, created_at FROM users WHERE username = ?"),
		username,
	).Scan(&user.ID, &user.Username, &user.HashedPassword, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("username", username))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, storeErr("user", "get", "failed to get user", err)
	}

	return &user, nil
}
