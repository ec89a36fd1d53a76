package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/platform/logger"
	"github.com/yodaslang/yodas-api/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// AuthService checks credentials and provisions users.
type AuthService interface {
	// Authenticate returns the user when password matches. Unknown users
	// and wrong passwords both yield domain.ErrUnauthorized.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// CreateUser hashes password and stores a new user.
	CreateUser(ctx context.Context, username, password string) (*domain.User, error)
}

type authService struct {
	users      store.UserStore
	bcryptCost int
	// dummyHash is compared against when the user does not exist so both
	// failure paths take similar time.
	dummyHash []byte
	logger    *slog.Logger
}

var _ AuthService = (*authService)(nil)

// NewAuthService creates an AuthService hashing with the given bcrypt cost.
func NewAuthService(users store.UserStore, bcryptCost int, logger *slog.Logger) (AuthService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		return nil, domain.NewValidationError("bcryptCost", "is out of range", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("placeholder-password"), bcryptCost)
	if err != nil {
		return nil, err
	}

	return &authService{
		users:      users,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
		logger:     logger.With(slog.String("component", "auth_service")),
	}, nil
}

// Authenticate implements AuthService.Authenticate
func (s *authService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
			log.Info("login rejected", slog.String("reason", "unknown user"))
			return nil, domain.ErrUnauthorized
		}
		return nil, NewServiceError("authenticate", "failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		log.Info("login rejected",
			slog.String("reason", "password mismatch"),
			slog.Int64("user_id", user.ID))
		return nil, domain.ErrUnauthorized
	}

	return user, nil
}

// CreateUser implements AuthService.CreateUser
func (s *authService) CreateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := domain.NewUser(username, password)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if err != nil {
		return nil, NewServiceError("create_user", "failed to hash password", err)
	}
	user.HashedPassword = string(hash)
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		return nil, NewServiceError("create_user", "failed to store user", err)
	}
	return user, nil
}
