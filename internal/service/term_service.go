package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/platform/logger"
	"github.com/yodaslang/yodas-api/internal/store"
)

// Upper bounds for a single read.
const (
	MaxPageSize    = 500
	MaxRandomCount = 500
)

// TermService exposes the term tables.
type TermService interface {
	ListAll(ctx context.Context, lang string) ([]domain.Term, error)
	ListPage(ctx context.Context, lang string, page, pageSize int) ([]domain.Term, error)
	Count(ctx context.Context, lang string) (int64, error)
	Random(ctx context.Context, lang string, n int) ([]domain.Term, error)
	// AddMany validates and inserts entries, returning the inserted count.
	AddMany(ctx context.Context, lang string, entries []domain.TermEntry) (int64, error)
	// RemoveByWord deletes every term spelled word, returning the count.
	RemoveByWord(ctx context.Context, lang, word string) (int64, error)
}

type termService struct {
	terms  store.TermStore
	logger *slog.Logger
}

var _ TermService = (*termService)(nil)

// NewTermService creates a TermService.
func NewTermService(terms store.TermStore, logger *slog.Logger) (TermService, error) {
	if terms == nil {
		return nil, domain.NewValidationError("terms", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &termService{
		terms:  terms,
		logger: logger.With(slog.String("component", "term_service")),
	}, nil
}

func (s *termService) ListAll(ctx context.Context, lang string) ([]domain.Term, error) {
	language, err := domain.ParseLanguage(lang)
	if err != nil {
		return nil, err
	}
	terms, err := s.terms.ListAll(ctx, language)
	if err != nil {
		return nil, NewServiceError("list_terms", "failed to list terms", err)
	}
	return terms, nil
}

func (s *termService) ListPage(ctx context.Context, lang string, page, pageSize int) ([]domain.Term, error) {
	language, err := domain.ParseLanguage(lang)
	if err != nil {
		return nil, err
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	terms, err := s.terms.ListPage(ctx, language, page, pageSize)
	if err != nil {
		return nil, NewServiceError("list_terms", "failed to list terms", err)
	}
	return terms, nil
}

func (s *termService) Count(ctx context.Context, lang string) (int64, error) {
	language, err := domain.ParseLanguage(lang)
	if err != nil {
		return 0, err
	}
	n, err := s.terms.Count(ctx, language)
	if err != nil {
		return 0, NewServiceError("count_terms", "failed to count terms", err)
	}
	return n, nil
}

func (s *termService) Random(ctx context.Context, lang string, n int) ([]domain.Term, error) {
	language, err := domain.ParseLanguage(lang)
	if err != nil {
		return nil, err
	}
	if n > MaxRandomCount {
		n = MaxRandomCount
	}
	terms, err := s.terms.Random(ctx, language, n)
	if err != nil {
		return nil, NewServiceError("random_terms", "failed to select random terms", err)
	}
	return terms, nil
}

func (s *termService) AddMany(ctx context.Context, lang string, entries []domain.TermEntry) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	language, err := domain.ParseLanguage(lang)
	if err != nil {
		return 0, err
	}

	cleaned := make([]domain.TermEntry, 0, len(entries))
	for _, e := range entries {
		e.Word = strings.TrimSpace(e.Word)
		e.Definition = strings.TrimSpace(e.Definition)
		if err := e.Validate(); err != nil {
			return 0, err
		}
		cleaned = append(cleaned, e)
	}

	n, err := s.terms.CreateMany(ctx, language, cleaned)
	if err != nil {
		return 0, NewServiceError("add_terms", "failed to insert terms", err)
	}

	log.Info("terms added", slog.String("language", string(language)), slog.Int64("count", n))
	return n, nil
}

func (s *termService) RemoveByWord(ctx context.Context, lang, word string) (int64, error) {
	language, err := domain.ParseLanguage(lang)
	if err != nil {
		return 0, err
	}
	word = strings.TrimSpace(word)
	if word == "" {
		return 0, domain.NewValidationError("word", "cannot be empty", domain.ErrEmptyContent)
	}

	n, err := s.terms.DeleteByWord(ctx, language, word)
	if err != nil {
		return 0, NewServiceError("remove_terms", "failed to delete terms", err)
	}
	return n, nil
}
