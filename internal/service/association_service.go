package service

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

// errConcurrentRemoval forces a rollback when fewer linkage rows were
// deleted than were verified a moment earlier.
var errConcurrentRemoval = errors.New("linkages removed concurrently")

// AssociationService manages the many-to-many relation between sets and terms.
type AssociationService interface {
	// AddTerms links termIDs to the set. Either every id is linked or none is.
	AddTerms(ctx context.Context, setID int64, termIDs []int64) (*domain.AddTermsResult, error)

	// RemoveTerms unlinks termIDs from the set. Either every id is unlinked or none is.
	RemoveTerms(ctx context.Context, setID int64, termIDs []int64) (*domain.RemoveTermsResult, error)

	// GetTermsForSet returns the set's terms from the table of lang in
	// insertion order. lang must be the set's language; a missing set has
	// no terms.
	GetTermsForSet(ctx context.Context, setID int64, lang string) ([]domain.LinkedTerm, error)
}

type associationService struct {
	db       store.TxBeginner
	sets     store.SetStore
	terms    store.TermStore
	linkages store.LinkageStore
	logger   *slog.Logger
}

var _ AssociationService = (*associationService)(nil)

// NewAssociationService creates an AssociationService. If logger is nil,
// a default logger will be used.
func NewAssociationService(
	db store.TxBeginner,
	sets store.SetStore,
	terms store.TermStore,
	linkages store.LinkageStore,
	logger *slog.Logger,
) (AssociationService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if sets == nil {
		return nil, domain.NewValidationError("sets", "cannot be nil", domain.ErrValidation)
	}
	if terms == nil {
		return nil, domain.NewValidationError("terms", "cannot be nil", domain.ErrValidation)
	}
	if linkages == nil {
		return nil, domain.NewValidationError("linkages", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &associationService{
		db:       db,
		sets:     sets,
		terms:    terms,
		linkages: linkages,
		logger:   logger.With(slog.String("component", "association_service")),
	}, nil
}

// AddTerms implements AssociationService.AddTerms
func (s *associationService) AddTerms(
	ctx context.Context,
	setID int64,
	termIDs []int64,
) (*domain.AddTermsResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateID("setId", setID); err != nil {
		return nil, err
	}
	ids, err := domain.NormalizeIDs("termIds", termIDs)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &domain.AddTermsResult{Success: true, Inserted: []int64{}}, nil
	}

	var result *domain.AddTermsResult
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		set, err := s.sets.WithTx(tx).GetByID(ctx, setID)
		if err != nil {
			return err
		}

		known, err := s.terms.WithTx(tx).ExistingIDs(ctx, set.Language, ids)
		if err != nil {
			return err
		}
		if unknown := domain.Difference(ids, known); len(unknown) > 0 {
			result = &domain.AddTermsResult{Success: false, UnknownTerms: unknown}
			return nil
		}

		linkages := s.linkages.WithTx(tx)
		linked, err := linkages.ExistingTermIDs(ctx, setID, ids)
		if err != nil {
			return err
		}
		if dups := domain.Intersection(ids, linked); len(dups) > 0 {
			result = &domain.AddTermsResult{Success: false, Duplicates: dups}
			return nil
		}

		if err := linkages.Insert(ctx, setID, ids); err != nil {
			return err
		}
		result = &domain.AddTermsResult{Success: true, Inserted: ids}
		return nil
	})

	if errors.Is(err, store.ErrDuplicate) {
		// Another request linked some of the terms between the check and
		// the insert. The transaction has been rolled back.
		return s.reportRacedDuplicates(ctx, setID, ids)
	}
	if err != nil {
		if errors.Is(err, store.ErrSetNotFound) {
			log.Debug("add terms to missing set", slog.Int64("set_id", setID))
		} else {
			log.Error("failed to add terms to set",
				slog.String("error", err.Error()),
				slog.Int64("set_id", setID),
				logger.IDs("term_ids", ids))
		}
		return nil, NewServiceError("add_terms", "failed to link terms", err)
	}

	if !result.Success {
		log.Info("terms not linked",
			slog.Int64("set_id", setID),
			logger.IDs("duplicates", result.Duplicates),
			logger.IDs("unknown_terms", result.UnknownTerms))
	} else {
		log.Info("terms linked", slog.Int64("set_id", setID), slog.Int("count", len(ids)))
	}
	return result, nil
}

func (s *associationService) reportRacedDuplicates(
	ctx context.Context,
	setID int64,
	ids []int64,
) (*domain.AddTermsResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	linked, err := s.linkages.ExistingTermIDs(ctx, setID, ids)
	if err != nil {
		return nil, NewServiceError("add_terms", "failed to recheck linked terms", err)
	}

	dups := domain.Intersection(ids, linked)
	if len(dups) == 0 {
		// The competing insert was itself rolled back. Nothing was linked
		// by this call either, so report the whole request.
		dups = ids
	}

	log.Warn("concurrent link detected",
		slog.Int64("set_id", setID),
		logger.IDs("duplicates", dups))
	return &domain.AddTermsResult{Success: false, Duplicates: dups}, nil
}

// RemoveTerms implements AssociationService.RemoveTerms
func (s *associationService) RemoveTerms(
	ctx context.Context,
	setID int64,
	termIDs []int64,
) (*domain.RemoveTermsResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := domain.ValidateID("setId", setID); err != nil {
		return nil, err
	}
	ids, err := domain.NormalizeIDs("termIds", termIDs)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &domain.RemoveTermsResult{Success: true, Deleted: []int64{}}, nil
	}

	var result *domain.RemoveTermsResult
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.sets.WithTx(tx).GetByID(ctx, setID); err != nil {
			return err
		}

		linkages := s.linkages.WithTx(tx)
		linked, err := linkages.ExistingTermIDs(ctx, setID, ids)
		if err != nil {
			return err
		}
		if missing := domain.Difference(ids, linked); len(missing) > 0 {
			result = &domain.RemoveTermsResult{Success: false, Missing: missing}
			return nil
		}

		n, err := linkages.Delete(ctx, setID, ids)
		if err != nil {
			return err
		}
		if n < int64(len(ids)) {
			return errConcurrentRemoval
		}
		result = &domain.RemoveTermsResult{Success: true, Deleted: ids}
		return nil
	})

	if errors.Is(err, errConcurrentRemoval) {
		linked, lookupErr := s.linkages.ExistingTermIDs(ctx, setID, ids)
		if lookupErr != nil {
			return nil, NewServiceError("remove_terms", "failed to recheck linked terms", lookupErr)
		}
		missing := domain.Difference(ids, linked)
		log.Warn("concurrent unlink detected",
			slog.Int64("set_id", setID),
			logger.IDs("missing", missing))
		return &domain.RemoveTermsResult{Success: false, Missing: missing}, nil
	}
	if err != nil {
		if !errors.Is(err, store.ErrSetNotFound) {
			log.Error("failed to remove terms from set",
				slog.String("error", err.Error()),
				slog.Int64("set_id", setID),
				logger.IDs("term_ids", ids))
		}
		return nil, NewServiceError("remove_terms", "failed to unlink terms", err)
	}

	if result.Success {
		log.Info("terms unlinked", slog.Int64("set_id", setID), slog.Int("count", len(ids)))
	}
	return result, nil
}

// GetTermsForSet implements AssociationService.GetTermsForSet
func (s *associationService) GetTermsForSet(
	ctx context.Context,
	setID int64,
	lang string,
) ([]domain.LinkedTerm, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	language, err := domain.ParseLanguage(lang)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateID("setId", setID); err != nil {
		return nil, err
	}

	set, err := s.sets.GetByID(ctx, setID)
	switch {
	case errors.Is(err, store.ErrSetNotFound):
		return []domain.LinkedTerm{}, nil
	case err != nil:
		if isContextError(err) {
			return nil, NewServiceError("get_terms_for_set", "request ended before the set was loaded", err)
		}
		log.Error("failed to load set for terms, returning none",
			slog.String("error", err.Error()),
			slog.Int64("set_id", setID))
		return []domain.LinkedTerm{}, nil
	case set.Language != language:
		// Linked ids point into the table of the set's own language.
		return nil, domain.NewValidationError("lang",
			fmt.Sprintf("does not match the language of set %d (%s)", setID, set.Language), domain.ErrValidation)
	}

	terms, err := s.linkages.TermsForSet(ctx, setID, language)
	if err != nil {
		if isContextError(err) {
			return nil, NewServiceError("get_terms_for_set", "request ended before terms were loaded", err)
		}
		log.Error("failed to load terms for set, returning none",
			slog.String("error", err.Error()),
			slog.Int64("set_id", setID),
			slog.String("language", string(language)))
		return []domain.LinkedTerm{}, nil
	}

	return terms, nil
}
