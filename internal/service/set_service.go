package service

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/platform/logger"
	"github.com/yodaslang/yodas-api/internal/store"
)

// Folder update messages returned to clients.
const (
	MessageChangeSuccessful = "Change Successful"
	MessageNoChangesMade    = "No Changes Made"
)

// CreateStatus tells whether a set was created together with all of its
// requested terms.
type CreateStatus string

// Create statuses.
const (
	CreateStatusFull    CreateStatus = "full"
	CreateStatusPartial CreateStatus = "partial"
)

// CreateSetWithTermsResult is the outcome of creating a set and linking
// terms to it. The set exists whenever the result is returned.
type CreateSetWithTermsResult struct {
	Set *domain.Set `json:"set"`
	// TermReport is nil when no terms were requested or linking failed.
	TermReport *domain.AddTermsResult `json:"termReport,omitempty"`
	// LinkErr is set when linking failed after the set was committed.
	// No terms are linked in that case.
	LinkErr error `json:"-"`
}

// Status is partial when some requested terms were not linked.
func (r *CreateSetWithTermsResult) Status() CreateStatus {
	if r.LinkErr != nil {
		return CreateStatusPartial
	}
	if r.TermReport != nil && !r.TermReport.Success {
		return CreateStatusPartial
	}
	return CreateStatusFull
}

// DeleteSetResult is the outcome of deleting a set.
type DeleteSetResult struct {
	// Affected is the number of set rows removed, 0 or 1.
	Affected int64 `json:"affected"`
	// UnlinkedTerms is the number of linkage rows removed with the set.
	UnlinkedTerms int64 `json:"unlinkedTerms"`
}

// FolderUpdateResult is the outcome of moving sets to another folder.
type FolderUpdateResult struct {
	Affected int64 `json:"affected"`
}

// Message renders the result the way clients expect it.
func (r *FolderUpdateResult) Message() string {
	if r.Affected > 0 {
		return MessageChangeSuccessful
	}
	return MessageNoChangesMade
}

// SetService manages the lifecycle of sets.
type SetService interface {
	// CreateSet creates an empty set dated today.
	CreateSet(ctx context.Context, lang, name, folder, description string) (*domain.Set, error)

	// CreateSetWithTerms creates a set and then links termIDs to it. Term
	// conflicts and linking failures leave the set in place and yield a
	// partial result; an error means no set was created.
	CreateSetWithTerms(
		ctx context.Context,
		lang, name, folder, description string,
		termIDs []int64,
	) (*CreateSetWithTermsResult, error)

	// DeleteSet deletes the single set with the given name and language
	// together with its linkages. No match deletes nothing; several
	// matches fail with store.ErrAmbiguousSet.
	DeleteSet(ctx context.Context, name, lang string) (*DeleteSetResult, error)

	// DeleteSetByID deletes a set and its linkages.
	DeleteSetByID(ctx context.Context, id int64) (*DeleteSetResult, error)

	// UpdateSetFolder moves the sets matching name and language into folder.
	UpdateSetFolder(ctx context.Context, name, lang, folder string) (*FolderUpdateResult, error)

	// ListSets returns the sets of a language.
	ListSets(ctx context.Context, lang string) ([]*domain.Set, error)

	// ListFolders returns the distinct folder names.
	ListFolders(ctx context.Context) ([]string, error)
}

// SetServiceOption customises a SetService.
type SetServiceOption func(*setService)

// WithClock replaces the time source used to date sets.
func WithClock(now func() time.Time) SetServiceOption {
	return func(s *setService) {
		if now != nil {
			s.now = now
		}
	}
}

type setService struct {
	db           store.TxBeginner
	sets         store.SetStore
	linkages     store.LinkageStore
	associations AssociationService
	now          func() time.Time
	logger       *slog.Logger
}

var _ SetService = (*setService)(nil)

// NewSetService creates a SetService. If logger is nil, a default logger
// will be used.
func NewSetService(
	db store.TxBeginner,
	sets store.SetStore,
	linkages store.LinkageStore,
	associations AssociationService,
	logger *slog.Logger,
	opts ...SetServiceOption,
) (SetService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", domain.ErrValidation)
	}
	if sets == nil {
		return nil, domain.NewValidationError("sets", "cannot be nil", domain.ErrValidation)
	}
	if linkages == nil {
		return nil, domain.NewValidationError("linkages", "cannot be nil", domain.ErrValidation)
	}
	if associations == nil {
		return nil, domain.NewValidationError("associations", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &setService{
		db:           db,
		sets:         sets,
		linkages:     linkages,
		associations: associations,
		now:          time.Now,
		logger:       logger.With(slog.String("component", "set_service")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreateSet implements SetService.CreateSet
func (s *setService) CreateSet(ctx context.Context, lang, name, folder, description string) (*domain.Set, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	language, err := domain.ParseLanguage(lang)
	if err != nil {
		return nil, err
	}

	set, err := domain.NewSet(language, name, folder, description, s.now())
	if err != nil {
		log.Debug("rejected set", slog.String("error", err.Error()), slog.String("set_name", name))
		return nil, err
	}

	if err := s.sets.Create(ctx, set); err != nil {
		return nil, NewServiceError("create_set", "failed to create set", err)
	}

	return set, nil
}

// CreateSetWithTerms implements SetService.CreateSetWithTerms
func (s *setService) CreateSetWithTerms(
	ctx context.Context,
	lang, name, folder, description string,
	termIDs []int64,
) (*CreateSetWithTermsResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Reject malformed ids before anything is written.
	ids, err := domain.NormalizeIDs("termIds", termIDs)
	if err != nil {
		return nil, err
	}

	set, err := s.CreateSet(ctx, lang, name, folder, description)
	if err != nil {
		return nil, err
	}

	result := &CreateSetWithTermsResult{Set: set}
	if len(ids) == 0 {
		return result, nil
	}

	report, err := s.associations.AddTerms(ctx, set.ID, ids)
	if err != nil {
		log.Error("set created but terms could not be linked",
			slog.String("error", err.Error()),
			slog.Int64("set_id", set.ID),
			logger.IDs("term_ids", ids))
		result.LinkErr = NewServiceError("create_set_with_terms", "set created but terms were not linked", err)
		return result, nil
	}

	result.TermReport = report
	if result.Status() == CreateStatusPartial {
		log.Info("set created without some terms",
			slog.Int64("set_id", set.ID),
			logger.IDs("duplicates", report.Duplicates),
			logger.IDs("unknown_terms", report.UnknownTerms))
	}
	return result, nil
}

// DeleteSet implements SetService.DeleteSet
func (s *setService) DeleteSet(ctx context.Context, name, lang string) (*DeleteSetResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	language, err := domain.ParseLanguage(lang)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("setName", "cannot be empty", domain.ErrEmptyContent)
	}

	result := &DeleteSetResult{}
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		ids, err := s.sets.WithTx(tx).FindIDsByName(ctx, name, language)
		if err != nil {
			return err
		}
		switch len(ids) {
		case 0:
			return nil
		case 1:
			return s.deleteCascade(ctx, tx, ids[0], result)
		default:
			log.Warn("set name matches several sets",
				slog.String("set_name", name),
				slog.String("language", string(language)),
				logger.IDs("set_ids", ids))
			return store.ErrAmbiguousSet
		}
	})
	if err != nil {
		return nil, NewServiceError("delete_set", "failed to delete set", err)
	}

	if result.Affected == 0 {
		log.Debug("no set matched name",
			slog.String("set_name", name),
			slog.String("language", string(language)))
	}
	return result, nil
}

// DeleteSetByID implements SetService.DeleteSetByID
func (s *setService) DeleteSetByID(ctx context.Context, id int64) (*DeleteSetResult, error) {
	if err := domain.ValidateID("setId", id); err != nil {
		return nil, err
	}

	result := &DeleteSetResult{}
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.deleteCascade(ctx, tx, id, result); err != nil {
			return err
		}
		if result.Affected == 0 {
			return store.ErrSetNotFound
		}
		return nil
	})
	if err != nil {
		return nil, NewServiceError("delete_set", "failed to delete set", err)
	}
	return result, nil
}

func (s *setService) deleteCascade(ctx context.Context, tx *sql.Tx, id int64, result *DeleteSetResult) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	unlinked, err := s.linkages.WithTx(tx).DeleteBySet(ctx, id)
	if err != nil {
		return err
	}
	affected, err := s.sets.WithTx(tx).DeleteByID(ctx, id)
	if err != nil {
		return err
	}

	result.Affected = affected
	result.UnlinkedTerms = unlinked
	if affected > 0 {
		log.Info("set deleted",
			slog.Int64("set_id", id),
			slog.Int64("unlinked_terms", unlinked))
	}
	return nil
}

// UpdateSetFolder implements SetService.UpdateSetFolder
func (s *setService) UpdateSetFolder(ctx context.Context, name, lang, folder string) (*FolderUpdateResult, error) {
	language, err := domain.ParseLanguage(lang)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("setName", "cannot be empty", domain.ErrEmptyContent)
	}
	folder = strings.TrimSpace(folder)
	if err := domain.ValidateFolder(folder); err != nil {
		return nil, err
	}

	n, err := s.sets.UpdateFolder(ctx, name, language, folder, domain.NewDate(s.now()))
	if err != nil {
		return nil, NewServiceError("update_set_folder", "failed to update folder", err)
	}
	return &FolderUpdateResult{Affected: n}, nil
}

// ListSets implements SetService.ListSets
func (s *setService) ListSets(ctx context.Context, lang string) ([]*domain.Set, error) {
	language, err := domain.ParseLanguage(lang)
	if err != nil {
		return nil, err
	}

	sets, err := s.sets.ListByLanguage(ctx, language)
	if err != nil {
		return nil, NewServiceError("list_sets", "failed to list sets", err)
	}
	return sets, nil
}

// ListFolders implements SetService.ListFolders
func (s *setService) ListFolders(ctx context.Context) ([]string, error) {
	folders, err := s.sets.ListFolders(ctx)
	if err != nil {
		return nil, NewServiceError("list_folders", "failed to list folders", err)
	}
	return folders, nil
}

