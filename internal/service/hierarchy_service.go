package service

import (
	"context"
	"log/slog"

	"github.com/yodaslang/yodas-api/internal/domain"
	"github.com/yodaslang/yodas-api/internal/store"
)

// HierarchyService builds the folder view of all sets.
type HierarchyService struct {
	sets   store.SetStore
	logger *slog.Logger
}

// NewHierarchyService creates a HierarchyService.
func NewHierarchyService(sets store.SetStore, logger *slog.Logger) (*HierarchyService, error) {
	if sets == nil {
		return nil, domain.NewValidationError("sets", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HierarchyService{
		sets:   sets,
		logger: logger.With(slog.String("component", "hierarchy_service")),
	}, nil
}

// Hierarchy groups every set by folder and language.
func (s *HierarchyService) Hierarchy(ctx context.Context) ([]domain.FolderGroup, error) {
	rows, err := s.sets.ListAll(ctx)
	if err != nil {
		return nil, NewServiceError("hierarchy", "failed to load sets", err)
	}
	return domain.ProjectHierarchy(rows), nil
}
