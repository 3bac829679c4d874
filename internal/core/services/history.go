package services

import (
	"context"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driven"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// defaultHistoryLimit caps List when no limit is given.
const defaultHistoryLimit = 20

// HistoryService reads past runs from the run store.
type HistoryService struct {
	runStore driven.RunStore
}

// NewHistoryService creates a history service. A nil store disables history.
func NewHistoryService(runStore driven.RunStore) *HistoryService {
	return &HistoryService{runStore: runStore}
}

// List returns recent runs, newest first.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if s.runStore == nil {
		return nil, domain.ErrHistoryUnavailable
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.runStore.List(ctx, limit)
}

// Get returns a run by ID.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.RunRecord, error) {
	if s.runStore == nil {
		return nil, domain.ErrHistoryUnavailable
	}
	return s.runStore.Get(ctx, id)
}

// Delete removes a run.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	if s.runStore == nil {
		return domain.ErrHistoryUnavailable
	}
	if _, err := s.runStore.Get(ctx, id); err != nil {
		return err
	}
	return s.runStore.Delete(ctx, id)
}
