package driving

import (
	"context"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

// HistoryService exposes past runs.
type HistoryService interface {
	// List returns recent runs, newest first.
	List(ctx context.Context, limit int) ([]domain.RunRecord, error)

	// Get returns a single run by ID.
	Get(ctx context.Context, id string) (*domain.RunRecord, error)

	// Delete removes a run from history.
	Delete(ctx context.Context, id string) error
}
