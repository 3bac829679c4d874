package driving

import (
	"context"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

// SplitService splits a multi-page document into named single-page files.
type SplitService interface {
	// Split runs the full pipeline and writes one file per page.
	Split(ctx context.Context, req domain.SplitRequest) (*domain.BatchResult, error)

	// Plan resolves and names every page without writing anything.
	Plan(ctx context.Context, req domain.SplitRequest) (*domain.BatchResult, error)

	// Inspect extracts one page and reports how each rule treats it.
	// A negative page selects a random page.
	Inspect(ctx context.Context, source string, page int, rules []domain.Rule) (*domain.PageInspection, error)
}
