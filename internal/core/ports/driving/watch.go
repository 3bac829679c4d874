package driving

import (
	"context"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

// WatchEvent reports the outcome of one document picked up by a watch.
type WatchEvent struct {
	// Source is the document path.
	Source string

	// Result is set when the split completed.
	Result *domain.BatchResult

	// Err is set when the split failed.
	Err error
}

// WatchService splits documents as they arrive in an inbox directory.
type WatchService interface {
	// Watch blocks until ctx is cancelled. The template supplies every
	// request field except Source. report is called once per document.
	Watch(ctx context.Context, inbox string, template domain.SplitRequest, report func(WatchEvent)) error
}
