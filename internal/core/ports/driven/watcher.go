package driven

import "context"

// InboxWatcher reports documents arriving in a directory.
type InboxWatcher interface {
	// Watch emits the path of each new or replaced file in dir until ctx is
	// cancelled. Both channels are closed when watching stops.
	Watch(ctx context.Context, dir string) (<-chan string, <-chan error, error)

	// Close stops any active watch.
	Close() error
}
