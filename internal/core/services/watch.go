package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driven"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driving"
	"github.com/custodia-labs/pagesplit/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.WatchService = (*WatchService)(nil)

// WatchService feeds documents from an inbox to the split pipeline.
// Documents are split one after another, never concurrently.
type WatchService struct {
	watcher  driven.InboxWatcher
	splitter driving.SplitService
}

// NewWatchService creates a watch service.
func NewWatchService(watcher driven.InboxWatcher, splitter driving.SplitService) *WatchService {
	return &WatchService{watcher: watcher, splitter: splitter}
}

// Watch blocks until ctx is cancelled or the watcher fails.
func (s *WatchService) Watch(
	ctx context.Context,
	inbox string,
	template domain.SplitRequest,
	report func(driving.WatchEvent),
) error {
	if s.watcher == nil {
		return fmt.Errorf("%w: no inbox watcher configured", domain.ErrConfiguration)
	}
	if report == nil {
		report = func(driving.WatchEvent) {}
	}

	if strings.TrimSpace(template.Prefix) == "" {
		return fmt.Errorf("%w: prefix must not be blank", domain.ErrConfiguration)
	}
	if len(template.Rules) == 0 {
		return fmt.Errorf("%w: at least one rule is required", domain.ErrConfiguration)
	}
	if err := validateDestination(template.Destination); err != nil {
		return err
	}

	paths, errs, err := s.watcher.Watch(ctx, inbox)
	if err != nil {
		return fmt.Errorf("watch %s: %w", inbox, err)
	}
	defer s.watcher.Close()

	logger.Info("Watching %s for documents", inbox)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Warn("watcher: %v", err)
		case path, ok := <-paths:
			if !ok {
				return nil
			}
			if !s.accepts(path, template.Destination) {
				continue
			}

			req := template
			req.Source = path
			result, err := s.splitter.Split(ctx, req)
			if err != nil && errors.Is(err, context.Canceled) {
				return nil
			}
			report(driving.WatchEvent{Source: path, Result: result, Err: err})
		}
	}
}

// accepts filters inbox events down to visible PDFs outside the destination.
func (s *WatchService) accepts(path, destination string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		return false
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return true
	}
	dest, err := filepath.Abs(destination)
	if err != nil {
		return true
	}
	return dir != dest
}
