package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driven"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driving"
	"github.com/custodia-labs/pagesplit/internal/logger"
)

// Ensure SplitService implements the interface.
var _ driving.SplitService = (*SplitService)(nil)

// SplitConfig holds naming options shared by every run.
type SplitConfig struct {
	// Separator joins prefix and identifiers. Zero means domain.DefaultSeparator.
	Separator rune

	// Collision selects the duplicate-name policy. Empty means overwrite.
	Collision domain.CollisionPolicy
}

// SplitService is the batch pipeline: extract, resolve, name, save.
// Pages are processed one at a time in document order.
type SplitService struct {
	engine   driven.DocumentEngine
	runStore driven.RunStore
	resolver *IdentifierResolver
	config   SplitConfig

	// Seams for tests.
	now      func() time.Time
	newID    func() string
	pickPage func(n int) int

	mu     sync.Mutex
	active map[string]struct{}
}

// NewSplitService creates a split service.
// runStore is optional; when nil, runs are not recorded.
func NewSplitService(engine driven.DocumentEngine, runStore driven.RunStore, config SplitConfig) *SplitService {
	if config.Separator == 0 {
		config.Separator = domain.DefaultSeparator
	}
	if config.Collision == "" {
		config.Collision = domain.CollisionOverwrite
	}
	return &SplitService{
		engine:   engine,
		runStore: runStore,
		resolver: NewIdentifierResolver(),
		config:   config,
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		pickPage: rand.IntN,
		active:   make(map[string]struct{}),
	}
}

// Split runs the full pipeline.
//
// Configuration problems are reported before the document is opened.
// A fatal error mid-batch stops the run at that page: files already written
// stay on disk and the partial result is returned alongside the error.
func (s *SplitService) Split(ctx context.Context, req domain.SplitRequest) (*domain.BatchResult, error) {
	if err := validateRequest(req, true); err != nil {
		return nil, err
	}

	release, err := s.acquire(req.Source)
	if err != nil {
		return nil, err
	}
	defer release()

	result := &domain.BatchResult{RunID: s.newID(), StartedAt: s.now()}
	logger.Info("Run %s: splitting %s into %s", result.RunID, req.Source, req.Destination)

	err = s.process(ctx, req, result, true)
	result.FinishedAt = s.now()
	s.record(ctx, req, result, err)

	if err != nil {
		logger.Error("Run %s aborted after %d pages: %v", result.RunID, result.WrittenCount, err)
		return result, err
	}

	logger.Info("Run %s complete: %d written, %d unresolved", result.RunID, result.WrittenCount, result.FailedCount)
	return result, nil
}

// Plan resolves and names every page without saving anything.
func (s *SplitService) Plan(ctx context.Context, req domain.SplitRequest) (*domain.BatchResult, error) {
	if err := validateRequest(req, false); err != nil {
		return nil, err
	}

	release, err := s.acquire(req.Source)
	if err != nil {
		return nil, err
	}
	defer release()

	result := &domain.BatchResult{RunID: s.newID(), StartedAt: s.now()}
	err = s.process(ctx, req, result, false)
	result.FinishedAt = s.now()
	if err != nil {
		return result, err
	}
	return result, nil
}

// Inspect extracts one page and reports each rule's outcome on it.
func (s *SplitService) Inspect(
	ctx context.Context,
	source string,
	page int,
	rules []domain.Rule,
) (*domain.PageInspection, error) {
	if err := validateSource(source); err != nil {
		return nil, err
	}

	release, err := s.acquire(source)
	if err != nil {
		return nil, err
	}
	defer release()

	doc, err := s.engine.Open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrIO, source, err)
	}
	defer s.closeDocument(doc)

	pages, err := s.engine.ExtractPages(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: extract pages: %w", domain.ErrIO, err)
	}
	defer s.closePages(pages)

	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: %s has no pages", domain.ErrIO, source)
	}
	if page < 0 {
		page = s.pickPage(len(pages))
	}
	if page >= len(pages) {
		return nil, fmt.Errorf("%w: page %d out of range (document has %d)", domain.ErrConfiguration, page, len(pages))
	}

	text := pages[page].Text
	inspection := &domain.PageInspection{
		Index:     page,
		PageCount: len(pages),
		Text:      text,
		Rules:     s.resolver.Outcomes(text, rules),
	}
	resolved, err := s.resolver.Resolve(domain.NewPage(page, text), rules)
	if err != nil {
		// A split of this page would abort the run.
		inspection.Page = domain.NewPage(page, text)
		inspection.ResolveErr = err.Error()
		return inspection, nil
	}
	inspection.Page = resolved
	return inspection, nil
}

// process drives one document through the pipeline. When save is false
// names are computed but nothing is written.
func (s *SplitService) process(ctx context.Context, req domain.SplitRequest, result *domain.BatchResult, save bool) error {
	doc, err := s.engine.Open(ctx, req.Source)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", domain.ErrIO, req.Source, err)
	}
	defer s.closeDocument(doc)

	pages, err := s.engine.ExtractPages(ctx, doc)
	if err != nil {
		return fmt.Errorf("%w: extract pages: %w", domain.ErrIO, err)
	}
	logger.Debug("Extracted %d pages from %s", len(pages), req.Source)

	assigner := NewFilenameAssigner(req.Prefix, req.Suffix, s.config.Separator)
	guard := newCollisionGuard(s.config.Collision, s.config.Separator)
	failures := 0

	for i, ep := range pages {
		err := s.processPage(ctx, req, ep, i, assigner, guard, &failures, result, save)
		if cerr := s.engine.ClosePage(ep.Handle); cerr != nil {
			logger.Warn("closing page %d: %v", i, cerr)
		}
		if err != nil {
			s.closePages(pages[i+1:])
			return err
		}
	}

	return nil
}

func (s *SplitService) processPage(
	ctx context.Context,
	req domain.SplitRequest,
	ep driven.ExtractedPage,
	index int,
	assigner *FilenameAssigner,
	guard *collisionGuard,
	failures *int,
	result *domain.BatchResult,
	save bool,
) error {
	page, err := s.resolver.Resolve(domain.NewPage(index, ep.Text), req.Rules)
	if err != nil {
		return err
	}

	name, n := assigner.Assign(page, *failures)
	*failures = n
	if !page.Resolved {
		result.FailedCount++
	}

	name, err = guard.claim(name)
	if err != nil {
		return fmt.Errorf("page %d: %w", index, err)
	}

	outcome := domain.PageOutcome{
		Index:    index,
		Filename: name,
		Resolved: page.Resolved,
	}
	if page.Resolved {
		outcome.Identifier = page.Composite(s.config.Separator)
	}
	logger.Debug("Page %d -> %s", index, name)

	if save {
		path := filepath.Join(req.Destination, name)
		if err := s.engine.SavePage(ctx, ep.Handle, path); err != nil {
			return fmt.Errorf("%w: save page %d to %s: %w", domain.ErrIO, index, path, err)
		}
		result.WrittenCount++
	}

	result.Outputs = append(result.Outputs, outcome)
	return nil
}

func (s *SplitService) closePages(pages []driven.ExtractedPage) {
	for _, ep := range pages {
		if err := s.engine.ClosePage(ep.Handle); err != nil {
			logger.Warn("closing page %d: %v", ep.Handle.Index(), err)
		}
	}
}

func (s *SplitService) closeDocument(doc driven.DocumentHandle) {
	if err := s.engine.CloseDocument(doc); err != nil {
		logger.Warn("closing document %s: %v", doc.Path(), err)
	}
}

// record saves the run to history. History failures never fail a run.
func (s *SplitService) record(ctx context.Context, req domain.SplitRequest, result *domain.BatchResult, runErr error) {
	if s.runStore == nil {
		return
	}

	rec := domain.RunRecord{
		ID:           result.RunID,
		Source:       req.Source,
		Destination:  req.Destination,
		Prefix:       req.Prefix,
		Suffix:       NewFilenameAssigner(req.Prefix, req.Suffix, s.config.Separator).Suffix(),
		WrittenCount: result.WrittenCount,
		FailedCount:  result.FailedCount,
		Outputs:      result.Outputs,
		StartedAt:    result.StartedAt,
		FinishedAt:   result.FinishedAt,
	}
	if runErr != nil {
		rec.Error = runErr.Error()
	}

	if err := s.runStore.Save(ctx, rec); err != nil {
		logger.Warn("recording run %s: %v", rec.ID, err)
	}
}

// acquire claims exclusive use of a source document.
func (s *SplitService) acquire(source string) (func(), error) {
	key, err := filepath.Abs(source)
	if err != nil {
		key = filepath.Clean(source)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.active[key]; busy {
		return nil, fmt.Errorf("%w: %s", domain.ErrRunInProgress, source)
	}
	s.active[key] = struct{}{}

	return func() {
		s.mu.Lock()
		delete(s.active, key)
		s.mu.Unlock()
	}, nil
}

// validateRequest checks a request without touching the document engine.
func validateRequest(req domain.SplitRequest, checkDestination bool) error {
	if strings.TrimSpace(req.Prefix) == "" {
		return fmt.Errorf("%w: prefix must not be blank", domain.ErrConfiguration)
	}
	if err := validateNamePart("prefix", req.Prefix); err != nil {
		return err
	}
	if err := validateNamePart("suffix", req.Suffix); err != nil {
		return err
	}
	if len(req.Rules) == 0 {
		return fmt.Errorf("%w: at least one rule is required", domain.ErrConfiguration)
	}
	if err := validateSource(req.Source); err != nil {
		return err
	}
	if checkDestination {
		return validateDestination(req.Destination)
	}
	return nil
}

// validateNamePart keeps prefix and suffix from steering output out of
// the destination directory.
func validateNamePart(field, value string) error {
	if strings.ContainsAny(value, `/\`) || value == "." || value == ".." {
		return fmt.Errorf("%w: %s %q must not contain a path", domain.ErrConfiguration, field, value)
	}
	return nil
}

func validateSource(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: source path is required", domain.ErrConfiguration)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: source: %w", domain.ErrConfiguration, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: source %s is not a regular file", domain.ErrConfiguration, path)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: source not readable: %w", domain.ErrConfiguration, err)
	}
	return f.Close()
}

// validateDestination confirms dir exists and accepts new files.
func validateDestination(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("%w: destination directory is required", domain.ErrConfiguration)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: destination: %w", domain.ErrConfiguration, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: destination %s is not a directory", domain.ErrConfiguration, dir)
	}

	probe, err := os.CreateTemp(dir, ".pagesplit-probe-*")
	if err != nil {
		return fmt.Errorf("%w: destination %s is not writable: %w", domain.ErrConfiguration, dir, err)
	}
	name := probe.Name()
	probe.Close()
	if err := os.Remove(name); err != nil {
		logger.Warn("removing probe file %s: %v", name, err)
	}
	return nil
}
