package poppler

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driven"
	"github.com/custodia-labs/pagesplit/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.DocumentEngine = (*Engine)(nil)

// Errors returned for misused handles.
var (
	ErrClosed        = errors.New("handle closed")
	ErrForeignHandle = errors.New("handle not issued by this engine")
)

// Options configures an Engine.
type Options struct {
	// Runner executes the poppler tools. Nil uses os/exec.
	Runner CommandRunner

	// ToolDir is searched for the poppler binaries before PATH.
	ToolDir string

	// TextMode selects the page text extractor.
	TextMode domain.TextMode

	// TempDir holds per-document scratch directories. Empty means os.TempDir().
	TempDir string
}

// Engine splits and reads PDFs with poppler.
type Engine struct {
	runner   CommandRunner
	textMode domain.TextMode
	tempDir  string
}

// New creates an engine.
func New(opts Options) (*Engine, error) {
	if opts.Runner == nil {
		opts.Runner = NewExecRunner(opts.ToolDir)
	}
	if opts.TextMode == "" {
		opts.TextMode = domain.TextModePdftotext
	}
	if !opts.TextMode.IsValid() {
		return nil, fmt.Errorf("%w: unknown text mode %q", domain.ErrConfiguration, opts.TextMode)
	}
	return &Engine{
		runner:   opts.Runner,
		textMode: opts.TextMode,
		tempDir:  opts.TempDir,
	}, nil
}

type document struct {
	path      string
	scratch   string
	pageCount int
	text      textExtractor

	mu     sync.Mutex
	pages  []*page
	closed bool
}

func (d *document) Path() string { return d.path }

type page struct {
	doc    *document
	index  int
	file   string
	closed bool
}

func (p *page) Index() int { return p.index }

// Open checks the document with pdfinfo and reserves a scratch directory.
func (e *Engine) Open(ctx context.Context, path string) (driven.DocumentHandle, error) {
	out, err := e.runner.Run(ctx, "pdfinfo", path)
	if err != nil {
		return nil, fmt.Errorf("pdfinfo: %w", err)
	}
	count, err := parsePageCount(out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	text, err := newTextExtractor(e.textMode, e.runner)
	if err != nil {
		return nil, err
	}

	scratch, err := os.MkdirTemp(e.tempDir, "pagesplit-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}
	logger.Debug("Opened %s (%d pages), scratch %s", path, count, scratch)

	return &document{
		path:      path,
		scratch:   scratch,
		pageCount: count,
		text:      text,
	}, nil
}

// ExtractPages separates every page to its own file and reads its text.
func (e *Engine) ExtractPages(ctx context.Context, handle driven.DocumentHandle) ([]driven.ExtractedPage, error) {
	doc, ok := handle.(*document)
	if !ok {
		return nil, ErrForeignHandle
	}
	doc.mu.Lock()
	closed := doc.closed
	doc.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	if doc.pageCount == 0 {
		return []driven.ExtractedPage{}, nil
	}

	pattern := filepath.Join(doc.scratch, "page-%d.pdf")
	if _, err := e.runner.Run(ctx, "pdfseparate", doc.path, pattern); err != nil {
		return nil, fmt.Errorf("pdfseparate: %w", err)
	}

	pages := make([]driven.ExtractedPage, 0, doc.pageCount)
	for i := 0; i < doc.pageCount; i++ {
		file := filepath.Join(doc.scratch, fmt.Sprintf("page-%d.pdf", i+1))
		if _, err := os.Stat(file); err != nil {
			return nil, fmt.Errorf("page %d was not separated: %w", i, err)
		}

		text, err := doc.text.PageText(ctx, doc.path, file, i+1)
		if err != nil {
			return nil, fmt.Errorf("page %d text: %w", i, err)
		}

		p := &page{doc: doc, index: i, file: file}
		doc.mu.Lock()
		doc.pages = append(doc.pages, p)
		doc.mu.Unlock()

		pages = append(pages, driven.ExtractedPage{Handle: p, Text: text})
	}

	return pages, nil
}

// SavePage copies the page file to outputPath, replacing any existing file.
func (e *Engine) SavePage(ctx context.Context, handle driven.PageHandle, outputPath string) error {
	p, ok := handle.(*page)
	if !ok {
		return ErrForeignHandle
	}
	p.doc.mu.Lock()
	closed := p.closed
	p.doc.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return copyReplace(p.file, outputPath)
}

// ClosePage removes the page file.
func (e *Engine) ClosePage(handle driven.PageHandle) error {
	p, ok := handle.(*page)
	if !ok {
		return ErrForeignHandle
	}
	p.doc.mu.Lock()
	defer p.doc.mu.Unlock()
	return p.release()
}

// CloseDocument removes the scratch directory and everything in it.
func (e *Engine) CloseDocument(handle driven.DocumentHandle) error {
	doc, ok := handle.(*document)
	if !ok {
		return ErrForeignHandle
	}

	doc.mu.Lock()
	defer doc.mu.Unlock()
	if doc.closed {
		return nil
	}
	doc.closed = true

	for _, p := range doc.pages {
		p.closed = true
	}
	doc.pages = nil

	textErr := doc.text.Close()
	if err := os.RemoveAll(doc.scratch); err != nil {
		return fmt.Errorf("remove scratch directory: %w", err)
	}
	return textErr
}

// release must be called with doc.mu held.
func (p *page) release() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if err := os.Remove(p.file); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// parsePageCount reads the "Pages:" line of pdfinfo output.
func parsePageCount(out []byte) (int, error) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "Pages:") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "Pages:")))
		if err != nil {
			return 0, fmt.Errorf("bad page count %q: %w", line, err)
		}
		return n, nil
	}
	return 0, errors.New("pdfinfo reported no page count")
}

// copyReplace writes src to dest through a temporary file in dest's directory.
func copyReplace(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	_ = os.Chmod(tmpPath, 0o644)

	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
