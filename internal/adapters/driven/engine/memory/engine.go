// Package memory provides a DocumentEngine whose pages are plain strings.
// Saved pages are written to disk as their text so callers can inspect
// the output directory. It is used by tests and dry runs of the pipeline.
package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/custodia-labs/pagesplit/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.DocumentEngine = (*Engine)(nil)

// ErrClosed is returned when a handle is used after it was closed.
var ErrClosed = errors.New("handle closed")

type document struct {
	path   string
	closed bool
}

func (d *document) Path() string { return d.path }

type page struct {
	index  int
	text   string
	closed bool
}

func (p *page) Index() int { return p.index }

// Engine serves documents registered with AddDocument.
type Engine struct {
	mu   sync.Mutex
	docs map[string][]string

	// Failure injection.
	OpenErr    error
	ExtractErr error
	// SaveErr is returned when saving the page at SaveErrAt.
	SaveErr   error
	SaveErrAt int

	opened    int
	saved     []string
	openPages map[*page]struct{}
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{
		docs:      make(map[string][]string),
		SaveErrAt: -1,
		openPages: make(map[*page]struct{}),
	}
}

// AddDocument registers page texts under path.
func (e *Engine) AddDocument(path string, pages ...string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.docs[path] = pages
}

// Open returns a handle for a registered document.
func (e *Engine) Open(_ context.Context, path string) (driven.DocumentHandle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opened++
	if e.OpenErr != nil {
		return nil, e.OpenErr
	}
	if _, ok := e.docs[path]; !ok {
		return nil, fmt.Errorf("no document registered for %s", path)
	}
	return &document{path: path}, nil
}

// ExtractPages returns one page per registered text.
func (e *Engine) ExtractPages(ctx context.Context, doc driven.DocumentHandle) ([]driven.ExtractedPage, error) {
	d, ok := doc.(*document)
	if !ok {
		return nil, fmt.Errorf("foreign document handle %T", doc)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}
	if e.ExtractErr != nil {
		return nil, e.ExtractErr
	}

	texts := e.docs[d.path]
	pages := make([]driven.ExtractedPage, 0, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := &page{index: i, text: text}
		e.openPages[p] = struct{}{}
		pages = append(pages, driven.ExtractedPage{Handle: p, Text: text})
	}
	return pages, nil
}

// SavePage writes the page text to outputPath.
func (e *Engine) SavePage(_ context.Context, handle driven.PageHandle, outputPath string) error {
	p, ok := handle.(*page)
	if !ok {
		return fmt.Errorf("foreign page handle %T", handle)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if e.SaveErr != nil && p.index == e.SaveErrAt {
		return e.SaveErr
	}
	if err := os.WriteFile(outputPath, []byte(p.text), 0o644); err != nil {
		return err
	}
	e.saved = append(e.saved, outputPath)
	return nil
}

// ClosePage releases a page.
func (e *Engine) ClosePage(handle driven.PageHandle) error {
	p, ok := handle.(*page)
	if !ok {
		return fmt.Errorf("foreign page handle %T", handle)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	p.closed = true
	delete(e.openPages, p)
	return nil
}

// CloseDocument releases a document and every page still open.
func (e *Engine) CloseDocument(doc driven.DocumentHandle) error {
	d, ok := doc.(*document)
	if !ok {
		return fmt.Errorf("foreign document handle %T", doc)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	d.closed = true
	for p := range e.openPages {
		p.closed = true
		delete(e.openPages, p)
	}
	return nil
}

// Opened returns how many times Open was called.
func (e *Engine) Opened() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.opened
}

// Saved returns the paths written, in order.
func (e *Engine) Saved() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.saved...)
}

// OpenPages returns the number of pages not yet closed.
func (e *Engine) OpenPages() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.openPages)
}
