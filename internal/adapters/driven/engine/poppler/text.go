package poppler

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/pagesplit/internal/core/domain"
)

// textExtractor reads the plain text of one page.
// sourcePath is the whole document, pagePath the separated page file,
// and number the 1-based page number.
type textExtractor interface {
	PageText(ctx context.Context, sourcePath, pagePath string, number int) (string, error)
	Close() error
}

func newTextExtractor(mode domain.TextMode, runner CommandRunner) (textExtractor, error) {
	switch mode {
	case "", domain.TextModePdftotext:
		return &pdftotextExtractor{runner: runner}, nil
	case domain.TextModeNative:
		return &nativeExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown text mode %q", domain.ErrConfiguration, mode)
	}
}

// pdftotextExtractor runs pdftotext in raw content-stream order on the page
// file, so a value stays next to its label with no column padding.
type pdftotextExtractor struct {
	runner CommandRunner
}

func (e *pdftotextExtractor) PageText(ctx context.Context, _, pagePath string, _ int) (string, error) {
	out, err := e.runner.Run(ctx, "pdftotext", "-raw", "-enc", "UTF-8", pagePath, "-")
	if err != nil {
		return "", err
	}
	// pdftotext ends every page with a form feed.
	return strings.TrimRight(string(out), "\f"), nil
}

func (e *pdftotextExtractor) Close() error { return nil }

// nativeExtractor reads text from the source document with ledongthuc/pdf.
// The reader is opened lazily on first use and shared by every page.
type nativeExtractor struct {
	once   sync.Once
	file   *os.File
	reader *pdf.Reader
	err    error
}

func (e *nativeExtractor) open(sourcePath string) error {
	e.once.Do(func() {
		f, r, err := pdf.Open(sourcePath)
		if err != nil {
			e.err = fmt.Errorf("open pdf: %w", err)
			return
		}
		e.file = f
		e.reader = r
	})
	return e.err
}

func (e *nativeExtractor) PageText(ctx context.Context, sourcePath, _ string, number int) (text string, err error) {
	// The reader panics on some malformed content streams.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("page %d text: %v", number, r)
		}
	}()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := e.open(sourcePath); err != nil {
		return "", err
	}
	if number < 1 || number > e.reader.NumPage() {
		return "", fmt.Errorf("page %d out of range (reader has %d)", number, e.reader.NumPage())
	}

	page := e.reader.Page(number)
	if page.V.IsNull() {
		return "", nil
	}
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("page %d text: %w", number, err)
	}
	return text, nil
}

func (e *nativeExtractor) Close() error {
	if e.file == nil {
		return nil
	}
	return e.file.Close()
}
