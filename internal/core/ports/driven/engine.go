package driven

import "context"

// DocumentHandle identifies an open source document.
// Its content is owned by the engine that issued it.
type DocumentHandle interface {
	// Path returns the source path the document was opened from.
	Path() string
}

// PageHandle identifies one extracted page artifact.
// It stays valid until ClosePage or CloseDocument is called.
type PageHandle interface {
	// Index returns the zero-based page position in the source document.
	Index() int
}

// ExtractedPage pairs a page artifact with its plain text.
type ExtractedPage struct {
	Handle PageHandle
	Text   string
}

// DocumentEngine performs binary parsing, page extraction, text extraction
// and persistence. The core treats it as an opaque capability.
type DocumentEngine interface {
	// Open validates and opens the document at path.
	Open(ctx context.Context, path string) (DocumentHandle, error)

	// ExtractPages returns one entry per physical page in document order.
	ExtractPages(ctx context.Context, doc DocumentHandle) ([]ExtractedPage, error)

	// SavePage persists a page artifact to outputPath, replacing any existing file.
	SavePage(ctx context.Context, page PageHandle, outputPath string) error

	// ClosePage releases a page artifact. Closing twice is a no-op.
	ClosePage(page PageHandle) error

	// CloseDocument releases the document and any pages still open.
	// Closing twice is a no-op.
	CloseDocument(doc DocumentHandle) error
}
