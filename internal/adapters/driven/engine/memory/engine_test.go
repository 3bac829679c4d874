package memory

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_RoundTrip(t *testing.T) {
	e := NewEngine()
	e.AddDocument("batch.pdf", "page one", "page two")
	ctx := context.Background()
	dir := t.TempDir()

	doc, err := e.Open(ctx, "batch.pdf")
	require.NoError(t, err)
	assert.Equal(t, "batch.pdf", doc.Path())

	pages, err := e.ExtractPages(ctx, doc)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[1].Handle.Index())
	assert.Equal(t, "page two", pages[1].Text)

	out := filepath.Join(dir, "two.pdf")
	require.NoError(t, e.SavePage(ctx, pages[1].Handle, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "page two", string(data))
	assert.Equal(t, []string{out}, e.Saved())

	require.NoError(t, e.ClosePage(pages[0].Handle))
	assert.Equal(t, 1, e.OpenPages())
	require.NoError(t, e.CloseDocument(doc))
	assert.Equal(t, 0, e.OpenPages())
}

func TestEngine_Open_Unregistered(t *testing.T) {
	e := NewEngine()
	_, err := e.Open(context.Background(), "missing.pdf")
	assert.Error(t, err)
	assert.Equal(t, 1, e.Opened())
}

func TestEngine_SaveAfterClose(t *testing.T) {
	e := NewEngine()
	e.AddDocument("batch.pdf", "only")
	ctx := context.Background()

	doc, _ := e.Open(ctx, "batch.pdf")
	pages, _ := e.ExtractPages(ctx, doc)
	require.NoError(t, e.ClosePage(pages[0].Handle))

	err := e.SavePage(ctx, pages[0].Handle, filepath.Join(t.TempDir(), "x.pdf"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestEngine_SaveErrAt(t *testing.T) {
	boom := errors.New("disk full")
	e := NewEngine()
	e.AddDocument("batch.pdf", "a", "b")
	e.SaveErr = boom
	e.SaveErrAt = 1
	ctx := context.Background()
	dir := t.TempDir()

	doc, _ := e.Open(ctx, "batch.pdf")
	pages, _ := e.ExtractPages(ctx, doc)

	require.NoError(t, e.SavePage(ctx, pages[0].Handle, filepath.Join(dir, "a.pdf")))
	assert.ErrorIs(t, e.SavePage(ctx, pages[1].Handle, filepath.Join(dir, "b.pdf")), boom)
}
