package fsnotify

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHandleFsEvent tests the handleFsEvent function with various event types.
func TestHandleFsEvent(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		op       fsnotify.Op
		expected bool
	}{
		{"create file event", "batch.pdf", fsnotify.Create, true},
		{"write file event", "batch.pdf", fsnotify.Write, true},
		{"write and chmod", "batch.pdf", fsnotify.Write | fsnotify.Chmod, true},
		{"remove file event", "batch.pdf", fsnotify.Remove, false},
		{"rename file event", "batch.pdf", fsnotify.Rename, false},
		{"chmod file event - not handled", "batch.pdf", fsnotify.Chmod, false},
		{"hidden file", ".batch.pdf.part", fsnotify.Create, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := filepath.Join("/inbox", tt.file)
			path, ok := handleFsEvent(fsnotify.Event{Name: name, Op: tt.op})

			assert.Equal(t, tt.expected, ok)
			if tt.expected {
				assert.Equal(t, name, path)
			}
		})
	}
}

func TestWatcher_ReportsSettledFile(t *testing.T) {
	dir := t.TempDir()
	w := New(200 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths, _, err := w.Watch(ctx, dir)
	require.NoError(t, err)
	defer w.Close()

	target := filepath.Join(dir, "batch.pdf")
	require.NoError(t, os.WriteFile(target, []byte("%PDF-1.4"), 0o644))
	// A second write inside the settle window must not produce a second report.
	require.NoError(t, os.WriteFile(target, []byte("%PDF-1.4 more"), 0o644))

	select {
	case got := <-paths:
		assert.Equal(t, target, got)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for settled file")
	}

	select {
	case got, ok := <-paths:
		if ok {
			t.Fatalf("unexpected second report for %s", got)
		}
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_IgnoresRemovedFile(t *testing.T) {
	dir := t.TempDir()
	w := New(100 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths, _, err := w.Watch(ctx, dir)
	require.NoError(t, err)
	defer w.Close()

	target := filepath.Join(dir, "gone.pdf")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o644))
	require.NoError(t, os.Remove(target))

	select {
	case got := <-paths:
		t.Fatalf("unexpected report for %s", got)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_CancelClosesChannels(t *testing.T) {
	w := New(0)
	ctx, cancel := context.WithCancel(context.Background())

	paths, errs, err := w.Watch(ctx, t.TempDir())
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-paths:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("paths channel not closed")
	}
	_, ok := <-errs
	assert.False(t, ok)
	assert.NoError(t, w.Close())
}

func TestWatcher_CloseStopsWatch(t *testing.T) {
	w := New(0)

	paths, _, err := w.Watch(context.Background(), t.TempDir())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	select {
	case _, ok := <-paths:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("paths channel not closed")
	}
}

func TestWatcher_AlreadyWatching(t *testing.T) {
	w := New(0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, _, err := w.Watch(ctx, t.TempDir())
	require.NoError(t, err)
	defer w.Close()

	_, _, err = w.Watch(ctx, t.TempDir())
	assert.ErrorIs(t, err, ErrAlreadyWatching)
}

func TestWatcher_InvalidDirectory(t *testing.T) {
	w := New(0)

	_, _, err := w.Watch(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file.pdf")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, _, err = w.Watch(context.Background(), file)
	assert.Error(t, err)
}

func TestDefaultSettle(t *testing.T) {
	assert.Equal(t, DefaultSettle, New(0).settle)
}
