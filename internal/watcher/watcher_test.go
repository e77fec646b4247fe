package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypeString(t *testing.T) {
	testCases := []struct {
		eventType EventType
		expected  string
	}{
		{EventTypeCreated, "created"},
		{EventTypeModified, "modified"},
		{EventTypeDeleted, "deleted"},
		{EventTypeRenamed, "renamed"},
		{EventType(99), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.eventType.String())
		})
	}
}

func TestEventTypeFromOp(t *testing.T) {
	assert.Equal(t, EventTypeCreated, eventType(fsnotify.Create))
	assert.Equal(t, EventTypeModified, eventType(fsnotify.Write))
	assert.Equal(t, EventTypeDeleted, eventType(fsnotify.Remove))
	assert.Equal(t, EventTypeRenamed, eventType(fsnotify.Rename))
	assert.Equal(t, EventTypeModified, eventType(fsnotify.Chmod))
}

func TestPathFilter(t *testing.T) {
	target := filepath.Join("docs", "button.md")
	filter := PathFilter(target)
	assert.True(t, filter(filepath.Join("docs", ".", "button.md")))
	assert.False(t, filter(filepath.Join("docs", "stack.md")))
}

func TestDebouncerCoalescesEvents(t *testing.T) {
	debouncer := newDebouncer(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		debouncer.start(ctx)
	}()

	debouncer.events <- ChangeEvent{Path: "b.md", Type: EventTypeCreated}
	debouncer.events <- ChangeEvent{Path: "a.md", Type: EventTypeModified}
	debouncer.events <- ChangeEvent{Path: "b.md", Type: EventTypeModified}

	select {
	case events := <-debouncer.output:
		assert.Equal(t, []ChangeEvent{
			{Path: "a.md", Type: EventTypeModified},
			{Path: "b.md", Type: EventTypeModified},
		}, events)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced batch not delivered")
	}

	cancel()
	<-done
}

func TestWatchFileDeliversChanges(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "button.md")
	require.NoError(t, os.WriteFile(target, []byte("# Button"), 0644))

	fw, err := NewFileWatcher(30*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, fw.WatchFile(target))

	var (
		mu     sync.Mutex
		paths  []string
		notify = make(chan struct{}, 1)
	)
	fw.AddHandler(func(_ context.Context, events []ChangeEvent) error {
		mu.Lock()
		for _, e := range events {
			paths = append(paths, e.Path)
		}
		mu.Unlock()
		select {
		case notify <- struct{}{}:
		default:
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, fw.Start(ctx))

	// Unrelated files in the same directory are filtered out
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(target, []byte("# Button\n\nupdated"), 0644))

	select {
	case <-notify:
	case <-time.After(5 * time.Second):
		t.Fatal("no change delivered")
	}

	cancel()
	require.NoError(t, fw.Stop())

	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, paths)
	for _, p := range paths {
		assert.Equal(t, target, p)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, fw.Start(ctx))
	cancel()

	assert.NoError(t, fw.Stop())
	assert.NoError(t, fw.Stop())
}

func TestAddPathMissing(t *testing.T) {
	fw, err := NewFileWatcher(10*time.Millisecond, nil)
	require.NoError(t, err)
	defer fw.Stop()

	assert.Error(t, fw.AddPath(filepath.Join(t.TempDir(), "missing")))
}
