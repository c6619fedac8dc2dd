package mcp

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan:
// - Ruby file writes trigger invalidation after the debounce window
// - Non-Ruby files are ignored
// - Watcher stops cleanly, including when never started

type countingInvalidator struct {
	calls atomic.Int32
}

func (c *countingInvalidator) Invalidate() {
	c.calls.Add(1)
}

func TestFileWatcher_InvalidatesOnRubyWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inv := &countingInvalidator{}

	fw, err := NewFileWatcher(inv, dir)
	require.NoError(t, err)
	fw.debounceTime = 20 * time.Millisecond

	fw.Start(context.Background())
	defer fw.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.rb"), []byte("class A\nend\n"), 0o644))

	assert.Eventually(t, func() bool {
		return inv.calls.Load() > 0
	}, 2*time.Second, 10*time.Millisecond, "write should trigger invalidation")
}

func TestFileWatcher_IgnoresNonRubyFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	inv := &countingInvalidator{}

	fw, err := NewFileWatcher(inv, dir)
	require.NoError(t, err)
	fw.debounceTime = 20 * time.Millisecond

	fw.Start(context.Background())
	defer fw.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(0), inv.calls.Load())
}

func TestFileWatcher_StopWithoutStart(t *testing.T) {
	t.Parallel()

	fw, err := NewFileWatcher(&countingInvalidator{}, t.TempDir())
	require.NoError(t, err)

	// Must not block waiting for a goroutine that never started.
	fw.Stop()
}

func TestFileWatcher_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	fw, err := NewFileWatcher(&countingInvalidator{}, t.TempDir())
	require.NoError(t, err)

	fw.Start(context.Background())
	fw.Stop()
	fw.Stop()
}

func TestIsRubyFile(t *testing.T) {
	t.Parallel()

	assert.True(t, isRubyFile("lib/app.rb"))
	assert.True(t, isRubyFile("tasks/build.rake"))
	assert.True(t, isRubyFile("Rakefile"))
	assert.True(t, isRubyFile("Gemfile"))
	assert.False(t, isRubyFile("README.md"))
	assert.False(t, isRubyFile("main.go"))
}
