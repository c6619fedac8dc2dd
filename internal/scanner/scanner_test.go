package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rubyscope/rubyscope/internal/outliner"
)

// Test Plan:
// - Discovery matches **/*.rb at the root and in subdirectories
// - Ignore patterns exclude whole directories
// - .rubyscope is always skipped
// - Scan outlines discovered files and tolerates unreadable ones
// - Progress callbacks fire in order

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFileDiscovery_Patterns(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "app.rb", "class App\nend\n")
	writeFile(t, root, "lib/util.rb", "module Util\nend\n")
	writeFile(t, root, "lib/notes.txt", "not ruby")
	writeFile(t, root, "vendor/gems/dep.rb", "class Dep\nend\n")
	writeFile(t, root, ".rubyscope/config.yml", "paths: {}")

	fd, err := NewFileDiscovery(root, []string{"**/*.rb"}, []string{"vendor/**"})
	require.NoError(t, err)

	files, err := fd.DiscoverFiles()
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		rels = append(rels, filepath.ToSlash(rel))
	}
	assert.ElementsMatch(t, []string{"app.rb", "lib/util.rb"}, rels)
}

func TestFileDiscovery_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewFileDiscovery(t.TempDir(), []string{"[invalid"}, nil)
	assert.Error(t, err)
}

type recordingReporter struct {
	events []string
}

func (r *recordingReporter) OnDiscoveryStart() {
	r.events = append(r.events, "discovery_start")
}

func (r *recordingReporter) OnDiscoveryComplete(total int) {
	r.events = append(r.events, "discovery_complete")
}

func (r *recordingReporter) OnFileScanned(path string) {
	r.events = append(r.events, "file")
}

func (r *recordingReporter) OnScanComplete(scanned, failed int) {
	r.events = append(r.events, "done")
}

func TestScanner_Scan(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.rb", "class A\n  def go\n  end\nend\n")
	writeFile(t, root, "sub/b.rb", "module B\nend\n")

	reporter := &recordingReporter{}
	s, err := New(root, []string{"**/*.rb"}, nil, outliner.New(), reporter)
	require.NoError(t, err)

	outlines, err := s.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, outlines, 2)

	byName := map[string]FileOutline{}
	for _, fo := range outlines {
		require.NoError(t, fo.Err)
		byName[filepath.Base(fo.Path)] = fo
	}

	a := byName["a.rb"]
	require.Len(t, a.Result.Symbols, 1)
	assert.Equal(t, "A", a.Result.Symbols[0].Name)

	assert.Equal(t,
		[]string{"discovery_start", "discovery_complete", "file", "file", "done"},
		reporter.events)
}

func TestScanner_Cancellation(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a.rb", "class A\nend\n")

	s, err := New(root, []string{"**/*.rb"}, nil, outliner.New(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outlines, err := s.Scan(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, outlines)
}
