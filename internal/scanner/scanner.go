// Package scanner discovers Ruby files under a project root and outlines
// them in bulk.
package scanner

import (
	"context"
	"fmt"

	"github.com/rubyscope/rubyscope/internal/outline"
	"github.com/rubyscope/rubyscope/internal/outliner"
)

// ProgressReporter provides callbacks for reporting scan progress.
type ProgressReporter interface {
	OnDiscoveryStart()
	OnDiscoveryComplete(totalFiles int)
	OnFileScanned(path string)
	OnScanComplete(scanned, failed int)
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

func (n *NoOpProgressReporter) OnDiscoveryStart()                  {}
func (n *NoOpProgressReporter) OnDiscoveryComplete(totalFiles int) {}
func (n *NoOpProgressReporter) OnFileScanned(path string)          {}
func (n *NoOpProgressReporter) OnScanComplete(scanned, failed int) {}

// FileOutline pairs a discovered file with its extraction result. Err is set
// when the file could not be read or parsed; the scan continues past it.
type FileOutline struct {
	Path   string
	Result *outline.Result
	Err    error
}

// Scanner outlines every Ruby file a discovery pass finds.
type Scanner struct {
	discovery *FileDiscovery
	service   *outliner.Service
	progress  ProgressReporter
}

// New creates a Scanner over rootDir. A nil progress reporter is replaced
// with a no-op one.
func New(rootDir string, rubyPatterns, ignorePatterns []string, service *outliner.Service, progress ProgressReporter) (*Scanner, error) {
	discovery, err := NewFileDiscovery(rootDir, rubyPatterns, ignorePatterns)
	if err != nil {
		return nil, fmt.Errorf("compiling file patterns: %w", err)
	}
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	return &Scanner{
		discovery: discovery,
		service:   service,
		progress:  progress,
	}, nil
}

// Scan discovers and outlines all matching files. Per-file failures are
// recorded on the FileOutline and do not abort the scan; only context
// cancellation stops it early.
func (s *Scanner) Scan(ctx context.Context) ([]FileOutline, error) {
	s.progress.OnDiscoveryStart()
	files, err := s.discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	s.progress.OnDiscoveryComplete(len(files))

	outlines := make([]FileOutline, 0, len(files))
	failed := 0
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return outlines, err
		}

		result, err := s.service.OutlineFile(ctx, path)
		if err != nil {
			failed++
		}
		outlines = append(outlines, FileOutline{Path: path, Result: result, Err: err})
		s.progress.OnFileScanned(path)
	}

	s.progress.OnScanComplete(len(outlines)-failed, failed)
	return outlines, nil
}
