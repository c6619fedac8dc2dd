package mcp

// Implementation Plan:
// 1. CachedOutliner wraps the outliner service with an otter cache
// 2. Keys carry path + mtime + size so edits self-invalidate on lookup
// 3. Partial results are never cached
// 4. Invalidate drops entries for a path; the watcher drives this

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/maypok86/otter"

	"github.com/rubyscope/rubyscope/internal/outline"
	"github.com/rubyscope/rubyscope/internal/outliner"
)

// CachedOutliner serves file outlines through a bounded in-memory cache.
// A nil cache (disabled configuration) degrades to plain pass-through.
type CachedOutliner struct {
	service *outliner.Service
	cache   *otter.Cache[string, *outline.Result]
}

// NewCachedOutliner builds a CachedOutliner. capacity <= 0 disables caching;
// a non-positive ttl falls back to an hour.
func NewCachedOutliner(service *outliner.Service, capacity int, ttl time.Duration) (*CachedOutliner, error) {
	co := &CachedOutliner{service: service}
	if capacity <= 0 {
		return co, nil
	}

	if ttl <= 0 {
		ttl = time.Hour
	}
	cache, err := otter.MustBuilder[string, *outline.Result](capacity).
		WithTTL(ttl).
		Build()
	if err != nil {
		return nil, fmt.Errorf("building outline cache: %w", err)
	}
	co.cache = &cache
	return co, nil
}

// OutlineFile returns the outline for path, from cache when the file on disk
// is unchanged since the cached extraction.
func (co *CachedOutliner) OutlineFile(ctx context.Context, path string) (*outline.Result, error) {
	if co.cache == nil {
		return co.service.OutlineFile(ctx, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	key := cacheKey(path, info.ModTime().UnixNano(), info.Size())

	if result, ok := co.cache.Get(key); ok {
		return result, nil
	}

	result, err := co.service.OutlineFile(ctx, path)
	if err != nil {
		return nil, err
	}
	// A partial result reflects a cancelled or budget-cut walk, not the
	// file's outline; keep it out of the cache.
	if !result.Partial {
		co.cache.Set(key, result)
	}
	return result, nil
}

// OutlineSource outlines raw source without touching the cache.
func (co *CachedOutliner) OutlineSource(ctx context.Context, source []byte) (*outline.Result, error) {
	return co.service.OutlineSource(ctx, source)
}

// Invalidate drops all cached outlines. Keys embed file metadata, so a
// changed file misses anyway; this reclaims the space eagerly after watcher
// events.
func (co *CachedOutliner) Invalidate() {
	if co.cache != nil {
		co.cache.Clear()
	}
}

// Close releases the cache's internal resources.
func (co *CachedOutliner) Close() {
	if co.cache != nil {
		co.cache.Close()
	}
}

func cacheKey(path string, mtime, size int64) string {
	return fmt.Sprintf("%s|%d|%d", path, mtime, size)
}
