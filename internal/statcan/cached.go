package statcan

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/career-insights/internal/types"
)

// DefaultSnapshotTTL is how long an assembled snapshot stays fresh. The
// source tables update at most monthly, so an hour is conservative.
const DefaultSnapshotTTL = time.Hour

// CachedAssembler wraps snapshot assembly with in-memory TTL caching keyed
// by selection. Safe for concurrent use.
type CachedAssembler struct {
	assembler *Assembler
	ttl       time.Duration
	skipCache bool // for testing or forcing fresh fetches

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	snapshot  *types.SurveySnapshot
	fetchedAt time.Time
}

// CachedAssemblerConfig holds configuration for the cached assembler.
type CachedAssemblerConfig struct {
	TTL       time.Duration
	SkipCache bool
}

// NewCachedAssembler creates a cached assembler. A nil config uses
// DefaultSnapshotTTL.
func NewCachedAssembler(assembler *Assembler, config *CachedAssemblerConfig) *CachedAssembler {
	ttl := DefaultSnapshotTTL
	skip := false
	if config != nil {
		if config.TTL != 0 {
			ttl = config.TTL
		}
		skip = config.SkipCache
	}
	return &CachedAssembler{
		assembler: assembler,
		ttl:       ttl,
		skipCache: skip,
		entries:   make(map[string]cacheEntry),
	}
}

// CachedSnapshot pairs a snapshot with cache metadata.
type CachedSnapshot struct {
	Snapshot  *types.SurveySnapshot
	FromCache bool
}

func cacheKey(sel Selection) string {
	return strings.Join([]string{sel.Field, sel.Subfield, sel.Education, sel.Region}, "\x1f")
}

// Snapshot returns a cached snapshot if one is fresh, otherwise assembles
// and caches a new one.
func (c *CachedAssembler) Snapshot(ctx context.Context, sel Selection) (*CachedSnapshot, error) {
	key := cacheKey(sel)

	if !c.skipCache {
		c.mu.Lock()
		entry, ok := c.entries[key]
		c.mu.Unlock()
		if ok && time.Since(entry.fetchedAt) < c.ttl {
			return &CachedSnapshot{Snapshot: entry.snapshot, FromCache: true}, nil
		}
	}

	snap, err := c.assembler.Snapshot(ctx, sel)
	if err != nil {
		return nil, err
	}

	if !c.skipCache {
		c.mu.Lock()
		c.entries[key] = cacheEntry{snapshot: snap, fetchedAt: time.Now()}
		c.mu.Unlock()
	}
	return &CachedSnapshot{Snapshot: snap}, nil
}

// Invalidate drops any cached snapshot for the selection.
func (c *CachedAssembler) Invalidate(sel Selection) {
	c.mu.Lock()
	delete(c.entries, cacheKey(sel))
	c.mu.Unlock()
}
