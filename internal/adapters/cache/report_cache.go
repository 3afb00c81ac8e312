package cache

import (
	"sync"
	"time"

	"github.com/demandlens/backend/internal/domain/entities"
)

// CachedReport wraps a generated report with its cache metadata. A nil
// ExpiresAt means the entry never expires.
type CachedReport struct {
	Data      *entities.ReportData `json:"data"`
	CachedAt  time.Time            `json:"cached_at"`
	ExpiresAt *time.Time           `json:"expires_at,omitempty"`
}

func (r *CachedReport) expired(now time.Time) bool {
	return r.ExpiresAt != nil && now.After(*r.ExpiresAt)
}

// Stats summarizes cache occupancy
type Stats struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Expired int `json:"expired"`
}

// ReportCache is an in-process TTL cache for generated reports, keyed by run
// id. Entries accumulate until evicted by TTL or explicit invalidation;
// callers are expected to schedule CleanupExpired to bound memory. A
// multi-process deployment would back this with a shared key-value store;
// that substitution is transparent to callers.
type ReportCache struct {
	mu         sync.Mutex
	entries    map[string]*CachedReport
	defaultTTL time.Duration
	now        func() time.Time
}

// NewReportCache creates a report cache. defaultTTL applies to Set; a zero
// defaultTTL makes entries non-expiring unless SetWithTTL says otherwise.
func NewReportCache(defaultTTL time.Duration) *ReportCache {
	return &ReportCache{
		entries:    make(map[string]*CachedReport),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// Get returns the entry for runID if present and not expired. An expired
// entry is deleted on lookup, not merely hidden.
func (c *ReportCache) Get(runID string) (*CachedReport, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[runID]
	if !ok {
		return nil, false
	}
	if entry.expired(c.now()) {
		delete(c.entries, runID)
		return nil, false
	}
	return entry, true
}

// Set stores data under runID with the cache's default TTL.
func (c *ReportCache) Set(runID string, data *entities.ReportData) {
	c.SetWithTTL(runID, data, c.defaultTTL)
}

// SetWithTTL stores data under runID. A ttl of zero or less means the entry
// never expires.
func (c *ReportCache) SetWithTTL(runID string, data *entities.ReportData, ttl time.Duration) {
	now := c.now()
	entry := &CachedReport{
		Data:     data,
		CachedAt: now,
	}
	if ttl > 0 {
		expires := now.Add(ttl)
		entry.ExpiresAt = &expires
	}

	c.mu.Lock()
	c.entries[runID] = entry
	c.mu.Unlock()
}

// Invalidate removes the entry for runID, if any.
func (c *ReportCache) Invalidate(runID string) {
	c.mu.Lock()
	delete(c.entries, runID)
	c.mu.Unlock()
}

// InvalidateAll removes every entry.
func (c *ReportCache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]*CachedReport)
	c.mu.Unlock()
}

// Stats returns total, valid and expired entry counts. Expired entries are
// counted, not removed; CleanupExpired does the removal.
func (c *ReportCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	stats := Stats{Total: len(c.entries)}
	for _, entry := range c.entries {
		if entry.expired(now) {
			stats.Expired++
		} else {
			stats.Valid++
		}
	}
	return stats
}

// CleanupExpired sweeps all currently-expired entries and returns how many
// were removed.
func (c *ReportCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}
