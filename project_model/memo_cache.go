package project_model

import (
	"maps"
	"sync"
	"time"

	"github.com/meysamhadeli/snackforge/project_model/models"
)

// DefaultMemoEntries bounds the memo when no explicit size is given.
const DefaultMemoEntries = 64

// derived holds everything computed from a FileMap alone.
type derived struct {
	tree     *models.Directory
	deps     models.Dependencies
	preview  models.PreviewManifest
	warnings []models.Warning
}

type memoEntry struct {
	files     models.FileMap
	value     *derived
	timestamp time.Time
}

// MemoStats tracks memo performance counters.
type MemoStats struct {
	TotalRequests int64
	CacheHits     int64
	CacheMisses   int64
	Evictions     int64
	LastResetTime time.Time
	mutex         sync.RWMutex
}

// MemoCache keeps derived artifacts keyed by the content hash of their FileMap.
// Cached values are shared between results and must not be mutated.
type MemoCache struct {
	maxEntries int
	entries    map[uint64]*memoEntry
	order      []uint64 // insertion order, oldest first
	mutex      sync.RWMutex
	stats      *MemoStats
}

// NewMemoCache creates a memo holding at most maxEntries results; values <= 0 use DefaultMemoEntries.
func NewMemoCache(maxEntries int) *MemoCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoEntries
	}
	return &MemoCache{
		maxEntries: maxEntries,
		entries:    make(map[uint64]*memoEntry),
		stats:      &MemoStats{LastResetTime: time.Now()},
	}
}

func (mc *MemoCache) get(key uint64, files models.FileMap) (*derived, bool) {
	mc.mutex.RLock()
	entry, ok := mc.entries[key]
	mc.mutex.RUnlock()

	// A hash match alone is not trusted; the stored map must be identical.
	if !ok || !maps.Equal(entry.files, files) {
		mc.recordMiss()
		return nil, false
	}
	mc.recordHit()
	return entry.value, true
}

func (mc *MemoCache) set(key uint64, files models.FileMap, value *derived) {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()

	if _, exists := mc.entries[key]; !exists {
		mc.order = append(mc.order, key)
	}
	mc.entries[key] = &memoEntry{files: files, value: value, timestamp: time.Now()}

	for len(mc.order) > mc.maxEntries {
		oldest := mc.order[0]
		mc.order = mc.order[1:]
		delete(mc.entries, oldest)
		mc.recordEviction()
	}
}

// Len returns the number of cached results.
func (mc *MemoCache) Len() int {
	mc.mutex.RLock()
	defer mc.mutex.RUnlock()
	return len(mc.entries)
}

// Clear drops every cached result; counters are kept.
func (mc *MemoCache) Clear() {
	mc.mutex.Lock()
	defer mc.mutex.Unlock()
	mc.entries = make(map[uint64]*memoEntry)
	mc.order = nil
}
