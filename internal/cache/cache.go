package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/douglasdamasio/nbaterm/internal/logger"
)

// DefaultOfflineWindow bounds how old a payload may be and still be served
// as a stale fallback when the network is down.
const DefaultOfflineWindow = 24 * time.Hour

// Loader performs the upstream fetch for a key. The cache calls it only when
// no fresh entry exists; the returned payload becomes the new snapshot for
// the key in both tiers.
type Loader interface {
	Load(ctx context.Context, key Key) ([]byte, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, key Key) ([]byte, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, key Key) ([]byte, error) {
	return f(ctx, key)
}

// entry is one cached snapshot. Entries are replaced wholesale on refresh,
// never mutated.
type entry struct {
	payload   []byte
	fetchedAt time.Time
}

// TieredCache is the read-mostly cache between the UI and the network. Reads
// hit the memory tier, then the disk tier (promoted lazily per key), and only
// then the loader. A failed refresh falls back to a stale-but-usable entry
// inside the offline window; expired entries are never surfaced.
type TieredCache struct {
	mu      sync.RWMutex
	entries map[Key]entry
	invalid map[Key]bool
	seeded  map[Key]bool // keys whose disk row has been consulted

	disk          *DiskStore // nil means memory-only
	loader        Loader
	offlineWindow time.Duration

	// singleflight serializes concurrent fetches for the same key so a
	// burst of callers produces a single upstream request.
	sf singleflight.Group

	now func() time.Time
}

// New creates a tiered cache over loader. disk may be nil for memory-only
// operation (the disk tier also degrades to this per key on I/O errors).
func New(loader Loader, disk *DiskStore, offlineWindow time.Duration) *TieredCache {
	if offlineWindow <= 0 {
		offlineWindow = DefaultOfflineWindow
	}
	return &TieredCache{
		entries:       make(map[Key]entry),
		invalid:       make(map[Key]bool),
		seeded:        make(map[Key]bool),
		disk:          disk,
		loader:        loader,
		offlineWindow: offlineWindow,
		now:           time.Now,
	}
}

// Get returns the payload for key and its freshness state.
//
// A fresh entry is returned without any network activity. Otherwise the
// loader runs (deduplicated per key); on success the new snapshot is stored
// in both tiers and returned Fresh. On failure a stale-but-usable entry is
// returned as a degraded answer; with no usable entry the loader's error
// propagates.
func (c *TieredCache) Get(ctx context.Context, key Key, ttl time.Duration) ([]byte, Freshness, error) {
	if ent, ok := c.lookup(ctx, key); ok && !c.isInvalidated(key) {
		if c.freshness(ent, ttl) == Fresh {
			return ent.payload, Fresh, nil
		}
	}

	v, err, _ := c.sf.Do(key.String(), func() (any, error) {
		// A concurrent caller may have refreshed the key while this one
		// waited on the flight.
		if ent, ok := c.lookup(ctx, key); ok && !c.isInvalidated(key) && c.freshness(ent, ttl) == Fresh {
			return ent, nil
		}

		payload, err := c.loader.Load(ctx, key)
		if err != nil {
			return entry{}, err
		}

		ent := entry{payload: payload, fetchedAt: c.now()}
		c.store(ctx, key, ent)
		c.clearInvalidated(key)
		return ent, nil
	})

	if err == nil {
		ent := v.(entry)
		return ent.payload, c.freshness(ent, ttl), nil
	}

	// Refresh failed: serve stale data if it is still inside the offline
	// window. Expired entries are never surfaced.
	if ent, ok := c.lookup(ctx, key); ok {
		if c.freshness(ent, ttl) != Expired {
			logger.Warn("serving stale cache entry after fetch failure",
				"key", key.String(), "age", c.now().Sub(ent.fetchedAt).Round(time.Second), "error", err)
			return ent.payload, StaleUsable, nil
		}
	}
	return nil, Expired, err
}

// Invalidate forces the next Get for key to bypass the fresh fast path. The
// existing payload remains available as a stale fallback.
func (c *TieredCache) Invalidate(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalid[key] = true
}

// Age returns the age of the cached entry for key, or false when absent.
func (c *TieredCache) Age(ctx context.Context, key Key) (time.Duration, bool) {
	ent, ok := c.lookup(ctx, key)
	if !ok {
		return 0, false
	}
	return c.now().Sub(ent.fetchedAt), true
}

// Len returns the number of entries in the memory tier.
func (c *TieredCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *TieredCache) freshness(ent entry, ttl time.Duration) Freshness {
	return classifyAge(c.now().Sub(ent.fetchedAt), ttl, c.offlineWindow)
}

// lookup consults the memory tier and, on the first access for a key, the
// disk tier. When both tiers hold the key the larger fetchedAt wins. Disk
// errors degrade the key to memory-only: logged, treated as absent.
func (c *TieredCache) lookup(ctx context.Context, key Key) (entry, bool) {
	c.mu.RLock()
	ent, inMem := c.entries[key]
	seeded := c.seeded[key]
	c.mu.RUnlock()

	if seeded {
		return ent, inMem
	}

	var diskEnt entry
	diskOK := false
	if c.disk != nil {
		payload, fetchedAt, ok, err := c.disk.Load(ctx, key.String())
		if err != nil {
			logger.Warn("disk cache tier unreadable, using memory only", "key", key.String(), "error", err)
		} else if ok {
			diskEnt = entry{payload: payload, fetchedAt: fetchedAt}
			diskOK = true
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.seeded[key] = true
	ent, inMem = c.entries[key]
	if diskOK && (!inMem || diskEnt.fetchedAt.After(ent.fetchedAt)) {
		c.entries[key] = diskEnt
		return diskEnt, true
	}
	return ent, inMem
}

// store writes the entry to both tiers, last-writer-wins by fetchedAt: a
// fetch that started earlier but completed later never overwrites a fresher
// snapshot.
func (c *TieredCache) store(ctx context.Context, key Key, ent entry) {
	c.mu.Lock()
	existing, ok := c.entries[key]
	if !ok || !ent.fetchedAt.Before(existing.fetchedAt) {
		c.entries[key] = ent
	}
	c.seeded[key] = true
	c.mu.Unlock()

	if c.disk == nil {
		return
	}
	if err := c.disk.Store(ctx, key.String(), ent.payload, ent.fetchedAt); err != nil {
		// Never fatal: the key degrades to memory-only caching.
		logger.Warn("disk cache tier unwritable, keeping entry in memory", "key", key.String(), "error", err)
	}
}

func (c *TieredCache) isInvalidated(key Key) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.invalid[key]
}

func (c *TieredCache) clearInvalidated(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.invalid, key)
}
