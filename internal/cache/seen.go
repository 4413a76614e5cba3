package cache

import (
	"log/slog"
	"sync"
	"time"
)

// SeenCache remembers which serial numbers were already announced, so watch
// mode does not re-announce a unit that flaps in and out of the search
// results. Entries expire after the configured TTL and a background
// goroutine sweeps them out.
type SeenCache struct {
	entries       map[string]time.Time
	mutex         sync.RWMutex
	ttl           time.Duration
	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
}

// NewSeenCache creates a seen cache with the given TTL and sweep interval.
func NewSeenCache(ttl, cleanupInterval time.Duration) *SeenCache {
	c := &SeenCache{
		entries:     make(map[string]time.Time),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	c.cleanupTicker = time.NewTicker(cleanupInterval)
	go c.sweepExpiredEntries()

	slog.Info("Seen cache initialized",
		"ttl", ttl.String(),
		"cleanup_interval", cleanupInterval.String())

	return c
}

// MarkSeen records a serial number, refreshing its expiry if present.
func (c *SeenCache) MarkSeen(serialNumber string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries[serialNumber] = time.Now().Add(c.ttl)
}

// Seen reports whether a serial number was marked within the TTL.
func (c *SeenCache) Seen(serialNumber string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	expiresAt, exists := c.entries[serialNumber]
	if !exists {
		return false
	}
	return time.Now().Before(expiresAt)
}

// ActiveSize returns the number of non-expired entries.
func (c *SeenCache) ActiveSize() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	now := time.Now()
	active := 0
	for _, expiresAt := range c.entries {
		if now.Before(expiresAt) {
			active++
		}
	}
	return active
}

// Stop halts the sweep goroutine.
func (c *SeenCache) Stop() {
	c.cleanupTicker.Stop()
	close(c.stopCleanup)
	slog.Info("Seen cache stopped")
}

func (c *SeenCache) sweepExpiredEntries() {
	for {
		select {
		case <-c.cleanupTicker.C:
			c.sweep()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *SeenCache) sweep() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	removed := 0
	for serial, expiresAt := range c.entries {
		if now.After(expiresAt) {
			delete(c.entries, serial)
			removed++
		}
	}

	if removed > 0 {
		slog.Debug("Seen cache sweep completed",
			"expired_entries", removed,
			"remaining_entries", len(c.entries))
	}
}
