package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestSeenCache_MarkAndCheck tests basic mark/lookup behavior
func TestSeenCache_MarkAndCheck(t *testing.T) {
	// Arrange
	seen := NewSeenCache(time.Minute, 30*time.Second)
	defer seen.Stop()

	// Act & Assert
	assert.False(t, seen.Seen("VIN0001"), "Unknown serial should not be seen")

	seen.MarkSeen("VIN0001")
	assert.True(t, seen.Seen("VIN0001"), "Marked serial should be seen")
	assert.False(t, seen.Seen("VIN0002"), "Other serials should be unaffected")
}

// TestSeenCache_Expiry tests that entries age out
func TestSeenCache_Expiry(t *testing.T) {
	// Arrange - very short TTL, long sweep so expiry is checked on read
	seen := NewSeenCache(20*time.Millisecond, time.Hour)
	defer seen.Stop()

	// Act
	seen.MarkSeen("VIN0001")
	assert.True(t, seen.Seen("VIN0001"))
	time.Sleep(30 * time.Millisecond)

	// Assert
	assert.False(t, seen.Seen("VIN0001"), "Expired serial should no longer be seen")
}

// TestSeenCache_MarkRefreshesExpiry tests that re-marking extends the TTL
func TestSeenCache_MarkRefreshesExpiry(t *testing.T) {
	// Arrange
	seen := NewSeenCache(40*time.Millisecond, time.Hour)
	defer seen.Stop()

	// Act - keep refreshing past the original TTL
	seen.MarkSeen("VIN0001")
	time.Sleep(25 * time.Millisecond)
	seen.MarkSeen("VIN0001")
	time.Sleep(25 * time.Millisecond)

	// Assert - 50ms after the first mark but only 25ms after the refresh
	assert.True(t, seen.Seen("VIN0001"), "Re-marking should refresh the expiry")
}

// TestSeenCache_Sweep tests the background cleanup
func TestSeenCache_Sweep(t *testing.T) {
	// Arrange
	seen := NewSeenCache(10*time.Millisecond, 20*time.Millisecond)
	defer seen.Stop()

	seen.MarkSeen("VIN0001")
	seen.MarkSeen("VIN0002")
	assert.Equal(t, 2, seen.ActiveSize())

	// Act - wait past TTL and at least one sweep
	time.Sleep(50 * time.Millisecond)

	// Assert
	assert.Equal(t, 0, seen.ActiveSize(), "Sweep should remove expired entries")
}
