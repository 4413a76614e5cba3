package detector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casper-stock-watcher/internal/models"
)

func leaf(regionCode, subRegionCode string, succeeded bool, serials ...string) models.LeafResult {
	result := models.LeafResult{
		RegionName:    "경기",
		RegionCode:    regionCode,
		SubRegionName: subRegionCode,
		SubRegionCode: subRegionCode,
		VariantID:     "AX05",
		Succeeded:     succeeded,
	}
	for _, serial := range serials {
		result.Units = append(result.Units, models.StockUnit{SerialNumber: serial})
	}
	result.TotalCount = len(result.Units)
	return result
}

func snapshot(variantID string, leaves ...models.LeafResult) *models.Snapshot {
	s := &models.Snapshot{
		PollID:    "test-poll",
		VariantID: variantID,
		TakenAt:   time.Now(),
		Leaves:    make(map[models.LeafKey]models.LeafResult, len(leaves)),
	}
	for _, l := range leaves {
		s.Leaves[l.Key()] = l
	}
	return s
}

// TestDiff_IdenticalSnapshots tests that a self-diff reports no movement
func TestDiff_IdenticalSnapshots(t *testing.T) {
	// Arrange
	s := snapshot("AX05",
		leaf("E", "E0", true, "V1", "V2"),
		leaf("E", "E1", true),
	)

	// Act
	records, err := Diff(s, s)

	// Assert
	require.NoError(t, err)
	require.Len(t, records, 2, "One record per leaf")
	for _, record := range records {
		assert.True(t, record.Comparable)
		assert.False(t, record.Changed(), "Self-diff must report no movement for leaf %s", record.SubRegionCode)
	}
}

// TestDiff_NewAndRemovedUnits tests unit-level movement by serial number
func TestDiff_NewAndRemovedUnits(t *testing.T) {
	// Arrange - V1 stays, V2 disappears, V3 appears
	previous := snapshot("AX05", leaf("E", "E0", true, "V1", "V2"))
	current := snapshot("AX05", leaf("E", "E0", true, "V1", "V3"))

	// Act
	records, err := Diff(previous, current)

	// Assert
	require.NoError(t, err)
	require.Len(t, records, 1)

	record := records[0]
	assert.True(t, record.Comparable)
	assert.Equal(t, 2, record.PreviousCount)
	assert.Equal(t, 2, record.CurrentCount)
	require.Len(t, record.NewUnits, 1, "Only the unseen serial should be new")
	assert.Equal(t, "V3", record.NewUnits[0].SerialNumber)
	assert.Equal(t, 1, record.RemovedCount, "The vanished serial should be counted")
	assert.True(t, record.Changed())
}

// TestDiff_FailedLeafNotComparable tests that failures never fake a delta
func TestDiff_FailedLeafNotComparable(t *testing.T) {
	tests := []struct {
		name     string
		previous models.LeafResult
		current  models.LeafResult
	}{
		{
			name:     "previous failed",
			previous: leaf("E", "E0", false),
			current:  leaf("E", "E0", true, "V1"),
		},
		{
			name:     "current failed",
			previous: leaf("E", "E0", true, "V1"),
			current:  leaf("E", "E0", false),
		},
		{
			name:     "both failed",
			previous: leaf("E", "E0", false),
			current:  leaf("E", "E0", false),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Diff(snapshot("AX05", tt.previous), snapshot("AX05", tt.current))

			require.NoError(t, err)
			require.Len(t, records, 1)
			assert.False(t, records[0].Comparable, "A failed side must mark the record not comparable")
			assert.Empty(t, records[0].NewUnits, "No units may be reported as new without both sides")
		})
	}
}

// TestDiff_VariantMismatch tests that different variants cannot be compared
func TestDiff_VariantMismatch(t *testing.T) {
	previous := snapshot("AX05", leaf("E", "E0", true))
	current := snapshot("AX06", leaf("E", "E0", true))

	_, err := Diff(previous, current)

	assert.ErrorIs(t, err, ErrVariantMismatch)
}

// TestDiff_AppearedLeaf tests a leaf present only in the current snapshot
func TestDiff_AppearedLeaf(t *testing.T) {
	// Arrange
	previous := snapshot("AX05", leaf("E", "E0", true, "V1"))
	current := snapshot("AX05",
		leaf("E", "E0", true, "V1"),
		leaf("E", "E1", true, "V9"),
	)

	// Act
	records, err := Diff(previous, current)

	// Assert
	require.NoError(t, err)
	require.Len(t, records, 2)

	appeared := records[1]
	assert.Equal(t, "E1", appeared.SubRegionCode)
	assert.Equal(t, 0, appeared.PreviousCount)
	assert.Equal(t, 1, appeared.CurrentCount)
	require.Len(t, appeared.NewUnits, 1, "Everything in an appeared leaf is new")
	assert.Equal(t, "V9", appeared.NewUnits[0].SerialNumber)
}

// TestDiff_VanishedLeaf tests a leaf present only in the previous snapshot
func TestDiff_VanishedLeaf(t *testing.T) {
	// Arrange
	previous := snapshot("AX05",
		leaf("E", "E0", true, "V1"),
		leaf("E", "E1", true, "V9", "V10"),
	)
	current := snapshot("AX05", leaf("E", "E0", true, "V1"))

	// Act
	records, err := Diff(previous, current)

	// Assert
	require.NoError(t, err)
	require.Len(t, records, 2, "A vanished leaf is reported, not dropped")

	vanished := records[1]
	assert.Equal(t, "E1", vanished.SubRegionCode)
	assert.Equal(t, 2, vanished.PreviousCount)
	assert.Equal(t, 0, vanished.CurrentCount)
	assert.Equal(t, 2, vanished.RemovedCount)
	assert.True(t, vanished.Changed())
}

// TestDiff_StableOrdering tests that record order does not depend on map
// iteration order
func TestDiff_StableOrdering(t *testing.T) {
	// Arrange
	s := snapshot("AX05",
		leaf("W", "W0", true),
		leaf("B", "B0", true),
		leaf("E", "E1", true),
		leaf("E", "E0", true),
	)

	// Act - run the same diff repeatedly
	var firstOrder []string
	for i := 0; i < 10; i++ {
		records, err := Diff(s, s)
		require.NoError(t, err)

		order := make([]string, len(records))
		for j, record := range records {
			order[j] = record.RegionCode + "/" + record.SubRegionCode
		}
		if firstOrder == nil {
			firstOrder = order
			continue
		}
		// Assert
		assert.Equal(t, firstOrder, order, "Record order must be deterministic")
	}

	assert.Equal(t, []string{"B/B0", "E/E0", "E/E1", "W/W0"}, firstOrder,
		"Records should be sorted by region then sub-region code")
}

// TestDiff_TruncatedLeafUsesFetchedCount tests that deltas come from the
// units actually fetched, not the remote total
func TestDiff_TruncatedLeafUsesFetchedCount(t *testing.T) {
	// Arrange - remote claims 30 but only 2 were fetched
	truncated := leaf("E", "E0", true, "V1", "V2")
	truncated.TotalCount = 30
	truncated.Truncated = true

	previous := snapshot("AX05", leaf("E", "E0", true, "V1", "V2"))
	current := snapshot("AX05", truncated)

	// Act
	records, err := Diff(previous, current)

	// Assert
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].CurrentCount, "Count must reflect fetched units only")
	assert.False(t, records[0].Changed())
}
