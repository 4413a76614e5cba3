package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casper-stock-watcher/internal/models"
)

func testRegions() []models.Region {
	return []models.Region{
		{
			Name: "서울",
			Code: "B",
			SubRegions: []models.SubRegion{
				{Code: "B0", Name: "서울특별시"},
			},
		},
		{
			Name: "경기",
			Code: "E",
			SubRegions: []models.SubRegion{
				{Code: "E0", Name: "가평군"},
				{Code: "E1", Name: "고양시"},
			},
		},
		{
			Name: "세종",
			Code: "W",
		},
	}
}

// TestCatalog_ResolveKnownPair tests resolving an exact region/sub-region pair
func TestCatalog_ResolveKnownPair(t *testing.T) {
	// Arrange
	cat := New(testRegions())

	// Act
	regionCode, subRegionCode, err := cat.Resolve("경기", "고양시")

	// Assert
	require.NoError(t, err, "Known pair should resolve")
	assert.Equal(t, "E", regionCode, "Region code should match")
	assert.Equal(t, "E1", subRegionCode, "Sub-region code should match")
}

// TestCatalog_ResolveDefaultsToFirstSubRegion tests the empty sub-region default
func TestCatalog_ResolveDefaultsToFirstSubRegion(t *testing.T) {
	// Arrange
	cat := New(testRegions())

	// Act
	regionCode, subRegionCode, err := cat.Resolve("경기", "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "E", regionCode)
	assert.Equal(t, "E0", subRegionCode, "Empty sub-region should select the region's first sub-region")
}

// TestCatalog_ResolveUndividedRegion tests the code+0 fallback for regions
// with no recorded sub-regions
func TestCatalog_ResolveUndividedRegion(t *testing.T) {
	// Arrange
	cat := New(testRegions())

	// Act
	regionCode, subRegionCode, err := cat.Resolve("세종", "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "W", regionCode)
	assert.Equal(t, "W0", subRegionCode, "Undivided region should fall back to region code plus 0")
}

// TestCatalog_ResolveUnknownNames tests the error cases
func TestCatalog_ResolveUnknownNames(t *testing.T) {
	cat := New(testRegions())

	t.Run("unknown region", func(t *testing.T) {
		_, _, err := cat.Resolve("부산광역시", "")
		assert.ErrorIs(t, err, ErrUnknownRegion, "Unknown region should return ErrUnknownRegion")
	})

	t.Run("unknown sub-region", func(t *testing.T) {
		_, _, err := cat.Resolve("경기", "성남시")
		assert.ErrorIs(t, err, ErrUnknownSubRegion, "Unknown sub-region should return ErrUnknownSubRegion")
	})

	t.Run("sub-region of another region does not match", func(t *testing.T) {
		_, _, err := cat.Resolve("서울", "고양시")
		assert.ErrorIs(t, err, ErrUnknownSubRegion, "Sub-region lookup should be scoped to its region")
	})
}

// TestCatalog_UnavailableCatalog tests behavior with no region data at all
func TestCatalog_UnavailableCatalog(t *testing.T) {
	// Arrange
	cat := New(nil)

	// Assert
	assert.False(t, cat.IsAvailable(), "Empty catalog should report unavailable")

	_, _, err := cat.Resolve("서울", "")
	assert.ErrorIs(t, err, ErrUnavailable, "Resolve on unavailable catalog should return ErrUnavailable")

	assert.Empty(t, cat.ListRegions(), "Unavailable catalog should list no regions")
}

// TestCatalog_ListSubRegions tests sub-region listing
func TestCatalog_ListSubRegions(t *testing.T) {
	cat := New(testRegions())

	t.Run("known region", func(t *testing.T) {
		names := cat.ListSubRegions("경기")
		assert.Equal(t, []string{"가평군", "고양시"}, names, "Sub-regions should come back in catalog order")
	})

	t.Run("unknown region yields empty list", func(t *testing.T) {
		names := cat.ListSubRegions("부산광역시")
		assert.Empty(t, names, "Unknown region should yield an empty list, not an error")
	})
}

// TestCatalog_SearchSubRegions tests fragment search across the hierarchy
func TestCatalog_SearchSubRegions(t *testing.T) {
	cat := New(testRegions())

	t.Run("fragment matches", func(t *testing.T) {
		matches := cat.SearchSubRegions("고양")

		require.Len(t, matches, 1)
		assert.Equal(t, "경기", matches[0].RegionName)
		assert.Equal(t, "고양시", matches[0].SubRegionName)
		assert.Equal(t, "E1", matches[0].SubRegionCode)
	})

	t.Run("no match", func(t *testing.T) {
		matches := cat.SearchSubRegions("제주")
		assert.Empty(t, matches, "Unmatched fragment should yield no results")
	})
}

// TestStaticSource_ProvidesFullTable tests the compiled-in table
func TestStaticSource_ProvidesFullTable(t *testing.T) {
	// Act
	regions, err := StaticSource{}.Regions()

	// Assert
	require.NoError(t, err)
	assert.Len(t, regions, 17, "Static table should carry all 17 sido regions")
	assert.Equal(t, "서울", regions[0].Name, "Display order should start with 서울")
}

// TestFileSource_DecodesRegionFile tests loading a fetched region file
func TestFileSource_DecodesRegionFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "region_data.json")
	content := `{
		"서울": {"code": "B", "sigun_list": [{"code": "B0", "codeName": "서울특별시"}]},
		"인천": {"code": "D", "sigun_list": [{"code": "D1", "codeName": "인천광역시"}]}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	// Act
	regions, err := FileSource{Path: path}.Regions()

	// Assert
	require.NoError(t, err)
	require.Len(t, regions, 2)
	assert.Equal(t, "서울", regions[0].Name, "Display order should be restored after decoding")
	assert.Equal(t, "인천", regions[1].Name)
	assert.Equal(t, "서울특별시", regions[0].SubRegions[0].Name)
}

// TestFileSource_MissingFile tests the error path for an absent file
func TestFileSource_MissingFile(t *testing.T) {
	_, err := FileSource{Path: filepath.Join(t.TempDir(), "nope.json")}.Regions()
	assert.Error(t, err, "Missing region file should be reported")
}

// TestLoad_FallsThroughFailedSources tests the ordered source chain
func TestLoad_FallsThroughFailedSources(t *testing.T) {
	// Arrange - first source fails, second provides data
	failing := FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}

	// Act
	cat := Load(failing, StaticSource{})

	// Assert
	assert.True(t, cat.IsAvailable(), "Catalog should load from the first usable source")
	assert.Len(t, cat.Regions(), 17)
}

// TestLoad_AllSourcesFail tests degrading to an unavailable catalog
func TestLoad_AllSourcesFail(t *testing.T) {
	// Arrange
	failing := FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}

	// Act
	cat := Load(failing)

	// Assert
	assert.False(t, cat.IsAvailable(), "Catalog should degrade to unavailable, not panic")
}
