package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"casper-stock-watcher/internal/models"
)

var (
	// ErrUnavailable is returned by Resolve when no region source could be
	// loaded at all.
	ErrUnavailable = errors.New("region catalog unavailable")
	// ErrUnknownRegion is returned when a region name has no exact match.
	ErrUnknownRegion = errors.New("unknown region")
	// ErrUnknownSubRegion is returned when a sub-region name is not found
	// under the given region.
	ErrUnknownSubRegion = errors.New("unknown sub-region")
)

// Catalog holds the two-level sido/sigun hierarchy. It is loaded once and
// read-only afterwards, so it may be shared across goroutines without
// synchronization.
type Catalog struct {
	regions   []models.Region
	byName    map[string]int
	available bool
}

// Source is one ordered place region data may come from.
type Source interface {
	// Name identifies the source in log output.
	Name() string
	// Regions loads the hierarchy, or returns an error when the source is
	// not usable.
	Regions() ([]models.Region, error)
}

// StaticSource serves the compiled-in delivery-area table.
type StaticSource struct{}

// Name identifies the source in log output.
func (StaticSource) Name() string { return "static table" }

// Regions returns the compiled-in hierarchy.
func (StaticSource) Regions() ([]models.Region, error) {
	if len(staticRegions) == 0 {
		return nil, errors.New("static table is empty")
	}
	return staticRegions, nil
}

// FileSource serves a previously fetched region_data.json.
type FileSource struct {
	Path string
}

// Name identifies the source in log output.
func (s FileSource) Name() string { return "file " + s.Path }

// Regions reads and decodes the region file. The file maps region name to
// {code, sigun_list}, the format written by the fetch-regions command.
func (s FileSource) Regions() ([]models.Region, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read region file: %w", err)
	}

	var raw map[string]models.Region
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse region file: %w", err)
	}

	regions := make([]models.Region, 0, len(raw))
	for name, region := range raw {
		region.Name = name
		regions = append(regions, region)
	}
	// The JSON object loses insertion order; restore the showroom display
	// order where known, unknown regions go last by code.
	sortRegionsByDisplayOrder(regions)
	return regions, nil
}

// DefaultSources is the fixed load order: the compiled-in table first, then
// a previously fetched file.
func DefaultSources(regionFilePath string) []Source {
	return []Source{StaticSource{}, FileSource{Path: regionFilePath}}
}

// Load builds a catalog from the first source that yields any regions.
// Every attempt is logged; when all sources fail the catalog is still
// returned, with IsAvailable reporting false.
func Load(sources ...Source) *Catalog {
	for _, source := range sources {
		regions, err := source.Regions()
		if err != nil {
			slog.Warn("Region source not usable", "source", source.Name(), "error", err)
			continue
		}
		if len(regions) == 0 {
			slog.Warn("Region source yielded no regions", "source", source.Name())
			continue
		}
		slog.Info("Region catalog loaded", "source", source.Name(), "regions", len(regions))
		return New(regions)
	}

	slog.Warn("No region source available, catalog degraded to empty")
	return New(nil)
}

// New builds a catalog directly from a region list. An empty list produces
// an unavailable catalog.
func New(regions []models.Region) *Catalog {
	byName := make(map[string]int, len(regions))
	for i, region := range regions {
		byName[region.Name] = i
	}
	return &Catalog{
		regions:   regions,
		byName:    byName,
		available: len(regions) > 0,
	}
}

// IsAvailable reports whether any region data was loaded.
func (c *Catalog) IsAvailable() bool {
	return c.available
}

// Regions returns the full hierarchy in catalog order.
func (c *Catalog) Regions() []models.Region {
	return c.regions
}

// Resolve maps human-entered region and sub-region names to the code pair
// the showroom API needs. An empty subRegionName selects the region's first
// sub-region; a region with no recorded sub-regions falls back to the
// region code with a "0" suffix, which is how the showroom addresses an
// undivided region.
func (c *Catalog) Resolve(regionName, subRegionName string) (string, string, error) {
	if !c.available {
		return "", "", ErrUnavailable
	}

	idx, ok := c.byName[regionName]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownRegion, regionName)
	}
	region := c.regions[idx]

	if subRegionName != "" {
		for _, sub := range region.SubRegions {
			if sub.Name == subRegionName {
				return region.Code, sub.Code, nil
			}
		}
		return "", "", fmt.Errorf("%w: %s under %s", ErrUnknownSubRegion, subRegionName, regionName)
	}

	if len(region.SubRegions) > 0 {
		return region.Code, region.SubRegions[0].Code, nil
	}
	return region.Code, region.Code + "0", nil
}

// ListRegions returns all region names in catalog order.
func (c *Catalog) ListRegions() []string {
	names := make([]string, 0, len(c.regions))
	for _, region := range c.regions {
		names = append(names, region.Name)
	}
	return names
}

// ListSubRegions returns the sub-region names under a region, in catalog
// order. An unknown region yields an empty list, not an error.
func (c *Catalog) ListSubRegions(regionName string) []string {
	idx, ok := c.byName[regionName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(c.regions[idx].SubRegions))
	for _, sub := range c.regions[idx].SubRegions {
		names = append(names, sub.Name)
	}
	return names
}

// SearchMatch is one hit from a sub-region name search.
type SearchMatch struct {
	RegionName    string `json:"regionName"`
	RegionCode    string `json:"regionCode"`
	SubRegionName string `json:"subRegionName"`
	SubRegionCode string `json:"subRegionCode"`
}

// SearchSubRegions finds every sub-region whose name contains the fragment.
// Matching is case-sensitive substring; results follow catalog order, so
// they are stable for a fixed catalog.
func (c *Catalog) SearchSubRegions(fragment string) []SearchMatch {
	var matches []SearchMatch
	for _, region := range c.regions {
		for _, sub := range region.SubRegions {
			if strings.Contains(sub.Name, fragment) {
				matches = append(matches, SearchMatch{
					RegionName:    region.Name,
					RegionCode:    region.Code,
					SubRegionName: sub.Name,
					SubRegionCode: sub.Code,
				})
			}
		}
	}
	return matches
}

// sortRegionsByDisplayOrder restores the showroom display order for region
// codes the static table knows about; codes it does not know sort last, by
// code.
func sortRegionsByDisplayOrder(regions []models.Region) {
	order := make(map[string]int, len(staticRegions))
	for i, region := range staticRegions {
		order[region.Code] = i
	}
	rank := func(code string) int {
		if i, ok := order[code]; ok {
			return i
		}
		return len(order)
	}
	sort.SliceStable(regions, func(i, j int) bool {
		ri, rj := rank(regions[i].Code), rank(regions[j].Code)
		if ri != rj {
			return ri < rj
		}
		return regions[i].Code < regions[j].Code
	})
}
