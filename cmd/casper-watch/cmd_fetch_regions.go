package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"casper-stock-watcher/internal/catalog"
	"casper-stock-watcher/internal/client"
	"casper-stock-watcher/internal/config"
	"casper-stock-watcher/internal/models"
)

var fetchRegionsOut string

var fetchRegionsCmd = &cobra.Command{
	Use:   "fetch-regions",
	Short: "Refresh the region file from the showroom address API",
	Long: `fetch-regions queries the showroom address API for the sub-regions
of every known region and writes the result as a region file. The file
is picked up on the next run when the compiled-in table cannot be used,
and captures sub-regions the showroom has added since this build.`,
	Run: runFetchRegions,
}

func init() {
	fetchRegionsCmd.Flags().StringVar(&fetchRegionsOut, "out", "", "output path (defaults to REGION_DATA_PATH)")
}

func runFetchRegions(cmd *cobra.Command, _ []string) {
	outPath := fetchRegionsOut
	if outPath == "" {
		outPath = cfg.RegionDataPath
	}

	// The compiled-in table supplies the region names and codes to iterate.
	cat := catalog.Load(catalog.StaticSource{})
	if !cat.IsAvailable() {
		slog.Error("Compiled-in region table unavailable")
		os.Exit(1)
	}

	showroomClient := newShowroomClient()
	spacing := config.DurationOr("MIN_REQUEST_SPACING", cfg.MinRequestSpacing, 200*time.Millisecond)

	fetched, failures := assembleRegionFile(cmd.Context(), showroomClient, cat.Regions(), spacing)

	data, err := json.MarshalIndent(fetched, "", "  ")
	if err != nil {
		slog.Error("Failed to marshal region data", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		slog.Error("Failed to write region file", "path", outPath, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote %d regions to %s (%d fetch failures)\n", len(fetched), outPath, failures)
	if failures > 0 {
		os.Exit(1)
	}
}

// assembleRegionFile queries the address API for every region's sub-region
// list and assembles the region-file map keyed by region name. Each entry
// carries the full region, name included, so the written file stands on
// its own. A failed fetch keeps that region's known sub-regions and counts
// as a failure.
func assembleRegionFile(ctx context.Context, showroomClient *client.ShowroomClient, regions []models.Region, spacing time.Duration) (map[string]models.Region, int) {
	fetched := make(map[string]models.Region, len(regions))
	failures := 0
	for i, region := range regions {
		if i > 0 {
			time.Sleep(spacing)
		}

		subRegions, err := showroomClient.FetchSubRegions(ctx, region.Code)
		if err != nil {
			slog.Warn("Sub-region fetch failed, keeping compiled-in list",
				"region", region.Name, "code", region.Code, "error", err)
			subRegions = region.SubRegions
			failures++
		}

		fetched[region.Name] = models.Region{
			Name:       region.Name,
			Code:       region.Code,
			SubRegions: subRegions,
		}
		fmt.Printf("  %s (%s): %d sub-regions\n", region.Name, region.Code, len(subRegions))
	}
	return fetched, failures
}
