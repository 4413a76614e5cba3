package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"casper-stock-watcher/internal/models"
	"casper-stock-watcher/internal/poller"
	"casper-stock-watcher/internal/query"
	"casper-stock-watcher/internal/report"
)

var (
	checkVariantID      string
	checkRegion         string
	checkSubRegion      string
	checkExteriorColor  string
	checkInteriorColor  string
	checkDeliveryCenter string
	checkTrimCode       string
	checkMinPrice       string
	checkMaxPrice       string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one stock search and print the result",
	Long: `check runs a single stock search. Without --region it polls every
delivery area in the hierarchy; with --region (and optionally
--sub-region) it queries just that area.`,
	Run: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkVariantID, "variant", "AX05", "car code to search for")
	checkCmd.Flags().StringVar(&checkRegion, "region", "", "limit the search to one region (e.g. 서울)")
	checkCmd.Flags().StringVar(&checkSubRegion, "sub-region", "", "limit the search to one sub-region (requires --region)")
	checkCmd.Flags().StringVar(&checkExteriorColor, "exterior-color", "", "exterior color code filter")
	checkCmd.Flags().StringVar(&checkInteriorColor, "interior-color", "", "interior color codes, comma separated")
	checkCmd.Flags().StringVar(&checkDeliveryCenter, "delivery-center", "", "delivery center code filter")
	checkCmd.Flags().StringVar(&checkTrimCode, "trim", "", "trim code filter")
	checkCmd.Flags().StringVar(&checkMinPrice, "min-price", "", "minimum sale price filter")
	checkCmd.Flags().StringVar(&checkMaxPrice, "max-price", "", "maximum sale price filter")
}

func runCheck(cmd *cobra.Command, _ []string) {
	if checkSubRegion != "" && checkRegion == "" {
		slog.Error("--sub-region requires --region")
		os.Exit(1)
	}

	variant, err := resolveVariant(checkVariantID)
	if err != nil {
		slog.Error("Variant lookup failed", "error", err)
		os.Exit(1)
	}

	cat := loadCatalog()
	if !cat.IsAvailable() {
		slog.Error("No region data available; run fetch-regions first")
		os.Exit(1)
	}

	builder := newBuilder()
	engine := newEngine(newShowroomClient(), builder)
	overrides := collectOverrides(map[string]string{
		query.OverrideExteriorColor:  checkExteriorColor,
		query.OverrideInteriorColor:  checkInteriorColor,
		query.OverrideDeliveryCenter: checkDeliveryCenter,
		query.OverrideTrimCode:       checkTrimCode,
		query.OverrideMinSalePrice:   checkMinPrice,
		query.OverrideMaxSalePrice:   checkMaxPrice,
	})

	reporter := report.NewReporter(os.Stdout)
	ctx := cmd.Context()

	if checkRegion == "" {
		snapshot := engine.PollVariantWithOverrides(ctx, variant, cat, overrides)
		reporter.PrintSnapshot(snapshot)
		if snapshot.FailedLeaves() > 0 {
			os.Exit(1)
		}
		return
	}

	regionCode, subRegionCode, err := cat.Resolve(checkRegion, checkSubRegion)
	if err != nil {
		slog.Error("Region lookup failed", "error", err)
		os.Exit(1)
	}

	leaf := poller.Leaf{
		RegionName:    checkRegion,
		RegionCode:    regionCode,
		SubRegionName: checkSubRegion,
		SubRegionCode: subRegionCode,
	}
	if leaf.SubRegionName == "" {
		leaf.SubRegionName = checkRegion
	}

	result := engine.QueryOne(ctx, leaf, builder.Build(variant, regionCode, subRegionCode, overrides))

	snapshot := &models.Snapshot{
		PollID:    uuid.NewString(),
		VariantID: variant.ID,
		TakenAt:   time.Now(),
		Leaves:    map[models.LeafKey]models.LeafResult{result.Key(): result},
	}
	reporter.PrintSnapshot(snapshot)
	if !result.Succeeded {
		os.Exit(1)
	}
}
