package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	regionsSearch string
	regionsRegion string
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List or search the delivery-region hierarchy",
	Long: `regions lists every known region. With --region it lists that
region's sub-regions; with --search it finds sub-regions whose name
contains the given fragment.`,
	Run: runRegions,
}

func init() {
	regionsCmd.Flags().StringVar(&regionsSearch, "search", "", "find sub-regions containing this fragment")
	regionsCmd.Flags().StringVar(&regionsRegion, "region", "", "list sub-regions of this region")
}

func runRegions(cmd *cobra.Command, _ []string) {
	cat := loadCatalog()
	if !cat.IsAvailable() {
		slog.Error("No region data available; run fetch-regions first")
		os.Exit(1)
	}

	switch {
	case regionsSearch != "":
		matches := cat.SearchSubRegions(regionsSearch)
		if len(matches) == 0 {
			fmt.Printf("No sub-region matches %q\n", regionsSearch)
			return
		}
		for _, match := range matches {
			fmt.Printf("%s / %s  (%s, %s)\n",
				match.RegionName, match.SubRegionName, match.RegionCode, match.SubRegionCode)
		}

	case regionsRegion != "":
		subRegions := cat.ListSubRegions(regionsRegion)
		if len(subRegions) == 0 {
			fmt.Printf("Unknown region %q. Known regions: %s\n",
				regionsRegion, strings.Join(cat.ListRegions(), ", "))
			os.Exit(1)
		}
		fmt.Printf("Sub-regions of %s:\n", regionsRegion)
		for _, name := range subRegions {
			fmt.Printf("  %s\n", name)
		}

	default:
		fmt.Println("Regions:")
		for _, name := range cat.ListRegions() {
			fmt.Printf("  %s (%d sub-regions)\n", name, len(cat.ListSubRegions(name)))
		}
	}
}
