package main

import (
	"fmt"
	"time"

	"casper-stock-watcher/internal/catalog"
	"casper-stock-watcher/internal/client"
	"casper-stock-watcher/internal/config"
	"casper-stock-watcher/internal/models"
	"casper-stock-watcher/internal/poller"
	"casper-stock-watcher/internal/query"
)

// loadCatalog builds the region catalog from the default source chain.
func loadCatalog() *catalog.Catalog {
	return catalog.Load(catalog.DefaultSources(cfg.RegionDataPath)...)
}

// newShowroomClient builds the HTTP client from configuration.
func newShowroomClient() *client.ShowroomClient {
	timeout := config.DurationOr("REQUEST_TIMEOUT", cfg.RequestTimeout, 10*time.Second)
	return client.NewShowroomClient(cfg.BaseURL, timeout)
}

// newBuilder builds the query builder from configuration.
func newBuilder() query.Builder {
	return query.NewBuilder(cfg.ExhibitionNo, config.IntOr("PAGE_SIZE", cfg.PageSize, 18))
}

// newEngine builds the polling engine from configuration.
func newEngine(searchClient *client.ShowroomClient, builder query.Builder) *poller.Engine {
	return poller.NewEngine(searchClient, builder, poller.Config{
		MaxConcurrency:    config.IntOr("MAX_CONCURRENCY", cfg.MaxConcurrency, 4),
		MinRequestSpacing: config.DurationOr("MIN_REQUEST_SPACING", cfg.MinRequestSpacing, 200*time.Millisecond),
		MaxPagesPerLeaf:   config.IntOr("MAX_PAGES_PER_LEAF", cfg.MaxPagesPerLeaf, 5),
	})
}

// resolveVariant loads the variant table and looks up one car code.
func resolveVariant(variantID string) (models.Variant, error) {
	variants, err := models.LoadVariants(cfg.VariantsPath)
	if err != nil {
		return models.Variant{}, err
	}
	variant, ok := models.FindVariant(variants, variantID)
	if !ok {
		known := make([]string, 0, len(variants))
		for _, v := range variants {
			known = append(known, v.ID)
		}
		return models.Variant{}, fmt.Errorf("unknown variant %q, known variants: %v", variantID, known)
	}
	return variant, nil
}

// collectOverrides maps the filter flags onto query override keys, keeping
// only the ones actually set.
func collectOverrides(flags map[string]string) map[string]string {
	overrides := make(map[string]string)
	for key, value := range flags {
		if value != "" {
			overrides[key] = value
		}
	}
	if len(overrides) == 0 {
		return nil
	}
	return overrides
}
