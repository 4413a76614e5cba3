package poller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"casper-stock-watcher/internal/catalog"
	"casper-stock-watcher/internal/client"
	"casper-stock-watcher/internal/models"
	"casper-stock-watcher/internal/query"
)

// SearchClient is the slice of the showroom client the engine needs.
type SearchClient interface {
	SearchCars(ctx context.Context, q query.SearchQuery) (*client.SearchResult, error)
}

// Config bounds how hard the engine hits the showroom.
type Config struct {
	// MaxConcurrency caps in-flight leaf queries. Minimum 1.
	MaxConcurrency int
	// MinRequestSpacing is the minimum gap between any two remote calls,
	// shared across all workers.
	MinRequestSpacing time.Duration
	// MaxPagesPerLeaf caps paging within one leaf; a leaf with more stock
	// than the cap can fetch is marked truncated, never silently shortened.
	MaxPagesPerLeaf int
}

// Engine fans one variant's stock search out across every leaf of the
// region hierarchy. Per-leaf failures are recorded as data on the
// snapshot; the engine itself never fails a whole poll.
type Engine struct {
	client  SearchClient
	builder query.Builder
	limiter *rate.Limiter
	cfg     Config
}

// NewEngine creates a polling engine. The rate limiter is shared by all
// workers so the configured spacing holds even under full concurrency.
func NewEngine(searchClient SearchClient, builder query.Builder, cfg Config) *Engine {
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}
	if cfg.MaxPagesPerLeaf < 1 {
		cfg.MaxPagesPerLeaf = 1
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.MinRequestSpacing > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.MinRequestSpacing), 1)
	}

	return &Engine{
		client:  searchClient,
		builder: builder,
		limiter: limiter,
		cfg:     cfg,
	}
}

// Leaf identifies one (region, sub-region) pair to query.
type Leaf struct {
	RegionName    string
	RegionCode    string
	SubRegionName string
	SubRegionCode string
}

// Leaves enumerates every leaf of the catalog in catalog order. A region
// with no recorded sub-regions contributes a single synthetic leaf whose
// code is the region code with a "0" suffix.
func Leaves(cat *catalog.Catalog) []Leaf {
	var leaves []Leaf
	for _, region := range cat.Regions() {
		if len(region.SubRegions) == 0 {
			leaves = append(leaves, Leaf{
				RegionName:    region.Name,
				RegionCode:    region.Code,
				SubRegionName: region.Name,
				SubRegionCode: region.Code + "0",
			})
			continue
		}
		for _, sub := range region.SubRegions {
			leaves = append(leaves, Leaf{
				RegionName:    region.Name,
				RegionCode:    region.Code,
				SubRegionName: sub.Name,
				SubRegionCode: sub.Code,
			})
		}
	}
	return leaves
}

// QueryOne executes one leaf query, paging as far as the configured cap
// allows. It always returns a LeafResult; remote failures are classified
// onto ErrorKind instead of being raised.
func (e *Engine) QueryOne(ctx context.Context, leaf Leaf, q query.SearchQuery) models.LeafResult {
	result := models.LeafResult{
		RegionName:    leaf.RegionName,
		RegionCode:    leaf.RegionCode,
		SubRegionName: leaf.SubRegionName,
		SubRegionCode: leaf.SubRegionCode,
		VariantID:     q.CarCode,
	}

	for page := 1; page <= e.cfg.MaxPagesPerLeaf; page++ {
		if err := e.limiter.Wait(ctx); err != nil {
			result.Units = nil
			result.ErrorKind = models.ErrorKindCancelled
			return result
		}

		pageResult, err := e.client.SearchCars(ctx, q.WithPage(page))
		if err != nil {
			slog.Warn("Leaf query failed",
				"region", leaf.RegionName,
				"subRegion", leaf.SubRegionName,
				"variant", q.CarCode,
				"page", page,
				"error", err)
			result.Units = nil
			result.TotalCount = 0
			result.ErrorKind = classifyError(err)
			return result
		}

		result.TotalCount = pageResult.TotalCount
		result.Units = append(result.Units, pageResult.Units...)

		if len(result.Units) >= pageResult.TotalCount || len(pageResult.Units) == 0 {
			break
		}
	}

	result.Succeeded = true
	result.Truncated = len(result.Units) < result.TotalCount
	if result.Truncated {
		slog.Debug("Leaf result truncated by page cap",
			"region", leaf.RegionName,
			"subRegion", leaf.SubRegionName,
			"fetched", len(result.Units),
			"totalCount", result.TotalCount)
	}
	return result
}

// PollVariantAcrossHierarchy queries every leaf of the catalog for one
// variant and assembles the results into a snapshot. Leaf queries run on
// up to MaxConcurrency workers; a leaf that fails, or is cut off by
// cancellation, still appears in the snapshot with its failure recorded.
// The snapshot is complete and immutable by the time it is returned.
func (e *Engine) PollVariantAcrossHierarchy(ctx context.Context, variant models.Variant, cat *catalog.Catalog) *models.Snapshot {
	return e.PollVariantWithOverrides(ctx, variant, cat, nil)
}

// PollVariantWithOverrides is PollVariantAcrossHierarchy with extra filter
// overrides applied to every leaf query (color, delivery center, price
// bounds).
func (e *Engine) PollVariantWithOverrides(ctx context.Context, variant models.Variant, cat *catalog.Catalog, overrides map[string]string) *models.Snapshot {
	leaves := Leaves(cat)
	takenAt := time.Now()
	pollID := uuid.NewString()

	slog.Info("Starting hierarchy poll",
		"pollId", pollID,
		"variant", variant.ID,
		"leaves", len(leaves),
		"maxConcurrency", e.cfg.MaxConcurrency)

	results := make([]models.LeafResult, len(leaves))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.MaxConcurrency)
	for i, leaf := range leaves {
		g.Go(func() error {
			if groupCtx.Err() != nil {
				results[i] = models.LeafResult{
					RegionName:    leaf.RegionName,
					RegionCode:    leaf.RegionCode,
					SubRegionName: leaf.SubRegionName,
					SubRegionCode: leaf.SubRegionCode,
					VariantID:     variant.ID,
					ErrorKind:     models.ErrorKindCancelled,
				}
				return nil
			}
			q := e.builder.Build(variant, leaf.RegionCode, leaf.SubRegionCode, overrides)
			results[i] = e.QueryOne(groupCtx, leaf, q)
			return nil
		})
	}
	// Workers record failures as data and never return an error.
	_ = g.Wait()

	snapshot := &models.Snapshot{
		PollID:    pollID,
		VariantID: variant.ID,
		TakenAt:   takenAt,
		Leaves:    make(map[models.LeafKey]models.LeafResult, len(results)),
	}
	for _, leaf := range results {
		snapshot.Leaves[leaf.Key()] = leaf
	}

	slog.Info("Hierarchy poll finished",
		"pollId", pollID,
		"variant", variant.ID,
		"totalUnits", snapshot.TotalUnits(),
		"failedLeaves", snapshot.FailedLeaves(),
		"duration", time.Since(takenAt))

	return snapshot
}

// classifyError maps a leaf query error to its recoverable kind.
func classifyError(err error) models.ErrorKind {
	var protocolErr *client.ProtocolError
	switch {
	case errors.Is(err, context.Canceled):
		return models.ErrorKindCancelled
	case errors.As(err, &protocolErr):
		if protocolErr.StatusCode == http.StatusTooManyRequests {
			return models.ErrorKindRateLimited
		}
		return models.ErrorKindProtocol
	default:
		return models.ErrorKindTransport
	}
}
