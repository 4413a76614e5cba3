package query

import (
	"strconv"

	"casper-stock-watcher/internal/models"
)

// SearchQuery is one fully specified showroom stock search. All fields are
// plain comparable values, so two queries built from the same inputs are
// equal with == and a query can be replayed or de-duplicated safely.
// InteriorColors holds a comma-separated list because the wire format takes
// an array but the descriptor must stay comparable.
type SearchQuery struct {
	CarCode        string
	SubsidyRegion  string
	ExhibitionNo   string
	SortCode       string
	RegionCode     string
	SubRegionCode  string
	BodyCode       string
	EngineCode     string
	TrimCode       string
	ExteriorColor  string
	InteriorColors string
	DeliveryCenter string
	OptionScenario string
	OptionFilter   string
	MinSalePrice   string
	MaxSalePrice   string
	ChoiceOptions  string
	PageNo         int
	PageSize       int
}

// WithPage returns a copy of the query addressing a different page.
func (q SearchQuery) WithPage(pageNo int) SearchQuery {
	q.PageNo = pageNo
	return q
}

// Override keys accepted by Builder.Build, named after the wire fields they
// set.
const (
	OverrideSortCode       = "sortCode"
	OverrideBodyCode       = "carBodyCode"
	OverrideEngineCode     = "carEngineCode"
	OverrideTrimCode       = "carTrimCode"
	OverrideExteriorColor  = "exteriorColorCode"
	OverrideInteriorColor  = "interiorColorCode"
	OverrideDeliveryCenter = "deliveryCenterCode"
	OverrideOptionFilter   = "optionFilter"
	OverrideMinSalePrice   = "minSalePrice"
	OverrideMaxSalePrice   = "maxSalePrice"
	OverridePageSize       = "pageSize"
)

// Builder produces immutable SearchQuery values for one exhibition. The
// zero overrides case uses the variant's own defaults, matching what the
// showroom web client sends.
type Builder struct {
	exhibitionNo string
	sortCode     string
	pageSize     int
}

// NewBuilder creates a builder for the given exhibition and page size.
func NewBuilder(exhibitionNo string, pageSize int) Builder {
	return Builder{
		exhibitionNo: exhibitionNo,
		sortCode:     "10",
		pageSize:     pageSize,
	}
}

// PageSize returns the page size queries are built with.
func (b Builder) PageSize() int {
	return b.pageSize
}

// Build combines a variant, a resolved code pair, and optional overrides
// into one query starting at page 1. Unset filter fields take the variant's
// defaults or stay empty; the variant itself is never touched. The result
// is deterministic for identical inputs.
func (b Builder) Build(variant models.Variant, regionCode, subRegionCode string, overrides map[string]string) SearchQuery {
	q := SearchQuery{
		CarCode:       variant.ID,
		SubsidyRegion: variant.SubsidyRegion,
		ExhibitionNo:  b.exhibitionNo,
		SortCode:      b.sortCode,
		RegionCode:    regionCode,
		SubRegionCode: subRegionCode,
		MinSalePrice:  variant.MinSalePrice,
		MaxSalePrice:  variant.MaxSalePrice,
		ChoiceOptions: "Y",
		PageNo:        1,
		PageSize:      b.pageSize,
	}

	for key, value := range overrides {
		switch key {
		case OverrideSortCode:
			q.SortCode = value
		case OverrideBodyCode:
			q.BodyCode = value
		case OverrideEngineCode:
			q.EngineCode = value
		case OverrideTrimCode:
			q.TrimCode = value
		case OverrideExteriorColor:
			q.ExteriorColor = value
		case OverrideInteriorColor:
			q.InteriorColors = value
		case OverrideDeliveryCenter:
			q.DeliveryCenter = value
		case OverrideOptionFilter:
			q.OptionFilter = value
		case OverrideMinSalePrice:
			q.MinSalePrice = value
		case OverrideMaxSalePrice:
			q.MaxSalePrice = value
		case OverridePageSize:
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				q.PageSize = n
			}
		}
	}

	return q
}
