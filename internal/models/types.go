package models

import (
	"sort"
	"time"
)

// SubRegion is one sigun entry under a sido. The JSON tags match the
// showroom address API so region_data.json can be decoded directly.
type SubRegion struct {
	Code string `json:"code"`
	Name string `json:"codeName"`
}

// Region is one sido with its ordered sigun list. A region the showroom
// does not subdivide still carries a single sub-region standing in for
// the whole area.
type Region struct {
	Name       string      `json:"name"`
	Code       string      `json:"code"`
	SubRegions []SubRegion `json:"sigun_list"`
}

// ErrorKind classifies why a single leaf query failed.
type ErrorKind string

const (
	ErrorKindNone        ErrorKind = ""
	ErrorKindTransport   ErrorKind = "transport_failure"
	ErrorKindProtocol    ErrorKind = "remote_protocol_error"
	ErrorKindCancelled   ErrorKind = "cancelled"
	ErrorKindRateLimited ErrorKind = "rate_limited"
)

// ChosenOption is one factory-chosen option on a concrete unit.
type ChosenOption struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// StockUnit is one concrete vehicle reported by the showroom search.
type StockUnit struct {
	ModelName      string         `json:"modelName"`
	SaleModelName  string         `json:"saleModelName"`
	Trim           string         `json:"trim"`
	ExteriorColor  string         `json:"exteriorColor"`
	InteriorColor  string         `json:"interiorColor"`
	Transmission   string         `json:"transmission"`
	ListPrice      int64          `json:"listPrice"`
	DiscountAmount int64          `json:"discountAmount"`
	DiscountRate   float64        `json:"discountRate"`
	FinalPrice     int64          `json:"finalPrice"`
	DeliveryFee    int64          `json:"deliveryFee"`
	DeliveryCenter string         `json:"deliveryCenter"`
	ProductionDate string         `json:"productionDate"`
	SerialNumber   string         `json:"serialNumber"`
	DiscountReason string         `json:"discountReason,omitempty"`
	OptionSummary  string         `json:"optionSummary,omitempty"`
	ChosenOptions  []ChosenOption `json:"chosenOptions,omitempty"`
}

// LeafKey identifies one (sido, sigun) pair inside a snapshot.
type LeafKey struct {
	RegionCode    string `json:"regionCode"`
	SubRegionCode string `json:"subRegionCode"`
}

// LeafResult is the outcome of querying one leaf for one variant.
// Succeeded=false means the remote call failed and Units carries nothing;
// the failure is recorded here instead of aborting the surrounding poll.
type LeafResult struct {
	RegionName    string      `json:"regionName"`
	RegionCode    string      `json:"regionCode"`
	SubRegionName string      `json:"subRegionName"`
	SubRegionCode string      `json:"subRegionCode"`
	VariantID     string      `json:"variantId"`
	Units         []StockUnit `json:"units"`
	TotalCount    int         `json:"totalCount"`
	Truncated     bool        `json:"truncated,omitempty"`
	Succeeded     bool        `json:"succeeded"`
	ErrorKind     ErrorKind   `json:"errorKind,omitempty"`
}

// Key returns the leaf's snapshot key.
func (l LeafResult) Key() LeafKey {
	return LeafKey{RegionCode: l.RegionCode, SubRegionCode: l.SubRegionCode}
}

// Count returns the number of units actually fetched for this leaf. Deltas
// between snapshots are computed from this value, not from the remote
// TotalCount, so they always reflect units we really saw; TotalCount is
// kept for truncation detection.
func (l LeafResult) Count() int {
	return len(l.Units)
}

// Snapshot is the complete set of leaf results for one variant at one
// point in time. It is built by a single poll run and never mutated after
// being returned; a new poll produces a new Snapshot.
type Snapshot struct {
	PollID    string                 `json:"pollId"`
	VariantID string                 `json:"variantId"`
	TakenAt   time.Time              `json:"takenAt"`
	Leaves    map[LeafKey]LeafResult `json:"-"`
}

// SortedLeaves returns the leaf results ordered by (region code, sub-region
// code), for stable serialization and reporting.
func (s *Snapshot) SortedLeaves() []LeafResult {
	leaves := make([]LeafResult, 0, len(s.Leaves))
	for _, leaf := range s.Leaves {
		leaves = append(leaves, leaf)
	}
	sort.Slice(leaves, func(i, j int) bool {
		if leaves[i].RegionCode != leaves[j].RegionCode {
			return leaves[i].RegionCode < leaves[j].RegionCode
		}
		return leaves[i].SubRegionCode < leaves[j].SubRegionCode
	})
	return leaves
}

// TotalUnits sums the fetched units across all succeeded leaves.
func (s *Snapshot) TotalUnits() int {
	total := 0
	for _, leaf := range s.Leaves {
		if leaf.Succeeded {
			total += leaf.Count()
		}
	}
	return total
}

// FailedLeaves returns how many leaves did not complete successfully.
func (s *Snapshot) FailedLeaves() int {
	failed := 0
	for _, leaf := range s.Leaves {
		if !leaf.Succeeded {
			failed++
		}
	}
	return failed
}

// ChangeRecord describes how one leaf moved between two snapshots of the
// same variant. Comparable=false means at least one side failed and no
// honest delta could be derived.
type ChangeRecord struct {
	RegionName    string      `json:"regionName"`
	RegionCode    string      `json:"regionCode"`
	SubRegionName string      `json:"subRegionName"`
	SubRegionCode string      `json:"subRegionCode"`
	VariantID     string      `json:"variantId"`
	PreviousCount int         `json:"previousCount"`
	CurrentCount  int         `json:"currentCount"`
	NewUnits      []StockUnit `json:"newUnits,omitempty"`
	RemovedCount  int         `json:"removedCount"`
	Comparable    bool        `json:"comparable"`
}

// Changed reports whether the record carries any actual movement.
func (c ChangeRecord) Changed() bool {
	return len(c.NewUnits) > 0 || c.RemovedCount > 0 || c.PreviousCount != c.CurrentCount
}
