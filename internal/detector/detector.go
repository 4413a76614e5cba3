package detector

import (
	"errors"
	"fmt"
	"sort"

	"casper-stock-watcher/internal/models"
)

// ErrVariantMismatch is returned when two snapshots of different variants
// are compared.
var ErrVariantMismatch = errors.New("snapshots track different variants")

// Diff computes per-leaf change records between two snapshots of the same
// variant. One record is produced for every leaf of current, plus one for
// every leaf of previous that disappeared (reported with a current count
// of zero). Counts are the lengths of the fetched unit lists; unit
// identity is the serial number. Leaves where either side failed are
// marked not comparable instead of guessing a delta.
//
// Records are ordered by (region code, sub-region code), so the output
// does not depend on map iteration order.
func Diff(previous, current *models.Snapshot) ([]models.ChangeRecord, error) {
	if previous.VariantID != current.VariantID {
		return nil, fmt.Errorf("%w: previous=%s current=%s",
			ErrVariantMismatch, previous.VariantID, current.VariantID)
	}

	keys := make([]models.LeafKey, 0, len(current.Leaves))
	for key := range current.Leaves {
		keys = append(keys, key)
	}
	for key := range previous.Leaves {
		if _, ok := current.Leaves[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].RegionCode != keys[j].RegionCode {
			return keys[i].RegionCode < keys[j].RegionCode
		}
		return keys[i].SubRegionCode < keys[j].SubRegionCode
	})

	records := make([]models.ChangeRecord, 0, len(keys))
	for _, key := range keys {
		prevLeaf, hasPrev := previous.Leaves[key]
		curLeaf, hasCur := current.Leaves[key]

		switch {
		case hasPrev && hasCur:
			records = append(records, diffLeaf(prevLeaf, curLeaf))
		case hasCur:
			// Leaf appeared between polls: everything it holds is new.
			record := newRecord(curLeaf, curLeaf.VariantID)
			record.CurrentCount = curLeaf.Count()
			record.Comparable = curLeaf.Succeeded
			if curLeaf.Succeeded {
				record.NewUnits = append(record.NewUnits, curLeaf.Units...)
			}
			records = append(records, record)
		default:
			// Leaf vanished from the hierarchy: report it emptied rather
			// than dropping it.
			record := newRecord(prevLeaf, prevLeaf.VariantID)
			record.PreviousCount = prevLeaf.Count()
			record.RemovedCount = prevLeaf.Count()
			record.Comparable = prevLeaf.Succeeded
			records = append(records, record)
		}
	}

	return records, nil
}

func newRecord(leaf models.LeafResult, variantID string) models.ChangeRecord {
	return models.ChangeRecord{
		RegionName:    leaf.RegionName,
		RegionCode:    leaf.RegionCode,
		SubRegionName: leaf.SubRegionName,
		SubRegionCode: leaf.SubRegionCode,
		VariantID:     variantID,
	}
}

func diffLeaf(prevLeaf, curLeaf models.LeafResult) models.ChangeRecord {
	record := newRecord(curLeaf, curLeaf.VariantID)
	record.PreviousCount = prevLeaf.Count()
	record.CurrentCount = curLeaf.Count()

	if !prevLeaf.Succeeded || !curLeaf.Succeeded {
		record.Comparable = false
		return record
	}
	record.Comparable = true

	previousSerials := make(map[string]bool, len(prevLeaf.Units))
	for _, unit := range prevLeaf.Units {
		previousSerials[unit.SerialNumber] = true
	}
	currentSerials := make(map[string]bool, len(curLeaf.Units))
	for _, unit := range curLeaf.Units {
		currentSerials[unit.SerialNumber] = true
		if !previousSerials[unit.SerialNumber] {
			record.NewUnits = append(record.NewUnits, unit)
		}
	}
	for serial := range previousSerials {
		if !currentSerials[serial] {
			record.RemovedCount++
		}
	}

	return record
}
