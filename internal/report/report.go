package report

import (
	"fmt"
	"io"
	"strings"

	"casper-stock-watcher/internal/cache"
	"casper-stock-watcher/internal/models"
)

// Reporter renders snapshots and change announcements as console text.
type Reporter struct {
	out io.Writer
}

// NewReporter creates a reporter writing to out.
func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// PrintSnapshot writes a per-region summary of one snapshot. Regions with
// no stock are collapsed into a single count line; failed leaves are always
// listed so a quiet report cannot hide a broken poll.
func (r *Reporter) PrintSnapshot(snapshot *models.Snapshot) {
	fmt.Fprintf(r.out, "\n=== Stock snapshot %s (variant %s, %s) ===\n",
		snapshot.PollID[:8], snapshot.VariantID, snapshot.TakenAt.Format("2006-01-02 15:04:05"))

	leaves := snapshot.SortedLeaves()
	emptyLeaves := 0
	for _, leaf := range leaves {
		if !leaf.Succeeded {
			fmt.Fprintf(r.out, "  [FAILED] %s %s: %s\n",
				leaf.RegionName, leaf.SubRegionName, leaf.ErrorKind)
			continue
		}
		if leaf.Count() == 0 {
			emptyLeaves++
			continue
		}
		suffix := ""
		if leaf.Truncated {
			suffix = fmt.Sprintf(" (showing %d of %d)", leaf.Count(), leaf.TotalCount)
		}
		fmt.Fprintf(r.out, "  %s %s: %d units%s\n",
			leaf.RegionName, leaf.SubRegionName, leaf.Count(), suffix)
		for _, unit := range leaf.Units {
			fmt.Fprintf(r.out, "    - %s\n", describeUnit(unit))
		}
	}

	fmt.Fprintf(r.out, "  Total: %d units, %d empty areas, %d failed areas\n",
		snapshot.TotalUnits(), emptyLeaves, snapshot.FailedLeaves())
}

// AnnounceChanges writes one line per movement. Units already marked in the
// seen cache are skipped, so a unit flapping in and out of the results is
// announced once; nil seen disables the dedup.
func (r *Reporter) AnnounceChanges(records []models.ChangeRecord, seen *cache.SeenCache) {
	announced := 0
	for _, record := range records {
		if !record.Comparable || !record.Changed() {
			continue
		}

		for _, unit := range record.NewUnits {
			if seen != nil {
				if seen.Seen(unit.SerialNumber) {
					continue
				}
				seen.MarkSeen(unit.SerialNumber)
			}
			fmt.Fprintf(r.out, "NEW STOCK  %s %s: %s\n",
				record.RegionName, record.SubRegionName, describeUnit(unit))
			announced++
		}

		if record.RemovedCount > 0 {
			fmt.Fprintf(r.out, "SOLD/GONE  %s %s: %d unit(s) no longer listed (%d -> %d)\n",
				record.RegionName, record.SubRegionName,
				record.RemovedCount, record.PreviousCount, record.CurrentCount)
			announced++
		}
	}

	if announced == 0 {
		fmt.Fprintln(r.out, "No stock changes.")
	}
}

// describeUnit renders one unit on a single line.
func describeUnit(unit models.StockUnit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s / %s / %s", unit.SaleModelName, unit.Trim, unit.ExteriorColor, unit.InteriorColor)
	if unit.FinalPrice > 0 {
		fmt.Fprintf(&b, " / %s won", formatPrice(unit.FinalPrice))
	}
	if unit.DiscountAmount > 0 {
		fmt.Fprintf(&b, " (discount %s)", formatPrice(unit.DiscountAmount))
	}
	if unit.DeliveryCenter != "" {
		fmt.Fprintf(&b, " / %s", unit.DeliveryCenter)
	}
	if unit.SerialNumber != "" {
		fmt.Fprintf(&b, " [%s]", unit.SerialNumber)
	}
	return b.String()
}

// formatPrice groups a won amount with comma separators.
func formatPrice(amount int64) string {
	s := fmt.Sprintf("%d", amount)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
