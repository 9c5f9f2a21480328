package analysis

import "sort"

// MergeRanges coalesces overlapping and adjacent date ranges into a sorted,
// pairwise non-overlapping list of minimal cardinality. Two employment
// periods that share even one month fold into a single covered span, so
// concurrent jobs are never double counted.
func MergeRanges(ranges []DateRange) []DateRange {
	if len(ranges) == 0 {
		return nil
	}

	sorted := make([]DateRange, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []DateRange{sorted[0]}
	for _, r := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !r.Start.After(last.End) {
			if r.End.After(last.End) {
				last.End = r.End
			}
		} else {
			merged = append(merged, r)
		}
	}
	return merged
}

// TotalMonths sums the inclusive month spans of the ranges.
func TotalMonths(ranges []DateRange) int {
	total := 0
	for _, r := range ranges {
		total += r.Months()
	}
	return total
}
