// Package feed merges the dynamically fetched social feed with the
// statically curated catalog into one ordered list.
package feed

import (
	"sort"

	"github.com/lcac-club/clubsite/internal/domain"
)

// Merge sorts dynamic items by descending timestamp and concatenates
// the static items after them. Static order is preserved as given.
// Items with missing or unparseable timestamps sort as epoch zero,
// i.e. last among the dynamic items. No de-duplication, no cap; an
// empty dynamic list degrades to the static list alone.
func Merge(dynamic, static []domain.FeedItem) []domain.FeedItem {
	sorted := make([]domain.FeedItem, len(dynamic))
	copy(sorted, dynamic)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time().After(sorted[j].Time())
	})

	merged := make([]domain.FeedItem, 0, len(sorted)+len(static))
	merged = append(merged, sorted...)
	merged = append(merged, static...)
	return merged
}
