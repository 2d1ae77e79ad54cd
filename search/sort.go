package search

import "sort"

// sortRootEntriesDescending stable-sorts by Score descending; entries
// already share the previous iteration's relative order on input, so
// stability alone preserves that ordering among ties.
func sortRootEntriesDescending(entries []*RootEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
}
