package files

import (
	"slices"
	"strings"
)

// SortEntries orders entries for display: all folders before all
// files, each group ascending by name, case-sensitive.
func SortEntries(entries []Entry) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if a.IsDir() != b.IsDir() {
			if a.IsDir() {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Name(), b.Name())
	})
}
