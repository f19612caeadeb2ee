package sync

import "strings"

const uncategorized = "Other"

// splitCategory derives the stored category pair from the aggregator's
// hierarchy path. The first element is the primary; the full path joined with
// " > " is the detailed form. A single-element path uses the primary for both,
// and an empty path falls back to "Other".
func splitCategory(path []string) (primary, detailed string) {
	if len(path) == 0 {
		return uncategorized, uncategorized
	}
	if len(path) == 1 {
		return path[0], path[0]
	}
	return path[0], strings.Join(path, " > ")
}
