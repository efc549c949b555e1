package urls

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Dedupe returns each distinct Original once, in first-occurrence order,
// newline-joined. Equality is exact string equality.
func Dedupe(list []ParsedURL) string {
	seen := make(map[string]struct{}, len(list))
	out := make([]string, 0, len(list))
	for _, u := range list {
		if _, ok := seen[u.Original]; ok {
			continue
		}
		seen[u.Original] = struct{}{}
		out = append(out, u.Original)
	}
	return strings.Join(out, "\n")
}

// Sort returns every Original ordered by locale-aware collation, newline-joined.
// The sort is stable and keeps duplicates.
func Sort(list []ParsedURL) string {
	out := Originals(list)
	c := newCollator()
	slices.SortStableFunc(out, c.CompareString)
	return strings.Join(out, "\n")
}

// Compare orders a and b the way Sort does.
func Compare(a, b string) int {
	return newCollator().CompareString(a, b)
}

// Collators keep internal buffers and are not safe for concurrent use.
func newCollator() *collate.Collator {
	return collate.New(language.Und)
}
