// Package urls turns free text into URL records and implements the list
// transforms (dedupe, sort) and selection state built on top of them.
package urls

import (
	"net/url"
	"regexp"
	"strings"
)

// ParsedURL is one URL candidate found in input text.
// Records are rebuilt on every text change and never mutated in place.
type ParsedURL struct {
	ID       string `json:"id" yaml:"id"`
	Original string `json:"original" yaml:"original"` // normalized, always schemed
	Valid    bool   `json:"valid" yaml:"valid"`
	Protocol string `json:"protocol" yaml:"protocol"` // "http" or "https"
}

// Whitespace as seen by unicode.IsSpace, plus BOM.
const ws = `\s\v\x{85}\x{FEFF}\p{Z}`

// A candidate starts with http://, https:// or www. (ASCII, any case), then a
// character that is neither whitespace nor one of / $ . ? #, then any run of
// non-whitespace.
var urlPattern = regexp.MustCompile(
	`(?:[hH][tT][tT][pP][sS]?://|[wW][wW][wW]\.)[^` + ws + `/$.?#][^` + ws + `]*`,
)

// Extract returns one record per candidate in text, in match order, using
// the default positional id policy.
func Extract(text string) []ParsedURL {
	return ExtractWith(text, PositionalIDs)
}

// ExtractWith is Extract with an explicit id policy.
func ExtractWith(text string, policy IDPolicy) []ParsedURL {
	if policy == nil {
		policy = PositionalIDs
	}

	matches := urlPattern.FindAllString(text, -1)
	records := make([]ParsedURL, 0, len(matches))
	occurrences := make(map[string]int, len(matches))

	for i, raw := range matches {
		original, protocol := normalize(raw)
		n := occurrences[original]
		occurrences[original] = n + 1

		records = append(records, ParsedURL{
			ID:       policy.ID(i, original, n),
			Original: original,
			Valid:    isAbsoluteURL(original),
			Protocol: protocol,
		})
	}
	return records
}

// normalize lowercases the matched prefix and makes www. matches https.
func normalize(raw string) (original, protocol string) {
	switch {
	case hasPrefixFold(raw, "www."):
		return "https://www." + raw[len("www."):], "https"
	case hasPrefixFold(raw, "http://"):
		return "http://" + raw[len("http://"):], "http"
	default:
		return "https://" + raw[len("https://"):], "https"
	}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// Originals returns the normalized strings of list, in order.
func Originals(list []ParsedURL) []string {
	out := make([]string, len(list))
	for i, u := range list {
		out[i] = u.Original
	}
	return out
}
