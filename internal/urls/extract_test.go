package urls

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []ParsedURL
	}{
		{
			name:  "mixed prefixes and repeats",
			input: "check https://a.com and WWW.b.com/x and https://a.com again",
			expected: []ParsedURL{
				{ID: "url-0-13", Original: "https://a.com", Valid: true, Protocol: "https"},
				{ID: "url-1-19", Original: "https://www.b.com/x", Valid: true, Protocol: "https"},
				{ID: "url-2-13", Original: "https://a.com", Valid: true, Protocol: "https"},
			},
		},
		{
			name:  "http keeps its scheme",
			input: "http://example.com/path?q=1",
			expected: []ParsedURL{
				{ID: "url-0-27", Original: "http://example.com/path?q=1", Valid: true, Protocol: "http"},
			},
		},
		{
			name:  "upper case scheme is lowered",
			input: "HTTPS://A.COM",
			expected: []ParsedURL{
				{ID: "url-0-13", Original: "https://A.COM", Valid: true, Protocol: "https"},
			},
		},
		{
			name:  "trailing punctuation is swallowed",
			input: "see https://a.com/x.",
			expected: []ParsedURL{
				{ID: "url-0-16", Original: "https://a.com/x.", Valid: true, Protocol: "https"},
			},
		},
		{
			name:  "unparseable candidate is kept as invalid",
			input: "https://a.com/%zz",
			expected: []ParsedURL{
				{ID: "url-0-17", Original: "https://a.com/%zz", Valid: false, Protocol: "https"},
			},
		},
		{
			name:  "non-breaking space ends a candidate",
			input: "https://a.com\u00a0tail",
			expected: []ParsedURL{
				{ID: "url-0-13", Original: "https://a.com", Valid: true, Protocol: "https"},
			},
		},
		{
			name:     "schemeless domain is missed",
			input:    "example.com and foo.org/bar",
			expected: []ParsedURL{},
		},
		{
			name:     "forbidden first character",
			input:    "https://.com https:///x www.?q http://#frag www.$",
			expected: []ParsedURL{},
		},
		{
			name:     "empty text",
			input:    "",
			expected: []ParsedURL{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Extract(tt.input))
		})
	}
}

func TestExtract_Properties(t *testing.T) {
	inputs := []string{
		"a\thttps://x.io/a\nwww.y.io\r\nhttp://z.io/?a=b#c",
		"www.one.com,www.two.com https://three.com\u3000https://four.com",
		"prefix-https://glued.com/path and (www.paren.org)",
		"https://a.com https://a.com https://b.com www.a.com",
		strings.Repeat("https://rep.com/ ", 30),
	}

	for _, input := range inputs {
		records := Extract(input)
		require.NotEmpty(t, records, input)

		last := -1
		for _, r := range records {
			assert.False(t, strings.ContainsFunc(r.Original, unicode.IsSpace), "whitespace in %q", r.Original)
			assert.True(t, strings.HasPrefix(r.Original, "http://") || strings.HasPrefix(r.Original, "https://"))

			// left-to-right: every record's raw form appears after the previous one
			raw := strings.TrimPrefix(strings.TrimPrefix(r.Original, "https://"), "http://")
			idx := strings.Index(input[last+1:], raw)
			require.GreaterOrEqual(t, idx, 0, "record %q out of order", r.Original)
			last += idx + 1
		}
	}
}

func TestExtract_WWWBecomesHTTPS(t *testing.T) {
	records := Extract("www.a.com Www.b.com wWw.c.com/x")
	require.Len(t, records, 3)
	for _, r := range records {
		assert.True(t, strings.HasPrefix(r.Original, "https://www."), r.Original)
		assert.Equal(t, "https", r.Protocol)
	}
}

func TestOriginals(t *testing.T) {
	records := Extract("https://a.com www.b.com")
	assert.Equal(t, []string{"https://a.com", "https://www.b.com"}, Originals(records))
}
