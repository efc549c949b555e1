package sharecodec

import (
	"encoding/base64"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+-$"

func TestRoundTrip(t *testing.T) {
	lists := [][]string{
		{},
		{"https://x.com"},
		{"https://a.com", "https://www.b.com/x", "https://a.com"},
		{"http://example.com/path?q=1&r=2#frag", "https://ünicode.example/ä?ö=ü", "not a url at all"},
		{"", " ", "\"quoted\"", "[brackets]"},
	}

	for _, list := range lists {
		token, err := Encode(list)
		require.NoError(t, err)
		assert.Equal(t, list, Decode(token))
	}
}

func TestEncode_Deterministic(t *testing.T) {
	list := []string{"https://a.com", "https://b.com"}
	first, err := Encode(list)
	require.NoError(t, err)
	second, err := Encode(list)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEncode_NilIsEmptyList(t *testing.T) {
	token, err := Encode(nil)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, []string{}, Decode(token))
}

func TestEncode_SurvivesQueryString(t *testing.T) {
	list := []string{"https://a.com/?q=1&x=y z", "www.b.com/ä", "https://c.com/" + strings.Repeat("path/", 40)}
	token, err := Encode(list)
	require.NoError(t, err)

	for _, r := range token {
		assert.True(t, strings.ContainsRune(tokenAlphabet, r), "unexpected %q in token", r)
	}

	// an unescaped token pasted into a query string turns '+' into ' '
	values, err := url.ParseQuery("share=" + token)
	require.NoError(t, err)
	assert.Equal(t, list, Decode(values.Get("share")))
}

func TestDecode_Legacy(t *testing.T) {
	list := []string{"https://a.com", "https://b.com"}
	payload := `["https://a.com","https://b.com"]`

	padded := base64.StdEncoding.EncodeToString([]byte(payload))
	raw := base64.RawStdEncoding.EncodeToString([]byte(payload))

	_, ok := DecodeCompressed(padded)
	require.False(t, ok)

	assert.Equal(t, list, Decode(padded))
	assert.Equal(t, list, Decode(raw))
}

func TestDecode_Failures(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "!!!not-a-token!!!"},
		{name: "legacy object", token: base64.StdEncoding.EncodeToString([]byte(`{"urls":["https://a.com"]}`))},
		{name: "legacy bad json", token: base64.StdEncoding.EncodeToString([]byte(`["https://a.com"`))},
		{name: "legacy null", token: base64.StdEncoding.EncodeToString([]byte(`null`))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.Empty(t, Decode(tt.token))
			})
		})
	}
}

func TestDecode_DropsNonStrings(t *testing.T) {
	token := base64.StdEncoding.EncodeToString([]byte(`["https://a.com", 1, null, {"a":1}, "https://b.com"]`))
	assert.Equal(t, []string{"https://a.com", "https://b.com"}, Decode(token))
}
