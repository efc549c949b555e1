// Package sharecodec encodes URL lists into self-contained, URL-safe share
// tokens and decodes them back, accepting the legacy Base64 format as well.
package sharecodec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	lzstring "github.com/daku10/go-lz-string"
)

// Encode serializes urls as a JSON array and compresses it into a token made
// of URL-safe characters only. Identical input gives an identical token.
func Encode(urls []string) (string, error) {
	if urls == nil {
		urls = []string{}
	}
	payload, err := json.Marshal(urls)
	if err != nil {
		return "", fmt.Errorf("failed to marshal urls: %w", err)
	}
	token, err := lzstring.CompressToEncodedURIComponent(string(payload))
	if err != nil {
		return "", fmt.Errorf("failed to compress urls: %w", err)
	}
	return token, nil
}

// Decode returns the URL list carried by token, trying the compressed format
// first and the legacy Base64 format second. Any failure yields an empty list.
func Decode(token string) []string {
	if token == "" {
		return []string{}
	}
	for _, variant := range []func(string) ([]string, bool){DecodeCompressed, DecodeLegacy} {
		if urls, ok := variant(token); ok {
			return urls
		}
	}
	return []string{}
}

// DecodeCompressed decodes a token produced by Encode. Spaces are read as
// '+', which is what an unescaped token turns into inside a query string.
func DecodeCompressed(token string) (urls []string, ok bool) {
	// the decompressor indexes into its input; treat a panic as bad input
	defer func() {
		if r := recover(); r != nil {
			urls, ok = nil, false
		}
	}()

	payload, err := lzstring.DecompressFromEncodedURIComponent(strings.ReplaceAll(token, " ", "+"))
	if err != nil || payload == "" {
		return nil, false
	}
	return parseList([]byte(payload))
}

// DecodeLegacy decodes the older plain Base64 JSON-array token.
func DecodeLegacy(token string) ([]string, bool) {
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding} {
		payload, err := enc.DecodeString(token)
		if err != nil || len(payload) == 0 {
			continue
		}
		return parseList(payload)
	}
	return nil, false
}

// parseList accepts only a JSON array; non-string elements are dropped.
func parseList(payload []byte) ([]string, bool) {
	var raw []any
	if err := json.Unmarshal(payload, &raw); err != nil || raw == nil {
		return nil, false
	}
	urls := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			urls = append(urls, s)
		}
	}
	return urls, true
}
