package redis

import "fmt"

const (
	// KeyHistory is the sorted set of JSON history items scored by timestamp
	KeyHistory = "linkbatch:history"
	// KeyPrefixShare is the prefix for share keys
	KeyPrefixShare = "linkbatch:share:"
)

// HistoryKey returns the key of the history sorted set
func HistoryKey() string {
	return KeyHistory
}

// ShareKey returns the Redis key for a share by ID
func ShareKey(id string) string {
	return KeyPrefixShare + id
}

// ExtractShareID extracts the share ID from a Redis key
func ExtractShareID(key string) (string, error) {
	if len(key) <= len(KeyPrefixShare) || key[:len(KeyPrefixShare)] != KeyPrefixShare {
		return "", fmt.Errorf("invalid share key: %s", key)
	}
	return key[len(KeyPrefixShare):], nil
}
