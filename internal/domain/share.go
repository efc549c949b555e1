package domain

import "time"

// ShareIDLength is the length of server-issued share identifiers.
const ShareIDLength = 12

// Share is a persisted list of URLs addressed by a short opaque id.
// Shares are immutable once created.
type Share struct {
	// ID is a ShareIDLength hex token.
	ID string `json:"id"`

	// URLs are stored exactly as submitted: no dedupe, no validation.
	URLs []string `json:"urls"`

	// CreatedAt is the creation time.
	CreatedAt time.Time `json:"createdAt"`
}

// Expired reports whether the share is older than ttl at now.
// A ttl <= 0 means shares never expire.
func (s *Share) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(s.CreatedAt) > ttl
}
