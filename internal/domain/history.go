package domain

import "time"

const (
	// HistoryLimit is the number of most recent history entries kept and listed.
	HistoryLimit = 20
	// PreviewSize is the number of URLs copied into HistoryItem.Preview.
	PreviewSize = 3
)

// HistoryItem is a saved snapshot of a submitted or shared batch of URLs.
//
// Items are created server-side, listed newest first and only ever
// deleted in bulk.
type HistoryItem struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is an opaque unique identifier (UUID v4).
	ID string `json:"id"`

	// Timestamp is the creation time in milliseconds since epoch.
	Timestamp int64 `json:"timestamp"`

	// ─────────────────────────────
	// Batch content
	// ─────────────────────────────

	// URLCount is the number of URLs in the batch.
	URLCount int `json:"urlCount"`

	// Preview holds the first PreviewSize URLs of the batch, in order.
	// len(Preview) <= min(PreviewSize, URLCount).
	Preview []string `json:"preview"`

	// FullText is the pasted text (or the newline-joined URL list)
	// that produced the batch.
	FullText string `json:"fullText"`
}

// NewHistoryItem builds a history item for urls, deriving count and preview.
func NewHistoryItem(id string, now time.Time, urls []string, fullText string) HistoryItem {
	n := min(len(urls), PreviewSize)
	preview := make([]string, n)
	copy(preview, urls[:n])

	return HistoryItem{
		ID:        id,
		Timestamp: now.UnixMilli(),
		URLCount:  len(urls),
		Preview:   preview,
		FullText:  fullText,
	}
}
