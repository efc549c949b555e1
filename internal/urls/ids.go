package urls

import (
	"fmt"
	"hash/fnv"

	"github.com/sqids/sqids-go"
)

// IDPolicy assigns the id of the record at index whose normalized string is
// original. occurrence counts earlier records with the same original.
type IDPolicy interface {
	ID(index int, original string, occurrence int) string
}

// IDPolicyFunc adapts a function to IDPolicy.
type IDPolicyFunc func(index int, original string, occurrence int) string

func (f IDPolicyFunc) ID(index int, original string, occurrence int) string {
	return f(index, original, occurrence)
}

// PositionalIDs derives ids from list position and normalized length.
// Ids are not content-stable: editing earlier entries remaps them, which is
// why a Session resets its selection on every text change.
var PositionalIDs IDPolicy = IDPolicyFunc(func(index int, original string, _ int) string {
	return fmt.Sprintf("url-%d-%d", index, len(original))
})

// ContentIDs derives ids from a hash of the normalized URL and its occurrence
// ordinal, so an unchanged URL keeps its id when other entries are edited.
type ContentIDs struct {
	sq *sqids.Sqids
}

// NewContentIDs builds a content-addressed id policy.
func NewContentIDs() (*ContentIDs, error) {
	sq, err := sqids.New(sqids.Options{MinLength: 8})
	if err != nil {
		return nil, fmt.Errorf("failed to init sqids: %w", err)
	}
	return &ContentIDs{sq: sq}, nil
}

func (c *ContentIDs) ID(_ int, original string, occurrence int) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(original))
	sum := h.Sum32()

	id, err := c.sq.Encode([]uint64{uint64(sum), uint64(occurrence)})
	if err != nil {
		return fmt.Sprintf("url-%08x-%d", sum, occurrence)
	}
	return "url-" + id
}

// PolicyByName resolves "positional" (or "") and "content".
func PolicyByName(name string) (IDPolicy, error) {
	switch name {
	case "", "positional":
		return PositionalIDs, nil
	case "content":
		return NewContentIDs()
	default:
		return nil, fmt.Errorf("unknown id policy %q", name)
	}
}
