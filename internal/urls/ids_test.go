package urls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionalIDs_RemapOnEdit(t *testing.T) {
	before := Extract("https://a.com https://b.com")
	after := Extract("https://aa.com https://b.com")

	// same url, same index: length of a preceding entry does not matter
	assert.Equal(t, before[1].ID, after[1].ID)
	// edited entry gets a new id
	assert.NotEqual(t, before[0].ID, after[0].ID)

	shifted := Extract("https://new.com https://a.com https://b.com")
	assert.NotEqual(t, before[0].ID, shifted[1].ID, "positional ids follow the index, not the content")
}

func TestContentIDs_StableAcrossEdits(t *testing.T) {
	policy, err := NewContentIDs()
	require.NoError(t, err)

	before := ExtractWith("https://a.com https://b.com https://a.com", policy)
	after := ExtractWith("https://new.com https://a.com https://b.com https://a.com", policy)

	require.Len(t, before, 3)
	require.Len(t, after, 4)
	assert.Equal(t, before[0].ID, after[1].ID)
	assert.Equal(t, before[1].ID, after[2].ID)
	assert.Equal(t, before[2].ID, after[3].ID)
	assert.NotEqual(t, before[0].ID, before[2].ID, "repeats are told apart by occurrence")
}

func TestPolicyByName(t *testing.T) {
	for _, name := range []string{"", "positional", "content"} {
		p, err := PolicyByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, p)
	}

	_, err := PolicyByName("random")
	assert.Error(t, err)
}
