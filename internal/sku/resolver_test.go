package sku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDefaultTable(t *testing.T) {
	r := NewResolver(DefaultMappings())

	match, ok := r.Resolve("FIRE24XYZ")
	require.True(t, ok)
	assert.Equal(t, "Fire", match.Model)
	assert.Equal(t, "24pin", match.Variant)

	match, ok = r.Resolve("ice28-a")
	require.True(t, ok)
	assert.Equal(t, "Ice", match.Model)
	assert.Equal(t, "28pin", match.Variant)
}

func TestResolveNoMatch(t *testing.T) {
	r := NewResolver(DefaultMappings())

	// Too short to match any configured prefix.
	_, ok := r.Resolve("fire2")
	assert.False(t, ok)

	_, ok = r.Resolve("")
	assert.False(t, ok)

	_, ok = r.Resolve("unknown-sku")
	assert.False(t, ok)
}

func TestResolveCaseInsensitive(t *testing.T) {
	r := NewResolver(DefaultMappings())

	for _, code := range []string{"fire28", "FIRE28", "FiRe28-rev2"} {
		match, ok := r.Resolve(code)
		require.True(t, ok, "expected %q to resolve", code)
		assert.Equal(t, "Fire", match.Model)
		assert.Equal(t, "28pin", match.Variant)
	}
}

func TestResolveDeclarationOrderWins(t *testing.T) {
	// With overlapping prefixes, the first declared match takes priority.
	r := NewResolver([]Mapping{
		{Prefix: "fire24", Model: "Fire", Variant: "24pin"},
		{Prefix: "fire2", Model: "Fire", Variant: "legacy"},
	})

	match, ok := r.Resolve("fire24xyz")
	require.True(t, ok)
	assert.Equal(t, "24pin", match.Variant)

	match, ok = r.Resolve("fire25")
	require.True(t, ok)
	assert.Equal(t, "legacy", match.Variant)
}
