package id_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreitas/tally/internal/id"
)

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]struct{})

	for range 1000 {
		v := id.New()
		_, dup := seen[v.String()]
		assert.False(t, dup, "duplicate id %s", v)
		seen[v.String()] = struct{}{}
	}
}

func TestParse_RoundTrip(t *testing.T) {
	v := id.New()

	parsed, err := id.Parse(v.String())
	require.NoError(t, err)
	assert.Equal(t, v, parsed)

	_, err = id.Parse("not-an-id")
	assert.Error(t, err)
}
