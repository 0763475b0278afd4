package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReadable(t *testing.T) {
	gen, err := NewReadable(8)
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := gen()
		assert.Len(t, id, 8)
		for _, r := range id {
			assert.True(t, strings.ContainsRune(readableAlphabet, r), "unexpected rune %q", r)
		}
		seen[id] = true
	}
	assert.Greater(t, len(seen), 90)
}

func TestMustReadable_InvalidLength(t *testing.T) {
	assert.Panics(t, func() { MustReadable(0) })
}
