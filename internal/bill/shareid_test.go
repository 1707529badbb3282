package bill_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/billsnap/billsnap/internal/bill"
)

const shareAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

func TestNewShareID_Format(t *testing.T) {
	for i := 0; i < 200; i++ {
		id, err := bill.NewShareID()
		require.NoError(t, err)
		assert.Len(t, id, 8)

		for _, c := range id {
			assert.True(t, strings.ContainsRune(shareAlphabet, c), "unexpected character %q in %q", c, id)
		}
	}
}

func TestNewShareID_NoAmbiguousCharacters(t *testing.T) {
	for i := 0; i < 200; i++ {
		id, err := bill.NewShareID()
		require.NoError(t, err)
		assert.NotContains(t, id, "I")
		assert.NotContains(t, id, "O")
		assert.NotContains(t, id, "l")
		assert.NotContains(t, id, "0")
		assert.NotContains(t, id, "1")
	}
}

func TestNewShareID_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)

	for i := 0; i < 1000; i++ {
		id, err := bill.NewShareID()
		require.NoError(t, err)

		_, dup := seen[id]
		require.False(t, dup, "duplicate share id %q after %d draws", id, i)

		seen[id] = struct{}{}
	}
}
