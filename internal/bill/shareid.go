package bill

import (
	"crypto/rand"
	"fmt"
)

// shareAlphabet excludes visually ambiguous characters (I, O, l, 0, 1) so
// tokens survive being read aloud or retyped from a screenshot.
const shareAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

const shareIDLength = 8

// NewShareID generates a public share token for a bill. Uniqueness is
// enforced by the store's unique constraint; callers retry on collision.
func NewShareID() (string, error) {
	buf := make([]byte, shareIDLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating share id: %w", err)
	}

	id := make([]byte, shareIDLength)
	for i, b := range buf {
		id[i] = shareAlphabet[int(b)%len(shareAlphabet)]
	}

	return string(id), nil
}
