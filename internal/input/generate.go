package input

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// DefaultGeneratedLength is used when no --length is given.
const DefaultGeneratedLength = 25

const (
	alnumChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	symbolChars = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

// Generate produces a random password of the given length, drawing each
// character uniformly from the charset with crypto/rand.
func Generate(length int, noSymbols bool) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("password length must be positive, got %d", length)
	}

	charset := alnumChars
	if !noSymbols {
		charset += symbolChars
	}

	max := big.NewInt(int64(len(charset)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to draw random characters: %w", err)
		}
		b.WriteByte(charset[n.Int64()])
	}

	return b.String(), nil
}
