package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Generator creates storage surrogate keys. Surrogates are bookkeeping
// values regenerated per insertion attempt; fixture identity never depends
// on them.
type Generator interface {
	NewFixtureID() (string, error)
}

type RandomGenerator struct{}

func NewRandomGenerator() *RandomGenerator {
	return &RandomGenerator{}
}

var surrogateSpace = big.NewInt(1000000)

// NewFixtureID returns a "fix_" prefixed zero-padded random surrogate,
// matching the default the fixtures table generates on its own.
func (g *RandomGenerator) NewFixtureID() (string, error) {
	n, err := rand.Int(rand.Reader, surrogateSpace)
	if err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return fmt.Sprintf("fix_%06d", n.Int64()), nil
}
