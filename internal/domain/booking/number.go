package booking

import (
	"crypto/rand"
	"encoding/base32"
	"io"

	"freight-core/internal/pkg/clock"
	"freight-core/internal/pkg/errs"
)

const (
	numberPrefix     = "BK"
	numberTimeLayout = "20060102150405"
	numberSuffixLen  = 6
)

// NumberGenerator produces human-readable booking numbers. Uniqueness is
// enforced by the store, not by the generator.
type NumberGenerator interface {
	Next() (string, error)
}

type TimeRandomNumberGenerator struct {
	clock  clock.Clock
	random io.Reader
}

func NewTimeRandomNumberGenerator(clk clock.Clock, random io.Reader) *TimeRandomNumberGenerator {
	if random == nil {
		random = rand.Reader
	}
	return &TimeRandomNumberGenerator{clock: clk, random: random}
}

func NewDefaultNumberGenerator(clk clock.Clock) NumberGenerator {
	return NewTimeRandomNumberGenerator(clk, rand.Reader)
}

func (g *TimeRandomNumberGenerator) Next() (string, error) {
	buf := make([]byte, 5)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", errs.Wrap(err, "read booking number entropy")
	}
	suffix := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf)
	return numberPrefix + g.clock.Now().UTC().Format(numberTimeLayout) + suffix[:numberSuffixLen], nil
}
