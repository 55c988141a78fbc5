package searcher

import (
	"github.com/bszcz/mt19937_64"
	"golang.org/x/exp/rand"
)

// mtSource adapts a 64-bit Mersenne Twister to rand.Source.
type mtSource struct {
	mt *mt19937_64.MT
}

// NewSource returns a Mersenne Twister source seeded with seed.
func NewSource(seed uint64) rand.Source {
	mt := mt19937_64.New()
	mt.Seed(int64(seed))
	return &mtSource{mt: mt}
}

func (s *mtSource) Uint64() uint64 {
	return s.mt.Uint64()
}

func (s *mtSource) Seed(seed uint64) {
	s.mt.Seed(int64(seed))
}

// NewRand is a rand.Rand over NewSource.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(NewSource(seed))
}
