// Package randsrc is the single process-wide randomness source for
// every blinding, shuffling, and noise-sampling operation in the
// protocol. It is seeded once from OS entropy and is never reseeded
// per call — there is deliberately no Seed function here.
package randsrc

import (
	"crypto/rand"
	"math/big"

	"lukechampine.com/frand"
)

// Reader is the process-wide entropy source. Call sites that need a
// plain io.Reader (such as crypto/rand.Prime) use this directly.
var Reader = frand.Reader

// Below2Pow returns a uniformly random nonnegative integer strictly
// below 2^k.
func Below2Pow(k int) *big.Int {
	bound := new(big.Int).Lsh(big.NewInt(1), uint(k))
	n, err := rand.Int(Reader, bound)
	if err != nil {
		panic("randsrc: entropy source failed: " + err.Error())
	}
	return n
}

// IntRange returns a uniformly random int in [lo, hi] inclusive.
func IntRange(lo, hi int) int {
	if hi < lo {
		panic("randsrc: IntRange requires hi >= lo")
	}
	span := int64(hi-lo) + 1
	n, err := rand.Int(Reader, big.NewInt(span))
	if err != nil {
		panic("randsrc: entropy source failed: " + err.Error())
	}
	return lo + int(n.Int64())
}

// Shuffle permutes n items in place via swap, using the process RNG.
func Shuffle(n int, swap func(i, j int)) {
	frand.Shuffle(n, swap)
}
