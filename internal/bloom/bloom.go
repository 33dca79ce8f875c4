// Package bloom implements the range-encoding Bloom filter used to
// represent a query range without revealing its members.
package bloom

import (
	"fmt"
	"math"

	"github.com/jackson-maybe/PPRC/internal/hashindex"
)

// K is the fixed number of hash functions. Changing it breaks cross-party
// agreement with any peer still using the protocol default.
const K = 7

// Filter is a plain value: callers build one per query and let it go out
// of scope when done, with no separate destroy step.
type Filter struct {
	bits []byte
	m    int
}

// New builds an empty filter sized for n expected elements at the given
// false-positive rate.
func New(n int, fpr float64) (*Filter, error) {
	if n <= 0 {
		return nil, fmt.Errorf("bloom: n must be positive, got %d", n)
	}
	if fpr <= 0 || fpr >= 1 {
		return nil, fmt.Errorf("bloom: fpr must be in (0,1), got %v", fpr)
	}
	m := size(n, fpr)
	return &Filter{bits: make([]byte, m/8), m: m}, nil
}

func size(n int, fpr float64) int {
	m := int(math.Ceil(-float64(n) * math.Log(fpr) / (math.Ln2 * math.Ln2)))
	if m <= 0 {
		m = 8
	}
	return (m + 7) / 8 * 8
}

// Len returns the bit-array length M.
func (f *Filter) Len() int { return f.m }

// K returns the hash-function count.
func (f *Filter) K() int { return K }

// Insert sets all K bits derived from x.
func (f *Filter) Insert(x int) {
	key := hashindex.KeyOne(x, f.m)
	for i := uint32(0); i < K; i++ {
		idx := hashindex.Index(key, i, uint32(f.m))
		f.bits[idx/8] |= 1 << (idx % 8)
	}
}

// Contains reports whether every bit derived from x is set. False
// positives are possible; false negatives are not.
func (f *Filter) Contains(x int) bool {
	key := hashindex.KeyOne(x, f.m)
	for i := uint32(0); i < K; i++ {
		idx := hashindex.Index(key, i, uint32(f.m))
		if f.bits[idx/8]&(1<<(idx%8)) == 0 {
			return false
		}
	}
	return true
}

// Bit returns the raw bit at position i, used by the client to build the
// per-bit ciphertext vector sent on the wire.
func (f *Filter) Bit(i int) int {
	if f.bits[i/8]&(1<<(i%8)) != 0 {
		return 1
	}
	return 0
}
