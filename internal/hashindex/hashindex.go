// Package hashindex provides the single seeded hash-to-bucket primitive
// shared by the Bloom filter and the Linear-Counting sketch.
package hashindex

import (
	"strconv"
	"strings"

	"github.com/spaolacci/murmur3"
)

// Index returns a value in [0, length) derived from key under seed.
// Callers on different parties MUST agree on key's exact construction
// (use KeyOne/KeyTwo) or their hashes will silently diverge.
func Index(key string, seed uint32, length uint32) uint32 {
	if length == 0 {
		panic("hashindex: length must be positive")
	}
	h := murmur3.Sum32WithSeed([]byte(key), seed)
	return h % length
}

// KeyOne builds the delimited key used by the Bloom filter: "<a>|<m>".
func KeyOne(a int, m int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(a))
	b.WriteByte('|')
	b.WriteString(strconv.Itoa(m))
	return b.String()
}

// KeyTwo builds the delimited key used by the Linear-Counting sketch:
// "<a>|<b>|<m>".
func KeyTwo(a, b, m int) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(a))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(b))
	sb.WriteByte('|')
	sb.WriteString(strconv.Itoa(m))
	return sb.String()
}
