// Package syntheticdata produces demo and benchmark datasets for the
// data holder. Loading records from a persistent data source remains
// out of scope, so cmd/pprc-holder always builds its Store from this
// package.
package syntheticdata

import "math/rand"

// Record is one holder-local (x, y) point.
type Record struct {
	X, Y int
}

// Progression generates providers shards of perProvider records each,
// following the reference dataset's construction: for provider p, the
// i-th record is (i+p, i+p), giving each provider a diagonal, mostly
// non-overlapping range. Returns one []Record per provider.
func Progression(providers, perProvider int) [][]Record {
	out := make([][]Record, providers)
	for p := 0; p < providers; p++ {
		shard := make([]Record, perProvider)
		for i := 0; i < perProvider; i++ {
			shard[i] = Record{X: i + p, Y: i + p}
		}
		out[p] = shard
	}
	return out
}

// Scatter generates n records: first exactly inRange records drawn
// uniformly inside [0,rangeSize)^2, then records drawn uniformly inside
// [rangeSize,universe)^2 until there are n, so tests know how many
// records fall in the range in advance. seed makes the
// output reproducible; this is a test fixture, never protocol
// randomness, so it deliberately does not use internal/randsrc.
func Scatter(n, inRange, rangeSize, universe int, seed int64) []Record {
	r := rand.New(rand.NewSource(seed))
	out := make([]Record, 0, n)
	for i := 0; i < inRange; i++ {
		out = append(out, Record{X: r.Intn(rangeSize), Y: r.Intn(rangeSize)})
	}
	for len(out) < n {
		x := rangeSize + r.Intn(universe-rangeSize)
		y := rangeSize + r.Intn(universe-rangeSize)
		out = append(out, Record{X: x, Y: y})
	}
	return out
}
