// Package aggregator implements the mediating party: it relays the
// client's query to a holder, homomorphically sums the returned
// sketches across providers, blinds each bucket, and shuffles the
// result before returning it to the client. It never holds a secret
// key.
package aggregator

import (
	"fmt"
	"io"
	"math/big"

	"github.com/jackson-maybe/PPRC/internal/randsrc"
	"github.com/jackson-maybe/PPRC/internal/she"
	"github.com/jackson-maybe/PPRC/internal/wire"
)

// S must match the holder's provider count. It is a protocol constant,
// not negotiated at runtime.
const S = 4

// Run executes one full session: read the client's query from
// clientConn, forward it to holderConn, read back the holder's
// sketches, aggregate/blind/shuffle, and write the result to
// clientConn.
func Run(clientConn io.ReadWriter, holderConn io.ReadWriter) error {
	query, err := wire.ReadVector(clientConn)
	if err != nil {
		return fmt.Errorf("aggregator: reading client query: %w", err)
	}
	if len(query) < 3 {
		return fmt.Errorf("aggregator: client query too short (%d elements)", len(query))
	}
	n := query[len(query)-1]

	if err := wire.WriteVector(holderConn, query); err != nil {
		return fmt.Errorf("aggregator: forwarding query to holder: %w", err)
	}

	holderResp, err := wire.ReadVector(holderConn)
	if err != nil {
		return fmt.Errorf("aggregator: reading holder response: %w", err)
	}
	if len(holderResp) == 0 || len(holderResp)%S != 0 {
		return fmt.Errorf("aggregator: holder response length %d is not a multiple of S=%d", len(holderResp), S)
	}

	result, err := Aggregate(holderResp, n)
	if err != nil {
		return fmt.Errorf("aggregator: aggregating sketches: %w", err)
	}
	Blind(result, n)
	Shuffle(result)

	if err := wire.WriteVector(clientConn, result); err != nil {
		return fmt.Errorf("aggregator: sending result to client: %w", err)
	}
	return nil
}

// Aggregate sums S contiguous sketches of equal length into one.
func Aggregate(flat []*big.Int, n *big.Int) ([]*big.Int, error) {
	mlc := len(flat) / S
	if mlc == 0 {
		return nil, fmt.Errorf("aggregator: empty sketch")
	}
	agg := make([]*big.Int, mlc)
	for t := 0; t < mlc; t++ {
		agg[t] = big.NewInt(0)
	}
	for p := 0; p < S; p++ {
		base := p * mlc
		for t := 0; t < mlc; t++ {
			agg[t] = she.Add(agg[t], flat[base+t], n)
		}
	}
	return agg, nil
}

// Blind scalar-multiplies every bucket by a fresh U{1,...,100} draw,
// in place. This preserves whether a bucket decrypts to zero, which
// is all the Linear-Counting estimator needs, while masking the exact
// magnitude of any real contribution. See DESIGN.md for the accepted
// residual leakage.
func Blind(buckets []*big.Int, n *big.Int) {
	for i, c := range buckets {
		r := int64(randsrc.IntRange(1, 100))
		buckets[i] = she.ScalarMul(r, c, n)
	}
}

// Shuffle permutes buckets in place using the process-wide RNG. The
// shuffle's randomness is the one step in the whole protocol that must
// never be deterministic in production.
func Shuffle(buckets []*big.Int) {
	randsrc.Shuffle(len(buckets), func(i, j int) {
		buckets[i], buckets[j] = buckets[j], buckets[i]
	})
}
