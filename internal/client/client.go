// Package client implements the query user's side of the protocol:
// build the encrypted query, send it, receive the blinded sketch,
// decrypt it, and estimate the range count.
package client

import (
	"fmt"
	"io"
	"math/big"

	"github.com/jackson-maybe/PPRC/internal/bloom"
	"github.com/jackson-maybe/PPRC/internal/she"
	"github.com/jackson-maybe/PPRC/internal/sketch"
	"github.com/jackson-maybe/PPRC/internal/wire"
	"github.com/jackson-maybe/PPRC/internal/workerpool"
	"github.com/schollz/progressbar/v3"
)

// FPR is the fixed target false-positive rate for both range Bloom
// filters.
const FPR = 1e-4

// Range is an axis-aligned half-open 2-D query range [AX,BX) x [AY,BY).
type Range struct {
	AX, BX, AY, BY int
}

// Driver holds the client's secret key across the steps of one query.
// Progress gates a schollz/progressbar/v3 bar over the Bloom-filter
// bit-encryption fan-out; it is cosmetic and has no effect on the
// query itself.
type Driver struct {
	SK       *she.SecretKey
	Progress bool
}

// BuildQuery constructs the encrypted query payload for r.
//
// holder.Evaluate splits the received payload into two equal-length
// Bloom-filter sections at mbf=(len-3)/2, so bfx and bfy must come out
// the same length; that holds whenever r's x- and y-spans have equal
// width (the reference implementation's square ranges, and every
// scenario this module tests), and is checked explicitly below rather
// than left as a silent assumption.
func (d *Driver) BuildQuery(r Range) ([]*big.Int, error) {
	xs := intRange(r.AX, r.BX)
	ys := intRange(r.AY, r.BY)

	bfx, err := bloom.New(len(xs), FPR)
	if err != nil {
		return nil, fmt.Errorf("client: building x Bloom filter: %w", err)
	}
	for _, x := range xs {
		bfx.Insert(x)
	}
	bfy, err := bloom.New(len(ys), FPR)
	if err != nil {
		return nil, fmt.Errorf("client: building y Bloom filter: %w", err)
	}
	for _, y := range ys {
		bfy.Insert(y)
	}
	if bfx.Len() != bfy.Len() {
		return nil, fmt.Errorf("client: x and y Bloom filters have unequal length (%d vs %d); holder.Evaluate requires equal-width ranges", bfx.Len(), bfy.Len())
	}

	bits := make([]int, 0, bfx.Len()+bfy.Len())
	for i := 0; i < bfx.Len(); i++ {
		bits = append(bits, bfx.Bit(i))
	}
	for i := 0; i < bfy.Len(); i++ {
		bits = append(bits, bfy.Bit(i))
	}

	var bar *progressbar.ProgressBar
	if d.Progress {
		bar = progressbar.Default(int64(len(bits)), "encrypting query")
	}

	encrypted := workerpool.Run(bits, func(bit int) *big.Int {
		c, err := she.Encrypt(big.NewInt(int64(bit)), d.SK)
		if err != nil {
			panic(err) // bit is always 0 or 1, always < L for any valid key
		}
		if bar != nil {
			bar.Add(1)
		}
		return c
	})

	e0a, err := she.Encrypt(big.NewInt(0), d.SK)
	if err != nil {
		return nil, fmt.Errorf("client: encrypting blinding seed: %w", err)
	}
	e0b, err := she.Encrypt(big.NewInt(0), d.SK)
	if err != nil {
		return nil, fmt.Errorf("client: encrypting blinding seed: %w", err)
	}

	payload := append(encrypted, e0a, e0b, d.SK.N)
	return payload, nil
}

// RunQuery sends the query built from r over conn, receives the
// response, and returns the estimated count.
func (d *Driver) RunQuery(conn io.ReadWriter, r Range) (int, error) {
	query, err := d.BuildQuery(r)
	if err != nil {
		return 0, err
	}
	if err := wire.WriteVector(conn, query); err != nil {
		return 0, fmt.Errorf("client: sending query: %w", err)
	}

	resp, err := wire.ReadVector(conn)
	if err != nil {
		return 0, fmt.Errorf("client: reading response: %w", err)
	}

	values := make([]int64, len(resp))
	for i, c := range resp {
		values[i] = she.Decrypt(c, d.SK).Int64()
	}
	return sketch.Estimate(values), nil
}

func intRange(lo, hi int) []int {
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}
