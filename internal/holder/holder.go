// Package holder implements the data-holder side of the protocol: it
// turns an incoming encrypted query into S concatenated encrypted
// Linear-Counting sketches, one per simulated provider, without ever
// decrypting anything.
package holder

import (
	"fmt"
	"log"
	"math/big"

	"github.com/RoaringBitmap/roaring/roaring64"
	"github.com/jackson-maybe/PPRC/internal/hashindex"
	"github.com/jackson-maybe/PPRC/internal/randsrc"
	"github.com/jackson-maybe/PPRC/internal/she"
	"github.com/jackson-maybe/PPRC/internal/sketch"
	"github.com/jackson-maybe/PPRC/internal/statsutil"
	"github.com/jackson-maybe/PPRC/internal/workerpool"
	"github.com/schollz/progressbar/v3"
)

// S is the fixed number of simulated providers per holder.
const S = 4

// bfK mirrors bloom.K without importing the bloom package, since the
// holder only ever consumes Bloom-filter bits, never builds a filter.
const bfK = 7

// Record is one local (x, y) data point.
type Record struct {
	X, Y int
}

// Store holds the holder's local records, already partitioned into S
// provider shards.
type Store struct {
	Shards [S][]Record
}

// NewStore partitions records into S contiguous shards of roughly
// equal size.
func NewStore(records []Record) *Store {
	var st Store
	n := len(records)
	for p := 0; p < S; p++ {
		lo := n * p / S
		hi := n * (p + 1) / S
		st.Shards[p] = records[lo:hi]
	}
	return &st
}

// Evaluate parses an incoming query payload and returns the flat
// S*MLC-length vector of encrypted sketches. A non-nil logger receives
// one diagnostic line per provider shard plus a cross-shard fill-rate
// summary; pass nil to suppress them (wired to the ambient "verbose"
// knob by cmd/pprc-holder). showProgress draws a per-record progress
// bar on stderr while the range indicators are computed.
func Evaluate(payload []*big.Int, st *Store, logger *log.Logger, showProgress bool) ([]*big.Int, error) {
	if len(payload) < 3 {
		return nil, fmt.Errorf("holder: query payload too short (%d elements)", len(payload))
	}
	rest := len(payload) - 3
	if rest%2 != 0 {
		return nil, fmt.Errorf("holder: query payload has odd Bloom-filter section length %d", rest)
	}
	mbf := rest / 2
	bfxEnc := payload[:mbf]
	bfyEnc := payload[mbf : 2*mbf]
	e0a := payload[2*mbf]
	e0b := payload[2*mbf+1]
	n := payload[2*mbf+2]

	out := make([]*big.Int, S*sketch.MLC)
	touchedCounts := make([]float64, S)

	for p := 0; p < S; p++ {
		shard := st.Shards[p]
		bucketStart := p * sketch.MLC

		touched := roaring64.New()
		buckets := make([]*big.Int, sketch.MLC)
		for t := 0; t < sketch.MLC; t++ {
			u := int64(randsrc.IntRange(1, 100))
			v := int64(randsrc.IntRange(1, 100))
			buckets[t] = she.Add(she.ScalarMul(u, e0a, n), she.ScalarMul(v, e0b, n), n)
		}

		var bar *progressbar.ProgressBar
		if showProgress {
			bar = progressbar.Default(int64(len(shard)), fmt.Sprintf("provider %d", p))
		}

		signs := workerpool.Run(shard, func(rec Record) *big.Int {
			result := rangeIndicator(rec, bfxEnc, bfyEnc, mbf, n)
			if bar != nil {
				bar.Add(1)
			}
			return result
		})

		for i, rec := range shard {
			t := int(hashindex.Index(hashindex.KeyTwo(rec.X, rec.Y, sketch.MLC), 0, uint32(sketch.MLC)))
			buckets[t] = she.Add(buckets[t], signs[i], n)
			touched.Add(uint64(t))
		}
		touchedCounts[p] = float64(touched.GetCardinality())

		if logger != nil {
			expected := statsutil.ExpectedFilledBuckets(float64(sketch.MLC), float64(len(shard)))
			logger.Printf("provider %d: touched=%d expected=%.1f\n", p, touched.GetCardinality(), expected)
		}

		copy(out[bucketStart:bucketStart+sketch.MLC], buckets)
	}

	if logger != nil {
		if mean, stddev, err := statsutil.FillRateSummary(touchedCounts); err == nil {
			logger.Printf("fill rate across %d providers: mean=%.1f stddev=%.1f\n", S, mean, stddev)
		}
	}

	return out, nil
}

// rangeIndicator computes E(1) if rec falls in both encoded ranges,
// E(0) otherwise, without ever decrypting.
func rangeIndicator(rec Record, bfxEnc, bfyEnc []*big.Int, mbf int, n *big.Int) *big.Int {
	signX := big.NewInt(1)
	keyX := hashindex.KeyOne(rec.X, mbf)
	for j := uint32(0); j < bfK; j++ {
		idx := hashindex.Index(keyX, j, uint32(mbf))
		signX = she.Mul(signX, bfxEnc[idx], n)
	}

	signY := big.NewInt(1)
	keyY := hashindex.KeyOne(rec.Y, mbf)
	for j := uint32(0); j < bfK; j++ {
		idx := hashindex.Index(keyY, j, uint32(mbf))
		signY = she.Mul(signY, bfyEnc[idx], n)
	}

	return she.Mul(signX, signY, n)
}
