package holder

import (
	"math/big"
	"testing"

	"github.com/jackson-maybe/PPRC/internal/bloom"
	"github.com/jackson-maybe/PPRC/internal/she"
	"github.com/jackson-maybe/PPRC/internal/sketch"
	"github.com/stretchr/testify/require"
)

func buildQuery(t *testing.T, sk *she.SecretKey, rangeX, rangeY []int) []*big.Int {
	t.Helper()
	bfx, err := bloom.New(len(rangeX), 0.0001)
	require.NoError(t, err)
	for _, x := range rangeX {
		bfx.Insert(x)
	}
	bfy, err := bloom.New(len(rangeY), 0.0001)
	require.NoError(t, err)
	for _, y := range rangeY {
		bfy.Insert(y)
	}

	var payload []*big.Int
	for i := 0; i < bfx.Len(); i++ {
		c, err := she.Encrypt(big.NewInt(int64(bfx.Bit(i))), sk)
		require.NoError(t, err)
		payload = append(payload, c)
	}
	for i := 0; i < bfy.Len(); i++ {
		c, err := she.Encrypt(big.NewInt(int64(bfy.Bit(i))), sk)
		require.NoError(t, err)
		payload = append(payload, c)
	}
	e0a, err := she.Encrypt(big.NewInt(0), sk)
	require.NoError(t, err)
	e0b, err := she.Encrypt(big.NewInt(0), sk)
	require.NoError(t, err)
	payload = append(payload, e0a, e0b, sk.N)
	return payload
}

func TestEvaluateRejectsShortPayload(t *testing.T) {
	st := NewStore(nil)
	_, err := Evaluate([]*big.Int{big.NewInt(1)}, st, nil, false)
	require.Error(t, err)
}

func TestEvaluateRejectsOddBloomSection(t *testing.T) {
	st := NewStore(nil)
	payload := []*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3), big.NewInt(4)}
	_, err := Evaluate(payload, st, nil, false)
	require.Error(t, err)
}

func TestEvaluateProducesInRangeIndicator(t *testing.T) {
	sk, err := she.GenerateSecretKey(512, 64)
	require.NoError(t, err)

	rangeVals := make([]int, 10)
	for i := range rangeVals {
		rangeVals[i] = i
	}
	payload := buildQuery(t, sk, rangeVals, rangeVals)

	records := []Record{{X: 5, Y: 5}, {X: 200, Y: 200}}
	st := NewStore(records)

	out, err := Evaluate(payload, st, nil, false)
	require.NoError(t, err)
	require.Len(t, out, S*sketch.MLC)

	zeroCount := 0
	for _, c := range out {
		if she.Decrypt(c, sk).Sign() == 0 {
			zeroCount++
		}
	}
	// Exactly one shard receives one in-range record, so at least one
	// bucket across all S shards must decrypt to a nonzero value.
	require.Less(t, zeroCount, S*sketch.MLC)
}
