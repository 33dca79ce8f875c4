package wire

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bigIntComparer = cmp.Comparer(func(a, b *big.Int) bool {
	return a.Cmp(b) == 0
})

func TestRoundTrip(t *testing.T) {
	in := []*big.Int{
		big.NewInt(0),
		big.NewInt(1),
		big.NewInt(255),
		big.NewInt(256),
		new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteVector(&buf, in))

	out, err := ReadVector(&buf)
	require.NoError(t, err)

	if diff := cmp.Diff(in, out, bigIntComparer); diff != "" {
		t.Fatalf("round trip mismatch:\n%s", diff)
	}
}

func TestGoldenBytes(t *testing.T) {
	in := []*big.Int{big.NewInt(0), big.NewInt(1), big.NewInt(255), big.NewInt(256)}
	var buf bytes.Buffer
	require.NoError(t, WriteVector(&buf, in))

	want := []byte{
		// total length = 4*4 (lengths) + 0+1+1+2 (values) = 20, little-endian
		20, 0, 0, 0,
		// 0 -> len 0
		0, 0, 0, 0,
		// 1 -> len 1, value 0x01
		1, 0, 0, 0, 0x01,
		// 255 -> len 1, value 0xff
		1, 0, 0, 0, 0xff,
		// 256 -> len 2, value 0x01 0x00 (big-endian)
		2, 0, 0, 0, 0x01, 0x00,
	}
	assert.Equal(t, want, buf.Bytes())
}

func TestReadVectorRejectsOversizedFrame(t *testing.T) {
	var buf bytes.Buffer
	over := make([]byte, 4)
	over[0], over[1], over[2], over[3] = 0xff, 0xff, 0xff, 0xff
	buf.Write(over)

	_, err := ReadVector(&buf)
	assert.ErrorIs(t, err, ErrFraming)
}

func TestReadVectorRejectsOverrunningRecord(t *testing.T) {
	var buf bytes.Buffer
	// total length 4, one record claiming length 100 with no data behind it
	buf.Write([]byte{4, 0, 0, 0})
	buf.Write([]byte{100, 0, 0, 0})

	_, err := ReadVector(&buf)
	assert.ErrorIs(t, err, ErrFraming)
}
