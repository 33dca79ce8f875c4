package client

import (
	"math/big"
	"testing"

	"github.com/jackson-maybe/PPRC/internal/she"
	"github.com/stretchr/testify/require"
)

func TestBuildQueryShape(t *testing.T) {
	sk, err := she.GenerateSecretKey(512, 64)
	require.NoError(t, err)
	d := &Driver{SK: sk}

	payload, err := d.BuildQuery(Range{AX: 0, BX: 10, AY: 0, BY: 10})
	require.NoError(t, err)

	// trailing element must be N in cleartext
	require.Equal(t, sk.N, payload[len(payload)-1])
}

func TestBuildQueryBitsDecryptToZeroOrOne(t *testing.T) {
	sk, err := she.GenerateSecretKey(512, 64)
	require.NoError(t, err)
	d := &Driver{SK: sk}

	payload, err := d.BuildQuery(Range{AX: 0, BX: 5, AY: 0, BY: 5})
	require.NoError(t, err)

	for _, c := range payload[:len(payload)-3] {
		v := she.Decrypt(c, sk)
		require.True(t, v.Cmp(big.NewInt(0)) == 0 || v.Cmp(big.NewInt(1)) == 0)
	}
}
