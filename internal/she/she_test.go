package she

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) *SecretKey {
	t.Helper()
	sk, err := GenerateSecretKey(512, 64)
	require.NoError(t, err)
	return sk
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	sk := testKey(t)
	for _, m := range []int64{0, 1, 2, 100, 12345} {
		c, err := Encrypt(big.NewInt(m), sk)
		require.NoError(t, err)
		got := Decrypt(c, sk)
		assert.Zero(t, got.Cmp(big.NewInt(m)))
	}
}

func TestAdditiveHomomorphism(t *testing.T) {
	sk := testKey(t)
	c1, err := Encrypt(big.NewInt(5), sk)
	require.NoError(t, err)
	c2, err := Encrypt(big.NewInt(7), sk)
	require.NoError(t, err)

	sum := Add(c1, c2, sk.N)
	assert.Equal(t, big.NewInt(12), Decrypt(sum, sk))
}

func TestMultiplicativeHomomorphism(t *testing.T) {
	sk := testKey(t)
	c1, err := Encrypt(big.NewInt(6), sk)
	require.NoError(t, err)
	c2, err := Encrypt(big.NewInt(7), sk)
	require.NoError(t, err)

	prod := Mul(c1, c2, sk.N)
	assert.Equal(t, big.NewInt(42), Decrypt(prod, sk))
}

func TestScalarMul(t *testing.T) {
	sk := testKey(t)
	c, err := Encrypt(big.NewInt(3), sk)
	require.NoError(t, err)

	scaled := ScalarMul(10, c, sk.N)
	assert.Equal(t, big.NewInt(30), Decrypt(scaled, sk))
}

func TestNewSecretKeyRejectsOversizedL(t *testing.T) {
	sk := testKey(t)
	_, err := NewSecretKey(sk.P, sk.Q, sk.P)
	assert.Error(t, err)
}

func TestEncryptRejectsOutOfRangePlaintext(t *testing.T) {
	sk := testKey(t)
	_, err := Encrypt(sk.L, sk)
	assert.Error(t, err)
}
