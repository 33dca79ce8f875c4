// Package she implements the somewhat-homomorphic encryption scheme at
// the core of the protocol: a bounded-depth additive-and-multiplicative
// scheme over a public modulus N, following the classic "noisy Chinese
// remainder" construction.
package she

import (
	crand "crypto/rand"
	"fmt"
	"math/big"

	"github.com/jackson-maybe/PPRC/internal/randsrc"
)

// K2 and K0 are the fixed noise bit-widths: K2 bits of message-side
// randomness, K0 bits of modulus-side randomness. Both are protocol
// constants, never negotiated.
const (
	K2 = 80
	K0 = 4096
)

// SecretKey holds the scheme's private parameters (P, Q, L) plus the
// derived public modulus N. Only the client constructs or holds one.
type SecretKey struct {
	P, Q, L, N *big.Int
}

// NewSecretKey validates and wraps (p, q, l) into a SecretKey. It does
// not generate fresh primes; see GenerateSecretKey for that.
func NewSecretKey(p, q, l *big.Int) (*SecretKey, error) {
	if p.Sign() <= 0 || q.Sign() <= 0 || l.Sign() <= 0 {
		return nil, fmt.Errorf("she: p, q, l must be positive")
	}
	g := new(big.Int).GCD(nil, nil, l, p)
	if g.Cmp(one) != 0 {
		return nil, fmt.Errorf("she: gcd(L,P) must be 1")
	}
	if l.BitLen()+K2+1 >= p.BitLen() {
		return nil, fmt.Errorf("she: L too large relative to P for the fixed noise bound (L.BitLen=%d, K2=%d, P.BitLen=%d)", l.BitLen(), K2, p.BitLen())
	}
	n := new(big.Int).Mul(p, q)
	return &SecretKey{P: p, Q: q, L: l, N: n}, nil
}

// GenerateSecretKey samples a fresh key with P, Q of pBits bits and L of
// lBits bits, satisfying NewSecretKey's invariants. It is a local
// convenience sampler, not a multi-party key-generation ceremony.
func GenerateSecretKey(pBits, lBits int) (*SecretKey, error) {
	if lBits+K2+1 >= pBits {
		return nil, fmt.Errorf("she: lBits=%d leaves no room under pBits=%d given K2=%d", lBits, pBits, K2)
	}
	for attempt := 0; attempt < 64; attempt++ {
		p, err := randPrime(pBits)
		if err != nil {
			return nil, err
		}
		q, err := randPrime(pBits)
		if err != nil {
			return nil, err
		}
		l, err := randPrime(lBits)
		if err != nil {
			return nil, err
		}
		sk, err := NewSecretKey(p, q, l)
		if err == nil {
			return sk, nil
		}
	}
	return nil, fmt.Errorf("she: failed to sample a valid key after 64 attempts")
}

var one = big.NewInt(1)

func randPrime(bits int) (*big.Int, error) {
	return crand.Prime(randsrc.Reader, bits)
}

// Encrypt returns a ciphertext for m under sk. m must satisfy 0 <= m < L.
func Encrypt(m *big.Int, sk *SecretKey) (*big.Int, error) {
	if m.Sign() < 0 || m.Cmp(sk.L) >= 0 {
		return nil, fmt.Errorf("she: plaintext out of range [0,L)")
	}
	r := randsrc.Below2Pow(K2)
	rPrime := randsrc.Below2Pow(K0)

	rL := new(big.Int).Mul(r, sk.L)
	rL.Add(rL, m)

	rpP := new(big.Int).Mul(rPrime, sk.P)
	rpP.Add(rpP, one)

	c := new(big.Int).Mul(rL, rpP)
	c.Mod(c, sk.N)
	return c, nil
}

// Decrypt recovers the plaintext a ciphertext was built from.
func Decrypt(c *big.Int, sk *SecretKey) *big.Int {
	m := new(big.Int).Mod(c, sk.P)
	m.Mod(m, sk.L)
	return m
}

// Add homomorphically adds two ciphertexts under modulus n.
func Add(c1, c2, n *big.Int) *big.Int {
	c := new(big.Int).Add(c1, c2)
	c.Mod(c, n)
	return c
}

// Mul homomorphically multiplies two ciphertexts under modulus n.
func Mul(c1, c2, n *big.Int) *big.Int {
	c := new(big.Int).Mul(c1, c2)
	c.Mod(c, n)
	return c
}

// ScalarMul homomorphically scales a ciphertext by a small public
// nonnegative constant a under modulus n.
func ScalarMul(a int64, c, n *big.Int) *big.Int {
	r := new(big.Int).Mul(c, big.NewInt(a))
	r.Mod(r, n)
	return r
}
