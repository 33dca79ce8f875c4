// Package keystore persists a client SecretKey between process
// invocations, optionally encrypted under a passphrase. The formal
// multi-party key-generation ceremony remains out of scope; this is
// just at-rest storage for a key the client already has.
package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"
	"fmt"
	"math/big"
	"os"

	"github.com/jackson-maybe/PPRC/internal/randsrc"
	"github.com/jackson-maybe/PPRC/internal/she"
	"golang.org/x/crypto/blake2b"
)

// magicEncrypted marks a passphrase-encrypted keystore file, so Load
// can tell it apart from a plain JSON file.
const magicEncrypted = 0xE5

type wireKey struct {
	P, Q, L *big.Int
}

// Save writes sk to path. If passphrase is non-empty, the file is
// encrypted under AES-256-GCM with a key derived from passphrase via
// BLAKE2b, using a fresh random nonce on every call — unlike a
// key-derived nonce, which would repeat across saves of the same
// passphrase and break GCM's security.
func Save(path string, sk *she.SecretKey, passphrase []byte) error {
	raw, err := json.Marshal(wireKey{P: sk.P, Q: sk.Q, L: sk.L})
	if err != nil {
		return fmt.Errorf("keystore: marshal: %w", err)
	}

	if len(passphrase) == 0 {
		return os.WriteFile(path, raw, 0600)
	}

	aead, err := aeadFor(passphrase)
	if err != nil {
		return err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := randsrc.Reader.Read(nonce); err != nil {
		return fmt.Errorf("keystore: generating nonce: %w", err)
	}

	ciphertext := aead.Seal(nil, nonce, raw, nil)
	out := append([]byte{magicEncrypted}, nonce...)
	out = append(out, ciphertext...)
	return os.WriteFile(path, out, 0600)
}

// Load reads a SecretKey previously written by Save.
func Load(path string, passphrase []byte) (*she.SecretKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keystore: read: %w", err)
	}

	var raw []byte
	if len(data) > 0 && data[0] == magicEncrypted {
		aead, err := aeadFor(passphrase)
		if err != nil {
			return nil, err
		}
		nonceSize := aead.NonceSize()
		if len(data) < 1+nonceSize {
			return nil, fmt.Errorf("keystore: truncated file")
		}
		nonce := data[1 : 1+nonceSize]
		ciphertext := data[1+nonceSize:]
		raw, err = aead.Open(nil, nonce, ciphertext, nil)
		if err != nil {
			return nil, fmt.Errorf("keystore: decrypt (wrong passphrase?): %w", err)
		}
	} else {
		raw = data
	}

	var wk wireKey
	if err := json.Unmarshal(raw, &wk); err != nil {
		return nil, fmt.Errorf("keystore: unmarshal: %w", err)
	}
	return she.NewSecretKey(wk.P, wk.Q, wk.L)
}

func aeadFor(passphrase []byte) (cipher.AEAD, error) {
	key := blake2b.Sum256(append([]byte("pprc-keystore|"), passphrase...))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("keystore: aes cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
