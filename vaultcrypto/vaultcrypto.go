// Package vaultcrypto implements the vault's authenticated encryption and
// key derivation.
//
// The format used is guaranteed to never change: a version change would
// come in the form of a version byte and a new code path, never a silent
// reinterpretation of the envelope bytes below. See DESIGN.md for why the
// KDF's single iteration is a preserved weakness, not a bug.
package vaultcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// kdfSalt is fixed and exact: 25 ASCII bytes, no terminator. Changing
	// it, or the iteration count below, breaks every existing vault file.
	kdfSalt       = "PassKeeper key generation"
	kdfIterations = 1
	keyLen        = 32

	ivLen  = 12
	tagLen = 16
)

// Key is derived symmetric key material of the AEAD's key length.
type Key [keyLen]byte

// DeriveKey derives the vault's AES-256-GCM key from a passphrase using
// PBKDF2-HMAC-SHA256 with a fixed salt and a single iteration. One
// iteration of PBKDF2 is cryptographically inadequate by modern
// standards; it is kept because existing vault files depend on it
// bit-for-bit (spec §9 records this as an accepted open weakness rather
// than something to silently harden).
func DeriveKey(passphrase string) Key {
	derived := pbkdf2.Key([]byte(passphrase), []byte(kdfSalt), kdfIterations, keyLen, sha256.New)
	var key Key
	copy(key[:], derived)
	return key
}

// ErrDecryptFailed is the single opaque outcome for every decryption
// failure: wrong passphrase, corrupted file, and tag mismatch are not
// distinguished, to avoid handing an attacker a decryption oracle.
var ErrDecryptFailed = errors.New("vaultcrypto: wrong password or file corruption")

// Encrypt seals payload under key, returning ciphertext ‖ iv ‖ tag: the
// payload encrypted in place (same length), a random 12-byte IV, and the
// 16-byte GCM authentication tag. There is no associated data.
func Encrypt(payload []byte, key Key) ([]byte, error) {
	var iv [ivLen]byte
	if _, err := io.ReadFull(rand.Reader, iv[:]); err != nil {
		return nil, err
	}
	return encryptWithIV(payload, key, iv)
}

func encryptWithIV(payload []byte, key Key, iv [ivLen]byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	sealed := gcm.Seal(nil, iv[:], payload, nil) // ciphertext ‖ tag
	ctLen := len(payload)

	out := make([]byte, 0, ctLen+ivLen+tagLen)
	out = append(out, sealed[:ctLen]...)
	out = append(out, iv[:]...)
	out = append(out, sealed[ctLen:]...)
	return out, nil
}

// Decrypt opens an envelope produced by Encrypt. Any failure — a short
// envelope, a bad key, or a tampered ciphertext/tag — collapses to the
// single ErrDecryptFailed outcome.
func Decrypt(envelope []byte, key Key) ([]byte, error) {
	if len(envelope) <= ivLen+tagLen {
		return nil, ErrDecryptFailed
	}

	ctLen := len(envelope) - ivLen - tagLen
	ciphertext := envelope[:ctLen]
	iv := envelope[ctLen : ctLen+ivLen]
	tag := envelope[ctLen+ivLen:]

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, ErrDecryptFailed
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, ErrDecryptFailed
	}

	sealed := make([]byte, 0, ctLen+tagLen)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, ErrDecryptFailed
	}
	return plaintext, nil
}
