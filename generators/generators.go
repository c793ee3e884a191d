// Package generators implements the vault's entropy-backed value
// generators: uniform integers, PINs, alphanumeric passwords, hex keys,
// and an English-phonotactic nickname generator.
//
// Every generator drains the shared entropy.Pool passed to it; none of
// them touch the CSPRNG directly.
package generators

import (
	"fmt"
	"strings"

	"github.com/halvard/passkeeper/entropy"
)

// passwordAlphabet is fixed and bit-exact: letters that read like digits
// (I, O, l, o) are excluded, and the final eight symbols are punctuation
// chosen to survive common password policies.
const passwordAlphabet = "ACDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz0123456789#*?:+=_"

const hexAlphabet = "0123456789abcdef"

// MakeNumber draws a u32 uniformly in [0, modulo). It draws 64 bits (as
// two 32-bit pool draws) and reduces modulo `modulo`; the 64-bit width
// keeps the modulo bias below 2^-32 for any modulo <= 2^32.
func MakeNumber(pool *entropy.Pool, modulo uint32) (uint32, error) {
	if modulo == 0 {
		return 0, fmt.Errorf("generators: modulo must be positive")
	}
	hi, err := pool.DrawBits(32)
	if err != nil {
		return 0, err
	}
	lo, err := pool.DrawBits(32)
	if err != nil {
		return 0, err
	}
	wide := (uint64(hi) << 32) | uint64(lo)
	return uint32(wide % uint64(modulo)), nil
}

// MakePIN returns a decimal string of exactly `length` digits, generated
// in blocks of 4 by drawing a 16-bit value and reducing modulo 10000 (one
// reduction per block), zero-padding each block, and truncating the tail.
func MakePIN(pool *entropy.Pool, length int) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("generators: length must be non-negative")
	}
	var sb strings.Builder
	for sb.Len() < length {
		v, err := pool.DrawBits(16)
		if err != nil {
			return "", err
		}
		block := v % 10000
		fmt.Fprintf(&sb, "%04d", block)
	}
	return sb.String()[:length], nil
}

// MakePassword returns a string of `length` characters drawn from the
// 64-symbol passwordAlphabet, 6 bits per character.
func MakePassword(pool *entropy.Pool, length int) (string, error) {
	if length < 0 {
		return "", fmt.Errorf("generators: length must be non-negative")
	}
	buf := make([]byte, length)
	for i := 0; i < length; i++ {
		v, err := pool.DrawBits(6)
		if err != nil {
			return "", err
		}
		buf[i] = passwordAlphabet[v]
	}
	return string(buf), nil
}

// MakeHexBlock returns a lowercase hex string of length 2*nBytes. For each
// byte, 8 bits are drawn and the low nibble is emitted before the high
// nibble; this nibble order is a compatibility point with the reference
// CLI output, not a cryptographic one, and reimplementations must match
// it exactly.
func MakeHexBlock(pool *entropy.Pool, nBytes int) (string, error) {
	if nBytes < 0 {
		return "", fmt.Errorf("generators: nBytes must be non-negative")
	}
	buf := make([]byte, 0, nBytes*2)
	for i := 0; i < nBytes; i++ {
		v, err := pool.DrawBits(8)
		if err != nil {
			return "", err
		}
		lo := v & 0xF
		hi := (v >> 4) & 0xF
		buf = append(buf, hexAlphabet[lo], hexAlphabet[hi])
	}
	return string(buf), nil
}
