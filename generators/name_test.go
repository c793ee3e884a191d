package generators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halvard/passkeeper/entropy"
)

// buildTrace assembles a buffer from a sequence of (value, bitWidth) draws,
// MSB-first, matching entropy.Pool's bit order, zero-padded to 32 bytes.
func buildTrace(t *testing.T, draws []struct {
	v     uint32
	width int
}) []byte {
	t.Helper()
	var bits []byte
	for _, d := range draws {
		for i := d.width - 1; i >= 0; i-- {
			bits = append(bits, byte((d.v>>uint(i))&1))
		}
	}
	buf := make([]byte, 32)
	for i, b := range bits {
		if b == 1 {
			buf[i/8] |= 1 << uint(7-i%8)
		}
	}
	return buf
}

func TestMakeNameSingleSyllableDeterministic(t *testing.T) {
	draws := []struct {
		v     uint32
		width int
	}{
		{0, 24}, // consonant table -> "n"
		{5, 4},  // t: no onset drop (>=4), no dup/extra (0<t<12)
		{0, 24}, // vowel table -> "e"
		{1, 4},  // tv: no duplication
		{0, 24}, // word ending -> ""
	}
	pool := entropy.NewSeededForTest(buildTrace(t, draws))

	name, err := MakeName(pool, 1, 1)
	assert.NoError(t, err)
	assert.Equal(t, "ne", name)
}

func TestMakeNameDeterministicAcrossRuns(t *testing.T) {
	buf := make([]byte, 32)
	for i := range buf {
		buf[i] = byte(i * 7)
	}

	a, errA := MakeName(entropy.NewSeededForTest(buf), 2, 4)
	b, errB := MakeName(entropy.NewSeededForTest(buf), 2, 4)
	assert.NoError(t, errA)
	assert.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestMakeNameSourceFailureReturnsPrefix(t *testing.T) {
	pool := entropy.NewFailingForTest()
	name, err := MakeName(pool, 2, 5)
	assert.NoError(t, err)
	assert.Equal(t, "", name)
}

func TestMakeNameNonEmptyForTypicalRange(t *testing.T) {
	pool := entropy.New()
	for i := 0; i < 20; i++ {
		name, err := MakeName(pool, 2, 5)
		assert.NoError(t, err)
		assert.NotEmpty(t, name)
	}
}
