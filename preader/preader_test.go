package preader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type readerFunc func() (string, error)

func (f readerFunc) ReadPassphrase() (string, error) {
	return f()
}

func TestConstReader(t *testing.T) {
	r := ConstReader("hunter2")
	phrase, err := r.ReadPassphrase()
	assert.NoError(t, err)
	assert.Equal(t, "hunter2", phrase)
}

func TestCachingReaderReadsUpstreamOnce(t *testing.T) {
	calls := 0
	counting := readerFunc(func() (string, error) {
		calls++
		return "cached-value", nil
	})

	cached := CachingReader{Upstream: counting}
	a, err := cached.ReadPassphrase()
	assert.NoError(t, err)
	b, err := cached.ReadPassphrase()
	assert.NoError(t, err)

	assert.Equal(t, "cached-value", a)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, calls)
}

func TestReadNewPassphraseRequiresMatch(t *testing.T) {
	_, err := ReadNewPassphrase(ConstReader("one"), ConstReader("two"))
	assert.ErrorIs(t, err, ErrPassphraseMismatch)
}

func TestReadNewPassphraseSucceedsOnMatch(t *testing.T) {
	phrase, err := ReadNewPassphrase(ConstReader("same"), ConstReader("same"))
	assert.NoError(t, err)
	assert.Equal(t, "same", phrase)
}
