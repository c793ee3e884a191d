// Package preader implements master-passphrase acquisition for the vault
// CLI: reading from a terminal when one is attached, a stdin fallback
// otherwise, a caching decorator for "ask once, reuse" semantics, and a
// read-twice-and-compare helper for the new/chpass flows.
package preader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

// Reader reads a master passphrase from the user.
type Reader interface {
	ReadPassphrase() (string, error)
}

// TerminalReader prompts on stderr and reads without echo when stdin is a
// terminal; otherwise it falls back to reading stdin to completion, for
// scripted invocations and tests.
type TerminalReader struct {
	Prompt string
}

func (r *TerminalReader) prompt() string {
	if r.Prompt != "" {
		return r.Prompt
	}
	return "Passphrase (passkeeper): "
}

// ReadPassphrase implements Reader.
func (r *TerminalReader) ReadPassphrase() (string, error) {
	if terminal.IsTerminal(0) {
		if _, err := fmt.Fprint(os.Stderr, r.prompt()); err != nil {
			return "", err
		}
		phrase, err := terminal.ReadPassword(0)
		if err != nil {
			return "", fmt.Errorf("failure reading passphrase: %s", err)
		}
		return string(phrase), nil
	}

	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return "", fmt.Errorf("failure reading passphrase from stdin: %s", err)
	}
	return string(data), nil
}

// ConstReader returns a fixed passphrase; for tests only.
type ConstReader string

// ReadPassphrase implements Reader.
func (r ConstReader) ReadPassphrase() (string, error) {
	return string(r), nil
}

// CachingReader wraps a Reader, reading the upstream passphrase at most
// once and returning the cached value on subsequent calls. Useful for
// flows (like chpass) that need the same passphrase for more than one
// operation without re-prompting.
type CachingReader struct {
	Upstream Reader
	cached   string
	has      bool
}

// ReadPassphrase implements Reader.
func (r *CachingReader) ReadPassphrase() (string, error) {
	if !r.has {
		phrase, err := r.Upstream.ReadPassphrase()
		if err != nil {
			return "", err
		}
		r.cached = phrase
		r.has = true
	}
	return r.cached, nil
}

// ErrPassphraseMismatch is returned by ReadNewPassphrase when the two
// entries the user typed don't match.
var ErrPassphraseMismatch = errors.New("preader: passphrases did not match")

// ReadNewPassphrase reads a passphrase twice from upstream (prompting
// "again" the second time, if upstream is a *TerminalReader) and requires
// the two reads to agree, the confirmation step used whenever a new
// master passphrase is being set (vault creation, chpass).
func ReadNewPassphrase(first, second Reader) (string, error) {
	a, err := first.ReadPassphrase()
	if err != nil {
		return "", err
	}
	b, err := second.ReadPassphrase()
	if err != nil {
		return "", err
	}
	if a != b {
		return "", ErrPassphraseMismatch
	}
	return a, nil
}
