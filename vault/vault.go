// Package vault implements VaultEngine, the stateful orchestration of a
// single on-disk PassKeeper file: decrypt-and-decode on Read, encode-and-
// encrypt-and-replace on Write, with an in-memory record set that survives
// between calls for an external editor collaborator.
package vault

import (
	"errors"
	"os"

	"github.com/halvard/passkeeper/recordcodec"
	"github.com/halvard/passkeeper/vaultcrypto"
	"github.com/halvard/passkeeper/vaultfile"
)

// Error kinds classify every failure VaultEngine can report through
// LastError, matching spec §7's taxonomy. Each wraps the lower-level
// sentinel that produced it, so callers can still errors.Is down to the
// originating package if they need to.
var (
	ErrKeyDerivationFailure = errors.New("vault: key derivation failed")
	ErrFileOpenFailure      = errors.New("vault: could not open vault file")
	ErrDecryptFailure       = errors.New("vault: could not decrypt vault file")
	ErrStructureCorruption  = errors.New("vault: vault file contents are corrupt")
	ErrEncryptFailure       = errors.New("vault: could not encrypt vault contents")
	ErrSerializeFailure     = errors.New("vault: could not serialize vault contents")
	ErrWriteFailure         = errors.New("vault: could not write vault file")
	ErrNoPassword           = errors.New("vault: no password set")
)

// Engine holds one vault file's path, its derived key, and the record set
// currently in memory. A zero Engine is not usable; construct with New.
type Engine struct {
	path    string
	key     vaultcrypto.Key
	hasKey  bool
	records []recordcodec.Record
	lastErr error
}

// New returns an Engine bound to path. No file I/O happens yet; call
// SetPassword then Read (for an existing vault) or just SetPassword
// followed by Write (for a brand new one).
func New(path string) *Engine {
	return &Engine{path: path}
}

// SetPassword derives and stores the vault's encryption key from pw. It
// must be called before Read or Write.
func (e *Engine) SetPassword(pw string) {
	e.key = vaultcrypto.DeriveKey(pw)
	e.hasKey = true
}

// Records returns the engine's current in-memory record set. Mutate the
// returned slice's owner via SetRecords, not in place, so Write always
// serializes a value the caller explicitly committed to.
func (e *Engine) Records() []recordcodec.Record {
	return e.records
}

// SetRecords replaces the in-memory record set, to be persisted on the
// next Write.
func (e *Engine) SetRecords(records []recordcodec.Record) {
	e.records = records
}

// LastError returns the error classified by the most recent Read or Write
// call, or nil if it succeeded.
func (e *Engine) LastError() error {
	return e.lastErr
}

// Read loads the vault file from disk, decrypts it, and decodes its
// record set into memory, replacing whatever was there before. A
// not-yet-existing file is reported as ErrFileOpenFailure, matching
// vaultfile's own contract; callers creating a brand new vault should
// not call Read at all.
func (e *Engine) Read() error {
	if !e.hasKey {
		e.lastErr = ErrNoPassword
		return e.lastErr
	}

	envelope, err := vaultfile.Read(e.path)
	if err != nil {
		e.lastErr = errors.Join(ErrFileOpenFailure, err)
		return e.lastErr
	}

	plaintext, err := vaultcrypto.Decrypt(envelope, e.key)
	if err != nil {
		e.lastErr = errors.Join(ErrDecryptFailure, err)
		return e.lastErr
	}

	records, err := recordcodec.DecodeSequence(plaintext)
	if err != nil {
		e.lastErr = errors.Join(ErrStructureCorruption, err)
		return e.lastErr
	}

	e.records = records
	e.lastErr = nil
	return nil
}

// Write canonicalizes the in-memory record set, encodes it, encrypts it,
// and durably replaces the vault file on disk.
func (e *Engine) Write() error {
	if !e.hasKey {
		e.lastErr = ErrNoPassword
		return e.lastErr
	}

	plaintext := recordcodec.EncodeSequence(recordcodec.Canonicalize(e.records))

	envelope, err := vaultcrypto.Encrypt(plaintext, e.key)
	if err != nil {
		e.lastErr = errors.Join(ErrEncryptFailure, err)
		return e.lastErr
	}

	if err := vaultfile.Write(envelope, e.path); err != nil {
		// Whether the temp write itself failed or only the old-file removal
		// or rename that follows it, the caller gets one ErrWriteFailure;
		// errors.Is against the wrapped vaultfile sentinel still recovers
		// which stage failed and whether the temp file survives on disk.
		e.lastErr = errors.Join(ErrWriteFailure, err)
		return e.lastErr
	}

	e.lastErr = nil
	return nil
}

// Exists reports whether a file already sits at the engine's path, the
// test a CLI uses to choose between "open" and "new" semantics.
func (e *Engine) Exists() bool {
	_, err := os.Stat(e.path)
	return err == nil
}
