// Package secure holds sensitive material, primarily the Vault token, in
// memguard-protected memory between configuration load and client
// construction.
package secure

import (
	"sync"

	"github.com/awnumar/memguard"
)

// TokenBuffer stores a bearer token in an encrypted memguard enclave. The
// plaintext only exists while Open'd, and the CLI wipes it as soon as the
// client is built.
type TokenBuffer struct {
	enclave *memguard.Enclave
	mu      sync.RWMutex
	// destroyed allows idempotent Destroy calls and blocks use after destroy
	destroyed bool
}

// NewTokenBuffer copies token into a protected memory region. The enclave
// encrypts the data at rest and attempts to mlock it so it never reaches
// swap; if mlock is unavailable memguard degrades to a plain allocation.
func NewTokenBuffer(token []byte) *TokenBuffer {
	return &TokenBuffer{enclave: memguard.NewEnclave(token)}
}

// Open decrypts the token into a locked buffer. The caller must Destroy the
// returned buffer when done to wipe the plaintext.
func (b *TokenBuffer) Open() (*memguard.LockedBuffer, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.destroyed {
		return memguard.NewBufferFromBytes([]byte{}), nil
	}
	return b.enclave.Open()
}

// WithToken opens the buffer, hands the plaintext to fn, and wipes it
// before returning. fn must not retain the slice.
func (b *TokenBuffer) WithToken(fn func(token string) error) error {
	locked, err := b.Open()
	if err != nil {
		return err
	}
	defer locked.Destroy()
	return fn(locked.String())
}

// Destroy marks the buffer unusable. The encrypted enclave itself needs no
// explicit wipe. Idempotent.
func (b *TokenBuffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.destroyed = true
}
