package vault

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNoHosts is returned when a client is constructed with an empty
	// host list. Checked before any network IO.
	ErrNoHosts = errors.New("vault: at least one host is required")

	// ErrForbidden is returned when the server rejects the token during
	// the construction-time lookup-self probe.
	ErrForbidden = errors.New("vault: token rejected (403 Forbidden)")

	// ErrMissingWrapInfo is returned when a response that was requested
	// wrapped comes back without a wrap_info block.
	ErrMissingWrapInfo = errors.New("vault: server returned no wrap_info for a wrapped request")
)

// UnreachableError reports that every configured host failed at the
// connection level before any response was received.
type UnreachableError struct {
	Hosts   []string
	LastErr error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("vault: no reachable host among [%s]: %v", strings.Join(e.Hosts, ", "), e.LastErr)
}

func (e *UnreachableError) Unwrap() error {
	return e.LastErr
}

// APIError is a non-2xx response from a reachable host. The body is read
// eagerly so the error is self-contained.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vault: server returned status %d: %s", e.StatusCode, e.Body)
}

// DecodeError reports a response body that could not be decoded. Snippet
// holds a bounded prefix of the offending bytes for diagnostics.
type DecodeError struct {
	Snippet string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("vault: malformed response body %q: %v", e.Snippet, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TimestampError reports a timestamp field that could not be decoded with
// the encoding its struct field declares.
type TimestampError struct {
	Value string
	Err   error
}

func (e *TimestampError) Error() string {
	return fmt.Sprintf("vault: invalid timestamp %q: %v", e.Value, e.Err)
}

func (e *TimestampError) Unwrap() error {
	return e.Err
}

// VaultError is a domain-contract violation: a field required by a specific
// operation is absent even though the envelope allows its absence, or the
// server broke a wire-format contract such as the transit ciphertext prefix.
type VaultError struct {
	Message string
}

func (e *VaultError) Error() string {
	return "vault: " + e.Message
}

// snippetLen bounds how much of a bad body ends up inside an error.
const snippetLen = 128

func snippet(b []byte) string {
	if len(b) <= snippetLen {
		return string(b)
	}
	// Back up so the cut never lands inside a multi-byte rune.
	end := snippetLen
	for end > 0 && !utf8.RuneStart(b[end]) {
		end--
	}
	return string(b[:end]) + "..."
}
