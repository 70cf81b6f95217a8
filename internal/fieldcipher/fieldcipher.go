// Package fieldcipher encrypts individual field values for storage inside a
// text tabular format.
//
// A value is XORed with a keystream derived from the key and a per-record
// nonce, then base64-encoded so the ciphertext survives a text container.
// XOR is self-inverse, so sealing and opening share the same core.
//
// The scheme carries no authentication tag: flipping ciphertext bits yields
// a different decrypted string without detection unless the result happens
// to be invalid UTF-8. That is a known property of the storage scheme this
// package serves, documented rather than fixed here.
package fieldcipher

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	"github.com/cryptab/cryptab/internal/keystream"
)

// Marker is the human-readable stand-in rendered for a field whose stored
// value could not be decrypted. It appears only in decrypted views and is
// never written to the store.
const Marker = "<decryption-error>"

// DecodeError reports a stored field value that could not be decrypted back
// to text. It is isolable: callers degrade the one offending field to
// Marker instead of failing the surrounding read.
type DecodeError struct {
	// Reason categorizes the failure: "base64" for a malformed text
	// encoding, "utf8" for decrypted bytes that do not form valid text.
	Reason string

	// Err is the underlying cause, when one exists.
	Err error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fieldcipher: decode failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("fieldcipher: decode failed (%s)", e.Reason)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error { return e.Err }

// Seal encrypts plaintext under (key, nonce) and returns base64 text.
//
// The empty string is passed through unchanged. This is a bypass, not an
// encrypted empty payload: unset fields stay visually empty in the store.
// Sealing is deterministic in (key, nonce, plaintext); there is no
// randomization or freshness.
func Seal(plaintext string, key, nonce []byte) string {
	if plaintext == "" {
		return ""
	}
	ct := xorStream([]byte(plaintext), key, nonce)
	return base64.StdEncoding.EncodeToString(ct)
}

// Open decrypts a value produced by Seal under the same (key, nonce).
//
// The empty string is passed through unchanged. Malformed base64, or a
// decryption that does not form valid UTF-8, yields a *DecodeError; callers
// render Marker in its place rather than aborting the enclosing read.
func Open(encoded string, key, nonce []byte) (string, error) {
	if encoded == "" {
		return "", nil
	}
	ct, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", &DecodeError{Reason: "base64", Err: err}
	}
	pt := xorStream(ct, key, nonce)
	if !utf8.Valid(pt) {
		return "", &DecodeError{Reason: "utf8"}
	}
	return string(pt), nil
}

// xorStream applies the (key, nonce) keystream to data.
func xorStream(data, key, nonce []byte) []byte {
	ks := keystream.Generate(key, nonce, len(data))
	out := make([]byte, len(data))
	for i := range data {
		out[i] = data[i] ^ ks[i]
	}
	return out
}
