// Package keystream derives pseudorandom byte streams from a key and a nonce.
//
// The stream is SHA-256 in counter mode: block i is the digest of
// key || nonce || counter, with a 64-bit big-endian counter starting at
// zero. The first N bytes of a longer stream always equal a shorter
// request's output, so callers can grow a stream by simply asking for more.
//
// Confidentiality rests entirely on the digest being unpredictable without
// the key; any preimage-resistant fixed-length hash would serve here.
package keystream

import (
	"crypto/sha256"
	"encoding/binary"
)

// Generate returns exactly length bytes of keystream for (key, nonce).
//
// Generate is deterministic and recomputes from counter zero on every call.
// Holding no state between calls is deliberate: a shared generator position
// leaking across records would break the per-record keystream guarantee.
// A length <= 0 yields an empty result.
func Generate(key, nonce []byte, length int) []byte {
	if length <= 0 {
		return nil
	}

	prefix := make([]byte, 0, len(key)+len(nonce)+8)
	prefix = append(prefix, key...)
	prefix = append(prefix, nonce...)

	out := make([]byte, 0, length+sha256.Size)
	var ctr [8]byte
	for counter := uint64(0); len(out) < length; counter++ {
		binary.BigEndian.PutUint64(ctr[:], counter)
		block := sha256.Sum256(append(prefix, ctr[:]...))
		out = append(out, block[:]...)
	}
	return out[:length]
}
