// Package table implements an encrypted record store over a comma-delimited
// text file.
//
// The first header column is the record identifier: unique across rows,
// always stored cleartext, and used as the cipher nonce for every encrypted
// field of its own row. The per-record nonce is load-bearing: it is what
// keeps two records' ciphertexts from ever sharing a keystream, so the
// identifier must stay stable for the life of the record.
//
// # Operational Model
//
//   - Every operation re-reads the whole backing file, so it always
//     observes the latest on-disk state at O(n) cost per call.
//   - Mutations rewrite the file in full with a direct overwrite. There is
//     no locking and no atomic replace: the store assumes one process with
//     exclusive access. Concurrent writers race (last writer wins) and a
//     crash mid-rewrite can leave a partial file. This is an accepted
//     constraint of a single-operator tool, not a defect to synchronize
//     away.
//   - An empty stored value is always the empty string, never an encrypted
//     empty payload, regardless of the field's encryption policy.
//
// Per-field decryption failures during reads are isolated: the offending
// field degrades to a visible marker and its cause lands in Record.Faults,
// while the rest of the row and every other row remain readable.
package table
