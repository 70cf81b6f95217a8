package table

// Record is the decrypted view of one stored row.
type Record struct {
	// Fields maps field name to decrypted value. Every schema field is
	// present; fields that failed to decrypt hold fieldcipher.Marker.
	Fields map[string]string

	// Faults records the fields whose stored ciphertext could not be
	// decoded, keyed by field name. Nil when the whole row decoded cleanly.
	Faults map[string]error
}

// Clean reports whether every field of the record decoded successfully.
func (r Record) Clean() bool { return len(r.Faults) == 0 }
