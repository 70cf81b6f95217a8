package table

import (
	"errors"
	"fmt"
	"os"

	"github.com/cryptab/cryptab/internal/fieldcipher"
)

// Store is an encrypted record table backed by a comma-delimited text file.
//
// The store holds no row cache: reads and mutations go through the backing
// file on every call. The key is a constructor-time dependency and is never
// persisted.
type Store struct {
	path      string
	fields    []string
	key       []byte
	encrypted map[string]bool
}

// Open attaches to the encrypted store at path, creating the file with a
// header row when it does not exist.
//
// fields is the ordered schema; fields[0] is the identifier column.
// encryptFields selects the fields stored encrypted; nil means every field
// except the identifier. The identifier is the cleartext nonce source for
// its own row, so it is excluded from the encrypted set no matter what the
// caller passes.
func Open(path string, fields []string, key []byte, encryptFields []string) (*Store, error) {
	if len(fields) == 0 {
		return nil, &Error{Code: ErrCodeEmptySchema, Message: "field schema has no columns"}
	}

	encrypted := make(map[string]bool)
	if encryptFields == nil {
		for _, f := range fields[1:] {
			encrypted[f] = true
		}
	} else {
		for _, f := range encryptFields {
			encrypted[f] = true
		}
	}
	delete(encrypted, fields[0])

	s := &Store{
		path:      path,
		fields:    append([]string(nil), fields...),
		key:       key,
		encrypted: encrypted,
	}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("table: stat store: %w", err)
		}
		if err := s.writeRaw(nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Fields returns a copy of the ordered field schema.
func (s *Store) Fields() []string { return append([]string(nil), s.fields...) }

// IDField returns the name of the identifier column.
func (s *Store) IDField() string { return s.fields[0] }

// Encrypted reports whether the named field is stored encrypted.
func (s *Store) Encrypted(field string) bool { return s.encrypted[field] }

// sealField routes one plaintext value to its stored form. Encrypted,
// non-empty values are sealed with the owning row's identifier as nonce;
// everything else passes through verbatim.
func (s *Store) sealField(field, value, id string) string {
	if s.encrypted[field] && value != "" {
		return fieldcipher.Seal(value, s.key, []byte(id))
	}
	return value
}
