package table

import (
	"encoding/csv"
	"fmt"
	"os"
)

// writeRaw rewrites the whole backing file: the header row, then every row
// in order. This is a direct overwrite, not a temp-file-and-rename replace;
// a crash mid-write can leave a partial file (see the package doc).
// File-system failures propagate as-is since there is nothing to roll back.
func (s *Store) writeRaw(rows []map[string]string) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("table: rewrite store: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(s.fields); err != nil {
		f.Close()
		return fmt.Errorf("table: write header: %w", err)
	}
	for _, row := range rows {
		cells := make([]string, len(s.fields))
		for i, name := range s.fields {
			cells[i] = row[name]
		}
		if err := w.Write(cells); err != nil {
			f.Close()
			return fmt.Errorf("table: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("table: flush store: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("table: close store: %w", err)
	}
	return nil
}

// Create appends a new row. Schema fields absent from row default to the
// empty string. Encrypted non-empty fields are sealed with the row's own
// identifier as nonce.
//
// Returns a DUPLICATE_ID Error, leaving the file untouched, when the
// identifier already exists.
func (s *Store) Create(row map[string]string) error {
	rows, err := s.readRaw()
	if err != nil {
		return err
	}

	id := row[s.fields[0]]
	for _, existing := range rows {
		if existing[s.fields[0]] == id {
			return NewDuplicateIDError(id)
		}
	}

	stored := make(map[string]string, len(s.fields))
	for _, name := range s.fields {
		stored[name] = s.sealField(name, row[name], id)
	}
	return s.writeRaw(append(rows, stored))
}

// Update overwrites the named fields of the row with identifier id, leaving
// every other field exactly as stored. Encrypted non-empty values are
// re-sealed with nonce = id.
//
// The identifier field itself is never rewritten: it is the nonce for every
// sealed value in the row, so changing it would orphan the ciphertexts.
// Returns false, with the file untouched, when id is absent.
func (s *Store) Update(id string, updates map[string]string) (bool, error) {
	rows, err := s.readRaw()
	if err != nil {
		return false, err
	}

	for _, row := range rows {
		if row[s.fields[0]] != id {
			continue
		}
		for name, value := range updates {
			if name == s.fields[0] {
				continue
			}
			row[name] = s.sealField(name, value, id)
		}
		return true, s.writeRaw(rows)
	}
	return false, nil
}

// Delete removes the row with identifier id, if present. Returns whether a
// row was actually removed; deleting an absent id leaves the file untouched.
func (s *Store) Delete(id string) (bool, error) {
	rows, err := s.readRaw()
	if err != nil {
		return false, err
	}

	kept := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		if row[s.fields[0]] == id {
			continue
		}
		kept = append(kept, row)
	}
	if len(kept) == len(rows) {
		return false, nil
	}
	return true, s.writeRaw(kept)
}
