package table

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/cryptab/cryptab/internal/fieldcipher"
)

// readRaw loads every stored row as a name→value map keyed by the backing
// file's own header. Rows shorter than the header leave the missing fields
// unset; extra cells are dropped. The file is read fresh on every call.
func (s *Store) readRaw() ([]map[string]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("table: open store: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("table: read store: %w", err)
	}
	if len(all) == 0 {
		return nil, nil
	}

	header := all[0]
	rows := make([]map[string]string, 0, len(all)-1)
	for _, cells := range all[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(cells) {
				row[name] = cells[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// List returns the decrypted view of every row, in disk order.
//
// Each encrypted, non-empty field is opened with that row's identifier as
// nonce. A field that fails to decode degrades to fieldcipher.Marker in
// Fields with its cause in Faults; the remaining fields and rows are
// unaffected.
func (s *Store) List() ([]Record, error) {
	rows, err := s.readRaw()
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		nonce := []byte(row[s.fields[0]])
		rec := Record{Fields: make(map[string]string, len(s.fields))}
		for _, name := range s.fields {
			stored := row[name]
			if !s.encrypted[name] || stored == "" {
				rec.Fields[name] = stored
				continue
			}
			value, err := fieldcipher.Open(stored, s.key, nonce)
			if err != nil {
				if rec.Faults == nil {
					rec.Faults = make(map[string]error)
				}
				rec.Faults[name] = err
				rec.Fields[name] = fieldcipher.Marker
				continue
			}
			rec.Fields[name] = value
		}
		out = append(out, rec)
	}
	return out, nil
}

// Get returns the first record whose identifier equals id. The second
// result reports presence; an absent identifier is not an error.
func (s *Store) Get(id string) (Record, bool, error) {
	records, err := s.List()
	if err != nil {
		return Record{}, false, err
	}
	for _, rec := range records {
		if rec.Fields[s.fields[0]] == id {
			return rec, true, nil
		}
	}
	return Record{}, false, nil
}

// RawRows returns the stored rows exactly as they sit on disk, in schema
// order, ciphertext included. The export formatter consumes this view; it
// never decrypts.
func (s *Store) RawRows() ([][]string, error) {
	rows, err := s.readRaw()
	if err != nil {
		return nil, err
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(s.fields))
		for i, name := range s.fields {
			cells[i] = row[name]
		}
		out = append(out, cells)
	}
	return out, nil
}
