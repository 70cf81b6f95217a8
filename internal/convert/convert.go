// Package convert turns an all-plaintext tabular input into an encrypted
// store file, sealing a chosen subset of fields.
package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/cryptab/cryptab/internal/fieldcipher"
)

// Error represents a conversion failure.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string
}

// ErrorCode categorizes conversion errors.
type ErrorCode string

const (
	// ErrCodeSourceNotFound indicates the plaintext input could not be
	// located.
	ErrCodeSourceNotFound ErrorCode = "SOURCE_NOT_FOUND"

	// ErrCodeMissingIDColumn indicates the declared identifier field is
	// absent from the input schema or from a row.
	ErrCodeMissingIDColumn ErrorCode = "MISSING_ID_COLUMN"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsSourceNotFound reports whether err is a missing-input failure.
func IsSourceNotFound(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Code == ErrCodeSourceNotFound
}

// IsMissingIDColumn reports whether err is a missing-identifier failure.
func IsMissingIDColumn(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Code == ErrCodeMissingIDColumn
}

// Rows seals the selected fields of every row, using each row's identifier
// value as the cipher nonce. Fields outside encryptFields pass through
// verbatim. The identifier field itself is never sealed, even when listed:
// it is the cleartext nonce source for its own row, lookup included.
//
// fields is the input header; every row is positional against it. A row too
// short to carry the identifier column is a MISSING_ID_COLUMN failure.
func Rows(fields []string, rows [][]string, key []byte, encryptFields []string, idField string) ([][]string, error) {
	idIdx := -1
	for i, name := range fields {
		if name == idField {
			idIdx = i
			break
		}
	}
	if idIdx < 0 {
		return nil, &Error{
			Code:    ErrCodeMissingIDColumn,
			Message: fmt.Sprintf("identifier field %q not in input header", idField),
		}
	}

	encrypted := make(map[string]bool, len(encryptFields))
	for _, name := range encryptFields {
		encrypted[name] = true
	}
	delete(encrypted, idField)

	out := make([][]string, 0, len(rows))
	for n, row := range rows {
		if idIdx >= len(row) {
			return nil, &Error{
				Code:    ErrCodeMissingIDColumn,
				Message: fmt.Sprintf("row %d has no value for identifier field %q", n+1, idField),
			}
		}
		nonce := []byte(row[idIdx])
		sealed := make([]string, len(row))
		for i, value := range row {
			if i < len(fields) && encrypted[fields[i]] && value != "" {
				sealed[i] = fieldcipher.Seal(value, key, nonce)
			} else {
				sealed[i] = value
			}
		}
		out = append(out, sealed)
	}
	return out, nil
}

// File converts the plaintext CSV at src into an encrypted store at dst,
// keeping the header unchanged, and returns that header.
//
// A missing src is a SOURCE_NOT_FOUND failure; a src without the declared
// identifier column is MISSING_ID_COLUMN. dst is overwritten when present.
func File(src, dst string, key []byte, encryptFields []string, idField string) ([]string, error) {
	f, err := os.Open(src)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &Error{
				Code:    ErrCodeSourceNotFound,
				Message: fmt.Sprintf("input not found: %s", src),
			}
		}
		return nil, fmt.Errorf("convert: open source: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("convert: read source: %w", err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("convert: source %s has no header row", src)
	}

	fields := all[0]
	sealed, err := Rows(fields, all[1:], key, encryptFields, idField)
	if err != nil {
		return nil, err
	}

	out, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("convert: create output: %w", err)
	}
	w := csv.NewWriter(out)
	if err := w.Write(fields); err != nil {
		out.Close()
		return nil, fmt.Errorf("convert: write header: %w", err)
	}
	for _, row := range sealed {
		if err := w.Write(row); err != nil {
			out.Close()
			return nil, fmt.Errorf("convert: write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		out.Close()
		return nil, fmt.Errorf("convert: flush output: %w", err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("convert: close output: %w", err)
	}
	return fields, nil
}
