package table

import (
	"errors"
	"fmt"
)

// Error represents a structural failure of a whole-record operation.
//
// Per-field decode failures never become an Error: they are isolated into
// Record.Faults so one corrupted field cannot block reading the rest of the
// store. Absent identifiers on get/update/delete are not errors either;
// they surface as a false result.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// ID is the offending identifier value, when known.
	ID string
}

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodeDuplicateID indicates create was given an identifier that
	// already exists in the store.
	ErrCodeDuplicateID ErrorCode = "DUPLICATE_ID"

	// ErrCodeEmptySchema indicates the store was opened without any fields.
	ErrCodeEmptySchema ErrorCode = "EMPTY_SCHEMA"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s: %s (id=%s)", e.Code, e.Message, e.ID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsDuplicateID reports whether err is a duplicate-identifier failure.
// Uses errors.As to handle wrapped errors.
func IsDuplicateID(err error) bool {
	var te *Error
	return errors.As(err, &te) && te.Code == ErrCodeDuplicateID
}

// NewDuplicateIDError creates an Error for a create that collides with an
// existing identifier.
func NewDuplicateIDError(id string) *Error {
	return &Error{
		Code:    ErrCodeDuplicateID,
		Message: "identifier already exists",
		ID:      id,
	}
}
