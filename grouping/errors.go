package grouping

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord means a line could not be parsed as id:items.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrEmptyItemList means a user declared no items.
	ErrEmptyItemList = errors.New("empty item list")
	// ErrInvalidAlphabet means an item holds a byte outside A-Z.
	ErrInvalidAlphabet = errors.New("invalid alphabet")
	// ErrDuplicateID means two records share a user id.
	ErrDuplicateID = errors.New("duplicate user id")
)

// RecordError ties an ingestion failure to the record that caused it.
type RecordError struct {
	Line int // 1-based source line, 0 when the record did not come from a file
	ID   int
	Err  error
}

func (e *RecordError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: user %d: %v", e.Line, e.ID, e.Err)
	}
	return fmt.Sprintf("user %d: %v", e.ID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
