package treeview

import "errors"

var (
	// ErrInsertPosition is returned when an insert position is outside [0, len].
	ErrInsertPosition = errors.New("insert position out of range")
	// ErrRowHeight is returned for rows whose height is not positive.
	ErrRowHeight = errors.New("row height must be positive")
	// ErrDuplicateRow is returned when a row is already in the store.
	ErrDuplicateRow = errors.New("row already present")
	// ErrUnknownRow is returned when an operation names a row not in the store.
	ErrUnknownRow = errors.New("row not present")
)
