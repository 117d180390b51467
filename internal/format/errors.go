package format

import "errors"

var (
	// ErrMagicMismatch indicates the file does not start with Magic.
	ErrMagicMismatch = errors.New("format: magic mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrTruncatedTable indicates a table's records do not fit in the buffer
	// or are smaller than the record shape the table type requires.
	ErrTruncatedTable = errors.New("format: truncated table")
)
