package transform

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidBase64      = errors.New("invalid base64")
	ErrInvalidURLEncoding = errors.New("invalid url encoding")
	ErrInvalidJSON        = errors.New("invalid json")
)

// DecodeError reports input that a fallible transformation rejected.
type DecodeError struct {
	Op     string // transformation id, e.g. "base64.decode"
	Offset int    // byte offset of the first bad input, or -1 when unknown
	Err    error  // one of the Err* sentinels
}

func (e *DecodeError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s: %v at offset %d", e.Op, e.Err, e.Offset)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
