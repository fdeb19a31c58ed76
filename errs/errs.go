// Package errs defines the sentinel errors the decoder can return.
//
// Every failure the decoder produces folds into exactly one of two kinds:
// ErrUnexpectedEOF (the input is a strict prefix of a valid encoding and a
// retry with more bytes may succeed) or ErrMalformed (the input is not a
// prefix of any valid encoding). Helpers in this package wrap one of the two
// sentinels with additional context while keeping errors.Is working against
// the base sentinel.
package errs

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEOF signals that the decoder ran off the end of the input
// before a value was fully read. A subsequent call with more bytes appended
// may succeed.
var ErrUnexpectedEOF = errors.New("deframe: unexpected end of input")

// ErrMalformed signals a wire violation that no amount of additional data
// can repair: an unknown table index, an index referencing the wrong tag
// class, invalid UTF-8, an invalid Unicode scalar, a LEB128 overflow, a
// discriminant outside the variant count, and similar conditions.
var ErrMalformed = errors.New("deframe: malformed frame")

// EOF wraps ErrUnexpectedEOF with context, preserving errors.Is(err, ErrUnexpectedEOF).
func EOF(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, error(ErrUnexpectedEOF))...)
}

// Malformed wraps ErrMalformed with context, preserving errors.Is(err, ErrMalformed).
func Malformed(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, error(ErrMalformed))...)
}

// Is reports whether err is classified as the given sentinel. It is a thin
// convenience wrapper around errors.Is kept here so callers only need to
// import this package to check a decode error's kind.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
