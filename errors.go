package rtfdoc

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind classifies why a parse failed or why a diagnostic was recorded,
// per spec §7.
type ErrorKind int

const (
	ErrIO ErrorKind = iota
	ErrUnexpectedEOF
	ErrUnbalancedGroup
	ErrDepthExceeded
	ErrInvalidHexEscape
	ErrInvalidUnicodeEscape
	ErrTruncatedBinary
	ErrInvalidFontEntry
	ErrInvalidColorEntry
	ErrUnknownEncoding
	ErrOutOfMemory
)

func (k ErrorKind) String() string {
	switch k {
	case ErrIO:
		return "IoError"
	case ErrUnexpectedEOF:
		return "UnexpectedEof"
	case ErrUnbalancedGroup:
		return "UnbalancedGroup"
	case ErrDepthExceeded:
		return "DepthExceeded"
	case ErrInvalidHexEscape:
		return "InvalidHexEscape"
	case ErrInvalidUnicodeEscape:
		return "InvalidUnicodeEscape"
	case ErrTruncatedBinary:
		return "TruncatedBinary"
	case ErrInvalidFontEntry:
		return "InvalidFontEntry"
	case ErrInvalidColorEntry:
		return "InvalidColorEntry"
	case ErrUnknownEncoding:
		return "UnknownEncoding"
	case ErrOutOfMemory:
		return "OutOfMemory"
	default:
		return "Unknown"
	}
}

// ParseError is returned by the public API on fatal failure (spec §7:
// IoError, OOM, DepthExceeded, or a recoverable kind promoted by strict
// mode). It wraps the underlying cause via pkg/errors so a %+v format verb
// can surface a stack trace in development builds without changing Error().
type ParseError struct {
	Kind   ErrorKind
	Offset uint64
	cause  error
}

func (e *ParseError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("rtfdoc: %s at offset %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("rtfdoc: %s", e.Kind)
}

func (e *ParseError) Unwrap() error { return e.cause }

func newParseError(kind ErrorKind, offset uint64, cause error) *ParseError {
	pe := &ParseError{Kind: kind, Offset: offset}
	if cause != nil {
		pe.cause = errors.Wrapf(cause, "offset %d", offset)
	} else {
		pe.cause = errors.Errorf("%s at offset %d", kind, offset)
	}
	return pe
}

// Diagnostic is a recoverable error accumulated on a parse context (spec
// §7 "recoverable" category). Diagnostics never abort parsing unless the
// parser is running in strict mode, in which case the first diagnostic is
// promoted to a *ParseError and parsing stops.
type Diagnostic struct {
	Kind    ErrorKind
	Offset  uint64
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s at offset %d: %s", d.Kind, d.Offset, d.Message)
}
