package rtfdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "DepthExceeded", ErrDepthExceeded.String())
	assert.Equal(t, "IoError", ErrIO.String())
}

func TestParseErrorMessageIncludesOffset(t *testing.T) {
	err := newParseError(ErrUnbalancedGroup, 42, nil)
	assert.Contains(t, err.Error(), "42")
	assert.Contains(t, err.Error(), "UnbalancedGroup")
}

func TestParseErrorWrapsCause(t *testing.T) {
	cause := assert.AnError
	err := newParseError(ErrIO, 10, cause)
	assert.ErrorIs(t, err, cause)
}

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{Kind: ErrInvalidHexEscape, Offset: 7, Message: "bad hex"}
	s := d.String()
	assert.Contains(t, s, "InvalidHexEscape")
	assert.Contains(t, s, "7")
	assert.Contains(t, s, "bad hex")
}
