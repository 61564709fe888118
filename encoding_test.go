package rtfdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodePageFromKeyword(t *testing.T) {
	cp, ok := codePageFromKeyword("ansi")
	assert.True(t, ok)
	assert.Equal(t, "CP1252", cp)

	cp, ok = codePageFromKeyword("1251")
	assert.True(t, ok)
	assert.Equal(t, "CP1251", cp)

	_, ok = codePageFromKeyword("not-a-codepage")
	assert.False(t, ok)
}

func TestCodePageFromCharset(t *testing.T) {
	cp, ok := codePageFromCharset(128)
	assert.True(t, ok)
	assert.Equal(t, "CP932", cp)
}

func TestDecodeCodePageWindows1252HighByte(t *testing.T) {
	// 0x93 is a left double quotation mark in CP1252, not valid UTF-8 on
	// its own — decodeCodePage must translate it rather than pass it
	// through raw.
	out := decodeCodePage([]byte{0x93, 'h', 'i', 0x94}, "CP1252")
	assert.Equal(t, "“hi”", string(out))
}

func TestDecodeCodePageDefaultsToCP1252(t *testing.T) {
	out := decodeCodePage([]byte{'h', 'i'}, "")
	assert.Equal(t, "hi", string(out))
}

func TestHighlightName(t *testing.T) {
	name, ok := HighlightName(6)
	assert.True(t, ok)
	assert.Equal(t, "Red", name)

	_, ok = HighlightName(999)
	assert.False(t, ok)
}
