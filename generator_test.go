package rtfdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTrip parses src, generates it back out, and reparses the result,
// returning the second document so callers can assert the content
// survived the trip.
func roundTrip(t *testing.T, src string) *Document {
	t.Helper()
	doc1, err := ParseBytes([]byte(src))
	require.NoError(t, err)
	out := GenerateBytes(doc1, "")
	doc2, err := ParseBytes(out)
	require.NoError(t, err, "regenerated RTF failed to reparse: %s", out)
	return doc2
}

func TestGenerateRoundTripFormattedRuns(t *testing.T) {
	doc := roundTrip(t, `{\rtf1\ansi Hello \b bold\b0 and \i italic\i0 world!}`)
	assert.Equal(t, "Hello bold and italic world!", doc.PlainText())
	runs := doc.Runs()
	require.Len(t, runs, 5)
	assert.True(t, runs[1].Format.Bold)
	assert.True(t, runs[3].Format.Italic)
}

func TestGenerateRoundTripParagraphBreak(t *testing.T) {
	doc := roundTrip(t, `{\rtf1\ansi A\par B}`)
	assert.Equal(t, "A\nB", doc.PlainText())
}

func TestGenerateEscapesSpecialCharacters(t *testing.T) {
	doc1, err := ParseBytes([]byte(`{\rtf1 hi}`))
	require.NoError(t, err)
	doc1.Elements = append(doc1.Elements, TextRun{Text: []byte(`a{b}c\d`), Format: DefaultCharacterFormat()})
	out := string(GenerateBytes(doc1, ""))
	assert.Contains(t, out, `a\{b\}c\\d`)
}

func TestGenerateNonASCIIEmitsUnicodeEscape(t *testing.T) {
	doc1, err := ParseBytes([]byte(`{\rtf1 hi}`))
	require.NoError(t, err)
	doc1.Elements = append(doc1.Elements, TextRun{Text: []byte("café"), Format: DefaultCharacterFormat()})
	out := string(GenerateBytes(doc1, ""))
	assert.Contains(t, out, `\u233?`)
}

func TestGenerateFontAndColorTables(t *testing.T) {
	doc := roundTrip(t, `{\rtf1{\fonttbl{\f0\fcharset0 Arial;}}{\colortbl;\red10\green20\blue30;}\f0\cf1 hi}`)
	assert.Equal(t, "Arial", doc.Fonts[0].Name)
	require.Len(t, doc.Colors, 2)
	assert.Equal(t, ColorEntry{R: 10, G: 20, B: 30}, doc.Colors[1])
}

func TestGenerateHyperlinkRoundTrip(t *testing.T) {
	doc := roundTrip(t, `{\rtf1{\field{\*\fldinst HYPERLINK "https://example.com/"}{\fldrslt click here}}}`)
	require.Len(t, doc.Elements, 1)
	link, ok := doc.Elements[0].(*Hyperlink)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/", link.Target)
	assert.Equal(t, "click here", link.Display[0].String())
}

func TestGenerateTableRoundTrip(t *testing.T) {
	doc := roundTrip(t, `{\rtf1\trowd\cellx2000\cellx4000A\cell B\cell\row\pard}`)
	require.Len(t, doc.Elements, 1)
	tbl, ok := doc.Elements[0].(*Table)
	require.True(t, ok)
	require.Len(t, tbl.Rows, 1)
	assert.Len(t, tbl.Rows[0].Cells, 2)
}

// TestGenerateTableFollowedByTextRoundTrip guards against writeTable
// regenerating a table's rows with no closing \pard: without one, the
// reparsed table's row accumulator never closes at the table's own
// boundary, so a paragraph following the table would get swallowed into
// it (or reordered after it) instead of surviving as a separate element.
func TestGenerateTableFollowedByTextRoundTrip(t *testing.T) {
	doc := roundTrip(t, `{\rtf1\trowd\cellx2000\cellx4000A\cell B\cell\row\pard After}`)
	require.Len(t, doc.Elements, 2)
	tbl, ok := doc.Elements[0].(*Table)
	require.True(t, ok)
	require.Len(t, tbl.Rows, 1)
	run, ok := doc.Elements[1].(TextRun)
	require.True(t, ok)
	assert.Equal(t, "After", run.String())
}
