package rtfdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderMergesAdjacentRunsWithSameFormat(t *testing.T) {
	doc := newDocument()
	b := newBuilder(doc)
	fmt1 := DefaultCharacterFormat()
	b.appendText([]byte("Hello, "), fmt1)
	b.appendText([]byte("world!"), fmt1)
	require.Len(t, doc.Elements, 1)
	assert.Equal(t, "Hello, world!", doc.Elements[0].(TextRun).String())
}

func TestBuilderDoesNotMergeAcrossDifferentFormats(t *testing.T) {
	doc := newDocument()
	b := newBuilder(doc)
	plain := DefaultCharacterFormat()
	bold := plain
	bold.Bold = true
	b.appendText([]byte("a"), plain)
	b.appendText([]byte("b"), bold)
	require.Len(t, doc.Elements, 2)
	assert.NotEqual(t, doc.Elements[0].(TextRun).Format, doc.Elements[1].(TextRun).Format)
}

func TestBuilderDoesNotMergeAcrossABreak(t *testing.T) {
	doc := newDocument()
	b := newBuilder(doc)
	plain := DefaultCharacterFormat()
	b.appendText([]byte("a"), plain)
	b.appendBreak(ParagraphBreakKind)
	b.appendText([]byte("b"), plain)
	require.Len(t, doc.Elements, 3)
}

func TestDocumentPlainTextInsertsNewlineAtBreaks(t *testing.T) {
	doc := newDocument()
	b := newBuilder(doc)
	plain := DefaultCharacterFormat()
	b.appendText([]byte("line1"), plain)
	b.appendBreak(LineBreakKind)
	b.appendText([]byte("line2"), plain)
	b.appendBreak(PageBreakKind)
	b.appendText([]byte("line3"), plain)
	assert.Equal(t, "line1\nline2line3", doc.PlainText())
}

func TestDocumentRunsIgnoresNonTextElements(t *testing.T) {
	doc := newDocument()
	b := newBuilder(doc)
	plain := DefaultCharacterFormat()
	b.appendText([]byte("a"), plain)
	b.appendBreak(ParagraphBreakKind)
	b.appendImage(Image{Format: ImagePNG, Width: 1, Height: 1})
	b.appendText([]byte("b"), plain)
	runs := doc.Runs()
	require.Len(t, runs, 2)
	assert.Equal(t, "a", runs[0].String())
	assert.Equal(t, "b", runs[1].String())
}

func TestArenaCopyBytesIsolatesCallerSlice(t *testing.T) {
	a := newArena()
	src := []byte("hello")
	out := a.copyBytes(src)
	src[0] = 'X'
	assert.Equal(t, "hello", string(out))
}

func TestArenaReleaseThenCopyPanics(t *testing.T) {
	a := newArena()
	a.release()
	assert.Panics(t, func() { a.copyBytes([]byte("x")) })
}

func TestDisposeReleasesElements(t *testing.T) {
	doc, err := ParseBytes([]byte(`{\rtf1 hi}`))
	require.NoError(t, err)
	require.NotEmpty(t, doc.Elements)
	doc.Dispose()
	assert.Nil(t, doc.Elements)
}
