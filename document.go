package rtfdoc

import "strings"

// Element is the tagged variant of document content, per spec §3: a
// TextRun, a break, an Image, a Table, or a Hyperlink. Using an interface
// with an unexported marker method keeps this a closed tagged union rather
// than an open class hierarchy, per spec §9.
type Element interface {
	isElement()
}

// TextRun is a maximal contiguous text span sharing one CharacterFormat.
// Text is arena-owned UTF-8 bytes; Format is an immutable copy.
type TextRun struct {
	Text   []byte
	Format CharacterFormat
}

func (TextRun) isElement() {}

// String returns the run's text as a string (a copy).
func (r TextRun) String() string { return string(r.Text) }

// BreakKind distinguishes the three break elements.
type BreakKind int

const (
	ParagraphBreakKind BreakKind = iota
	LineBreakKind
	PageBreakKind
)

// Break is a ParagraphBreak, LineBreak, or PageBreak element.
type Break struct {
	Kind BreakKind
}

func (Break) isElement() {}

// ImageFormat tags an Image's encoding.
type ImageFormat int

const (
	ImageOther ImageFormat = iota
	ImagePNG
	ImageJPEG
	ImageWMF
	ImageEMF
	ImageBMP
)

func (f ImageFormat) String() string {
	switch f {
	case ImagePNG:
		return "PNG"
	case ImageJPEG:
		return "JPEG"
	case ImageWMF:
		return "WMF"
	case ImageEMF:
		return "EMF"
	case ImageBMP:
		return "BMP"
	default:
		return "Other"
	}
}

// Image is a decoded \pict/\object payload, per spec §3.
type Image struct {
	Format        ImageFormat
	Width         int
	Height        int
	BitsPerPixel  int
	Bytes         []byte // arena-owned raw bytes
}

func (*Image) isElement() {}

// Hyperlink is a \field HYPERLINK whose display text is a sub-sequence of
// runs, per spec §3.
type Hyperlink struct {
	Target  string
	Display []TextRun
}

func (*Hyperlink) isElement() {}

// TableCell is a sequence of content elements bounded at CellX twips, per
// spec §3.
type TableCell struct {
	Content []Element
	CellX   int32 // right boundary, twips
}

// TableRow is a sequence of cells plus row-level attributes, per spec §3.
type TableRow struct {
	Cells       []TableCell
	HeightTwips int32
}

// Table is a sequence of rows.
type Table struct {
	Rows []TableRow
}

func (*Table) isElement() {}

// FontEntry is one \fonttbl entry, per spec §3.
type FontEntry struct {
	Index   int
	Name    string
	Charset int
}

// ColorEntry is one \colortbl entry, per spec §3. Index 0 is reserved for
// "auto" (unset): see spec §4.4 colortable dispatch.
type ColorEntry struct {
	R, G, B uint8
}

// Origin records whether the document was detected as de-encapsulated from
// HTML or plain text, per MS-OXRTFEX (spec_full §3 supplemented feature).
// It carries no rendering behavior: the core never emits HTML.
type Origin int

const (
	OriginUnknown Origin = iota
	OriginHTML
	OriginText
)

// Metadata holds the \info destination's named fields, per spec §4.4.
type Metadata struct {
	Title    string
	Subject  string
	Author   string
	Operator string
	Company  string
	Comment  string
}

// Document is the parse result: an ordered sequence of Elements, a font
// table, a color table, metadata, and the arena that owns every byte
// buffer and variant payload, per spec §3.
//
// A Document is immutable through the public API once Parse returns it,
// and may be read concurrently by any number of goroutines; Dispose
// requires exclusive access and is idempotent (spec §5).
type Document struct {
	Elements []Element
	Fonts    map[int]FontEntry
	Colors   []ColorEntry
	Meta     Metadata
	Origin   Origin

	// Diagnostics carries every recoverable error recorded while parsing
	// (spec §7 "accumulated as diagnostics on the parse context"); empty
	// unless the source had something non-fatal to complain about.
	Diagnostics []Diagnostic

	arena *arena

	plainText     []byte
	plainTextDone bool
}

func newDocument() *Document {
	return &Document{
		Fonts: map[int]FontEntry{},
		arena: newArena(),
	}
}

// Dispose releases the Document's arena. Idempotent: calling it more than
// once, or on a nil Document, is a no-op (spec §6 "free").
func (d *Document) Dispose() {
	if d == nil || d.arena == nil {
		return
	}
	d.arena.release()
	d.arena = nil
	d.Elements = nil
}

// Runs returns every TextRun element in document order. Indexing into the
// returned slice is O(1), satisfying spec §4.6's runs() contract.
func (d *Document) Runs() []TextRun {
	runs := make([]TextRun, 0, len(d.Elements))
	for _, el := range d.Elements {
		if r, ok := el.(TextRun); ok {
			runs = append(runs, r)
		}
	}
	return runs
}

// PlainText returns the lazily computed concatenation of every TextRun's
// text, with a newline inserted at each paragraph or line break, per spec
// §4.6. Page breaks add nothing.
func (d *Document) PlainText() string {
	if d.plainTextDone {
		return string(d.plainText)
	}
	var b strings.Builder
	for _, el := range d.Elements {
		switch v := el.(type) {
		case TextRun:
			b.Write(v.Text)
		case Break:
			if v.Kind == ParagraphBreakKind || v.Kind == LineBreakKind {
				b.WriteByte('\n')
			}
		}
	}
	d.plainText = []byte(b.String())
	d.plainTextDone = true
	return string(d.plainText)
}
