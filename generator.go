package rtfdoc

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"unicode/utf16"
)

// Generator serializes a Document back to RTF 1.9 source, per spec §4.7.
// It emits control words only where the format actually changes between
// runs (minimal-diff emission), mirroring how the teacher interpreters
// track a running state rather than resetting it for every run.
type Generator struct {
	buf      bytes.Buffer
	codePage string
	char     CharacterFormat
	para     ParagraphFormat
}

// NewGenerator returns a Generator. codePage (default CP1252 if empty) is
// stored but not consulted: non-ASCII text is always written as \uN?
// escapes, never as code-page \'HH escapes.
func NewGenerator(codePage string) *Generator {
	if codePage == "" {
		codePage = "CP1252"
	}
	return &Generator{codePage: codePage, char: DefaultCharacterFormat(), para: DefaultParagraphFormat()}
}

// Generate serializes doc to RTF source.
func Generate(doc *Document, codePage string) []byte {
	g := NewGenerator(codePage)
	return g.Generate(doc)
}

// Generate writes the preamble, font/color tables, info group, and body,
// then closes the root group.
func (g *Generator) Generate(doc *Document) []byte {
	g.buf.Reset()
	g.buf.WriteString(`{\rtf1\ansi\deff0`)
	g.writeFontTable(doc.Fonts)
	g.writeColorTable(doc.Colors)
	g.writeInfo(doc.Meta)
	g.buf.WriteByte('\n')

	g.char = DefaultCharacterFormat()
	g.para = DefaultParagraphFormat()
	for _, el := range doc.Elements {
		g.writeElement(el)
	}
	g.buf.WriteByte('}')
	return g.buf.Bytes()
}

func (g *Generator) writeFontTable(fonts map[int]FontEntry) {
	if len(fonts) == 0 {
		return
	}
	g.buf.WriteString(`{\fonttbl`)
	for idx, f := range fonts {
		fmt.Fprintf(&g.buf, `{\f%d\fcharset%d %s;}`, idx, f.Charset, escapeText(f.Name))
	}
	g.buf.WriteString(`}`)
}

func (g *Generator) writeColorTable(colors []ColorEntry) {
	if len(colors) == 0 {
		return
	}
	g.buf.WriteString(`{\colortbl`)
	for i, c := range colors {
		if i == 0 && c.R == 0 && c.G == 0 && c.B == 0 {
			g.buf.WriteByte(';')
			continue
		}
		fmt.Fprintf(&g.buf, `\red%d\green%d\blue%d;`, c.R, c.G, c.B)
	}
	g.buf.WriteString(`}`)
}

func (g *Generator) writeInfo(m Metadata) {
	if m == (Metadata{}) {
		return
	}
	g.buf.WriteString(`{\info`)
	writeInfoField(&g.buf, "title", m.Title)
	writeInfoField(&g.buf, "subject", m.Subject)
	writeInfoField(&g.buf, "author", m.Author)
	writeInfoField(&g.buf, "operator", m.Operator)
	writeInfoField(&g.buf, "company", m.Company)
	writeInfoField(&g.buf, "doccomm", m.Comment)
	g.buf.WriteString(`}`)
}

func writeInfoField(buf *bytes.Buffer, word, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(buf, `{\%s %s}`, word, escapeText(value))
}

func (g *Generator) writeElement(el Element) {
	switch v := el.(type) {
	case TextRun:
		g.writeCharacterFormatDiff(v.Format)
		g.writeText(v.Text)
	case Break:
		switch v.Kind {
		case ParagraphBreakKind:
			g.buf.WriteString(`\par` + "\n")
		case LineBreakKind:
			g.buf.WriteString(`\line` + "\n")
		case PageBreakKind:
			g.buf.WriteString(`\page` + "\n")
		}
	case *Image:
		g.writeImage(v)
	case *Hyperlink:
		g.writeHyperlink(v)
	case *Table:
		g.writeTable(v)
	}
}

// writeCharacterFormatDiff emits only the toggle/value control words whose
// state actually changed since the last run, per spec §4.7. A trailing
// delimiter space is appended only when the last word written was bare,
// with no numeric suffix (e.g. \b): that delimiter is mandatory there,
// since without it the following text's leading letters would be
// swallowed into the control word's name (\b + "old" would otherwise
// reparse as the single control word "bold"). \b0, \fs24, and every other
// word ending in a digit already terminates on the first non-digit byte,
// so no delimiter follows it — and per the space-delimiter rule (spec §8
// scenario 1) one wouldn't be consumed on reparse anyway.
func (g *Generator) writeCharacterFormatDiff(next CharacterFormat) {
	cur := g.char
	lastBare := false
	if wrote, bare := writeToggle(&g.buf, `\b`, cur.Bold, next.Bold); wrote {
		lastBare = bare
	}
	if wrote, bare := writeToggle(&g.buf, `\i`, cur.Italic, next.Italic); wrote {
		lastBare = bare
	}
	if wrote, bare := writeToggle(&g.buf, `\ul`, cur.Underline, next.Underline); wrote {
		lastBare = bare
	}
	if wrote, bare := writeToggle(&g.buf, `\strike`, cur.Strike, next.Strike); wrote {
		lastBare = bare
	}
	if wrote, bare := writeToggle(&g.buf, `\super`, cur.Superscript, next.Superscript); wrote {
		lastBare = bare
	}
	if wrote, bare := writeToggle(&g.buf, `\sub`, cur.Subscript, next.Subscript); wrote {
		lastBare = bare
	}
	if wrote, bare := writeToggle(&g.buf, `\v`, cur.Hidden, next.Hidden); wrote {
		lastBare = bare
	}
	if wrote, bare := writeToggle(&g.buf, `\scaps`, cur.SmallCaps, next.SmallCaps); wrote {
		lastBare = bare
	}
	if wrote, bare := writeToggle(&g.buf, `\caps`, cur.AllCaps, next.AllCaps); wrote {
		lastBare = bare
	}

	if next.FontSizeHalfPoints != cur.FontSizeHalfPoints && next.FontSizeHalfPoints != 0 {
		fmt.Fprintf(&g.buf, `\fs%d`, next.FontSizeHalfPoints)
		lastBare = false
	}
	if next.FontIndex != cur.FontIndex && next.FontIndex >= 0 {
		fmt.Fprintf(&g.buf, `\f%d`, next.FontIndex)
		lastBare = false
	}
	if next.ForegroundColorIndex != cur.ForegroundColorIndex && next.ForegroundColorIndex >= 0 {
		fmt.Fprintf(&g.buf, `\cf%d`, next.ForegroundColorIndex)
		lastBare = false
	}
	if next.BackgroundColorIndex != cur.BackgroundColorIndex && next.BackgroundColorIndex >= 0 {
		fmt.Fprintf(&g.buf, `\highlight%d`, next.BackgroundColorIndex)
		lastBare = false
	}
	g.char = next

	if lastBare {
		g.buf.WriteByte(' ')
	}
}

// writeToggle writes word (bare) or word+"0" (parameterized) when cur and
// next differ, and reports whether it wrote anything and whether what it
// wrote was bare.
func writeToggle(buf *bytes.Buffer, word string, cur, next bool) (wrote, bare bool) {
	if cur == next {
		return false, false
	}
	if next {
		buf.WriteString(word)
		return true, true
	}
	buf.WriteString(word + "0")
	return true, false
}

// writeText escapes '\\', '{', '}', and encodes non-ASCII runes as \uN?
// (a UTF-16 surrogate pair of two \uN? escapes for runes outside the BMP),
// per spec §4.7. No code-page \'HH escapes are written.
func (g *Generator) writeText(text []byte) {
	g.buf.Write(escapeText(string(text)))
}

func escapeText(s string) []byte {
	var out bytes.Buffer
	for _, r := range s {
		switch {
		case r == '\\' || r == '{' || r == '}':
			out.WriteByte('\\')
			out.WriteRune(r)
		case r < 0x80:
			out.WriteRune(r)
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			fmt.Fprintf(&out, `\u%d?\u%d?`, hi, lo)
		default:
			fmt.Fprintf(&out, `\u%d?`, r)
		}
	}
	return out.Bytes()
}

func (g *Generator) writeImage(img *Image) {
	g.buf.WriteString(`{\pict`)
	switch img.Format {
	case ImagePNG:
		g.buf.WriteString(`\pngblip`)
	case ImageJPEG:
		g.buf.WriteString(`\jpegblip`)
	case ImageWMF:
		g.buf.WriteString(`\wmetafile1`)
	case ImageEMF:
		g.buf.WriteString(`\emfblip`)
	case ImageBMP:
		g.buf.WriteString(`\wbitmap1`)
	}
	if img.Width > 0 {
		fmt.Fprintf(&g.buf, `\picw%d`, img.Width)
	}
	if img.Height > 0 {
		fmt.Fprintf(&g.buf, `\pich%d`, img.Height)
	}
	g.buf.WriteByte(' ')
	g.buf.WriteString(hex.EncodeToString(img.Bytes))
	g.buf.WriteString(`}`)
}

func (g *Generator) writeHyperlink(link *Hyperlink) {
	fmt.Fprintf(&g.buf, `{\field{\*\fldinst HYPERLINK "%s"}{\fldrslt `, escapeFieldTarget(link.Target))
	for _, r := range link.Display {
		g.writeCharacterFormatDiff(r.Format)
		g.writeText(r.Text)
	}
	g.buf.WriteString(`}}`)
}

func escapeFieldTarget(target string) string {
	var out bytes.Buffer
	for _, r := range target {
		if r == '"' || r == '\\' {
			out.WriteByte('\\')
		}
		out.WriteRune(r)
	}
	return out.String()
}

// writeTable emits each row's \trowd...\row sequence, then a closing \pard.
// The parser only commits accumulated rows into a Table on \pard (or EOF,
// see parser.go's commitTable callers) — without that trailing \pard here,
// reparsing would keep the row accumulator open past the table and merge
// in, or reorder against, whatever element follows.
func (g *Generator) writeTable(tbl *Table) {
	for _, row := range tbl.Rows {
		g.buf.WriteString(`\trowd`)
		if row.HeightTwips != 0 {
			fmt.Fprintf(&g.buf, `\trrh%d`, row.HeightTwips)
		}
		var x int32
		for _, c := range row.Cells {
			x = c.CellX
			fmt.Fprintf(&g.buf, `\cellx%d`, x)
		}
		for _, c := range row.Cells {
			for _, el := range c.Content {
				g.writeElement(el)
			}
			g.buf.WriteString(`\cell `)
		}
		g.buf.WriteString(`\row` + "\n")
	}
	g.buf.WriteString(`\pard` + "\n")
}
