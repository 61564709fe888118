package rtfdoc

import (
	"strconv"
	"unicode/utf8"
)

// ParserOptions configures a Parser, per spec §7 (bounded work, strict
// mode) and §4.4 (default code page).
type ParserOptions struct {
	MaxGroupDepth   int
	Strict          bool
	DefaultCodePage string
}

// DefaultParserOptions returns the spec's defaults: a 100-deep group
// stack, permissive (non-strict) recovery, and CP1252 as the assumed
// code page until an \ansi/\ansicpg control word says otherwise.
func DefaultParserOptions() ParserOptions {
	return ParserOptions{MaxGroupDepth: 100, DefaultCodePage: "CP1252"}
}

// Option mutates ParserOptions; see WithMaxGroupDepth, WithStrict,
// WithDefaultCodePage.
type Option func(*ParserOptions)

func WithMaxGroupDepth(n int) Option {
	return func(o *ParserOptions) { o.MaxGroupDepth = n }
}

func WithStrict(strict bool) Option {
	return func(o *ParserOptions) { o.Strict = strict }
}

func WithDefaultCodePage(cp string) Option {
	return func(o *ParserOptions) { o.DefaultCodePage = cp }
}

// recognizedDestinationWords is the closed set of control words that
// select a destination (spec §4.4 "destination" class). A `\*` ignorable
// marker only actually skips its group when the following control word is
// NOT one of these.
var recognizedDestinationWords = map[string]bool{
	"fonttbl": true, "colortbl": true, "stylesheet": true, "info": true,
	"pict": true, "object": true, "field": true, "fldinst": true, "fldrslt": true,
	"header": true, "footer": true, "footnote": true,
}

// Parser is the top-level state machine of spec §4.8: it drives a
// Tokenizer, maintains the formatting/destination stack, dispatches
// control words, and feeds a builder to assemble a Document.
type Parser struct {
	tok    *Tokenizer
	reader ByteReader
	opts   ParserOptions

	stack []groupFrame
	char  CharacterFormat
	para  ParagraphFormat
	dest  Destination
	uc    int

	doc *Document
	b   *builder

	Diagnostics []Diagnostic
	fatal       *ParseError

	codePage    string
	defaultFont int
	rootClosed  bool

	pendingIgnorable  bool
	pendingHighSurrogate *uint16
	pendingRaw        []byte

	curFontIndex   int
	curFontName    []byte
	curFontCharset int

	curColorR, curColorG, curColorB uint8

	inTableRow      bool
	pendingCellX    []int32
	rowHeight       int32
	cellContent     []Element
	currentRowCells []TableCell
	tableRows       []TableRow
}

// NewParser returns a Parser reading from r.
func NewParser(r ByteReader, opts ...Option) *Parser {
	o := DefaultParserOptions()
	for _, opt := range opts {
		opt(&o)
	}
	doc := newDocument()
	p := &Parser{
		reader:      r,
		opts:        o,
		char:        DefaultCharacterFormat(),
		para:        DefaultParagraphFormat(),
		dest:        newBodyDestination(),
		uc:          1,
		doc:         doc,
		b:           newBuilder(doc),
		codePage:    o.DefaultCodePage,
		curFontIndex: -1,
	}
	p.tok = NewTokenizer(r, p.recordDiagnostic)
	return p
}

func (p *Parser) recordDiagnostic(d Diagnostic) {
	p.Diagnostics = append(p.Diagnostics, d)
	logDiagnostic(d)
	if p.opts.Strict && p.fatal == nil {
		p.fatal = newParseError(d.Kind, d.Offset, nil)
	}
}

func (p *Parser) setFatal(err *ParseError) {
	if p.fatal == nil {
		p.fatal = err
	}
}

// Parse runs the state machine to completion and returns the assembled
// Document, or nil and an error on fatal failure (spec §7: partial
// documents are never returned).
func (p *Parser) Parse() (*Document, error) {
	for {
		if p.fatal != nil {
			p.doc.Dispose()
			return nil, p.fatal
		}
		if p.rootClosed {
			break
		}
		tok := p.tok.Next()
		if tok.Kind == TokEOF {
			break
		}

		switch tok.Kind {
		case TokText:
			p.pendingRaw = append(p.pendingRaw, tok.Bytes...)
			continue
		case TokHexByte:
			if p.dest.Kind == DestPicture || p.dest.Kind == DestObject {
				p.flushPending()
				p.appendImageByte(tok.HexValue)
			} else {
				p.pendingRaw = append(p.pendingRaw, tok.HexValue)
			}
			continue
		}

		p.flushPending()

		switch tok.Kind {
		case TokGroupOpen:
			p.pushGroup()
		case TokGroupClose:
			p.popGroup()
		case TokControlWord:
			p.dispatchControlWord(tok)
		case TokControlSymbol:
			p.dispatchControlSymbol(tok)
		case TokBinaryRun:
			if p.dest.Kind == DestPicture || p.dest.Kind == DestObject {
				p.dest.accum.hex = append(p.dest.accum.hex, tok.Bytes...)
			}
		}

		if err := p.reader.Err(); err != nil {
			p.setFatal(newParseError(ErrIO, p.reader.Position(), err))
		}
	}

	p.flushPending()
	p.commitTable()

	// EOF with a non-empty stack: close any open groups implicitly
	// (spec §4.8).
	for len(p.stack) > 0 {
		p.popGroup()
	}

	if p.fatal != nil {
		p.doc.Dispose()
		return nil, p.fatal
	}

	p.doc.Diagnostics = p.Diagnostics
	return p.doc, nil
}

func (p *Parser) pushGroup() {
	if len(p.stack) >= p.opts.MaxGroupDepth {
		p.setFatal(newParseError(ErrDepthExceeded, p.reader.Position(), nil))
		return
	}
	p.stack = append(p.stack, groupFrame{char: p.char, para: p.para, dest: p.dest, uc: p.uc})
}

func (p *Parser) popGroup() {
	if len(p.stack) == 0 {
		d := Diagnostic{Kind: ErrUnbalancedGroup, Offset: p.reader.Position(), Message: "unmatched '}' ignored"}
		p.recordDiagnostic(d)
		return
	}

	p.finalizeDestination()

	frame := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	p.char = frame.char
	p.para = frame.para
	p.dest = frame.dest
	p.uc = frame.uc

	if len(p.stack) == 0 {
		p.rootClosed = true
	}
}

// finalizeDestination commits whatever the about-to-close group's
// destination was accumulating: a font-table entry left without a
// trailing ';', a \pict/\object payload, or a \field's Hyperlink.
func (p *Parser) finalizeDestination() {
	switch p.dest.Kind {
	case DestPicture, DestObject:
		if p.dest.accum != nil && len(p.stack) == p.dest.accum.depth {
			p.commitImage(p.dest.accum)
		}
	case DestField:
		if p.dest.field != nil && len(p.stack) == p.dest.field.depth {
			p.commitHyperlink(p.dest.field)
		}
	case DestFontTable:
		if len(p.curFontName) > 0 {
			p.commitFontEntry()
		}
	}
}

// flushPending decodes and commits whatever raw bytes have accumulated
// since the last flush, routing them per the current destination (spec
// §4.4 "Destination dispatch for text"). It must run before any token that
// could change destination or character format, so a batch of bytes is
// always decoded under the format/destination that was active when they
// were read.
func (p *Parser) flushPending() {
	if len(p.pendingRaw) == 0 {
		return
	}
	raw := p.pendingRaw
	p.pendingRaw = nil

	switch p.dest.Kind {
	case DestBody:
		p.appendText(decodeCodePage(raw, p.codePage), p.char)
	case DestFontTable:
		p.handleFontTableText(raw)
	case DestColorTable:
		p.handleColorTableText(raw)
	case DestPicture, DestObject:
		p.handlePictureText(raw)
	case DestInfo:
		p.appendInfoText(decodeCodePage(raw, p.codePage))
	case DestField:
		decoded := decodeCodePage(raw, p.codePage)
		if p.dest.field == nil {
			return
		}
		if p.dest.FieldPhase == FieldPhaseResult {
			p.dest.field.resultRuns = append(p.dest.field.resultRuns, TextRun{Text: decoded, Format: p.char})
		} else {
			p.dest.field.instruction = append(p.dest.field.instruction, decoded...)
		}
	case DestStyleSheet, DestIgnorable:
		// discarded
	}
}

func utf8Encode(r rune) []byte {
	buf := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(buf, r)
	return buf[:n]
}

// emitText routes a literal byte span (from a control symbol or a decoded
// \u code point) to the Body, Info, or Field destination the way
// flushPending does for ordinary text. In any other destination (font
// table, color table, picture, ...) the bytes are dropped.
func (p *Parser) emitText(b []byte) {
	switch p.dest.Kind {
	case DestBody:
		p.appendText(b, p.char)
	case DestInfo:
		p.appendInfoText(b)
	case DestField:
		if p.dest.field == nil {
			return
		}
		if p.dest.FieldPhase == FieldPhaseResult {
			p.dest.field.resultRuns = append(p.dest.field.resultRuns, TextRun{Text: b, Format: p.char})
		} else {
			p.dest.field.instruction = append(p.dest.field.instruction, b...)
		}
	}
}

func (p *Parser) dispatchControlSymbol(tok Token) {
	switch tok.Symbol {
	case '*':
		p.pendingIgnorable = true
	case '~':
		p.emitText([]byte{0xC2, 0xA0}) // U+00A0 non-breaking space
	case '_':
		p.emitText(utf8Encode(0x2011)) // non-breaking hyphen
	case '-':
		p.emitText(utf8Encode(0x00AD)) // soft hyphen
	case '\\':
		p.emitText([]byte("\\"))
	case '{':
		p.emitText([]byte("{"))
	case '}':
		p.emitText([]byte("}"))
	default:
		// unrecognized control symbol: ignored (spec §4.4 closed set)
	}
}

func (p *Parser) dispatchControlWord(tok Token) {
	if p.pendingIgnorable {
		p.pendingIgnorable = false
		if !recognizedDestinationWords[tok.Name] {
			p.dest = Destination{Kind: DestIgnorable, IgnorableGroupDepth: len(p.stack)}
			return
		}
	}

	on := !tok.HasParam || tok.Param != 0

	switch tok.Name {
	// --- toggle/flag class ---
	case "b":
		p.char.Bold = on
	case "i":
		p.char.Italic = on
	case "ul":
		p.char.Underline = on
	case "strike":
		p.char.Strike = on
	case "super":
		p.char.Superscript = on
		if on {
			p.char.Subscript = false
		}
	case "sub":
		p.char.Subscript = on
		if on {
			p.char.Superscript = false
		}
	case "v":
		p.char.Hidden = on
	case "scaps":
		p.char.SmallCaps = on
	case "caps":
		p.char.AllCaps = on
	case "plain":
		p.char = DefaultCharacterFormat()

	// --- paragraph alignment (data model requires it; spec §3) ---
	case "ql":
		p.para.Alignment = AlignLeft
	case "qr":
		p.para.Alignment = AlignRight
	case "qc":
		p.para.Alignment = AlignCenter
	case "qj":
		p.para.Alignment = AlignJustify
	case "pard":
		p.para = DefaultParagraphFormat()
		p.commitTable()
	case "intbl":
		p.para.InTable = true

	// --- table row/cell grammar (spec §3 Table/TableRow/TableCell) ---
	case "trowd":
		p.beginTableRow()
	case "trrh":
		p.rowHeight = tok.Param
	case "cellx":
		p.pendingCellX = append(p.pendingCellX, tok.Param)
	case "cell":
		p.endTableCell()
	case "row":
		p.endTableRow()

	// --- value class ---
	case "fs":
		p.char.FontSizeHalfPoints = uint16(tok.Param)
	case "f":
		if p.dest.Kind == DestFontTable {
			p.commitFontEntry()
			p.curFontIndex = int(tok.Param)
			p.curFontCharset = 0
		} else {
			p.char.FontIndex = tok.Param
		}
	case "fcharset":
		if p.dest.Kind == DestFontTable {
			p.curFontCharset = int(tok.Param)
		}
	case "cf":
		p.char.ForegroundColorIndex = tok.Param
	case "cb", "highlight":
		p.char.BackgroundColorIndex = tok.Param
	case "fi":
		p.para.FirstIndent = tok.Param
	case "li":
		p.para.LeftIndent = tok.Param
	case "ri":
		p.para.RightIndent = tok.Param
	case "sb":
		p.para.SpaceBefore = tok.Param
	case "sa":
		p.para.SpaceAfter = tok.Param
	case "uc":
		if tok.HasParam {
			p.uc = int(tok.Param)
		}
	case "red":
		if p.dest.Kind == DestColorTable {
			p.curColorR = uint8(tok.Param)
		}
	case "green":
		if p.dest.Kind == DestColorTable {
			p.curColorG = uint8(tok.Param)
		}
	case "blue":
		if p.dest.Kind == DestColorTable {
			p.curColorB = uint8(tok.Param)
		}

	// --- character class: emits an element or literal character ---
	case "par":
		p.appendBreak(ParagraphBreakKind)
	case "line":
		p.appendBreak(LineBreakKind)
	case "page":
		p.appendBreak(PageBreakKind)
	case "tab":
		p.emitText([]byte("\t"))
	case "emdash":
		p.emitText(utf8Encode(0x2014))
	case "endash":
		p.emitText(utf8Encode(0x2013))
	case "lquote":
		p.emitText(utf8Encode(0x2018))
	case "rquote":
		p.emitText(utf8Encode(0x2019))
	case "ldblquote":
		p.emitText(utf8Encode(0x201C))
	case "rdblquote":
		p.emitText(utf8Encode(0x201D))
	case "bullet":
		p.emitText(utf8Encode(0x2022))

	// --- destination class ---
	case "fonttbl":
		p.dest = Destination{Kind: DestFontTable}
		p.curFontIndex, p.curFontName, p.curFontCharset = -1, nil, 0
	case "colortbl":
		p.dest = Destination{Kind: DestColorTable}
		p.curColorR, p.curColorG, p.curColorB = 0, 0, 0
	case "stylesheet":
		p.dest = Destination{Kind: DestStyleSheet}
	case "info":
		p.dest = Destination{Kind: DestInfo}
	case "title", "subject", "author", "operator", "company", "doccomm":
		if p.dest.Kind == DestInfo {
			p.dest.InfoField = tok.Name
		}
	case "pict":
		p.dest = Destination{Kind: DestPicture, accum: &pictureAccum{depth: len(p.stack)}}
	case "object":
		p.dest = Destination{Kind: DestObject, accum: &pictureAccum{depth: len(p.stack)}}
	case "field":
		p.dest = Destination{Kind: DestField, field: &fieldAccum{depth: len(p.stack)}}
	case "fldinst":
		p.ensureFieldDestination()
		p.dest.FieldPhase = FieldPhaseInstruction
	case "fldrslt":
		p.ensureFieldDestination()
		p.dest.FieldPhase = FieldPhaseResult
	case "header", "footer", "footnote":
		p.dest = Destination{Kind: DestIgnorable, IgnorableGroupDepth: len(p.stack)}

	// --- picture/object shape & format control words ---
	case "picw":
		if p.dest.accum != nil {
			p.dest.accum.width = int(tok.Param)
		}
	case "pich":
		if p.dest.accum != nil {
			p.dest.accum.height = int(tok.Param)
		}
	case "wbitmap":
		if p.dest.accum != nil {
			p.dest.accum.format = ImageBMP
		}
	case "wmetafile":
		if p.dest.accum != nil {
			p.dest.accum.format = ImageWMF
		}
	case "pngblip":
		if p.dest.accum != nil {
			p.dest.accum.format = ImagePNG
		}
	case "jpegblip":
		if p.dest.accum != nil {
			p.dest.accum.format = ImageJPEG
		}
	case "emfblip":
		if p.dest.accum != nil {
			p.dest.accum.format = ImageEMF
		}

	// --- encoding/meta class ---
	case "ansi", "mac", "pc", "pca":
		if cp, ok := codePageFromKeyword(tok.Name); ok {
			p.codePage = cp
		}
	case "ansicpg":
		if cp, ok := codePageFromKeyword(strconv.Itoa(int(tok.Param))); ok {
			p.codePage = cp
		}
	case "deff":
		p.defaultFont = int(tok.Param)
	case "u":
		p.dispatchUnicode(tok)
	case "fromhtml":
		p.doc.Origin = OriginHTML
	case "fromtext":
		p.doc.Origin = OriginText

	default:
		// unknown control word in Body (or any other destination): per
		// spec §4.4 the recognized set is closed, everything else is
		// silently ignored.
	}
}

// appendText appends a run of text to whatever is collecting body content
// right now: the document's top-level Elements, or the current table
// cell's content when a \trowd...\row group is open (spec §3 Table).
func (p *Parser) appendText(text []byte, format CharacterFormat) {
	if p.inTableRow {
		p.appendCellText(text, format)
		return
	}
	p.b.appendText(text, format)
}

func (p *Parser) appendCellText(text []byte, format CharacterFormat) {
	if len(text) == 0 {
		return
	}
	n := len(p.cellContent)
	if n > 0 {
		if last, ok := p.cellContent[n-1].(TextRun); ok && last.Format == format {
			merged := p.doc.arena.copyBytes(append(append([]byte{}, last.Text...), text...))
			p.cellContent[n-1] = TextRun{Text: merged, Format: format}
			return
		}
	}
	owned := p.doc.arena.copyBytes(text)
	p.cellContent = append(p.cellContent, TextRun{Text: owned, Format: format})
}

func (p *Parser) appendBreak(kind BreakKind) {
	if p.inTableRow {
		p.cellContent = append(p.cellContent, Break{Kind: kind})
		return
	}
	if p.dest.Kind != DestBody {
		return
	}
	p.b.appendBreak(kind)
}

// beginTableRow resets per-row accumulators on \trowd, which per RTF
// grammar always precedes a row's \cellx declarations and cell content.
func (p *Parser) beginTableRow() {
	p.inTableRow = true
	p.pendingCellX = nil
	p.rowHeight = 0
	p.cellContent = nil
}

// endTableCell closes the current cell on \cell, pairing it with the next
// undelivered \cellx boundary (cell N's right edge is the Nth \cellx
// declared after the row's \trowd).
func (p *Parser) endTableCell() {
	var cellX int32
	if len(p.pendingCellX) > 0 {
		cellX = p.pendingCellX[0]
		p.pendingCellX = p.pendingCellX[1:]
	}
	p.currentRowCells = append(p.currentRowCells, TableCell{Content: p.cellContent, CellX: cellX})
	p.cellContent = nil
}

// endTableRow closes the row on \row, appending it to the table being
// accumulated across possibly several \trowd...\row sequences; the table
// itself is committed to the document by commitTable.
func (p *Parser) endTableRow() {
	p.tableRows = append(p.tableRows, TableRow{Cells: p.currentRowCells, HeightTwips: p.rowHeight})
	p.currentRowCells = nil
	p.inTableRow = false
}

// commitTable flushes any accumulated table rows as one Table element.
// Called on \pard (the usual post-table reset) and at end of input, so a
// table spanning several \trowd...\row sequences becomes a single Table.
func (p *Parser) commitTable() {
	if len(p.tableRows) == 0 {
		return
	}
	rows := p.tableRows
	p.tableRows = nil
	p.b.appendTable(Table{Rows: rows})
}

func (p *Parser) ensureFieldDestination() {
	if p.dest.Kind != DestField || p.dest.field == nil {
		p.dest = Destination{Kind: DestField, field: &fieldAccum{depth: len(p.stack)}}
	}
}

// dispatchUnicode implements spec §4.4's \uN semantics: sign conversion,
// surrogate pairing across two \u tokens, and skipping exactly `uc`
// replacement units after each one.
func (p *Parser) dispatchUnicode(tok Token) {
	val := uint16(tok.Param)

	if p.uc > 0 {
		p.tok.SkipReplacementUnits(p.uc)
	}

	if val >= 0xD800 && val <= 0xDBFF {
		v := val
		p.pendingHighSurrogate = &v
		return
	}

	if p.pendingHighSurrogate != nil {
		hi := *p.pendingHighSurrogate
		p.pendingHighSurrogate = nil
		if val >= 0xDC00 && val <= 0xDFFF {
			r := ((rune(hi) - 0xD800) << 10) + (rune(val) - 0xDC00) + 0x10000
			p.emitText(utf8Encode(r))
			return
		}
		p.emitText(utf8Encode(utf8.RuneError))
	}

	if val >= 0xDC00 && val <= 0xDFFF {
		p.emitText(utf8Encode(utf8.RuneError))
		return
	}

	p.emitText(utf8Encode(rune(val)))
}
