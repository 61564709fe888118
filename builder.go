package rtfdoc

// builder assembles Elements into a Document, merging adjacent TextRuns
// that share an identical CharacterFormat, per spec §4.6. It is the only
// component that mutates a Document's Elements slice; everything it
// allocates is copied into the document's arena.
type builder struct {
	doc *Document
}

func newBuilder(doc *Document) *builder {
	return &builder{doc: doc}
}

// appendText appends bytes under fmt, merging into the last element if it
// is a TextRun with an identical format. bytes are copied into the arena
// before being retained.
func (b *builder) appendText(text []byte, format CharacterFormat) {
	if len(text) == 0 {
		return
	}
	n := len(b.doc.Elements)
	if n > 0 {
		if last, ok := b.doc.Elements[n-1].(TextRun); ok && last.Format == format {
			merged := b.doc.arena.copyBytes(append(append([]byte{}, last.Text...), text...))
			b.doc.Elements[n-1] = TextRun{Text: merged, Format: format}
			return
		}
	}
	owned := b.doc.arena.copyBytes(text)
	b.doc.Elements = append(b.doc.Elements, TextRun{Text: owned, Format: format})
}

func (b *builder) appendBreak(kind BreakKind) {
	b.doc.Elements = append(b.doc.Elements, Break{Kind: kind})
}

func (b *builder) appendImage(img Image) {
	img.Bytes = b.doc.arena.copyBytes(img.Bytes)
	cp := img
	b.doc.Elements = append(b.doc.Elements, &cp)
}

func (b *builder) appendHyperlink(link Hyperlink) {
	display := make([]TextRun, len(link.Display))
	for i, r := range link.Display {
		display[i] = TextRun{Text: b.doc.arena.copyBytes(r.Text), Format: r.Format}
	}
	link.Display = display
	cp := link
	b.doc.Elements = append(b.doc.Elements, &cp)
}

func (b *builder) appendTable(tbl Table) {
	cp := tbl
	b.doc.Elements = append(b.doc.Elements, &cp)
}
