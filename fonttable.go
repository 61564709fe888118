package rtfdoc

import (
	"bytes"
	"strings"
)

// handleFontTableText feeds a \fonttbl body's literal text through the
// current font entry accumulator, committing on every ';' the way real
// font tables delimit entries, whether or not each entry has its own
// nested group.
func (p *Parser) handleFontTableText(raw []byte) {
	segs := bytes.Split(raw, []byte{';'})
	for i, seg := range segs {
		p.curFontName = append(p.curFontName, seg...)
		if i < len(segs)-1 {
			p.commitFontEntry()
		}
	}
}

// commitFontEntry writes the accumulated name as the current font index's
// table entry. A no-op when nothing has accumulated since the last commit,
// so calling it again on the next \f before any text arrives (the common
// case for a fresh entry) never clobbers the previous entry with a blank
// name.
func (p *Parser) commitFontEntry() {
	if len(p.curFontName) == 0 {
		return
	}
	name := strings.TrimSpace(string(p.curFontName))
	if p.curFontIndex >= 0 {
		p.doc.Fonts[p.curFontIndex] = FontEntry{Index: p.curFontIndex, Name: name, Charset: p.curFontCharset}
	}
	p.curFontName = nil
}
