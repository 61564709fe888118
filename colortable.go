package rtfdoc

import "bytes"

// highlightColorNames maps \highlightN to the name RTF 1.9 assigns it,
// adapted from the teacher's rtfHighlightMap.
var highlightColorNames = map[int]string{
	1: "Black", 2: "Blue", 3: "Cyan", 4: "Green", 5: "Magenta", 6: "Red",
	7: "Yellow", 8: "Unused", 9: "DarkBlue", 10: "DarkCyan", 11: "DarkGreen",
	12: "DarkMagenta", 13: "DarkRed", 14: "DarkYellow", 15: "DarkGray", 16: "LightGray",
}

// HighlightName resolves a \highlightN index to its RTF 1.9 color name.
func HighlightName(index int) (string, bool) {
	name, ok := highlightColorNames[index]
	return name, ok
}

// handleColorTableText feeds a \colortbl body's literal text through the
// current color accumulator, committing a ColorEntry on every ';'. The
// conventional leading ';' (before any \redN\greenN\blueN) commits the
// all-zero "auto" entry at index 0, per spec §4.4.
func (p *Parser) handleColorTableText(raw []byte) {
	segs := bytes.Split(raw, []byte{';'})
	for i := range segs {
		if i < len(segs)-1 {
			p.doc.Colors = append(p.doc.Colors, ColorEntry{R: p.curColorR, G: p.curColorG, B: p.curColorB})
			p.curColorR, p.curColorG, p.curColorB = 0, 0, 0
		}
	}
}
