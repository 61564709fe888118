package rtfdoc

// CharacterFormat is the set of character-level attributes tracked per
// spec §3. Value semantics: it is copied by value on every group push and
// restored by value on group pop.
type CharacterFormat struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strike        bool
	Superscript   bool
	Subscript     bool
	Hidden        bool
	SmallCaps     bool
	AllCaps       bool
	FontSizeHalfPoints uint16 // 0 = unset
	FontIndex          int32  // -1 = unset
	ForegroundColorIndex int32 // -1 = unset
	BackgroundColorIndex int32 // -1 = unset
}

// DefaultCharacterFormat returns the zero-value format with the index
// sentinels set to "unset" rather than the Go zero value of 0, which would
// otherwise collide with a real font/color table index 0.
func DefaultCharacterFormat() CharacterFormat {
	return CharacterFormat{FontIndex: -1, ForegroundColorIndex: -1, BackgroundColorIndex: -1}
}

// Alignment is a paragraph's horizontal alignment.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
	AlignCenter
	AlignJustify
)

// ParagraphFormat is the set of paragraph-level attributes tracked per
// spec §3. Value semantics, same as CharacterFormat.
type ParagraphFormat struct {
	Alignment    Alignment
	FirstIndent  int32 // twips
	LeftIndent   int32 // twips
	RightIndent  int32 // twips
	SpaceBefore  int32 // twips
	SpaceAfter   int32 // twips
	InTable      bool
}

// DefaultParagraphFormat returns the zero-value paragraph format.
func DefaultParagraphFormat() ParagraphFormat {
	return ParagraphFormat{Alignment: AlignLeft}
}
