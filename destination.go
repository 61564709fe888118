package rtfdoc

// DestinationKind is the tagged-variant discriminator for Destination, per
// spec §3/§4.4. Destinations decide who consumes text; control words
// either mutate formatting state, select a destination, or emit elements —
// the two concerns stay orthogonal per spec §9.
type DestinationKind int

const (
	DestBody DestinationKind = iota
	DestFontTable
	DestColorTable
	DestStyleSheet
	DestInfo
	DestPicture
	DestObject
	DestField
	DestIgnorable
)

func (k DestinationKind) String() string {
	switch k {
	case DestBody:
		return "Body"
	case DestFontTable:
		return "FontTable"
	case DestColorTable:
		return "ColorTable"
	case DestStyleSheet:
		return "StyleSheet"
	case DestInfo:
		return "Info"
	case DestPicture:
		return "Picture"
	case DestObject:
		return "Object"
	case DestField:
		return "Field"
	case DestIgnorable:
		return "Ignorable"
	default:
		return "Unknown"
	}
}

// FieldPhase distinguishes the instruction half of a \field (\fldinst,
// carrying e.g. HYPERLINK "target") from the result half (\fldrslt,
// carrying the display-text runs).
type FieldPhase int

const (
	FieldPhaseInstruction FieldPhase = iota
	FieldPhaseResult
)

// pictureAccum collects a \pict (or \object) destination's shape and raw
// bytes across however many hex/binary tokens appear in the group. It is
// shared by reference across nested groups within the same \pict, which is
// why Destination holds a pointer rather than a value: GroupFrame.dest is
// copied by value on every group push, but the accumulator underneath
// keeps accumulating into the same buffer.
type pictureAccum struct {
	format ImageFormat
	width  int
	height int
	bpp    int
	hex    []byte // accumulated hex-decoded / \binN bytes

	// depth is the group stack depth at which the \pict/\object destination
	// was created; finalizeDestination commits the image only when the
	// closing group is back at this same depth.
	depth int
}

// fieldAccum collects a \field's instruction target and result runs so the
// closing \field group can commit a single Hyperlink.
type fieldAccum struct {
	resultRuns  []TextRun
	instruction []byte // raw \fldinst text, scanned for HYPERLINK "target"

	// depth is the group stack depth at which the \field destination was
	// created; finalizeDestination commits the Hyperlink only when the
	// closing group is back at this same depth.
	depth int
}

// Destination is the contextual meaning of text within the current group,
// per spec §3/§4.4.
type Destination struct {
	Kind DestinationKind

	// InfoField names which metadata field (title, author, ...) text
	// inside a DestInfo destination accumulates into.
	InfoField string

	// FieldPhase applies only to DestField.
	FieldPhase FieldPhase

	// IgnorableGroupDepth records the group depth at which a DestIgnorable
	// destination began. Nothing reads it: the destination ends when that
	// group's frame is popped and the enclosing destination is restored.
	IgnorableGroupDepth int

	// accum holds the shared \pict/\object byte accumulator. Destination is
	// copied by value on every group push, but the accumulator underneath
	// keeps accumulating into the same buffer across nested groups within
	// one \pict.
	accum *pictureAccum
	field *fieldAccum
}

func newBodyDestination() Destination {
	return Destination{Kind: DestBody}
}

// groupFrame is the per-group snapshot pushed on '{' and restored on '}',
// per spec §3 (GroupFrame) and §4.3.
type groupFrame struct {
	char CharacterFormat
	para ParagraphFormat
	dest Destination
	uc   int // \ucN skip count, default 1
}
