package rtfdoc

import "io"

// ParseBytes parses an in-memory RTF document, per spec §6's parse/free
// contract expressed as an idiomatic Go entry point rather than an opaque
// handle. The returned Document's Dispose must eventually be called to
// release its arena.
func ParseBytes(b []byte, opts ...Option) (*Document, error) {
	p := NewParser(NewSliceReader(b), opts...)
	return p.Parse()
}

// ParseReader parses RTF streamed from r, refilling in fixed-size chunks
// rather than buffering the whole input (spec §4.1).
func ParseReader(r io.Reader, opts ...Option) (*Document, error) {
	p := NewParser(NewStreamReader(r), opts...)
	return p.Parse()
}

// ParseCompressed decompresses an MS-OXRTFCOMPRESSED-framed buffer (a
// Word/Outlook "compressed RTF" blob, the format those stacks actually
// exchange) and parses the result.
func ParseCompressed(b []byte, opts ...Option) (*Document, error) {
	plain, err := DecompressBytes(b)
	if err != nil {
		return nil, err
	}
	return ParseBytes(plain, opts...)
}

// GenerateBytes serializes doc back to RTF 1.9 source, mirroring spec §6's
// "generate" operation. codePage is passed to NewGenerator, which does not
// consult it: non-ASCII text is always written as \uN? escapes.
func GenerateBytes(doc *Document, codePage string) []byte {
	return Generate(doc, codePage)
}
