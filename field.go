package rtfdoc

import "strings"

// commitHyperlink pairs a \field's accumulated \fldinst instruction and
// \fldrslt display runs into one Hyperlink element when the outer \field
// group closes.
func (p *Parser) commitHyperlink(f *fieldAccum) {
	target := extractHyperlinkTarget(f.instruction)
	if target == "" && len(f.resultRuns) == 0 {
		return
	}
	p.b.appendHyperlink(Hyperlink{Target: target, Display: f.resultRuns})
}

// extractHyperlinkTarget scans a \fldinst body for a HYPERLINK field
// instruction and pulls out its quoted target. Other field types
// (PAGE, REF, ...) yield an empty target; commitHyperlink drops such a
// field only when it also has no result runs, and otherwise commits it as
// a Hyperlink with an empty Target.
func extractHyperlinkTarget(instruction []byte) string {
	s := string(instruction)
	idx := strings.Index(strings.ToUpper(s), "HYPERLINK")
	if idx < 0 {
		return ""
	}
	rest := s[idx+len("HYPERLINK"):]
	start := strings.IndexByte(rest, '"')
	if start < 0 {
		return strings.TrimSpace(rest)
	}
	rest = rest[start+1:]
	end := strings.IndexByte(rest, '"')
	if end < 0 {
		return rest
	}
	return rest[:end]
}
