package rtfdoc

// appendInfoText appends decoded text to whichever Metadata field the
// enclosing \info sub-destination (\title, \author, ...) names.
func (p *Parser) appendInfoText(decoded []byte) {
	s := string(decoded)
	switch p.dest.InfoField {
	case "title":
		p.doc.Meta.Title += s
	case "subject":
		p.doc.Meta.Subject += s
	case "author":
		p.doc.Meta.Author += s
	case "operator":
		p.doc.Meta.Operator += s
	case "company":
		p.doc.Meta.Company += s
	case "doccomm", "comment":
		p.doc.Meta.Comment += s
	}
}
