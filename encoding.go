package rtfdoc

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// codePageByKeyword maps the \ansi/\mac/\pc/\pca control words and
// \ansicpgN numeric code pages to a canonical code-page name, adapted from
// the teacher's rtfEncodeCodePageMap.
var codePageByKeyword = map[string]string{
	"ansi": "CP1252",
	"mac":  "MAC",
	"pc":   "CP437",
	"pca":  "CP850",

	"437":  "CP437",
	"708":  "ASMO-708",
	"819":  "CP819",
	"850":  "CP850",
	"852":  "CP852",
	"860":  "CP860",
	"862":  "CP862",
	"863":  "CP863",
	"864":  "CP864",
	"865":  "CP865",
	"866":  "CP866",
	"874":  "CP874",
	"932":  "CP932",
	"936":  "CP936",
	"949":  "CP949",
	"950":  "CP950",
	"1250": "CP1250",
	"1251": "CP1251",
	"1252": "CP1252",
	"1253": "CP1253",
	"1254": "CP1254",
	"1255": "CP1255",
	"1256": "CP1256",
	"1257": "CP1257",
	"1258": "CP1258",
	"1361": "CP1361",
}

// codePageByCharset maps a \fcharsetN value to a canonical code-page name,
// adapted from the teacher's rtfEncodingCharsetMap.
var codePageByCharset = map[int]string{
	0:   "CP1252",
	1:   "CP1252",
	2:   "CP1252",
	77:  "MAC",
	128: "CP932",
	129: "CP949",
	130: "CP1361",
	134: "CP936",
	136: "CP950",
	161: "CP1253",
	162: "CP1254",
	163: "CP1258",
	177: "CP1255",
	178: "CP1256",
	179: "CP1256",
	180: "CP1256",
	181: "CP1255",
	186: "CP1257",
	204: "CP1251",
	222: "CP874",
	238: "CP1250",
	254: "CP437",
	255: "CP437",
}

func codePageFromKeyword(word string) (string, bool) {
	cp, ok := codePageByKeyword[word]
	return cp, ok
}

func codePageFromCharset(charset int) (string, bool) {
	cp, ok := codePageByCharset[charset]
	return cp, ok
}

// decoderFor returns the golang.org/x/text decoder for a canonical
// code-page name, or nil if the name is unknown (decodeCodePage then falls
// back to CP1252).
func decoderFor(codePage string) *encoding.Decoder {
	switch codePage {
	case "MAC":
		return charmap.Macintosh.NewDecoder()
	case "CP437":
		return charmap.CodePage437.NewDecoder()
	case "ASMO-708":
		return charmap.ISO8859_6.NewDecoder()
	case "CP864":
		// golang.org/x/text/encoding/charmap has no CodePage864 (DOS
		// Arabic); ISO8859_6 is the closest available Arabic charmap and
		// is what the teacher's utils.go left this case to fall through
		// to unhandled (silent CP1252 passthrough) rather than pick.
		return charmap.ISO8859_6.NewDecoder()
	case "CP819":
		return charmap.ISO8859_1.NewDecoder()
	case "CP850":
		return charmap.CodePage850.NewDecoder()
	case "CP852":
		return charmap.CodePage852.NewDecoder()
	case "CP860":
		return charmap.CodePage860.NewDecoder()
	case "CP862":
		return charmap.CodePage862.NewDecoder()
	case "CP863":
		return charmap.CodePage863.NewDecoder()
	case "CP865":
		return charmap.CodePage865.NewDecoder()
	case "CP866":
		return charmap.CodePage866.NewDecoder()
	case "CP874":
		return charmap.Windows874.NewDecoder()
	case "CP932":
		return japanese.ShiftJIS.NewDecoder()
	case "CP936":
		return simplifiedchinese.GBK.NewDecoder()
	case "CP949", "CP1361":
		return korean.EUCKR.NewDecoder()
	case "CP950":
		return traditionalchinese.Big5.NewDecoder()
	case "CP1250":
		return charmap.Windows1250.NewDecoder()
	case "CP1251":
		return charmap.Windows1251.NewDecoder()
	case "CP1252":
		return charmap.Windows1252.NewDecoder()
	case "CP1253":
		return charmap.Windows1253.NewDecoder()
	case "CP1254":
		return charmap.Windows1254.NewDecoder()
	case "CP1255":
		return charmap.Windows1255.NewDecoder()
	case "CP1256":
		return charmap.Windows1256.NewDecoder()
	case "CP1257":
		return charmap.Windows1257.NewDecoder()
	case "CP1258":
		return charmap.Windows1258.NewDecoder()
	default:
		return nil
	}
}

// encoderFor returns the encoder symmetrical to decoderFor. Nothing in the
// package calls it: the generator writes non-ASCII text as \uN? escapes
// and emits no \'HH escapes.
func encoderFor(codePage string) *encoding.Encoder {
	switch codePage {
	case "MAC":
		return charmap.Macintosh.NewEncoder()
	case "CP437":
		return charmap.CodePage437.NewEncoder()
	case "ASMO-708":
		return charmap.ISO8859_6.NewEncoder()
	case "CP864":
		return charmap.ISO8859_6.NewEncoder()
	case "CP819":
		return charmap.ISO8859_1.NewEncoder()
	case "CP850":
		return charmap.CodePage850.NewEncoder()
	case "CP852":
		return charmap.CodePage852.NewEncoder()
	case "CP860":
		return charmap.CodePage860.NewEncoder()
	case "CP862":
		return charmap.CodePage862.NewEncoder()
	case "CP863":
		return charmap.CodePage863.NewEncoder()
	case "CP865":
		return charmap.CodePage865.NewEncoder()
	case "CP866":
		return charmap.CodePage866.NewEncoder()
	case "CP874":
		return charmap.Windows874.NewEncoder()
	case "CP932":
		return japanese.ShiftJIS.NewEncoder()
	case "CP936":
		return simplifiedchinese.GBK.NewEncoder()
	case "CP949", "CP1361":
		return korean.EUCKR.NewEncoder()
	case "CP950":
		return traditionalchinese.Big5.NewEncoder()
	case "CP1250":
		return charmap.Windows1250.NewEncoder()
	case "CP1251":
		return charmap.Windows1251.NewEncoder()
	case "CP1252":
		return charmap.Windows1252.NewEncoder()
	case "CP1253":
		return charmap.Windows1253.NewEncoder()
	case "CP1254":
		return charmap.Windows1254.NewEncoder()
	case "CP1255":
		return charmap.Windows1255.NewEncoder()
	case "CP1256":
		return charmap.Windows1256.NewEncoder()
	case "CP1257":
		return charmap.Windows1257.NewEncoder()
	case "CP1258":
		return charmap.Windows1258.NewEncoder()
	default:
		return nil
	}
}

// decodeCodePage decodes b (bytes in the given RTF code page) to UTF-8. An
// unknown or empty code page is treated as CP1252, the RTF 1.9 default
// (spec §4.4 "Body: decoded using the active code page (default CP1252)").
func decodeCodePage(b []byte, codePage string) []byte {
	if codePage == "" {
		codePage = "CP1252"
	}
	dec := decoderFor(codePage)
	if dec == nil {
		dec = charmap.Windows1252.NewDecoder()
	}
	out, err := dec.Bytes(b)
	if err != nil {
		return b
	}
	return out
}
