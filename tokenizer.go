package rtfdoc

// Tokenizer turns a ByteReader into the lexical units of spec §4.2: group
// open/close, control words (with optional signed parameter and the
// single optional space delimiter absorbed), control symbols, hex escapes,
// binary spans, and literal text runs.
type Tokenizer struct {
	r    ByteReader
	diag func(Diagnostic)
}

// NewTokenizer returns a Tokenizer reading from r. diag, if non-nil, is
// called for every recoverable lexical diagnostic (spec §7 "recoverable"
// category): truncated hex escapes and truncated \bin spans. Over-long
// control words are truncated without a diagnostic.
func NewTokenizer(r ByteReader, diag func(Diagnostic)) *Tokenizer {
	return &Tokenizer{r: r, diag: diag}
}

func (t *Tokenizer) report(kind ErrorKind, msg string) {
	if t.diag == nil {
		return
	}
	t.diag(Diagnostic{Kind: kind, Offset: t.r.Position(), Message: msg})
}

func isAsciiLetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isDigit(b byte) bool       { return b >= '0' && b <= '9' }
func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func hexVal(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10
	}
	return -1
}

// Next returns the next token. At end-of-input it returns a TokEOF token;
// callers should then check the underlying ByteReader's Err() for a fatal
// I/O error (spec §7 "fatal from source").
func (t *Tokenizer) Next() Token {
	b, ok := t.r.Peek()
	if !ok {
		return Token{Kind: TokEOF}
	}

	switch b {
	case '{':
		t.r.Consume()
		return Token{Kind: TokGroupOpen}
	case '}':
		t.r.Consume()
		return Token{Kind: TokGroupClose}
	case '\\':
		t.r.Consume()
		return t.parseControl()
	case '\r', '\n':
		t.r.Consume()
		return t.Next()
	default:
		return t.parseText()
	}
}

// parseControl is called just after consuming the leading '\'.
func (t *Tokenizer) parseControl() Token {
	b, ok := t.r.Peek()
	if !ok {
		// a lone trailing backslash: treat as an empty control symbol
		return Token{Kind: TokControlSymbol, Symbol: 0}
	}
	if isAsciiLetter(b) {
		return t.parseControlWord()
	}
	return t.parseControlSymbol()
}

func (t *Tokenizer) parseControlSymbol() Token {
	b, _ := t.r.Consume()

	if b == '\'' {
		hi, ok1 := t.r.Peek()
		if !ok1 || !isHexDigit(hi) {
			t.report(ErrInvalidHexEscape, "truncated \\' hex escape")
			return Token{Kind: TokControlSymbol, Symbol: '\''}
		}
		t.r.Consume()
		lo, ok2 := t.r.Peek()
		if !ok2 || !isHexDigit(lo) {
			t.report(ErrInvalidHexEscape, "truncated \\' hex escape")
			return Token{Kind: TokHexByte, HexValue: byte(hexVal(hi))}
		}
		t.r.Consume()
		return Token{Kind: TokHexByte, HexValue: byte(hexVal(hi)*16 + hexVal(lo))}
	}

	return Token{Kind: TokControlSymbol, Symbol: b}
}

const maxControlWordLen = 32
const maxParamDigits = 10

func (t *Tokenizer) parseControlWord() Token {
	name := make([]byte, 0, 8)
	for {
		b, ok := t.r.Peek()
		if !ok || !isAsciiLetter(b) {
			break
		}
		if len(name) >= maxControlWordLen {
			break
		}
		t.r.Consume()
		name = append(name, b)
	}
	// drain any further letters past the truncation point so the stream
	// stays in sync.
	for {
		b, ok := t.r.Peek()
		if !ok || !isAsciiLetter(b) {
			break
		}
		t.r.Consume()
	}

	wordName := string(name)

	if wordName == "bin" {
		return t.parseBinaryControlWord()
	}

	negative := false
	if b, ok := t.r.Peek(); ok && b == '-' {
		t.r.Consume()
		negative = true
	}

	var param int32
	hasParam := false
	digits := 0
	for digits < maxParamDigits {
		b, ok := t.r.Peek()
		if !ok || !isDigit(b) {
			break
		}
		t.r.Consume()
		param = param*10 + int32(b-'0')
		hasParam = true
		digits++
	}
	if negative {
		param = -param
		hasParam = true
	}

	// The trailing space delimiter is only absorbed for a parameterless
	// control word (e.g. \b, \i): a space after a numeric parameter (even
	// \b0) is ordinary text, not a delimiter — see spec §8 scenario 1,
	// where " and " keeps its leading space after \b0 but "bold" loses its
	// leading space after bare \b.
	if !hasParam {
		if b, ok := t.r.Peek(); ok && b == ' ' {
			t.r.Consume()
		}
	}

	return Token{Kind: TokControlWord, Name: wordName, HasParam: hasParam, Param: param}
}

// parseBinaryControlWord handles \binN: N is a mandatory unsigned decimal
// parameter, immediately followed by exactly N raw bytes with no
// intervening delimiter space (spec §4.2).
func (t *Tokenizer) parseBinaryControlWord() Token {
	var n int32
	digits := 0
	for digits < maxParamDigits {
		b, ok := t.r.Peek()
		if !ok || !isDigit(b) {
			break
		}
		t.r.Consume()
		n = n*10 + int32(b-'0')
		digits++
	}
	if n <= 0 {
		return Token{Kind: TokBinaryRun, Bytes: nil}
	}
	buf := make([]byte, 0, n)
	for i := int32(0); i < n; i++ {
		b, ok := t.r.Consume()
		if !ok {
			t.report(ErrTruncatedBinary, "binary span truncated before declared length")
			break
		}
		buf = append(buf, b)
	}
	return Token{Kind: TokBinaryRun, Bytes: buf}
}

// SkipReplacementUnits discards exactly n "replacement units" from the
// stream immediately following a \uN control word, per spec §4.4: each
// unit is one raw text byte, one \'HH hex escape, or one whole control
// word/symbol. A scope delimiter ('{' or '}') ends the skippable data
// early even if fewer than n units were consumed.
func (t *Tokenizer) SkipReplacementUnits(n int) {
	for i := 0; i < n; i++ {
		b, ok := t.r.Peek()
		if !ok {
			return
		}
		if b == '{' || b == '}' {
			return
		}
		if b == '\\' {
			t.r.Consume()
			nb, ok := t.r.Peek()
			if !ok {
				return
			}
			if nb == '\'' {
				t.r.Consume()
				t.r.Peek() // hi digit
				t.r.Consume()
				t.r.Peek() // lo digit
				t.r.Consume()
				continue
			}
			if isAsciiLetter(nb) {
				for {
					c, ok := t.r.Peek()
					if !ok || !isAsciiLetter(c) {
						break
					}
					t.r.Consume()
				}
				if c, ok := t.r.Peek(); ok && c == '-' {
					t.r.Consume()
				}
				for {
					c, ok := t.r.Peek()
					if !ok || !isDigit(c) {
						break
					}
					t.r.Consume()
				}
				if c, ok := t.r.Peek(); ok && c == ' ' {
					t.r.Consume()
				}
				continue
			}
			// control symbol: one further byte
			t.r.Consume()
			continue
		}
		t.r.Consume()
	}
}

// parseText accumulates literal text up to the next '\', '{', or '}'. Raw
// CR/LF bytes are dropped rather than included (spec §4.2).
func (t *Tokenizer) parseText() Token {
	buf := make([]byte, 0, 16)
	for {
		b, ok := t.r.Peek()
		if !ok {
			break
		}
		if b == '\\' || b == '{' || b == '}' {
			break
		}
		t.r.Consume()
		if b == '\r' || b == '\n' {
			continue
		}
		buf = append(buf, b)
	}
	return Token{Kind: TokText, Bytes: buf}
}
