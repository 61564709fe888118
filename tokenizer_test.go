package rtfdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokens(t *testing.T, src string) []Token {
	t.Helper()
	tok := NewTokenizer(NewSliceReader([]byte(src)), nil)
	var out []Token
	for {
		tk := tok.Next()
		out = append(out, tk)
		if tk.Kind == TokEOF {
			return out
		}
	}
}

func TestTokenizerControlWordSpaceDelimiter(t *testing.T) {
	// A parameterless control word absorbs its trailing space delimiter;
	// one carrying a numeric parameter, even \b0, does not (spec §8
	// scenario 1).
	toks := tokens(t, `\b bold\b0 and`)
	require.Equal(t, TokControlWord, toks[0].Kind)
	assert.Equal(t, "b", toks[0].Name)
	assert.False(t, toks[0].HasParam)

	require.Equal(t, TokText, toks[1].Kind)
	assert.Equal(t, "bold", string(toks[1].Bytes))

	require.Equal(t, TokControlWord, toks[2].Kind)
	assert.Equal(t, "b", toks[2].Name)
	assert.True(t, toks[2].HasParam)
	assert.Equal(t, int32(0), toks[2].Param)

	require.Equal(t, TokText, toks[3].Kind)
	assert.Equal(t, " and", string(toks[3].Bytes))
}

func TestTokenizerHexEscape(t *testing.T) {
	toks := tokens(t, `\'41\'42\'43`)
	require.Len(t, toks, 4)
	for i, want := range []byte{'A', 'B', 'C'} {
		require.Equal(t, TokHexByte, toks[i].Kind)
		assert.Equal(t, want, toks[i].HexValue)
	}
}

func TestTokenizerGroupAndControlSymbol(t *testing.T) {
	toks := tokens(t, `{\*\generator}`)
	require.Equal(t, TokGroupOpen, toks[0].Kind)
	require.Equal(t, TokControlSymbol, toks[1].Kind)
	assert.Equal(t, byte('*'), toks[1].Symbol)
	require.Equal(t, TokControlWord, toks[2].Kind)
	assert.Equal(t, "generator", toks[2].Name)
	require.Equal(t, TokGroupClose, toks[3].Kind)
}

func TestTokenizerBinaryRun(t *testing.T) {
	toks := tokens(t, "\\bin3abcREST")
	require.Equal(t, TokBinaryRun, toks[0].Kind)
	assert.Equal(t, []byte("abc"), toks[0].Bytes)
	require.Equal(t, TokText, toks[1].Kind)
	assert.Equal(t, "REST", string(toks[1].Bytes))
}

func TestTokenizerNegativeParam(t *testing.T) {
	toks := tokens(t, `\li-200`)
	require.Equal(t, TokControlWord, toks[0].Kind)
	assert.Equal(t, "li", toks[0].Name)
	assert.True(t, toks[0].HasParam)
	assert.Equal(t, int32(-200), toks[0].Param)
}

func TestTokenizerSkipReplacementUnits(t *testing.T) {
	r := NewSliceReader([]byte(`X\b Y`))
	tok := NewTokenizer(r, nil)
	tok.SkipReplacementUnits(1) // skips the literal 'X'
	next := tok.Next()
	require.Equal(t, TokControlWord, next.Kind)
	assert.Equal(t, "b", next.Name)
}
