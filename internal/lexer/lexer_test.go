package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waxlang/waxc/internal/token"
)

func allTokens(src string) []token.Token {
	l := New(src)
	var out []token.Token
	for {
		t := l.Next()
		out = append(out, t)
		if t.Kind == token.EOF {
			return out
		}
	}
}

func TestLexer_KeywordsAndIdentifiers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind token.Kind
	}{
		{"let", "let", token.LET},
		{"yeet", "yeet", token.YEET},
		{"null", "null", token.NULL},
		{"as", "as", token.AS},
		{"plain identifier", "counter", token.IDENT},
		{"underscore prefixed", "_tmp", token.IDENT},
		{"word and", "and", token.AND},
		{"word or", "or", token.OR},
		{"word not", "not", token.NOT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := allTokens(tt.in)
			require.Len(t, toks, 2) // token + EOF
			assert.Equal(t, tt.kind, toks[0].Kind)
			assert.Equal(t, tt.in, toks[0].Literal)
		})
	}
}

func TestLexer_OperatorLongestMatch(t *testing.T) {
	tests := []struct {
		in   string
		want []token.Kind
	}{
		{"==", []token.Kind{token.EQ}},
		{"=", []token.Kind{token.ASSIGN}},
		{"=>", []token.Kind{token.FAT_ARROW}},
		{">=", []token.Kind{token.GE}},
		{">", []token.Kind{token.GT}},
		{"+=", []token.Kind{token.PLUS_ASSIGN}},
		{"&&", []token.Kind{token.AND}},
		{"&", []token.Kind{token.AMP}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			toks := allTokens(tt.in)
			require.Len(t, toks, len(tt.want)+1)
			for i, k := range tt.want {
				assert.Equal(t, k, toks[i].Kind)
			}
		})
	}
}

func TestLexer_CommentsAndWhitespaceSkipped(t *testing.T) {
	src := "let // trailing comment\n x /* inline\nblock */ = 1;"
	toks := allTokens(src)
	kinds := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.LET, token.IDENT, token.ASSIGN, token.INT, token.SEMICOLON, token.EOF,
	}, kinds)
}

func TestLexer_StringEscapes(t *testing.T) {
	toks := allTokens(`"a\nb\tc\\\"\0d"`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Equal(t, "a\nb\tc\\\"\x00d", toks[0].Literal)
}

func TestLexer_CharEscape(t *testing.T) {
	toks := allTokens(`'\n'`)
	require.Len(t, toks, 2)
	assert.Equal(t, token.CHAR, toks[0].Kind)
	assert.Equal(t, "\n", toks[0].Literal)
}

func TestLexer_HexAndBinaryIntegers(t *testing.T) {
	tests := []string{"0x1F", "0b1010", "42"}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			toks := allTokens(in)
			require.Len(t, toks, 2)
			assert.Equal(t, token.INT, toks[0].Kind)
			assert.Equal(t, in, toks[0].Literal)
		})
	}
}

func TestLexer_FloatBeforeInt(t *testing.T) {
	toks := allTokens("3.14")
	require.Len(t, toks, 2)
	assert.Equal(t, token.FLOAT, toks[0].Kind)
	assert.Equal(t, "3.14", toks[0].Literal)
}

func TestLexer_DotNotFollowedByDigitIsNotFloat(t *testing.T) {
	toks := allTokens("3.x")
	require.Len(t, toks, 4)
	assert.Equal(t, token.INT, toks[0].Kind)
	assert.Equal(t, token.DOT, toks[1].Kind)
	assert.Equal(t, token.IDENT, toks[2].Kind)
}

func TestLexer_ExpectMismatchYieldsUnexpectedToken(t *testing.T) {
	l := New("1")
	_, err := l.Expect(token.LET)
	require.Error(t, err)
	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.False(t, lexErr.EOF)
	assert.Equal(t, token.INT, lexErr.Found.Kind)
}

func TestLexer_ExpectEOFYieldsUnexpectedEOF(t *testing.T) {
	l := New("")
	_, err := l.Expect(token.LET)
	require.Error(t, err)
	lexErr, ok := err.(*Error)
	require.True(t, ok)
	assert.True(t, lexErr.EOF)
}

func TestLexer_CloneDoesNotAffectOriginal(t *testing.T) {
	l := New("let x = 1;")
	first := l.Next()
	assert.Equal(t, token.LET, first.Kind)

	clone := l.Clone()
	// Drain the clone completely; the original must still resume after "let".
	for {
		if clone.Next().Kind == token.EOF {
			break
		}
	}

	second := l.Next()
	assert.Equal(t, token.IDENT, second.Kind)
	assert.Equal(t, "x", second.Literal)
}

// Reconstructing raw lexemes (with skipped trivia re-inserted manually by
// the test) should reproduce the relevant prefix of the source.
func TestLexer_RawFieldsConcatenateToSourcePrefix(t *testing.T) {
	src := "let x = 1;"
	var rebuilt string
	l := New(src)
	end := 0
	for {
		tok := l.Next()
		if tok.Kind == token.EOF {
			break
		}
		rebuilt += src[end:tok.Pos.Offset] + tok.Literal
		end = tok.Pos.Offset + len(tok.Literal)
	}
	assert.Equal(t, src, rebuilt)
}
