package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestTokenizeSimpleAssignment(t *testing.T) {
	toks, errs := tokenize("x = x + 3\n")
	require.Empty(t, errs)
	assert.Equal(t,
		[]TokenType{NAME, ASSIGN, NAME, PLUS, INT, NEWLINE, EOF},
		tokenTypes(toks))
}

func TestTokenizeIndentation(t *testing.T) {
	src := "while i < 5:\n    s = s + i\n    i = i + 1\nx = 0\n"
	toks, errs := tokenize(src)
	require.Empty(t, errs)
	assert.Equal(t,
		[]TokenType{
			WHILE, NAME, LT, INT, COLON, NEWLINE,
			INDENT,
			NAME, ASSIGN, NAME, PLUS, NAME, NEWLINE,
			NAME, ASSIGN, NAME, PLUS, INT, NEWLINE,
			DEDENT,
			NAME, ASSIGN, INT, NEWLINE,
			EOF,
		},
		tokenTypes(toks))
}

func TestTokenizeDedentAtEOF(t *testing.T) {
	toks, errs := tokenize("if True:\n    pass")
	require.Empty(t, errs)
	assert.Equal(t,
		[]TokenType{IF, TRUE, COLON, NEWLINE, INDENT, PASS, NEWLINE, DEDENT, EOF},
		tokenTypes(toks))
}

func TestTokenizeBlankAndCommentLines(t *testing.T) {
	src := "x = 1\n\n# a comment\n    # indented comment\ny = 2\n"
	toks, errs := tokenize(src)
	require.Empty(t, errs)
	assert.Equal(t,
		[]TokenType{NAME, ASSIGN, INT, NEWLINE, NAME, ASSIGN, INT, NEWLINE, EOF},
		tokenTypes(toks))
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, errs := tokenize(`s = "a\nb\\c"` + "\n")
	require.Empty(t, errs)
	require.Equal(t, STRING, toks[2].Type)
	assert.Equal(t, "a\nb\\c", toks[2].Lexeme)
}

func TestTokenizeOperators(t *testing.T) {
	toks, errs := tokenize("a <= b >= c == d != e // f % g -> h\n")
	require.Empty(t, errs)
	got := tokenTypes(toks)
	assert.Contains(t, got, LE)
	assert.Contains(t, got, GE)
	assert.Contains(t, got, EQ)
	assert.Contains(t, got, NE)
	assert.Contains(t, got, SLASHSLASH)
	assert.Contains(t, got, PERCENT)
	assert.Contains(t, got, ARROW)
}

func TestTokenizeParensSuppressNewlines(t *testing.T) {
	toks, errs := tokenize("f(1,\n  2)\n")
	require.Empty(t, errs)
	assert.Equal(t,
		[]TokenType{NAME, LPAREN, INT, COMMA, INT, RPAREN, NEWLINE, EOF},
		tokenTypes(toks))
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, errs := tokenize("s = \"abc\n")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Unterminated string")
}

func TestTokenizeTrueDivisionRejected(t *testing.T) {
	_, errs := tokenize("x = 1 / 2\n")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Unsupported operator: /")
}

func TestParseErrorIncludesPosition(t *testing.T) {
	err := &ParseError{Line: 3, Col: 7, Message: "Unexpected character: ~"}
	assert.Equal(t, "Unexpected character: ~. Line 3 Col 7", err.Error())
}
