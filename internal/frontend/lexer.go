package frontend

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseError is a user-facing frontend error with a source position.
// It covers both lexical errors and AST shapes that are legal Python but
// outside the ChocoPy subset.
type ParseError struct {
	Line    int
	Col     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s. Line %d Col %d", e.Message, e.Line, e.Col)
}

// lexer scans source text into a flat token slice, emitting synthetic
// INDENT/DEDENT tokens from an indentation stack the way Python's
// tokenizer does. A tab counts as 4 columns.
type lexer struct {
	src    []rune
	pos    int
	line   int
	col    int
	parens int // implicit line joining inside parentheses
	toks   []Token
	errs   []error

	indents []int
}

// tokenize scans the whole source. The returned slice always ends with
// an EOF token; any lexical errors are returned alongside.
func tokenize(source string) ([]Token, []error) {
	l := &lexer{
		src:     []rune(source),
		line:    1,
		col:     1,
		indents: []int{0},
	}
	l.run()
	return l.toks, l.errs
}

func (l *lexer) run() {
	atLineStart := true
	for !l.atEnd() {
		if atLineStart && l.parens == 0 {
			if l.handleIndent() {
				continue // line was blank or comment-only
			}
			atLineStart = false
		}

		c := l.peek()
		switch {
		case c == '\n':
			l.advance()
			// Newlines inside parentheses are implicit line joins and
			// do not start a new logical line.
			if l.parens == 0 {
				l.emit(NEWLINE, "\n")
				atLineStart = true
			}
			l.line++
			l.col = 1
		case c == ' ' || c == '\t' || c == '\r':
			l.advance()
		case c == '#':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case c == '"' || c == '\'':
			l.scanString(c)
		case unicode.IsDigit(c):
			l.scanNumber()
		case unicode.IsLetter(c) || c == '_':
			l.scanName()
		default:
			l.scanOperator()
		}
	}

	// Close any open blocks at EOF.
	if !atLineStart {
		l.emit(NEWLINE, "\n")
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(DEDENT, "")
	}
	l.emit(EOF, "")
}

// handleIndent measures leading whitespace and emits INDENT/DEDENT
// tokens. It returns true when the line holds no code (blank or
// comment-only) and has been consumed.
func (l *lexer) handleIndent() bool {
	width := 0
	for !l.atEnd() && (l.peek() == ' ' || l.peek() == '\t') {
		if l.peek() == '\t' {
			width += 4
		} else {
			width++
		}
		l.advance()
	}

	// Blank and comment-only lines never affect indentation.
	if l.atEnd() {
		return true
	}
	if l.peek() == '\n' {
		l.advance()
		l.line++
		l.col = 1
		return true
	}
	if l.peek() == '#' {
		for !l.atEnd() && l.peek() != '\n' {
			l.advance()
		}
		return true
	}

	current := l.indents[len(l.indents)-1]
	switch {
	case width > current:
		l.indents = append(l.indents, width)
		l.emit(INDENT, "")
	case width < current:
		for len(l.indents) > 1 && l.indents[len(l.indents)-1] > width {
			l.indents = l.indents[:len(l.indents)-1]
			l.emit(DEDENT, "")
		}
		if l.indents[len(l.indents)-1] != width {
			l.errorf("Inconsistent indentation")
		}
	}
	return false
}

func (l *lexer) scanNumber() {
	start := l.pos
	startCol := l.col
	for !l.atEnd() && unicode.IsDigit(l.peek()) {
		l.advance()
	}
	l.emitAt(INT, string(l.src[start:l.pos]), startCol)
}

func (l *lexer) scanName() {
	start := l.pos
	startCol := l.col
	for !l.atEnd() && (unicode.IsLetter(l.peek()) || unicode.IsDigit(l.peek()) || l.peek() == '_') {
		l.advance()
	}
	text := string(l.src[start:l.pos])
	if kw, ok := keywords[text]; ok {
		l.emitAt(kw, text, startCol)
		return
	}
	l.emitAt(NAME, text, startCol)
}

func (l *lexer) scanString(quote rune) {
	startCol := l.col
	l.advance() // opening quote
	var b strings.Builder
	for {
		if l.atEnd() || l.peek() == '\n' {
			l.errorf("Unterminated string literal")
			return
		}
		c := l.advance()
		if c == quote {
			break
		}
		if c == '\\' {
			if l.atEnd() {
				l.errorf("Unterminated string literal")
				return
			}
			switch esc := l.advance(); esc {
			case 'n':
				b.WriteRune('\n')
			case 't':
				b.WriteRune('\t')
			case '\\':
				b.WriteRune('\\')
			case '"':
				b.WriteRune('"')
			case '\'':
				b.WriteRune('\'')
			default:
				l.errorf("Unsupported escape sequence: \\%c", esc)
				return
			}
			continue
		}
		b.WriteRune(c)
	}
	l.emitAt(STRING, b.String(), startCol)
}

func (l *lexer) scanOperator() {
	startCol := l.col
	c := l.advance()
	switch c {
	case '+':
		l.emitAt(PLUS, "+", startCol)
	case '-':
		if l.match('>') {
			l.emitAt(ARROW, "->", startCol)
		} else {
			l.emitAt(MINUS, "-", startCol)
		}
	case '*':
		l.emitAt(STAR, "*", startCol)
	case '/':
		if l.match('/') {
			l.emitAt(SLASHSLASH, "//", startCol)
		} else {
			l.errorf("Unsupported operator: /")
		}
	case '%':
		l.emitAt(PERCENT, "%", startCol)
	case '<':
		if l.match('=') {
			l.emitAt(LE, "<=", startCol)
		} else {
			l.emitAt(LT, "<", startCol)
		}
	case '>':
		if l.match('=') {
			l.emitAt(GE, ">=", startCol)
		} else {
			l.emitAt(GT, ">", startCol)
		}
	case '=':
		if l.match('=') {
			l.emitAt(EQ, "==", startCol)
		} else {
			l.emitAt(ASSIGN, "=", startCol)
		}
	case '!':
		if l.match('=') {
			l.emitAt(NE, "!=", startCol)
		} else {
			l.errorf("Unexpected character: !")
		}
	case '(':
		l.parens++
		l.emitAt(LPAREN, "(", startCol)
	case ')':
		if l.parens > 0 {
			l.parens--
		}
		l.emitAt(RPAREN, ")", startCol)
	case ':':
		l.emitAt(COLON, ":", startCol)
	case ',':
		l.emitAt(COMMA, ",", startCol)
	default:
		l.errorf("Unexpected character: %c", c)
	}
}

func (l *lexer) emit(typ TokenType, lexeme string) {
	l.emitAt(typ, lexeme, l.col)
}

func (l *lexer) emitAt(typ TokenType, lexeme string, col int) {
	l.toks = append(l.toks, Token{Type: typ, Lexeme: lexeme, Line: l.line, Col: col})
}

func (l *lexer) errorf(format string, args ...any) {
	l.errs = append(l.errs, &ParseError{
		Line:    l.line,
		Col:     l.col,
		Message: fmt.Sprintf(format, args...),
	})
	// Resynchronize at the next line.
	for !l.atEnd() && l.peek() != '\n' {
		l.advance()
	}
}

func (l *lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) advance() rune {
	c := l.src[l.pos]
	l.pos++
	l.col++
	return c
}

func (l *lexer) match(want rune) bool {
	if l.atEnd() || l.src[l.pos] != want {
		return false
	}
	l.pos++
	l.col++
	return true
}

func (l *lexer) atEnd() bool {
	return l.pos >= len(l.src)
}
