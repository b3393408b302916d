package frontend

// TokenType identifies a lexical token class.
type TokenType int

const (
	EOF TokenType = iota
	ILLEGAL
	NEWLINE
	INDENT
	DEDENT

	// Literals and names
	INT
	STRING
	NAME

	// Keywords
	DEF
	RETURN
	IF
	ELIF
	ELSE
	WHILE
	PASS
	TRUE
	FALSE
	NONE
	AND
	OR
	NOT

	// Operators
	PLUS
	MINUS
	STAR
	SLASHSLASH
	PERCENT
	LT
	LE
	GT
	GE
	EQ
	NE
	ASSIGN
	ARROW

	// Delimiters
	LPAREN
	RPAREN
	COLON
	COMMA
)

var tokenNames = map[TokenType]string{
	EOF:        "EOF",
	ILLEGAL:    "ILLEGAL",
	NEWLINE:    "NEWLINE",
	INDENT:     "INDENT",
	DEDENT:     "DEDENT",
	INT:        "INT",
	STRING:     "STRING",
	NAME:       "NAME",
	DEF:        "def",
	RETURN:     "return",
	IF:         "if",
	ELIF:       "elif",
	ELSE:       "else",
	WHILE:      "while",
	PASS:       "pass",
	TRUE:       "True",
	FALSE:      "False",
	NONE:       "None",
	AND:        "and",
	OR:         "or",
	NOT:        "not",
	PLUS:       "+",
	MINUS:      "-",
	STAR:       "*",
	SLASHSLASH: "//",
	PERCENT:    "%",
	LT:         "<",
	LE:         "<=",
	GT:         ">",
	GE:         ">=",
	EQ:         "==",
	NE:         "!=",
	ASSIGN:     "=",
	ARROW:      "->",
	LPAREN:     "(",
	RPAREN:     ")",
	COLON:      ":",
	COMMA:      ",",
}

func (t TokenType) String() string {
	if s, ok := tokenNames[t]; ok {
		return s
	}
	return "UNKNOWN"
}

var keywords = map[string]TokenType{
	"def":    DEF,
	"return": RETURN,
	"if":     IF,
	"elif":   ELIF,
	"else":   ELSE,
	"while":  WHILE,
	"pass":   PASS,
	"True":   TRUE,
	"False":  FALSE,
	"None":   NONE,
	"and":    AND,
	"or":     OR,
	"not":    NOT,
}

// Token is a single lexical token with its source position.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Col    int
}
