package ast

// UnaryOp is a unary operator lexeme.
type UnaryOp string

const (
	UnaryNeg UnaryOp = "-"
	UnaryNot UnaryOp = "not"
)

// BinOp is a binary operator lexeme.
type BinOp string

const (
	OpAdd BinOp = "+"
	OpSub BinOp = "-"
	OpMul BinOp = "*"
	OpDiv BinOp = "//"
	OpMod BinOp = "%"

	OpLt BinOp = "<"
	OpLe BinOp = "<="
	OpGt BinOp = ">"
	OpGe BinOp = ">="
	OpEq BinOp = "=="
	OpNe BinOp = "!="

	OpAnd BinOp = "and"
	OpOr  BinOp = "or"
)

// IntLit is an integer literal. Values are parsed into an int64 but the
// language type is a 32-bit signed integer.
type IntLit struct {
	typed
	Position Position
	Value    int64
}

func (e *IntLit) Pos() Position { return e.Position }
func (e *IntLit) Kind() string  { return "IntLit" }

// BoolLit is a True/False literal.
type BoolLit struct {
	typed
	Position Position
	Value    bool
}

func (e *BoolLit) Pos() Position { return e.Position }
func (e *BoolLit) Kind() string  { return "BoolLit" }

// StrLit is a string literal. Value holds the unescaped text.
type StrLit struct {
	typed
	Position Position
	Value    string
}

func (e *StrLit) Pos() Position { return e.Position }
func (e *StrLit) Kind() string  { return "StrLit" }

// NoneLit is a bare None literal. It is only legal where a <None> value
// is expected (a return statement in a <None>-returning function).
type NoneLit struct {
	typed
	Position Position
}

func (e *NoneLit) Pos() Position { return e.Position }
func (e *NoneLit) Kind() string  { return "NoneLit" }

// Ident is a variable or function name reference.
type Ident struct {
	typed
	Position Position
	Name     string
}

func (e *Ident) Pos() Position { return e.Position }
func (e *Ident) Kind() string  { return "Ident" }

// Unary is a unary operation: -x or not x.
type Unary struct {
	typed
	Position Position
	Op       UnaryOp
	X        Expr
}

func (e *Unary) Pos() Position { return e.Position }
func (e *Unary) Kind() string  { return "Unary" }

// Binary is a binary operation. The and/or operators are represented
// here too; their short-circuit evaluation is a lowering concern, not a
// tree concern.
type Binary struct {
	typed
	Position Position
	Op       BinOp
	X        Expr
	Y        Expr
}

func (e *Binary) Pos() Position { return e.Position }
func (e *Binary) Kind() string  { return "Binary" }

// Cond is a conditional expression: Then if Cond else Else.
// Exactly one of Then/Else is evaluated at run time.
type Cond struct {
	typed
	Position Position
	Cond     Expr
	Then     Expr
	Else     Expr
}

func (e *Cond) Pos() Position { return e.Position }
func (e *Cond) Kind() string  { return "Cond" }

// Call is a call to a named function or builtin. The subset has no
// first-class functions, so the callee is always a plain identifier.
type Call struct {
	typed
	Position Position
	Func     *Ident
	Args     []Expr
}

func (e *Call) Pos() Position { return e.Position }
func (e *Call) Kind() string  { return "Call" }
