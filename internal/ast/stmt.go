package ast

// ExprStmt evaluates an expression and discards its value.
type ExprStmt struct {
	Position Position
	X        Expr
}

func (s *ExprStmt) Pos() Position { return s.Position }
func (s *ExprStmt) Kind() string  { return "ExprStmt" }
func (s *ExprStmt) stmtNode()     {}

// Assign is a (possibly chained) assignment: a = b = expr.
// The value is evaluated exactly once and stored into each target in
// left-to-right order. Targets are plain identifiers.
type Assign struct {
	Position Position
	Targets  []*Ident
	Value    Expr
}

func (s *Assign) Pos() Position { return s.Position }
func (s *Assign) Kind() string  { return "Assign" }
func (s *Assign) stmtNode()     {}

// If is a two-way conditional. elif chains are desugared by the parser
// into a nested If as the sole statement of the Else arm. Else may be
// empty.
type If struct {
	Position Position
	Cond     Expr
	Then     []Stmt
	Else     []Stmt
}

func (s *If) Pos() Position { return s.Position }
func (s *If) Kind() string  { return "If" }
func (s *If) stmtNode()     {}

// While is a pre-tested loop.
type While struct {
	Position Position
	Cond     Expr
	Body     []Stmt
}

func (s *While) Pos() Position { return s.Position }
func (s *While) Kind() string  { return "While" }
func (s *While) stmtNode()     {}

// Return exits the enclosing function. Value is nil for a bare return.
type Return struct {
	Position Position
	Value    Expr
}

func (s *Return) Pos() Position { return s.Position }
func (s *Return) Kind() string  { return "Return" }
func (s *Return) stmtNode()     {}

// Pass is a no-op statement.
type Pass struct {
	Position Position
}

func (s *Pass) Pos() Position { return s.Position }
func (s *Pass) Kind() string  { return "Pass" }
func (s *Pass) stmtNode()     {}
