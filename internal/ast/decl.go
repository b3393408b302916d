package ast

import "github.com/roach88/choc/internal/types"

// VarDef declares a variable with a type annotation and a literal
// initializer: "name: type = literal". The parser guarantees Value is a
// literal node; the checker resolves TypeName into Type.
type VarDef struct {
	Position Position
	Name     *Ident
	TypeName string
	Type     types.ValueType
	Value    Expr
}

func (d *VarDef) Pos() Position { return d.Position }
func (d *VarDef) Kind() string  { return "VarDef" }

// Param is a typed function parameter.
type Param struct {
	Position Position
	Name     string
	TypeName string
	Type     types.ValueType
}

func (d *Param) Pos() Position { return d.Position }
func (d *Param) Kind() string  { return "Param" }

// FuncDef declares a function. ReturnName is the source annotation
// ("" when omitted, meaning <None>); the checker resolves it into
// Return. Locals are the variable definitions at the head of the body;
// they precede all statements.
type FuncDef struct {
	Position   Position
	Name       *Ident
	Params     []*Param
	ReturnName string
	Return     types.ValueType
	Locals     []*VarDef
	Body       []Stmt
}

func (d *FuncDef) Pos() Position { return d.Position }
func (d *FuncDef) Kind() string  { return "FuncDef" }
