package ast

import (
	"fmt"

	"github.com/roach88/choc/internal/types"
)

// Position is a 1-indexed source location.
type Position struct {
	Line int
	Col  int
}

// String renders the position as "line:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Node is implemented by every syntax tree node.
type Node interface {
	Pos() Position
	// Kind returns the node kind name used in diagnostics and AST dumps.
	Kind() string
}

// Expr is implemented by every expression node. Type returns the static
// type resolved by the checker (types.Invalid before checking).
type Expr interface {
	Node
	Type() types.ValueType
	SetType(types.ValueType)
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// typed holds the checker-resolved static type shared by all expressions.
type typed struct {
	typ types.ValueType
}

func (t *typed) Type() types.ValueType     { return t.typ }
func (t *typed) SetType(v types.ValueType) { t.typ = v }

// Program is a complete source module: global variable definitions,
// function definitions, and the top-level statement sequence, each in
// source order.
type Program struct {
	Globals []*VarDef
	Funcs   []*FuncDef
	Body    []Stmt
}

func (p *Program) Pos() Position {
	if len(p.Globals) > 0 {
		return p.Globals[0].Pos()
	}
	if len(p.Funcs) > 0 {
		return p.Funcs[0].Pos()
	}
	if len(p.Body) > 0 {
		return p.Body[0].Pos()
	}
	return Position{Line: 1, Col: 1}
}

func (p *Program) Kind() string { return "Program" }
