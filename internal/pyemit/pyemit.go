// Package pyemit renders a checked program back to plain untyped
// Python source. Type annotations are dropped, every compound
// expression is fully parenthesized, and chained assignments are
// rewritten through a temporary so the value is evaluated once. Fed to
// a Python interpreter with a one-line printf shim, the output is a
// cheap differential oracle for the IR backend.
package pyemit

import (
	"strconv"
	"strings"

	"github.com/roach88/choc/internal/ast"
)

// Emit renders prog as Python source. It panics only on malformed AST
// nodes, which a parsed program cannot contain.
func Emit(prog *ast.Program) string {
	e := &emitter{b: newBuilder()}
	for _, g := range prog.Globals {
		e.varDef(g)
	}
	for _, fd := range prog.Funcs {
		e.funcDef(fd)
	}
	for _, s := range prog.Body {
		e.stmt(s)
	}
	return e.b.String()
}

type emitter struct {
	b *builder
}

// DECLARATIONS

func (e *emitter) varDef(d *ast.VarDef) {
	e.b.line(d.Name.Name + " = ")
	e.expr(d.Value)
}

func (e *emitter) funcDef(d *ast.FuncDef) {
	e.b.line("def " + d.Name.Name + "(")
	for i, p := range d.Params {
		if i > 0 {
			e.b.text(", ")
		}
		e.b.text(p.Name)
	}
	e.b.text("):")
	e.b.indent()
	for _, l := range d.Locals {
		e.varDef(l)
	}
	for _, s := range d.Body {
		e.stmt(s)
	}
	if len(d.Locals) == 0 && len(d.Body) == 0 {
		e.b.text("pass")
	}
	e.b.unindent()
	e.b.line("")
}

// STATEMENTS

func (e *emitter) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Pass:
		e.b.line("pass")
	case *ast.ExprStmt:
		e.b.line("")
		e.expr(s.X)
	case *ast.Assign:
		e.assign(s)
	case *ast.If:
		e.ifStmt(s)
	case *ast.While:
		e.b.line("while ")
		e.expr(s.Cond)
		e.b.text(":")
		e.b.indent()
		e.body(s.Body)
		e.b.unindent()
	case *ast.Return:
		e.b.line("return")
		if s.Value != nil {
			e.b.text(" ")
			e.expr(s.Value)
		}
	default:
		panic("pyemit: unknown statement")
	}
}

func (e *emitter) assign(s *ast.Assign) {
	if len(s.Targets) == 1 {
		e.b.line(s.Targets[0].Name + " = ")
		e.expr(s.Value)
		return
	}
	// Evaluate once, then fan out.
	e.b.line("__x = ")
	e.expr(s.Value)
	for _, t := range s.Targets {
		e.b.line(t.Name + " = __x")
	}
}

func (e *emitter) ifStmt(s *ast.If) {
	e.b.line("if ")
	e.expr(s.Cond)
	e.b.text(":")
	e.b.indent()
	e.body(s.Then)
	e.b.unindent()
	e.b.line("else:")
	e.b.indent()
	e.body(s.Else)
	e.b.unindent()
}

func (e *emitter) body(list []ast.Stmt) {
	for _, s := range list {
		e.stmt(s)
	}
	if len(list) == 0 {
		e.b.text("pass")
	}
}

// EXPRESSIONS

func (e *emitter) expr(x ast.Expr) {
	switch x := x.(type) {
	case *ast.IntLit:
		e.b.text(strconv.FormatInt(x.Value, 10))
	case *ast.BoolLit:
		if x.Value {
			e.b.text("True")
		} else {
			e.b.text("False")
		}
	case *ast.StrLit:
		e.b.text(strconv.Quote(x.Value))
	case *ast.NoneLit:
		e.b.text("None")
	case *ast.Ident:
		e.b.text(x.Name)
	case *ast.Unary:
		e.b.text("(" + string(x.Op) + " ")
		e.expr(x.X)
		e.b.text(")")
	case *ast.Binary:
		e.b.text("(")
		e.expr(x.X)
		e.b.text(" " + string(x.Op) + " ")
		e.expr(x.Y)
		e.b.text(")")
	case *ast.Cond:
		e.b.text("(")
		e.expr(x.Then)
		e.b.text(" if ")
		e.expr(x.Cond)
		e.b.text(" else ")
		e.expr(x.Else)
		e.b.text(")")
	case *ast.Call:
		e.b.text(x.Func.Name + "(")
		for i, a := range x.Args {
			if i > 0 {
				e.b.text(", ")
			}
			e.expr(a)
		}
		e.b.text(")")
	default:
		panic("pyemit: unknown expression")
	}
}

// builder accumulates indented lines. text appends to the current
// line; line opens a new one at the current indentation.
type builder struct {
	lines       []string
	indentation int
}

func newBuilder() *builder {
	return &builder{}
}

func (b *builder) line(s string) {
	b.lines = append(b.lines, strings.Repeat("    ", b.indentation)+s)
}

func (b *builder) text(s string) {
	if len(b.lines) == 0 {
		b.line("")
	}
	b.lines[len(b.lines)-1] += s
}

func (b *builder) indent()   { b.indentation++ }
func (b *builder) unindent() { b.indentation-- }

func (b *builder) String() string {
	return strings.Join(b.lines, "\n")
}
