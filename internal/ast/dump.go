package ast

import (
	"fmt"

	"github.com/roach88/choc/internal/types"
)

// Dump renders a node into a JSON-ready tree of maps and slices.
// When withTypes is true, every expression carries its resolved static
// type under the "type" key (the tc output mode); otherwise only the
// syntactic shape is rendered (the parse output mode).
//
// encoding/json sorts map keys, so marshaling the result is
// deterministic and suitable for golden-file comparison.
func Dump(n Node, withTypes bool) any {
	d := dumper{withTypes: withTypes}
	return d.node(n)
}

type dumper struct {
	withTypes bool
}

func (d dumper) base(n Node) map[string]any {
	m := map[string]any{
		"kind": n.Kind(),
		"line": n.Pos().Line,
		"col":  n.Pos().Col,
	}
	if e, ok := n.(Expr); ok && d.withTypes && e.Type() != types.Invalid {
		m["type"] = e.Type().String()
	}
	return m
}

func (d dumper) stmts(list []Stmt) []any {
	out := make([]any, len(list))
	for i, s := range list {
		out[i] = d.node(s)
	}
	return out
}

func (d dumper) node(n Node) any {
	m := d.base(n)
	switch n := n.(type) {
	case *Program:
		globals := make([]any, len(n.Globals))
		for i, g := range n.Globals {
			globals[i] = d.node(g)
		}
		funcs := make([]any, len(n.Funcs))
		for i, f := range n.Funcs {
			funcs[i] = d.node(f)
		}
		m["globals"] = globals
		m["funcs"] = funcs
		m["body"] = d.stmts(n.Body)
	case *VarDef:
		m["name"] = n.Name.Name
		m["var_type"] = n.TypeName
		m["value"] = d.node(n.Value)
	case *Param:
		m["name"] = n.Name
		m["param_type"] = n.TypeName
	case *FuncDef:
		params := make([]any, len(n.Params))
		for i, p := range n.Params {
			params[i] = d.node(p)
		}
		locals := make([]any, len(n.Locals))
		for i, l := range n.Locals {
			locals[i] = d.node(l)
		}
		m["name"] = n.Name.Name
		m["params"] = params
		m["return_type"] = n.ReturnName
		m["locals"] = locals
		m["body"] = d.stmts(n.Body)
	case *ExprStmt:
		m["expr"] = d.node(n.X)
	case *Assign:
		targets := make([]any, len(n.Targets))
		for i, t := range n.Targets {
			targets[i] = d.node(t)
		}
		m["targets"] = targets
		m["value"] = d.node(n.Value)
	case *If:
		m["cond"] = d.node(n.Cond)
		m["then"] = d.stmts(n.Then)
		m["else"] = d.stmts(n.Else)
	case *While:
		m["cond"] = d.node(n.Cond)
		m["body"] = d.stmts(n.Body)
	case *Return:
		if n.Value != nil {
			m["value"] = d.node(n.Value)
		} else {
			m["value"] = nil
		}
	case *Pass:
		// no fields
	case *IntLit:
		m["value"] = n.Value
	case *BoolLit:
		m["value"] = n.Value
	case *StrLit:
		m["value"] = n.Value
	case *NoneLit:
		// no fields
	case *Ident:
		m["name"] = n.Name
	case *Unary:
		m["op"] = string(n.Op)
		m["operand"] = d.node(n.X)
	case *Binary:
		m["op"] = string(n.Op)
		m["left"] = d.node(n.X)
		m["right"] = d.node(n.Y)
	case *Cond:
		m["cond"] = d.node(n.Cond)
		m["then"] = d.node(n.Then)
		m["else"] = d.node(n.Else)
	case *Call:
		args := make([]any, len(n.Args))
		for i, a := range n.Args {
			args[i] = d.node(a)
		}
		m["func"] = n.Func.Name
		m["args"] = args
	default:
		panic(fmt.Sprintf("ast: unknown node kind %T", n))
	}
	return m
}
