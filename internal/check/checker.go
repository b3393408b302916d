// Package check implements the ChocoPy-subset type checker.
//
// The checker annotates every expression with its resolved static type
// and validates the rules the lowering stage assumes: operator/operand
// typing, assignment compatibility, call signatures, printf format
// contracts, and return-path coverage. Errors accumulate with source
// positions; the checker never stops at the first one.
//
// A program that passes the checker satisfies every invariant the
// lowering stage relies on. Downstream passes perform no re-validation.
package check

import (
	"fmt"
	"strings"

	"github.com/roach88/choc/internal/ast"
	"github.com/roach88/choc/internal/types"
)

// Error is a user-facing semantic error with a source position.
type Error struct {
	Pos     ast.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s. Line %d Col %d", e.Message, e.Pos.Line, e.Pos.Col)
}

// symbol is a name binding: either a variable of a value type or a
// function with a signature.
type symbol struct {
	value types.ValueType // Invalid when the name binds a function
	fn    *types.FuncType // nil when the name binds a variable
}

// checker holds the two-level symbol tables and the expected return
// type of the function currently being checked.
type checker struct {
	globals map[string]symbol
	locals  map[string]symbol // nil outside function bodies
	ret     types.ValueType   // Invalid outside function bodies
	inFunc  bool
	errs    []error
}

// Check type-checks a parsed program in place. It returns the
// accumulated semantic errors; an empty slice means the program is
// well-typed and ready for lowering or re-emission.
func Check(prog *ast.Program) []error {
	c := &checker{globals: map[string]symbol{}}

	// Builtins. printf takes a constant format string and exactly one
	// value of any type; it returns the count written, like C's.
	c.globals["printf"] = symbol{fn: &types.FuncType{
		Params: []types.ValueType{types.Str, types.Object},
		Return: types.Int,
	}}

	// Declarations are registered before any body is checked so that
	// functions may refer to later definitions (mutual recursion).
	for _, g := range prog.Globals {
		if g.Name.Name == "main" {
			c.errorf(g.Pos(), "Reserved name: main")
			continue
		}
		c.declareVar(c.globals, g)
	}
	for _, fn := range prog.Funcs {
		c.declareFunc(fn)
	}

	for _, fn := range prog.Funcs {
		c.checkFunc(fn)
	}
	for _, s := range prog.Body {
		c.stmt(s)
	}
	return c.errs
}

// DECLARATIONS

// declareVar resolves a VarDef's annotation, validates its literal
// initializer, and binds the name in the given scope.
func (c *checker) declareVar(scope map[string]symbol, vd *ast.VarDef) {
	if _, dup := scope[vd.Name.Name]; dup {
		c.errorf(vd.Pos(), "Duplicate declaration of identifier: %s", vd.Name.Name)
		return
	}
	t, ok := c.varType(vd.Pos(), vd.TypeName)
	if !ok {
		return
	}
	vd.Type = t
	litType := c.expr(vd.Value)
	if !types.Assignable(litType, t) {
		c.errorf(vd.Pos(), "Expected %s, got %s", t, litType)
	}
	scope[vd.Name.Name] = symbol{value: t}
}

func (c *checker) declareFunc(fn *ast.FuncDef) {
	name := fn.Name.Name
	if name == "main" {
		// The entry point is synthesized during lowering.
		c.errorf(fn.Pos(), "Reserved name: %s", name)
		return
	}
	if _, dup := c.globals[name]; dup {
		c.errorf(fn.Pos(), "Duplicate declaration of identifier: %s", name)
		return
	}
	sig := &types.FuncType{Return: types.None}

	if fn.ReturnName != "" {
		rt, err := types.Lookup(fn.ReturnName)
		if err != nil || rt == types.Object || rt == types.None {
			c.errorf(fn.Pos(), "Invalid return type: %s", fn.ReturnName)
			rt = types.Invalid
		}
		sig.Return = rt
	}
	fn.Return = sig.Return

	for _, p := range fn.Params {
		pt, ok := c.varType(p.Pos(), p.TypeName)
		if !ok {
			pt = types.Invalid
		}
		p.Type = pt
		sig.Params = append(sig.Params, pt)
	}
	c.globals[name] = symbol{fn: sig}
}

// varType resolves a variable or parameter annotation. Only the three
// primitive value types may be annotated; <None> and object are not
// storable.
func (c *checker) varType(pos ast.Position, name string) (types.ValueType, bool) {
	t, err := types.Lookup(name)
	if err != nil {
		c.errorf(pos, "Unknown type: %s", name)
		return types.Invalid, false
	}
	if t != types.Int && t != types.Bool && t != types.Str {
		c.errorf(pos, "Invalid variable type: %s", name)
		return types.Invalid, false
	}
	return t, true
}

func (c *checker) checkFunc(fn *ast.FuncDef) {
	c.locals = map[string]symbol{}
	c.ret = fn.Return
	c.inFunc = true
	defer func() {
		c.locals = nil
		c.ret = types.Invalid
		c.inFunc = false
	}()

	for _, p := range fn.Params {
		if _, dup := c.locals[p.Name]; dup {
			c.errorf(p.Pos(), "Duplicate parameter name: %s", p.Name)
			continue
		}
		c.locals[p.Name] = symbol{value: p.Type}
	}
	for _, l := range fn.Locals {
		c.declareVar(c.locals, l)
	}
	for _, s := range fn.Body {
		c.stmt(s)
	}

	if fn.Return != types.None && !alwaysReturns(fn.Body) {
		c.errorf(fn.Pos(), "Expected return statement of type %s", fn.Return)
	}
}

// alwaysReturns reports whether every path through the statement list
// ends in a return. An If counts only when both arms are present and
// return; a While counts when its body returns.
func alwaysReturns(body []ast.Stmt) bool {
	for _, s := range body {
		switch s := s.(type) {
		case *ast.Return:
			return true
		case *ast.If:
			if len(s.Else) > 0 && alwaysReturns(s.Then) && alwaysReturns(s.Else) {
				return true
			}
		case *ast.While:
			if alwaysReturns(s.Body) {
				return true
			}
		}
	}
	return false
}

// STATEMENTS

func (c *checker) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.ExprStmt:
		c.expr(s.X)
	case *ast.Assign:
		c.assign(s)
	case *ast.If:
		c.condition(s.Cond)
		for _, t := range s.Then {
			c.stmt(t)
		}
		for _, e := range s.Else {
			c.stmt(e)
		}
	case *ast.While:
		c.condition(s.Cond)
		for _, b := range s.Body {
			c.stmt(b)
		}
	case *ast.Return:
		c.returnStmt(s)
	case *ast.Pass:
		// nothing to check
	default:
		c.errorf(s.Pos(), "Unsupported statement: %s", s.Kind())
	}
}

func (c *checker) condition(e ast.Expr) {
	if t := c.expr(e); t != types.Bool && t != types.Invalid {
		c.errorf(e.Pos(), "Expected bool, got %s", t)
	}
}

// assign checks a (possibly chained) assignment. Targets must be
// variables defined in the current scope: a function body cannot
// rebind a global (the subset has no global statement).
func (c *checker) assign(s *ast.Assign) {
	valType := c.expr(s.Value)
	for _, target := range s.Targets {
		sym, ok := c.currentScope()[target.Name]
		if !ok {
			c.errorf(target.Pos(), "Identifier not defined in current scope: %s", target.Name)
			continue
		}
		if sym.fn != nil {
			c.errorf(target.Pos(), "Cannot assign to function: %s", target.Name)
			continue
		}
		target.SetType(sym.value)
		if !types.Assignable(valType, sym.value) {
			c.errorf(s.Pos(), "Expected %s, got %s", sym.value, valType)
		}
	}
}

func (c *checker) currentScope() map[string]symbol {
	if c.locals != nil {
		return c.locals
	}
	return c.globals
}

func (c *checker) returnStmt(s *ast.Return) {
	if !c.inFunc {
		c.errorf(s.Pos(), "Return statement outside of function definition")
		return
	}
	if s.Value == nil {
		if c.ret != types.None {
			c.errorf(s.Pos(), "Expected %s, got %s", c.ret, types.None)
		}
		return
	}
	got := c.expr(s.Value)
	if got == types.Invalid {
		return
	}
	if !types.Assignable(got, c.ret) && !(got == types.None && c.ret == types.None) {
		c.errorf(s.Pos(), "Expected %s, got %s", c.ret, got)
	}
}

// EXPRESSIONS

// expr resolves and records the static type of an expression, returning
// Invalid when a nested error already produced a diagnostic.
func (c *checker) expr(e ast.Expr) types.ValueType {
	t := c.exprType(e)
	e.SetType(t)
	return t
}

func (c *checker) exprType(e ast.Expr) types.ValueType {
	switch e := e.(type) {
	case *ast.IntLit:
		return types.Int
	case *ast.BoolLit:
		return types.Bool
	case *ast.StrLit:
		return types.Str
	case *ast.NoneLit:
		return types.None
	case *ast.Ident:
		return c.identType(e)
	case *ast.Unary:
		return c.unaryType(e)
	case *ast.Binary:
		return c.binaryType(e)
	case *ast.Cond:
		return c.condType(e)
	case *ast.Call:
		return c.callType(e)
	default:
		c.errorf(e.Pos(), "Unsupported expression: %s", e.Kind())
		return types.Invalid
	}
}

// identType resolves a name reference. Inside a function the local
// scope is searched first, then globals; at top level only globals.
func (c *checker) identType(e *ast.Ident) types.ValueType {
	if c.locals != nil {
		if sym, ok := c.locals[e.Name]; ok {
			return sym.value
		}
	}
	if sym, ok := c.globals[e.Name]; ok {
		if sym.fn != nil {
			c.errorf(e.Pos(), "Not a variable: %s", e.Name)
			return types.Invalid
		}
		return sym.value
	}
	c.errorf(e.Pos(), "Unknown identifier: %s", e.Name)
	return types.Invalid
}

func (c *checker) unaryType(e *ast.Unary) types.ValueType {
	t := c.expr(e.X)
	if t == types.Invalid {
		return types.Invalid
	}
	switch e.Op {
	case ast.UnaryNeg:
		if t != types.Int {
			c.errorf(e.Pos(), "Expected int, got %s", t)
			return types.Invalid
		}
		return types.Int
	case ast.UnaryNot:
		if t != types.Bool {
			c.errorf(e.Pos(), "Expected bool, got %s", t)
			return types.Invalid
		}
		return types.Bool
	default:
		c.errorf(e.Pos(), "Unsupported unary operator: %s", e.Op)
		return types.Invalid
	}
}

func (c *checker) binaryType(e *ast.Binary) types.ValueType {
	left := c.expr(e.X)
	right := c.expr(e.Y)
	if left == types.Invalid || right == types.Invalid {
		return types.Invalid
	}

	bad := func() types.ValueType {
		c.errorf(e.Pos(), "Cannot use operator %s on types %s and %s", e.Op, left, right)
		return types.Invalid
	}

	switch e.Op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		if left != types.Int || right != types.Int {
			return bad()
		}
		return types.Int
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if left != types.Int || right != types.Int {
			return bad()
		}
		return types.Bool
	case ast.OpEq, ast.OpNe:
		// Equality is defined on matching int or bool operands only;
		// strings have no runtime comparison support.
		if left != right || (left != types.Int && left != types.Bool) {
			return bad()
		}
		return types.Bool
	case ast.OpAnd, ast.OpOr:
		if left != types.Bool || right != types.Bool {
			return bad()
		}
		return types.Bool
	default:
		return bad()
	}
}

// condType checks a conditional expression. Both arms must have the
// same value type so the merged value has a single representation;
// <None> arms are rejected because a conditional always produces a
// value, even in a discarded position.
func (c *checker) condType(e *ast.Cond) types.ValueType {
	c.condition(e.Cond)
	thenType := c.expr(e.Then)
	elseType := c.expr(e.Else)
	if thenType == types.Invalid || elseType == types.Invalid {
		return types.Invalid
	}
	if thenType != elseType {
		c.errorf(e.Pos(), "Mismatched conditional arms: %s and %s", thenType, elseType)
		return types.Invalid
	}
	if thenType == types.None {
		c.errorf(e.Pos(), "Conditional expression cannot have type %s", thenType)
		return types.Invalid
	}
	return thenType
}

func (c *checker) callType(e *ast.Call) types.ValueType {
	name := e.Func.Name
	sym, ok := c.globals[name]
	if !ok || sym.fn == nil {
		c.errorf(e.Pos(), "Not a function: %s", name)
		for _, a := range e.Args {
			c.expr(a)
		}
		return types.Invalid
	}
	sig := sym.fn
	e.Func.SetType(types.Invalid) // callee is not a value

	if len(e.Args) != len(sig.Params) {
		c.errorf(e.Pos(), "Expected %d args, got %d", len(sig.Params), len(e.Args))
		for _, a := range e.Args {
			c.expr(a)
		}
		return sig.Return
	}
	for i, a := range e.Args {
		at := c.expr(a)
		if at == types.Invalid {
			continue
		}
		if !types.Assignable(at, sig.Params[i]) {
			c.errorf(a.Pos(), "Expected %s, got %s", sig.Params[i], at)
		}
	}

	if name == "printf" {
		c.checkPrintf(e)
	}
	return sig.Return
}

// checkPrintf validates the builtin's format contract: the format
// argument is a string literal carrying exactly one placeholder, %d for
// an int or bool value and %s for a str value. The lowering stage
// relies on this and emits the call without re-validation.
func (c *checker) checkPrintf(e *ast.Call) {
	if len(e.Args) != 2 {
		return // arity already reported
	}
	format, ok := e.Args[0].(*ast.StrLit)
	if !ok {
		c.errorf(e.Args[0].Pos(), "printf format must be a string literal")
		return
	}

	var want string
	switch e.Args[1].Type() {
	case types.Int, types.Bool:
		want = "%d"
	case types.Str:
		want = "%s"
	case types.Invalid:
		return
	default:
		c.errorf(e.Args[1].Pos(), "Cannot print value of type %s", e.Args[1].Type())
		return
	}

	if n := strings.Count(format.Value, "%d") + strings.Count(format.Value, "%s"); n != 1 {
		c.errorf(format.Pos(), "printf format must contain exactly one placeholder, got %d", n)
		return
	}
	if !strings.Contains(format.Value, want) {
		c.errorf(format.Pos(), "printf placeholder does not match argument type %s", e.Args[1].Type())
	}
}

func (c *checker) errorf(pos ast.Position, format string, args ...any) {
	c.errs = append(c.errs, &Error{Pos: pos, Message: fmt.Sprintf(format, args...)})
}
