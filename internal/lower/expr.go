package lower

import (
	llir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/roach88/choc/internal/ast"
	"github.com/roach88/choc/internal/types"
)

// expr lowers an expression to the value holding its result, emitting
// into the current block. Short-circuit and conditional expressions
// move the insertion point; the returned value is always live in the
// block the builder is positioned at on return.
func (fs *funcState) expr(e ast.Expr) value.Value {
	switch e := e.(type) {
	case *ast.IntLit:
		return constant.NewInt(lltypes.I32, e.Value)
	case *ast.BoolLit:
		if e.Value {
			return constant.True
		}
		return constant.False
	case *ast.StrLit:
		return fs.l.internString(e.Value)
	case *ast.NoneLit:
		// None has no value representation; it is only legal where
		// the result is discarded.
		return nil
	case *ast.Ident:
		st := fs.env.resolve(e.Name, e)
		return fs.b.load(irType(st.Type), st.Ptr, e)
	case *ast.Unary:
		return fs.unary(e)
	case *ast.Binary:
		return fs.binary(e)
	case *ast.Cond:
		return fs.condExpr(e)
	case *ast.Call:
		return fs.callExpr(e)
	default:
		ice("expr", e, "unknown expression %T", e)
		return nil
	}
}

func (fs *funcState) unary(e *ast.Unary) value.Value {
	x := fs.expr(e.X)
	switch e.Op {
	case ast.UnaryNeg:
		return fs.b.sub(constant.NewInt(lltypes.I32, 0), x, e)
	case ast.UnaryNot:
		return fs.b.xor(x, constant.True, e)
	default:
		ice("unary", e, "unknown operator %q", e.Op)
		return nil
	}
}

func (fs *funcState) binary(e *ast.Binary) value.Value {
	switch e.Op {
	case ast.OpAnd, ast.OpOr:
		return fs.shortCircuit(e)
	}
	x := fs.expr(e.X)
	y := fs.expr(e.Y)
	switch e.Op {
	case ast.OpAdd:
		return fs.b.add(x, y, e)
	case ast.OpSub:
		return fs.b.sub(x, y, e)
	case ast.OpMul:
		return fs.b.mul(x, y, e)
	case ast.OpDiv:
		return fs.b.sdiv(x, y, e)
	case ast.OpMod:
		return fs.b.srem(x, y, e)
	case ast.OpLt:
		return fs.b.icmp(enum.IPredSLT, x, y, e)
	case ast.OpLe:
		return fs.b.icmp(enum.IPredSLE, x, y, e)
	case ast.OpGt:
		return fs.b.icmp(enum.IPredSGT, x, y, e)
	case ast.OpGe:
		return fs.b.icmp(enum.IPredSGE, x, y, e)
	case ast.OpEq:
		return fs.b.icmp(enum.IPredEQ, x, y, e)
	case ast.OpNe:
		return fs.b.icmp(enum.IPredNE, x, y, e)
	default:
		ice("binary", e, "unknown operator %q", e.Op)
		return nil
	}
}

// shortCircuit lowers and/or without evaluating the right operand when
// the left already decides the result. The left branch contributes a
// constant to the merge phi; the right branch contributes whatever it
// evaluated to.
func (fs *funcState) shortCircuit(e *ast.Binary) value.Value {
	left := fs.expr(e.X)
	leftEnd := fs.b.block()

	var rhs, end *llir.Block
	var short constant.Constant
	switch e.Op {
	case ast.OpAnd:
		rhs = fs.b.newBlock("and.rhs")
		end = fs.b.newBlock("and.end")
		short = constant.False
		fs.b.condBr(left, rhs, end, e)
	case ast.OpOr:
		rhs = fs.b.newBlock("or.rhs")
		end = fs.b.newBlock("or.end")
		short = constant.True
		fs.b.condBr(left, end, rhs, e)
	}

	fs.b.setInsert(rhs)
	right := fs.expr(e.Y)
	rightEnd := fs.b.block()
	fs.b.br(end, e)

	fs.b.setInsert(end)
	return fs.b.phi(e,
		llir.NewIncoming(short, leftEnd),
		llir.NewIncoming(right, rightEnd),
	)
}

// condExpr lowers a conditional expression as a diamond: exactly one
// arm is evaluated, and the merge phi carries the chosen value.
func (fs *funcState) condExpr(e *ast.Cond) value.Value {
	cond := fs.expr(e.Cond)
	thenB := fs.b.newBlock("ternary.then")
	elseB := fs.b.newBlock("ternary.else")
	endB := fs.b.newBlock("ternary.end")
	fs.b.condBr(cond, thenB, elseB, e)

	fs.b.setInsert(thenB)
	thenV := fs.expr(e.Then)
	thenEnd := fs.b.block()
	fs.b.br(endB, e)

	fs.b.setInsert(elseB)
	elseV := fs.expr(e.Else)
	elseEnd := fs.b.block()
	fs.b.br(endB, e)

	fs.b.setInsert(endB)
	return fs.b.phi(e,
		llir.NewIncoming(thenV, thenEnd),
		llir.NewIncoming(elseV, elseEnd),
	)
}

// callExpr lowers a call, evaluating arguments left to right. For the
// variadic printf, bool arguments are widened to i32 the way C varargs
// promote them.
func (fs *funcState) callExpr(e *ast.Call) value.Value {
	callee := fs.env.function(e.Func.Name, e)
	fixed := len(callee.Sig.Params)
	args := make([]value.Value, 0, len(e.Args))
	for i, a := range e.Args {
		v := fs.expr(a)
		if v == nil {
			ice("call", a, "argument %d has no value", i)
		}
		if callee.Sig.Variadic && i >= fixed && v.Type().Equal(lltypes.I1) {
			v = fs.b.zext(v, lltypes.I32, a)
		}
		args = append(args, v)
	}
	return fs.b.call(callee, e, args...)
}

// literalConst lowers a literal used as a variable initializer, where
// no instruction stream exists yet.
func (l *lowerer) literalConst(e ast.Expr, t types.ValueType) constant.Constant {
	switch e := e.(type) {
	case *ast.IntLit:
		return constant.NewInt(lltypes.I32, e.Value)
	case *ast.BoolLit:
		if e.Value {
			return constant.True
		}
		return constant.False
	case *ast.StrLit:
		return l.internString(e.Value)
	default:
		ice("literal", e, "initializer is not a literal of type %s", t)
		return nil
	}
}
