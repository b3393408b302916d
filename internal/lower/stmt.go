package lower

import (
	llir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"github.com/roach88/choc/internal/ast"
	"github.com/roach88/choc/internal/types"
)

// stmts lowers a statement list in order. It returns true when the
// list terminated control flow, in which case any trailing statements
// were unreachable and no code was emitted for them.
func (fs *funcState) stmts(list []ast.Stmt) bool {
	for _, s := range list {
		if fs.stmt(s) {
			return true
		}
	}
	return false
}

// stmt lowers one statement and reports whether it terminated the
// current block with a return.
func (fs *funcState) stmt(s ast.Stmt) bool {
	switch s := s.(type) {
	case *ast.Pass:
		return false
	case *ast.ExprStmt:
		fs.expr(s.X)
		return false
	case *ast.Assign:
		fs.assign(s)
		return false
	case *ast.If:
		return fs.ifStmt(s)
	case *ast.While:
		fs.whileStmt(s)
		return false
	case *ast.Return:
		fs.returnStmt(s)
		return true
	default:
		ice("stmt", s, "unknown statement %T", s)
		return false
	}
}

// assign evaluates the right-hand side once and stores it into every
// target, left to right.
func (fs *funcState) assign(s *ast.Assign) {
	v := fs.expr(s.Value)
	if v == nil {
		ice("assign", s, "right-hand side has no value")
	}
	for _, t := range s.Targets {
		st := fs.env.resolve(t.Name, t)
		fs.b.store(v, st.Ptr, t)
	}
}

// ifStmt lowers a conditional. The merge block is created only when
// some arm can fall through to it; when both arms return, the
// statement itself terminates control flow.
func (fs *funcState) ifStmt(s *ast.If) bool {
	cond := fs.expr(s.Cond)

	thenB := fs.b.newBlock("if.then")
	var elseB, endB *llir.Block
	ensureEnd := func() *llir.Block {
		if endB == nil {
			endB = fs.b.newBlock("if.end")
		}
		return endB
	}

	if len(s.Else) > 0 {
		elseB = fs.b.newBlock("if.else")
		fs.b.condBr(cond, thenB, elseB, s)
	} else {
		fs.b.condBr(cond, thenB, ensureEnd(), s)
	}

	fs.b.setInsert(thenB)
	if !fs.stmts(s.Then) {
		fs.b.br(ensureEnd(), s)
	}

	if elseB != nil {
		fs.b.setInsert(elseB)
		if !fs.stmts(s.Else) {
			fs.b.br(ensureEnd(), s)
		}
	}

	if endB == nil {
		return true
	}
	fs.b.setInsert(endB)
	return false
}

// whileStmt lowers a loop as cond/body/end blocks with a back edge
// from the body to the condition. The condition is re-evaluated on
// every iteration, including any short-circuit blocks it expands to.
func (fs *funcState) whileStmt(s *ast.While) {
	condB := fs.b.newBlock("while.cond")
	bodyB := fs.b.newBlock("while.body")
	endB := fs.b.newBlock("while.end")

	fs.b.br(condB, s)
	fs.b.setInsert(condB)
	cond := fs.expr(s.Cond)
	fs.b.condBr(cond, bodyB, endB, s)

	fs.b.setInsert(bodyB)
	if !fs.stmts(s.Body) {
		fs.b.br(condB, s)
	}

	fs.b.setInsert(endB)
}

// returnStmt terminates the current block. In a function returning
// <None> the expression, if any, is evaluated for effect and the
// return carries no value.
func (fs *funcState) returnStmt(s *ast.Return) {
	var v value.Value
	if s.Value != nil {
		v = fs.expr(s.Value)
	}
	if fs.ret == types.None {
		fs.b.retVoid(s)
		return
	}
	if v == nil {
		ice("return", s, "missing value for %s return", fs.ret)
	}
	fs.b.ret(v, s)
}
