package lower

import (
	"fmt"

	llir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/roach88/choc/internal/ast"
	"github.com/roach88/choc/internal/types"
)

// lowerer carries the module-level state of one Lower call: the module
// under construction, the declared functions, global variable slots,
// and the pool of interned string constants.
type lowerer struct {
	m      *llir.Module
	printf *llir.Func

	globals map[string]Storage
	funcs   map[string]*llir.Func

	strs     map[string]constant.Constant
	strCount int
}

// funcState is the per-function lowering context.
type funcState struct {
	l   *lowerer
	b   *builder
	env *environment
	ret types.ValueType
}

// Lower translates a checked program into an LLVM IR module. The
// program must have passed the checker; contract violations surface as
// *InternalError. The output is deterministic for a given input.
func Lower(prog *ast.Program) (m *llir.Module, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ie, ok := r.(*InternalError); ok {
				m, err = nil, ie
				return
			}
			panic(r)
		}
	}()

	l := &lowerer{
		m:       llir.NewModule(),
		globals: make(map[string]Storage),
		funcs:   make(map[string]*llir.Func),
		strs:    make(map[string]constant.Constant),
	}

	l.printf = l.m.NewFunc("printf", lltypes.I32, llir.NewParam("format", i8ptr))
	l.printf.Sig.Variadic = true
	l.funcs["printf"] = l.printf

	for _, g := range prog.Globals {
		l.lowerGlobal(g)
	}

	// Declare every signature before lowering any body so calls can
	// reference functions defined later in the source.
	for _, fd := range prog.Funcs {
		l.declareFunc(fd)
	}
	for _, fd := range prog.Funcs {
		l.lowerFunc(fd)
	}

	l.lowerMain(prog.Body)
	return l.m, nil
}

// lowerGlobal emits a module global initialized from the definition's
// literal.
func (l *lowerer) lowerGlobal(d *ast.VarDef) {
	init := l.literalConst(d.Value, d.Type)
	g := l.m.NewGlobalDef(d.Name.Name, init)
	l.globals[d.Name.Name] = Storage{Kind: GlobalVar, Type: d.Type, Ptr: g}
}

func (l *lowerer) declareFunc(fd *ast.FuncDef) {
	params := make([]*llir.Param, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = llir.NewParam(p.Name, irType(p.Type))
	}
	var ret lltypes.Type = lltypes.Void
	if fd.Return != types.None {
		ret = irType(fd.Return)
	}
	l.funcs[fd.Name.Name] = l.m.NewFunc(fd.Name.Name, ret, params...)
}

// lowerFunc emits a function body. Parameters are spilled to entry
// allocas so that assignment to a parameter works like any other
// variable; locals get an alloca initialized from their literal.
func (l *lowerer) lowerFunc(fd *ast.FuncDef) {
	fn := l.funcs[fd.Name.Name]
	fs := &funcState{
		l:   l,
		b:   newBuilder(fn),
		env: &environment{globals: l.globals, funcs: l.funcs},
		ret: fd.Return,
	}

	for i, p := range fd.Params {
		slot := fs.b.alloca(irType(p.Type), fd)
		fs.b.store(fn.Params[i], slot, fd)
		fs.env.bindLocal(p.Name, ParamVar, p.Type, slot)
	}
	for _, d := range fd.Locals {
		slot := fs.b.alloca(irType(d.Type), d)
		fs.b.store(l.literalConst(d.Value, d.Type), slot, d)
		fs.env.bindLocal(d.Name.Name, LocalVar, d.Type, slot)
	}

	if !fs.stmts(fd.Body) {
		// The checker proved this path unreachable for non-None
		// returns, but the block still needs a terminator.
		if fd.Return == types.None {
			fs.b.retVoid(fd)
		} else {
			fs.b.ret(zeroValue(fd.Return), fd)
		}
	}
}

// lowerMain wraps the top-level statements in the process entry point,
// which reports success to the host.
func (l *lowerer) lowerMain(body []ast.Stmt) {
	fn := l.m.NewFunc("main", lltypes.I32)
	fs := &funcState{
		l:   l,
		b:   newBuilder(fn),
		env: &environment{globals: l.globals, funcs: l.funcs},
		ret: types.Int,
	}
	if !fs.stmts(body) {
		fs.b.ret(constant.NewInt(lltypes.I32, 0), nil)
	}
}

// internString returns an i8* to a NUL-terminated private constant for
// s, reusing one global per distinct string value.
func (l *lowerer) internString(s string) constant.Constant {
	if ptr, ok := l.strs[s]; ok {
		return ptr
	}
	arr := constant.NewCharArrayFromString(s + "\x00")
	g := l.m.NewGlobalDef(fmt.Sprintf("str.%d", l.strCount), arr)
	l.strCount++
	g.Immutable = true
	g.Linkage = enum.LinkagePrivate
	g.UnnamedAddr = enum.UnnamedAddrUnnamedAddr

	zero := constant.NewInt(lltypes.I32, 0)
	ptr := constant.NewGetElementPtr(arr.Typ, g, zero, zero)
	l.strs[s] = ptr
	return ptr
}
