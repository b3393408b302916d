package lower

import (
	llir "github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"github.com/roach88/choc/internal/ast"
	"github.com/roach88/choc/internal/types"
)

// StorageKind says where a variable's slot lives.
type StorageKind int

const (
	// GlobalVar is a module-level global.
	GlobalVar StorageKind = iota
	// LocalVar is a function-local alloca.
	LocalVar
	// ParamVar is a parameter spilled to an entry-block alloca.
	ParamVar
)

// Storage is a resolved variable: its static type and the pointer
// through which it is loaded and stored.
type Storage struct {
	Kind StorageKind
	Type types.ValueType
	Ptr  value.Value
}

// environment resolves names inside one function body. Lookup walks
// the two levels the language has: function scope first, then module
// globals. There is no block scoping — a while or if body shares its
// enclosing function's slots.
type environment struct {
	globals map[string]Storage
	funcs   map[string]*llir.Func
	locals  map[string]Storage
}

func (e *environment) bindLocal(name string, kind StorageKind, t types.ValueType, ptr value.Value) {
	if e.locals == nil {
		e.locals = make(map[string]Storage)
	}
	e.locals[name] = Storage{Kind: kind, Type: t, Ptr: ptr}
}

// resolve returns the storage slot for name. The checker has already
// bound every identifier, so a miss here is a defect.
func (e *environment) resolve(name string, node ast.Node) Storage {
	if st, ok := e.locals[name]; ok {
		return st
	}
	if st, ok := e.globals[name]; ok {
		return st
	}
	ice("resolve", node, "unbound identifier %q", name)
	return Storage{}
}

// function returns the declared function for name.
func (e *environment) function(name string, node ast.Node) *llir.Func {
	fn, ok := e.funcs[name]
	if !ok {
		ice("function", node, "unbound function %q", name)
	}
	return fn
}
