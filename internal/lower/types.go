package lower

import (
	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"

	"github.com/roach88/choc/internal/types"
)

// i8ptr is the representation of str values: a pointer to the first
// byte of a NUL-terminated constant.
var i8ptr = lltypes.NewPointer(lltypes.I8)

// irType maps a static type to its register/storage representation.
// int is a 32-bit two's-complement integer, bool a single bit, str a
// byte pointer, and <None> has no value representation at all.
func irType(t types.ValueType) lltypes.Type {
	switch t {
	case types.Int:
		return lltypes.I32
	case types.Bool:
		return lltypes.I1
	case types.Str:
		return i8ptr
	case types.None:
		return lltypes.Void
	default:
		ice("irType", nil, "no representation for type %s", t)
		return nil
	}
}

// zeroValue is the value produced when control falls off the end of a
// function with a declared return type. The checker guarantees such
// paths are unreachable, but every block still needs a terminator.
func zeroValue(t types.ValueType) constant.Constant {
	switch t {
	case types.Int:
		return constant.NewInt(lltypes.I32, 0)
	case types.Bool:
		return constant.False
	case types.Str:
		return constant.NewNull(i8ptr)
	default:
		ice("zeroValue", nil, "no zero value for type %s", t)
		return nil
	}
}
