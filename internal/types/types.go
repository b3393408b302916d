// Package types defines the static type model for the ChocoPy subset.
//
// The subset has three primitive value types (int, bool, str), the <None>
// return-only sentinel, and object as the top type used in builtin
// signatures. There is no subtyping beyond assignability into object.
package types

import "fmt"

// ValueType identifies the resolved static type of an expression,
// variable, parameter, or return value.
type ValueType int

const (
	// Invalid is the zero value, meaning the checker has not resolved
	// the type yet (or resolution failed).
	Invalid ValueType = iota

	// None is the <None> sentinel. It is valid only as a function return
	// type and as the type of a bare None literal.
	None

	Int
	Bool
	Str

	// Object is the top type. It appears only in builtin signatures
	// (the second printf parameter accepts any value type).
	Object
)

// String returns the source-level name of the type.
func (t ValueType) String() string {
	switch t {
	case None:
		return "<None>"
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Str:
		return "str"
	case Object:
		return "object"
	default:
		return "<invalid>"
	}
}

// Lookup resolves a source-level annotation name to a ValueType.
// The empty name resolves to None (an omitted return annotation).
func Lookup(name string) (ValueType, error) {
	switch name {
	case "":
		return None, nil
	case "int":
		return Int, nil
	case "bool":
		return Bool, nil
	case "str":
		return Str, nil
	case "object":
		return Object, nil
	case "<None>":
		return None, nil
	default:
		return Invalid, fmt.Errorf("unknown type: %s", name)
	}
}

// Assignable reports whether a value of type from may be bound to a
// location of type to. The subset has no general subtyping: types must
// match exactly, except that every value type is assignable to object
// and None is assignable to object.
func Assignable(from, to ValueType) bool {
	if from == to {
		return from != Invalid
	}
	return to == Object && from != Invalid
}

// Join returns the least common type of a and b, used for the two arms
// of a conditional expression. Equal types join to themselves; anything
// else joins to object.
func Join(a, b ValueType) ValueType {
	if a == b {
		return a
	}
	return Object
}

// FuncType is the signature of a function or builtin.
type FuncType struct {
	Params []ValueType
	Return ValueType
}

// String renders the signature in annotation form, e.g. "(str, object) -> int".
func (f FuncType) String() string {
	s := "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") -> " + f.Return.String()
}
