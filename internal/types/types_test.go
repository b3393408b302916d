package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		name string
		want ValueType
	}{
		{"int", Int},
		{"bool", Bool},
		{"str", Str},
		{"object", Object},
		{"<None>", None},
		{"", None}, // omitted return annotation
	}
	for _, tc := range cases {
		got, err := Lookup(tc.name)
		require.NoError(t, err, "Lookup(%q)", tc.name)
		assert.Equal(t, tc.want, got, "Lookup(%q)", tc.name)
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("float")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}

func TestAssignable(t *testing.T) {
	assert.True(t, Assignable(Int, Int))
	assert.True(t, Assignable(Str, Str))
	assert.True(t, Assignable(Int, Object))
	assert.True(t, Assignable(None, Object))

	assert.False(t, Assignable(Int, Bool))
	assert.False(t, Assignable(Bool, Int))
	assert.False(t, Assignable(Object, Int))
	assert.False(t, Assignable(Invalid, Invalid))
	assert.False(t, Assignable(Invalid, Object))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, Int, Join(Int, Int))
	assert.Equal(t, Object, Join(Int, Str))
	assert.Equal(t, Object, Join(None, Bool))
}

func TestFuncTypeString(t *testing.T) {
	f := FuncType{Params: []ValueType{Str, Object}, Return: Int}
	assert.Equal(t, "(str, object) -> int", f.String())

	empty := FuncType{Return: None}
	assert.Equal(t, "() -> <None>", empty.String())
}
