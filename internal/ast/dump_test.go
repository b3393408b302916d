package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/choc/internal/types"
)

func TestDumpUntyped(t *testing.T) {
	expr := &Binary{
		Position: Position{Line: 1, Col: 1},
		Op:       OpAdd,
		X:        &IntLit{Position: Position{Line: 1, Col: 1}, Value: 1},
		Y:        &IntLit{Position: Position{Line: 1, Col: 5}, Value: 2},
	}

	m, ok := Dump(expr, false).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Binary", m["kind"])
	assert.Equal(t, "+", m["op"])
	assert.NotContains(t, m, "type")
}

func TestDumpTyped(t *testing.T) {
	lit := &IntLit{Position: Position{Line: 2, Col: 3}, Value: 7}
	lit.SetType(types.Int)

	m, ok := Dump(lit, true).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "int", m["type"])
	assert.Equal(t, 2, m["line"])
	assert.Equal(t, 3, m["col"])
}

func TestDumpDeterministic(t *testing.T) {
	prog := &Program{
		Globals: []*VarDef{{
			Position: Position{Line: 1, Col: 1},
			Name:     &Ident{Position: Position{Line: 1, Col: 1}, Name: "x"},
			TypeName: "int",
			Value:    &IntLit{Position: Position{Line: 1, Col: 10}, Value: 5},
		}},
		Body: []Stmt{&Pass{Position: Position{Line: 2, Col: 1}}},
	}

	first, err := json.Marshal(Dump(prog, false))
	require.NoError(t, err)
	second, err := json.Marshal(Dump(prog, false))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDumpBareReturn(t *testing.T) {
	ret := &Return{Position: Position{Line: 4, Col: 5}}
	m, ok := Dump(ret, false).(map[string]any)
	require.True(t, ok)
	assert.Contains(t, m, "value")
	assert.Nil(t, m["value"])
}
