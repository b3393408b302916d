package frontend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/choc/internal/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs := Parse(src)
	require.Empty(t, errs)
	require.NotNil(t, prog)
	return prog
}

func TestParseGlobalVarDef(t *testing.T) {
	prog := mustParse(t, "x: int = 5\n")
	require.Len(t, prog.Globals, 1)

	g := prog.Globals[0]
	assert.Equal(t, "x", g.Name.Name)
	assert.Equal(t, "int", g.TypeName)

	lit, ok := g.Value.(*ast.IntLit)
	require.True(t, ok)
	assert.Equal(t, int64(5), lit.Value)
}

func TestParseNegativeLiteralInitializer(t *testing.T) {
	prog := mustParse(t, "x: int = -3\n")
	lit, ok := prog.Globals[0].Value.(*ast.IntLit)
	require.True(t, ok)
	assert.Equal(t, int64(-3), lit.Value)
}

func TestParseVarDefRequiresLiteral(t *testing.T) {
	_, errs := Parse("x: int = 1 + 2\n")
	require.NotEmpty(t, errs)
}

func TestParseChainedAssignment(t *testing.T) {
	prog := mustParse(t, "x: int = 0\ny: int = 0\nx = y = 1\n")
	require.Len(t, prog.Body, 1)

	assign, ok := prog.Body[0].(*ast.Assign)
	require.True(t, ok)
	require.Len(t, assign.Targets, 2)
	assert.Equal(t, "x", assign.Targets[0].Name)
	assert.Equal(t, "y", assign.Targets[1].Name)
}

func TestParseAssignTargetMustBeName(t *testing.T) {
	_, errs := Parse("f(1) = 2\n")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "Invalid assignment target")
}

func TestParseFunctionDef(t *testing.T) {
	src := `def add(a: int, b: int) -> int:
    return a + b
`
	prog := mustParse(t, src)
	require.Len(t, prog.Funcs, 1)

	fn := prog.Funcs[0]
	assert.Equal(t, "add", fn.Name.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "a", fn.Params[0].Name)
	assert.Equal(t, "int", fn.Params[0].TypeName)
	assert.Equal(t, "int", fn.ReturnName)
	require.Len(t, fn.Body, 1)

	ret, ok := fn.Body[0].(*ast.Return)
	require.True(t, ok)
	require.NotNil(t, ret.Value)
}

func TestParseFunctionLocals(t *testing.T) {
	src := `def f() -> int:
    n: int = 10
    return n
`
	prog := mustParse(t, src)
	fn := prog.Funcs[0]
	require.Len(t, fn.Locals, 1)
	assert.Equal(t, "n", fn.Locals[0].Name.Name)
	require.Len(t, fn.Body, 1)
}

func TestParseOmittedReturnAnnotation(t *testing.T) {
	src := `def hello():
    pass
`
	prog := mustParse(t, src)
	assert.Equal(t, "", prog.Funcs[0].ReturnName)
}

func TestParseNestedDefRejected(t *testing.T) {
	src := `def outer():
    def inner():
        pass
    pass
`
	_, errs := Parse(src)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "Nested definitions")
}

func TestParseElifDesugarsToNestedIf(t *testing.T) {
	src := `x: int = 0
if x < 0:
    pass
elif x < 10:
    pass
else:
    pass
`
	prog := mustParse(t, src)
	require.Len(t, prog.Body, 1)

	outer, ok := prog.Body[0].(*ast.If)
	require.True(t, ok)
	require.Len(t, outer.Else, 1)

	inner, ok := outer.Else[0].(*ast.If)
	require.True(t, ok)
	assert.Len(t, inner.Then, 1)
	assert.Len(t, inner.Else, 1)
}

func TestParseWhile(t *testing.T) {
	src := `i: int = 0
while i < 5:
    i = i + 1
`
	prog := mustParse(t, src)
	require.Len(t, prog.Body, 1)

	loop, ok := prog.Body[0].(*ast.While)
	require.True(t, ok)
	assert.Len(t, loop.Body, 1)

	cmp, ok := loop.Cond.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpLt, cmp.Op)
}

func TestParseTernary(t *testing.T) {
	prog := mustParse(t, "printf(\"%d\", 1 if True else 2)\n")
	stmt, ok := prog.Body[0].(*ast.ExprStmt)
	require.True(t, ok)

	call, ok := stmt.X.(*ast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 2)

	cond, ok := call.Args[1].(*ast.Cond)
	require.True(t, ok)
	assert.IsType(t, &ast.BoolLit{}, cond.Cond)
	assert.IsType(t, &ast.IntLit{}, cond.Then)
	assert.IsType(t, &ast.IntLit{}, cond.Else)
}

func TestParsePrecedence(t *testing.T) {
	prog := mustParse(t, "b: bool = False\nb = 1 + 2 * 3 < 4 and not b\n")
	assign := prog.Body[0].(*ast.Assign)

	and, ok := assign.Value.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpAnd, and.Op)

	cmp, ok := and.X.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpLt, cmp.Op)

	add, ok := cmp.X.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpAdd, add.Op)

	mul, ok := add.Y.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.OpMul, mul.Op)

	not, ok := and.Y.(*ast.Unary)
	require.True(t, ok)
	assert.Equal(t, ast.UnaryNot, not.Op)
}

func TestParseChainedComparisonRejected(t *testing.T) {
	_, errs := Parse("b: bool = True\nb = 1 < 2 < 3\n")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "more than 2 operands")
}

func TestParseDeclarationAfterStatementRejected(t *testing.T) {
	_, errs := Parse("pass\nx: int = 1\n")
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "declarations must come before statements")
}

func TestParseVarDefInsideLoopRejected(t *testing.T) {
	src := `while True:
    x: int = 1
`
	_, errs := Parse(src)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "Cannot declare variables")
}

func TestParseBareReturn(t *testing.T) {
	src := `def f():
    return
`
	prog := mustParse(t, src)
	ret := prog.Funcs[0].Body[0].(*ast.Return)
	assert.Nil(t, ret.Value)
}

func TestParseCallNoArgs(t *testing.T) {
	prog := mustParse(t, "f()\n")
	call := prog.Body[0].(*ast.ExprStmt).X.(*ast.Call)
	assert.Equal(t, "f", call.Func.Name)
	assert.Empty(t, call.Args)
}
