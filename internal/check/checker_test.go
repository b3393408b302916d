package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/choc/internal/ast"
	"github.com/roach88/choc/internal/frontend"
	"github.com/roach88/choc/internal/types"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs := frontend.Parse(src)
	require.Empty(t, errs)
	return prog
}

func checkOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog := parse(t, src)
	errs := Check(prog)
	require.Empty(t, errs)
	return prog
}

func checkErr(t *testing.T, src, wantSubstring string) {
	t.Helper()
	prog := parse(t, src)
	errs := Check(prog)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), wantSubstring)
}

func TestCheckAnnotatesExpressionTypes(t *testing.T) {
	prog := checkOK(t, "x: int = 5\nx = x + 3\n")

	assign := prog.Body[0].(*ast.Assign)
	assert.Equal(t, types.Int, assign.Value.Type())

	add := assign.Value.(*ast.Binary)
	assert.Equal(t, types.Int, add.X.Type())
	assert.Equal(t, types.Int, add.Y.Type())
}

func TestCheckComparisonProducesBool(t *testing.T) {
	prog := checkOK(t, "b: bool = True\nb = 1 < 2\n")
	assign := prog.Body[0].(*ast.Assign)
	assert.Equal(t, types.Bool, assign.Value.Type())
}

func TestCheckVarDefLiteralMismatch(t *testing.T) {
	checkErr(t, "x: int = True\n", "Expected int, got bool")
}

func TestCheckUnknownIdentifier(t *testing.T) {
	checkErr(t, "y = 1\n", "Identifier not defined in current scope: y")
}

func TestCheckDuplicateGlobal(t *testing.T) {
	checkErr(t, "x: int = 1\nx: int = 2\n", "Duplicate declaration")
}

func TestCheckOperatorTypeError(t *testing.T) {
	checkErr(t, "x: int = 1\nx = x + True\n", "Cannot use operator +")
}

func TestCheckEqualityOnStringsRejected(t *testing.T) {
	checkErr(t, "b: bool = True\nb = \"a\" == \"a\"\n", "Cannot use operator ==")
}

func TestCheckEqualityOnMixedTypesRejected(t *testing.T) {
	checkErr(t, "b: bool = True\nb = 1 == True\n", "Cannot use operator ==")
}

func TestCheckConditionMustBeBool(t *testing.T) {
	checkErr(t, "if 1:\n    pass\n", "Expected bool, got int")
}

func TestCheckAssignGlobalFromFunctionRejected(t *testing.T) {
	src := `x: int = 0
def f():
    x = 1
`
	checkErr(t, src, "not defined in current scope")
}

func TestCheckFunctionTypes(t *testing.T) {
	src := `def add(a: int, b: int) -> int:
    return a + b
r: int = 0
r = add(1, 2)
`
	prog := parse(t, src)
	errs := Check(prog)
	require.Empty(t, errs)

	assign := prog.Body[0].(*ast.Assign)
	assert.Equal(t, types.Int, assign.Value.Type())
}

func TestCheckCallArityMismatch(t *testing.T) {
	src := `def f(a: int):
    pass
f(1, 2)
`
	checkErr(t, src, "Expected 1 args, got 2")
}

func TestCheckCallArgumentType(t *testing.T) {
	src := `def f(a: int):
    pass
f(True)
`
	checkErr(t, src, "Expected int, got bool")
}

func TestCheckForwardReferenceAllowed(t *testing.T) {
	src := `def even(n: int) -> bool:
    return True if n == 0 else odd(n - 1)
def odd(n: int) -> bool:
    return False if n == 0 else even(n - 1)
b: bool = False
b = even(10)
`
	checkOK(t, src)
}

func TestCheckMissingReturnPath(t *testing.T) {
	src := `def f(a: int) -> int:
    if a > 0:
        return 1
`
	checkErr(t, src, "Expected return statement of type int")
}

func TestCheckReturnBothArmsSatisfies(t *testing.T) {
	src := `def sign(a: int) -> int:
    if a >= 0:
        return 1
    else:
        return -1
`
	checkOK(t, src)
}

func TestCheckReturnValueType(t *testing.T) {
	src := `def f() -> int:
    return True
`
	checkErr(t, src, "Expected int, got bool")
}

func TestCheckBareReturnInTypedFunction(t *testing.T) {
	src := `def f() -> int:
    return
`
	checkErr(t, src, "Expected int, got <None>")
}

func TestCheckReturnOutsideFunction(t *testing.T) {
	checkErr(t, "return 1\n", "outside of function definition")
}

func TestCheckConditionalArmsMustMatch(t *testing.T) {
	checkErr(t, "x: int = 0\nx = 1 if True else \"two\"\n", "Mismatched conditional arms")
}

func TestCheckConditionalArmsCannotBeNone(t *testing.T) {
	src := `def f():
    pass
f() if True else f()
`
	checkErr(t, src, "Conditional expression cannot have type <None>")
	checkErr(t, "None if True else None\n", "Conditional expression cannot have type <None>")
}

func TestCheckPrintf(t *testing.T) {
	checkOK(t, "printf(\"%d\", 42)\n")
	checkOK(t, "printf(\"%d\", True)\n")
	checkOK(t, "printf(\"%s\", \"hi\")\n")
	checkOK(t, "printf(\"value: %d\", 1 + 2)\n")
}

func TestCheckPrintfPlaceholderMismatch(t *testing.T) {
	checkErr(t, "printf(\"%s\", 42)\n", "placeholder does not match")
}

func TestCheckPrintfPlaceholderCount(t *testing.T) {
	checkErr(t, "printf(\"%d %d\", 42)\n", "exactly one placeholder")
}

func TestCheckPrintfFormatMustBeLiteral(t *testing.T) {
	src := `f: str = "%d"
printf(f, 42)
`
	checkErr(t, src, "format must be a string literal")
}

func TestCheckNotAFunction(t *testing.T) {
	checkErr(t, "x: int = 1\nx(2)\n", "Not a function: x")
}

func TestCheckFunctionUsedAsValueRejected(t *testing.T) {
	src := `def f():
    pass
x: int = 0
x = f
`
	checkErr(t, src, "Not a variable: f")
}

func TestCheckObjectAnnotationRejected(t *testing.T) {
	checkErr(t, "x: object = 1\n", "Invalid variable type: object")
}

func TestCheckUnknownAnnotationRejected(t *testing.T) {
	checkErr(t, "x: float = 1\n", "Unknown type: float")
}

func TestCheckChainedAssignmentTypes(t *testing.T) {
	src := `x: int = 0
y: int = 0
z: int = 0
x = y = z = 1
`
	prog := checkOK(t, src)
	assign := prog.Body[0].(*ast.Assign)
	require.Len(t, assign.Targets, 3)
	for _, target := range assign.Targets {
		assert.Equal(t, types.Int, target.Type())
	}
}

func TestCheckReservedNameMain(t *testing.T) {
	checkErr(t, "def main():\n    pass\n", "Reserved name: main")
	checkErr(t, "main: int = 0\n", "Reserved name: main")
}

func TestCheckPrintfRedefinitionRejected(t *testing.T) {
	checkErr(t, "def printf(s: str) -> int:\n    return 0\n", "Duplicate declaration of identifier: printf")
}
