package pyemit

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/choc/internal/check"
	"github.com/roach88/choc/internal/frontend"
)

func emit(t *testing.T, source string) string {
	t.Helper()
	prog, errs := frontend.Parse(source)
	require.Empty(t, errs, "parse errors")
	require.Empty(t, check.Check(prog), "check errors")
	return Emit(prog)
}

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestEmitProgram(t *testing.T) {
	source := `greeting: str = "hi"

def add(a: int, b: int) -> int:
    return a + b

def noop():
    pass

x: int = 0
x = add(1, 2)
if x > 1:
    printf("%s", greeting)
while x > 0:
    x = x - 1
`
	golden(t).Assert(t, "program", []byte(emit(t, source)))
}

func TestEmitChainedAssignAndTernary(t *testing.T) {
	source := `a: int = 0
b: int = 0
a = b = 1 if True else 2
printf("%d", -a)
`
	golden(t).Assert(t, "chained", []byte(emit(t, source)))
}

func TestEmitDropsAnnotations(t *testing.T) {
	out := emit(t, "x: int = 5\n")
	assert.Equal(t, "x = 5", out)
}

func TestEmitChainedAssignEvaluatesOnce(t *testing.T) {
	out := emit(t, `a: int = 0
b: int = 0
a = b = 1 + 2
`)
	assert.Equal(t, 1, strings.Count(out, "(1 + 2)"), "value appears once")
	assert.Contains(t, out, "__x = (1 + 2)")
	assert.Contains(t, out, "a = __x")
	assert.Contains(t, out, "b = __x")
}

func TestEmitElifDesugarsToNestedIf(t *testing.T) {
	out := emit(t, `x: int = 0
if x < 0:
    pass
elif x > 0:
    pass
`)
	assert.Contains(t, out, "else:\n    if (x > 0):")
}

func TestEmitStringEscapes(t *testing.T) {
	out := emit(t, `s: str = "line\nbreak \"q\""
`)
	assert.Equal(t, `s = "line\nbreak \"q\""`, out)
}

func TestEmitParenthesizesPrecedence(t *testing.T) {
	out := emit(t, `printf("%d", 1 + 2 * 3)
`)
	assert.Contains(t, out, "(1 + (2 * 3))")
}

func TestEmitBareReturn(t *testing.T) {
	out := emit(t, `def f():
    return
`)
	assert.Contains(t, out, "    return\n")
	assert.NotContains(t, out, "return \n")
}

func TestEmitUnknownNodePanics(t *testing.T) {
	e := &emitter{b: newBuilder()}
	assert.Panics(t, func() { e.stmt(nil) })
}
