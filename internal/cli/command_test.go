package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSource = `greeting: str = "hello"

def shout(times: int):
    i: int = 0
    while i < times:
        printf("%s", greeting)
        i = i + 1

shout(3)
`

func TestParseCommand_ValidSource(t *testing.T) {
	path := writeSource(t, validSource)

	stdout, _, err := execute(t, "parse", "--format", "json", path)
	require.NoError(t, err)

	resp := decodeResponse(t, stdout)
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "Program", data["kind"])
}

func TestParseCommand_SyntaxError(t *testing.T) {
	path := writeSource(t, "def f(:\n    pass\n")

	stdout, _, err := execute(t, "parse", "--format", "json", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, stdout)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, ErrCodeParse, resp.Error.Code)
	assert.NotEmpty(t, resp.Error.Diagnostics)
}

func TestParseCommand_MissingFile(t *testing.T) {
	stdout, _, err := execute(t, "parse", "--format", "json", "no-such-file.choc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	resp := decodeResponse(t, stdout)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

func TestCheckCommand_WellTyped(t *testing.T) {
	path := writeSource(t, validSource)

	stdout, _, err := execute(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓")
	assert.Contains(t, stdout, "1 function(s)")
}

func TestCheckCommand_TypeError(t *testing.T) {
	path := writeSource(t, "x: int = True\n")

	stdout, _, err := execute(t, "check", "--format", "json", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeResponse(t, stdout)
	assert.Equal(t, ErrCodeCheck, resp.Error.Code)
	require.Len(t, resp.Error.Diagnostics, 1)
	assert.Contains(t, resp.Error.Diagnostics[0], "Expected int, got bool")
}

func TestCheckCommand_TextDiagnosticsListed(t *testing.T) {
	path := writeSource(t, "x: int = True\ny: bool = 1\n")

	stdout, _, err := execute(t, "check", path)
	require.Error(t, err)
	assert.Contains(t, stdout, "Error [E102]")
	assert.Contains(t, stdout, "Expected int, got bool")
	assert.Contains(t, stdout, "Expected bool, got int")
}

func TestEmitCommand_IRToStdout(t *testing.T) {
	path := writeSource(t, validSource)

	stdout, _, err := execute(t, "emit", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "declare i32 @printf")
	assert.Contains(t, stdout, "define void @shout")
	assert.Contains(t, stdout, "define i32 @main()")
}

func TestEmitCommand_PyMode(t *testing.T) {
	path := writeSource(t, validSource)

	stdout, _, err := execute(t, "emit", "--mode", "py", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "def shout(times):")
	assert.NotContains(t, stdout, ": int")
}

func TestEmitCommand_BadMode(t *testing.T) {
	path := writeSource(t, validSource)

	_, _, err := execute(t, "emit", "--mode", "wasm", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEmitCommand_OutputFile(t *testing.T) {
	path := writeSource(t, validSource)
	outPath := filepath.Join(t.TempDir(), "prog.ll")

	stdout, _, err := execute(t, "emit", "-o", outPath, path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ Wrote artifact to")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "define i32 @main()")
}

func TestEmitCommand_VerboseGoesToStderr(t *testing.T) {
	path := writeSource(t, validSource)

	stdout, stderr, err := execute(t, "emit", "--format", "json", "--verbose", "-o",
		filepath.Join(t.TempDir(), "prog.ll"), path)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Wrote artifact")
	// stdout stays parseable JSON.
	resp := decodeResponse(t, stdout)
	assert.Equal(t, "ok", resp.Status)
}

func TestCompileCommand_CacheRoundTrip(t *testing.T) {
	path := writeSource(t, validSource)
	cachePath := filepath.Join(t.TempDir(), "cache.db")

	first, _, err := execute(t, "compile", "--cache", cachePath, "--format", "json", path)
	require.NoError(t, err)
	firstResp := decodeResponse(t, first)
	firstData := firstResp.Data.(map[string]any)
	assert.Equal(t, false, firstData["cached"])

	second, _, err := execute(t, "compile", "--cache", cachePath, "--format", "json", path)
	require.NoError(t, err)
	secondData := decodeResponse(t, second).Data.(map[string]any)
	assert.Equal(t, true, secondData["cached"])
	assert.Equal(t, firstData["build_id"], secondData["build_id"])
	assert.Equal(t, firstData["artifact"], secondData["artifact"])
}

func TestCompileCommand_DiagnosticsExitFailure(t *testing.T) {
	path := writeSource(t, "while True\n    pass\n")
	cachePath := filepath.Join(t.TempDir(), "cache.db")

	_, _, err := execute(t, "compile", "--cache", cachePath, path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestCompileCommand_BadCachePath(t *testing.T) {
	path := writeSource(t, validSource)

	_, _, err := execute(t, "compile", "--cache",
		filepath.Join(t.TempDir(), "missing", "dir", "cache.db"), path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, strings.Contains(err.Error(), "cache"))
}
