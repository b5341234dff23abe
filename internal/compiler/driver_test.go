package compiler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/climb/internal/compiler/emitter"
	"github.com/arnavsurve/climb/internal/compiler/eval"
	"github.com/arnavsurve/climb/internal/compiler/parser"
	"github.com/arnavsurve/climb/internal/compiler/token"
)

const cobcTimeout = 10 * time.Second

// Every file in testdata/good must compile. When testdata/good/expected holds
// a .cbl of the same name the output must match it, and when cobc is on PATH
// the output must also compile as COBOL.
func TestCompileGood(t *testing.T) {
	goodFiles, err := filepath.Glob(filepath.Join("testdata", "good", "*"+SourceExt))
	require.NoError(t, err)
	require.NotEmpty(t, goodFiles)

	for _, file := range goodFiles {
		t.Run(filepath.Base(file), func(t *testing.T) {
			outDir := t.TempDir()
			outFile, err := CompileAndWrite(file, outDir)
			require.NoError(t, err)

			actual, err := os.ReadFile(outFile)
			require.NoError(t, err)
			assert.Contains(t, string(actual), "COMPUTE CLIMB-RESULT = ")

			expectedPath := filepath.Join("testdata", "good", "expected", programName(file)+".cbl")
			if expected, err := os.ReadFile(expectedPath); err == nil {
				expected = bytes.ReplaceAll(expected, []byte("\r\n"), []byte("\n"))
				assert.Equal(t, string(expected), string(actual))
			}

			compileWithCobc(t, outFile)
		})
	}
}

func compileWithCobc(t *testing.T, cobolFile string) {
	t.Helper()
	cobc, err := exec.LookPath("cobc")
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cobcTimeout)
	defer cancel()

	binFile := strings.TrimSuffix(cobolFile, ".cbl")
	out, err := exec.CommandContext(ctx, cobc, "-x", "-o", binFile, cobolFile).CombinedOutput()
	require.NoError(t, err, "cobc output:\n%s", out)
}

// Every file in testdata/bad must fail with a positioned or emitter error.
func TestCompileBad(t *testing.T) {
	badFiles, err := filepath.Glob(filepath.Join("testdata", "bad", "*"+SourceExt))
	require.NoError(t, err)
	require.NotEmpty(t, badFiles)

	for _, file := range badFiles {
		t.Run(filepath.Base(file), func(t *testing.T) {
			outDir := t.TempDir()
			_, err := CompileAndWrite(file, outDir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Error:")
			assert.Contains(t, err.Error(), file)

			entries, err := os.ReadDir(outDir)
			require.NoError(t, err)
			assert.Empty(t, entries, "no output expected for a failed compile")
		})
	}
}

func TestCompileRejectsExtension(t *testing.T) {
	_, err := CompileAndWrite("expr.txt", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".calc extension")
}

func TestCompileMissingFile(t *testing.T) {
	_, err := CompileAndWrite(filepath.Join(t.TempDir(), "missing.calc"), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCompileWithOptions(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "rate.calc")
	require.NoError(t, os.WriteFile(src, []byte("x * (2 + 3)"), 0o644))

	outFile, err := CompileAndWrite(src, filepath.Join(dir, "out"),
		emitter.WithConstantFolding(false),
		emitter.WithValues(map[string]float64{"x": 4}),
	)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "rate.cbl"), outFile)

	cobol, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(cobol), "PROGRAM-ID. RATE.")
	assert.Contains(t, string(cobol), "VALUE 4.")
	assert.Contains(t, string(cobol), "GRACE-X * ( 2 + 3 )")
}

func TestParseSource(t *testing.T) {
	node, err := ParseSource("f(x) + -y * 2")
	require.NoError(t, err)
	assert.Equal(t, "((f(x)) + (-(y) * 2))", node.String())

	_, err = ParseSource("(1 + 2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrUnclosed))
}

func TestParseTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expr.yaml")
	f, err := os.Create(path)
	require.NoError(t, err)
	toks := []token.Token{token.Ident("a"), token.Op(token.TokenAsterisk), token.Number(3)}
	require.NoError(t, token.WriteStream(f, toks))
	require.NoError(t, f.Close())

	node, err := ParseTokenFile(path)
	require.NoError(t, err)
	assert.Equal(t, "(a * 3)", node.String())

	_, err = ParseTokenFile(filepath.Join(t.TempDir(), "none.yaml"))
	require.Error(t, err)
}

func TestEvalSource(t *testing.T) {
	env := eval.NewEnv()
	env.Set("x", 4)

	got, err := EvalSource("pow(x)(2) - x % 3", env)
	require.NoError(t, err)
	assert.Equal(t, 15.0, got)

	_, err = EvalSource("y + 1", env)
	assert.True(t, errors.Is(err, eval.ErrUndefined))
}
