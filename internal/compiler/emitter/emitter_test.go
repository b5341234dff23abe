package emitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/climb/internal/compiler/ast"
	"github.com/arnavsurve/climb/internal/compiler/lexer"
	"github.com/arnavsurve/climb/internal/compiler/parser"
)

func parse(t *testing.T, src string) ast.Node {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	require.NoError(t, err)
	node, err := parser.Parse(toks)
	require.NoError(t, err)
	return node
}

func emit(t *testing.T, src string, opts ...Option) (string, *Emitter) {
	t.Helper()
	e := NewEmitter(opts...)
	return e.Emit(parse(t, src), "calc"), e
}

// computeStatement returns the COMPUTE statement with continuation lines joined.
func computeStatement(t *testing.T, out string) string {
	t.Helper()
	start := strings.Index(out, "COMPUTE ")
	require.GreaterOrEqual(t, start, 0, out)
	end := strings.Index(out[start:], ".\n")
	require.GreaterOrEqual(t, end, 0, out)
	return strings.ReplaceAll(out[start:start+end+1], "\n"+areaBIndent+continuationExtra, " ")
}

func TestEmitProgramLayout(t *testing.T) {
	out, e := emit(t, "x + 2 * 3")
	require.Empty(t, e.Errors())

	want := []string{
		"       IDENTIFICATION DIVISION.",
		"       PROGRAM-ID. CALC.",
		"       DATA DIVISION.",
		"       WORKING-STORAGE SECTION.",
		"       01 GRACE-X PIC S9(12)V9(6).",
		"       01 CLIMB-RESULT PIC S9(18)V9(6).",
		"       PROCEDURE DIVISION.",
		"           ACCEPT GRACE-X.",
		"           COMPUTE CLIMB-RESULT = GRACE-X + 6.",
		"           DISPLAY CLIMB-RESULT-OUT.",
		"           GOBACK.",
	}
	for _, line := range want {
		assert.Contains(t, out, line+"\n")
	}
	assert.Less(t, strings.Index(out, "ACCEPT"), strings.Index(out, "COMPUTE"))
}

func TestEmitExpressions(t *testing.T) {
	tests := []struct {
		input   string
		compute string
	}{
		{"a - b - c", "( GRACE-A - GRACE-B ) - GRACE-C"},
		{"a % b", "FUNCTION REM(GRACE-A, GRACE-B)"},
		{"-x", "( 0 - GRACE-X )"},
		{"-(a - b)", "( 0 - ( GRACE-A - GRACE-B ) )"},
		{"-3", "( -3 )"},
		{"2 * (1 + 0.5)", "3"},
		{"sqrt(x)", "FUNCTION SQRT(GRACE-X)"},
		{"ln(x) + log(x)", "FUNCTION LOG(GRACE-X) + FUNCTION LOG10(GRACE-X)"},
		{"ceil(x)", "( 0 - FUNCTION INTEGER( 0 - GRACE-X ) )"},
		{"pow(x)(2)", "( GRACE-X ** 2 )"},
		{"pow(1 + r)(n)", "( ( 1 + GRACE-R ) ** GRACE-N )"},
		{"x % (y - 1)", "FUNCTION REM(GRACE-X, GRACE-Y - 1)"},
		{"max(a)(b)", "FUNCTION MAX(GRACE-A, GRACE-B)"},
		{"pi * r", "FUNCTION PI * GRACE-R"},
		{"my_var", "GRACE-MY-VAR"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out, e := emit(t, tt.input)
			require.Empty(t, e.Errors())
			assert.Equal(t, "COMPUTE CLIMB-RESULT = "+tt.compute+".", computeStatement(t, out))
		})
	}
}

func TestEmitContinuationIndent(t *testing.T) {
	out, e := emit(t, "ln(x) + log(x)")
	require.Empty(t, e.Errors())
	assert.Contains(t, out,
		"           COMPUTE CLIMB-RESULT = FUNCTION LOG(GRACE-X) + FUNCTION\n"+
			"               LOG10(GRACE-X).\n")

	out, e = emit(t, "ceil(x)")
	require.Empty(t, e.Errors())
	assert.Contains(t, out,
		"           COMPUTE CLIMB-RESULT = ( 0 - FUNCTION INTEGER( 0 - GRACE-X )\n"+
			"               ).\n")
}

func TestEmitVariablesNamedLikeResult(t *testing.T) {
	out, e := emit(t, "result + result_out")
	require.Empty(t, e.Errors())

	declared := map[string]int{}
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) > 1 && fields[0] == "01" {
			declared[fields[1]]++
		}
	}
	assert.Equal(t, map[string]int{
		"GRACE-RESULT":     1,
		"GRACE-RESULT-OUT": 1,
		"CLIMB-RESULT":     1,
		"CLIMB-RESULT-OUT": 1,
	}, declared)
	assert.Contains(t, out, "ACCEPT GRACE-RESULT.\n")
	assert.NotContains(t, out, "ACCEPT CLIMB-RESULT")
	assert.Equal(t, "COMPUTE CLIMB-RESULT = GRACE-RESULT + GRACE-RESULT-OUT.", computeStatement(t, out))
}

func TestEmitWithoutFolding(t *testing.T) {
	out, e := emit(t, "x + 2 * 3", WithConstantFolding(false))
	require.Empty(t, e.Errors())
	assert.Contains(t, out, "COMPUTE CLIMB-RESULT = GRACE-X + ( 2 * 3 ).")
}

func TestEmitDoesNotModifyTree(t *testing.T) {
	node := parse(t, "x + 2 * 3")
	before := ast.Clone(node)
	NewEmitter().Emit(node, "calc")
	assert.True(t, ast.Equal(before, node))
}

func TestEmitWithValues(t *testing.T) {
	out, e := emit(t, "x * y", WithValues(map[string]float64{"x": 2.5}))
	require.Empty(t, e.Errors())
	assert.Contains(t, out, "01 GRACE-X PIC S9(12)V9(6) VALUE 2.5.")
	assert.NotContains(t, out, "ACCEPT GRACE-X")
	assert.Contains(t, out, "ACCEPT GRACE-Y.")
}

func TestEmitValueShadowsBuiltinConstant(t *testing.T) {
	out, e := emit(t, "pi", WithValues(map[string]float64{"pi": 3}))
	require.Empty(t, e.Errors())
	assert.Contains(t, out, "COMPUTE CLIMB-RESULT = GRACE-PI.")
}

func TestEmitDivisionByZeroWarning(t *testing.T) {
	out, e := emit(t, "1 / 0")
	require.Empty(t, e.Errors())
	assert.Contains(t, out, "      *WARNING: Potential division by zero\n")
	assert.Contains(t, out, "COMPUTE CLIMB-RESULT = 1 / 0.")
}

func TestEmitErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"round(x)", "no COBOL equivalent for function 'round'"},
		{"f(x)(y)", "'f' is not a two-argument function"},
		{"(a + b)(c)", "call of computed callee (a + b)"},
		{"1e40", "has more than 31 digits"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out, e := emit(t, tt.input)
			assert.Empty(t, out)
			require.Len(t, e.Errors(), 1)
			assert.Contains(t, e.Errors()[0], tt.want)
			require.Error(t, e.Err())
			assert.Contains(t, e.Err().Error(), tt.want)
		})
	}
}

func TestEmitResetsBetweenCalls(t *testing.T) {
	e := NewEmitter()
	e.Emit(parse(t, "round(x)"), "first")
	require.NotEmpty(t, e.Errors())

	out := e.Emit(parse(t, "y"), "second")
	assert.Empty(t, e.Errors())
	assert.NoError(t, e.Err())
	assert.NotContains(t, out, "FIRST")
	assert.NotContains(t, out, "GRACE-X")
}

func TestEmitWrapsLongStatements(t *testing.T) {
	src := "alpha + bravo + charlie + delta + echo + foxtrot + golf + hotel + india"
	out, e := emit(t, src)
	require.Empty(t, e.Errors())

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), cobolLineEndCol, line)
	}
	assert.Contains(t, out, "\n               ")
	assert.Contains(t, out, "GRACE-INDIA.\n")
}

func TestSanitizeIdentifier(t *testing.T) {
	assert.Equal(t, "GRACE-TOTAL", sanitizeIdentifier("total"))
	assert.Equal(t, "GRACE-A-B", sanitizeIdentifier("a_b"))
	assert.Equal(t, "GRACE-TMP-X", sanitizeIdentifier("tmp_"))
}
