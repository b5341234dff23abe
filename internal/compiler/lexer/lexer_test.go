package lexer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavsurve/climb/internal/compiler/token"
)

func TestNextToken(t *testing.T) {
	input := `-3 * x + 5 / y - 10
f(x)(y) % 2.5 // trailing comment
_tmp1 1e3 .5`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
		expectedValue   float64
		line, column    int
	}{
		{token.TokenMinus, "-", 0, 1, 1},
		{token.TokenNumber, "3", 3, 1, 2},
		{token.TokenAsterisk, "*", 0, 1, 4},
		{token.TokenIdent, "x", 0, 1, 6},
		{token.TokenPlus, "+", 0, 1, 8},
		{token.TokenNumber, "5", 5, 1, 10},
		{token.TokenSlash, "/", 0, 1, 12},
		{token.TokenIdent, "y", 0, 1, 14},
		{token.TokenMinus, "-", 0, 1, 16},
		{token.TokenNumber, "10", 10, 1, 18},
		{token.TokenIdent, "f", 0, 2, 1},
		{token.TokenLParen, "(", 0, 2, 2},
		{token.TokenIdent, "x", 0, 2, 3},
		{token.TokenRParen, ")", 0, 2, 4},
		{token.TokenLParen, "(", 0, 2, 5},
		{token.TokenIdent, "y", 0, 2, 6},
		{token.TokenRParen, ")", 0, 2, 7},
		{token.TokenPercent, "%", 0, 2, 9},
		{token.TokenNumber, "2.5", 2.5, 2, 11},
		{token.TokenIdent, "_tmp1", 0, 3, 1},
		{token.TokenNumber, "1e3", 1000, 3, 7},
		{token.TokenNumber, ".5", 0.5, 3, 11},
		{token.TokenEOF, "", 0, 3, 12},
	}

	l := NewLexer(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q", i, tt.expectedType, tok.Type)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q", i, tt.expectedLiteral, tok.Literal)
		}
		if tok.Value != tt.expectedValue {
			t.Errorf("tests[%d] - value wrong. expected=%g, got=%g", i, tt.expectedValue, tok.Value)
		}
		if tok.Line != tt.line || tok.Column != tt.column {
			t.Errorf("tests[%d] - position wrong. expected=%d:%d, got=%d:%d", i, tt.line, tt.column, tok.Line, tok.Column)
		}
	}

	// EOF is sticky.
	assert.Equal(t, token.TokenEOF, l.NextToken().Type)
}

func TestTokenizeAppendsEOF(t *testing.T) {
	toks, err := Tokenize("a+b")
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, token.TokenEOF, toks[3].Type)

	toks, err = Tokenize("   ")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, token.TokenEOF, toks[0].Type)
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		input   string
		literal string
		reason  string
		column  int
	}{
		{"a + $", "$", "unexpected character", 5},
		{"3x", "3x", "malformed number", 1},
		{"1e", "1e", "malformed number", 1},
		{"2 * 1.2.3", "1.2.3", "malformed number", 5},
		{"1e999", "1e999", "malformed number", 1},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks, err := Tokenize(tt.input)
			require.Error(t, err)
			assert.Nil(t, toks)

			var lerr *Error
			require.True(t, errors.As(err, &lerr))
			assert.Equal(t, tt.literal, lerr.Literal)
			assert.Equal(t, tt.reason, lerr.Reason)
			assert.Equal(t, tt.column, lerr.Column)
		})
	}
}
