package token

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Op(TokenLParen), "("},
		{Op(TokenPercent), "%"},
		{Op(TokenEOF), ""},
		{Ident("total"), "total"},
		{Number(27), "27"},
		{Number(0.25), "0.25"},
		{Token{Type: TokenNumber, Value: 3}, "3"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("%#v.String() expected=%q, got=%q", tt.tok, tt.want, got)
		}
	}
	assert.Equal(t, "end of input", Op(TokenEOF).Describe())
	assert.Equal(t, "'x'", Ident("x").Describe())
}

func TestTokensAreComparable(t *testing.T) {
	assert.True(t, Ident("x") == Ident("x"))
	assert.False(t, Ident("x") == Ident("y"))
	assert.True(t, Number(2) == Number(2))
	assert.True(t, Op(TokenRParen) == Op(TokenRParen))
}

func TestStreamRoundTrip(t *testing.T) {
	in := []Token{Op(TokenMinus), Ident("f"), Op(TokenLParen), Number(2.5), Op(TokenRParen), Op(TokenEOF)}

	var buf bytes.Buffer
	require.NoError(t, WriteStream(&buf, in))
	assert.Contains(t, buf.String(), "kind: IDENT")

	out, err := ReadStream(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadStreamHandWritten(t *testing.T) {
	src := `
- {kind: IDENT, text: a}
- {kind: PLUS}
- {kind: NUMBER, value: 3}
`
	toks, err := ReadStream(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, Ident("a"), toks[0])
	assert.Equal(t, TokenPlus, toks[1].Type)
	assert.Equal(t, 3.0, toks[2].Value)

	empty, err := ReadStream(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReadStreamRejectsBadTokens(t *testing.T) {
	bad := []string{
		"- {kind: IDENT}",
		"- {kind: NUMBER}",
		"- {kind: ILLEGAL, text: $}",
		"- {kind: BANANA}",
	}
	for _, src := range bad {
		_, err := ReadStream(strings.NewReader(src))
		assert.Error(t, err, src)
	}
}
