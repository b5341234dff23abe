package token

import "strconv"

type TokenType string

const (
	// Single character tokens
	TokenLParen   TokenType = "LPAREN"   // (
	TokenRParen   TokenType = "RPAREN"   // )
	TokenPlus     TokenType = "PLUS"     // +
	TokenMinus    TokenType = "MINUS"    // - (subtraction or negation)
	TokenAsterisk TokenType = "ASTERISK" // *
	TokenSlash    TokenType = "SLASH"    // /
	TokenPercent  TokenType = "PERCENT"  // % (modulo)

	// Literals & Identifiers
	TokenIdent  TokenType = "IDENT"  // f, x, total
	TokenNumber TokenType = "NUMBER" // 3, 2.5, 1e-3

	// Special
	TokenEOF     TokenType = "EOF"
	TokenIllegal TokenType = "ILLEGAL"
)

// Token is a single lexical token. Tokens are plain values and compare with ==.
type Token struct {
	Type    TokenType
	Literal string  // source text; the name for TokenIdent
	Value   float64 // numeric value for TokenNumber
	Line    int
	Column  int
}

// Ident builds an identifier token with no position information.
func Ident(name string) Token {
	return Token{Type: TokenIdent, Literal: name}
}

// Number builds a numeric literal token with no position information.
func Number(val float64) Token {
	return Token{Type: TokenNumber, Literal: FormatNumber(val), Value: val}
}

// Op builds a punctuation token (operators, parentheses, EOF).
func Op(t TokenType) Token {
	return Token{Type: t, Literal: t.Symbol()}
}

// Symbol returns the fixed source text of a punctuation token type, or "" for
// types whose text varies (identifiers, numbers) and for EOF.
func (t TokenType) Symbol() string {
	switch t {
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenAsterisk:
		return "*"
	case TokenSlash:
		return "/"
	case TokenPercent:
		return "%"
	}
	return ""
}

// String renders the token the way it would appear in source.
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return ""
	case TokenIdent, TokenIllegal:
		return t.Literal
	case TokenNumber:
		if t.Literal != "" {
			return t.Literal
		}
		return FormatNumber(t.Value)
	}
	return t.Type.Symbol()
}

// Describe is used in error messages; unlike String it never returns "".
func (t Token) Describe() string {
	if t.Type == TokenEOF {
		return "end of input"
	}
	return "'" + t.String() + "'"
}

// FormatNumber gives the shortest text that parses back to val.
func FormatNumber(val float64) string {
	return strconv.FormatFloat(val, 'g', -1, 64)
}
