package parser

import (
	"fmt"

	"github.com/arnavsurve/climb/internal/compiler/ast"
	"github.com/arnavsurve/climb/internal/compiler/token"
)

// Precedence levels for binary operators, lowest to highest. Unary minus and
// calls are handled structurally by parseTerm and never appear here.
type Precedence int

const (
	PrecNone           Precedence = iota // not a binary operator; ends an operator chain
	PrecAdditive                         // +, -
	PrecMultiplicative                   // *, /, %

	// PrecMin is the lowest real level; parsing a full expression starts here
	// so that every operator is eligible.
	PrecMin = PrecAdditive
)

func (p Precedence) String() string {
	switch p {
	case PrecNone:
		return "none"
	case PrecAdditive:
		return "additive"
	case PrecMultiplicative:
		return "multiplicative"
	}
	return fmt.Sprintf("Precedence(%d)", int(p))
}

// PrecedenceOf returns the binary-operator precedence of a token type, or
// PrecNone for anything that is not a binary operator. A MINUS is only ever
// looked up here after a complete term, so it is always subtraction.
func PrecedenceOf(t token.TokenType) Precedence {
	switch t {
	case token.TokenPlus, token.TokenMinus:
		return PrecAdditive
	case token.TokenAsterisk, token.TokenSlash, token.TokenPercent:
		return PrecMultiplicative
	}
	return PrecNone
}

// binOpFor maps an operator token to its AST operator. Callers only reach it
// after PrecedenceOf returned a real level, so any other token is a parser bug.
func binOpFor(tok token.Token) ast.BinOp {
	switch tok.Type {
	case token.TokenPlus:
		return ast.Add
	case token.TokenMinus:
		return ast.Sub
	case token.TokenAsterisk:
		return ast.Mul
	case token.TokenSlash:
		return ast.Div
	case token.TokenPercent:
		return ast.Mod
	}
	panic(fmt.Sprintf("parser: binOpFor called on a %s token", tok.Type))
}
