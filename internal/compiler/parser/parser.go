// Package parser turns a token slice into an expression tree.
//
// Grammar:
//
//	Exp     := Term (BinOp Term)*
//	Term    := '-' Term | Primary Postfix*
//	Primary := IDENT | NUMBER | '(' Exp ')'
//	Postfix := '(' Exp ')'
//
// Binary operators are folded by precedence climbing over the table in
// precedence.go. The parser is plain recursion: nesting depth (parentheses,
// runs of unary minus, chains of rising precedence) costs stack, and
// pathologically deep input can exhaust the goroutine stack. That is a
// resource limit of the parser, not an error it reports.
package parser

import (
	"github.com/arnavsurve/climb/internal/compiler/ast"
	"github.com/arnavsurve/climb/internal/compiler/token"
)

// Parser holds the cursor for one parse. It borrows the token slice and never
// modifies it.
type Parser struct {
	tokens []token.Token
	pos    int
}

func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses exactly one expression followed by end of input. An explicit
// EOF token and the end of the slice mean the same thing. On failure the
// error is a *ParseError and no tree is returned.
func Parse(tokens []token.Token) (ast.Node, error) {
	return NewParser(tokens).ParseExpression()
}

// ParseExpression runs the parse from the start of the token slice.
func (p *Parser) ParseExpression() (ast.Node, error) {
	p.pos = 0
	expr, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return expr, nil
}

// --- Token Handling ---

// curTok returns the token under the cursor, or EOF past the end of the slice.
func (p *Parser) curTok() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return token.Op(token.TokenEOF)
}

func (p *Parser) nextToken() {
	if p.pos >= len(p.tokens) {
		panic("parser: advanced past end of input")
	}
	p.pos++
}

func (p *Parser) fail(kind ErrorKind) error {
	return &ParseError{Kind: kind, Found: p.curTok(), Pos: p.pos}
}

// --- Expressions ---

// parseExp: Term (BinOp Term)*
func (p *Parser) parseExp() (ast.Node, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return p.parseBinops(lhs, PrecMin)
}

// parseBinops folds every operator at or above minPrec into lhs. Each rhs is
// first extended by any run of tighter-binding operators, so within one level
// the tree leans left and higher levels nest underneath.
func (p *Parser) parseBinops(lhs ast.Node, minPrec Precedence) (ast.Node, error) {
	// Non-operators (including EOF and ')') are PrecNone, which is below
	// every minPrec, so this is "while looking at a binary operator".
	for PrecedenceOf(p.curTok().Type) >= minPrec {
		op := p.curTok()
		opPrec := PrecedenceOf(op.Type)
		p.nextToken()

		// Not yet known whether this is our rhs or the next operator's lhs.
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		// A loop rather than an if: with more levels there can be a
		// descending chain of tighter operators after rhs.
		for next := PrecedenceOf(p.curTok().Type); next > opPrec; next = PrecedenceOf(p.curTok().Type) {
			rhs, err = p.parseBinops(rhs, next)
			if err != nil {
				return nil, err
			}
		}

		lhs = ast.Bin(lhs, binOpFor(op), rhs)
	}
	return lhs, nil
}

// parseTerm: '-' Term | Primary Postfix*
func (p *Parser) parseTerm() (ast.Node, error) {
	if p.curTok().Type == token.TokenMinus {
		p.nextToken()
		// Recursing makes unary minus right-associative: - - x is -(-(x)).
		operand, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		return ast.Neg(operand), nil
	}

	pri, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parsePostfix(pri)
}

// parsePrimary: IDENT | NUMBER | '(' Exp ')'
func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.curTok()
	switch tok.Type {
	case token.TokenIdent:
		p.nextToken()
		return ast.Ident(tok.Literal), nil

	case token.TokenNumber:
		p.nextToken()
		return ast.Num(tok.Value), nil

	case token.TokenLParen:
		// Grouping produces no node of its own.
		p.nextToken()
		inner, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		if err := p.expectRParen(); err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.fail(ErrUnexpectedToken)
}

// parsePostfix wraps lhs in one Call per trailing '(' Exp ')'.
func (p *Parser) parsePostfix(lhs ast.Node) (ast.Node, error) {
	for p.curTok().Type == token.TokenLParen {
		p.nextToken()
		arg, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		if err := p.expectRParen(); err != nil {
			return nil, err
		}
		lhs = ast.CallOf(lhs, arg)
	}
	return lhs, nil
}

func (p *Parser) expectRParen() error {
	if p.curTok().Type != token.TokenRParen {
		return p.fail(ErrMissingRParen)
	}
	p.nextToken()
	return nil
}

func (p *Parser) expectEOF() error {
	if p.curTok().Type != token.TokenEOF {
		return p.fail(ErrTrailingInput)
	}
	return nil
}
