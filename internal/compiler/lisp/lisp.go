// Package lisp parses bracket-delimited lists such as (add 3 (sub x y)).
// There are no operators, so it is plain recursive descent:
//
//	Program := Exp EOF
//	Exp     := IDENT | NUMBER | '(' Exp+ ')'
package lisp

import (
	"fmt"
	"strings"

	"github.com/arnavsurve/climb/internal/compiler/token"
)

// Exp is a list expression: *Atom, *Num or *List.
type Exp interface {
	String() string
	exp()
}

type Atom struct {
	Name string
}

func (a *Atom) exp()           {}
func (a *Atom) String() string { return "Id(" + a.Name + ")" }

type Num struct {
	Value float64
}

func (n *Num) exp()           {}
func (n *Num) String() string { return "Num(" + token.FormatNumber(n.Value) + ")" }

// List is a parenthesized group; it always holds at least one item.
type List struct {
	Items []Exp
}

func (l *List) exp() {}
func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.String()
	}
	return "Parens[" + strings.Join(parts, ", ") + "]"
}

type ErrorKind int

const (
	ExpectedExpression ErrorKind = iota + 1
	ExpectedRParen
	ExpectedEOF
)

type ParseError struct {
	Kind  ErrorKind
	Found token.Token
	Pos   int
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ExpectedExpression:
		return fmt.Sprintf("expected an expression, got %s", e.Found.Describe())
	case ExpectedRParen:
		return fmt.Sprintf("expected ')' to end an expression, got %s", e.Found.Describe())
	case ExpectedEOF:
		return fmt.Sprintf("expected end of input, got %s", e.Found.Describe())
	}
	return fmt.Sprintf("lisp parse error %d", int(e.Kind))
}

type parser struct {
	tokens []token.Token
	pos    int
}

// Parse parses a single expression followed by end of input.
func Parse(tokens []token.Token) (Exp, error) {
	p := &parser{tokens: tokens}
	ret, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != token.TokenEOF {
		return nil, p.fail(ExpectedEOF)
	}
	return ret, nil
}

func (p *parser) cur() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return token.Op(token.TokenEOF)
}

func (p *parser) next() { p.pos++ }

func (p *parser) fail(kind ErrorKind) error {
	return &ParseError{Kind: kind, Found: p.cur(), Pos: p.pos}
}

func (p *parser) parseExp() (Exp, error) {
	tok := p.cur()
	switch tok.Type {
	case token.TokenIdent:
		p.next()
		return &Atom{Name: tok.Literal}, nil
	case token.TokenNumber:
		p.next()
		return &Num{Value: tok.Value}, nil
	case token.TokenLParen:
		return p.parseList()
	}
	return nil, p.fail(ExpectedExpression)
}

// parseList: '(' Exp+ ')'
func (p *parser) parseList() (Exp, error) {
	p.next() // '('

	first, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	items := []Exp{first}

	for p.cur().Type != token.TokenRParen {
		if p.cur().Type == token.TokenEOF {
			return nil, p.fail(ExpectedRParen)
		}
		item, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	p.next() // ')'
	return &List{Items: items}, nil
}
