package parser

import (
	"fmt"

	"github.com/arnavsurve/climb/internal/compiler/token"
)

// ErrorKind is the reason a parse failed.
type ErrorKind int

const (
	// ErrUnexpectedToken: a primary expression (identifier, number or '(')
	// was required but something else was found.
	ErrUnexpectedToken ErrorKind = iota + 1
	// ErrMissingRParen: a '(' was opened, for grouping or a call, and the
	// token after its inner expression was not ')'.
	ErrMissingRParen
	// ErrTrailingInput: a complete expression was parsed but input remains.
	ErrTrailingInput
)

func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "unexpected token"
	case ErrMissingRParen:
		return "missing closing parenthesis"
	case ErrTrailingInput:
		return "trailing input"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels for errors.Is. A *ParseError matches the sentinel of its Kind.
var (
	ErrUnexpected = &ParseError{Kind: ErrUnexpectedToken}
	ErrUnclosed   = &ParseError{Kind: ErrMissingRParen}
	ErrTrailing   = &ParseError{Kind: ErrTrailingInput}
)

// ParseError is the only error Parse returns.
type ParseError struct {
	Kind  ErrorKind
	Found token.Token // the offending token
	Pos   int         // index of Found in the token slice
}

func (e *ParseError) Error() string {
	var msg string
	switch e.Kind {
	case ErrUnexpectedToken:
		msg = fmt.Sprintf("expected an identifier, number, or parenthesized expression, got %s", e.Found.Describe())
	case ErrMissingRParen:
		msg = fmt.Sprintf("expected ')', got %s", e.Found.Describe())
	case ErrTrailingInput:
		msg = fmt.Sprintf("expected end of input after expression, got %s", e.Found.Describe())
	default:
		msg = e.Kind.String()
	}
	if e.Found.Line > 0 {
		return fmt.Sprintf("%d:%d: Syntax Error: %s", e.Found.Line, e.Found.Column, msg)
	}
	return fmt.Sprintf("token %d: Syntax Error: %s", e.Pos, msg)
}

// Is matches any *ParseError with the same Kind, so callers can write
// errors.Is(err, parser.ErrUnclosed).
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}
