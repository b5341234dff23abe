package lexer

import (
	"fmt"
	"strconv"

	"github.com/arnavsurve/climb/internal/compiler/token"
)

type Lexer struct {
	input        string
	position     int  // current char index
	readPosition int  // next char index
	ch           byte // current char

	line   int // current line number (1-indexed)
	column int // current column number (1-indexed)
}

// Error reports the first character (or malformed literal) the lexer could
// not turn into a token.
type Error struct {
	Line    int
	Column  int
	Literal string
	Reason  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: Lexical Error: %s '%s'", e.Line, e.Column, e.Reason, e.Literal)
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize lexes the whole input. The returned slice always ends with an EOF
// token unless an error is returned.
func Tokenize(input string) ([]token.Token, error) {
	l := NewLexer(input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.TokenIllegal {
			reason := "unexpected character"
			if len(tok.Literal) > 0 && (isDigit(tok.Literal[0]) || tok.Literal[0] == '.') {
				reason = "malformed number"
			}
			return nil, &Error{Line: tok.Line, Column: tok.Column, Literal: tok.Literal, Reason: reason}
		}
		toks = append(toks, tok)
		if tok.Type == token.TokenEOF {
			return toks, nil
		}
	}
}

// readChar advances the lexer's position and updates the current character
// It handles EOF and tracks line/column numbers correctly
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NULL (EOF)
	} else {
		l.ch = l.input[l.readPosition]
	}

	l.position = l.readPosition
	l.readPosition++

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else if l.ch != 0 {
		l.column++
	}
}

// Returns the next character without consuming it
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	startLine := l.line
	startCol := l.column

	switch l.ch {
	case '/':
		if l.peekChar() == '/' {
			l.readComment()
			return l.NextToken()
		}
		return l.single(token.TokenSlash, startLine, startCol)
	case '(':
		return l.single(token.TokenLParen, startLine, startCol)
	case ')':
		return l.single(token.TokenRParen, startLine, startCol)
	case '+':
		return l.single(token.TokenPlus, startLine, startCol)
	case '-':
		return l.single(token.TokenMinus, startLine, startCol)
	case '*':
		return l.single(token.TokenAsterisk, startLine, startCol)
	case '%':
		return l.single(token.TokenPercent, startLine, startCol)
	case 0:
		// Do NOT call l.readChar() here
		return l.newToken(token.TokenEOF, "", startLine, startCol)
	default:
		if isLetter(l.ch) {
			return l.newToken(token.TokenIdent, l.readIdentifier(), startLine, startCol)
		} else if isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())) {
			return l.readNumber(startLine, startCol)
		}
		tok := l.newToken(token.TokenIllegal, string(l.ch), startLine, startCol)
		l.readChar()
		return tok
	}
}

// single emits a one-character token for the current char and consumes it.
func (l *Lexer) single(tokenType token.TokenType, line, col int) token.Token {
	tok := l.newToken(tokenType, string(l.ch), line, col)
	l.readChar()
	return tok
}

// newToken is a helper to create a token.Token struct
func (l *Lexer) newToken(tokenType token.TokenType, literal string, line, col int) token.Token {
	return token.Token{Type: tokenType, Literal: literal, Line: line, Column: col}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\n' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) readComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber scans digits ['.' digits] [exponent]. A number immediately
// followed by a letter (e.g. "3x") is malformed rather than two tokens.
func (l *Lexer) readNumber(startLine, startCol int) token.Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		next := l.peekChar()
		if isDigit(next) || next == '+' || next == '-' {
			l.readChar() // e
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '.' {
		l.readChar()
	}

	literal := l.input[start:l.position]
	val, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return l.newToken(token.TokenIllegal, literal, startLine, startCol)
	}
	tok := l.newToken(token.TokenNumber, literal, startLine, startCol)
	tok.Value = val
	return tok
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
