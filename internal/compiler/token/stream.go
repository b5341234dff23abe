package token

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlToken is the on-disk shape of a token in a token stream file:
//
//	- {kind: IDENT, text: f}
//	- {kind: LPAREN}
//	- {kind: NUMBER, value: 2.5}
type yamlToken struct {
	Kind   TokenType `yaml:"kind"`
	Text   string    `yaml:"text,omitempty"`
	Value  *float64  `yaml:"value,omitempty"`
	Line   int       `yaml:"line,omitempty"`
	Column int       `yaml:"column,omitempty"`
}

func (t Token) MarshalYAML() (interface{}, error) {
	yt := yamlToken{Kind: t.Type, Line: t.Line, Column: t.Column}
	switch t.Type {
	case TokenIdent, TokenIllegal:
		yt.Text = t.Literal
	case TokenNumber:
		v := t.Value
		yt.Value = &v
	}
	return yt, nil
}

func (t *Token) UnmarshalYAML(value *yaml.Node) error {
	var yt yamlToken
	if err := value.Decode(&yt); err != nil {
		return err
	}

	switch yt.Kind {
	case TokenIdent:
		if yt.Text == "" {
			return fmt.Errorf("line %d: IDENT token needs a text field", value.Line)
		}
		*t = Ident(yt.Text)
	case TokenNumber:
		if yt.Value == nil {
			return fmt.Errorf("line %d: NUMBER token needs a value field", value.Line)
		}
		*t = Number(*yt.Value)
	case TokenLParen, TokenRParen, TokenPlus, TokenMinus, TokenAsterisk, TokenSlash, TokenPercent, TokenEOF:
		*t = Op(yt.Kind)
	default:
		return fmt.Errorf("line %d: unknown token kind %q", value.Line, yt.Kind)
	}
	t.Line = yt.Line
	t.Column = yt.Column
	return nil
}

// ReadStream decodes a YAML sequence of tokens. A trailing EOF token is
// optional; parsers treat the end of the slice as end of input.
func ReadStream(r io.Reader) ([]Token, error) {
	var toks []Token
	if err := yaml.NewDecoder(r).Decode(&toks); err != nil {
		if err == io.EOF {
			return []Token{}, nil
		}
		return nil, err
	}
	return toks, nil
}

// WriteStream encodes toks as a YAML sequence.
func WriteStream(w io.Writer, toks []Token) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toks); err != nil {
		return err
	}
	return enc.Close()
}
