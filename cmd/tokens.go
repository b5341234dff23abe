package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arnavsurve/climb/internal/compiler/lexer"
	"github.com/arnavsurve/climb/internal/compiler/token"
)

// tokens: expression -> YAML token stream, readable by "parse --tokens"
var TokensCmd = &cobra.Command{
	Use:   "tokens <expression>",
	Short: "Lex an expression into a YAML token stream",
	Example: `  climb tokens "f(x) % 2"
  climb tokens -- "-x * 3"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		toks, err := lexer.Tokenize(args[0])
		if err != nil {
			return err
		}
		return token.WriteStream(cmd.OutOrStdout(), toks)
	},
}
