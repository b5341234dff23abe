package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/climb/internal/compiler/lexer"
	"github.com/arnavsurve/climb/internal/compiler/lisp"
)

var LispCmd = &cobra.Command{
	Use:     "lisp <expression>",
	Short:   "Parse a bracketed list expression such as (add 3 (sub x y))",
	Args:    cobra.ExactArgs(1),
	Example: `  climb lisp "(add 3 (sub x y))"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		toks, err := lexer.Tokenize(args[0])
		if err != nil {
			return err
		}
		exp, err := lisp.Parse(toks)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), exp)
		return nil
	},
}
