package cmd

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/arnavsurve/climb/internal/compiler"
	"github.com/arnavsurve/climb/internal/compiler/ast"
	"github.com/arnavsurve/climb/internal/config"
)

var (
	parseFormat    string
	parseTokenFile string
)

// parse: expression or token file -> tree
var ParseCmd = &cobra.Command{
	Use:   "parse [expression]",
	Short: "Parse an expression and print its tree",
	Long: `Parse an expression given as an argument, or a YAML token stream given
with --tokens, and print the resulting tree.

Formats:
  infix  fully parenthesized infix, e.g. ((a * b) + c)
  sexpr  prefix form, e.g. (+ (* a b) c)
  yaml   the tree as a YAML document

An expression that starts with '-' must follow "--" so it is not read as a
flag.`,
	Example: `  climb parse "a * b + c"
  climb parse --format sexpr -- "-3 * x + 5 / y - 10"
  climb tokens "f(x) % 2" > toks.yaml && climb parse --tokens toks.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseRun,
}

func init() {
	ParseCmd.Flags().StringVarP(&parseFormat, "format", "f", "", "output format: infix, sexpr or yaml (default from config)")
	ParseCmd.Flags().StringVarP(&parseTokenFile, "tokens", "t", "", "read a YAML token stream instead of an expression")
}

func parseRun(cmd *cobra.Command, args []string) error {
	var (
		node ast.Node
		err  error
	)
	switch {
	case parseTokenFile != "" && len(args) == 1:
		return errors.New("give either an expression or --tokens, not both")
	case parseTokenFile != "":
		node, err = compiler.ParseTokenFile(parseTokenFile)
	case len(args) == 1:
		node, err = compiler.ParseSource(args[0])
	default:
		return errors.New("an expression or --tokens file is required")
	}
	if err != nil {
		return err
	}

	format := cfg.Output.Format
	if parseFormat != "" {
		format = parseFormat
	}
	return printTree(cmd.OutOrStdout(), node, format)
}

func printTree(w io.Writer, node ast.Node, format string) error {
	switch format {
	case config.FormatInfix:
		fmt.Fprintln(w, node.String())
	case config.FormatSexpr:
		fmt.Fprintln(w, ast.Sexpr(node))
	case config.FormatYAML:
		out, err := ast.MarshalYAML(node)
		if err != nil {
			return errors.Wrap(err, "marshal tree")
		}
		_, err = w.Write(out)
		return err
	default:
		return errors.Errorf("unknown format %q", format)
	}
	return nil
}
