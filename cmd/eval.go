package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arnavsurve/climb/internal/compiler"
	"github.com/arnavsurve/climb/internal/compiler/eval"
	"github.com/arnavsurve/climb/internal/compiler/token"
	"github.com/arnavsurve/climb/internal/logger"
)

var evalVars []string

// eval: expression -> number
var EvalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate an expression",
	Long: `Evaluate an expression. Variables come from the [vars] table of the
config file and from --var flags, which take precedence. Builtins such as
sqrt, abs, ln and the curried pow(x)(y), min(a)(b) and max(a)(b) are always
available. An expression that starts with '-' must follow "--".`,
	Example: `  climb eval "2 * (3 + 4)"
  climb eval --var r=2 "pi * pow(r)(2)"
  climb eval --var x=2 -- "-x * 3"`,
	Args: cobra.ExactArgs(1),
	RunE: evalRun,
}

func init() {
	EvalCmd.Flags().StringArrayVar(&evalVars, "var", nil, "set a variable, as name=value (repeatable)")
}

func evalRun(cmd *cobra.Command, args []string) error {
	env := eval.NewEnv()
	for name, val := range cfg.Vars {
		env.Set(name, val)
	}
	for _, kv := range evalVars {
		name, val, err := parseVar(kv)
		if err != nil {
			return err
		}
		env.Set(name, val)
	}
	logger.Debug("evaluating", zap.String("expr", args[0]), zap.Int("vars", len(env.Vars)))

	result, err := compiler.EvalSource(args[0], env)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token.FormatNumber(result))
	return nil
}

func parseVar(kv string) (string, float64, error) {
	name, raw, ok := strings.Cut(kv, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", 0, errors.Errorf("--var %q: want name=value", kv)
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return "", 0, errors.Wrapf(err, "--var %q", kv)
	}
	return name, val, nil
}
