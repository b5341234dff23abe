package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arnavsurve/climb/internal/config"
	"github.com/arnavsurve/climb/internal/logger"
)

var (
	outDir     string
	configPath string
	logLevel   string

	// cfg is loaded before every command runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "climb",
	Short: "climb - arithmetic expression parser, evaluator and COBOL compiler",
	Long: `climb parses arithmetic expressions with precedence climbing.

Commands:
  parse   Print the tree for an expression or a token file
  eval    Evaluate an expression
  tokens  Lex an expression into a YAML token stream
  lisp    Parse a bracketed list expression
  build   Compile a (.calc) expression file into (.cbl) COBOL
  init    Scaffold a new climb project
`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outDir, "out", "o", "", "output directory for build artifacts (default from config, else \"out\")")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to climb.toml (default $"+config.EnvVar+", then ./climb.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")

	rootCmd.AddCommand(ParseCmd, EvalCmd, TokensCmd, LispCmd, BuildCmd, InitCmd)
}

// loadConfig reads the configuration, applies flag overrides and starts the logger.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if outDir != "" {
		cfg.Emit.OutDir = outDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return logger.InitLogger(cfg.Logger())
}
