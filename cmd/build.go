package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arnavsurve/climb/internal/compiler"
	"github.com/arnavsurve/climb/internal/compiler/emitter"
)

// build: compile .calc -> .cbl
var BuildCmd = &cobra.Command{
	Use:   "build <source.calc>",
	Short: "Compile an expression file into a COBOL program",
	Long: `Compile an expression file into a GnuCOBOL program that computes and
displays its value. Variables listed under [vars] in the config get that
initial VALUE; any other variable is read with ACCEPT at run time.`,
	Args: cobra.ExactArgs(1),
	RunE: buildRun,
}

func buildRun(cmd *cobra.Command, args []string) error {
	src := args[0]
	out := cfg.Emit.OutDir
	w := cmd.ErrOrStderr()

	progress(w, "building %q → %q ...", src, out+"/")

	outFile, err := compiler.CompileAndWrite(src, out,
		emitter.WithConstantFolding(cfg.FoldConstants()),
		emitter.WithValues(cfg.Vars),
	)
	if err != nil {
		return err
	}

	success(w, "wrote COBOL to %s", outFile)
	return nil
}
