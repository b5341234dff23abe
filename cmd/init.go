package cmd

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//go:embed templates/*
var tplFS embed.FS

// init: scaffold a new project
var InitCmd = &cobra.Command{
	Use:   "init [project-dir]",
	Short: "Scaffold a new climb project",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			targetDir   string
			projectName string
		)

		// targetDir is where files go, projectName is for templating
		if len(args) == 1 {
			targetDir = args[0]
			projectName = filepath.Base(args[0])
		} else {
			targetDir = "."
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			projectName = filepath.Base(cwd)
		}

		// A new subdirectory must not already exist
		if targetDir != "." {
			if _, err := os.Stat(targetDir); err == nil {
				return fmt.Errorf("directory %q already exists", targetDir)
			}
		}

		w := cmd.ErrOrStderr()
		progress(w, "scaffolding new project %q ...", projectName)

		for _, dir := range []string{"src", "out"} {
			if err := os.MkdirAll(filepath.Join(targetDir, dir), 0o755); err != nil {
				return errors.Wrap(err, "create project directory")
			}
		}

		data := map[string]string{"ProjectName": projectName}
		files := map[string]string{
			"templates/example.calc.tpl": filepath.Join("src", "example.calc"),
			"templates/climb.toml.tpl":   "climb.toml",
			"templates/gitignore.tpl":    ".gitignore",
		}
		for tplPath, outName := range files {
			if err := writeTpl(tplPath, filepath.Join(targetDir, outName), data); err != nil {
				return err
			}
		}

		success(w, "project %q initialized!", projectName)
		return nil
	},
}

// writeTpl loads tplName from tplFS, executes it with data, and writes to outPath
func writeTpl(tplName, outPath string, data any) error {
	t, err := template.ParseFS(tplFS, tplName)
	if err != nil {
		return errors.Wrapf(err, "parse template %s", tplName)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return errors.Wrap(err, "create file")
	}
	defer f.Close()

	return errors.Wrapf(t.Execute(f, data), "render %s", outPath)
}
