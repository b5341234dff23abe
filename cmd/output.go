package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	progressColor = color.New(color.FgCyan)
	successColor  = color.New(color.FgGreen)
	errorColor    = color.New(color.FgRed, color.Bold)
)

func progress(w io.Writer, format string, args ...any) {
	progressColor.Fprintf(w, "↪ "+format+"\n", args...)
}

func success(w io.Writer, format string, args ...any) {
	successColor.Fprintf(w, "✔︎ "+format+"\n", args...)
}

// PrintError reports err the way every command failure is shown.
func PrintError(w io.Writer, err error) {
	errorColor.Fprint(w, "✘ ")
	fmt.Fprintln(w, err)
}
