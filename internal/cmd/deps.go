package cmd

import (
	"io"
	"os"

	"golang.org/x/term"
)

var (
	envGet         = os.Getenv
	isTerminalFunc = isTerminal
)

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
