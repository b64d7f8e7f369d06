package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func statusColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	default:
		return ""
	}
}

// printStatus writes a one-line status message, colorized when w is the
// terminal.
func printStatus(w io.Writer, kind statusKind, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	if colorizeOutput(w) {
		if color := statusColor(kind); color != "" {
			fmt.Fprintln(w, color+message+ansiReset)
			return
		}
	}
	fmt.Fprintln(w, message)
}

func colorizeOutput(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
