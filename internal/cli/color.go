package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/roach88/idlfix/internal/idl"
)

// colorEnabled reports whether w is a terminal that should get ANSI colors.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printDiff writes diff lines to w, green for insertions and red for
// deletions when w is a terminal.
func printDiff(w io.Writer, lines []idl.DiffLine) {
	insert := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	if colorEnabled(w) {
		insert.EnableColor()
		del.EnableColor()
	} else {
		insert.DisableColor()
		del.DisableColor()
	}

	for _, l := range lines {
		switch l.Op {
		case idl.DiffInsert:
			insert.Fprintln(w, l.String())
		case idl.DiffDelete:
			del.Fprintln(w, l.String())
		default:
			fmt.Fprintln(w, l.String())
		}
	}
}
