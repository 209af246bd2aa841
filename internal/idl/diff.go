package idl

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffOp marks a line in a Diff.
type DiffOp byte

const (
	DiffEqual  DiffOp = ' '
	DiffInsert DiffOp = '+'
	DiffDelete DiffOp = '-'
)

// DiffLine is one line of a line-oriented diff, without its newline.
type DiffLine struct {
	Op   DiffOp
	Text string
}

// String renders the line with its op prefix.
func (l DiffLine) String() string {
	return string(l.Op) + l.Text
}

// Diff returns the line diff from before to after, keeping up to context
// unchanged lines around each change. Runs of omitted unchanged lines
// are replaced with a single DiffEqual line reading "...".
// Identical inputs yield no lines.
func Diff(before, after []byte, context int) []DiffLine {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var all []DiffLine
	changed := false
	for _, d := range diffs {
		var op DiffOp
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = DiffInsert
			changed = true
		case diffmatchpatch.DiffDelete:
			op = DiffDelete
			changed = true
		default:
			op = DiffEqual
		}
		for _, line := range splitLines(d.Text) {
			all = append(all, DiffLine{Op: op, Text: line})
		}
	}
	if !changed {
		return nil
	}
	return trimContext(all, context)
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func trimContext(all []DiffLine, context int) []DiffLine {
	keep := make([]bool, len(all))
	for i, l := range all {
		if l.Op == DiffEqual {
			continue
		}
		lo, hi := max(0, i-context), min(len(all)-1, i+context)
		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}

	var out []DiffLine
	skipped := false
	for i, l := range all {
		if keep[i] {
			out = append(out, l)
			skipped = false
			continue
		}
		if !skipped {
			out = append(out, DiffLine{Op: DiffEqual, Text: "..."})
			skipped = true
		}
	}
	return out
}
