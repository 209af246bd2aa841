package idl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffIdentical(t *testing.T) {
	assert.Empty(t, Diff([]byte("a\nb\n"), []byte("a\nb\n"), 2))
}

func TestDiffInsertedLines(t *testing.T) {
	before := "{\n  \"name\": \"deposit\"\n}\n"
	after := "{\n  \"discriminator\": [3],\n  \"name\": \"deposit\"\n}\n"

	lines := Diff([]byte(before), []byte(after), 1)

	assert.Equal(t, []DiffLine{
		{Op: DiffEqual, Text: "{"},
		{Op: DiffInsert, Text: `  "discriminator": [3],`},
		{Op: DiffEqual, Text: `  "name": "deposit"`},
		{Op: DiffEqual, Text: "..."},
	}, lines)
}

func TestDiffReplacedLine(t *testing.T) {
	lines := Diff([]byte("a\nb\nc\n"), []byte("a\nB\nc\n"), 0)

	assert.Equal(t, []DiffLine{
		{Op: DiffEqual, Text: "..."},
		{Op: DiffDelete, Text: "b"},
		{Op: DiffInsert, Text: "B"},
		{Op: DiffEqual, Text: "..."},
	}, lines)
}

func TestDiffLineString(t *testing.T) {
	assert.Equal(t, "+x", DiffLine{Op: DiffInsert, Text: "x"}.String())
	assert.Equal(t, "-x", DiffLine{Op: DiffDelete, Text: "x"}.String())
	assert.Equal(t, " x", DiffLine{Op: DiffEqual, Text: "x"}.String())
}
