package discriminator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaydiumAmmV4Table(t *testing.T) {
	table := RaydiumAmmV4()

	expected := []Entry{
		{Name: "initialize2", Discriminator: Discriminator{1}},
		{Name: "deposit", Discriminator: Discriminator{3}},
		{Name: "withdraw", Discriminator: Discriminator{4}},
		{Name: "withdrawPnl", Discriminator: Discriminator{7}},
		{Name: "swapBaseIn", Discriminator: Discriminator{9}},
		{Name: "swapBaseOut", Discriminator: Discriminator{11}},
	}
	assert.Equal(t, expected, table.Entries())
	assert.Equal(t, 6, table.Len())
}

func TestTableLookup(t *testing.T) {
	table := RaydiumAmmV4()

	d, ok := table.Lookup("withdraw")
	require.True(t, ok)
	assert.Equal(t, Discriminator{4}, d)

	_, ok = table.Lookup("setParams")
	assert.False(t, ok)

	_, ok = table.Lookup("Withdraw")
	assert.False(t, ok, "lookup is case sensitive")
}

func TestTableIsImmutable(t *testing.T) {
	table := RaydiumAmmV4()

	d, _ := table.Lookup("deposit")
	d[0] = 99
	entries := table.Entries()
	entries[0].Discriminator[0] = 99

	again, _ := table.Lookup("deposit")
	assert.Equal(t, Discriminator{3}, again)
	assert.Equal(t, Discriminator{1}, table.Entries()[0].Discriminator)
}

func TestTableLookupNormalizesNames(t *testing.T) {
	// "é" composed (U+00E9) vs decomposed (e + U+0301).
	table := MustTable(Entry{Name: "caf\u00e9", Discriminator: Discriminator{1}})

	d, ok := table.Lookup("cafe\u0301")
	require.True(t, ok)
	assert.Equal(t, Discriminator{1}, d)
}

func TestNewTableRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		want    string
	}{
		{
			name:    "empty name",
			entries: []Entry{{Name: "", Discriminator: Discriminator{1}}},
			want:    "no name",
		},
		{
			name:    "empty discriminator",
			entries: []Entry{{Name: "deposit"}},
			want:    "empty discriminator",
		},
		{
			name: "duplicate",
			entries: []Entry{
				{Name: "deposit", Discriminator: Discriminator{3}},
				{Name: "deposit", Discriminator: Discriminator{4}},
			},
			want: "duplicate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.entries)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTable)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMustTablePanics(t *testing.T) {
	assert.Panics(t, func() {
		MustTable(Entry{Name: "x"})
	})
}

func TestLoadTable(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "table.yaml")
	content := `
instructions:
  - name: swapBaseIn
    discriminator: [9]
  - name: swapBaseOut
    discriminator: [11, 0]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := LoadTable(path)
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Name: "swapBaseIn", Discriminator: Discriminator{9}},
		{Name: "swapBaseOut", Discriminator: Discriminator{11, 0}},
	}, table.Entries())
}

func TestLoadTableMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseTableErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"malformed yaml", "instructions: [", "invalid discriminator table"},
		{"no instructions", "instructions: []", "no instructions"},
		{"out of range", "instructions:\n  - name: a\n    discriminator: [256]\n", "out of range"},
		{"negative", "instructions:\n  - name: a\n    discriminator: [-3]\n", "out of range"},
		{"duplicate", "instructions:\n  - name: a\n    discriminator: [1]\n  - name: a\n    discriminator: [2]\n", "duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable([]byte(tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTable)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
