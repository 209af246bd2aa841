package discriminator

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Entry assigns a discriminator to one instruction name.
type Entry struct {
	Name          string        `json:"name"`
	Discriminator Discriminator `json:"discriminator"`
}

// Table is an ordered, immutable mapping from instruction name to
// discriminator. Iteration order is the order entries were declared in.
type Table struct {
	entries []Entry
	index   map[string]int
}

// ErrInvalidTable is returned (wrapped) for tables that fail validation.
var ErrInvalidTable = errors.New("invalid discriminator table")

// NewTable builds a Table from entries.
// Names must be non-empty and unique after NFC normalization, and every
// discriminator must be non-empty.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("%w: entry %d has no name", ErrInvalidTable, i)
		}
		if len(e.Discriminator) == 0 {
			return nil, fmt.Errorf("%w: %s has an empty discriminator", ErrInvalidTable, e.Name)
		}
		key := normalize(e.Name)
		if _, dup := t.index[key]; dup {
			return nil, fmt.Errorf("%w: duplicate instruction %q", ErrInvalidTable, e.Name)
		}
		t.index[key] = len(t.entries)
		t.entries = append(t.entries, Entry{
			Name:          e.Name,
			Discriminator: append(Discriminator(nil), e.Discriminator...),
		})
	}
	return t, nil
}

// MustTable is NewTable for tables declared in code. It panics on error.
func MustTable(entries ...Entry) *Table {
	t, err := NewTable(entries)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns a copy of the discriminator assigned to name.
func (t *Table) Lookup(name string) (Discriminator, bool) {
	e, ok := t.Entry(name)
	return e.Discriminator, ok
}

// Entry returns a copy of the entry matching name. The returned Name is
// the name as declared in the table.
func (t *Table) Entry(name string) (Entry, bool) {
	i, ok := t.index[normalize(name)]
	if !ok {
		return Entry{}, false
	}
	e := t.entries[i]
	return Entry{Name: e.Name, Discriminator: append(Discriminator(nil), e.Discriminator...)}, true
}

// Entries returns a copy of the table's entries in declaration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	for i, e := range t.entries {
		out[i] = Entry{Name: e.Name, Discriminator: append(Discriminator(nil), e.Discriminator...)}
	}
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

func normalize(name string) string {
	return norm.NFC.String(name)
}

// tableFile is the on-disk YAML shape of a discriminator table.
type tableFile struct {
	Instructions []struct {
		Name          string `yaml:"name"`
		Discriminator []int  `yaml:"discriminator"`
	} `yaml:"instructions"`
}

// LoadTable reads a YAML discriminator table:
//
//	instructions:
//	  - name: swapBaseIn
//	    discriminator: [9]
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading table file: %w", err)
	}
	return ParseTable(data)
}

// ParseTable parses YAML table content. See LoadTable for the format.
func ParseTable(data []byte) (*Table, error) {
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if len(f.Instructions) == 0 {
		return nil, fmt.Errorf("%w: no instructions", ErrInvalidTable)
	}

	entries := make([]Entry, 0, len(f.Instructions))
	for _, in := range f.Instructions {
		d, err := FromInts(in.Discriminator)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTable, in.Name, err)
		}
		entries = append(entries, Entry{Name: in.Name, Discriminator: d})
	}
	return NewTable(entries)
}
