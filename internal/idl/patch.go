package idl

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/gagliardetto/solana-go"

	"github.com/roach88/idlfix/internal/discriminator"
)

// Indent is the indentation used when writing a patched document.
const Indent = "  "

// Change is one planned discriminator assignment.
type Change struct {
	Index int                         `json:"index"`
	Name  string                      `json:"name"`
	Old   discriminator.Discriminator `json:"old,omitempty"`
	New   discriminator.Discriminator `json:"new"`
}

// Modified reports whether applying the change alters the document.
func (c Change) Modified() bool {
	return c.Old == nil || !c.Old.Equal(c.New)
}

// Plan returns one Change per instruction whose name is in table, in
// document order. Instructions not in the table are not listed.
func Plan(doc *Document, table *discriminator.Table) []Change {
	var changes []Change
	for _, in := range doc.Instructions {
		d, ok := table.Lookup(in.Name)
		if !ok {
			continue
		}
		changes = append(changes, Change{
			Index: in.Index,
			Name:  in.Name,
			Old:   in.Discriminator,
			New:   d,
		})
	}
	return changes
}

// Unmatched returns the names of table entries that no instruction in doc
// matches, in table order.
func Unmatched(doc *Document, table *discriminator.Table) []string {
	matched := make(map[string]bool, table.Len())
	for _, in := range doc.Instructions {
		if e, ok := table.Entry(in.Name); ok {
			matched[e.Name] = true
		}
	}
	var missing []string
	for _, e := range table.Entries() {
		if !matched[e.Name] {
			missing = append(missing, e.Name)
		}
	}
	return missing
}

type patchOp struct {
	Op    string                      `json:"op"`
	Path  string                      `json:"path"`
	Value discriminator.Discriminator `json:"value"`
}

// Apply applies changes to raw and returns the re-indented document.
//
// Every change becomes an "add" of /instructions/<index>/discriminator.
// The result ends with a newline.
func Apply(raw []byte, changes []Change) ([]byte, error) {
	ops := make([]patchOp, len(changes))
	for i, c := range changes {
		ops[i] = patchOp{
			Op:    "add",
			Path:  fmt.Sprintf("/instructions/%d/discriminator", c.Index),
			Value: c.New,
		}
	}
	opsJSON, err := json.Marshal(ops)
	if err != nil {
		return nil, fmt.Errorf("encoding patch: %w", err)
	}
	patch, err := jsonpatch.DecodePatch(opsJSON)
	if err != nil {
		return nil, fmt.Errorf("decoding patch: %w", err)
	}

	patched, err := patch.Apply(raw)
	if err != nil {
		return nil, fmt.Errorf("applying patch: %w", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, patched, "", Indent); err != nil {
		return nil, fmt.Errorf("indenting document: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// Patcher assigns table discriminators to an IDL file.
type Patcher struct {
	// Table supplies the discriminators. Required.
	Table *discriminator.Table

	// ProgramID, when non-zero, must match the address the IDL declares.
	ProgramID solana.PublicKey

	// DryRun computes the result without writing or locking.
	DryRun bool

	// Logf receives progress messages. Nil discards them.
	Logf func(format string, args ...any)
}

// Result describes a patch run.
type Result struct {
	Path      string
	Changes   []Change
	Unmatched []string
	Before    []byte
	After     []byte
	Written   bool
}

// Modified returns the changes that alter the document.
func (r *Result) Modified() []Change {
	var out []Change
	for _, c := range r.Changes {
		if c.Modified() {
			out = append(out, c)
		}
	}
	return out
}

// UpToDate reports whether the file already has its final content.
func (r *Result) UpToDate() bool {
	return bytes.Equal(r.Before, r.After)
}

// Patch loads the IDL at path, assigns discriminators and, unless DryRun
// is set, atomically replaces the file.
//
// Errors are *Error values: KindLock if another writer holds the lock,
// KindIO for read or write failures, KindParse and KindSchema for bad
// content. The file is never modified when an error is returned before
// the write step.
func (p *Patcher) Patch(path string) (res *Result, err error) {
	if p.Table == nil {
		return nil, fmt.Errorf("patcher has no discriminator table")
	}

	if !p.DryRun {
		lock, lerr := acquireLock(path)
		if lerr != nil {
			return nil, lerr
		}
		defer func() {
			if uerr := lock.release(); uerr != nil && err == nil {
				err = uerr
			}
		}()
	}

	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	p.logf("Loaded %s: %d instruction(s)", path, len(doc.Instructions))

	if err := doc.CheckProgram(p.ProgramID); err != nil {
		return nil, err
	}

	res = &Result{
		Path:      path,
		Changes:   Plan(doc, p.Table),
		Unmatched: Unmatched(doc, p.Table),
		Before:    doc.Raw,
	}
	for _, c := range res.Changes {
		if c.Modified() {
			p.logf("instructions[%d] %s: %v -> %v", c.Index, c.Name, c.Old, c.New)
		} else {
			p.logf("instructions[%d] %s: already %v", c.Index, c.Name, c.New)
		}
	}
	for _, name := range res.Unmatched {
		p.logf("table entry %s has no matching instruction", name)
	}

	res.After, err = Apply(doc.Raw, res.Changes)
	if err != nil {
		return nil, newError(KindSchema, "patch", path, err)
	}

	if p.DryRun {
		return res, nil
	}

	if err := WriteFile(path, res.After); err != nil {
		return nil, err
	}
	res.Written = true
	p.logf("Wrote %s (%d bytes)", path, len(res.After))
	return res, nil
}

func (p *Patcher) logf(format string, args ...any) {
	if p.Logf != nil {
		p.Logf(format, args...)
	}
}
