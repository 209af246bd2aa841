package idl

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"

	"github.com/roach88/idlfix/internal/discriminator"
)

// Document is a parsed IDL. Raw holds the exact bytes it was parsed from;
// only the fields the patcher needs are decoded.
type Document struct {
	Path         string
	Raw          []byte
	Instructions []Instruction

	address string
}

// Instruction is one entry of the IDL "instructions" list.
type Instruction struct {
	// Index is the entry's position in the list.
	Index int

	Name string

	// Discriminator is nil when the entry has no "discriminator" field.
	Discriminator discriminator.Discriminator
}

type rawDocument struct {
	Address  string `json:"address"`
	Metadata *struct {
		Address string `json:"address"`
	} `json:"metadata"`
	Instructions *[]rawInstruction `json:"instructions"`
}

type rawInstruction struct {
	Name          string                      `json:"name"`
	Discriminator discriminator.Discriminator `json:"discriminator"`
}

// Load reads and parses the IDL at path.
// A missing or unreadable file yields a KindIO error.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newError(KindIO, "read", path, err)
	}
	return Parse(path, data)
}

// Parse parses IDL content. path is used for error messages only.
//
// Syntax errors yield KindParse; documents without an "instructions" list
// of named entries yield KindSchema.
func Parse(path string, data []byte) (*Document, error) {
	var syntax json.RawMessage
	if err := json.Unmarshal(data, &syntax); err != nil {
		return nil, newError(KindParse, "parse", path, describeSyntaxError(data, err))
	}

	if err := validateShape(path, data); err != nil {
		return nil, err
	}

	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, newError(KindSchema, "validate", path, err)
	}
	if raw.Instructions == nil {
		return nil, schemaErrorf(path, `missing top-level "instructions" list`)
	}

	doc := &Document{
		Path:         path,
		Raw:          data,
		Instructions: make([]Instruction, len(*raw.Instructions)),
		address:      raw.Address,
	}
	if doc.address == "" && raw.Metadata != nil {
		doc.address = raw.Metadata.Address
	}
	for i, in := range *raw.Instructions {
		doc.Instructions[i] = Instruction{
			Index:         i,
			Name:          in.Name,
			Discriminator: in.Discriminator,
		}
	}
	return doc, nil
}

// ProgramAddress returns the program address the IDL declares in
// "address" or "metadata.address". ok is false when neither is set.
func (d *Document) ProgramAddress() (addr solana.PublicKey, ok bool, err error) {
	if d.address == "" {
		return solana.PublicKey{}, false, nil
	}
	addr, err = solana.PublicKeyFromBase58(d.address)
	if err != nil {
		return solana.PublicKey{}, true, schemaErrorf(d.Path, "invalid program address %q: %v", d.address, err)
	}
	return addr, true, nil
}

// CheckProgram fails with KindSchema when the IDL declares a program
// address different from want. A zero want or an undeclared address passes.
func (d *Document) CheckProgram(want solana.PublicKey) error {
	if want == (solana.PublicKey{}) {
		return nil
	}
	got, ok, err := d.ProgramAddress()
	if err != nil || !ok {
		return err
	}
	if got != want {
		return schemaErrorf(d.Path, "IDL is for program %s, expected %s", got, want)
	}
	return nil
}

// describeSyntaxError adds a line and column to JSON syntax errors.
func describeSyntaxError(data []byte, err error) error {
	var se *json.SyntaxError
	if !errors.As(err, &se) {
		return err
	}
	line, col := 1, 1
	for i := int64(0); i < se.Offset-1 && i < int64(len(data)); i++ {
		if data[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return fmt.Errorf("line %d, column %d: %w", line, col, err)
}
