package idl

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cuejson "cuelang.org/go/encoding/json"
)

// shapeSchema is the minimal IDL shape the patcher depends on. Everything
// else in the document is left open and unchecked.
const shapeSchema = `
#Instruction: {
	name!:          string
	discriminator?: [...uint8]
	...
}

#IDL: {
	address?: string
	metadata?: {
		address?: string
		...
	}
	instructions!: [...#Instruction]
	...
}
`

// validateShape checks data against #IDL. data must already be valid JSON.
func validateShape(path string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(shapeSchema, cue.Filename("idl-shape.cue"))
	if err := schema.Err(); err != nil {
		return newError(KindSchema, "compile schema", "", err)
	}

	expr, err := cuejson.Extract(path, data)
	if err != nil {
		return newError(KindParse, "parse", path, err)
	}
	doc := ctx.BuildExpr(expr)
	if err := doc.Err(); err != nil {
		return newError(KindParse, "parse", path, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#IDL")).Unify(doc)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return newError(KindSchema, "validate", path, firstCUEError(err))
	}
	return nil
}

// firstCUEError returns the first entry of a CUE error list.
func firstCUEError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	return errs[0]
}
