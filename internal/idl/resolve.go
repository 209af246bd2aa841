package idl

import (
	"github.com/roach88/idlfix/internal/discriminator"
)

// Source says where an effective discriminator came from.
type Source string

const (
	// SourceIDL means the IDL entry carries an explicit discriminator.
	SourceIDL Source = "idl"

	// SourceAnchor means the discriminator is derived from the name.
	SourceAnchor Source = "anchor"
)

// Resolved is the discriminator a decoder will use for an instruction.
type Resolved struct {
	Index         int                         `json:"index"`
	Name          string                      `json:"name"`
	Discriminator discriminator.Discriminator `json:"discriminator"`
	Source        Source                      `json:"source"`
}

// Collision is a discriminator shared by more than one instruction.
type Collision struct {
	Discriminator discriminator.Discriminator `json:"discriminator"`
	Names         []string                    `json:"names"`
}

// Resolve returns the effective discriminator of every instruction, in
// document order: the explicit one when present, otherwise the Anchor
// discriminator of its name.
func Resolve(doc *Document) []Resolved {
	out := make([]Resolved, len(doc.Instructions))
	for i, in := range doc.Instructions {
		r := Resolved{Index: in.Index, Name: in.Name}
		if len(in.Discriminator) > 0 {
			r.Discriminator = in.Discriminator
			r.Source = SourceIDL
		} else {
			r.Discriminator = discriminator.Anchor(in.Name)
			r.Source = SourceAnchor
		}
		out[i] = r
	}
	return out
}

// Collisions groups instructions that resolve to the same discriminator.
// A decoder keyed by discriminator cannot tell them apart. Groups are
// ordered by the index of their first instruction.
func Collisions(resolved []Resolved) []Collision {
	groups := make(map[string]int)
	var all []Collision
	for _, r := range resolved {
		key := string(r.Discriminator)
		if i, ok := groups[key]; ok {
			all[i].Names = append(all[i].Names, r.Name)
			continue
		}
		groups[key] = len(all)
		all = append(all, Collision{Discriminator: r.Discriminator, Names: []string{r.Name}})
	}

	var out []Collision
	for _, c := range all {
		if len(c.Names) > 1 {
			out = append(out, c)
		}
	}
	return out
}
