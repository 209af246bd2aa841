// Package idl loads Anchor-style IDL documents and patches instruction
// discriminators into them.
//
// A patch run is read, parse, validate, plan, apply, write:
//   - The file is read whole and parsed as JSON. Nothing is written if
//     reading or parsing fails.
//   - A CUE schema checks the minimal shape the patcher relies on: an
//     object with an "instructions" list whose entries have a string name.
//   - The plan lists every instruction whose name appears in the
//     discriminator table.
//   - The plan is applied as an RFC 6902 JSON Patch of "add" operations.
//     "add" replaces an existing member, so patching is idempotent, and
//     instructions outside the plan keep their original bytes.
//   - The document is re-indented with two spaces and written to a temp
//     file that is renamed over the original.
//
// Writers hold an advisory lock on "<path>.lock" for the whole
// read-modify-write cycle.
package idl
