package discriminator

import "crypto/sha256"

// AnchorNamespace is the sighash namespace Anchor uses for instructions.
const AnchorNamespace = "global"

// AnchorSize is the length of an Anchor-derived discriminator.
const AnchorSize = 8

// Anchor computes the default Anchor discriminator for an instruction:
// the first 8 bytes of SHA256("global:" + name).
//
// The name is hashed exactly as it appears in the IDL. Consumers of the
// patched IDL fall back to this value for instructions that carry no
// explicit discriminator.
func Anchor(name string) Discriminator {
	sum := sha256.Sum256([]byte(AnchorNamespace + ":" + name))
	out := make(Discriminator, AnchorSize)
	copy(out, sum[:AnchorSize])
	return out
}
