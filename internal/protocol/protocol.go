// Package protocol is the registry of DEX programs whose IDLs idlfix knows
// how to locate and patch.
package protocol

import (
	"fmt"
	"sort"

	"github.com/gagliardetto/solana-go"

	"github.com/roach88/idlfix/internal/discriminator"
)

// Protocol describes one on-chain DEX program.
type Protocol struct {
	// ID is the stable identifier used on the command line.
	ID string

	// Name is the human-readable program name.
	Name string

	// ProgramID is the program's on-chain address.
	ProgramID solana.PublicKey

	// IDLPath is the repository-relative path of the program's IDL.
	IDLPath string

	// Table holds out-of-band discriminators. Nil for Anchor programs,
	// whose IDLs already carry them.
	Table *discriminator.Table
}

// HasTable reports whether the protocol ships a built-in discriminator table.
func (p *Protocol) HasTable() bool {
	return p.Table != nil
}

// DefaultID is the protocol patched when none is specified.
const DefaultID = "raydium-amm-v4"

var registry = map[string]*Protocol{
	"jupiter-v6": {
		ID:        "jupiter-v6",
		Name:      "Jupiter Aggregator V6",
		ProgramID: solana.MustPublicKeyFromBase58("JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4"),
		IDLPath:   "dex-idl-parser/idls/jupiter_agg_v6.json",
	},
	"raydium-clmm": {
		ID:        "raydium-clmm",
		Name:      "Raydium CLMM",
		ProgramID: solana.MustPublicKeyFromBase58("CAMMCzo5YL8w4VFF8KVHrK22GGUsp5VTaW7grrKgrWqK"),
		IDLPath:   "dex-idl-parser/idls/raydium_clmm.json",
	},
	"raydium-cpmm": {
		ID:        "raydium-cpmm",
		Name:      "Raydium CPMM",
		ProgramID: solana.MustPublicKeyFromBase58("CPMMoo8L3F4NbTegBCKVNunggL7H1ZpdTHKxQB5qKP1C"),
		IDLPath:   "dex-idl-parser/idls/raydium_amm.json",
	},
	"raydium-amm-v4": {
		ID:        "raydium-amm-v4",
		Name:      "Raydium AMM V4",
		ProgramID: solana.MustPublicKeyFromBase58("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"),
		IDLPath:   "dex-idl-parser/idls/raydium_amm_v4.json",
		Table:     discriminator.RaydiumAmmV4(),
	},
	"orca-whirlpool": {
		ID:        "orca-whirlpool",
		Name:      "Orca Whirlpool",
		ProgramID: solana.MustPublicKeyFromBase58("whirLbMiicVdio4qvUfM5KAg6Ct8VwpYzGff3uctyCc"),
		IDLPath:   "dex-idl-parser/idls/orca_whirlpool.json",
	},
	"meteora-dlmm": {
		ID:        "meteora-dlmm",
		Name:      "Meteora DLMM",
		ProgramID: solana.MustPublicKeyFromBase58("LBUZKhRxPF3XUpBCjp4YzTKgLccjZhTSDM9YuVaPwxo"),
		IDLPath:   "dex-idl-parser/idls/meteora.json",
	},
}

// Lookup returns the protocol registered under id.
func Lookup(id string) (*Protocol, error) {
	p, ok := registry[id]
	if !ok {
		return nil, fmt.Errorf("unknown protocol %q: must be one of %v", id, IDs())
	}
	return p, nil
}

// Default returns the default protocol (Raydium AMM V4).
func Default() *Protocol {
	return registry[DefaultID]
}

// All returns every registered protocol sorted by ID.
func All() []*Protocol {
	out := make([]*Protocol, 0, len(registry))
	for _, p := range registry {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns every registered protocol ID in sorted order.
func IDs() []string {
	all := All()
	ids := make([]string, len(all))
	for i, p := range all {
		ids[i] = p.ID
	}
	return ids
}
