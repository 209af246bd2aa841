package discriminator

// raydiumAmmV4 holds the single-byte instruction tags of the Raydium AMM V4
// program. The published IDL omits them because the program is not built
// with Anchor.
var raydiumAmmV4 = MustTable(
	Entry{Name: "initialize2", Discriminator: Discriminator{1}},
	Entry{Name: "deposit", Discriminator: Discriminator{3}},
	Entry{Name: "withdraw", Discriminator: Discriminator{4}},
	Entry{Name: "withdrawPnl", Discriminator: Discriminator{7}},
	Entry{Name: "swapBaseIn", Discriminator: Discriminator{9}},
	Entry{Name: "swapBaseOut", Discriminator: Discriminator{11}},
)

// RaydiumAmmV4 returns the Raydium AMM V4 discriminator table.
func RaydiumAmmV4() *Table {
	return raydiumAmmV4
}
