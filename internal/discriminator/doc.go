// Package discriminator defines instruction discriminators and the tables
// that assign them to IDL instruction names.
//
// A discriminator is the short byte prefix a Solana program reads from
// instruction data to decide which instruction is being invoked. Anchor
// programs derive an 8-byte discriminator from the instruction name; native
// programs such as Raydium AMM V4 use a single tag byte that has to be
// supplied out of band. Tables carry those out-of-band values.
//
// Tables are immutable after construction. Lookups normalize names to NFC
// so that visually identical names always match.
package discriminator
