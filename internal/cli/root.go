package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the idlfix CLI.
//
// Run without a subcommand, idlfix patches the default protocol's IDL at
// its repository-relative path, exactly as "idlfix patch" would.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	patchOpts := &PatchOptions{RootOptions: opts}

	cmd := &cobra.Command{
		Use:   "idlfix [idl-path]",
		Short: "idlfix - patch instruction discriminators into DEX IDLs",
		Long: `Patch instruction discriminators into Solana DEX IDL files.

Programs that are not built with Anchor (such as Raydium AMM V4) publish
IDLs without instruction discriminators. idlfix adds them from a built-in
table so that IDL-driven decoders can identify those instructions.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(patchOpts, args, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	addPatchFlags(cmd, patchOpts)

	// Add subcommands
	cmd.AddCommand(NewPatchCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewProtocolsCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
