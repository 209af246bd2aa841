package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/roach88/idlfix/internal/idl"
	"github.com/roach88/idlfix/internal/protocol"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Protocol string
}

// InspectReport is the JSON payload of the inspect command.
type InspectReport struct {
	Path         string          `json:"path"`
	Instructions []idl.Resolved  `json:"instructions"`
	Collisions   []idl.Collision `json:"collisions,omitempty"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect [idl-path]",
		Short: "Show the effective discriminator of every instruction",
		Long: `Show the discriminator a decoder will use for every instruction in an IDL.

Instructions with an explicit "discriminator" field use it (source "idl");
the others fall back to the Anchor discriminator, the first 8 bytes of
sha256("global:<name>") (source "anchor"). Exits 1 if two instructions
share a discriminator, since a decoder cannot tell them apart.

When --protocol is given, the IDL's declared program address must match.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Protocol, "protocol", "p", protocol.DefaultID, "protocol whose default IDL path to use")

	return cmd
}

func runInspect(opts *InspectOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	proto, err := protocol.Lookup(opts.Protocol)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeUnknownProtocol, err.Error())
	}

	path := proto.IDLPath
	if len(args) > 0 {
		path = args[0]
	}

	doc, err := idl.Load(path)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrorCode(err), err.Error())
	}
	formatter.VerboseLog("Loaded %s: %d instruction(s)", path, len(doc.Instructions))

	if cmd.Flags().Changed("protocol") {
		if err := doc.CheckProgram(proto.ProgramID); err != nil {
			return fail(formatter, ExitCommandError, ErrorCode(err), err.Error())
		}
	}

	resolved := idl.Resolve(doc)
	report := &InspectReport{
		Path:         path,
		Instructions: resolved,
		Collisions:   idl.Collisions(resolved),
	}

	if formatter.Format == "json" {
		if err := formatter.Success(report); err != nil {
			return err
		}
	} else {
		table := tablewriter.NewWriter(formatter.Writer)
		table.SetHeader([]string{"#", "Instruction", "Discriminator", "Hex", "Source"})
		table.SetAutoFormatHeaders(false)
		table.SetAutoWrapText(false)
		for _, r := range resolved {
			table.Append([]string{
				strconv.Itoa(r.Index),
				r.Name,
				r.Discriminator.String(),
				r.Discriminator.Hex(),
				string(r.Source),
			})
		}
		table.Render()

		for _, c := range report.Collisions {
			fmt.Fprintf(formatter.Writer, "✗ collision %s: %v\n", c.Discriminator, c.Names)
		}
	}

	if len(report.Collisions) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d discriminator collision(s) in %s", len(report.Collisions), path))
	}
	return nil
}
