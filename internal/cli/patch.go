package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/idlfix/internal/discriminator"
	"github.com/roach88/idlfix/internal/idl"
	"github.com/roach88/idlfix/internal/protocol"
)

// diffContext is the number of unchanged lines shown around each change
// in --dry-run output.
const diffContext = 3

// PatchOptions holds flags for the patch command.
type PatchOptions struct {
	*RootOptions
	Protocol  string // protocol ID, see "idlfix protocols"
	TablePath string // YAML discriminator table overriding the built-in one
	DryRun    bool   // print the diff, write nothing
	Check     bool   // fail if the IDL is not already patched, write nothing
}

// PatchReport is the JSON payload of a patch run.
type PatchReport struct {
	Path           string                `json:"path"`
	Protocol       string                `json:"protocol"`
	Discriminators []discriminator.Entry `json:"discriminators"`
	Changes        []idl.Change          `json:"changes"`
	Unmatched      []string              `json:"unmatched,omitempty"`
	UpToDate       bool                  `json:"up_to_date"`
	Written        bool                  `json:"written"`
	Diff           []string              `json:"diff,omitempty"`
}

// NewPatchCommand creates the patch command.
func NewPatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "patch [idl-path]",
		Short: "Add instruction discriminators to an IDL",
		Long: `Add instruction discriminators to an IDL file and write it back in place.

Every instruction whose name appears in the discriminator table gets a
"discriminator" field set to the table's value; an existing value is
overwritten. Other instructions are left untouched. The file is replaced
atomically and nothing is written if it cannot be read or parsed.

The IDL path defaults to the protocol's path relative to the working
directory (dex-idl-parser/idls/raydium_amm_v4.json for raydium-amm-v4).

Example:
  idlfix patch
  idlfix patch ./idls/raydium_amm_v4.json --dry-run
  idlfix patch --check --format json
  idlfix patch ./idl.json --table ./discriminators.yaml`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatch(opts, args, cmd)
		},
	}

	addPatchFlags(cmd, opts)

	return cmd
}

func addPatchFlags(cmd *cobra.Command, opts *PatchOptions) {
	cmd.Flags().StringVarP(&opts.Protocol, "protocol", "p", protocol.DefaultID, "protocol whose IDL and table to use")
	cmd.Flags().StringVarP(&opts.TablePath, "table", "t", "", "YAML discriminator table (overrides the built-in table)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "print the changes without writing")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "exit 1 if the IDL is not already patched; never writes")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "check")
}

func runPatch(opts *PatchOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	proto, err := protocol.Lookup(opts.Protocol)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeUnknownProtocol, err.Error())
	}

	table, err := resolveTable(proto, opts.TablePath)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrCodeInvalidTable, err.Error())
	}

	path := proto.IDLPath
	if len(args) > 0 {
		path = args[0]
	}
	formatter.VerboseLog("Patching %s with %d discriminator(s) for %s", path, table.Len(), proto.Name)

	patcher := &idl.Patcher{
		Table:     table,
		ProgramID: proto.ProgramID,
		DryRun:    opts.DryRun || opts.Check,
		Logf:      formatter.VerboseLog,
	}
	res, err := patcher.Patch(path)
	if err != nil {
		return fail(formatter, ExitCommandError, ErrorCode(err), err.Error())
	}

	report := &PatchReport{
		Path:           res.Path,
		Protocol:       proto.ID,
		Discriminators: table.Entries(),
		Changes:        res.Changes,
		Unmatched:      res.Unmatched,
		UpToDate:       res.UpToDate(),
		Written:        res.Written,
	}

	switch {
	case opts.Check:
		return outputCheck(formatter, report, res)
	case opts.DryRun:
		return outputDryRun(formatter, report, res)
	default:
		return outputPatchSuccess(formatter, report, proto)
	}
}

// resolveTable returns the table from tablePath if set, otherwise the
// protocol's built-in table.
func resolveTable(proto *protocol.Protocol, tablePath string) (*discriminator.Table, error) {
	if tablePath != "" {
		table, err := discriminator.LoadTable(tablePath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", tablePath, err)
		}
		return table, nil
	}
	if !proto.HasTable() {
		return nil, errors.New(proto.ID + " has no built-in discriminator table; pass one with --table")
	}
	return proto.Table, nil
}

// outputPatchSuccess prints the banner and one line per table entry, in
// table order.
func outputPatchSuccess(formatter *OutputFormatter, report *PatchReport, proto *protocol.Protocol) error {
	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	fmt.Fprintf(formatter.Writer, "✅ Added discriminators to %s IDL:\n", proto.Name)
	for _, e := range report.Discriminators {
		fmt.Fprintf(formatter.Writer, "  - %s: %s\n", e.Name, e.Discriminator)
	}
	for _, name := range report.Unmatched {
		formatter.VerboseLog("warning: no instruction named %s in %s", name, report.Path)
	}
	return nil
}

func outputDryRun(formatter *OutputFormatter, report *PatchReport, res *idl.Result) error {
	lines := idl.Diff(res.Before, res.After, diffContext)

	if formatter.Format == "json" {
		for _, l := range lines {
			report.Diff = append(report.Diff, l.String())
		}
		return formatter.Success(report)
	}

	if len(lines) == 0 {
		fmt.Fprintf(formatter.Writer, "✓ %s is up to date, nothing to write\n", report.Path)
		return nil
	}
	printDiff(formatter.Writer, lines)
	fmt.Fprintf(formatter.Writer, "\nDry run: %d instruction(s) would change in %s, nothing written\n",
		countModified(report.Changes), report.Path)
	return nil
}

func outputCheck(formatter *OutputFormatter, report *PatchReport, res *idl.Result) error {
	modified := res.Modified()
	upToDate := len(modified) == 0

	if formatter.Format == "json" {
		report.UpToDate = upToDate
		if err := formatter.Success(report); err != nil {
			return err
		}
	} else if upToDate {
		fmt.Fprintf(formatter.Writer, "✓ %s has all %d discriminator(s)\n", report.Path, len(report.Changes))
	} else {
		fmt.Fprintf(formatter.Writer, "✗ %s is missing %d discriminator(s)\n", report.Path, len(modified))
		for _, c := range modified {
			if c.Old == nil {
				fmt.Fprintf(formatter.Writer, "  - %s: missing, want %s\n", c.Name, c.New)
			} else {
				fmt.Fprintf(formatter.Writer, "  - %s: has %s, want %s\n", c.Name, c.Old, c.New)
			}
		}
	}

	if !upToDate {
		return NewExitError(ExitFailure, fmt.Sprintf("%d instruction(s) need discriminators", len(modified)))
	}
	return nil
}

func countModified(changes []idl.Change) int {
	n := 0
	for _, c := range changes {
		if c.Modified() {
			n++
		}
	}
	return n
}
