package cli

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/roach88/idlfix/internal/protocol"
)

// ProtocolInfo is the JSON shape of one registry entry.
type ProtocolInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ProgramID string `json:"program_id"`
	IDLPath   string `json:"idl_path"`
	Entries   int    `json:"table_entries"`
}

// NewProtocolsCommand creates the protocols command.
func NewProtocolsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "protocols",
		Short:         "List known DEX protocols",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProtocols(rootOpts, cmd)
		},
	}
}

func runProtocols(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	var infos []ProtocolInfo
	for _, p := range protocol.All() {
		info := ProtocolInfo{
			ID:        p.ID,
			Name:      p.Name,
			ProgramID: p.ProgramID.String(),
			IDLPath:   p.IDLPath,
		}
		if p.HasTable() {
			info.Entries = p.Table.Len()
		}
		infos = append(infos, info)
	}

	if formatter.Format == "json" {
		return formatter.Success(infos)
	}

	table := tablewriter.NewWriter(formatter.Writer)
	table.SetHeader([]string{"ID", "Name", "Program", "IDL", "Table"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, info := range infos {
		entries := "-"
		if info.Entries > 0 {
			entries = strconv.Itoa(info.Entries)
		}
		table.Append([]string{info.ID, info.Name, info.ProgramID, info.IDLPath, entries})
	}
	table.Render()
	return nil
}
