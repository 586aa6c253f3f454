package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/hotelite/internal/export"
	"github.com/roach88/hotelite/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Out string
}

// ExportResult is the JSON payload of the export command.
type ExportResult struct {
	Path          string `json:"path"`
	Rooms         int    `json:"rooms"`
	Housekeepers  int    `json:"housekeepers"`
	Items         int    `json:"items"`
	Satisfactions int    `json:"satisfactions"`
	Events        int    `json:"events"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every store to a spreadsheet",
		Long: `Write the hotel to an .xlsx workbook with one sheet per store.

Example:
  hotelite export --db ./hotel.db --out ./hotel.xlsx`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "path of the .xlsx file to write (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg := opts.settings()

	if _, err := os.Stat(cfg.Database); err != nil {
		return WrapExitError(ExitCommandError, "database not found", err)
	}

	st, err := store.Open(cfg.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	h, err := st.Load(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load hotel", err)
	}

	if err := export.WriteFile(h.Snapshot(), opts.Out); err != nil {
		return WrapExitError(ExitFailure, "failed to write workbook", err)
	}

	out := opts.formatter(cmd)
	if out.Format == "json" {
		return out.Success(ExportResult{
			Path:          opts.Out,
			Rooms:         h.Rooms.Len(),
			Housekeepers:  h.Housekeepers.Len(),
			Items:         h.Items.Len(),
			Satisfactions: h.Satisfactions.Len(),
			Events:        h.Events.Len(),
		})
	}
	return out.Success(fmt.Sprintf("✓ Exported %d rooms, %d housekeepers, %d items to %s",
		h.Rooms.Len(), h.Housekeepers.Len(), h.Items.Len(), opts.Out))
}
