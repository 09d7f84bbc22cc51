package app

import (
	"github.com/spf13/cobra"
)

func NewListCmd(mgr Manager) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the files that would be checked",
		Args:  cobra.NoArgs,
		Example: `
  fmtcheck list           - one path per line, in checking order
  fmtcheck list -v        - grouped by pattern, relative to the project root
  fmtcheck list -o json   - machine readable`,
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Group files by pattern")
	outputVal := formatValue("text")
	cmd.Flags().VarP(&outputVal, "output", "o", "Output format (text, json)")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return mgr.List(cmd.Context(), string(outputVal), verbose)
	}

	return cmd
}
