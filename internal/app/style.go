package app

import (
	"github.com/spf13/cobra"
)

func NewStyleCmd(mgr Manager) *cobra.Command {
	return &cobra.Command{
		Use:   "style",
		Short: "Check the project's .clang-format file",
		Long: `
Locates .clang-format (or _clang-format) in the project root, parses every
YAML document in it and validates the common options. Exits 1 if the file is
missing or invalid.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mgr.InspectStyle(cmd.Context())
		},
	}
}
