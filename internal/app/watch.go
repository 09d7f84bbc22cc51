package app

import (
	"log/slog"

	"github.com/spf13/cobra"
)

func NewWatchCmd(mgr Manager, ll *slog.LevelVar) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-run the check whenever a matching file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Progress messages are the point of watch mode.
			if ll.Level() > slog.LevelInfo {
				ll.Set(slog.LevelInfo)
			}
			return mgr.Watch(cmd.Context(), nil)
		},
	}
}
