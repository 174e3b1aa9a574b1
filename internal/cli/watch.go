package cli

import (
	"github.com/spf13/cobra"

	"inputctl/internal/app"
)

func init() { rootCmd.AddCommand(watchCmd) }

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live view of libinput debug-events",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newResolver()
		if err != nil {
			return err
		}
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()
		return app.Watch(ctx, r)
	},
}
