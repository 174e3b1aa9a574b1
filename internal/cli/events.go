package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"inputctl/internal/libinput"
)

var eventsHideTimeouts bool

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().BoolVar(&eventsHideTimeouts, "hide-timeouts", false, "do not print the idle timeout marker")
}

var eventsCmd = &cobra.Command{
	Use:     "events",
	Aliases: []string{"debug-events"},
	Short:   "Stream libinput debug-events output",
	Long:    "Stream libinput debug-events line by line. When no line arrives within --timeout a \"timeout\" marker is printed instead.",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newResolver()
		if err != nil {
			return err
		}
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		err = r.StreamDebugEvents(ctx, func(line string) error {
			if line == libinput.Timeout && eventsHideTimeouts {
				return nil
			}
			_, err := fmt.Fprintln(os.Stdout, line)
			return err
		})
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
