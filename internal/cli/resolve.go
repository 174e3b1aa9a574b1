package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var resolveJSON bool

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "output JSON")
}

type resolveReport struct {
	Version     string   `json:"version,omitempty"`
	Probe       string   `json:"probe,omitempty"`
	ListDevices string   `json:"listDevices"`
	DebugEvents string   `json:"debugEvents"`
	Options     []string `json:"options,omitempty"`
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show the libinput version and the commands inputctl would run",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newResolver()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		rep := resolveReport{Options: r.ExtraOptions()}
		// debug-events needs the version unless overridden; fail loudly then
		rep.DebugEvents, err = r.DebugEventsInvocation(ctx)
		if err != nil {
			return err
		}
		rep.ListDevices = r.ListDevicesCommand(ctx)
		if probe, err := r.VersionProbeCommand(); err == nil {
			rep.Probe = probe
			if v, err := r.Version(ctx); err == nil {
				rep.Version = v.String()
			}
		}

		if resolveJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}
		ver := rep.Version
		if ver == "" {
			ver = "?"
		}
		fmt.Printf("libinput version: %s\n", ver)
		if rep.Probe != "" {
			fmt.Printf("version probe:    %s\n", rep.Probe)
		}
		fmt.Printf("list-devices:     %s\n", rep.ListDevices)
		fmt.Printf("debug-events:     %s\n", rep.DebugEvents)
		return nil
	},
}
