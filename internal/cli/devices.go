package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"inputctl/internal/devices"
	"inputctl/internal/system"
)

var (
	devicesRaw    bool
	devicesJSON   bool
	devicesFilter string
	devicesWatch  bool
)

func init() {
	rootCmd.AddCommand(devicesCmd)
	f := devicesCmd.Flags()
	f.BoolVar(&devicesRaw, "raw", false, "print list-devices output unmodified")
	f.BoolVar(&devicesJSON, "json", false, "output parsed devices as JSON")
	f.StringVarP(&devicesFilter, "filter", "f", "", "fuzzy filter on device name or kernel node")
	f.BoolVarP(&devicesWatch, "watch", "w", false, "re-list whenever "+devices.InputDir+" changes")
}

var devicesCmd = &cobra.Command{
	Use:     "devices",
	Aliases: []string{"list-devices", "ls"},
	Short:   "List input devices known to libinput",
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := newResolver()
		if err != nil {
			return err
		}
		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		if devicesRaw {
			return r.StreamListDevices(ctx, func(line string) error {
				fmt.Println(line)
				return nil
			})
		}
		show := func() error {
			devs, err := devices.List(ctx, r)
			if err != nil {
				return err
			}
			devs = devices.Filter(devs, devicesFilter)
			if devicesJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(devs)
			}
			fmt.Print(devices.Table(devs))
			return nil
		}
		if !devicesWatch {
			return show()
		}
		system.Logger.Info("watching for device changes", "dir", devices.InputDir)
		err = devices.Watch(ctx, devices.InputDir, func() error {
			if !devicesJSON {
				fmt.Println()
			}
			return show()
		})
		if ctx.Err() != nil {
			return nil
		}
		return err
	},
}
