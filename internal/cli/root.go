package cli

import (
    "context"
    "fmt"
    "os"
    "strings"
    "time"

    "github.com/spf13/cobra"

    cfg "inputctl/internal/config"
    "inputctl/internal/libinput"
    "inputctl/internal/system"
)

// flag values shared by every subcommand; empty means "use config.json"
var (
    flagConfig   string
    flagListCmd  string
    flagEventCmd string
    flagOptions  []string
    flagTimeout  time.Duration
    flagLogLevel string
)

var rootCmd = &cobra.Command{
    Use:   "inputctl",
    Short: "inputctl – libinput device and event helper",
    Long:  "inputctl picks the right libinput command form for the installed version and streams list-devices and debug-events output.",
    PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
        if flagLogLevel != "" {
            return system.SetLevel(flagLogLevel)
        }
        return nil
    },
    SilenceUsage:  true,
    SilenceErrors: true,
}

func init() {
    pf := rootCmd.PersistentFlags()
    pf.StringVar(&flagConfig, "config", "", "config file (default ~/.inputctl/config.json)")
    pf.StringVar(&flagListCmd, "list-cmd", "", "override the list-devices command")
    pf.StringVar(&flagEventCmd, "events-cmd", "", "override the debug-events command")
    pf.StringArrayVarP(&flagOptions, "option", "O", nil, "extra debug-events argument (repeatable, order kept)")
    pf.DurationVar(&flagTimeout, "timeout", 0, "wait per debug-events line before emitting a timeout marker")
    pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
}

// Execute runs the CLI.
func Execute() {
    ctx := context.Background()
    if err := rootCmd.ExecuteContext(ctx); err != nil {
        fmt.Fprintln(os.Stderr, err)
        os.Exit(1)
    }
}

// loadConfig reads config.json (or --config) and layers flags on top.
func loadConfig() (cfg.Config, error) {
    var (
        c   cfg.Config
        err error
    )
    if strings.TrimSpace(flagConfig) != "" {
        c, err = cfg.LoadFile(flagConfig)
    } else {
        c, err = cfg.Load()
    }
    if err != nil {
        return cfg.Config{}, err
    }
    if flagListCmd != "" {
        c.ListDevicesCommand = flagListCmd
    }
    if flagEventCmd != "" {
        c.DebugEventsCommand = flagEventCmd
    }
    if len(flagOptions) > 0 {
        c.Options = append([]string(nil), flagOptions...)
    }
    if flagTimeout > 0 {
        c.LineTimeout = flagTimeout.String()
    }
    if flagLogLevel == "" && c.LogLevel != "" {
        if err := system.SetLevel(c.LogLevel); err != nil {
            return cfg.Config{}, err
        }
    }
    return c, nil
}

// newResolver builds the libinput resolver for the effective configuration.
func newResolver() (*libinput.Resolver, error) {
    c, err := loadConfig()
    if err != nil {
        return nil, err
    }
    return resolverFor(c)
}

func resolverFor(c cfg.Config) (*libinput.Resolver, error) {
    d, err := c.Timeout()
    if err != nil {
        return nil, err
    }
    return libinput.NewResolver(libinput.Options{
        ListDevicesCommand: c.ListDevicesCommand,
        DebugEventsCommand: c.DebugEventsCommand,
        ExtraOptions:       c.Options,
        LineTimeout:        d,
        Logger:             system.Logger,
    }), nil
}
