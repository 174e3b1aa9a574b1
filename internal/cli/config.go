package cli

import (
    "encoding/json"
    "fmt"
    "os"
    "path/filepath"

    "github.com/spf13/cobra"

    cfg "inputctl/internal/config"
    "inputctl/internal/settings"
)

// wizard flag
var configWizard bool

func init() {
    rootCmd.AddCommand(configCmd)
    configCmd.AddCommand(configPathCmd, configShowCmd, configSchemaCmd)
    configCmd.Flags().BoolVarP(&configWizard, "wizard", "w", false, "edit config.json interactively")
}

var configCmd = &cobra.Command{
    Use:   "config",
    Short: "Create config.json and print its location",
    Long:  "Create ~/.inputctl/config.json with defaults when missing (existing files are normalized), then print its path.",
    RunE: func(cmd *cobra.Command, args []string) error {
        if configWizard {
            return settings.Run()
        }
        p, err := cfg.Path()
        if err != nil {
            return err
        }
        existed := fileExists(p)
        c, err := cfg.LoadFile(p)
        if err != nil {
            return err
        }
        if err := cfg.SaveFile(p, c); err != nil {
            return err
        }
        if existed {
            fmt.Printf("• config.json normalized: %s\n", p)
        } else {
            fmt.Printf("✓ config.json created: %s\n", p)
        }
        fmt.Printf("\nconfig dir: %s\n", filepath.Dir(p))
        return nil
    },
}

var configPathCmd = &cobra.Command{
    Use:   "path",
    Short: "Print the config file path",
    RunE: func(cmd *cobra.Command, args []string) error {
        p, err := cfg.Path()
        if err != nil {
            return err
        }
        fmt.Println(p)
        return nil
    },
}

var configShowCmd = &cobra.Command{
    Use:   "show",
    Short: "Print the effective configuration (file plus flags)",
    RunE: func(cmd *cobra.Command, args []string) error {
        c, err := loadConfig()
        if err != nil {
            return err
        }
        enc := json.NewEncoder(os.Stdout)
        enc.SetIndent("", "  ")
        return enc.Encode(c)
    },
}

var configSchemaCmd = &cobra.Command{
    Use:   "schema",
    Short: "Print the JSON Schema of config.json",
    RunE: func(cmd *cobra.Command, args []string) error {
        b, err := cfg.MarshalSchema(cfg.Schema())
        if err != nil {
            return err
        }
        fmt.Println(string(b))
        return nil
    },
}

func fileExists(path string) bool {
    if st, err := os.Stat(path); err == nil && !st.IsDir() {
        return true
    }
    return false
}
