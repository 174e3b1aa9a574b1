package config

import (
    "errors"
    "os"
    "path/filepath"
    "strings"
)

// Dir returns the inputctl config directory under the user config base.
// On Linux, this typically resolves to $XDG_CONFIG_HOME/inputctl.
// Falls back to HOME when UserConfigDir is unavailable.
func Dir() (string, error) {
    base, err := os.UserConfigDir()
    if err != nil || strings.TrimSpace(base) == "" {
        if home, herr := os.UserHomeDir(); herr == nil {
            base = home
        } else {
            return "", errors.New("cannot determine config directory")
        }
    }
    return filepath.Join(base, "inputctl"), nil
}

// DotDir returns ~/.inputctl, the primary location for config.json.
func DotDir() (string, error) {
    home, err := os.UserHomeDir()
    if err != nil || strings.TrimSpace(home) == "" {
        return "", errors.New("cannot determine home directory")
    }
    return filepath.Join(home, ".inputctl"), nil
}

// Path returns the config file path. ~/.inputctl/config.json wins; the OS
// config dir is only used when a file already exists there.
func Path() (string, error) {
    dot, err := DotDir()
    if err != nil {
        return "", err
    }
    p := filepath.Join(dot, "config.json")
    if fileExists(p) {
        return p, nil
    }
    if legacy, err := Dir(); err == nil {
        lp := filepath.Join(legacy, "config.json")
        if fileExists(lp) {
            return lp, nil
        }
    }
    return p, nil
}

func fileExists(p string) bool {
    st, err := os.Stat(p)
    return err == nil && !st.IsDir()
}
