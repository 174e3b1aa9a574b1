package system

import (
    "fmt"
    "io"
    "os"
    "strings"

    clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger for CLI output.
// It prints to stderr with timestamps enabled for better UX.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
    ReportTimestamp: true,
    Prefix:          "inputctl",
})

// SetLevel adjusts the shared logger, e.g. from --log-level.
func SetLevel(level string) error {
    lvl, err := ParseLevel(level)
    if err != nil {
        return err
    }
    Logger.SetLevel(lvl)
    return nil
}

// NewLogger builds a logger writing to w at the given level.
func NewLogger(w io.Writer, level string) (*clog.Logger, error) {
    lvl, err := ParseLevel(level)
    if err != nil {
        return nil, err
    }
    return clog.NewWithOptions(w, clog.Options{ReportTimestamp: true, Level: lvl}), nil
}

// ParseLevel accepts debug, info, warn and error; empty means info.
func ParseLevel(level string) (clog.Level, error) {
    switch strings.ToLower(strings.TrimSpace(level)) {
    case "", "info":
        return clog.InfoLevel, nil
    case "debug":
        return clog.DebugLevel, nil
    case "warn", "warning":
        return clog.WarnLevel, nil
    case "error":
        return clog.ErrorLevel, nil
    }
    return clog.InfoLevel, fmt.Errorf("unknown log level %q", level)
}
