// Package config loads and saves the inputctl JSON configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
)

const defaultLineTimeout = 300 * time.Millisecond

// Config is the on-disk shape of config.json. Empty fields mean "derive".
type Config struct {
	ListDevicesCommand string   `json:"listDevicesCommand,omitempty" jsonschema:"description=Overrides the list-devices command"`
	DebugEventsCommand string   `json:"debugEventsCommand,omitempty" jsonschema:"description=Overrides the debug-events command"`
	Options            []string `json:"options,omitempty" jsonschema:"description=Extra debug-events arguments in order"`
	LineTimeout        string   `json:"lineTimeout,omitempty" jsonschema:"description=Wait per debug-events line before a timeout marker,example=300ms"`
	LogLevel           string   `json:"logLevel,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{LineTimeout: defaultLineTimeout.String(), LogLevel: "info"}
}

// Timeout parses LineTimeout, falling back to the default when unset.
func (c Config) Timeout() (time.Duration, error) {
	s := strings.TrimSpace(c.LineTimeout)
	if s == "" {
		return defaultLineTimeout, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("lineTimeout %q: %w", c.LineTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("lineTimeout %q: must be positive", c.LineTimeout)
	}
	return d, nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c Config) Validate() error {
	if _, err := c.Timeout(); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logLevel %q: want debug, info, warn or error", c.LogLevel)
	}
	return nil
}

// Load reads the config file. A missing file yields Default without error.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(p)
}

// LoadFile reads the config at p, filling unset fields from Default.
func LoadFile(p string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", p, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", p, err)
	}
	return cfg, nil
}

// Save writes cfg to the config path, creating parent dirs.
func Save(cfg Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(p, cfg)
}

// SaveFile writes cfg as indented JSON to p.
func SaveFile(p string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(p, b, 0o644)
}

// Schema returns the JSON Schema describing config.json.
func Schema() *jsonschema.Schema {
	r := jsonschema.Reflector{ExpandedStruct: true}
	sch := r.Reflect(&Config{})
	sch.Title = "inputctl configuration"
	sch.Description = "Overrides and extra options for the libinput commands inputctl runs."
	return sch
}

// MarshalSchema indents the schema to JSON bytes.
func MarshalSchema(sch *jsonschema.Schema) ([]byte, error) {
	return json.MarshalIndent(sch, "", "  ")
}
