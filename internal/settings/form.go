// Package settings hosts the interactive editor for config.json.
package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	cfg "inputctl/internal/config"
)

// KnownOptions are the debug-events flags offered in the wizard, in the
// order they are appended when selected.
var KnownOptions = []string{
	"--verbose",
	"--show-keycodes",
	"--enable-tap",
	"--disable-tap",
	"--enable-natural-scrolling",
	"--disable-natural-scrolling",
	"--enable-dwt",
	"--disable-dwt",
	"--grab",
}

// Run launches the settings form, preselecting values from config.json,
// and saves the result on submit.
func Run() error {
	current, err := cfg.Load()
	if err != nil {
		return err
	}
	known, extra := SplitOptions(current.Options)
	selected := known
	extraText := strings.Join(extra, " ")
	listCmd := current.ListDevicesCommand
	debugCmd := current.DebugEventsCommand
	timeout := current.LineTimeout

	// Light theme tweaks inspired by freeze/interactive.go
	green := lipgloss.Color("#03BF87")
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Blurred.Title = theme.Blurred.Title.Width(22).Foreground(lipgloss.Color("7"))
	theme.Focused.Title = theme.Focused.Title.Width(22).Foreground(green).Bold(true)
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)

	opts := make([]huh.Option[string], 0, len(KnownOptions))
	for _, o := range KnownOptions {
		opts = append(opts, huh.NewOption(o, o))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Settings").Description("Options and overrides for the libinput commands inputctl runs"),
			huh.NewMultiSelect[string]().
				Title("debug-events options").
				Options(opts...).
				Height(len(opts)).
				Value(&selected),
			huh.NewInput().
				Title("Extra arguments").
				Placeholder("--device /dev/input/event3").
				Value(&extraText),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("list-devices override").
				Placeholder("derived from libinput version").
				Value(&listCmd),
			huh.NewInput().
				Title("debug-events override").
				Placeholder("derived from libinput version").
				Value(&debugCmd),
			huh.NewInput().
				Title("Line timeout").
				Placeholder("300ms").
				Validate(validateTimeout).
				Value(&timeout),
		),
	).WithTheme(theme).WithWidth(72)

	if err := form.Run(); err != nil {
		return err // form canceled or failed
	}

	current.Options = MergeOptions(selected, strings.Fields(extraText))
	current.ListDevicesCommand = strings.TrimSpace(listCmd)
	current.DebugEventsCommand = strings.TrimSpace(debugCmd)
	current.LineTimeout = strings.TrimSpace(timeout)
	if err := cfg.Save(current); err != nil {
		return err
	}
	p, _ := cfg.Path()
	fmt.Printf("\n✓ saved %s (%d options)\n\n", p, len(current.Options))
	return nil
}

// SplitOptions separates KnownOptions from free-form tokens, keeping the
// relative order of each.
func SplitOptions(options []string) (known, extra []string) {
	for _, o := range options {
		if isKnown(o) {
			known = append(known, o)
		} else {
			extra = append(extra, o)
		}
	}
	return known, extra
}

// MergeOptions orders selected flags as in KnownOptions, then appends extra
// tokens verbatim.
func MergeOptions(selected, extra []string) []string {
	picked := map[string]bool{}
	for _, s := range selected {
		picked[s] = true
	}
	out := make([]string, 0, len(selected)+len(extra))
	for _, o := range KnownOptions {
		if picked[o] {
			out = append(out, o)
		}
	}
	return append(out, extra...)
}

func isKnown(o string) bool {
	for _, k := range KnownOptions {
		if k == o {
			return true
		}
	}
	return false
}

func validateTimeout(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("not a duration: %q", s)
	}
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}
