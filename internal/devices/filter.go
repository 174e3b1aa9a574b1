package devices

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
)

// Filter keeps devices whose name or kernel node fuzzily matches pattern,
// best match first. An empty pattern returns devs unchanged.
func Filter(devs []Device, pattern string) []Device {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return devs
	}
	keys := make([]string, len(devs))
	for i, d := range devs {
		keys[i] = d.Name + " " + d.Kernel
	}
	matches := fuzzy.Find(pattern, keys)
	out := make([]Device, 0, len(matches))
	for _, m := range matches {
		out = append(out, devs[m.Index])
	}
	return out
}

// Table renders devices as aligned columns: kernel node, capabilities, name.
func Table(devs []Device) string {
	rows := [][]string{{"KERNEL", "CAPABILITIES", "NAME"}}
	for _, d := range devs {
		rows = append(rows, []string{orDash(d.Kernel), orDash(d.Capabilities), d.Name})
	}
	widths := make([]int, 2)
	for _, r := range rows {
		for i := range widths {
			if w := runewidth.StringWidth(r[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}
	var b strings.Builder
	for _, r := range rows {
		for i := range widths {
			b.WriteString(runewidth.FillRight(r[i], widths[i]))
			b.WriteString("  ")
		}
		b.WriteString(r[2])
		b.WriteByte('\n')
	}
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
