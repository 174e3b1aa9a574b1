package ui

import (
	"fmt"
	"strings"
	"time"

	xansi "github.com/charmbracelet/x/ansi"
)

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  starting " + m.command + " …\n"
	}
	b := &strings.Builder{}
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.vp.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m model) renderHeader() string {
	title := AccentBold().Render("inputctl watch")
	cmd := BorderStyle().Foreground(Vitesse.Secondary).Render(m.command)
	line := title + "  " + cmd
	line = xansi.Truncate(line, m.width, "…")
	rule := BorderStyle().Foreground(Vitesse.Muted).Render(strings.Repeat("─", maxInt(0, m.width)))
	return line + "\n" + rule
}

func (m model) renderStatusBar() string {
	left := fmt.Sprintf(" %d events · %d timeouts", m.events, m.timeouts)
	switch {
	case m.err != nil:
		left = ChipStyle(Vitesse.Red).Render("stream ended") + " " + m.err.Error()
	case m.done:
		left = ChipStyle(Vitesse.Yellow).Render("stream ended") + left
	case m.idle > 0:
		left += "  " + m.spin.View() + IdleStyle().Render(" idle "+idleFor(m.idle, m.lineTimeout))
	}
	if m.paused {
		left += "  " + ChipStyle(Vitesse.Yellow).Render("paused")
	}
	right := "q quit · p pause · c clear · G follow "
	gap := m.width - xansi.StringWidth(left) - xansi.StringWidth(right)
	if gap < 1 {
		return StatusBarBase().Render(xansi.Truncate(left, m.width, ""))
	}
	return StatusBarBase().Render(left + strings.Repeat(" ", gap) + right)
}

// idleFor approximates how long the device has been quiet.
func idleFor(n int, d time.Duration) string {
	return (time.Duration(n) * d).Truncate(100 * time.Millisecond).String()
}

// renderLine strips control sequences from tool output and truncates it to
// the terminal width. Lines are shown as opaque text.
func renderLine(line string, width int) string {
	plain := xansi.Strip(line)
	if width > 0 && xansi.StringWidth(plain) > width {
		plain = xansi.Truncate(plain, width, "…")
	}
	return LineStyle().Render(plain)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
