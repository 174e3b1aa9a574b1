package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerHeight = 2
	footerHeight = 1
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "p", " ":
			m.paused = !m.paused
			return m, nil
		case "c":
			m.lines = nil
			m.refresh()
			return m, nil
		case "G", "end":
			m.follow = true
			m.vp.GotoBottom()
			return m, nil
		}
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		m.follow = m.vp.AtBottom()
		return m, cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := msg.Height - headerHeight - footerHeight
		if h < 1 {
			h = 1
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, h)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = h
		}
		m.refresh()
		return m, nil
	case eventMsg:
		m.events++
		m.idle = 0
		if !m.paused {
			m.lines = append(m.lines, string(msg))
			if over := len(m.lines) - maxLines; over > 0 {
				m.lines = append([]string(nil), m.lines[over:]...)
			}
			m.refresh()
		}
		return m, waitForEvent(m.sub)
	case idleMsg:
		m.timeouts++
		m.idle++
		return m, waitForEvent(m.sub)
	case streamEndMsg:
		m.done = true
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

// refresh re-renders the scrollback into the viewport.
func (m *model) refresh() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for i, l := range m.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(renderLine(l, m.width))
	}
	m.vp.SetContent(b.String())
	if m.follow {
		m.vp.GotoBottom()
	}
}
