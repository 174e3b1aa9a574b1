package ui

// Bubble Tea messages

// eventMsg carries one debug-events line.
type eventMsg string

// idleMsg is delivered for every timeout marker from the stream.
type idleMsg struct{}

// streamEndMsg reports that the stream returned.
type streamEndMsg struct{ err error }
