package testutil

import (
	"path/filepath"
	"testing"
)

// IsolateHome points HOME and XDG_CONFIG_HOME at fresh temp dirs for the
// rest of the test and returns the HOME path. Not usable with t.Parallel.
func IsolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))
	return home
}
