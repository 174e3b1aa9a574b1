//go:build linux

package libinput

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"
)

// exited reports whether pid is gone or only a zombie awaiting its reaper.
func exited(pid int) bool {
	if err := syscall.Kill(pid, 0); err == syscall.ESRCH {
		return true
	}
	b, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/stat")
	if err != nil {
		return true
	}
	// state follows the parenthesised command name
	s := string(b)
	if i := strings.LastIndexByte(s, ')'); i >= 0 && i+2 < len(s) {
		return s[i+2] == 'Z'
	}
	return false
}

func TestShellSpawner_CloseKillsGrandchild(t *testing.T) {
	rc, err := ShellSpawner{}.Spawn(context.Background(), "sleep 30 & echo $!; wait")
	if err != nil {
		t.Fatalf("Spawn error: %v", err)
	}
	line, err := bufio.NewReader(rc).ReadString('\n')
	if err != nil {
		t.Fatalf("read pid: %v", err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		t.Fatalf("bad pid %q: %v", line, err)
	}
	if err := rc.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for !exited(pid) {
		if time.Now().After(deadline) {
			_ = syscall.Kill(pid, syscall.SIGKILL)
			t.Fatalf("grandchild %d outlived Close", pid)
		}
		time.Sleep(20 * time.Millisecond)
	}
}
