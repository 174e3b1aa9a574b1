package devices

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

const sample = `Device:           Power Button
Kernel:           /dev/input/event1
Group:            1
Seat:             seat0, default
Capabilities:     keyboard

Device:           SynPS/2 Synaptics TouchPad
Kernel:           /dev/input/event5
Capabilities:     pointer gesture
Tap-to-click:     disabled

Device:           AT Translated Set 2 keyboard
Kernel:           /dev/input/event3
Capabilities:     keyboard`

func parseSample(t *testing.T) []Device {
	t.Helper()
	var p Parser
	for _, l := range strings.Split(sample, "\n") {
		if err := p.Add(l); err != nil {
			t.Fatalf("Add error: %v", err)
		}
	}
	return p.Devices()
}

func TestParser(t *testing.T) {
	devs := parseSample(t)
	if len(devs) != 3 {
		t.Fatalf("expected 3 devices, got %d: %+v", len(devs), devs)
	}
	tp := devs[1]
	if tp.Name != "SynPS/2 Synaptics TouchPad" || tp.Kernel != "/dev/input/event5" || tp.Capabilities != "pointer gesture" {
		t.Fatalf("unexpected touchpad record: %+v", tp)
	}
	if tp.Fields["Tap-to-click"] != "disabled" {
		t.Fatalf("expected extra field kept: %+v", tp.Fields)
	}
	if strings.Join(devs[0].Order, ",") != "Kernel,Group,Seat,Capabilities" {
		t.Fatalf("field order = %v", devs[0].Order)
	}
	if devs[0].Fields["Seat"] != "seat0, default" {
		t.Fatalf("seat value mangled: %q", devs[0].Fields["Seat"])
	}
}

func TestFilter(t *testing.T) {
	devs := parseSample(t)
	got := Filter(devs, "touchpad")
	if len(got) != 1 || got[0].Kernel != "/dev/input/event5" {
		t.Fatalf("Filter(touchpad) = %+v", got)
	}
	if len(Filter(devs, "")) != 3 {
		t.Fatalf("empty pattern should keep all")
	}
	if len(Filter(devs, "zzzz")) != 0 {
		t.Fatalf("unexpected match for zzzz")
	}
}

func TestTable(t *testing.T) {
	out := Table(parseSample(t))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %q", out)
	}
	col := strings.Index(lines[0], "NAME")
	names := []string{"Power Button", "SynPS/2 Synaptics TouchPad", "AT Translated Set 2 keyboard"}
	for i, l := range lines[1:] {
		if len(l) < col || l[col:] != names[i] {
			t.Fatalf("name column misaligned in %q (col %d)", l, col)
		}
	}
}

func TestWatch_RescansOnChange(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var calls atomic.Int32
	errDone := errors.New("done")
	go func() {
		// wait for the initial scan before creating a node
		for calls.Load() == 0 {
			time.Sleep(10 * time.Millisecond)
		}
		_ = os.WriteFile(filepath.Join(dir, "event9"), nil, 0o644)
	}()
	err := Watch(ctx, dir, func() error {
		if calls.Add(1) == 2 {
			return errDone
		}
		return nil
	})
	if !errors.Is(err, errDone) {
		t.Fatalf("expected rescan after create, got %v (calls=%d)", err, calls.Load())
	}
}
