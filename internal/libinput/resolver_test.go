package libinput

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestResolver(opts Options, sp *fakeSpawner) *Resolver {
	if opts.Logger == nil {
		opts.Logger = &recordingLogger{}
	}
	opts.Spawner = sp
	return NewResolver(opts)
}

func TestVersionProbeCommand_OverridesSkipPathSearch(t *testing.T) {
	searched := false
	r := newTestResolver(Options{
		ListDevicesCommand: "/opt/li/list",
		DebugEventsCommand: "/opt/li/debug",
		LookPath: func(string) (string, error) {
			searched = true
			return "", errors.New("unexpected")
		},
	}, &fakeSpawner{})

	got, err := r.VersionProbeCommand()
	if err != nil {
		t.Fatalf("VersionProbeCommand error: %v", err)
	}
	if got != "/opt/li/list --version" {
		t.Fatalf("probe = %q", got)
	}
	if searched {
		t.Fatalf("PATH was searched despite both overrides")
	}
}

func TestVersionProbeCommand_PrefersModernBinary(t *testing.T) {
	r := newTestResolver(Options{LookPath: lookPathFor("libinput", "libinput-list-devices")}, &fakeSpawner{})
	if got, _ := r.VersionProbeCommand(); got != "libinput --version" {
		t.Fatalf("probe = %q, want modern", got)
	}
	r = newTestResolver(Options{LookPath: lookPathFor("libinput-list-devices")}, &fakeSpawner{})
	if got, _ := r.VersionProbeCommand(); got != "libinput-list-devices --version" {
		t.Fatalf("probe = %q, want legacy", got)
	}
}

func TestVersionProbeCommand_MissingToolIsFatal(t *testing.T) {
	log := &recordingLogger{}
	sp := &fakeSpawner{}
	r := newTestResolver(Options{LookPath: lookPathFor(), Logger: log}, sp)

	got, err := r.VersionProbeCommand()
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected ErrToolNotFound, got %q, %v", got, err)
	}
	if got != "" {
		t.Fatalf("expected no guessed command, got %q", got)
	}
	if !log.has("error") {
		t.Fatalf("expected an error to be logged, got %v", log.msgs)
	}
	if _, err := r.DebugEventsCommand(context.Background()); !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("DebugEventsCommand should surface ErrToolNotFound, got %v", err)
	}
	if len(sp.commands()) != 0 {
		t.Fatalf("nothing should be spawned, got %v", sp.commands())
	}
}

func TestListDevicesCommand_NotFatalWhenToolMissing(t *testing.T) {
	r := newTestResolver(Options{LookPath: lookPathFor()}, &fakeSpawner{})
	if got := r.ListDevicesCommand(context.Background()); got != "libinput-list-devices" {
		t.Fatalf("list = %q", got)
	}
}

func TestDebugEventsCommand_ByVersion(t *testing.T) {
	cases := []struct {
		version string
		debug   string
		list    string
	}{
		{"1.25.0\n", "libinput debug-events", "libinput list-devices"},
		{"1.8\n", "libinput debug-events", "libinput list-devices"},
		{"1.6.3\n", "libinput-debug-events", "libinput-list-devices"},
	}
	for _, tc := range cases {
		sp := &fakeSpawner{scripts: map[string][]step{"libinput --version": {{text: tc.version}}}}
		r := newTestResolver(Options{LookPath: lookPathFor("libinput")}, sp)
		ctx := context.Background()

		got, err := r.DebugEventsCommand(ctx)
		if err != nil {
			t.Fatalf("%s: DebugEventsCommand error: %v", tc.version, err)
		}
		if got != tc.debug {
			t.Fatalf("%s: debug = %q, want %q", tc.version, got, tc.debug)
		}
		if got := r.ListDevicesCommand(ctx); got != tc.list {
			t.Fatalf("%s: list = %q, want %q", tc.version, got, tc.list)
		}
	}
}

func TestVersion_ProbedOnce(t *testing.T) {
	sp := &fakeSpawner{scripts: map[string][]step{"libinput --version": {{text: "1.22.1\n"}}}}
	r := newTestResolver(Options{LookPath: lookPathFor("libinput")}, sp)
	for i := 0; i < 3; i++ {
		v, err := r.Version(context.Background())
		if err != nil {
			t.Fatalf("Version error: %v", err)
		}
		if v.String() != "1.22.1" {
			t.Fatalf("version = %q", v)
		}
	}
	if n := len(sp.commands()); n != 1 {
		t.Fatalf("expected one probe spawn, got %d: %v", n, sp.commands())
	}
}

func TestDebugEventsCommand_OverrideSkipsProbe(t *testing.T) {
	sp := &fakeSpawner{}
	r := newTestResolver(Options{DebugEventsCommand: "my-debug", LookPath: lookPathFor()}, sp)
	got, err := r.DebugEventsCommand(context.Background())
	if err != nil || got != "my-debug" {
		t.Fatalf("debug = %q, %v", got, err)
	}
	if len(sp.commands()) != 0 {
		t.Fatalf("override should not probe, spawned %v", sp.commands())
	}
}

func TestDebugEventsInvocation_AppendsOptionsInOrder(t *testing.T) {
	r := newTestResolver(Options{
		DebugEventsCommand: "libinput debug-events",
		ExtraOptions:       []string{"--enable-tap", "--show-keycodes"},
	}, &fakeSpawner{})
	got, err := r.DebugEventsInvocation(context.Background())
	if err != nil {
		t.Fatalf("DebugEventsInvocation error: %v", err)
	}
	want := "stdbuf -oL libinput debug-events --enable-tap --show-keycodes"
	if got != want {
		t.Fatalf("invocation = %q, want %q", got, want)
	}
}

func TestVersion_CancelledCallerNotCached(t *testing.T) {
	sp := &fakeSpawner{scripts: map[string][]step{
		"libinput --version": {{wait: 50 * time.Millisecond, text: "1.25.0\n"}},
	}}
	r := newTestResolver(Options{LookPath: lookPathFor("libinput")}, sp)

	short, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := r.DebugEventsCommand(short); err == nil {
		t.Fatalf("expected the short-lived caller to fail")
	}

	got, err := r.DebugEventsCommand(context.Background())
	if err != nil {
		t.Fatalf("later caller should probe again, got %v", err)
	}
	if got != "libinput debug-events" {
		t.Fatalf("debug = %q", got)
	}
	if list := r.ListDevicesCommand(context.Background()); list != "libinput list-devices" {
		t.Fatalf("list = %q", list)
	}
	if n := len(sp.commands()); n != 2 {
		t.Fatalf("expected exactly one retry after the failed probe, spawned %v", sp.commands())
	}
}

func TestListDevicesCommand_TransientFailureKeepsModernForm(t *testing.T) {
	sp := &fakeSpawner{scripts: map[string][]step{
		"libinput --version": {{wait: time.Second, text: "1.25.0\n"}},
	}}
	r := newTestResolver(Options{LookPath: lookPathFor("libinput")}, sp)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if got := r.ListDevicesCommand(ctx); got != "libinput list-devices" {
		t.Fatalf("list = %q, want modern form when libinput is on PATH", got)
	}
}

func TestVersion_ToolNotFoundCached(t *testing.T) {
	lookups := 0
	r := newTestResolver(Options{LookPath: func(string) (string, error) {
		lookups++
		return "", errors.New("missing")
	}}, &fakeSpawner{})
	for i := 0; i < 3; i++ {
		if _, err := r.Version(context.Background()); !errors.Is(err, ErrToolNotFound) {
			t.Fatalf("expected ErrToolNotFound, got %v", err)
		}
	}
	if lookups != 2 {
		t.Fatalf("expected PATH searched once per binary, got %d lookups", lookups)
	}
}
