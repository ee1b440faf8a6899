package client

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/ballworld/internal/input"
	"github.com/tomz197/ballworld/internal/loop/server"
	"github.com/tomz197/ballworld/internal/physics"
	"github.com/tomz197/ballworld/internal/world"
)

func newTestClient(t *testing.T, opts ClientOptions, bodies ...world.BodySpec) (*Client, *server.Server, *bytes.Buffer) {
	t.Helper()
	w, err := world.New(world.Config{
		Container: physics.Box{MaxX: 640, MaxY: 400},
		Bodies:    bodies,
	})
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	srv := server.NewServer(w, nil)

	opts.TermSizeFunc = func() (int, int, error) { return 80, 24, nil }
	var out bytes.Buffer
	c := NewClient(srv, bufio.NewReader(strings.NewReader("")), &out, opts)
	return c, srv, &out
}

func TestDrawFrame(t *testing.T) {
	c, srv, out := newTestClient(t, ClientOptions{Username: "viewer"},
		world.BodySpec{X: 320, Y: 200, Radius: 20},
		world.BodySpec{X: 20, Y: 380, Radius: 15, Reserve: true},
	)
	srv.Tick()

	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Balls 1/2", "Speed 100%", "Viewers 1", "space launch"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.ContainsRune(got, '█') {
		t.Error("ball not rendered")
	}
}

func TestFitArena(t *testing.T) {
	c, srv, _ := newTestClient(t, ClientOptions{FitArena: true},
		world.BodySpec{X: 100, Y: 100, Radius: 5},
	)

	c.updateScreen()
	srv.Tick()

	// 80 columns by 22 arena rows at 5 units per sub-pixel.
	want := physics.Box{MaxX: 400, MaxY: 220}
	if got := srv.GetSnapshot().Container; got != want {
		t.Errorf("container = %+v, want %+v", got, want)
	}

	// Unchanged size sends nothing new.
	c.updateScreen()
	srv.SendCommand(0, server.SetBounds(0, 0, 500, 300))
	srv.Tick()
	if got := srv.GetSnapshot().Container.MaxX; got != 500 {
		t.Errorf("MaxX = %v, want 500 (no refit without a resize)", got)
	}
}

func TestCommandsFor(t *testing.T) {
	tests := []struct {
		name string
		in   input.Input
		want []server.Command
	}{
		{"idle", input.Input{}, nil},
		{"launch twice", input.Input{Launch: 2}, []server.Command{server.Launch(), server.Launch()}},
		{"speed merged", input.Input{Faster: 3, Slower: 1}, []server.Command{server.AdjustSpeedPercent(10)}},
		{"speed cancels", input.Input{Faster: 1, Slower: 1}, nil},
		{"double pause cancels", input.Input{Pause: 2}, nil},
		{"pause", input.Input{Pause: 1}, []server.Command{server.TogglePause()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := commandsFor(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d commands %+v, want %+v", len(got), got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("command %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestServerEvents(t *testing.T) {
	c, srv, _ := newTestClient(t, ClientOptions{}, world.BodySpec{X: 100, Y: 100, Radius: 5})
	srv.Tick()

	srv.SendCommand(c.handle.ID, server.Launch())
	srv.Tick()
	c.processServerEvents()
	if c.state.notice != "No reserve balls left" {
		t.Errorf("notice = %q", c.state.notice)
	}

	c.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()
	if c.state.Mode != ModeShutdown || c.state.shutdownTimer <= 0 {
		t.Errorf("state after shutdown event: mode %v, timer %v", c.state.Mode, c.state.shutdownTimer)
	}
}

func TestNoticeExpires(t *testing.T) {
	s := NewClientState()
	s.showNotice("hello")
	s.delta = time.Second
	s.tickNotice()
	if s.notice != "hello" {
		t.Fatal("notice cleared too early")
	}
	s.tickNotice()
	if s.notice != "" {
		t.Errorf("notice = %q, want cleared", s.notice)
	}
}

func TestRunQuitsWhenInputCloses(t *testing.T) {
	c, srv, out := newTestClient(t, ClientOptions{}, world.BodySpec{X: 100, Y: 100, Radius: 5})
	srv.Tick()

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after input closed")
	}

	srv.Tick()
	if got := srv.GetSnapshot().Viewers; got != 0 {
		t.Errorf("viewers = %d, want 0 after Run returned", got)
	}
	if !strings.HasPrefix(out.String(), "\033[?25l") {
		t.Error("cursor not hidden at start")
	}
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := clampTermSize(300, 100)
	if w != 200 || h != 60 || col != 50 || row != 20 {
		t.Errorf("clampTermSize(300, 100) = %d, %d, %d, %d", w, h, col, row)
	}
	w, h, col, row = clampTermSize(80, 24)
	if w != 80 || h != 24 || col != 0 || row != 0 {
		t.Errorf("clampTermSize(80, 24) = %d, %d, %d, %d", w, h, col, row)
	}
}
