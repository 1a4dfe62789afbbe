package viz

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/voxdiff/internal/diffusion"
	"github.com/san-kum/voxdiff/internal/engine"
	"github.com/san-kum/voxdiff/internal/grid"
)

func newTestTerminal(input string) *Terminal {
	return NewTerminal(diffusion.DefaultRule(), "minimal",
		tea.WithInput(strings.NewReader(input)),
		tea.WithOutput(&bytes.Buffer{}),
		tea.WithoutSignalHandler(),
	)
}

func seededGrid(t *testing.T) *grid.State {
	t.Helper()
	g, _, err := grid.Initialize(grid.Dims{X: 7, Y: 7, Z: 7}, 5, 1134)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestTerminalQuitKeyStopsLoop(t *testing.T) {
	term := newTestTerminal("q")
	loop := engine.New(seededGrid(t), diffusion.DefaultRule(), term)
	loop.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	loop.AddObserver(term)

	cfg := engine.DefaultConfig()
	cfg.MaxFrames = 5000
	cfg.FrameDelay = time.Millisecond

	res, err := loop.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.Quit {
		t.Errorf("expected quit, got %+v", res)
	}
	if res.Frames >= cfg.MaxFrames {
		t.Errorf("loop ran to the frame cap (%d frames)", res.Frames)
	}
	if len(term.History().Samples()) != res.Ticks {
		t.Errorf("history has %d samples, want %d", len(term.History().Samples()), res.Ticks)
	}
}

func TestTerminalForwardsKeysToHandlers(t *testing.T) {
	term := newTestTerminal("xk")
	var got []rune
	term.OnKey('x', func() { got = append(got, 'x') })
	term.OnKey('k', func() { got = append(got, 'k') })

	g := seededGrid(t)
	if err := term.Open("keys", g.Snapshot()); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(5 * time.Second)
	for len(got) < 2 && time.Now().Before(deadline) {
		term.UpdateColors(g.Snapshot().Colors)
		if err := term.Poll(); err != nil {
			t.Fatalf("poll: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
	if string(got) != "xk" {
		t.Errorf("handlers saw %q, want %q", string(got), "xk")
	}
	if err := term.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestTerminalCtrlCInterrupts(t *testing.T) {
	term := newTestTerminal("\x03")
	if err := term.Open("ctrl-c", seededGrid(t).Snapshot()); err != nil {
		t.Fatal(err)
	}

	var err error
	deadline := time.Now().Add(5 * time.Second)
	for err == nil && time.Now().Before(deadline) {
		err = term.Poll()
		time.Sleep(time.Millisecond)
	}
	if !errors.Is(err, engine.ErrInterrupted) {
		t.Fatalf("poll = %v, want ErrInterrupted", err)
	}
	if err := term.Close(); err != nil {
		t.Errorf("close after interrupt: %v", err)
	}
}

func TestTerminalCtrlCEndsLoopCleanly(t *testing.T) {
	term := newTestTerminal("\x03")
	loop := engine.New(seededGrid(t), diffusion.DefaultRule(), term)
	loop.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	cfg := engine.DefaultConfig()
	cfg.MaxFrames = 5000
	cfg.FrameDelay = time.Millisecond

	res, err := loop.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !res.Quit {
		t.Errorf("expected quit, got %+v", res)
	}
}
