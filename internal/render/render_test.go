package render

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"

	"github.com/tomz197/novasiege/internal/game"
	"github.com/tomz197/novasiege/internal/input"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func newGame(t *testing.T) *game.Game {
	t.Helper()
	g, err := game.New(game.Options{Rand: rand.New(rand.NewPCG(3, 5))})
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	return g
}

func newTerminal(buf *bytes.Buffer) *Terminal {
	return NewTerminal(buf, Options{Size: fixedSize(80, 40), Profile: termenv.Ascii})
}

func TestRenderMenu(t *testing.T) {
	var buf bytes.Buffer
	r := newTerminal(&buf)

	if err := r.Render(newGame(t).Snapshot()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"\033[?1049h", "\033[?25l", "N O V A   S I E G E", "press SPACE to start", "HIGH SCORE"} {
		if !strings.Contains(out, want) {
			t.Errorf("menu frame missing %q", want)
		}
	}
	if strings.Contains(out, "SCORE 000000") {
		t.Error("HUD drawn in menu")
	}
}

func TestRenderPlayingHUD(t *testing.T) {
	var buf bytes.Buffer
	r := newTerminal(&buf)
	g := newGame(t)
	g.Tick(time.Second/60, input.Actions{Confirm: true})

	if err := r.Render(g.Snapshot()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"SCORE 000000", "HP ", "PULSE "} {
		if !strings.Contains(out, want) {
			t.Errorf("playing frame missing %q", want)
		}
	}
	if !strings.ContainsAny(out, "▀▄█") {
		t.Error("no canvas pixels in playing frame")
	}
	if strings.Contains(out, "press SPACE") {
		t.Error("menu overlay drawn while playing")
	}
}

func TestRenderPausedOverlay(t *testing.T) {
	var buf bytes.Buffer
	r := newTerminal(&buf)
	g := newGame(t)
	g.Tick(time.Second/60, input.Actions{Confirm: true})
	g.Tick(time.Second/60, input.Actions{Pause: true})

	if err := r.Render(g.Snapshot()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "PAUSED") {
		t.Error("pause overlay missing")
	}
}

func TestRenderKeepsLayoutWhenSizeFails(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	r := NewTerminal(&buf, Options{
		Profile: termenv.Ascii,
		Size: func() (int, int, error) {
			calls++
			if calls > 1 {
				return 0, 0, errors.New("no tty")
			}
			return 60, 30, nil
		},
	})
	g := newGame(t)

	if err := r.Render(g.Snapshot()); err != nil {
		t.Fatal(err)
	}
	w, h := r.canvas.TerminalWidth(), r.canvas.TerminalHeight()
	if err := r.Render(g.Snapshot()); err != nil {
		t.Fatal(err)
	}
	if r.canvas.TerminalWidth() != w || r.canvas.TerminalHeight() != h {
		t.Errorf("canvas resized to %dx%d after size error", r.canvas.TerminalWidth(), r.canvas.TerminalHeight())
	}
}

func TestRenderNilSnapshot(t *testing.T) {
	var buf bytes.Buffer
	if err := newTerminal(&buf).Render(nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for nil snapshot", buf.Len())
	}
}

func TestCloseRestoresTerminal(t *testing.T) {
	var buf bytes.Buffer
	r := newTerminal(&buf)
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Error("Close before first frame wrote output")
	}

	if err := r.Render(newGame(t).Snapshot()); err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"\033[?25h", "\033[?1049l"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Close output missing %q", want)
		}
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		ratio float64
		want  string
	}{
		{0, "░░░░"},
		{0.5, "██░░"},
		{1, "████"},
		{2, "████"},
		{-1, "░░░░"},
	}
	for _, tt := range tests {
		if got := bar(tt.ratio, 4); got != tt.want {
			t.Errorf("bar(%v) = %q, want %q", tt.ratio, got, tt.want)
		}
	}
}
