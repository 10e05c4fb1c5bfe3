// Package render draws game snapshots to an ANSI terminal.
package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/tomz197/novasiege/internal/draw"
	"github.com/tomz197/novasiege/internal/game"
	"github.com/tomz197/novasiege/internal/object"
)

// Options configures a Terminal. Zero values pick defaults.
type Options struct {
	Size      draw.TermSizeFunc
	MaxWidth  int // columns, 0 for no cap
	MaxHeight int // rows, 0 for no cap
	Profile   termenv.Profile
}

// Terminal renders snapshots as half-block graphics with a text HUD.
type Terminal struct {
	w       io.Writer
	cw      *draw.ChunkWriter
	canvas  *draw.Canvas
	size    draw.TermSizeFunc
	maxW    int
	maxH    int
	styles  styles
	profile termenv.Profile

	field   object.Field
	termW   int
	termH   int
	started bool
}

// NewTerminal creates a renderer writing to w.
func NewTerminal(w io.Writer, opts Options) *Terminal {
	size := opts.Size
	if size == nil {
		size = draw.DefaultTermSizeFunc
	}

	lr := lipgloss.NewRenderer(w)
	lr.SetColorProfile(opts.Profile)

	canvas := draw.NewCanvas(1, 1)
	canvas.SetProfile(opts.Profile)

	return &Terminal{
		w:       w,
		cw:      draw.NewChunkWriter(w, 0, 0),
		canvas:  canvas,
		size:    size,
		maxW:    opts.MaxWidth,
		maxH:    opts.MaxHeight,
		styles:  newStyles(lr),
		profile: opts.Profile,
	}
}

// Render draws one frame. Only the writer's error is returned; a failing
// size query keeps the previous layout.
func (t *Terminal) Render(s *game.Snapshot) error {
	if s == nil {
		return nil
	}
	if !t.started {
		draw.EnterAltScreen(t.cw)
		draw.HideCursor(t.cw)
		t.started = true
	}
	t.layout(s.Field)

	draw.ClearScreen(t.cw)

	t.canvas.Clear()
	drawScene(t.canvas, s)
	t.canvas.Render(t.cw)
	t.canvas.RenderBorder(t.cw)

	width, height := t.canvas.TerminalWidth(), t.canvas.TerminalHeight()
	if s.State.ShowsWorld() {
		for i, line := range t.hudLines(s) {
			t.cw.WriteAt(2, 1+i, line)
		}
		t.drawLabels(s)
	}
	if box := t.overlay(s); box != "" {
		writeBlock(t.cw, box, width, height)
	}

	return t.cw.Flush()
}

// Close restores the terminal.
func (t *Terminal) Close() error {
	if !t.started {
		return nil
	}
	t.cw.SetOffset(0, 0)
	t.cw.WriteString("\033[0m")
	draw.ClearScreen(t.cw)
	draw.ShowCursor(t.cw)
	draw.ExitAltScreen(t.cw)
	t.started = false
	return t.cw.Flush()
}

// layout resizes the canvas to the terminal, keeping the field's aspect.
func (t *Terminal) layout(field object.Field) {
	termW, termH, err := t.size()
	if err != nil || termW <= 0 || termH <= 0 {
		if t.termW == 0 {
			return
		}
		termW, termH = t.termW, t.termH
	}
	if field == t.field && termW == t.termW && termH == t.termH {
		return
	}

	w, h, offCol, offRow := draw.FitArea(termW, termH, t.maxW, t.maxH, field.Width, field.Height)
	if field != t.field {
		t.canvas = draw.NewScaledCanvas(w, h, field.Width, field.Height)
		t.canvas.SetProfile(t.profile)
	} else {
		t.canvas.Resize(w, h)
	}
	t.canvas.SetOffset(offCol, offRow)
	t.cw.SetOffset(offCol, offRow)
	t.field, t.termW, t.termH = field, termW, termH
}

// drawLabels prints power-up letters on top of their sprites.
func (t *Terminal) drawLabels(s *game.Snapshot) {
	for i := range s.PowerUps {
		p := &s.PowerUps[i]
		col, row := t.canvas.LogicalToTerminal(p.X, p.Y+p.Bob())
		style := t.styles.tints[object.PowerUpTint(p.Kind)]
		t.cw.WriteAt(col, row, style.Render(p.Kind.Label()))
	}
}
