package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestSetScalesLogicalCoordinates(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)

	c.Set(50, 50, 9)
	if got := c.At(5, 5); got != 9 {
		t.Errorf("At(5, 5) = %d, want 9", got)
	}

	c.Set(-10, 50, 9)
	c.Set(1000, 50, 9)
	c.Clear()
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c.At(x, y) != 0 {
				t.Fatalf("pixel (%d, %d) set after Clear", x, y)
			}
		}
	}
}

func TestDrawCircleFilled(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawCircle(Point{X: 10, Y: 10}, 4, true, 3)

	if c.At(10, 10) != 3 {
		t.Error("center not filled")
	}
	if c.At(14, 10) != 3 || c.At(6, 10) != 3 {
		t.Error("edge on the horizontal axis not filled")
	}
	if c.At(14, 14) != 0 {
		t.Error("corner of bounding box filled")
	}
}

func TestFitAreaKeepsAspect(t *testing.T) {
	tests := []struct {
		name                     string
		termW, termH             int
		maxW, maxH               int
		wantW, wantH, offC, offR int
	}{
		{"wide terminal", 200, 60, 0, 0, 60, 60, 70, 0},
		{"tall terminal", 40, 100, 0, 0, 40, 40, 0, 30},
		{"capped", 300, 100, 0, 40, 40, 40, 130, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, oc, or := FitArea(tt.termW, tt.termH, tt.maxW, tt.maxH, 400, 800)
			if w != tt.wantW || h != tt.wantH || oc != tt.offC || or != tt.offR {
				t.Errorf("FitArea = %d,%d,%d,%d want %d,%d,%d,%d", w, h, oc, or, tt.wantW, tt.wantH, tt.offC, tt.offR)
			}
		})
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	c := NewCanvas(3, 1)
	c.setPixel(0, 0, 10) // upper only
	c.setPixel(1, 1, 10) // lower only
	c.setPixel(2, 0, 10)
	c.setPixel(2, 1, 10) // full

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()

	for _, want := range []string{"\033[1;1H", "▀", "\033[1;2H", "▄", "\033[1;3H", "█", "38;5;10"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestRenderAsciiProfileDropsColor(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetProfile(termenv.Ascii)
	c.setPixel(0, 0, 10)
	c.setPixel(0, 1, 12)

	var buf bytes.Buffer
	c.Render(&buf)
	if strings.Contains(buf.String(), "38;5") || strings.Contains(buf.String(), "48;5") {
		t.Errorf("color sequence in ascii output: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "▀") {
		t.Errorf("missing half block: %q", buf.String())
	}
}

func TestRenderOffset(t *testing.T) {
	c := NewCanvas(2, 2)
	c.SetOffset(4, 3)
	c.setPixel(1, 2, 10)

	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.Contains(buf.String(), "\033[5;6H") {
		t.Errorf("offset not applied: %q", buf.String())
	}
}
