package draw

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
)

// maxChunkSize bounds a single write so frames stream smoothly over SSH.
const maxChunkSize = 1400

// Canvas is a color pixel buffer rendered with half-block characters, so
// every terminal cell holds two vertically stacked pixels. Drawing calls take
// logical coordinates, which are scaled onto the pixel grid.
type Canvas struct {
	cols   int
	rows   int
	height int     // pixel rows, rows*2
	pixels []Color // row-major, 0 means unset

	logicalW float64
	logicalH float64
	scaleX   float64
	scaleY   float64

	// 0-based terminal position of the top-left cell.
	offsetCol int
	offsetRow int

	out      strings.Builder
	scaled   []Point
	crossing []float64
	scratch  []Point

	profile termenv.Profile
	fgSeq   [256]string
	bgSeq   [256]string
}

// NewCanvas creates an unscaled canvas: one logical unit per pixel.
func NewCanvas(cols, rows int) *Canvas {
	return NewScaledCanvas(cols, rows, float64(cols), float64(rows*2))
}

// NewScaledCanvas creates a canvas of cols x rows cells that maps a
// logicalW x logicalH space onto its pixels.
func NewScaledCanvas(cols, rows int, logicalW, logicalH float64) *Canvas {
	c := &Canvas{
		logicalW: logicalW,
		logicalH: logicalH,
		profile:  termenv.ANSI256,
	}
	c.Resize(cols, rows)
	return c
}

// Resize changes the cell dimensions and rescales. Contents are discarded
// when the size changes.
func (c *Canvas) Resize(cols, rows int) {
	if cols != c.cols || rows != c.rows {
		c.cols, c.rows, c.height = cols, rows, rows*2
		c.pixels = make([]Color, c.height*cols)
	}
	c.scaleX = float64(cols) / c.logicalW
	c.scaleY = float64(c.height) / c.logicalH
}

// SetProfile selects the color depth used by Render. Colors are degraded to
// the nearest entry the profile supports; termenv.Ascii drops them.
func (c *Canvas) SetProfile(p termenv.Profile) {
	if p == c.profile {
		return
	}
	c.profile = p
	c.fgSeq = [256]string{}
	c.bgSeq = [256]string{}
}

// SetOffset moves the canvas so its first cell sits at (col+1, row+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// Clear unsets every pixel.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.cols && y >= 0 && y < c.height {
		c.pixels[y*c.cols+x] = col
	}
}

// At returns the color of a pixel, 0 if unset or out of range.
func (c *Canvas) At(x, y int) Color {
	if x >= 0 && x < c.cols && y >= 0 && y < c.height {
		return c.pixels[y*c.cols+x]
	}
	return 0
}

func (c *Canvas) toPixel(x, y float64) (int, int) {
	return int(math.Round(x * c.scaleX)), int(math.Round(y * c.scaleY))
}

// Set colors the pixel under a logical point.
func (c *Canvas) Set(x, y float64, col Color) {
	px, py := c.toPixel(x, y)
	c.setPixel(px, py, col)
}

// DrawLine rasterizes a segment with Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point, col Color) {
	x, y := c.toPixel(p1.X, p1.Y)
	x2, y2 := c.toPixel(p2.X, p2.Y)

	dx, dy := abs(x2-x), abs(y2-y)
	sx, sy := 1, 1
	if x > x2 {
		sx = -1
	}
	if y > y2 {
		sy = -1
	}

	e := dx - dy
	for {
		c.setPixel(x, y, col)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * e
		if e2 > -dy {
			e -= dy
			x += sx
		}
		if e2 < dx {
			e += dx
			y += sy
		}
	}
}

// DrawPolygon outlines a closed polygon and optionally fills it.
func (c *Canvas) DrawPolygon(points []Point, filled bool, col Color) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points, col)
	}
	c.outline(points, col)
}

func (c *Canvas) outline(points []Point, col Color) {
	for i := range points {
		c.DrawLine(points[i], points[(i+1)%len(points)], col)
	}
}

// fillPolygon scanline-fills in pixel space, sampling each row at its center.
func (c *Canvas) fillPolygon(points []Point, col Color) {
	if cap(c.scaled) < len(points) {
		c.scaled = make([]Point, len(points))
	}
	pts := c.scaled[:len(points)]
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		pts[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		minY = min(minY, pts[i].Y)
		maxY = max(maxY, pts[i].Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scan := float64(y) + 0.5
		xs := c.crossing[:0]
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if (a.Y <= scan) != (b.Y <= scan) {
				xs = append(xs, a.X+(scan-a.Y)/(b.Y-a.Y)*(b.X-a.X))
			}
		}
		c.crossing = xs

		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y, col)
			}
		}
	}
}

// DrawCircle draws a circle of logical radius r. The axes may scale
// differently, so it is an ellipse in pixel space.
func (c *Canvas) DrawCircle(center Point, r float64, filled bool, col Color) {
	cx, cy := center.X*c.scaleX, center.Y*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY
	if rx < 0.5 && ry < 0.5 {
		c.setPixel(int(math.Round(cx)), int(math.Round(cy)), col)
		return
	}

	if !filled {
		const segments = 16
		pts := c.BorrowPoints(segments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / segments
			pts[i] = Point{X: center.X + r*math.Cos(a), Y: center.Y + r*math.Sin(a)}
		}
		c.outline(pts, col)
		return
	}

	for y := int(math.Ceil(cy - ry)); y <= int(math.Floor(cy+ry)); y++ {
		dy := (float64(y) - cy) / ry
		half := rx * math.Sqrt(max(0, 1-dy*dy))
		for x := int(math.Ceil(cx - half)); x <= int(math.Floor(cx+half)); x++ {
			c.setPixel(x, y, col)
		}
	}
}

// FillRect fills an axis-aligned logical rectangle, at least one pixel.
func (c *Canvas) FillRect(x, y, w, h float64, col Color) {
	x0, y0 := c.toPixel(x, y)
	x1, y1 := c.toPixel(x+w, y+h)
	for py := y0; py < max(y1, y0+1); py++ {
		for px := x0; px < max(x1, x0+1); px++ {
			c.setPixel(px, py, col)
		}
	}
}

// Render writes the set cells as positioned half-block characters. A cell
// whose halves differ in color uses the upper half block with the lower
// color as background.
func (c *Canvas) Render(w io.Writer) {
	c.out.Reset()
	c.out.Grow(c.cols * c.rows * 20)

	styled := false
	for row := 0; row < c.rows; row++ {
		top := c.pixels[row*2*c.cols:][:c.cols]
		bottom := c.pixels[(row*2+1)*c.cols:][:c.cols]

		for col := range c.cols {
			t, b := top[col], bottom[col]
			if t == 0 && b == 0 {
				continue
			}

			fmt.Fprintf(&c.out, "\033[%d;%dH", row+1+c.offsetRow, col+1+c.offsetCol)
			if styled {
				c.out.WriteString(termenv.CSI + termenv.ResetSeq + "m")
			}

			ch := BlockUpperHalf
			switch {
			case t == b:
				ch = BlockFull
				styled = c.writeColor(t, false)
			case b == 0:
				styled = c.writeColor(t, false)
			case t == 0:
				ch = BlockLowerHalf
				styled = c.writeColor(b, false)
			default:
				styled = c.writeColor(t, false)
				styled = c.writeColor(b, true) || styled
			}
			c.out.WriteRune(ch)
		}
	}
	if styled {
		c.out.WriteString(termenv.CSI + termenv.ResetSeq + "m")
	}

	writeChunked(w, c.out.String())
}

func writeChunked(w io.Writer, data string) {
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		io.WriteString(w, data[:n])
		data = data[n:]
	}
}

// writeColor appends the SGR sequence for a palette entry and reports
// whether anything was written.
func (c *Canvas) writeColor(col Color, background bool) bool {
	cache := &c.fgSeq
	if background {
		cache = &c.bgSeq
	}
	seq := cache[col]
	if seq == "" {
		seq = "-"
		if s := c.profile.Convert(termenv.ANSI256Color(col)).Sequence(background); s != "" {
			seq = termenv.CSI + s + "m"
		}
		cache[col] = seq
	}
	if seq == "-" {
		return false
	}
	c.out.WriteString(seq)
	return true
}

// PaletteColor parses an ANSI 256 color string such as "212", the form
// lipgloss colors use. Anything else maps to white.
func PaletteColor(s string) Color {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 255 {
		return 15
	}
	return Color(n)
}

// RenderBorder frames the canvas when it has been offset inside a larger
// terminal: horizontal rules when there is room above and below, vertical
// rules when there is room at the sides, corners when both.
func (c *Canvas) RenderBorder(w io.Writer) {
	sides := c.offsetCol >= 1
	caps := c.offsetRow >= 1
	if !sides && !caps {
		return
	}

	left, right := c.offsetCol, c.offsetCol+c.cols+1
	top, bottom := c.offsetRow, c.offsetRow+c.rows+1
	rule := strings.Repeat("─", c.cols)

	var b strings.Builder
	if caps {
		if sides {
			fmt.Fprintf(&b, "\033[%d;%dH┌%s┐", top, left, rule)
			fmt.Fprintf(&b, "\033[%d;%dH└%s┘", bottom, left, rule)
		} else {
			fmt.Fprintf(&b, "\033[%d;%dH%s", top, left+1, rule)
			fmt.Fprintf(&b, "\033[%d;%dH%s", bottom, left+1, rule)
		}
	}
	if sides {
		for row := top + 1; row < bottom; row++ {
			fmt.Fprintf(&b, "\033[%d;%dH│\033[%d;%dH│", row, left, row, right)
		}
	}
	io.WriteString(w, b.String())
}

// TerminalWidth returns the canvas width in cells.
func (c *Canvas) TerminalWidth() int { return c.cols }

// TerminalHeight returns the canvas height in cells.
func (c *Canvas) TerminalHeight() int { return c.rows }

// LogicalToTerminal maps a logical point to its 1-based cell within the
// canvas, for text placed over drawn shapes.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px, py := c.toPixel(x, y)
	return px + 1, py/2 + 1
}

// BorrowPoints returns a scratch slice of n points, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.scratch) < n {
		c.scratch = make([]Point, n)
	}
	return c.scratch[:n]
}
