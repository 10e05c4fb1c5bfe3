// Package draw rasterizes shapes onto a half-block terminal canvas.
package draw

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Color is an ANSI 256 palette index. The zero value is an unset pixel, so
// palette entry 0 (black) cannot be drawn.
type Color uint8

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Shade characters from lightest to darkest.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	return Shades[int(intensity*float64(len(Shades)-1))]
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
