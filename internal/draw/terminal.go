package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// ChunkWriter collects one frame of terminal output and hands it to the
// underlying writer in bounded pieces on Flush. Cursor moves are relative to
// an offset so a centered play area can address its own cells from (1, 1).
type ChunkWriter struct {
	frame  strings.Builder
	out    *bufio.Writer
	digits [20]byte
	col    int
	row    int
}

// NewChunkWriter returns a ChunkWriter over w whose cursor moves are shifted
// by the given offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{out: bufio.NewWriterSize(w, 8192), col: offsetCol, row: offsetRow}
}

// SetOffset changes the shift applied to later cursor moves.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.col, cw.row = offsetCol, offsetRow
}

func (cw *ChunkWriter) moveTo(col, row int) {
	cw.frame.WriteString("\033[")
	cw.frame.Write(strconv.AppendInt(cw.digits[:0], int64(row+cw.row), 10))
	cw.frame.WriteByte(';')
	cw.frame.Write(strconv.AppendInt(cw.digits[:0], int64(col+cw.col), 10))
	cw.frame.WriteByte('H')
}

func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.frame.Write(p)
}

// WriteString appends raw output.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame.WriteString(s)
}

// WriteAt places s at a 1-based cell relative to the offset.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.moveTo(col, row)
	cw.frame.WriteString(s)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush sends the collected frame and starts a new one.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame.String()
	cw.frame.Reset()
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.out.WriteString(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return cw.out.Flush()
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc measures the process's stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen erases the display and homes the cursor.
func ClearScreen(w io.Writer) { io.WriteString(w, "\033[H\033[2J") }

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) { io.WriteString(w, "\033[?25l") }

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) { io.WriteString(w, "\033[?25h") }

// EnterAltScreen switches to the alternate screen buffer.
func EnterAltScreen(w io.Writer) { io.WriteString(w, "\033[?1049h") }

// ExitAltScreen restores the main screen buffer.
func ExitAltScreen(w io.Writer) { io.WriteString(w, "\033[?1049l") }

// FitArea returns the largest render area inside the terminal that keeps the
// logical aspect ratio, capped at maxWidth x maxHeight (0 means no cap), and
// the offsets that center it. A cell is one pixel wide and two pixels tall.
func FitArea(termWidth, termHeight, maxWidth, maxHeight int, logicalWidth, logicalHeight float64) (width, height, offsetCol, offsetRow int) {
	width, height = termWidth, termHeight
	if maxWidth > 0 && width > maxWidth {
		width = maxWidth
	}
	if maxHeight > 0 && height > maxHeight {
		height = maxHeight
	}
	if logicalWidth > 0 && logicalHeight > 0 {
		aspect := logicalWidth / logicalHeight
		if w := int(float64(height*2) * aspect); w < width {
			width = w
		} else if h := int(float64(width) / aspect / 2); h < height {
			height = h
		}
	}
	width = max(width, 1)
	height = max(height, 1)
	offsetCol = max((termWidth-width)/2, 0)
	offsetRow = max((termHeight-height)/2, 0)
	return width, height, offsetCol, offsetRow
}
