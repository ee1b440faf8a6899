package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const (
	escClear      = "\033[H\033[2J"
	escHideCursor = "\033[?25l"
	escShowCursor = "\033[?25h"
)

// ChunkWriter queues one frame of terminal output and sends it in
// maxChunkSize pieces on Flush. Cursor positions are 1-based and shifted
// by the writer's offset, which centers the arena in a wider terminal.
type ChunkWriter struct {
	frame  strings.Builder
	out    *bufio.Writer
	digits [20]byte
	offCol int
	offRow int
}

// NewChunkWriter returns a writer to w with the given cursor offset.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		out:    bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset changes the cursor offset after a resize.
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// MoveCursor queues a cursor move to (col, row).
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.frame.WriteString("\033[")
	cw.frame.Write(strconv.AppendInt(cw.digits[:0], int64(row+cw.offRow), 10))
	cw.frame.WriteByte(';')
	cw.frame.Write(strconv.AppendInt(cw.digits[:0], int64(col+cw.offCol), 10))
	cw.frame.WriteByte('H')
}

// Write queues p. Canvas.Render writes through it.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.frame.Write(p)
}

var _ io.Writer = (*ChunkWriter)(nil)

// WriteString queues s at the current cursor.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame.WriteString(s)
}

// WriteAt queues s starting at (col, row).
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.frame.WriteString(s)
}

// WriteLine queues s at the start of row and pads it with spaces to width
// visible cells, so a shorter line fully replaces a longer one. Styled
// text is measured without its escape sequences.
func (cw *ChunkWriter) WriteLine(row, width int, s string) {
	cw.WriteAt(1, row, s)
	if pad := width - lipgloss.Width(s); pad > 0 {
		cw.frame.WriteString(strings.Repeat(" ", pad))
	}
}

// WriteCentered queues lines one per row from top, each centered on
// column centerX. Empty lines only advance the row.
func (cw *ChunkWriter) WriteCentered(centerX, top int, lines ...string) {
	for i, line := range lines {
		if line != "" {
			cw.WriteAt(centerX-lipgloss.Width(line)/2, top+i, line)
		}
	}
}

// Clear queues a full screen clear.
func (cw *ChunkWriter) Clear() {
	cw.frame.WriteString(escClear)
}

// Flush sends the queued frame and empties the queue.
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

// DefaultTermSizeFunc reads the size of the process's stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears w immediately.
func ClearScreen(w io.Writer) {
	io.WriteString(w, escClear)
}

// HideCursor hides the cursor on w.
func HideCursor(w io.Writer) {
	io.WriteString(w, escHideCursor)
}

// ShowCursor shows the cursor on w.
func ShowCursor(w io.Writer) {
	io.WriteString(w, escShowCursor)
}
