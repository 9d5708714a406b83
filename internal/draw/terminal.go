package draw

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// Control sequences the frame loop needs beyond what Canvas.Render emits.
const (
	seqClearScreen = "\033[H\033[2J"
	seqClearLine   = "\033[2K"
	seqHideCursor  = "\033[?25l"
	seqShowCursor  = "\033[?25h"
)

// ChunkWriter collects one frame of terminal output and sends it on Flush
// in MTU sized writes, so an SSH client never sees half a frame.
type ChunkWriter struct {
	w     io.Writer
	frame []byte
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{w: w, frame: make([]byte, 0, 16<<10)}
}

// Open takes over the screen: the cursor is hidden and the terminal cleared.
func (cw *ChunkWriter) Open() {
	cw.frame = append(cw.frame, seqHideCursor...)
	cw.ClearScreen()
}

// Close hands the screen back to the shell and flushes.
func (cw *ChunkWriter) Close() error {
	cw.ClearScreen()
	cw.frame = append(cw.frame, seqShowCursor...)
	return cw.Flush()
}

// ClearScreen wipes the terminal and homes the cursor.
func (cw *ChunkWriter) ClearScreen() {
	cw.frame = append(cw.frame, seqClearScreen...)
}

// ClearRow blanks a 1-based terminal row.
func (cw *ChunkWriter) ClearRow(row int) {
	cw.MoveCursor(1, row)
	cw.frame = append(cw.frame, seqClearLine...)
}

// MoveCursor appends a cursor position sequence for 1-based col and row.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.frame = append(cw.frame, "\033["...)
	cw.frame = strconv.AppendInt(cw.frame, int64(row), 10)
	cw.frame = append(cw.frame, ';')
	cw.frame = strconv.AppendInt(cw.frame, int64(col), 10)
	cw.frame = append(cw.frame, 'H')
}

// Write buffers p for the current frame. It never fails.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	cw.frame = append(cw.frame, p...)
	return len(p), nil
}

// WriteString buffers s for the current frame.
func (cw *ChunkWriter) WriteString(s string) {
	cw.frame = append(cw.frame, s...)
}

// WriteAt buffers s at a 1-based terminal position.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.WriteString(s)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush sends the frame and starts a new one. The buffer is reset even when
// a write fails, the frame is lost either way.
func (cw *ChunkWriter) Flush() error {
	data := cw.frame
	cw.frame = cw.frame[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := cw.w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc reports the terminal size in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the local terminal on stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
