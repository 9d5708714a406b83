package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Cell is one terminal character cell of the canvas.
type Cell struct {
	Ch    rune  // Zero means empty
	Color Color // Foreground color
	Bold  bool
}

// Canvas is a terminal drawing buffer that implements Surface.
// Game objects draw in logical pixel coordinates which are scaled to
// terminal cells; a cell is covered by a shape when its center is.
type Canvas struct {
	termWidth  int    // Terminal columns used for rendering
	termHeight int    // Terminal rows used for rendering
	cells      []Cell // Flat slice: [row * termWidth + col]

	// Scaling from logical to cell coordinates
	logicalWidth  float64
	logicalHeight float64
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // termHeight / logicalHeight

	// Offset for centering the render area when terminal is larger than max resolution.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	images ImageSource

	renderBuf strings.Builder // Buffer for batching render output
	numBuf    [20]byte        // Scratch buffer for allocation-free integer formatting
}

// Compile-time check that Canvas implements Surface.
var _ Surface = (*Canvas)(nil)

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal cells.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64, images ImageSource) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
		images:        images,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight || c.cells == nil {
		c.cells = make([]Cell, termWidth*termHeight)
		c.termWidth = termWidth
		c.termHeight = termHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(termHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// TerminalWidth returns the terminal column count used for rendering.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the terminal row count used for rendering.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// CellAt returns the cell at the given 0-based column and row.
func (c *Canvas) CellAt(col, row int) Cell {
	if col < 0 || col >= c.termWidth || row < 0 || row >= c.termHeight {
		return Cell{}
	}
	return c.cells[row*c.termWidth+col]
}

// Clear resets all cells in the canvas.
func (c *Canvas) Clear() {
	clear(c.cells)
}

func (c *Canvas) set(col, row int, cell Cell) {
	if col >= 0 && col < c.termWidth && row >= 0 && row < c.termHeight {
		c.cells[row*c.termWidth+col] = cell
	}
}

// span returns the first and last cell whose center lies in [from, from+length).
// Shapes thinner than a cell still cover the cell holding their midpoint.
func span(from, length, scale float64) (first, last int) {
	first = int(math.Ceil(from*scale - 0.5))
	last = int(math.Ceil((from+length)*scale-0.5)) - 1
	if last < first {
		first = int(math.Floor((from + length/2) * scale))
		last = first
	}
	return first, last
}

// ClearRect erases all cells covered by the rectangle.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	c0, c1 := span(x, w, c.scaleX)
	r0, r1 := span(y, h, c.scaleY)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c.set(col, row, Cell{})
		}
	}
}

// FillRect fills all cells covered by the rectangle with a solid block.
func (c *Canvas) FillRect(x, y, w, h float64, color Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c0, c1 := span(x, w, c.scaleX)
	r0, r1 := span(y, h, c.scaleY)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			c.set(col, row, Cell{Ch: BlockFull, Color: color})
		}
	}
}

// DrawImage stretches the named image's glyph art over the cells it covers.
func (c *Canvas) DrawImage(name string, x, y, rotation float64) error {
	img, err := c.images.Image(name)
	if err != nil {
		return err
	}
	if img.Width <= 0 || img.Height <= 0 {
		return nil
	}

	flipped := math.Cos(rotation) < 0
	left, top := x, y
	if flipped {
		left, top = x-img.Width, y-img.Height
	}

	c0, c1 := span(left, img.Width, c.scaleX)
	r0, r1 := span(top, img.Height, c.scaleY)
	for row := r0; row <= r1; row++ {
		v := ((float64(row)+0.5)/c.scaleY - top) / img.Height
		for col := c0; col <= c1; col++ {
			u := ((float64(col)+0.5)/c.scaleX - left) / img.Width
			var ch rune
			if flipped {
				ch = FlipGlyph(img.At(1-u, 1-v))
			} else {
				ch = img.At(u, v)
			}
			if ch == ' ' {
				continue // Transparent
			}
			c.set(col, row, Cell{Ch: ch, Color: img.Color})
		}
	}
	return nil
}

// DrawCenteredText writes bold text centered on the cell holding (x, y).
func (c *Canvas) DrawCenteredText(text string, x, y float64) {
	row := int(math.Floor(y * c.scaleY))
	col := int(math.Floor(x*c.scaleX)) - utf8.RuneCountInString(text)/2
	for _, r := range text {
		c.set(col, row, Cell{Ch: r, Color: textColor, Bold: true})
		col++
	}
}

var textColor = Color{R: 0xF4, G: 0xF1, B: 0xDE}

// maxChunkSize keeps each write under a typical 1500 byte MTU once SSH
// framing is added.
const maxChunkSize = 1400

// Render outputs every canvas row to the writer using 24-bit color escapes.
// Empty cells are written as spaces so the previous frame never lingers.
func (c *Canvas) Render(w io.Writer) error {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	for row := 0; row < c.termHeight; row++ {
		c.moveCursor(c.offsetCol+1, row+1+c.offsetRow)

		var current Cell
		styled := false
		for col := 0; col < c.termWidth; col++ {
			cell := c.cells[row*c.termWidth+col]
			if cell.Ch == 0 {
				if styled {
					c.renderBuf.WriteString("\033[0m")
					styled = false
				}
				c.renderBuf.WriteByte(' ')
				continue
			}
			if !styled || cell.Color != current.Color || cell.Bold != current.Bold {
				c.writeStyle(cell)
				current = cell
				styled = true
			}
			c.renderBuf.WriteRune(cell.Ch)
		}
		if styled {
			c.renderBuf.WriteString("\033[0m")
		}
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

func (c *Canvas) writeStyle(cell Cell) {
	c.renderBuf.WriteString("\033[0")
	if cell.Bold {
		c.renderBuf.WriteString(";1")
	}
	c.renderBuf.WriteString(";38;2;")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(cell.Color.R), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(cell.Color.G), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(cell.Color.B), 10))
	c.renderBuf.WriteByte('m')
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the max render resolution on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			MoveCursor(&buf, left, top)
			buf.WriteString("┌" + line + "┐")
			MoveCursor(&buf, left, bottom)
			buf.WriteString("└" + line + "┘")
		} else {
			MoveCursor(&buf, c.offsetCol+1, top)
			buf.WriteString(line)
			MoveCursor(&buf, c.offsetCol+1, bottom)
			buf.WriteString(line)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row < c.offsetRow+c.termHeight+1; row++ {
			MoveCursor(&buf, left, row)
			buf.WriteString("│")
			MoveCursor(&buf, right, row)
			buf.WriteString("│")
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}
