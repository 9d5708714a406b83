package loop

import (
	"fmt"
	"unicode/utf8"

	"github.com/tomz197/invaders/internal/draw"
)

const controlsHint = "A/D or arrows move, SPACE fire, Q quit"

// terminalView maps the logical playfield onto the terminal: a scaled canvas
// centered in the window with the controls hint underneath.
type terminalView struct {
	canvas     *draw.Canvas
	termWidth  int
	termHeight int
}

func newTerminalView(termWidth, termHeight int, images draw.ImageSource) *terminalView {
	s := &terminalView{
		canvas: draw.NewScaledCanvas(0, 0, PlayfieldWidth, PlayfieldHeight, images),
	}
	s.layout(termWidth, termHeight)
	return s
}

// layout sizes the canvas to the terminal, capped at the max render size,
// and centers it.
func (s *terminalView) layout(termWidth, termHeight int) {
	s.termWidth, s.termHeight = termWidth, termHeight

	width := min(termWidth, MaxTermWidth)
	height := min(termHeight-hintRows, MaxTermHeight)
	s.canvas.Resize(width, height)
	s.canvas.SetOffset(max(0, (termWidth-width)/2), max(0, (termHeight-hintRows-height)/2))
}

// resize re-lays the canvas out when the terminal changed size. The old
// frame is wiped since the border and hint move.
func (s *terminalView) resize(termWidth, termHeight int, cw *draw.ChunkWriter) {
	if termWidth == s.termWidth && termHeight == s.termHeight {
		return
	}
	s.layout(termWidth, termHeight)
	cw.ClearScreen()
}

// drawFrame draws the game to the canvas and writes it out with its border
// and the controls hint.
func (s *terminalView) drawFrame(game *Game, cw *draw.ChunkWriter) error {
	if err := game.Draw(s.canvas); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	if err := s.canvas.Render(cw); err != nil {
		return err
	}
	if err := s.canvas.RenderBorder(cw); err != nil {
		return err
	}
	s.drawHint(game, cw)
	return cw.Flush()
}

// drawHint writes the wave counter and controls below the playfield.
func (s *terminalView) drawHint(game *Game, cw *draw.ChunkWriter) {
	row := s.canvas.OffsetRow() + s.canvas.TerminalHeight() + 1
	if s.canvas.OffsetRow() > 0 {
		row++ // Below the bottom border
	}
	if row > s.termHeight {
		return
	}

	text := controlsHint
	if game.Wave() > 0 {
		text = fmt.Sprintf("Wave %d | %s", game.Wave(), controlsHint)
	}
	width := s.canvas.TerminalWidth()
	if n := utf8.RuneCountInString(text); n > width {
		text = string([]rune(text)[:max(0, width)])
	}
	col := s.canvas.OffsetCol() + 1 + (width-utf8.RuneCountInString(text))/2

	cw.ClearRow(row)
	cw.WriteAt(col, row, text)
}
