// Package draw provides the drawing surface the game renders through and its
// terminal implementation.
package draw

import (
	"fmt"
	"math"
	"strconv"
)

// Surface is the set of drawing primitives game objects render through.
// All coordinates are logical playfield pixels.
type Surface interface {
	// ClearRect erases everything inside the rectangle.
	ClearRect(x, y, w, h float64)
	// DrawImage draws the named image with its unrotated top-left corner at (x, y).
	// A rotation of π turns the image around that corner, so it covers
	// [x-w, x] x [y-h, y] instead.
	DrawImage(name string, x, y, rotation float64) error
	// FillRect fills the rectangle with a solid color.
	FillRect(x, y, w, h float64, c Color)
	// DrawCenteredText draws large text centered on (x, y).
	DrawCenteredText(text string, x, y float64)
}

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// ParseColor parses a "#RRGGBB" hex string.
func ParseColor(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// MustColor is like ParseColor but panics on malformed input.
// Intended for package-level color constants.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Image is a sprite made of glyph art stretched over a pixel-sized rectangle.
// Spaces in the art are transparent.
type Image struct {
	Width  float64
	Height float64
	Color  Color
	Rows   [][]rune
}

// At samples the glyph at the relative position (u, v), both in [0, 1).
func (img *Image) At(u, v float64) rune {
	if len(img.Rows) == 0 {
		return ' '
	}
	row := img.Rows[clampIndex(v, len(img.Rows))]
	if len(row) == 0 {
		return ' '
	}
	return row[clampIndex(u, len(row))]
}

func clampIndex(f float64, n int) int {
	i := int(math.Floor(f * float64(n)))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// ImageSource resolves image names to images.
type ImageSource interface {
	Image(name string) (*Image, error)
}

// BlockFull is the glyph solid rectangles are filled with.
const BlockFull = '█'

// flippedGlyphs maps directional glyphs to their 180° rotated counterpart.
var flippedGlyphs = map[rune]rune{
	'▲': '▼', '▼': '▲',
	'▀': '▄', '▄': '▀',
	'▌': '▐', '▐': '▌',
	'(': ')', ')': '(',
	'<': '>', '>': '<',
	'^': 'v', 'v': '^',
	'[': ']', ']': '[',
	'◢': '◤', '◤': '◢',
	'◣': '◥', '◥': '◣',
}

// FlipGlyph returns the glyph as it looks after a half turn.
func FlipGlyph(r rune) rune {
	if f, ok := flippedGlyphs[r]; ok {
		return f
	}
	return r
}
