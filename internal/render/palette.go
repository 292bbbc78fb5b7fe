// Package render turns tilings into text and images. It never looks at
// piece shapes; every label simply gets a colour.
package render

import (
	"fmt"
	"image/color"
)

// Palette is indexed by (label-1) modulo its length; label 0 uses Empty.
var Palette = []color.RGBA{
	{R: 0xe6, G: 0x19, B: 0x4b, A: 0xff},
	{R: 0x3c, G: 0xb4, B: 0x4b, A: 0xff},
	{R: 0xff, G: 0xe1, B: 0x19, A: 0xff},
	{R: 0x43, G: 0x63, B: 0xd8, A: 0xff},
	{R: 0xf5, G: 0x82, B: 0x31, A: 0xff},
	{R: 0x91, G: 0x1e, B: 0xb4, A: 0xff},
	{R: 0x46, G: 0xf0, B: 0xf0, A: 0xff},
	{R: 0xf0, G: 0x32, B: 0xe6, A: 0xff},
	{R: 0xbc, G: 0xf6, B: 0x0c, A: 0xff},
	{R: 0x00, G: 0x80, B: 0x80, A: 0xff},
}

var (
	Empty = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Grid  = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
)

// DefaultCellSize is the edge length of one cell in pixels.
const DefaultCellSize = 40

// MaxCellSize caps the requested cell edge.
const MaxCellSize = 200

// ColorOf returns the fill colour for a label.
func ColorOf(label int) color.RGBA {
	if label <= 0 {
		return Empty
	}
	return Palette[(label-1)%len(Palette)]
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func cellSize(n int) int {
	switch {
	case n <= 0:
		return DefaultCellSize
	case n > MaxCellSize:
		return MaxCellSize
	}
	return n
}
