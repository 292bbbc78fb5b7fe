package render

import (
	"image"
	"image/png"
	"io"
	"strconv"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"svw.info/tromino/internal/domain"
)

// PNG rasterises a tiling the same way SVG draws it.
type PNG struct {
	CellSize int
	Labels   bool
}

func (PNG) ContentType() string { return "image/png" }

func (p PNG) Render(w io.Writer, t domain.Tiling) error {
	return png.Encode(w, p.Image(t))
}

// Image returns the raster without encoding it.
func (p PNG) Image(t domain.Tiling) *image.RGBA {
	size := cellSize(p.CellSize)
	d := t.Dimensions()
	img := image.NewRGBA(image.Rect(0, 0, d.Width*size, d.Height*size))
	gc := draw2dimg.NewGraphicContext(img)
	gc.SetStrokeColor(Grid)
	gc.SetLineWidth(1)
	for r, row := range t {
		for c, label := range row {
			x, y := float64(c*size), float64(r*size)
			gc.BeginPath()
			gc.SetFillColor(ColorOf(label))
			draw2dkit.Rectangle(gc, x+0.5, y+0.5, x+float64(size)-0.5, y+float64(size)-0.5)
			gc.FillStroke()
		}
	}
	if p.Labels {
		drawLabels(img, t, size)
	}
	return img
}

func drawLabels(img *image.RGBA, t domain.Tiling, size int) {
	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.Black, Face: face}
	for r, row := range t {
		for c, label := range row {
			if label <= 0 {
				continue
			}
			s := strconv.Itoa(label)
			width := dr.MeasureString(s).Round()
			dr.Dot = fixed.P(c*size+(size-width)/2, r*size+(size+face.Ascent)/2)
			dr.DrawString(s)
		}
	}
}
