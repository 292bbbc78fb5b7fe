package render

import (
	"fmt"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo"

	"svw.info/tromino/internal/domain"
)

// SVG draws one square per cell, coloured by label.
type SVG struct {
	CellSize int
	Labels   bool // print the label in each covered cell
}

func (SVG) ContentType() string { return "image/svg+xml" }

func (s SVG) Render(w io.Writer, t domain.Tiling) error {
	size := cellSize(s.CellSize)
	d := t.Dimensions()
	canvas := svg.New(w)
	canvas.Start(d.Width*size, d.Height*size)
	s.draw(canvas, t, 0, 0, size)
	canvas.End()
	return nil
}

func (s SVG) draw(canvas *svg.SVG, t domain.Tiling, x0, y0, size int) {
	stroke := "stroke:" + hex(Grid) + ";stroke-width:1"
	for r, row := range t {
		for c, label := range row {
			x, y := x0+c*size, y0+r*size
			canvas.Rect(x, y, size, size, "fill:"+hex(ColorOf(label))+";"+stroke)
			if s.Labels && label > 0 {
				canvas.Text(x+size/2, y+size/2+size/8, strconv.Itoa(label),
					fmt.Sprintf("text-anchor:middle;font-family:monospace;font-size:%dpx", size/3))
			}
		}
	}
}

// WriteSheet draws every tiling of a run on one canvas, one row per
// equivalence class, with its 1-based index above each panel.
func WriteSheet(w io.Writer, run *domain.Run, size int) error {
	size = cellSize(size)
	d := run.Dimensions
	gap := size / 2
	caption := size / 2
	panelW, panelH := d.Width*size+gap, d.Height*size+gap+caption

	widest := 0
	for _, class := range run.Classification.Classes {
		widest = max(widest, len(class))
	}
	canvas := svg.New(w)
	canvas.Start(max(widest, 1)*panelW+gap, len(run.Classification.Classes)*panelH+gap)
	canvas.Title(fmt.Sprintf("%s tilings", d))
	r := SVG{CellSize: size}
	for row, class := range run.Classification.Classes {
		for col, idx := range class {
			x := gap + col*panelW
			y := gap + row*panelH
			canvas.Text(x, y+caption-4, strconv.Itoa(idx+1),
				fmt.Sprintf("font-family:monospace;font-size:%dpx", caption-2))
			r.draw(canvas, run.Results[idx].Tiling, x, y+caption, size)
		}
	}
	canvas.End()
	return nil
}
