// Package catalog defines the fixed set of multi-cell pieces a tiling may use
// and the lookup tables the symmetry layer needs to move them around.
//
// A piece is an anchor cell plus a list of offsets. The anchor is always the
// row-major first cell of the piece, so every offset points down, or right on
// the anchor's own row. Monominoes are implicit and never appear here.
package catalog

import (
	"sort"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"svw.info/tromino/internal/domain"
)

// ErrInvalidCatalog is wrapped by every validation failure of New.
var ErrInvalidCatalog = errors.New("invalid piece catalog")

// DefaultOffsets are the four L-tromino orientations, in catalog order.
var DefaultOffsets = [][]domain.Coord{
	domain.TopRight:    {{Row: 0, Col: 1}, {Row: 1, Col: 1}},
	domain.BottomRight: {{Row: 1, Col: -1}, {Row: 1, Col: 0}},
	domain.BottomLeft:  {{Row: 1, Col: 0}, {Row: 1, Col: 1}},
	domain.TopLeft:     {{Row: 1, Col: 0}, {Row: 0, Col: 1}},
}

// Catalog is immutable after New.
type Catalog struct {
	offsets    [][]domain.Coord
	minOffsets int

	// identifying[t][k] is the index into offsets[t] of the cell that becomes
	// the anchor once transform k is applied, or -1 when the anchor stays the
	// anchor. image[t][k] is the piece type the transformed piece matches.
	identifying [][domain.NumTransformKinds]int
	image       [][domain.NumTransformKinds]domain.PieceType
}

// Default returns the L-tromino catalog.
func Default() *Catalog {
	c, err := New(DefaultOffsets)
	if err != nil {
		panic(err)
	}
	return c
}

// New validates offsets and derives the symmetry tables.
func New(offsets [][]domain.Coord) (*Catalog, error) {
	if len(offsets) == 0 {
		return nil, errors.Wrap(ErrInvalidCatalog, "no pieces")
	}
	c := &Catalog{
		offsets:     make([][]domain.Coord, len(offsets)),
		identifying: make([][domain.NumTransformKinds]int, len(offsets)),
		image:       make([][domain.NumTransformKinds]domain.PieceType, len(offsets)),
	}
	byShape := make(map[string]domain.PieceType, len(offsets))
	for t, offs := range offsets {
		if len(offs) == 0 {
			return nil, errors.Wrapf(ErrInvalidCatalog, "piece %d has no offsets", t)
		}
		if len(lo.Uniq(offs)) != len(offs) {
			return nil, errors.Wrapf(ErrInvalidCatalog, "piece %d repeats an offset", t)
		}
		for _, o := range offs {
			if !(domain.Coord{}).Less(o) {
				return nil, errors.Wrapf(ErrInvalidCatalog, "piece %d: offset %s precedes its anchor", t, o)
			}
		}
		key := shapeKey(offs)
		if prev, dup := byShape[key]; dup {
			return nil, errors.Wrapf(ErrInvalidCatalog, "pieces %d and %d have the same shape", prev, t)
		}
		byShape[key] = domain.PieceType(t)
		c.offsets[t] = append([]domain.Coord(nil), offs...)
	}
	c.minOffsets = lo.Min(lo.Map(c.offsets, func(o []domain.Coord, _ int) int { return len(o) }))

	for t := range c.offsets {
		for k := domain.TransformKind(0); k < domain.NumTransformKinds; k++ {
			idx, rel := reanchor(c.offsets[t], k)
			img, ok := byShape[shapeKey(rel)]
			if !ok {
				return nil, errors.Wrapf(ErrInvalidCatalog, "piece %d has no counterpart under transform %d", t, k)
			}
			c.identifying[t][k] = idx
			c.image[t][k] = img
		}
	}
	return c, nil
}

// reanchor applies the linear part of transform k to a piece sitting with its
// anchor at the origin. The row-major first transformed cell is the new
// anchor; its pre-image is reported as an offset index (-1 for the old
// anchor) together with the remaining cells relative to it.
//
// Every board transform is this linear map followed by a translation, and a
// translation preserves row-major order, so the cell chosen here is the new
// anchor wherever the piece sits on the board.
func reanchor(offs []domain.Coord, k domain.TransformKind) (int, []domain.Coord) {
	cells := make([]domain.Coord, 0, len(offs)+1)
	cells = append(cells, linear(domain.Coord{}, k))
	for _, o := range offs {
		cells = append(cells, linear(o, k))
	}
	first := 0
	for i := range cells {
		if cells[i].Less(cells[first]) {
			first = i
		}
	}
	rel := make([]domain.Coord, 0, len(offs))
	for i, cell := range cells {
		if i != first {
			rel = append(rel, cell.Sub(cells[first]))
		}
	}
	return first - 1, rel
}

// linear is the rotation/reflection part of a board transform in (row, col)
// space. Rows grow downwards, so a counterclockwise quarter turn sends
// (r, c) to (-c, r).
func linear(o domain.Coord, k domain.TransformKind) domain.Coord {
	switch k {
	case domain.Rot90:
		return domain.Coord{Row: -o.Col, Col: o.Row}
	case domain.Rot180:
		return domain.Coord{Row: -o.Row, Col: -o.Col}
	case domain.Rot270:
		return domain.Coord{Row: o.Col, Col: -o.Row}
	case domain.FlipVertical:
		return domain.Coord{Row: o.Row, Col: -o.Col}
	}
	return o
}

func shapeKey(offs []domain.Coord) string {
	sorted := append([]domain.Coord(nil), offs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	return domain.Signature{sorted}.Key()
}

func (c *Catalog) Len() int { return len(c.offsets) }

// Types lists every piece type in catalog order.
func (c *Catalog) Types() []domain.PieceType {
	return lo.Times(len(c.offsets), func(i int) domain.PieceType { return domain.PieceType(i) })
}

// Offsets returns the non-anchor offsets of t. Callers must not modify them.
func (c *Catalog) Offsets(t domain.PieceType) []domain.Coord { return c.offsets[t] }

// Size is the number of cells a piece of type t covers.
func (c *Catalog) Size(t domain.PieceType) int { return len(c.offsets[t]) + 1 }

// Cells lists the cells of a piece of type t anchored at a, anchor first.
func (c *Catalog) Cells(t domain.PieceType, a domain.Coord) []domain.Coord {
	out := make([]domain.Coord, 0, len(c.offsets[t])+1)
	out = append(out, a)
	for _, o := range c.offsets[t] {
		out = append(out, a.Add(o))
	}
	return out
}

// MaxPieces bounds how many pieces fit in the given number of cells.
func (c *Catalog) MaxPieces(cells int) int { return cells / (c.minOffsets + 1) }

// IdentifyingOffset is -1 when the anchor of a type t piece stays its anchor
// under transform k, otherwise the index of the offset cell that takes over.
func (c *Catalog) IdentifyingOffset(t domain.PieceType, k domain.TransformKind) int {
	return c.identifying[t][k]
}

// IdentifyingCell is the cell of the piece anchored at a that becomes the
// anchor after transform k.
func (c *Catalog) IdentifyingCell(t domain.PieceType, k domain.TransformKind, a domain.Coord) domain.Coord {
	if i := c.identifying[t][k]; i >= 0 {
		return a.Add(c.offsets[t][i])
	}
	return a
}

// Image is the type a piece of type t becomes under transform k.
func (c *Catalog) Image(t domain.PieceType, k domain.TransformKind) domain.PieceType {
	return c.image[t][k]
}

// Match finds the piece type whose cells, anchored at the row-major first
// cell, are exactly cells.
func (c *Catalog) Match(cells []domain.Coord) (domain.PieceType, domain.Coord, bool) {
	if len(cells) < 2 {
		return 0, domain.Coord{}, false
	}
	anchor := lo.MinBy(cells, func(a, b domain.Coord) bool { return a.Less(b) })
	rel := make([]domain.Coord, 0, len(cells)-1)
	for _, cell := range cells {
		if cell != anchor {
			rel = append(rel, cell.Sub(anchor))
		}
	}
	key := shapeKey(rel)
	for t, offs := range c.offsets {
		if len(offs) == len(rel) && shapeKey(offs) == key {
			return domain.PieceType(t), anchor, true
		}
	}
	return 0, domain.Coord{}, false
}
