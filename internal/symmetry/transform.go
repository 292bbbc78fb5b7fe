// Package symmetry groups tilings that are rotations or reflections of one
// another.
//
// Tilings are compared through their signatures rather than their cells: two
// tilings that differ only in label numbering have equal signatures, and
// moving a signature through a board symmetry needs only the catalog's
// identifying-cell and image tables.
package symmetry

import (
	"sort"

	"svw.info/tromino/internal/catalog"
	"svw.info/tromino/internal/domain"
)

// TransformCoordinate maps c through a symmetry of a board of size d, pivoting
// on the board centre. flip mirrors across the vertical axis and ignores
// rotationSteps; otherwise the cell is turned rotationSteps quarter turns
// counterclockwise. Quarter turns only land back on the same board when it is
// square.
func TransformCoordinate(c domain.Coord, d domain.Dimensions, rotationSteps int, flip bool) domain.Coord {
	x, y := c.Col, c.Row
	h1, w1 := d.Height-1, d.Width-1
	if flip {
		return domain.Coord{Row: y, Col: w1 - x}
	}
	// Centre offsets are half-integers on odd sides, so work on doubled
	// values and floor at the end.
	switch mod4(rotationSteps) {
	case 1:
		return domain.Coord{Row: floorHalf(-2*x + w1 + h1), Col: floorHalf(2*y - h1 + w1)}
	case 2:
		return domain.Coord{Row: h1 - y, Col: w1 - x}
	case 3:
		return domain.Coord{Row: floorHalf(2*x - w1 + h1), Col: floorHalf(-2*y + h1 + w1)}
	}
	return c
}

func mod4(n int) int { return ((n % 4) + 4) % 4 }

func floorHalf(n int) int {
	if n < 0 {
		return -((-n + 1) / 2)
	}
	return n / 2
}

// TransformSignature moves every piece of sig through one board symmetry and
// returns the signature of the resulting tiling. sig is not modified.
//
// A piece's anchor alone does not say where the transformed piece is
// anchored: after a quarter turn a different one of its cells may be the
// row-major first. The catalog knows, per piece type and transform, which cell
// that is and which type the piece turns into, so each anchor is first moved
// to that identifying cell, then mapped, then filed under the new type.
func TransformSignature(cat *catalog.Catalog, d domain.Dimensions, sig domain.Signature, rotationSteps int, flip bool) domain.Signature {
	k, ok := domain.TransformKindOf(rotationSteps, flip)
	if !ok {
		return sig.Clone()
	}
	out := make(domain.Signature, len(sig))
	for t, slot := range sig {
		p := domain.PieceType(t)
		moved := make([]domain.Coord, len(slot))
		for i, a := range slot {
			moved[i] = TransformCoordinate(cat.IdentifyingCell(p, k, a), d, rotationSteps, flip)
		}
		sort.Slice(moved, func(i, j int) bool { return moved[i].Less(moved[j]) })
		out[cat.Image(p, k)] = moved
	}
	return out
}

// Symmetries returns sig under every element of the board's symmetry group:
// eight for a square, four for any other rectangle, where quarter turns would
// change the board's orientation. Entries repeat when the tiling is itself
// symmetric.
func Symmetries(cat *catalog.Catalog, d domain.Dimensions, sig domain.Signature) []domain.Signature {
	rotations := []int{0, 2}
	if d.Square() {
		rotations = []int{0, 1, 2, 3}
	}
	out := make([]domain.Signature, 0, 2*len(rotations))
	for _, r := range rotations {
		turned := TransformSignature(cat, d, sig, r, false)
		out = append(out, turned, TransformSignature(cat, d, turned, 0, true))
	}
	return out
}
