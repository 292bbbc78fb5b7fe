package symmetry

import (
	"sort"

	"github.com/pkg/errors"

	"svw.info/tromino/internal/catalog"
	"svw.info/tromino/internal/domain"
	"svw.info/tromino/internal/grid"
	"svw.info/tromino/internal/placement"
)

// ErrNotAPiece is returned when a label's cells match no catalog piece.
var ErrNotAPiece = errors.New("label does not form a catalog piece")

// SignatureOf derives a signature from the cells of a tiling.
func SignatureOf(cat *catalog.Catalog, t domain.Tiling) (domain.Signature, error) {
	cells := make(map[int][]domain.Coord)
	for r, row := range t {
		for c, v := range row {
			if v != 0 {
				cells[v] = append(cells[v], domain.Coord{Row: r, Col: c})
			}
		}
	}
	sig := make(domain.Signature, cat.Len())
	for i := range sig {
		sig[i] = []domain.Coord{}
	}
	for label, group := range cells {
		p, anchor, ok := cat.Match(group)
		if !ok {
			return nil, errors.Wrapf(ErrNotAPiece, "label %d", label)
		}
		sig[p] = append(sig[p], anchor)
	}
	for _, slot := range sig {
		sort.Slice(slot, func(i, j int) bool { return slot[i].Less(slot[j]) })
	}
	return sig, nil
}

// Materialize builds the tiling a signature describes, labelling pieces in
// catalog order and row-major order within a type, the same numbering the
// solver uses.
func Materialize(cat *catalog.Catalog, d domain.Dimensions, sig domain.Signature) (domain.Tiling, error) {
	if len(sig) != cat.Len() {
		return nil, errors.Errorf("signature has %d slots, catalog has %d pieces", len(sig), cat.Len())
	}
	b, err := grid.New(d)
	if err != nil {
		return nil, err
	}
	eng := placement.New(b, cat)
	t := b.NewTiling()
	label := 1
	for p, slot := range sig {
		if !eng.TryPlaceCombo(t, domain.PieceType(p), slot, label) {
			return nil, errors.Errorf("pieces of type %s at %v do not fit", domain.PieceType(p), slot)
		}
		label += len(slot)
	}
	return t, nil
}
