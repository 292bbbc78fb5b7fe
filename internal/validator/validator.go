// Package validator checks that a tiling is well formed: every cell is a
// monomino or belongs to exactly one complete catalog piece.
package validator

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"svw.info/tromino/internal/catalog"
	"svw.info/tromino/internal/domain"
)

// ErrMalformed is returned for an empty or ragged tiling.
var ErrMalformed = errors.New("malformed tiling")

type FastValidator struct {
	cat *catalog.Catalog
}

func New(c *catalog.Catalog) *FastValidator { return &FastValidator{cat: c} }

// Validate returns ok when every label forms a catalog piece. conflicts lists,
// in row-major order, every cell that holds a negative value or a label whose
// cells do not form a piece.
func (v *FastValidator) Validate(ctx context.Context, t domain.Tiling) (bool, []domain.Coord, error) {
	if len(t) == 0 || len(t[0]) == 0 {
		return false, nil, errors.Wrap(ErrMalformed, "no cells")
	}
	cells := make(map[int][]domain.Coord)
	conf := make([]domain.Coord, 0, 4)
	for r, row := range t {
		if len(row) != len(t[0]) {
			return false, nil, errors.Wrapf(ErrMalformed, "row %d has %d cells, want %d", r, len(row), len(t[0]))
		}
		for c, val := range row {
			switch {
			case val < 0:
				conf = append(conf, domain.Coord{Row: r, Col: c})
			case val > 0:
				cells[val] = append(cells[val], domain.Coord{Row: r, Col: c})
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}
	for _, group := range cells {
		if _, _, ok := v.cat.Match(group); !ok {
			conf = append(conf, group...)
		}
	}
	sort.Slice(conf, func(i, j int) bool { return conf[i].Less(conf[j]) })
	return len(conf) == 0, conf, nil
}
