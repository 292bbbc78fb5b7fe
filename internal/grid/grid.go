// Package grid models the rectangular board an enumeration runs on.
package grid

import (
	"github.com/pkg/errors"

	"svw.info/tromino/internal/domain"
)

// ErrInvalidDimensions is returned for a board with a non-positive side.
var ErrInvalidDimensions = errors.New("board dimensions must be positive")

// Board is the immutable configuration shared by every component of a run.
type Board struct {
	dims   domain.Dimensions
	coords []domain.Coord
}

// New validates dims and precomputes the row-major coordinate list.
func New(dims domain.Dimensions) (*Board, error) {
	if dims.Height <= 0 || dims.Width <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "got %s", dims)
	}
	coords := make([]domain.Coord, 0, dims.Cells())
	for r := 0; r < dims.Height; r++ {
		for c := 0; c < dims.Width; c++ {
			coords = append(coords, domain.Coord{Row: r, Col: c})
		}
	}
	return &Board{dims: dims, coords: coords}, nil
}

func (b *Board) Dimensions() domain.Dimensions { return b.dims }
func (b *Board) Height() int                   { return b.dims.Height }
func (b *Board) Width() int                    { return b.dims.Width }

// Coords returns every cell in row-major order. Callers must not modify it.
func (b *Board) Coords() []domain.Coord { return b.coords }

// OnBoard reports whether c lies inside the board.
func (b *Board) OnBoard(c domain.Coord) bool {
	return c.Row >= 0 && c.Row < b.dims.Height && c.Col >= 0 && c.Col < b.dims.Width
}

// IsFree reports whether an on-board cell is still a monomino.
func (b *Board) IsFree(t domain.Tiling, c domain.Coord) bool {
	return t[c.Row][c.Col] == 0
}

// NewTiling returns an empty buffer sized for this board.
func (b *Board) NewTiling() domain.Tiling { return domain.NewTiling(b.dims) }

// Fits reports whether t has this board's shape.
func (b *Board) Fits(t domain.Tiling) bool {
	if len(t) != b.dims.Height {
		return false
	}
	for _, row := range t {
		if len(row) != b.dims.Width {
			return false
		}
	}
	return true
}
