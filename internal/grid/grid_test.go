package grid

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/tromino/internal/domain"
)

func TestNewRejectsNonPositive(t *testing.T) {
	cases := []domain.Dimensions{
		{Height: 0, Width: 3},
		{Height: 3, Width: 0},
		{Height: -1, Width: 2},
		{Height: 0, Width: 0},
	}
	for _, d := range cases {
		t.Run(d.String(), func(t *testing.T) {
			_, err := New(d)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDimensions), "got %v", err)
		})
	}
}

func TestOnBoardAndFree(t *testing.T) {
	b, err := New(domain.Dimensions{Height: 2, Width: 3})
	require.NoError(t, err)

	assert.Len(t, b.Coords(), 6)
	assert.Equal(t, domain.Coord{Row: 0, Col: 2}, b.Coords()[2])
	assert.Equal(t, domain.Coord{Row: 1, Col: 0}, b.Coords()[3])

	assert.True(t, b.OnBoard(domain.Coord{Row: 1, Col: 2}))
	assert.False(t, b.OnBoard(domain.Coord{Row: 2, Col: 0}))
	assert.False(t, b.OnBoard(domain.Coord{Row: 0, Col: 3}))
	assert.False(t, b.OnBoard(domain.Coord{Row: -1, Col: 0}))
	assert.False(t, b.OnBoard(domain.Coord{Row: 0, Col: -1}))

	tl := b.NewTiling()
	require.True(t, b.Fits(tl))
	tl[1][1] = 4
	assert.False(t, b.IsFree(tl, domain.Coord{Row: 1, Col: 1}))
	assert.True(t, b.IsFree(tl, domain.Coord{Row: 0, Col: 1}))
	assert.False(t, b.Fits(domain.Tiling{{0, 0}}))
}
