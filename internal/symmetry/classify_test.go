package symmetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/tromino/internal/catalog"
	"svw.info/tromino/internal/domain"
)

func results(t *testing.T, tilings ...domain.Tiling) []domain.Result {
	t.Helper()
	out := make([]domain.Result, len(tilings))
	for i, tl := range tilings {
		sig, err := SignatureOf(catalog.Default(), tl)
		require.NoError(t, err)
		out[i] = domain.Result{Index: i, Tiling: tl, Signature: sig}
	}
	return out
}

func TestClassifyReflectedLabels(t *testing.T) {
	d := domain.Dimensions{Height: 3, Width: 3}
	a := domain.Tiling{{2, 1, 1}, {2, 2, 1}, {0, 0, 0}}
	b := domain.Tiling{{2, 2, 1}, {2, 1, 1}, {0, 0, 0}}
	require.False(t, a.Equal(b))

	got := NewClassifier(catalog.Default(), d).Classify(results(t, a, b))
	assert.Equal(t, [][]int{{0, 1}}, got.Classes)
	assert.Equal(t, []int{domain.NoDuplicate, 0}, got.DuplicateOf)
}

func TestClassifyEmptyBoards(t *testing.T) {
	d := domain.Dimensions{Height: 3, Width: 3}
	empty := domain.NewTiling(d)
	got := NewClassifier(catalog.Default(), d).Classify(results(t, empty, empty.Clone()))
	assert.Len(t, got.Classes, 1)
	assert.Equal(t, []int{domain.NoDuplicate, 0}, got.DuplicateOf)
}

func TestClassifyRectangleSkipsQuarterTurns(t *testing.T) {
	// On a 2x4 board the corner L at the top left and the one at the bottom
	// right are related by a half turn; nothing relates a horizontal-looking
	// layout to a quarter-turned one because the board cannot turn.
	d := domain.Dimensions{Height: 2, Width: 4}
	topLeft := domain.Tiling{{1, 1, 0, 0}, {1, 0, 0, 0}}
	bottomRight := domain.Tiling{{0, 0, 0, 1}, {0, 0, 1, 1}}
	topRight := domain.Tiling{{0, 0, 1, 1}, {0, 0, 0, 1}}
	middle := domain.Tiling{{0, 1, 1, 0}, {0, 1, 0, 0}}

	got := NewClassifier(catalog.Default(), d).Classify(results(t, topLeft, middle, bottomRight, topRight))
	assert.Equal(t, [][]int{{0, 2, 3}, {1}}, got.Classes)
	assert.Equal(t, []int{domain.NoDuplicate, domain.NoDuplicate, 0, 0}, got.DuplicateOf)
	assert.Equal(t, 0, got.ClassOf(3))
	assert.Equal(t, 1, got.ClassOf(1))
	assert.Equal(t, -1, got.ClassOf(9))
}
