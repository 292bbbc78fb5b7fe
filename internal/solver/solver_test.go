package solver

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/tromino/internal/catalog"
	"svw.info/tromino/internal/domain"
	"svw.info/tromino/internal/grid"
	"svw.info/tromino/internal/ports"
	"svw.info/tromino/internal/validator"
)

func newBoard(t *testing.T, h, w int) *grid.Board {
	t.Helper()
	b, err := grid.New(domain.Dimensions{Height: h, Width: w})
	require.NoError(t, err)
	return b
}

var knownCounts = []struct {
	h, w, tilings int
}{
	{1, 1, 1},
	{2, 2, 5},
	{2, 3, 11},
	{3, 2, 11},
	{2, 4, 33},
	{3, 3, 39},
	{4, 3, 195},
	{3, 4, 195},
	{4, 4, 2023},
}

func TestEnumerateKnownCounts(t *testing.T) {
	for _, tc := range knownCounts {
		d := domain.Dimensions{Height: tc.h, Width: tc.w}
		t.Run(d.String(), func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			s := NewBacktrackingSolver(newBoard(t, tc.h, tc.w), catalog.Default(), WithStrict(true))
			res, st, err := s.Enumerate(ctx)
			require.NoError(t, err)
			assert.Len(t, res, tc.tilings)
			t.Logf("%s: %d tilings in %v, nodes=%d", d, len(res), st.Duration, st.Nodes)
		})
	}
}

func TestDLXMatchesBacktracking(t *testing.T) {
	for _, tc := range knownCounts {
		d := domain.Dimensions{Height: tc.h, Width: tc.w}
		t.Run(d.String(), func(t *testing.T) {
			n, _, err := NewDLXCounter(newBoard(t, tc.h, tc.w), catalog.Default()).Count(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tc.tilings, n)
		})
	}
}

func TestEnumerateOrderAndLabels(t *testing.T) {
	s := NewBacktrackingSolver(newBoard(t, 3, 3), catalog.Default())
	res, _, err := s.Enumerate(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 39)

	assert.Equal(t, domain.NewTiling(domain.Dimensions{Height: 3, Width: 3}), res[0].Tiling, "k=0 comes first")
	assert.Equal(t, domain.Tiling{{1, 1, 0}, {0, 1, 0}, {0, 0, 0}}, res[1].Tiling)

	// 22nd and 31st tilings, 1-indexed.
	assert.Equal(t, domain.Tiling{{2, 1, 1}, {2, 2, 1}, {0, 0, 0}}, res[21].Tiling)
	assert.Equal(t, domain.Tiling{{2, 2, 1}, {2, 1, 1}, {0, 0, 0}}, res[30].Tiling)
	assert.Equal(t, "(((0, 1),), (), ((0, 0),), ())", res[21].Signature.String())
	assert.Equal(t, "((), ((0, 2),), (), ((0, 0),))", res[30].Signature.String())

	for i, r := range res {
		assert.Equal(t, i, r.Index)
	}
}

func TestEnumerate4x4Signature(t *testing.T) {
	s := NewBacktrackingSolver(newBoard(t, 4, 4), catalog.Default())
	res, _, err := s.Enumerate(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 2023)

	r := res[2017]
	assert.Equal(t, domain.Tiling{
		{4, 4, 1, 1},
		{4, 5, 5, 1},
		{3, 5, 0, 2},
		{3, 3, 2, 2},
	}, r.Tiling)
	assert.Equal(t, "(((0, 2),), ((2, 3),), ((2, 0),), ((0, 0), (1, 1)))", r.Signature.String())
}

func TestEnumerateProducesValidTilings(t *testing.T) {
	cat := catalog.Default()
	for _, d := range []domain.Dimensions{{Height: 3, Width: 4}, {Height: 4, Width: 4}, {Height: 2, Width: 5}} {
		t.Run(d.String(), func(t *testing.T) {
			b, err := grid.New(d)
			require.NoError(t, err)
			res, _, err := NewBacktrackingSolver(b, cat).Enumerate(context.Background())
			require.NoError(t, err)
			v := validator.New(cat)
			for _, r := range res {
				ok, conflicts, err := v.Validate(context.Background(), r.Tiling)
				require.NoError(t, err)
				require.True(t, ok, "tiling %d invalid at %v:\n%s", r.Index, conflicts, r.Tiling)
				assert.Equal(t, r.Signature.Pieces()*3, countCovered(r.Tiling))
			}
		})
	}
}

func countCovered(t domain.Tiling) int {
	n := 0
	for _, row := range t {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

func TestEnumerateDeterministic(t *testing.T) {
	run := func() []domain.Result {
		res, _, err := NewBacktrackingSolver(newBoard(t, 3, 4), catalog.Default()).Enumerate(context.Background())
		require.NoError(t, err)
		return res
	}
	assert.Equal(t, run(), run())
}

func TestEnumerateResultsDoNotAlias(t *testing.T) {
	res, _, err := NewBacktrackingSolver(newBoard(t, 2, 2), catalog.Default()).Enumerate(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 5)
	res[1].Tiling[0][0] = 99
	for _, r := range res[2:] {
		assert.NotEqual(t, 99, r.Tiling[0][0])
	}
	assert.Equal(t, 0, res[0].Tiling[0][0])
}

func TestEnumerateProgressAndReport(t *testing.T) {
	var events []ports.ProgressEvent
	var report bytes.Buffer
	s := NewBacktrackingSolver(newBoard(t, 3, 3), catalog.Default(),
		WithProgress(ports.ProgressFunc(func(ev ports.ProgressEvent) { events = append(events, ev) })),
		WithFilterReport(&report),
	)
	_, _, err := s.Enumerate(context.Background())
	require.NoError(t, err)

	require.Len(t, events, 1+4+10+20)
	assert.Equal(t, ports.ProgressEvent{K: 0, MaxK: 3, Combo: 1, Combos: 1}, events[0])
	lastEv := events[len(events)-1]
	assert.Equal(t, 3, lastEv.K)
	assert.Equal(t, 20, lastEv.Combo)
	assert.Equal(t, 20, lastEv.Combos)
	assert.Contains(t, report.String(), "filtered locations:")
	assert.Contains(t, report.String(), "counts: [0 0 0 3]")
}

func TestEnumerateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := NewBacktrackingSolver(newBoard(t, 3, 3), catalog.Default()).Enumerate(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	_, _, err = NewDLXCounter(newBoard(t, 3, 3), catalog.Default()).Count(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
