package validator

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/tromino/internal/catalog"
	"svw.info/tromino/internal/domain"
)

func TestValidate(t *testing.T) {
	v := New(catalog.Default())
	ctx := context.Background()

	cases := []struct {
		name      string
		tiling    domain.Tiling
		ok        bool
		conflicts []domain.Coord
	}{
		{"all monominoes", domain.Tiling{{0, 0}, {0, 0}}, true, []domain.Coord{}},
		{"two pieces", domain.Tiling{{2, 1, 1}, {2, 2, 1}, {0, 0, 0}}, true, []domain.Coord{}},
		{"straight line", domain.Tiling{{3, 3, 3}, {0, 0, 0}}, false,
			[]domain.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}},
		{"incomplete piece", domain.Tiling{{1, 1}, {0, 0}}, false,
			[]domain.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}}},
		{"label split in two", domain.Tiling{{1, 1, 0, 1}, {0, 1, 0, 1}}, false,
			[]domain.Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 3}, {Row: 1, Col: 1}, {Row: 1, Col: 3}}},
		{"negative cell", domain.Tiling{{-1, 0}}, false, []domain.Coord{{Row: 0, Col: 0}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, conf, err := v.Validate(ctx, tc.tiling)
			require.NoError(t, err)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.conflicts, conf)
		})
	}
}

func TestValidateMalformed(t *testing.T) {
	v := New(catalog.Default())
	for _, tl := range []domain.Tiling{nil, {{}}, {{0, 0}, {0}}} {
		_, _, err := v.Validate(context.Background(), tl)
		assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
	}
}
