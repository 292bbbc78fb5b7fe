package generator

import "svw.info/tromino/internal/domain"

// Subsets returns every c-element subset of coords, each in input order, with
// the subsets themselves in lexicographic order of their indices. c == 0
// yields a single empty combo.
func Subsets(coords []domain.Coord, c int) []domain.Combo {
	n := len(coords)
	if c < 0 || c > n {
		return nil
	}
	out := make([]domain.Combo, 0, binomial(n, c))
	idx := make([]int, c)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make(domain.Combo, c)
		for i, j := range idx {
			combo[i] = coords[j]
		}
		out = append(out, combo)

		// advance the rightmost index that still has room
		i := c - 1
		for i >= 0 && idx[i] == n-c+i {
			i--
		}
		if i < 0 {
			return out
		}
		idx[i]++
		for j := i + 1; j < c; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
