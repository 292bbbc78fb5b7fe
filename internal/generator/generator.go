// Package generator produces the combinatorial candidates the solver walks:
// how many pieces of each type to use, and where to anchor them.
package generator

import (
	"github.com/samber/lo"

	"svw.info/tromino/internal/domain"
)

// CountVectors lists every way to choose k piece types with repetition from
// types, as per-type counts. The order is that of sorted multisets compared
// lexicographically, so for 2 types and k=2 it is [2 0], [1 1], [0 2].
func CountVectors(types, k int) []domain.CountVector {
	if types <= 0 {
		if k == 0 {
			return []domain.CountVector{{}}
		}
		return nil
	}
	var out []domain.CountVector
	pick := make([]int, k)
	var rec func(pos, min int)
	rec = func(pos, min int) {
		if pos == k {
			v := make(domain.CountVector, types)
			for _, p := range pick {
				v[p]++
			}
			out = append(out, v)
			return
		}
		for t := min; t < types; t++ {
			pick[pos] = t
			rec(pos+1, t)
		}
	}
	rec(0, 0)
	return out
}

// NumMultisets is len(CountVectors(types, k)) without building them.
func NumMultisets(types, k int) int {
	if types <= 0 {
		return lo.Ternary(k == 0, 1, 0)
	}
	return binomial(types+k-1, k)
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	r := 1
	for i := 1; i <= k; i++ {
		r = r * (n - k + i) / i
	}
	return r
}
