package symmetry

import (
	"svw.info/tromino/internal/catalog"
	"svw.info/tromino/internal/domain"
	"svw.info/tromino/internal/ports"
)

var _ ports.Classifier = (*Classifier)(nil)

// Classifier groups results of one board size into equivalence classes.
type Classifier struct {
	cat  *catalog.Catalog
	dims domain.Dimensions
}

func NewClassifier(cat *catalog.Catalog, d domain.Dimensions) *Classifier {
	return &Classifier{cat: cat, dims: d}
}

type firstSeen struct {
	index int
	class int
}

// Classify walks results in order. A result whose symmetry closure contains
// the signature of an earlier class representative joins that class and
// points back at it; otherwise it opens a new class. Only representatives'
// own signatures are indexed.
func (c *Classifier) Classify(results []domain.Result) domain.Classification {
	seen := make(map[string]firstSeen, len(results))
	out := domain.Classification{
		Classes:     [][]int{},
		DuplicateOf: make([]int, len(results)),
	}
	for i, r := range results {
		hit, found := firstSeen{}, false
		for _, s := range Symmetries(c.cat, c.dims, r.Signature) {
			if hit, found = seen[s.Key()]; found {
				break
			}
		}
		if found {
			out.Classes[hit.class] = append(out.Classes[hit.class], i)
			out.DuplicateOf[i] = hit.index
			continue
		}
		seen[r.Signature.Key()] = firstSeen{index: i, class: len(out.Classes)}
		out.Classes = append(out.Classes, []int{i})
		out.DuplicateOf[i] = domain.NoDuplicate
	}
	return out
}
