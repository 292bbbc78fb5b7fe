package solver

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pkg/errors"

	"svw.info/tromino/internal/catalog"
	"svw.info/tromino/internal/domain"
	"svw.info/tromino/internal/generator"
	"svw.info/tromino/internal/grid"
	"svw.info/tromino/internal/placement"
	"svw.info/tromino/internal/ports"
)

// ctxPollMask controls how often the search checks for cancellation.
const ctxPollMask = 1<<12 - 1

// BacktrackingSolver enumerates every tiling of a board by monominoes and the
// catalog's pieces.
//
// For each total piece count k it walks the piece-count vectors summing to k.
// Per vector, every piece type gets the list of anchor subsets of the right
// size that can be placed on an otherwise empty board; the search then picks
// one subset per type, in catalog order, keeping those that fit together.
// Cells left at 0 are monominoes, so every leaf of the search is a tiling.
type BacktrackingSolver struct {
	board    *grid.Board
	cat      *catalog.Catalog
	progress ports.Progress
	strict   bool
	report   io.Writer
}

// Option configures a BacktrackingSolver.
type Option func(*BacktrackingSolver)

// WithProgress reports each piece-count vector as the search reaches it.
func WithProgress(p ports.Progress) Option {
	return func(s *BacktrackingSolver) { s.progress = p }
}

// WithStrict turns on the placement engine's removal checks.
func WithStrict(strict bool) Option {
	return func(s *BacktrackingSolver) { s.strict = strict }
}

// WithFilterReport dumps candidate and pre-filtered anchor lists to w.
func WithFilterReport(w io.Writer) Option {
	return func(s *BacktrackingSolver) { s.report = w }
}

func NewBacktrackingSolver(b *grid.Board, c *catalog.Catalog, opts ...Option) *BacktrackingSolver {
	s := &BacktrackingSolver{board: b, cat: c}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Enumerate returns all tilings ordered by piece count, then piece-count
// vector, then anchor subsets, then search order. Labels run from 1 in the
// order pieces are placed.
func (s *BacktrackingSolver) Enumerate(ctx context.Context) ([]domain.Result, ports.Stats, error) {
	start := time.Now()
	eng := placement.New(s.board, s.cat)
	eng.SetStrict(s.strict)

	maxK := s.cat.MaxPieces(s.board.Dimensions().Cells())
	tiling := s.board.NewTiling()
	var results []domain.Result
	stats := func() ports.Stats {
		return ports.Stats{Nodes: eng.Nodes(), Duration: time.Since(start)}
	}

	for k := 0; k <= maxK; k++ {
		vectors := generator.CountVectors(s.cat.Len(), k)
		for i, v := range vectors {
			if err := ctx.Err(); err != nil {
				return nil, stats(), errors.Wrap(err, "enumeration canceled")
			}
			if s.progress != nil {
				s.progress.Report(ports.ProgressEvent{
					K: k, MaxK: maxK, Combo: i + 1, Combos: len(vectors), Found: len(results),
				})
			}
			candidates := s.filtered(eng, v)
			var err error
			results, err = s.search(ctx, eng, tiling, candidates, results)
			if err != nil {
				return nil, stats(), err
			}
		}
	}
	return results, stats(), nil
}

// filtered builds, per piece type, the anchor subsets of size v[t] that do
// not overlap themselves. Done before the cross-type search so it only ever
// branches over self-consistent groups.
func (s *BacktrackingSolver) filtered(eng *placement.Engine, v domain.CountVector) [][]domain.Combo {
	scratch := s.board.NewTiling()
	out := make([][]domain.Combo, len(v))
	var all [][]domain.Combo
	for t, n := range v {
		candidates := generator.Subsets(s.board.Coords(), n)
		if s.report != nil {
			all = append(all, candidates)
		}
		kept := make([]domain.Combo, 0, len(candidates))
		for _, combo := range candidates {
			if pl, ok := eng.Place(scratch, domain.PieceType(t), combo, 1); ok {
				pl.Undo()
				kept = append(kept, combo)
			}
		}
		out[t] = kept
	}
	if s.report != nil {
		s.writeReport(v, all, out)
	}
	return out
}

func (s *BacktrackingSolver) search(ctx context.Context, eng *placement.Engine, tiling domain.Tiling, candidates [][]domain.Combo, results []domain.Result) ([]domain.Result, error) {
	last := len(candidates) - 1
	chosen := make([]domain.Combo, len(candidates))
	steps := 0
	var err error

	var dfs func(n, label int)
	dfs = func(n, label int) {
		for _, combo := range candidates[n] {
			if steps++; steps&ctxPollMask == 0 && ctx.Err() != nil {
				err = errors.Wrap(ctx.Err(), "enumeration canceled")
			}
			if err != nil {
				return
			}
			pl, ok := eng.Place(tiling, domain.PieceType(n), combo, label)
			if !ok {
				continue
			}
			func() {
				defer pl.Undo()
				chosen[n] = combo
				if n == last {
					results = append(results, domain.Result{
						Index:     len(results),
						Tiling:    tiling.Clone(),
						Signature: signature(chosen),
					})
					return
				}
				dfs(n+1, label+len(combo))
			}()
		}
	}
	if last >= 0 {
		dfs(0, 1)
	}
	return results, err
}

// signature copies the chosen anchors into sorted per-type slots.
func signature(chosen []domain.Combo) domain.Signature {
	sig := make(domain.Signature, len(chosen))
	for t, combo := range chosen {
		slot := append([]domain.Coord{}, combo...)
		sort.Slice(slot, func(i, j int) bool { return slot[i].Less(slot[j]) })
		sig[t] = slot
	}
	return sig
}

func (s *BacktrackingSolver) writeReport(v domain.CountVector, all, kept [][]domain.Combo) {
	w := s.report
	fmt.Fprintf(w, "counts: %v\n", []int(v))
	fmt.Fprintln(w, "candidate locations:")
	writeCombos(w, all)
	fmt.Fprintln(w, "filtered locations:")
	writeCombos(w, kept)
	fmt.Fprintln(w)
}

func writeCombos(w io.Writer, perType [][]domain.Combo) {
	fmt.Fprintln(w, "[")
	for t, combos := range perType {
		fmt.Fprintf(w, "    %s: %d\n", domain.PieceType(t), len(combos))
		for _, combo := range combos {
			if len(combo) == 0 {
				continue
			}
			fmt.Fprint(w, "        (")
			for _, c := range combo {
				fmt.Fprintf(w, "%s,", c)
			}
			fmt.Fprintln(w, ")")
		}
	}
	fmt.Fprintln(w, "]")
}
