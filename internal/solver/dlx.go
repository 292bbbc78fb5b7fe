package solver

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"svw.info/tromino/internal/catalog"
	"svw.info/tromino/internal/domain"
	"svw.info/tromino/internal/grid"
	"svw.info/tromino/internal/ports"
)

// DLXCounter counts tilings with Algorithm X / Dancing Links. It shares no
// code with the backtracking solver and serves as an independent check of
// its total.
//
// Exact-cover mapping: one column per cell; one row per monomino (one node)
// and per on-board placement of every catalog piece (one node per cell).
type DLXCounter struct {
	board *grid.Board
	cat   *catalog.Catalog
}

func NewDLXCounter(b *grid.Board, c *catalog.Catalog) *DLXCounter {
	return &DLXCounter{board: b, cat: c}
}

// node/column structures (classic dancing links)
type node struct {
	left, right, up, down *node
	col                   *column
}
type column struct {
	node
	size   int
	active bool // whether this cell is still uncovered
}

type dlx struct {
	cols      []*column
	nodes     int
	found     int
	activeCnt int
}

func (k *DLXCounter) build() *dlx {
	dims := k.board.Dimensions()
	d := &dlx{cols: make([]*column, dims.Cells())}
	for i := range d.cols {
		c := &column{active: true}
		c.up = &c.node
		c.down = &c.node
		d.cols[i] = c
	}
	d.activeCnt = len(d.cols)

	colOf := func(c domain.Coord) int { return c.Row*dims.Width + c.Col }
	for _, cell := range k.board.Coords() {
		d.addRow([]int{colOf(cell)})
	}
	for _, p := range k.cat.Types() {
	anchors:
		for _, a := range k.board.Coords() {
			cells := k.cat.Cells(p, a)
			cols := make([]int, len(cells))
			for i, c := range cells {
				if !k.board.OnBoard(c) {
					continue anchors
				}
				cols[i] = colOf(c)
			}
			d.addRow(cols)
		}
	}
	return d
}

func (d *dlx) addRow(cols []int) {
	var first, prev *node
	for _, colID := range cols {
		col := d.cols[colID]
		n := &node{col: col}
		// vertical insert (at bottom)
		n.down = &col.node
		n.up = col.node.up
		col.node.up.down = n
		col.node.up = n
		col.size++
		// horizontal ring for the row
		if first == nil {
			first = n
			n.left = n
			n.right = n
		} else {
			n.left = prev
			n.right = prev.right
			prev.right.left = n
			prev.right = n
		}
		prev = n
	}
}

// core operations
func cover(col *column, d *dlx) {
	if col.active {
		col.active = false
		d.activeCnt--
	}
	for i := col.down; i != &col.node; i = i.down {
		for j := i.right; j != i; j = j.right {
			j.down.up = j.up
			j.up.down = j.down
			j.col.size--
		}
	}
}

func uncover(col *column, d *dlx) {
	for i := col.up; i != &col.node; i = i.up {
		for j := i.left; j != i; j = j.left {
			j.col.size++
			j.down.up = j
			j.up.down = j
		}
	}
	if !col.active {
		col.active = true
		d.activeCnt++
	}
}

// choose the active column with the smallest size
func chooseColumn(d *dlx) *column {
	var best *column
	for _, c := range d.cols {
		if c.active {
			if best == nil || c.size < best.size {
				best = c
				if best.size == 0 {
					break
				}
			}
		}
	}
	return best
}

// search counts every exact cover below the current state. It returns true
// when the context ends the search early.
func (d *dlx) search(ctx context.Context) bool {
	if d.nodes&ctxPollMask == 0 && ctx.Err() != nil {
		return true
	}
	// all cells covered → one tiling
	if d.activeCnt == 0 {
		d.found++
		return false
	}

	c := chooseColumn(d)
	if c == nil || c.size == 0 {
		return false
	}
	cover(c, d)
	for r := c.down; r != &c.node; r = r.down {
		d.nodes++
		for j := r.right; j != r; j = j.right {
			cover(j.col, d)
		}
		stop := d.search(ctx)
		// backtrack: uncover in reverse order
		for j := r.left; j != r; j = j.left {
			uncover(j.col, d)
		}
		if stop {
			uncover(c, d)
			return true
		}
	}
	uncover(c, d)
	return false
}

// Count returns the number of tilings of the board.
func (k *DLXCounter) Count(ctx context.Context) (int, ports.Stats, error) {
	start := time.Now()
	d := k.build()
	if d.search(ctx) {
		return 0, ports.Stats{Nodes: d.nodes, Duration: time.Since(start)}, errors.Wrap(ctx.Err(), "count canceled")
	}
	return d.found, ports.Stats{Nodes: d.nodes, Duration: time.Since(start)}, nil
}
