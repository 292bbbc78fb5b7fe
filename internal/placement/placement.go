// Package placement puts pieces onto a tiling buffer and takes them off again.
//
// Placement failures (overlap, off-board) are ordinary outcomes reported as
// false. Removing a piece that was never placed breaks the caller's
// place/undo pairing; in strict mode that is detected and panics.
package placement

import (
	"fmt"

	"svw.info/tromino/internal/catalog"
	"svw.info/tromino/internal/domain"
	"svw.info/tromino/internal/grid"
)

// InvariantError reports a broken place/remove pairing.
type InvariantError struct {
	Piece  domain.PieceType
	Anchor domain.Coord
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("placement invariant: %s at %s: %s", e.Piece, e.Anchor, e.Reason)
}

// Engine is stateless apart from its configuration; the tiling it mutates is
// always passed in by the caller.
type Engine struct {
	board  *grid.Board
	cat    *catalog.Catalog
	strict bool
	nodes  int
}

// New returns an engine for one board and catalog.
func New(b *grid.Board, c *catalog.Catalog) *Engine {
	return &Engine{board: b, cat: c}
}

// SetStrict enables consistency checks on removal.
func (e *Engine) SetStrict(strict bool) { e.strict = strict }

// Nodes counts TryPlace calls since the engine was created.
func (e *Engine) Nodes() int { return e.nodes }

// TryPlace writes label into the cells of a piece anchored at a. It leaves t
// untouched and returns false when any cell is off the board or taken.
func (e *Engine) TryPlace(t domain.Tiling, p domain.PieceType, a domain.Coord, label int) bool {
	e.nodes++
	if !e.board.OnBoard(a) || !e.board.IsFree(t, a) {
		return false
	}
	offs := e.cat.Offsets(p)
	for _, o := range offs {
		c := a.Add(o)
		if !e.board.OnBoard(c) || !e.board.IsFree(t, c) {
			return false
		}
	}
	t[a.Row][a.Col] = label
	for _, o := range offs {
		c := a.Add(o)
		t[c.Row][c.Col] = label
	}
	return true
}

// Remove clears a piece previously placed by TryPlace.
func (e *Engine) Remove(t domain.Tiling, p domain.PieceType, a domain.Coord) {
	offs := e.cat.Offsets(p)
	if e.strict {
		e.check(t, p, a)
	}
	t[a.Row][a.Col] = 0
	for _, o := range offs {
		c := a.Add(o)
		t[c.Row][c.Col] = 0
	}
}

func (e *Engine) check(t domain.Tiling, p domain.PieceType, a domain.Coord) {
	fail := func(reason string) {
		panic(&InvariantError{Piece: p, Anchor: a, Reason: reason})
	}
	if !e.board.OnBoard(a) {
		fail("anchor off board")
	}
	label := t[a.Row][a.Col]
	if label <= 0 {
		fail("anchor not occupied")
	}
	for _, o := range e.cat.Offsets(p) {
		c := a.Add(o)
		if !e.board.OnBoard(c) {
			fail("cell " + c.String() + " off board")
		}
		if t[c.Row][c.Col] != label {
			fail("cell " + c.String() + " belongs to another piece")
		}
	}
}

// TryPlaceCombo places one piece per anchor with labels startLabel,
// startLabel+1 and so on. It is all-or-nothing: on the first failure every
// piece already placed by this call is removed again, newest first.
func (e *Engine) TryPlaceCombo(t domain.Tiling, p domain.PieceType, anchors domain.Combo, startLabel int) bool {
	for i, a := range anchors {
		if !e.TryPlace(t, p, a, startLabel+i) {
			for j := i - 1; j >= 0; j-- {
				e.Remove(t, p, anchors[j])
			}
			return false
		}
	}
	return true
}

// RemoveCombo undoes a successful TryPlaceCombo.
func (e *Engine) RemoveCombo(t domain.Tiling, p domain.PieceType, anchors domain.Combo) {
	for i := len(anchors) - 1; i >= 0; i-- {
		e.Remove(t, p, anchors[i])
	}
}

// Placement is a combo currently on the board. Undo takes it off; calling it
// again is a no-op, so it can be deferred alongside an explicit early undo.
type Placement struct {
	engine  *Engine
	tiling  domain.Tiling
	piece   domain.PieceType
	anchors domain.Combo
	done    bool
}

// Place is TryPlaceCombo returning a guard that owns the undo.
func (e *Engine) Place(t domain.Tiling, p domain.PieceType, anchors domain.Combo, startLabel int) (*Placement, bool) {
	if !e.TryPlaceCombo(t, p, anchors, startLabel) {
		return nil, false
	}
	return &Placement{engine: e, tiling: t, piece: p, anchors: anchors}, true
}

func (pl *Placement) Undo() {
	if pl == nil || pl.done {
		return
	}
	pl.done = true
	pl.engine.RemoveCombo(pl.tiling, pl.piece, pl.anchors)
}
