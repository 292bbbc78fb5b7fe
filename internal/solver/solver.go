// Package solver enumerates and counts tilings of a board.
package solver

import (
	"svw.info/tromino/internal/ports"
)

var (
	_ ports.Enumerator = (*BacktrackingSolver)(nil)
	_ ports.Counter    = (*DLXCounter)(nil)
)
