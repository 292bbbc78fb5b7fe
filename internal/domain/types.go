package domain

import (
	"strconv"
	"strings"
	"time"
)

// Dimensions are the board size of one enumeration run.
type Dimensions struct {
	Height int `json:"height"`
	Width  int `json:"width"`
}

func (d Dimensions) Cells() int   { return d.Height * d.Width }
func (d Dimensions) Square() bool { return d.Height == d.Width }

func (d Dimensions) String() string {
	return itoa(d.Height) + "x" + itoa(d.Width)
}

// Coord identifies a cell; row 0, col 0 is the top-left corner.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Add translates c by an offset.
func (c Coord) Add(o Coord) Coord { return Coord{Row: c.Row + o.Row, Col: c.Col + o.Col} }

// Sub returns the offset from o to c.
func (c Coord) Sub(o Coord) Coord { return Coord{Row: c.Row - o.Row, Col: c.Col - o.Col} }

// Less orders coordinates row-major.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

func (c Coord) String() string {
	return "(" + itoa(c.Row) + ", " + itoa(c.Col) + ")"
}

// Tiling holds one label per cell: 0 for a monomino, a positive label shared by
// the three cells of one placed L piece.
type Tiling [][]int

// NewTiling returns an all-monomino tiling.
func NewTiling(d Dimensions) Tiling {
	cells := make([]int, d.Cells())
	t := make(Tiling, d.Height)
	for r := range t {
		t[r] = cells[r*d.Width : (r+1)*d.Width : (r+1)*d.Width]
	}
	return t
}

// Clone returns a snapshot that shares no memory with t.
func (t Tiling) Clone() Tiling {
	if len(t) == 0 {
		return Tiling{}
	}
	out := NewTiling(Dimensions{Height: len(t), Width: len(t[0])})
	for r := range t {
		copy(out[r], t[r])
	}
	return out
}

func (t Tiling) Dimensions() Dimensions {
	if len(t) == 0 {
		return Dimensions{}
	}
	return Dimensions{Height: len(t), Width: len(t[0])}
}

func (t Tiling) At(c Coord) int { return t[c.Row][c.Col] }

// Equal compares cell contents, labels included.
func (t Tiling) Equal(o Tiling) bool {
	if len(t) != len(o) {
		return false
	}
	for r := range t {
		if len(t[r]) != len(o[r]) {
			return false
		}
		for c := range t[r] {
			if t[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// String renders the tiling one bracketed row per line.
func (t Tiling) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for r, row := range t {
		if r > 0 {
			b.WriteString("\n ")
		}
		b.WriteByte('[')
		for c, v := range row {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(itoa(v))
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
	return b.String()
}

// Combo is an ordered selection of anchors for pieces of a single type.
type Combo []Coord

// CountVector holds how many pieces of each type a candidate tiling uses.
type CountVector []int

func (v CountVector) Total() int {
	n := 0
	for _, c := range v {
		n += c
	}
	return n
}

// Signature has one slot per piece type, each holding that type's anchors in
// row-major order. Label numbering does not affect it.
type Signature [][]Coord

// Key is a compact canonical encoding usable as a map key.
func (s Signature) Key() string {
	var b strings.Builder
	for i, slot := range s {
		if i > 0 {
			b.WriteByte('|')
		}
		for j, c := range slot {
			if j > 0 {
				b.WriteByte(';')
			}
			b.WriteString(itoa(c.Row))
			b.WriteByte(',')
			b.WriteString(itoa(c.Col))
		}
	}
	return b.String()
}

func (s Signature) Equal(o Signature) bool { return s.Key() == o.Key() }

func (s Signature) Clone() Signature {
	out := make(Signature, len(s))
	for i, slot := range s {
		out[i] = make([]Coord, len(slot))
		copy(out[i], slot)
	}
	return out
}

// Pieces counts the anchors across all slots.
func (s Signature) Pieces() int {
	n := 0
	for _, slot := range s {
		n += len(slot)
	}
	return n
}

// String uses nested tuple notation, e.g. (((0, 2),), (), ((2, 0), (3, 1)), ()).
func (s Signature) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, slot := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, c := range slot {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(c.String())
		}
		if len(slot) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
	}
	b.WriteByte(')')
	return b.String()
}

// Result is one completed tiling in enumeration order.
type Result struct {
	Index     int       `json:"index"`
	Tiling    Tiling    `json:"tiling"`
	Signature Signature `json:"signature"`
}

// NoDuplicate marks a tiling that opened its own equivalence class.
const NoDuplicate = -1

// Classification groups results into symmetry equivalence classes.
type Classification struct {
	// Classes lists result indices per class, in discovery order.
	Classes [][]int `json:"classes"`
	// DuplicateOf[i] is the index of the earlier tiling that result i is a
	// symmetric image of, or NoDuplicate.
	DuplicateOf []int `json:"duplicateOf"`
}

// ClassOf returns the class index containing result i, or -1.
func (c Classification) ClassOf(i int) int {
	for ci, members := range c.Classes {
		for _, m := range members {
			if m == i {
				return ci
			}
		}
	}
	return -1
}

// RunStats summarises the cost of an enumeration.
type RunStats struct {
	Nodes      int           `json:"nodes"`
	Duration   time.Duration `json:"duration"`
	CrossCount int           `json:"crossCount,omitempty"`
}

// Run is a persisted enumeration with its classification.
type Run struct {
	ID             string         `json:"id"`
	Dimensions     Dimensions     `json:"dimensions"`
	Results        []Result       `json:"results"`
	Classification Classification `json:"classification"`
	Stats          RunStats       `json:"stats"`
	CreatedAt      int64          `json:"createdAt"`
	Name           string         `json:"name,omitempty"`
}

// RunMeta is a lightweight listing entry.
type RunMeta struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Dimensions Dimensions `json:"dimensions"`
	Tilings    int        `json:"tilings"`
	Classes    int        `json:"classes"`
	CreatedAt  int64      `json:"createdAt"`
}

func itoa(i int) string { return strconv.Itoa(i) }
