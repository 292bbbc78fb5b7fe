package domain

// PieceType indexes the piece catalog. The default catalog holds the four
// L-tromino orientations, named after the corner the L bends around.
type PieceType int

const (
	TopRight PieceType = iota
	BottomRight
	BottomLeft
	TopLeft
)

func (p PieceType) String() string {
	switch p {
	case TopRight:
		return "top-right"
	case BottomRight:
		return "bottom-right"
	case BottomLeft:
		return "bottom-left"
	case TopLeft:
		return "top-left"
	default:
		return "piece-" + itoa(int(p))
	}
}

// TransformKind selects one non-identity generator of the board's symmetry group.
type TransformKind int

const (
	Rot90        TransformKind = iota // quarter turn counterclockwise
	Rot180                            // half turn
	Rot270                            // three quarter turns counterclockwise
	FlipVertical                      // mirror across the vertical axis
)

// NumTransformKinds sizes per-transform lookup tables.
const NumTransformKinds = 4

// TransformKindOf maps the (rotationSteps, flip) pair used by the symmetry
// package onto a table index. ok is false for the identity.
func TransformKindOf(rotationSteps int, flip bool) (k TransformKind, ok bool) {
	if flip {
		return FlipVertical, true
	}
	switch ((rotationSteps % 4) + 4) % 4 {
	case 1:
		return Rot90, true
	case 2:
		return Rot180, true
	case 3:
		return Rot270, true
	}
	return 0, false
}
