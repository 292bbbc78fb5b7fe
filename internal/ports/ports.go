package ports

import (
	"context"
	"io"
	"time"

	"svw.info/tromino/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// ProgressEvent is emitted once per piece-count vector the solver starts on.
type ProgressEvent struct {
	K      int // total pieces in the current vector
	MaxK   int
	Combo  int // 1-based index of the vector among those for K
	Combos int
	Found  int // tilings recorded so far
}

// Progress observes enumeration; it cannot influence it.
type Progress interface {
	Report(ev ProgressEvent)
}

// ProgressFunc adapts a function to Progress.
type ProgressFunc func(ev ProgressEvent)

func (f ProgressFunc) Report(ev ProgressEvent) { f(ev) }

// Enumerator lists every tiling of its board, in a deterministic order.
type Enumerator interface {
	Enumerate(ctx context.Context) ([]domain.Result, Stats, error)
}

// Counter counts tilings without materialising them.
type Counter interface {
	Count(ctx context.Context) (int, Stats, error)
}

// Classifier groups results into symmetry classes.
type Classifier interface {
	Classify(results []domain.Result) domain.Classification
}

// Renderer writes a single tiling in some output format.
type Renderer interface {
	Render(w io.Writer, t domain.Tiling) error
	ContentType() string
}

// Storage persists and retrieves runs.
type Storage interface {
	Save(ctx context.Context, r *domain.Run) error
	Load(ctx context.Context, id string) (*domain.Run, error)
	List(ctx context.Context) ([]domain.RunMeta, error)
}
