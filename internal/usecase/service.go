package usecase

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"svw.info/tromino/internal/catalog"
	"svw.info/tromino/internal/domain"
	"svw.info/tromino/internal/grid"
	"svw.info/tromino/internal/ports"
	"svw.info/tromino/internal/solver"
	"svw.info/tromino/internal/symmetry"
	"svw.info/tromino/internal/validator"
)

// ErrTooLarge rejects boards above the service's cell limit.
var ErrTooLarge = errors.New("board too large")

// ErrCountMismatch means the enumerator and the independent counter disagree.
var ErrCountMismatch = errors.New("tiling count mismatch")

var errNotConfigured = errors.New("usecase dependency not configured")

// Options tune a single Run.
type Options struct {
	Name         string
	CrossCheck   bool
	Strict       bool
	FilterReport io.Writer // optional dump of candidate anchor lists
}

type Service struct {
	Catalog  *catalog.Catalog
	Storage  ports.Storage
	Progress ports.Progress
	Logger   *slog.Logger
	// MaxCells bounds Height*Width; zero means unlimited.
	MaxCells int
}

func NewService(c *catalog.Catalog, st ports.Storage, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{Catalog: c, Storage: st, Logger: logger}
}

// Run enumerates and classifies every tiling of a board of size d.
func (u *Service) Run(ctx context.Context, d domain.Dimensions, opt Options) (*domain.Run, error) {
	if u.Catalog == nil {
		return nil, errNotConfigured
	}
	b, err := grid.New(d)
	if err != nil {
		return nil, err
	}
	if u.MaxCells > 0 && d.Cells() > u.MaxCells {
		return nil, errors.Wrapf(ErrTooLarge, "%s has %d cells, limit is %d", d, d.Cells(), u.MaxCells)
	}

	opts := []solver.Option{solver.WithStrict(opt.Strict)}
	if u.Progress != nil {
		opts = append(opts, solver.WithProgress(u.Progress))
	}
	if opt.FilterReport != nil {
		opts = append(opts, solver.WithFilterReport(opt.FilterReport))
	}
	results, st, err := solver.NewBacktrackingSolver(b, u.Catalog, opts...).Enumerate(ctx)
	if err != nil {
		return nil, err
	}
	u.Logger.Debug("enumerated", "board", d.String(), "tilings", len(results), "nodes", st.Nodes, "dur", st.Duration)

	start := time.Now()
	cls := symmetry.NewClassifier(u.Catalog, d).Classify(results)
	u.Logger.Debug("classified", "board", d.String(), "classes", len(cls.Classes), "dur", time.Since(start))

	run := &domain.Run{
		ID:             uuid.NewString(),
		Name:           opt.Name,
		Dimensions:     d,
		Results:        results,
		Classification: cls,
		Stats:          domain.RunStats{Nodes: st.Nodes, Duration: st.Duration},
		CreatedAt:      time.Now().UnixNano(),
	}
	if opt.CrossCheck {
		n, cst, err := solver.NewDLXCounter(b, u.Catalog).Count(ctx)
		if err != nil {
			return nil, err
		}
		u.Logger.Debug("cross-checked", "board", d.String(), "count", n, "nodes", cst.Nodes, "dur", cst.Duration)
		if n != len(results) {
			return nil, errors.Wrapf(ErrCountMismatch, "enumerated %d, dancing links counted %d", len(results), n)
		}
		run.Stats.CrossCount = n
	}
	return run, nil
}

// Validate checks a single tiling against the catalog.
func (u *Service) Validate(ctx context.Context, t domain.Tiling) (bool, []domain.Coord, error) {
	if u.Catalog == nil {
		return false, nil, errNotConfigured
	}
	return validator.New(u.Catalog).Validate(ctx, t)
}

// Symmetries returns the images of t under the symmetry group of its board,
// relabelled the way the enumerator labels them.
func (u *Service) Symmetries(ctx context.Context, t domain.Tiling) (domain.Signature, []domain.Tiling, error) {
	if u.Catalog == nil {
		return nil, nil, errNotConfigured
	}
	ok, _, err := u.Validate(ctx, t)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, errors.Wrap(symmetry.ErrNotAPiece, "tiling is not valid")
	}
	sig, err := symmetry.SignatureOf(u.Catalog, t)
	if err != nil {
		return nil, nil, err
	}
	d := t.Dimensions()
	var images []domain.Tiling
	for _, s := range symmetry.Symmetries(u.Catalog, d, sig) {
		img, err := symmetry.Materialize(u.Catalog, d, s)
		if err != nil {
			return nil, nil, err
		}
		images = append(images, img)
	}
	return sig, images, nil
}

// Persistence
func (u *Service) Save(ctx context.Context, r *domain.Run) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, r)
}
func (u *Service) Load(ctx context.Context, id string) (*domain.Run, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]domain.RunMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
