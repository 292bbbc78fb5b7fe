package storage

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"

	"svw.info/tromino/internal/domain"
)

// ErrCorruptRun marks a stored run whose classification is inconsistent.
var ErrCorruptRun = errors.New("corrupt run")

// Format selects the on-disk encoding of a run.
type Format string

const (
	JSON    Format = "json"
	Msgpack Format = "msgpack"
)

// ParseFormat maps a flag value onto a Format, defaulting to JSON.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "msgpack", "mp":
		return Msgpack
	default:
		return JSON
	}
}

func (f Format) ext() string { return "." + string(f) }

// FS stores each run as <dir>/<H>x<W>/<id>.<format>.
type FS struct {
	dir    string
	format Format
}

func NewFS(dir string, format Format) *FS { return &FS{dir: dir, format: format} }

var mh codec.MsgpackHandle

func (s *FS) pathFor(id string, d domain.Dimensions) string {
	return filepath.Join(s.dir, d.String(), strings.TrimSpace(id)+s.format.ext())
}

func (s *FS) Save(ctx context.Context, r *domain.Run) error {
	if r == nil || r.ID == "" {
		return errors.New("invalid run: missing ID")
	}
	if strings.ContainsAny(r.ID, `/\`) {
		return errors.Errorf("invalid run ID %q", r.ID)
	}
	target := s.pathFor(r.ID, r.Dimensions)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.Wrap(err, "create run directory")
	}
	f, err := os.Create(target)
	if err != nil {
		return errors.Wrap(err, "create run file")
	}
	if err := encode(f, s.format, r); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", target)
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "close %s", target)
	}
	return nil
}

func encode(w io.Writer, f Format, r *domain.Run) error {
	if f == Msgpack {
		return codec.NewEncoder(w, &mh).Encode(r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func decode(data []byte, f Format, out *domain.Run) error {
	if f == Msgpack {
		return codec.NewDecoderBytes(data, &mh).Decode(out)
	}
	return json.Unmarshal(data, out)
}

// Load finds a run by ID under any board size, in either format.
func (s *FS) Load(ctx context.Context, id string) (*domain.Run, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.ContainsAny(id, `/\*?[`) {
		return nil, errors.Errorf("invalid run ID %q", id)
	}
	for _, f := range []Format{s.format, otherFormat(s.format)} {
		matches, err := filepath.Glob(filepath.Join(s.dir, "*", id+f.ext()))
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			continue
		}
		data, err := os.ReadFile(matches[0])
		if err != nil {
			return nil, err
		}
		var out domain.Run
		if err := decode(data, f, &out); err != nil {
			return nil, errors.Wrapf(err, "decode %s", matches[0])
		}
		if err := checkRun(&out); err != nil {
			return nil, errors.Wrapf(err, "load %s", matches[0])
		}
		return &out, nil
	}
	return nil, os.ErrNotExist
}

// checkRun rejects a decoded run whose classification does not index its
// results.
func checkRun(r *domain.Run) error {
	n := len(r.Results)
	if len(r.Classification.DuplicateOf) != n {
		return errors.Wrapf(ErrCorruptRun, "%d results but %d duplicate entries", n, len(r.Classification.DuplicateOf))
	}
	for i, res := range r.Results {
		if res.Index != i {
			return errors.Wrapf(ErrCorruptRun, "result %d has index %d", i, res.Index)
		}
		if dup := r.Classification.DuplicateOf[i]; dup < domain.NoDuplicate || dup >= n {
			return errors.Wrapf(ErrCorruptRun, "result %d duplicates %d", i, dup)
		}
	}
	for ci, class := range r.Classification.Classes {
		for _, idx := range class {
			if idx < 0 || idx >= n {
				return errors.Wrapf(ErrCorruptRun, "class %d lists result %d", ci, idx)
			}
		}
	}
	return nil
}

func otherFormat(f Format) Format {
	if f == Msgpack {
		return JSON
	}
	return Msgpack
}

// List returns metadata for every stored run, newest first.
func (s *FS) List(ctx context.Context) ([]domain.RunMeta, error) {
	dirs, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []domain.RunMeta
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		ents, err := os.ReadDir(filepath.Join(s.dir, d.Name()))
		if err != nil {
			return nil, err
		}
		for _, e := range ents {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			f := Format(strings.TrimPrefix(filepath.Ext(name), "."))
			if f != JSON && f != Msgpack {
				continue
			}
			data, err := os.ReadFile(filepath.Join(s.dir, d.Name(), name))
			if err != nil {
				continue
			}
			var r domain.Run
			if err := decode(data, f, &r); err != nil || r.ID == "" || checkRun(&r) != nil {
				continue
			}
			out = append(out, domain.RunMeta{
				ID:         r.ID,
				Name:       r.Name,
				Dimensions: r.Dimensions,
				Tilings:    len(r.Results),
				Classes:    len(r.Classification.Classes),
				CreatedAt:  r.CreatedAt,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}
