package render

import (
	"fmt"
	"io"

	"svw.info/tromino/internal/domain"
)

// Text writes a tiling as bracketed rows of labels.
type Text struct{}

func (Text) ContentType() string { return "text/plain; charset=utf-8" }

func (Text) Render(w io.Writer, t domain.Tiling) error {
	_, err := fmt.Fprintln(w, t.String())
	return err
}

// WriteReport writes the run summary. With tilings set every tiling is
// listed, 1-indexed, with the tiling it duplicates under symmetry.
func WriteReport(w io.Writer, run *domain.Run, tilings bool) error {
	ew := &errWriter{w: w}
	if tilings {
		for _, r := range run.Results {
			ew.printf("%d:\n%s\n", r.Index+1, r.Tiling)
			if dup := run.Classification.DuplicateOf[r.Index]; dup != domain.NoDuplicate {
				ew.printf("symmetric to: %d\n", dup+1)
			}
			ew.printf("\n")
		}
	}
	d := run.Dimensions
	ew.printf("For %d x %d rectangles:\n", d.Width, d.Height)
	ew.printf("The number of tilings is: %d\n", len(run.Results))
	ew.printf("The number of tilings up to symmetry is: %d\n", len(run.Classification.Classes))
	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
