package main

import (
	"fmt"
	"os"
	"path/filepath"

	"svw.info/tromino/internal/domain"
	"svw.info/tromino/internal/ports"
	"svw.info/tromino/internal/render"
)

// Files are named width first, e.g. tilings_4x3.txt for 3 rows of 4.
func reportName(d domain.Dimensions) string {
	return fmt.Sprintf("tilings_%dx%d.txt", d.Width, d.Height)
}

func filterReportName(d domain.Dimensions) string {
	return fmt.Sprintf("filter_test_%dx%d.txt", d.Width, d.Height)
}

func sheetName(d domain.Dimensions) string {
	return fmt.Sprintf("sheet_%dx%d.svg", d.Width, d.Height)
}

func imageDir(d domain.Dimensions) string {
	return fmt.Sprintf("tilings_%dx%d", d.Width, d.Height)
}

type imageOutput struct {
	ext string
	r   ports.Renderer
}

// writeOutputs writes the text report plus any requested images under
// cfg.out and returns the paths written.
func writeOutputs(cfg config, run *domain.Run) ([]string, error) {
	d := run.Dimensions
	var written []string

	create := func(name string, write func(f *os.File) error) error {
		p := filepath.Join(cfg.out, name)
		f, err := os.Create(p)
		if err != nil {
			return err
		}
		if err := write(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		written = append(written, p)
		return nil
	}

	err := create(reportName(d), func(f *os.File) error {
		return render.WriteReport(f, run, cfg.printTilings)
	})
	if err != nil {
		return written, err
	}

	if cfg.sheet {
		err := create(sheetName(d), func(f *os.File) error {
			return render.WriteSheet(f, run, cfg.cellSize)
		})
		if err != nil {
			return written, err
		}
	}

	var renderers []imageOutput
	if cfg.svg {
		renderers = append(renderers, imageOutput{".svg", render.SVG{CellSize: cfg.cellSize}})
	}
	if cfg.png {
		renderers = append(renderers, imageOutput{".png", render.PNG{CellSize: cfg.cellSize, Labels: true}})
	}
	if len(renderers) == 0 {
		return written, nil
	}
	if err := os.MkdirAll(filepath.Join(cfg.out, imageDir(d)), 0o755); err != nil {
		return written, err
	}
	for _, res := range run.Results {
		for _, rr := range renderers {
			name := filepath.Join(imageDir(d), fmt.Sprintf("%04d%s", res.Index+1, rr.ext))
			err := create(name, func(f *os.File) error {
				return rr.r.Render(f, res.Tiling)
			})
			if err != nil {
				return written, err
			}
		}
	}
	return written, nil
}
