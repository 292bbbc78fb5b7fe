package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mattn/go-isatty"

	httpadapter "svw.info/tromino/internal/adapters/http"
	"svw.info/tromino/internal/catalog"
	"svw.info/tromino/internal/domain"
	"svw.info/tromino/internal/infrastructure/storage"
	"svw.info/tromino/internal/ports"
	"svw.info/tromino/internal/usecase"
	"svw.info/tromino/web"
)

type config struct {
	height, width int
	out           string
	printTilings  bool
	filterReport  bool
	progress      bool
	svg, png      bool
	sheet         bool
	cellSize      int
	format        string
	save          bool
	crossCheck    bool
	strict        bool
	serve         bool
	addr          string
	maxCells      int
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func main() {
	var cfg config
	flag.IntVar(&cfg.height, "height", 4, "board height")
	flag.IntVar(&cfg.width, "width", 4, "board width")
	flag.StringVar(&cfg.out, "out", ".", "output directory")
	flag.BoolVar(&cfg.printTilings, "print-tilings", true, "list every tiling in the report")
	flag.BoolVar(&cfg.filterReport, "filter-report", false, "write candidate anchor lists to filter_test_{W}x{H}.txt")
	flag.BoolVar(&cfg.progress, "progress", isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()), "log progress per count vector")
	flag.BoolVar(&cfg.svg, "svg", false, "write one SVG per tiling")
	flag.BoolVar(&cfg.png, "png", false, "write one PNG per tiling")
	flag.BoolVar(&cfg.sheet, "sheet", false, "write an SVG contact sheet grouped by class")
	flag.IntVar(&cfg.cellSize, "cell-size", 0, "pixels per cell for images (0 = default)")
	flag.StringVar(&cfg.format, "format", "json", "run storage format: json|msgpack")
	flag.BoolVar(&cfg.save, "save", false, "store the run under <out>/runs")
	flag.BoolVar(&cfg.crossCheck, "crosscheck", false, "verify the count with dancing links")
	flag.BoolVar(&cfg.strict, "strict", false, "check placement invariants while searching")
	flag.BoolVar(&cfg.serve, "serve", false, "serve the HTTP API instead of running once")
	flag.StringVar(&cfg.addr, "addr", ":8080", "listen address")
	flag.IntVar(&cfg.maxCells, "max-cells", 20, "largest board the server enumerates")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(*levelStr)}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	st := storage.NewFS(filepath.Join(cfg.out, "runs"), storage.ParseFormat(cfg.format))
	uc := usecase.NewService(catalog.Default(), st, logger)

	var err error
	if cfg.serve {
		uc.MaxCells = cfg.maxCells
		err = serve(ctx, cfg.addr, uc, logger)
	} else {
		if cfg.progress {
			uc.Progress = progressLogger(logger)
		}
		err = runOnce(ctx, cfg, uc, logger)
	}
	if err != nil {
		logger.Error("tromino failed", "err", err)
		os.Exit(1)
	}
}

func progressLogger(logger *slog.Logger) ports.Progress {
	return ports.ProgressFunc(func(ev ports.ProgressEvent) {
		logger.Info("progress",
			"pieces", ev.K,
			"max", ev.MaxK,
			"combo", ev.Combo,
			"of", ev.Combos,
			"found", ev.Found,
		)
	})
}

func runOnce(ctx context.Context, cfg config, uc *usecase.Service, logger *slog.Logger) error {
	d := domain.Dimensions{Height: cfg.height, Width: cfg.width}
	if err := os.MkdirAll(cfg.out, 0o755); err != nil {
		return err
	}

	opt := usecase.Options{CrossCheck: cfg.crossCheck, Strict: cfg.strict}
	if cfg.filterReport {
		f, err := os.Create(filepath.Join(cfg.out, filterReportName(d)))
		if err != nil {
			return err
		}
		defer f.Close()
		opt.FilterReport = f
	}

	run, err := uc.Run(ctx, d, opt)
	if err != nil {
		return err
	}
	logger.Info("enumerated",
		"board", d.String(),
		"tilings", len(run.Results),
		"classes", len(run.Classification.Classes),
		"nodes", run.Stats.Nodes,
		"dur", run.Stats.Duration.Round(time.Millisecond),
	)

	written, err := writeOutputs(cfg, run)
	if err != nil {
		return err
	}
	for _, p := range written {
		logger.Debug("wrote", "path", p)
	}
	if cfg.save {
		if err := uc.Save(ctx, run); err != nil {
			return err
		}
		logger.Info("saved", "id", run.ID)
	}
	return nil
}

func serve(ctx context.Context, addr string, uc *usecase.Service, logger *slog.Logger) error {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:       true,
		LogURI:          true,
		LogStatus:       true,
		LogLatency:      true,
		LogResponseSize: true,
		LogError:        true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"path", v.URI,
				"status", v.Status,
				"bytes", v.ResponseSize,
				"dur", v.Latency.Round(time.Millisecond),
			}
			if v.Error != nil {
				attrs = append(attrs, "err", v.Error)
			}
			logger.Info("http", attrs...)
			return nil
		},
	}))

	tmpl := web.Templates()
	e.GET("/static/*", echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(web.StaticFS()))))
	e.GET("/", func(c echo.Context) error {
		runs, err := uc.List(c.Request().Context())
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		return web.RenderIndex(c.Response(), tmpl, web.IndexData{Runs: runs, MaxCells: uc.MaxCells})
	})
	httpadapter.New(uc).Register(e)

	errc := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "maxCells", uc.MaxCells)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
