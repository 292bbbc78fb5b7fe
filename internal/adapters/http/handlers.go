package httpadapter

import (
	"bytes"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"svw.info/tromino/internal/domain"
	"svw.info/tromino/internal/grid"
	"svw.info/tromino/internal/ports"
	"svw.info/tromino/internal/render"
	"svw.info/tromino/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(e *echo.Echo) {
	api := e.Group("/api")
	api.POST("/enumerate", h.handleEnumerate)
	api.GET("/runs", h.handleList)
	api.GET("/runs/:id", h.handleLoad)
	api.GET("/runs/:id/tilings/:n", h.handleTiling)
	api.GET("/runs/:id/sheet", h.handleSheet)
	api.POST("/validate", h.handleValidate)
	api.POST("/symmetries", h.handleSymmetries)
}

// ---- Enumerate ----

type enumerateReq struct {
	Height     int    `json:"height"`
	Width      int    `json:"width"`
	Name       string `json:"name,omitempty"`
	CrossCheck bool   `json:"crossCheck,omitempty"`
	Save       bool   `json:"save,omitempty"`
}

type enumerateResp struct {
	ID         string      `json:"id,omitempty"`
	Tilings    int         `json:"tilings"`
	Classes    int         `json:"classes"`
	Run        *domain.Run `json:"run,omitempty"`
	DurationMs int64       `json:"durationMs,omitempty"`
	Nodes      int         `json:"nodes,omitempty"`
	Error      string      `json:"error,omitempty"`
}

func (h *Handler) handleEnumerate(c echo.Context) error {
	var req enumerateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, enumerateResp{Error: "invalid JSON: " + err.Error()})
	}
	d := domain.Dimensions{Height: req.Height, Width: req.Width}
	run, err := h.UC.Run(c.Request().Context(), d, usecase.Options{Name: req.Name, CrossCheck: req.CrossCheck})
	if err != nil {
		return c.JSON(statusFor(err), enumerateResp{Error: err.Error()})
	}
	if req.Save {
		if err := h.UC.Save(c.Request().Context(), run); err != nil {
			return c.JSON(http.StatusInternalServerError, enumerateResp{Error: err.Error()})
		}
	}
	return c.JSON(http.StatusOK, enumerateResp{
		ID:         run.ID,
		Tilings:    len(run.Results),
		Classes:    len(run.Classification.Classes),
		Run:        run,
		DurationMs: run.Stats.Duration.Milliseconds(),
		Nodes:      run.Stats.Nodes,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, grid.ErrInvalidDimensions), errors.Is(err, usecase.ErrTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, os.ErrNotExist):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ---- Runs ----

type listResp struct {
	Runs  []domain.RunMeta `json:"runs"`
	Error string           `json:"error,omitempty"`
}

func (h *Handler) handleList(c echo.Context) error {
	rs, err := h.UC.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, listResp{Error: err.Error()})
	}
	if rs == nil {
		rs = []domain.RunMeta{}
	}
	return c.JSON(http.StatusOK, listResp{Runs: rs})
}

type loadResp struct {
	Run   *domain.Run `json:"run,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (h *Handler) handleLoad(c echo.Context) error {
	run, err := h.UC.Load(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(statusFor(err), loadResp{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, loadResp{Run: run})
}

func rendererFor(format string, size int, labels bool) ports.Renderer {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "png":
		return render.PNG{CellSize: size, Labels: labels}
	case "text", "txt":
		return render.Text{}
	default:
		return render.SVG{CellSize: size, Labels: labels}
	}
}

// handleTiling renders tiling n (1-based) of a stored run. Query parameters:
// format=svg|png|text, size=<px per cell>, labels=true.
func (h *Handler) handleTiling(c echo.Context) error {
	run, err := h.UC.Load(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(statusFor(err), loadResp{Error: err.Error()})
	}
	n, err := strconv.Atoi(c.Param("n"))
	if err != nil || n < 1 || n > len(run.Results) {
		return c.JSON(http.StatusNotFound, loadResp{Error: "no such tiling: " + c.Param("n")})
	}
	size, _ := strconv.Atoi(c.QueryParam("size"))
	labels, _ := strconv.ParseBool(c.QueryParam("labels"))
	r := rendererFor(c.QueryParam("format"), size, labels)

	var buf bytes.Buffer
	if err := r.Render(&buf, run.Results[n-1].Tiling); err != nil {
		return c.JSON(http.StatusInternalServerError, loadResp{Error: err.Error()})
	}
	return c.Blob(http.StatusOK, r.ContentType(), buf.Bytes())
}

func (h *Handler) handleSheet(c echo.Context) error {
	run, err := h.UC.Load(c.Request().Context(), c.Param("id"))
	if err != nil {
		return c.JSON(statusFor(err), loadResp{Error: err.Error()})
	}
	size, _ := strconv.Atoi(c.QueryParam("size"))
	var buf bytes.Buffer
	if err := render.WriteSheet(&buf, run, size); err != nil {
		return c.JSON(http.StatusInternalServerError, loadResp{Error: err.Error()})
	}
	return c.Blob(http.StatusOK, render.SVG{}.ContentType(), buf.Bytes())
}

// ---- Validate / Symmetries ----

type tilingReq struct {
	Tiling domain.Tiling `json:"tiling"`
}

type validateResp struct {
	OK        bool           `json:"ok"`
	Conflicts []domain.Coord `json:"conflicts,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func (h *Handler) handleValidate(c echo.Context) error {
	var req tilingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validateResp{Error: "invalid JSON: " + err.Error()})
	}
	ok, conflicts, err := h.UC.Validate(c.Request().Context(), req.Tiling)
	if err != nil {
		return c.JSON(http.StatusBadRequest, validateResp{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, validateResp{OK: ok, Conflicts: conflicts})
}

type symmetriesResp struct {
	Signature string          `json:"signature,omitempty"`
	Images    []domain.Tiling `json:"images,omitempty"`
	Distinct  int             `json:"distinct,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func (h *Handler) handleSymmetries(c echo.Context) error {
	var req tilingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, symmetriesResp{Error: "invalid JSON: " + err.Error()})
	}
	sig, images, err := h.UC.Symmetries(c.Request().Context(), req.Tiling)
	if err != nil {
		return c.JSON(http.StatusBadRequest, symmetriesResp{Error: err.Error()})
	}
	distinct := lo.UniqBy(images, domain.Tiling.String)
	return c.JSON(http.StatusOK, symmetriesResp{Signature: sig.String(), Images: images, Distinct: len(distinct)})
}
