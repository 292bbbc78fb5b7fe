package httpadapter

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/tromino/internal/catalog"
	"svw.info/tromino/internal/infrastructure/storage"
	"svw.info/tromino/internal/render"
	"svw.info/tromino/internal/usecase"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	uc := usecase.NewService(catalog.Default(), storage.NewFS(t.TempDir(), storage.JSON), nil)
	uc.MaxCells = 16
	e := echo.New()
	New(uc).Register(e)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestEnumerateAndFetch(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/api/enumerate", `{"height":3,"width":3,"save":true,"crossCheck":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var er enumerateResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
	assert.Equal(t, 39, er.Tilings)
	assert.Equal(t, 8, er.Classes)
	require.NotEmpty(t, er.ID)

	rec = do(e, http.MethodGet, "/api/runs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var lr listResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lr))
	require.Len(t, lr.Runs, 1)
	assert.Equal(t, er.ID, lr.Runs[0].ID)

	rec = do(e, http.MethodGet, "/api/runs/"+er.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ld loadResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ld))
	require.NotNil(t, ld.Run)
	assert.Len(t, ld.Run.Results, 39)

	t.Run("tiling formats", func(t *testing.T) {
		tests := []struct {
			format, contentType, contains string
		}{
			{"text", "text/plain; charset=utf-8", "[[0 0 0]"},
			{"svg", "image/svg+xml", "<svg"},
			{"png", "image/png", "\x89PNG"},
		}
		for _, tt := range tests {
			rec := do(e, http.MethodGet, "/api/runs/"+er.ID+"/tilings/1?format="+tt.format, "")
			require.Equal(t, http.StatusOK, rec.Code, tt.format)
			assert.Equal(t, tt.contentType, rec.Header().Get(echo.HeaderContentType))
			assert.Contains(t, rec.Body.String(), tt.contains)
		}
	})

	rec = do(e, http.MethodGet, "/api/runs/"+er.ID+"/tilings/40", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(e, http.MethodGet, "/api/runs/"+er.ID+"/sheet", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<svg")
}

func TestEnumerateErrors(t *testing.T) {
	e := newServer(t)
	tests := []struct {
		name string
		body string
		code int
	}{
		{"bad json", `{"height":`, http.StatusBadRequest},
		{"zero height", `{"height":0,"width":3}`, http.StatusBadRequest},
		{"too large", `{"height":5,"width":5}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/api/enumerate", tt.body)
			assert.Equal(t, tt.code, rec.Code)
			var er enumerateResp
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
			assert.NotEmpty(t, er.Error)
		})
	}
}

func TestLoadMissing(t *testing.T) {
	e := newServer(t)
	rec := do(e, http.MethodGet, "/api/runs/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidate(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/api/validate", `{"tiling":[[2,1,1],[2,2,1],[0,0,0]]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var vr validateResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vr))
	assert.True(t, vr.OK)
	assert.Empty(t, vr.Conflicts)

	rec = do(e, http.MethodPost, "/api/validate", `{"tiling":[[1,1,1],[0,0,0]]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	vr = validateResp{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &vr))
	assert.False(t, vr.OK)
	assert.NotEmpty(t, vr.Conflicts)

	rec = do(e, http.MethodPost, "/api/validate", `{"tiling":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSymmetries(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodPost, "/api/symmetries", `{"tiling":[[2,1,1],[2,2,1],[0,0,0]]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var sr symmetriesResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sr))
	assert.Equal(t, "(((0, 1),), (), ((0, 0),), ())", sr.Signature)
	require.Len(t, sr.Images, 8)
	assert.Equal(t, [][]int{{2, 2, 1}, {2, 1, 1}, {0, 0, 0}}, [][]int(sr.Images[1]))
	assert.GreaterOrEqual(t, sr.Distinct, 2)

	rec = do(e, http.MethodPost, "/api/symmetries", `{"tiling":[[1,1,1]]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTilingSizeIsCapped(t *testing.T) {
	e := newServer(t)
	rec := do(e, http.MethodPost, "/api/enumerate", `{"height":3,"width":3,"save":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var er enumerateResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))

	rec = do(e, http.MethodGet, "/api/runs/"+er.ID+"/tilings/1?format=png&size=1048576", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cfg, err := png.DecodeConfig(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 3*render.MaxCellSize, cfg.Width)
	assert.Equal(t, 3*render.MaxCellSize, cfg.Height)

	rec = do(e, http.MethodGet, "/api/runs/"+er.ID+"/sheet?size=1048576", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "1048576")
}
