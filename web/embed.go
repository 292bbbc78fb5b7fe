package web

import (
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"svw.info/tromino/internal/domain"
)

//go:embed templates/*.tmpl static/*
var Assets embed.FS

// StaticFS returns the /static assets.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(Assets, "static")
	if err != nil {
		return http.FS(embed.FS{})
	}
	return http.FS(sub)
}

var funcs = template.FuncMap{
	"when": func(nanos int64) string {
		return time.Unix(0, nanos).UTC().Format("2006-01-02 15:04:05")
	},
}

// Templates parses the embedded templates.
func Templates() *template.Template {
	return template.Must(template.New("").Funcs(funcs).ParseFS(Assets, "templates/*.tmpl"))
}

// IndexData feeds index.tmpl.
type IndexData struct {
	Runs []domain.RunMeta
	// MaxCells is the largest board the server enumerates; zero hides the hint.
	MaxCells int
}

// RenderIndex writes the landing page listing stored runs.
func RenderIndex(w io.Writer, tmpl *template.Template, data IndexData) error {
	return tmpl.ExecuteTemplate(w, "index.tmpl", data)
}
