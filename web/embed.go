// Package web serves the browser client: one page plus its script and
// stylesheet, all embedded in the binary.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.tmpl static/*
var assets embed.FS

var pages = template.Must(template.ParseFS(assets, "templates/*.tmpl"))

// Index carries the game settings the client reads from the page.
type Index struct {
	MaxMistakes int
	TickMs      int64
}

// Page renders the game page at "/" and 404s any other path.
func Page(data Index) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := pages.ExecuteTemplate(w, "index.tmpl", data); err != nil {
			http.Error(w, template.HTMLEscapeString(err.Error()), http.StatusInternalServerError)
		}
	})
}

// Static serves the client assets; mount it under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
