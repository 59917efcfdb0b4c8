package httpserver

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/Clark-Hu/filmgraph/internal/catalog"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type pages struct {
	tmpl *template.Template
}

type mainPage struct {
	Search string
}

func mustParsePages() *pages {
	funcMap := template.FuncMap{
		"join":          strings.Join,
		"isPlaceholder": catalog.IsPlaceholder,
	}
	tmpl := template.Must(template.New("pages").Funcs(funcMap).ParseFS(templateFS, "templates/*.html"))
	return &pages{tmpl: tmpl}
}

// render executes the named template into a buffer so a failing template
// still yields a clean 500.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.logger.Error("render template failed", "template", name, "error", err)
		s.respondError(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
