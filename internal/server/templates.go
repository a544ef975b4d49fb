package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcMap = template.FuncMap{
	"FormatDateTime": formatDateTime,
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("January 2, 2006 at 15:04")
}

var pageTemplates = map[string]*template.Template{}

func init() {
	// Each page is parsed together with the layout so pages can define
	// their own "content" block.
	pages := []string{"home.html", "events.html", "event.html", "event_new.html", "auth.html", "verify.html"}
	for _, page := range pages {
		pageTemplates[page] = template.Must(
			template.New("layout.html").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+page))
	}
}

// Render implements handlers.Server. The page is rendered into a buffer
// first so a template failure never leaves a half-written response.
func (s *Server) Render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := pageTemplates[name]
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown page: %s", name), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
