package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"horseadmin/pkg/logger"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// shared partials parsed into every page
var partials = []string{"templates/layout.html", "templates/fields.html"}

// templateCache holds one parsed set per page.
type templateCache struct {
	cache map[string]*template.Template
}

func loadTemplates() (*templateCache, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	tc := &templateCache{cache: make(map[string]*template.Template)}
	for _, file := range pages {
		name := path.Base(file)
		if name == "layout.html" || name == "fields.html" {
			continue
		}
		tmpl, err := template.New(name).ParseFS(templateFS, append(partials, file)...)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		tc.cache[name] = tmpl
	}
	return tc, nil
}

// render executes page into a buffer first so a template error never
// leaves a half-written response.
func (tc *templateCache) render(w http.ResponseWriter, status int, name string, data *pageData) {
	tmpl, ok := tc.cache[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error("Failed to render template", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
