// Package templates holds the embedded page templates and static assets.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

//go:embed *.html
var pageFS embed.FS

//go:embed static
var staticFS embed.FS

// Renderer executes named templates parsed from the embedded pages.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("pages").Funcs(funcs).ParseFS(pageFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes template name to w with the given bindings.
func (r *Renderer) Render(w io.Writer, name string, data map[string]any) error {
	if err := r.tmpl.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// Static serves the embedded static directory.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// The directory is embedded at build time.
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

var funcs = template.FuncMap{
	"text":  text,
	"price": price,
	"coord": coord,
}

func text(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func price(v any) string {
	switch p := v.(type) {
	case nil:
		return "N/A"
	case float64:
		return fmt.Sprintf("%.3f", p)
	case int64:
		return fmt.Sprintf("%d.000", p)
	default:
		return fmt.Sprint(p)
	}
}

func coord(v float64) string {
	return fmt.Sprintf("%.5f", v)
}
