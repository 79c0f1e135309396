// ABOUTME: TemplateEngine loads the embedded HTML templates and renders them with html/template.
// ABOUTME: The json func serializes catalog data into the page for the frontend script.

package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/nyghtowl/mystical-journeys/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// HomeData holds everything the quest form page needs.
type HomeData struct {
	Catalog   *config.Catalog
	Providers []ProviderInfo
}

// TemplateEngine loads and renders the embedded HTML templates.
type TemplateEngine struct {
	index *template.Template
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		// json emits a value as a JS expression inside a <script> block.
		"json": func(v any) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(b), nil
		},
	}
}

// NewTemplateEngine parses the embedded templates.
func NewTemplateEngine() (*TemplateEngine, error) {
	t, err := template.New("index.html").Funcs(templateFuncs()).ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &TemplateEngine{index: t}, nil
}

// RenderHome writes the quest form page.
func (e *TemplateEngine) RenderHome(w http.ResponseWriter, data HomeData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.index.ExecuteTemplate(w, "index.html", data)
}

// RenderHomeTo writes the quest form page to an arbitrary io.Writer,
// useful for testing without HTTP.
func (e *TemplateEngine) RenderHomeTo(w io.Writer, data HomeData) error {
	return e.index.ExecuteTemplate(w, "index.html", data)
}
