package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	layoutTemplate  = "templates/layout.html"
	partialsPattern = "templates/partials/*.html"
	pagesDir        = "templates/pages"
)

// Renderer serves every page wrapped in the shared layout. It implements
// gin's render.HTMLRender.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the layout, partials and every page
func NewRenderer() (*Renderer, error) {
	base, err := template.New("layout.html").Funcs(Funcs()).ParseFS(templateFS, layoutTemplate, partialsPattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	entries, err := fs.ReadDir(templateFS, pagesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	pages := make(map[string]*template.Template, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}
		tmpl, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := tmpl.ParseFS(templateFS, path.Join(pagesDir, entry.Name())); err != nil {
			return nil, fmt.Errorf("failed to parse page %s: %w", entry.Name(), err)
		}
		pages[strings.TrimSuffix(entry.Name(), ".html")] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Instance implements render.HTMLRender
func (r *Renderer) Instance(name string, data interface{}) render.Render {
	tmpl, ok := r.pages[name]
	if !ok {
		tmpl = template.Must(template.New("missing").Parse(`pagina desconhecida: {{.}}`))
		data = name
		return render.HTML{Template: tmpl, Name: "missing", Data: data}
	}
	return render.HTML{Template: tmpl, Name: "layout.html", Data: data}
}

// Has reports whether a page is registered under name
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Static returns the embedded assets served under /static
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
