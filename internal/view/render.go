package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/sakif/skillup/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Renderer.Render.
const (
	PageSignIn     = "signin"
	PageChecklists = "checklists"
	PageDetail     = "detail"
	PageError      = "error"
)

// Header is shared by every page.
type Header struct {
	Email    string
	SignedIn bool
}

type SignInPage struct {
	Header
	GoogleEnabled bool
	Denied        bool
}

type ChecklistsPage struct {
	Header
	List        ChecklistListView
	CareerPaths []model.CareerPath
}

type DetailPage struct {
	Header
	Detail ChecklistDetailView
}

// ErrorPage shows Message as-is (escaped, never interpreted).
type ErrorPage struct {
	Header
	Status  int
	Message string
}

type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates. Each page is its own template
// set layered over the shared layout.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"width": func(percent int) template.CSS {
			return template.CSS(fmt.Sprintf("width: %d%%", percent))
		},
	}

	pages := map[string]*template.Template{}
	for _, name := range []string{PageSignIn, PageChecklists, PageDetail, PageError} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("view: parsing %s template: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// Render executes a page into w. Output is buffered so a template error
// never leaves a half-written page behind.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("view: unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("view: rendering %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
