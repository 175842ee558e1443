// Package templates renders the UI's HTML pages.
//
// The templates are embedded into the binary. Each page is the shared
// "layout" (heading, navigation bar, alert) wrapped around the page's own
// "content" block.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/aanand-mishra/students-ui/internal/types"
)

//go:embed html/*.html
var files embed.FS

// Page names, one per view plus the index.
const (
	Index      = "index"
	NewStudent = "new_student"
	GetByID    = "get_by_id"
	GetAll     = "get_all"
	DeleteByID = "delete_by_id"
	DeleteAll  = "delete_all"
	UpdateByID = "update_by_id"
)

// AlertKind distinguishes success from error alerts.
type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
)

// Alert is shown as a blocking browser alert and as a banner.
type Alert struct {
	Kind    AlertKind
	Message string
}

// Page is the data every template receives.
type Page struct {
	Title string
	Alert *Alert
	// Form echoes the submitted input values back into the form.
	Form     map[string]string
	Student  *types.Student
	Students []types.Student
}

// Renderer holds the parsed page set.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page against the layout.
func New() (*Renderer, error) {
	names := []string{Index, NewStudent, GetByID, GetAll, DeleteByID, DeleteAll, UpdateByID}

	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		t, err := template.ParseFS(files, "html/layout.html", "html/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("templates.New: parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// MustNew is New that panics on error. The templates are embedded, so a
// failure here is a programming error.
func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render executes page name into w with the given status code. The page
// is rendered into a buffer first so a template error never produces a
// half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("templates.Render: unknown page %q", name)
	}

	if data.Form == nil {
		data.Form = map[string]string{}
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("templates.Render: execute %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
