// Package views renders the HTML pages. Templates and static assets are
// embedded in the binary.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"blogicum/app/models"
	"blogicum/app/services"
)

//go:embed templates static
var files embed.FS

// Data is passed to every page template.
type Data struct {
	Title       string
	Path        string
	CurrentUser *models.User
	FormError   string
	// Form holds submitted or prefilled form values.
	Form       url.Values
	Post       *models.Post
	Comment    *models.Comment
	Page       *services.PostPage
	Profile    *models.User
	Categories []*models.Category
	Locations  []*models.Location
	Next       string
}

var functions = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006, 15:04")
	},
	"inputDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(DateTimeLocal)
	},
	"truncateWords": func(s string, n int) string {
		words := strings.Fields(s)
		if len(words) <= n {
			return s
		}
		return strings.Join(words[:n], " ") + " ..."
	},
	"itoa": func(id int) string {
		return fmt.Sprint(id)
	},
}

// DateTimeLocal is the layout of <input type="datetime-local"> values.
const DateTimeLocal = "2006-01-02T15:04"

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the layout and partials.
func New() (*Renderer, error) {
	pages, err := fs.Glob(files, "templates/*/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		ts, err := template.New(path.Base(page)).Funcs(functions).ParseFS(files,
			"templates/layout.html",
			"templates/partials.html",
			page,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(page, "templates/"), ".html")
		r.pages[name] = ts
	}
	return r, nil
}

// Must panics when New fails.
func Must(r *Renderer, err error) *Renderer {
	if err != nil {
		panic(err)
	}
	return r
}

// Has reports whether a page exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Render executes the page into a buffer first so that template errors
// never produce half-written responses.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data *Data) error {
	ts, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q does not exist", name)
	}
	if data == nil {
		data = &Data{}
	}

	buf := new(bytes.Buffer)
	if err := ts.ExecuteTemplate(buf, "base", data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded assets under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
