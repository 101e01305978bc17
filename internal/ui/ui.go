// Package ui holds the page templates and the view model every page renders with
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"sort"
	"strings"

	perr "reviewlens/internal/platform/errors"
	pnet "reviewlens/internal/platform/net"
	phttp "reviewlens/internal/platform/net/http"
	"reviewlens/internal/platform/net/http/bind"
)

//go:embed templates/*.html
var files embed.FS

const layoutFile = "templates/layout.html"

// Pages renders the embedded page templates
// each page is parsed with the layout and is immutable after New
type Pages struct {
	set map[string]*template.Template
}

var _ phttp.Renderer = (*Pages)(nil)

// New parses every page under templates
func New() (*Pages, error) { return newFrom(files) }

// MustNew is New that panics
func MustNew() *Pages {
	p, err := New()
	if err != nil {
		panic(err)
	}
	return p
}

func newFrom(src fs.FS) (*Pages, error) {
	names, err := fs.Glob(src, "templates/*.html")
	if err != nil {
		return nil, err
	}
	p := &Pages{set: map[string]*template.Template{}}
	for _, file := range names {
		if file == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		t, err := template.New(name).Funcs(Funcs()).ParseFS(src, layoutFile, file)
		if err != nil {
			return nil, fmt.Errorf("ui: parse %s: %w", name, err)
		}
		p.set[name] = t
	}
	return p, nil
}

// Names lists the parsed pages
func (p *Pages) Names() []string {
	out := make([]string, 0, len(p.set))
	for n := range p.set {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Render executes the layout with the named page's content block
func (p *Pages) Render(w io.Writer, name string, data any) error {
	t, ok := p.set[name]
	if !ok {
		return fmt.Errorf("ui: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// View is what every page template receives
type View struct {
	Title     string
	Path      string
	SignedIn  bool
	User      *pnet.Principal
	Flash     string
	RequestID string
	Data      any
}

// NewView fills the request scoped parts of a View
func NewView(r *http.Request, title string, data any) View {
	ctx := r.Context()
	return View{
		Title:     title,
		Path:      r.URL.Path,
		SignedIn:  pnet.Token(ctx) != "",
		User:      pnet.User(ctx),
		RequestID: pnet.RequestID(ctx),
		Data:      data,
	}
}

// Form carries submitted values and per field errors for re-rendering
type Form struct {
	Values  map[string]string
	Errors  map[string]string
	Message string
	Success string
}

// NewForm returns an empty Form
func NewForm() Form {
	return Form{Values: map[string]string{}, Errors: map[string]string{}}
}

// Value returns the submitted value for field
func (f Form) Value(field string) string { return f.Values[field] }

// Error returns the error for field
func (f Form) Error(field string) string { return f.Errors[field] }

// Fail records err on the form: every validator field, else the coded field, else a form message
func (f *Form) Fail(err error) {
	if err == nil {
		return
	}
	if f.Errors == nil {
		f.Errors = map[string]string{}
	}
	if fields := bind.Fields(err); len(fields) > 0 {
		for k, v := range fields {
			f.Errors[k] = v
		}
		return
	}
	e, ok := perr.As(err)
	switch {
	case ok && e.Field() != "":
		f.Errors[e.Field()] = e.Message()
	case ok && perr.HTTPStatus(err) < http.StatusInternalServerError:
		f.Message = e.Message()
	default:
		f.Message = "Something went wrong. Please try again."
	}
}

// HasErrors reports any field or form level error
func (f Form) HasErrors() bool { return len(f.Errors) > 0 || f.Message != "" }

// ErrorData is the error page payload
type ErrorData struct {
	Status  int
	Heading string
	Message string
}

// RenderError renders the error page for err with its mapped status
func RenderError(w http.ResponseWriter, r *http.Request, rd phttp.Renderer, err error) {
	status := perr.HTTPStatus(err)
	msg := "Something went wrong on our side."
	if e, ok := perr.As(err); ok && status < http.StatusInternalServerError {
		msg = e.Message()
	}
	switch perr.CodeOf(err) {
	case perr.ErrorCodeUpstream, perr.ErrorCodeUnavailable:
		msg = "The review service is not answering right now. Try again in a moment."
	}
	v := NewView(r, http.StatusText(status), ErrorData{
		Status:  status,
		Heading: http.StatusText(status),
		Message: msg,
	})
	var buf bytes.Buffer
	if rerr := rd.Render(&buf, "error", v); rerr != nil {
		phttp.RespondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
