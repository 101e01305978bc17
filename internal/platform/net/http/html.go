package http

import (
	"bytes"
	"io"
	stdhttp "net/http"
	"strconv"

	"reviewlens/internal/platform/logger"
)

// Renderer executes a named page template
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

// Render executes the page into a buffer and writes it with status; a template failure becomes a bare 500
func Render(w stdhttp.ResponseWriter, r *stdhttp.Request, rd Renderer, status int, name string, data any) {
	var buf bytes.Buffer
	if err := rd.Render(&buf, name, data); err != nil {
		logger.C(r.Context()).Error().Err(err).Str("template", name).Msg("render failed")
		stdhttp.Error(w, stdhttp.StatusText(stdhttp.StatusInternalServerError), stdhttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Redirect sends a 302 to target
func Redirect(w stdhttp.ResponseWriter, r *stdhttp.Request, target string) {
	stdhttp.Redirect(w, r, target, stdhttp.StatusFound)
}
