package httpkit

import (
	"net/http"
	"strconv"

	perr "reviewlens/internal/platform/errors"
	phttp "reviewlens/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

// Get mounts a body-less JSON handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, Call(h))
}

// GetQuery mounts a JSON handler under GET whose query string decodes into T
func GetQuery[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.GetQuery(r, path, h)
}

// PostJSON mounts a JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PostJSON(r, path, h)
}

// PatchJSON mounts a JSON handler under PATCH
func PatchJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	phttp.PatchJSON(r, path, h)
}

// Page mounts an HTML handler under GET
func Page(r Router, path string, h http.HandlerFunc) { r.Get(path, h) }

// Form mounts an HTML form handler under POST
func Form(r Router, path string, h http.HandlerFunc) { r.Post(path, h) }

// IntParam reads a positive integer path parameter
func IntParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, perr.WithField(perr.InvalidArgf("%s must be a positive integer", name), name)
	}
	return n, nil
}
