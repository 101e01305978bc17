// Package httpkit is the handler and routing sugar modules use instead of importing the platform http package directly
package httpkit

import (
	"net/http"

	phttp "reviewlens/internal/platform/net/http"
)

type (
	// Envelope is the JSON transport envelope
	Envelope = phttp.Envelope

	// Response is a return-style handler result
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is the platform router seam
	Router = phttp.Router

	// Renderer executes page templates
	Renderer = phttp.Renderer
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error maps err to status and envelope
func Error(err error) Response { return phttp.Error(err) }

// List returns a 200 response with a page block
func List(items any, total, page, size int) Response { return phttp.List(items, total, page, size) }

// Call adapts a handler that returns a value or a Response
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Render writes a page through rd
func Render(w http.ResponseWriter, r *http.Request, rd Renderer, status int, name string, data any) {
	phttp.Render(w, r, rd, status, name, data)
}

// Redirect sends a 302 to target
func Redirect(w http.ResponseWriter, r *http.Request, target string) { phttp.Redirect(w, r, target) }
