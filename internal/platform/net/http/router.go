package http

import "net/http"

// Handler is a plain handler func; services register these rather than http.Handler values
type Handler = func(http.ResponseWriter, *http.Request)

// Middleware wraps a handler
type Middleware = func(http.Handler) http.Handler

// Routes registers endpoints on one path tree
type Routes interface {
	Method(method, path string, h Handler)
	Get(path string, h Handler)
	Post(path string, h Handler)
	Patch(path string, h Handler)
	Delete(path string, h Handler)
	Handle(path string, h http.Handler)
	Mount(pattern string, h http.Handler)
}

// Router is Routes plus scoping: middleware, groups and sub trees
type Router interface {
	Routes

	Use(mw ...Middleware)
	With(mw ...Middleware) Router
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	// Mux is the root handler to serve
	Mux() http.Handler
}
