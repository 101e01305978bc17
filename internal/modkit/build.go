package modkit

import (
	"net/http"

	"reviewlens/internal/modkit/httpkit"
	phttp "reviewlens/internal/platform/net/http"
)

// Built is the resolved option set a module keeps
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
	SwaggerOn bool
	Register  func(phttp.Router)
}

// Build applies opts over defaults
func Build(defaults []Option, opts ...Option) Built {
	var c buildCfg
	for _, o := range defaults {
		o(&c)
	}
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(phttp.Router) {}
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		SwaggerOn: c.swaggerOn,
		Register:  c.register,
	}
}

// Mount attaches own under the module prefix with the module middleware, then the extra Register routes
func (b Built) Mount(r phttp.Router, own func(phttp.Router)) {
	httpkit.MountUnder(r, b.Prefix, b.Mw, func(sub phttp.Router) {
		own(sub)
		b.Register(sub)
	})
}
