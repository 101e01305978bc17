// Package http exposes the sources catalog as JSON
package http

import (
	stdhttp "net/http"

	"reviewlens/internal/modkit/httpkit"
	perr "reviewlens/internal/platform/errors"
	"reviewlens/internal/services/web/sources/domain"

	"github.com/go-chi/chi/v5"
)

// Register mounts the catalog endpoints
func Register(r httpkit.Router, c domain.Catalog) {
	h := &handlers{cat: c}
	httpkit.Get(r, "/sources", h.list)
	httpkit.Get(r, "/sources/{name}", h.byName)
}

type handlers struct{ cat domain.Catalog }

// swagger:route GET /sources Sources sourcesList
// @Summary Review sources known to the backend
// @Tags Sources
// @Produce json
// @Success 200 {array} chart.Source "ok"
// @Router /sources [get]
func (h *handlers) list(_ *stdhttp.Request) (any, error) {
	return h.cat.All(), nil
}

// swagger:route GET /sources/{name} Sources sourcesByName
// @Summary Look up a review source by name
// @Tags Sources
// @Produce json
// @Param name path string true "source name, case insensitive"
// @Success 200 {object} chart.Source "ok"
// @Failure 404 {object} httpkit.Envelope "unknown source"
// @Router /sources/{name} [get]
func (h *handlers) byName(r *stdhttp.Request) (any, error) {
	name := chi.URLParam(r, "name")
	s, ok := h.cat.ByName(name)
	if !ok {
		return nil, perr.WithField(perr.NotFoundf("source %q not found", name), "name")
	}
	return s, nil
}
