// Package http serves the games pages and their JSON chart endpoints
package http

import (
	stdhttp "net/http"

	"reviewlens/internal/modkit/httpkit"
	"reviewlens/internal/platform/net/http/bind"
	"reviewlens/internal/services/web/games/domain"
	"reviewlens/internal/ui"
)

// Register mounts the HTML pages
func Register(r httpkit.Router, s domain.ServicePort, pages httpkit.Renderer) {
	h := &pageHandlers{svc: s, pages: pages}
	httpkit.Page(r, "/games", h.list)
	httpkit.Page(r, "/games/{id}", h.overview)
	httpkit.Page(r, "/games/{id}/reviews", h.reviews)
}

type pageHandlers struct {
	svc   domain.ServicePort
	pages httpkit.Renderer
}

func (h *pageHandlers) fail(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	ui.RenderError(w, r, h.pages, err)
}

func (h *pageHandlers) list(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	q, err := bind.ParseQuery[domain.ListQuery](r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data, err := h.svc.List(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data.Params = r.URL.Query()
	httpkit.Render(w, r, h.pages, stdhttp.StatusOK, "games", ui.NewView(r, "Games", data))
}

func (h *pageHandlers) overview(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, err := httpkit.IntParam(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	q, err := bind.ParseQuery[domain.OverviewQuery](r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data, err := h.svc.Overview(r.Context(), id, q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	httpkit.Render(w, r, h.pages, stdhttp.StatusOK, "game", ui.NewView(r, data.Game.Name, data))
}

func (h *pageHandlers) reviews(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	id, err := httpkit.IntParam(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}
	q, err := bind.ParseQuery[domain.ReviewsQuery](r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data, err := h.svc.Reviews(r.Context(), id, q)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	data.Params = r.URL.Query()
	httpkit.Render(w, r, h.pages, stdhttp.StatusOK, "reviews", ui.NewView(r, "Reviews of "+data.Game.Name, data))
}
