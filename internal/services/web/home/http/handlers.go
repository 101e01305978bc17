// Package http serves the landing page
package http

import (
	"context"
	stdhttp "net/http"

	"reviewlens/internal/adapters/backend"
	"reviewlens/internal/modkit/httpkit"
	"reviewlens/internal/platform/logger"
	"reviewlens/internal/ui"
)

// LatestCount is how many releases the landing page shows
const LatestCount = 6

// Games lists games
type Games interface {
	Games(ctx context.Context, f backend.GameFilter) (*backend.GameList, error)
}

// Home is the landing page model
type Home struct {
	Games       []backend.GameListItem
	Unavailable bool
}

// Register mounts the landing page
func Register(r httpkit.Router, g Games, pages httpkit.Renderer) {
	h := &handlers{games: g, pages: pages}
	httpkit.Page(r, "/", h.index)
}

type handlers struct {
	games Games
	pages httpkit.Renderer
}

// index renders even when the backend is down; the latest list is decoration
func (h *handlers) index(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	var data Home
	res, err := h.games.Games(r.Context(), backend.GameFilter{Limit: LatestCount, Sort: backend.SortReleaseDate + "=desc"})
	if err != nil {
		logger.C(r.Context()).Warn().Err(err).Msg("latest games unavailable")
		data.Unavailable = true
	} else {
		data.Games = res.Games
	}
	httpkit.Render(w, r, h.pages, stdhttp.StatusOK, "home", ui.NewView(r, "Home", data))
}
