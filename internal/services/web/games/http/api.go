package http

import (
	stdhttp "net/http"

	"reviewlens/internal/modkit/httpkit"
	"reviewlens/internal/services/web/games/domain"
)

// RegisterAPI mounts the JSON endpoints; callers put it under the API prefix
func RegisterAPI(r httpkit.Router, s domain.ServicePort) {
	h := &apiHandlers{svc: s}
	httpkit.GetQuery(r, "/games/search/categories", h.searchCategories)
	httpkit.GetQuery(r, "/games/search/developers", h.searchDevelopers)
	httpkit.GetQuery(r, "/games/{id}/chart", h.chart)
	httpkit.GetQuery(r, "/games/{id}/aspects/chart", h.aspectChart)
}

type apiHandlers struct{ svc domain.ServicePort }

// swagger:route GET /games/{id}/chart Games gamesChart
// @Summary Review counts of a game bucketed for charting
// @Tags Games
// @Produce json
// @Param id path int true "Game id"
// @Param interval query string false "day, week, month or year"
// @Param points query int false "Fixed bucket count; excludes interval"
// @Param sources query string false "Comma separated source names; all is the aggregate"
// @Param types query string false "Comma separated sentiment types"
// @Param from query string false "First day, YYYY-MM-DD"
// @Param to query string false "Last day, YYYY-MM-DD"
// @Success 200 {object} domain.ChartData "ok"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Failure 422 {object} httpkit.Envelope "invalid argument"
// @Failure 502 {object} httpkit.Envelope "backend failure"
// @Router /games/{id}/chart [get]
func (h *apiHandlers) chart(r *stdhttp.Request, q domain.ChartQuery) (any, error) {
	id, err := httpkit.IntParam(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.Chart(r.Context(), id, q)
}

// swagger:route GET /games/{id}/aspects/chart Games gamesAspectChart
// @Summary Aspect polarity counts of a game per category
// @Tags Games
// @Produce json
// @Param id path int true "Game id"
// @Param interval query string false "day, week, month or year"
// @Param points query int false "Fixed bucket count; excludes interval"
// @Success 200 {object} domain.AspectChart "ok"
// @Failure 422 {object} httpkit.Envelope "invalid argument"
// @Failure 502 {object} httpkit.Envelope "backend failure"
// @Router /games/{id}/aspects/chart [get]
func (h *apiHandlers) aspectChart(r *stdhttp.Request, q domain.AspectQuery) (any, error) {
	id, err := httpkit.IntParam(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.AspectChart(r.Context(), id, q)
}

// swagger:route GET /games/search/categories Games gamesSearchCategories
// @Summary Categories whose name matches q
// @Tags Games
// @Produce json
// @Param q query string true "Name fragment"
// @Success 200 {array} backend.Named "ok"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Router /games/search/categories [get]
func (h *apiHandlers) searchCategories(r *stdhttp.Request, q domain.SearchQuery) (any, error) {
	return h.svc.SearchCategories(r.Context(), q.Q)
}

// swagger:route GET /games/search/developers Games gamesSearchDevelopers
// @Summary Developers whose name matches q
// @Tags Games
// @Produce json
// @Param q query string true "Name fragment"
// @Success 200 {array} backend.Named "ok"
// @Failure 400 {object} httpkit.Envelope "validation"
// @Router /games/search/developers [get]
func (h *apiHandlers) searchDevelopers(r *stdhttp.Request, q domain.SearchQuery) (any, error) {
	return h.svc.SearchDevelopers(r.Context(), q.Q)
}
