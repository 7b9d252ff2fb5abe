package report

import (
	"net/http"
	"reward_wheel/internal/api"
	"reward_wheel/internal/converter"
	"reward_wheel/internal/service"
	"reward_wheel/pkg/resp"
)

type HandlerDeps struct {
	Serv service.ReportService
}

type Handler struct {
	serv service.ReportService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.serv.Leaderboard(r.Context())
	if err != nil {
		api.WriteError(w, "leaderboard", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToLeaderboard(entries))
}

func (h *Handler) Prizes(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPrizes(h.serv.Prizes()))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.serv.Stats(r.Context())
	if err != nil {
		api.WriteError(w, "stats", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(stats))
}
