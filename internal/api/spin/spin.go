package spin

import (
	"net/http"
	"reward_wheel/internal/api"
	dto "reward_wheel/internal/api/dto/spin"
	"reward_wheel/internal/converter"
	"reward_wheel/internal/middleware"
	"reward_wheel/internal/service"
	"reward_wheel/pkg/resp"
)

type HandlerDeps struct {
	Serv service.SpinService
}

type Handler struct {
	serv service.SpinService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.serv.Spin(r.Context(), accountID)
	if err != nil {
		api.WriteError(w, "spin", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSpinResponse(result))
}

func (h *Handler) RewardedSpin(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	balances, err := h.serv.RewardedSpin(r.Context(), accountID)
	if err != nil {
		api.WriteError(w, "rewarded spin", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.RewardedSpinResponse{
		Balances: converter.ToBalances(*balances),
	})
}

// Account - баланс, серия, рефералы и последние спины
func (h *Handler) Account(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	overview, err := h.serv.Overview(r.Context(), accountID)
	if err != nil {
		api.WriteError(w, "account", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToAccountResponse(overview))
}
