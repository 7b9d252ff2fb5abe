package checkout

import (
	"crypto/subtle"
	"net/http"
	"reward_wheel/internal/api"
	dto "reward_wheel/internal/api/dto/checkout"
	"reward_wheel/internal/config"
	"reward_wheel/internal/converter"
	"reward_wheel/internal/middleware"
	"reward_wheel/internal/service"
	"reward_wheel/pkg/req"
	"reward_wheel/pkg/resp"
)

const webhookSecretHeader = "X-Webhook-Secret"

type HandlerDeps struct {
	Serv       service.CheckoutService
	PaymentCfg config.PaymentConfig
}

type Handler struct {
	serv       service.CheckoutService
	paymentCfg config.PaymentConfig
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv, paymentCfg: deps.PaymentCfg}
}

func (h *Handler) Packages(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToPackages(h.serv.Packages()))
}

func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		resp.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	payload, err := req.Decode[dto.CheckoutRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	result, err := h.serv.Checkout(r.Context(), accountID, payload.Package)
	if err != nil {
		api.WriteError(w, "checkout", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToCheckoutResponse(result))
}

// Confirm - вебхук платежного провайдера, защищен общим секретом
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	secret := h.paymentCfg.WebhookSecret()
	got := r.Header.Get(webhookSecretHeader)
	if len(secret) == 0 || subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
		resp.WriteError(w, http.StatusUnauthorized, "invalid webhook secret")
		return
	}

	payload, err := req.Decode[dto.ConfirmRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	balances, err := h.serv.Confirm(r.Context(), payload.AccountID, payload.Package)
	if err != nil {
		api.WriteError(w, "checkout confirm", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, dto.ConfirmResponse{
		Balances: converter.ToBalances(*balances),
	})
}
