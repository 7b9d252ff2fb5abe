package auth

import (
	"net/http"
	"reward_wheel/internal/api"
	dto "reward_wheel/internal/api/dto/auth"
	"reward_wheel/internal/converter"
	"reward_wheel/internal/service"
	"reward_wheel/pkg/req"
	"reward_wheel/pkg/resp"
)

type HandlerDeps struct {
	Serv service.AuthService
}

type Handler struct {
	serv service.AuthService
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{serv: deps.Serv}
}

// Register создаёт аккаунт и возвращает access_token.
// Неверный реферальный код приходит в warning, аккаунт всё равно создаётся
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.RegisterRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	data, err := h.serv.Register(
		r.Context(),
		requestBody.Username,
		requestBody.Password,
		requestBody.ReferralCode,
	)
	if err != nil {
		api.WriteError(w, "register", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusCreated, converter.ToAuthResponse(data))
}

// Login проверяет пароль и возвращает access_token
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	requestBody, err := req.Decode[dto.LoginRequest](r.Body)
	if err != nil {
		resp.WriteError(w, http.StatusBadRequest, "invalid request")
		return
	}

	data, err := h.serv.Login(r.Context(), requestBody.Username, requestBody.Password)
	if err != nil {
		api.WriteError(w, "login", err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToAuthResponse(data))
}
