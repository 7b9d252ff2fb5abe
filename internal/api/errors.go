package api

import (
	"errors"
	"log"
	"net/http"
	"reward_wheel/internal/model"
	"reward_wheel/pkg/resp"
)

// WriteError - доменная ошибка в HTTP статус. Неизвестные ошибки логируются,
// клиент получает общий текст
func WriteError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, model.ErrInsufficientCredits),
		errors.Is(err, model.ErrDailyLimitReached),
		errors.Is(err, model.ErrInvalidReferralCode),
		errors.Is(err, model.ErrInvalidUsername),
		errors.Is(err, model.ErrInvalidPassword),
		errors.Is(err, model.ErrUnknownPackage),
		errors.Is(err, model.ErrInvalidAmount):
		resp.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrDuplicateUsername):
		resp.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrInvalidCredentials):
		resp.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, model.ErrAccountNotFound):
		resp.WriteError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("%s error: %v", op, err)
		resp.WriteError(w, http.StatusInternalServerError, op+" failed")
	}
}
