package resp

import (
	"encoding/json"
	"log"
	"net/http"
)

func WriteJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Println("write response error:", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// WriteError - ошибка в виде {"error": "..."}
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSONResponse(w, status, errorResponse{Error: message})
}
