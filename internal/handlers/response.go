package handlers

import (
	"encoding/json"
	"net/http"

	"devchat/internal/models"
	"devchat/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// errorResp builds the error body; message is a string or []string.
func errorResp(status int, message interface{}) models.ErrorResponse {
	return models.ErrorResponse{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
	}
}

// handleServiceError maps service failures to 500 with a client-safe message.
func handleServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch e := err.(type) {
	case *services.ConfigurationError:
		writeJSON(w, status, errorResp(status, e.Message))
	case *services.AuthenticationError:
		writeJSON(w, status, errorResp(status, e.Message))
	case *services.ProviderError:
		writeJSON(w, status, errorResp(status, e.Message))
	default:
		writeJSON(w, status, errorResp(status, "Internal server error"))
	}
}
