package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/demandlens/backend/pkg/errors"
)

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the application error taxonomy onto HTTP status
// codes. Internal details stay in the logs, not in the response body.
func respondWithAppError(w http.ResponseWriter, err error) {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, err.Error())
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, err.Error())
	case apperrors.ErrorTypeUnauthorized:
		respondWithError(w, http.StatusUnauthorized, err.Error())
	case apperrors.ErrorTypeUpstream:
		respondWithError(w, http.StatusBadGateway, "upstream dependency failed")
	default:
		respondWithError(w, http.StatusInternalServerError, "internal error")
	}
}
