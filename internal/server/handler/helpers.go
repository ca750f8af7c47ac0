// Package handler implements the HTTP/JSON endpoints of the Rosebud API.
// Handlers decode requests, call the service layer, and translate the
// service error taxonomy into HTTP status codes.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rosebudapp/rosebud/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// writeServiceError maps the shared error taxonomy onto HTTP status codes.
// Anything unrecognized becomes a 500 without leaking internals.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, common.ErrUsernameTaken),
		errors.Is(err, common.ErrEntryExistsForDate),
		errors.Is(err, common.ErrDuplicateKey):
		writeJSON(w, http.StatusConflict, errorResponse(err.Error()))
	case errors.Is(err, common.ErrInvalidLoginOrPass),
		errors.Is(err, common.ErrUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
	case errors.Is(err, common.ErrJoinCodeNotFound),
		errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}
