package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aegis-auth/aegis-server/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps service errors onto HTTP status codes. Authentication
// failures share one message so responses never reveal which check failed.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, model.ErrDuplicateEmail):
		status = http.StatusConflict
		message = model.ErrDuplicateEmail.Error()
	case errors.Is(err, model.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = model.ErrInvalidCredentials.Error()
	case errors.Is(err, model.ErrNoFaceMatch):
		status = http.StatusUnauthorized
		message = model.ErrNoFaceMatch.Error()
	case errors.Is(err, model.ErrNoFaceDetected):
		status = http.StatusBadRequest
		message = model.ErrNoFaceDetected.Error()
	case errors.Is(err, model.ErrNoCredentials):
		status = http.StatusBadRequest
		message = model.ErrNoCredentials.Error()
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
		message = model.ErrNotFound.Error()
	}

	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
