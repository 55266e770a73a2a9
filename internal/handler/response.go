package handler

import (
	"encoding/json"
	"net/http"

	"devimpact/internal/middleware"
	"devimpact/pkg/errors"
	"devimpact/pkg/logger"
)

// maxBodyBytes caps JSON request bodies
const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError renders err with the AppError taxonomy. Internal failures are
// logged at error level, client mistakes at debug.
func respondError(w http.ResponseWriter, r *http.Request, err error, log *logger.Logger) {
	appErr := errors.AsAppError(err)
	reqLog := logger.FromContext(r.Context(), log).WithError(appErr)

	if appErr.StatusCode >= http.StatusInternalServerError {
		reqLog.Error("Request failed")
	} else {
		reqLog.Debug("Request rejected")
	}

	if werr := errors.WriteJSON(w, appErr, middleware.GetRequestID(r.Context())); werr != nil {
		log.WithError(werr).Error("Failed to write error response")
	}
}

// decodeJSON reads a JSON body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.NewValidationError("Invalid request body", nil)
	}
	return nil
}
