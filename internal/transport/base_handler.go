package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	apperrors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/pkg/logger"
)

// BaseHandler is embedded by every REST handler for consistent JSON and
// error envelopes.
type BaseHandler struct{}

func (h *BaseHandler) WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.L().Error("failed to encode response", slog.Any("error", err))
	}
}

// WriteError maps AppError to its HTTP status; anything else becomes an
// opaque 500 so internals never leak to clients.
func (h *BaseHandler) WriteError(w http.ResponseWriter, err error) {
	if appErr, ok := apperrors.IsAppError(err); ok {
		if appErr.StatusCode >= http.StatusInternalServerError {
			logger.L().Error("internal error", slog.Any("error", appErr))
		}
		status, body := appErr.ToHTTPResponse()
		h.WriteJSON(w, status, body)
		return
	}

	logger.L().Error("unhandled error", slog.Any("error", err))
	status, body := apperrors.NewInternalError("An unexpected error occurred", nil).ToHTTPResponse()
	h.WriteJSON(w, status, body)
}

func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("Invalid request body", apperrors.ErrCodeValidationFailed).WithCause(err)
	}
	return nil
}
