package handler

import (
	"net/http"
	"strings"

	"github.com/dukerupert/cakekiosk/internal/domain"
	"github.com/dukerupert/cakekiosk/internal/middleware"
	"github.com/dukerupert/cakekiosk/internal/telemetry"
)

// ErrorResponse logs err and writes it to the client.
// JSON clients get {"error":{"code","message"}}; others get plain text.
// Validation errors are delegated to ValidationErrorResponse.
func ErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsValidationError(err) {
		ValidationErrorResponse(w, r, err)
		return
	}

	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	status := middleware.StatusForCode(code)

	logError(r, err, code, status)
	if status >= 500 {
		telemetry.CaptureError(r.Context(), err, map[string]interface{}{
			"path":       r.URL.Path,
			"request_id": middleware.GetRequestID(r.Context()),
		})
	}

	if middleware.WantsJSON(r) {
		WriteJSON(w, status, middleware.ErrorBody{Error: middleware.ErrorDetail{Code: code, Message: message}})
		return
	}

	http.Error(w, message, status)
}

// ValidationErrorResponse writes field-level validation errors.
// Non-validation errors fall back to ErrorResponse.
func ValidationErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	fields := domain.GetValidationFields(err)
	if fields == nil {
		ErrorResponse(w, r, err)
		return
	}

	logError(r, err, domain.EINVALID, http.StatusBadRequest)

	if middleware.WantsJSON(r) {
		WriteJSON(w, http.StatusBadRequest, middleware.ErrorBody{Error: middleware.ErrorDetail{
			Code:    domain.EINVALID,
			Message: "Please check the highlighted fields",
			Fields:  fields,
		}})
		return
	}

	var b strings.Builder
	b.WriteString("Please check the highlighted fields:")
	for field, msg := range fields {
		b.WriteString("\n- " + field + ": " + msg)
	}
	http.Error(w, b.String(), http.StatusBadRequest)
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	middleware.WriteJSON(w, status, v)
}

func logError(r *http.Request, err error, code string, status int) {
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"op", domain.ErrorOp(err),
		"status", status,
	}
	logger := middleware.GetLogger(r.Context())
	if status >= 500 {
		logger.Error("request failed", attrs...)
		return
	}
	logger.Info("request rejected", attrs...)
}
