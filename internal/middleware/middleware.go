package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dukerupert/cakekiosk/internal/domain"
)

// ErrorBody is the JSON error envelope written by middleware and handlers:
//
//	{"error": {"code": "invalid", "message": "...", "fields": {...}}}
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the code, the customer-facing message and, for
// validation failures, the per-field messages.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

var statusByCode = map[string]int{
	domain.EINVALID:      http.StatusBadRequest,
	domain.EUNAUTHORIZED: http.StatusUnauthorized,
	domain.ENOTFOUND:     http.StatusNotFound,
	domain.ECONFLICT:     http.StatusConflict,
	domain.ETOOLARGE:     http.StatusRequestEntityTooLarge,
	domain.ERATELIMIT:    http.StatusTooManyRequests,
	domain.EINTERNAL:     http.StatusInternalServerError,
	domain.EUNAVAILABLE:  http.StatusServiceUnavailable,
}

// StatusForCode maps a domain error code to its HTTP status.
// Unknown codes are treated as internal errors.
func StatusForCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WantsJSON reports whether the response should be JSON.
// The kiosk and staff APIs always answer in JSON.
func WantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/kiosk/") || strings.HasPrefix(r.URL.Path, "/staff/") {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		return true
	}
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		return true
	}
	return strings.HasSuffix(r.URL.Path, ".json")
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// reject answers a request a middleware refused before it reached a handler.
func reject(w http.ResponseWriter, r *http.Request, code, message string) {
	status := StatusForCode(code)

	attrs := []any{
		"code", code,
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
	}
	if reqID := GetRequestID(r.Context()); reqID != "" {
		attrs = append(attrs, "request_id", reqID)
	}
	GetLogger(r.Context()).Info("request rejected by middleware", attrs...)

	if WantsJSON(r) {
		WriteJSON(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: message}})
		return
	}
	http.Error(w, message, status)
}
