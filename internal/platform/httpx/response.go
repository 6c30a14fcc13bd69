package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"

	"github.com/tair/production-costing/pkg/apperr"
	"github.com/tair/production-costing/pkg/logger"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Kind    string      `json:"kind,omitempty"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondOK wraps data in a successful envelope.
func RespondOK(w http.ResponseWriter, status int, message string, data interface{}) {
	RespondJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// RespondError maps err to a status code and logs it once. Server side
// failures are logged at error level, client mistakes at warn.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)

	event := logger.Warn(r.Context())
	if status >= http.StatusInternalServerError {
		event = logger.Error(r.Context())
	}
	event.Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Bool("retryable", apperr.IsRetryable(err)).
		Msg("Request failed")

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	RespondJSON(w, status, Response{Success: false, Error: msg, Kind: apperr.Kind(err)})
}

// DecodeJSON reads the request body into dst.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Wrap(err, apperr.ErrInvalidInput, "invalid request body")
	}
	return nil
}

// PathID parses a positive numeric path variable.
func PathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.New(apperr.ErrInvalidInput, "invalid %s %q", name, raw)
	}
	return uint(id), nil
}

// Page reads limit and offset query parameters.
func Page(r *http.Request, defaultLimit int) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 500 {
		limit = defaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// IsClientError reports whether err is the caller's fault.
func IsClientError(err error) bool {
	status := apperr.HTTPStatus(err)
	return status >= 400 && status < 500 && !errors.Is(err, apperr.ErrStoreUnavailable)
}
