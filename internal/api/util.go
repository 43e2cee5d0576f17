package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	apperrors "github.com/julianstephens/habitchain/internal/errors"
	"github.com/julianstephens/habitchain/internal/logger"
	"github.com/julianstephens/habitchain/internal/service"
)

const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Warn("Failed to encode response", "error", err)
	}
}

// WriteError writes an error response
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

// DecodeJSON decodes a JSON request body into v. An empty body leaves v at
// its zero value; anything after the first JSON value is an error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("request body must contain a single JSON value")
	}
	return nil
}

// writeServiceError maps the service error taxonomy onto status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *apperrors.ValidationError
	var nerr *apperrors.NotFoundError
	switch {
	case errors.As(err, &verr):
		WriteError(w, http.StatusBadRequest, verr.Message)
	case errors.As(err, &nerr):
		WriteError(w, http.StatusNotFound, nerr.Error())
	default:
		logger.Error("Unhandled service error", "error", err, "request_id", service.RequestID(r.Context()))
		WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// queryUserID parses ?userId=. Missing or malformed values yield 0, which
// the service treats as "no user".
func queryUserID(r *http.Request) int {
	id, err := strconv.Atoi(r.URL.Query().Get("userId"))
	if err != nil || id < 0 {
		return 0
	}
	return id
}

// pathID parses a numeric {id} URL parameter. ok is false for anything that
// cannot name a record.
func pathID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
