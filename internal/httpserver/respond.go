package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/marchesss/puzzle/internal/puzzle"
	"github.com/marchesss/puzzle/internal/store"
)

var errForbidden = errors.New("game belongs to another player")

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorBody{Error: code, Message: msg})
}

// classify maps engine and store errors to an HTTP status and a stable code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, puzzle.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument"
	case errors.Is(err, puzzle.ErrNotReady):
		return http.StatusConflict, "not_ready"
	case errors.Is(err, puzzle.ErrPrematureOperation):
		return http.StatusConflict, "premature_operation"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errForbidden):
		return http.StatusForbidden, "forbidden"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeErr(w http.ResponseWriter, err error) {
	status, code := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = ""
	}
	writeError(w, status, code, msg)
}

// decodeBody reads a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
