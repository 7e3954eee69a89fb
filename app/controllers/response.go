package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"simpleblog/app/services"
	"simpleblog/pkg/logger"

	"github.com/gorilla/mux"
)

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Detail string `json:"detail"`
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, errorResponse{Detail: message})
}

// sendServiceError translates a service error into a status code.
func sendServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		sendError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrPostNotFound):
		sendError(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, services.ErrCommentNotFound):
		sendError(w, http.StatusNotFound, "Comment not found")
	default:
		logger.FromContext(r.Context()).Error("request failed", "error", err, "path", r.URL.Path)
		sendError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// pathID reads an integer path variable.
func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return id, nil
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %v", err)
	}
	return nil
}
