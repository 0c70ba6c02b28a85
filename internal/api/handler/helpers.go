package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"csv-manager/internal/config"
	"csv-manager/internal/model"
	"csv-manager/internal/store"
)

// Handler carries the request-independent settings shared by all
// endpoints. Caller identity is resolved per request, never ambient.
type Handler struct {
	Cfg config.Config
	Log *logrus.Logger
}

func New(cfg config.Config, log *logrus.Logger) *Handler {
	return &Handler{Cfg: cfg, Log: log}
}

// currentUser resolves the caller from the X-User-ID header. Session
// issuance is handled by the external auth layer; this service only
// verifies the identity exists.
func (h *Handler) currentUser(r *http.Request) (model.User, error) {
	id := r.Header.Get("X-User-ID")
	if id == "" {
		return model.User{}, fmt.Errorf("%w: missing X-User-ID header", model.ErrUnauthorized)
	}
	return store.GetUser(id)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the model error taxonomy onto HTTP status codes.
// Unknown errors are storage failures and surface as 500 without
// partial results.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
		h.Log.WithError(err).Error("internal error")
	}
	writeJSON(w, status, map[string]interface{}{"error": err.Error()})
}

// datasetIDFromPath extracts the dataset ID from paths shaped like
// /api/v1/datasets/{id}[/suffix].
func datasetIDFromPath(path, suffix string) (string, error) {
	return idFromPath(path, "/api/v1/datasets/", suffix)
}

// teamIDFromPath extracts the team ID from paths shaped like
// /api/v1/teams/{id}[/suffix].
func teamIDFromPath(path, suffix string) (string, error) {
	return idFromPath(path, "/api/v1/teams/", suffix)
}

func idFromPath(path, prefix, suffix string) (string, error) {
	if !strings.HasPrefix(path, prefix) || !strings.HasSuffix(path, suffix) {
		return "", fmt.Errorf("%w: invalid path", model.ErrInvalidInput)
	}
	id := path[len(prefix) : len(path)-len(suffix)]
	if id == "" || strings.Contains(id, "/") {
		return "", fmt.Errorf("%w: resource ID is required", model.ErrInvalidInput)
	}
	return id, nil
}

// parsePositive parses an optional positive integer query parameter.
// Absent means def; present but non-positive or malformed is an input
// error.
func parsePositive(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %q is not a positive integer", model.ErrInvalidInput, s)
	}
	return n, nil
}
