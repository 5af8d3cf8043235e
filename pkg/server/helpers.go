package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zen-systems/sitesmith/pkg/provider"
	"github.com/zen-systems/sitesmith/pkg/router"
)

const (
	headerContentType = "Content-Type"
	mimeJSON          = "application/json"
)

// writeJSON writes a JSON success response.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set(headerContentType, mimeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, `{"error":"failed to encode response"}`, http.StatusInternalServerError)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set(headerContentType, mimeJSON)
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": message}); err != nil {
		http.Error(w, `{"error":"failed to encode error response"}`, http.StatusInternalServerError)
	}
}

// writeRouterError maps router/provider failures onto HTTP statuses:
// an empty task is the caller's fault, an unconfigured provider is a
// deployment gap, everything else is an upstream failure.
func writeRouterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, router.ErrMissingTask):
		writeError(w, http.StatusBadRequest, err.Error())
	case provider.IsUnconfigured(err):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
