package server

import (
	"net/http"

	"github.com/zen-systems/sitesmith/pkg/provision"
)

type provisionRequest struct {
	Requirements string `json:"requirements"`
}

// Provision derives a database schema from plain-text requirements. The SQL
// is returned for the caller to review and execute; nothing is run here.
func (s *Server) Provision(w http.ResponseWriter, r *http.Request) {
	var req provisionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Requirements == "" {
		writeError(w, http.StatusBadRequest, "requirements are required")
		return
	}

	plan := provision.FromRequirements(req.Requirements)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"schema":     plan.Schema,
		"tables":     plan.Tables,
		"dataModels": plan.Models,
		"note":       "execute this SQL against your database",
	})
}
