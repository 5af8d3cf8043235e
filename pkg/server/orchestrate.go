package server

import (
	"net/http"

	"github.com/zen-systems/sitesmith/pkg/prompt"
	"github.com/zen-systems/sitesmith/pkg/router"
)

type orchestrateRequest struct {
	Prompt string `json:"prompt"`
	router.Options
}

// Orchestrate is the general-purpose entry point: the task is routed to
// whichever strategy the classifier (or explicit options) selects, and the
// normalized envelope is returned as-is.
func (s *Server) Orchestrate(w http.ResponseWriter, r *http.Request) {
	var req orchestrateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	opts := req.Options
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = prompt.CodeGenPrompt
	}

	result, err := s.orch.RouteTask(r.Context(), req.Prompt, opts)
	if err != nil {
		writeRouterError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"result":   result.Content,
		"model":    result.Model,
		"usage":    result.Usage,
		"metadata": result.Metadata,
	})
}
