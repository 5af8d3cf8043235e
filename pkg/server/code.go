package server

import (
	"net/http"

	"github.com/zen-systems/sitesmith/pkg/manifest"
	"github.com/zen-systems/sitesmith/pkg/prompt"
	"github.com/zen-systems/sitesmith/pkg/router"
)

type codeRequest struct {
	Prompt           string `json:"prompt"`
	RequiresPlanning bool   `json:"requiresPlanning"`
	Context          string `json:"context,omitempty"`
}

// GenerateCode produces a structured file manifest. Complex requests take
// the plan-and-code path; quick ones go straight to the fast coder. The
// model's JSON output is parsed (with fenced-block recovery) and the routing
// envelope's model/metadata fields are merged into the manifest document so
// the client receives one flat object.
func (s *Server) GenerateCode(w http.ResponseWriter, r *http.Request) {
	var req codeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	opts := router.Options{
		Context:          req.Context,
		SystemPrompt:     prompt.CodeGenPrompt,
		ResponseMIMEType: "application/json",
	}
	if req.RequiresPlanning {
		opts.TaskType = router.TaskAuto // composite plan-and-code
	} else {
		opts.TaskType = router.TaskCoding
	}

	var (
		result *router.Result
		err    error
	)
	if req.RequiresPlanning {
		result, err = s.orch.PlanAndCode(r.Context(), req.Prompt, opts)
	} else {
		result, err = s.orch.Code(r.Context(), req.Prompt, opts)
	}
	if err != nil {
		writeRouterError(w, err)
		return
	}

	_, rawJSON, parseErr := manifest.Parse(result.Content)
	if parseErr != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "failed to parse model response",
			"details": parseErr.Error(),
			"raw":     result.Content,
		})
		return
	}

	merged, err := manifest.Merge(rawJSON, result.Model, result.Metadata)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set(headerContentType, mimeJSON)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(merged)) //nolint:errcheck
}
