package server

import (
	"net/http"

	"github.com/zen-systems/sitesmith/pkg/prompt"
	"github.com/zen-systems/sitesmith/pkg/router"
)

type chatRequest struct {
	Prompt           string `json:"prompt"`
	RequiresPlanning bool   `json:"requiresPlanning"`
	WorkspaceID      string `json:"workspaceId,omitempty"`
}

// Chat serves conversational requests. Planning-flavored prompts go to the
// high-reasoning provider; everything else takes the fast path with a
// plain-text response format. When a workspace ID is supplied and the store
// is configured, the exchange is appended to that workspace's message log.
func (s *Server) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	opts := router.Options{SystemPrompt: prompt.ChatPrompt}
	if req.RequiresPlanning || router.IsPlanningTask(req.Prompt, nil) {
		opts.TaskType = router.TaskPlanning
	} else {
		opts.TaskType = router.TaskCoding
		opts.ResponseMIMEType = "text/plain"
	}

	result, err := s.orch.RouteTask(r.Context(), req.Prompt, opts)
	if err != nil {
		writeRouterError(w, err)
		return
	}

	if req.WorkspaceID != "" && s.store != nil {
		// Log failures don't fail the chat; the response already exists.
		s.store.AppendMessage(r.Context(), req.WorkspaceID, "user", req.Prompt)         //nolint:errcheck
		s.store.AppendMessage(r.Context(), req.WorkspaceID, "assistant", result.Content) //nolint:errcheck
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"result":   result.Content,
		"model":    result.Model,
		"metadata": result.Metadata,
	})
}
