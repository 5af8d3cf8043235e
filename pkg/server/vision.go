package server

import (
	"net/http"

	"github.com/zen-systems/sitesmith/pkg/prompt"
	"github.com/zen-systems/sitesmith/pkg/router"
)

type visionRequest struct {
	Prompt string `json:"prompt"`
	Image  string `json:"image"`
}

// AnalyzeVision runs a multimodal analysis of an image, a prompt, or both.
// With no prompt, the default analysis prompt is used against the image.
func (s *Server) AnalyzeVision(w http.ResponseWriter, r *http.Request) {
	var req visionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Image == "" && req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "either image or prompt is required")
		return
	}

	task := req.Prompt
	if task == "" {
		task = prompt.VisionAnalysisPrompt
	}

	result, err := s.orch.AnalyzeVision(r.Context(), task, router.Options{
		Image:        req.Image,
		SystemPrompt: prompt.VisionAnalysisPrompt,
	})
	if err != nil {
		writeRouterError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"analysis": result.Content,
		"model":    result.Model,
		"usage":    result.Usage,
		"metadata": result.Metadata,
	})
}
