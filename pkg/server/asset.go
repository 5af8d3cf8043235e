package server

import (
	"net/http"

	"github.com/zen-systems/sitesmith/pkg/router"
)

type assetRequest struct {
	Prompt    string `json:"prompt"`
	Size      string `json:"size,omitempty"`
	Quality   string `json:"quality,omitempty"`
	Style     string `json:"style,omitempty"`
	AssetType string `json:"assetType,omitempty"`
}

// GenerateAsset produces an image for the given prompt. The response carries
// the hosted image URL plus the provider's revised prompt when it rewrote
// the input.
func (s *Server) GenerateAsset(w http.ResponseWriter, r *http.Request) {
	var req assetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required for asset generation")
		return
	}

	result, err := s.orch.GenerateAsset(r.Context(), req.Prompt, router.Options{
		Size:      req.Size,
		Quality:   req.Quality,
		Style:     req.Style,
		AssetType: req.AssetType,
	})
	if err != nil {
		writeRouterError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"imageUrl":      result.Content,
		"revisedPrompt": result.Metadata["revised_prompt"],
		"model":         result.Model,
		"metadata":      result.Metadata,
	})
}
