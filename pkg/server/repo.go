package server

import (
	"errors"
	"net/http"

	"github.com/zen-systems/sitesmith/pkg/repofetch"
)

type repoImportRequest struct {
	URL string `json:"url"`
}

// ImportRepo fetches a GitHub repository's source tree so it can seed a
// workspace. The fetch honors the importer's caps: files over the size
// limit, binary assets, and vendored directories are skipped.
func (s *Server) ImportRepo(w http.ResponseWriter, r *http.Request) {
	if s.fetcher == nil {
		writeError(w, http.StatusServiceUnavailable, "repository import not configured")
		return
	}

	var req repoImportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	repo, err := repofetch.ParseRepoURL(req.URL)
	if err != nil {
		if errors.Is(err, repofetch.ErrBadRepoURL) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := s.fetcher.Fetch(r.Context(), repo)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"repo":      result.Repo,
		"branch":    result.Branch,
		"files":     result.Files,
		"fileCount": len(result.Files),
		"truncated": result.Truncated,
	})
}
