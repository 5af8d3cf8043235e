package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zen-systems/sitesmith/pkg/store"
)

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "workspace persistence not configured")
		return false
	}
	return true
}

// CreateWorkspace creates a workspace with an optional initial document.
func (s *Server) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var doc map[string]any
	if err := decodeBody(r, &doc); err != nil && r.ContentLength > 0 {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws, err := s.store.CreateWorkspace(r.Context(), doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, ws)
}

// GetWorkspace returns a workspace document by ID.
func (s *Server) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	ws, err := s.store.GetWorkspace(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

// PatchWorkspace shallow-merges the request body into the workspace
// document and returns the updated workspace.
func (s *Server) PatchWorkspace(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var patch map[string]any
	if err := decodeBody(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws, err := s.store.PatchWorkspace(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ws)
}

type appendMessageRequest struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AppendMessage records a chat message in the workspace's log.
func (s *Server) AppendMessage(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	var req appendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Role == "" || req.Content == "" {
		writeError(w, http.StatusBadRequest, "role and content are required")
		return
	}

	msg, err := s.store.AppendMessage(r.Context(), chi.URLParam(r, "id"), req.Role, req.Content)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, msg)
}

// ListMessages returns a workspace's messages in insertion order.
func (s *Server) ListMessages(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}

	msgs, err := s.store.ListMessages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if msgs == nil {
		msgs = []store.Message{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "workspace not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
