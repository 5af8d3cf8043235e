package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/zen-systems/sitesmith/pkg/prompt"
	"github.com/zen-systems/sitesmith/pkg/router"
)

// streamChunkSize is how many characters each SSE chunk carries.
const streamChunkSize = 50

type streamRequest struct {
	Prompt string `json:"prompt"`
	router.Options
}

type streamEvent struct {
	Type     string            `json:"type"`
	Content  string            `json:"content,omitempty"`
	Progress float64           `json:"progress,omitempty"`
	Model    string            `json:"model,omitempty"`
	Usage    any               `json:"usage,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Error    string            `json:"error,omitempty"`
}

// Stream routes a task and delivers the result over Server-Sent Events:
// a connected event, the content in fixed-size chunks with progress, then a
// complete event carrying the envelope's model/usage/metadata. Routing
// failures after the stream opens become an error event, since the status
// line has already been sent.
func (s *Server) Stream(w http.ResponseWriter, r *http.Request) {
	var req streamRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "prompt is required")
		return
	}

	w.Header().Set(headerContentType, "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	bw := bufio.NewWriter(w)

	emit := func(ev streamEvent) bool {
		b, _ := json.Marshal(ev)
		if _, err := fmt.Fprintf(bw, "data: %s\n\n", b); err != nil {
			return false
		}
		bw.Flush() //nolint:errcheck
		flusher.Flush()
		return true
	}

	if !emit(streamEvent{Type: "connected"}) {
		return
	}

	opts := req.Options
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = prompt.CodeGenPrompt
	}

	result, err := s.orch.RouteTask(r.Context(), req.Prompt, opts)
	if err != nil {
		emit(streamEvent{Type: "error", Error: err.Error()})
		return
	}

	// Chunk on runes so multi-byte characters never split across events.
	content := []rune(result.Content)
	for i := 0; i < len(content); i += streamChunkSize {
		end := i + streamChunkSize
		if end > len(content) {
			end = len(content)
		}
		progress := float64(i+streamChunkSize) / float64(len(content)) * 100
		if progress > 100 {
			progress = 100
		}
		if !emit(streamEvent{
			Type:     "chunk",
			Content:  string(content[i:end]),
			Progress: progress,
		}) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	emit(streamEvent{
		Type:     "complete",
		Model:    result.Model,
		Usage:    result.Usage,
		Metadata: result.Metadata,
	})
}
