package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/uploadai/uploadai/internal/apperr"
	"github.com/uploadai/uploadai/internal/completion"
	"github.com/uploadai/uploadai/internal/llm"
)

type completer interface {
	Complete(ctx context.Context, req completion.Request) (*llm.ChatResponse, error)
	CompleteStream(ctx context.Context, req completion.Request) (<-chan llm.StreamChunk, error)
}

type CompletionHandler struct {
	svc completer
}

func NewCompletionHandler(svc completer) *CompletionHandler {
	return &CompletionHandler{svc: svc}
}

// Generate runs the prompt template against the video's transcript. With
// "stream": true, provider chunks are forwarded as raw text as they
// arrive; otherwise the full provider response is returned at once.
func (h *CompletionHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		VideoID     string   `json:"videoId"`
		Template    string   `json:"template"`
		Prompt      string   `json:"prompt"`
		Temperature *float64 `json:"temperature"`
		Stream      bool     `json:"stream"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	videoID, err := uuid.Parse(body.VideoID)
	if err != nil {
		writeError(w, apperr.Validation("invalid video ID"))
		return
	}

	// the web client sends the template under either key
	template := body.Template
	if template == "" {
		template = body.Prompt
	}

	req := completion.Request{
		VideoID:     videoID,
		Template:    template,
		Temperature: body.Temperature,
	}

	if body.Stream {
		h.stream(w, r, req)
		return
	}

	resp, err := h.svc.Complete(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"response": resp})
}

func (h *CompletionHandler) stream(w http.ResponseWriter, r *http.Request, req completion.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming not supported"})
		return
	}

	// r.Context() ends when the client disconnects, which cancels the
	// provider stream instead of leaving it generating unobserved.
	ch, err := h.svc.CompleteStream(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	// CORS headers are already set by middleware, ahead of the first byte.
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for chunk := range ch {
		if chunk.Error != nil {
			// headers are sent; all we can do is stop the stream
			slog.Error("completion stream failed", "error", chunk.Error)
			return
		}
		if chunk.Content != "" {
			io.WriteString(w, chunk.Content)
			flusher.Flush()
		}
		if chunk.Done {
			return
		}
	}
}
