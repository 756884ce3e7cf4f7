package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/uploadai/uploadai/internal/apperr"
)

type transcriber interface {
	Transcribe(ctx context.Context, videoID uuid.UUID, prompt string) (string, error)
}

type TranscriptionHandler struct {
	svc transcriber
}

func NewTranscriptionHandler(svc transcriber) *TranscriptionHandler {
	return &TranscriptionHandler{svc: svc}
}

func (h *TranscriptionHandler) Create(w http.ResponseWriter, r *http.Request) {
	videoID, err := uuid.Parse(chi.URLParam(r, "videoId"))
	if err != nil {
		writeError(w, apperr.Validation("invalid video ID"))
		return
	}

	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, apperr.Validation("invalid request body"))
		return
	}

	text, err := h.svc.Transcribe(r.Context(), videoID, body.Prompt)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"transcription": text})
}
