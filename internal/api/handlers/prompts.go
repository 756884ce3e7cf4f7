package handlers

import (
	"context"
	"net/http"

	"github.com/uploadai/uploadai/internal/models"
)

type promptLister interface {
	List(ctx context.Context) ([]models.Prompt, error)
}

type PromptHandler struct {
	svc promptLister
}

func NewPromptHandler(svc promptLister) *PromptHandler {
	return &PromptHandler{svc: svc}
}

func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	prompts, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if prompts == nil {
		prompts = []models.Prompt{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"prompts": prompts})
}
