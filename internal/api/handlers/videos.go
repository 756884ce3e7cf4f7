package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/uploadai/uploadai/internal/apperr"
	"github.com/uploadai/uploadai/internal/models"
	"github.com/uploadai/uploadai/internal/video"
)

type videoUploader interface {
	Upload(ctx context.Context, req video.UploadRequest) (*models.Video, error)
}

type VideoHandler struct {
	svc      videoUploader
	maxBytes int64
}

func NewVideoHandler(svc videoUploader, maxBytes int64) *VideoHandler {
	return &VideoHandler{svc: svc, maxBytes: maxBytes}
}

// multipartOverhead leaves room for boundary and header framing so a file
// of exactly maxBytes still fits in the request body.
const multipartOverhead = 64 << 10

// Upload accepts one audio file as the multipart field "file". The size cap
// applies to the file itself; the whole-body reader only bounds the request
// before any form parsing runs.
func (h *VideoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(4 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, apperr.PayloadTooLarge("uploaded file is too large"))
			return
		}
		writeError(w, apperr.Validation("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperr.Validation("missing file input"))
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		writeError(w, apperr.PayloadTooLarge("uploaded file is too large"))
		return
	}

	v, err := h.svc.Upload(r.Context(), video.UploadRequest{
		Filename: header.Filename,
		Data:     file,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"video": v})
}
