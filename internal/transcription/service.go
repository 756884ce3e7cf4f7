// Package transcription turns a stored audio file into transcript text via
// a speech-to-text provider and persists the result on the video row.
package transcription

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/uploadai/uploadai/internal/apperr"
	"github.com/uploadai/uploadai/internal/models"
	"github.com/uploadai/uploadai/internal/storage"
	"github.com/uploadai/uploadai/internal/stt"
)

type videoStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
	SetTranscription(ctx context.Context, id uuid.UUID, text string) error
}

type Service struct {
	videos   videoStore
	store    storage.Storage
	provider stt.Provider
	language string
}

func NewService(videos videoStore, store storage.Storage, provider stt.Provider, language string) *Service {
	return &Service{
		videos:   videos,
		store:    store,
		provider: provider,
		language: language,
	}
}

// Transcribe reads the video's audio from storage, runs speech-to-text with
// the caller's prompt as a vocabulary hint, and stores the transcript.
// A repeated call overwrites the previous transcript.
func (s *Service) Transcribe(ctx context.Context, videoID uuid.UUID, prompt string) (string, error) {
	v, err := s.videos.GetByID(ctx, videoID)
	if err != nil {
		return "", err
	}

	audio, err := s.store.Open(ctx, v.Path)
	if err != nil {
		return "", apperr.Storage("read audio", err)
	}
	defer audio.Close()

	resp, err := s.provider.Transcribe(ctx, stt.TranscriptionRequest{
		Audio:    audio,
		Filename: filepath.Base(v.Path),
		Language: s.language,
		Prompt:   prompt,
	})
	if err != nil {
		return "", apperr.Provider("transcribe audio", err)
	}

	if err := s.videos.SetTranscription(ctx, v.ID, resp.Text); err != nil {
		return "", fmt.Errorf("persist transcription: %w", err)
	}

	return resp.Text, nil
}
