package stt

import (
	"context"
	"io"
)

// TranscriptionRequest holds the audio content and decoding parameters for
// one transcription call. Prompt biases vocabulary recognition; it is not
// an instruction to the model.
type TranscriptionRequest struct {
	Audio    io.Reader
	Filename string
	Language string
	Prompt   string
}

// TranscriptionResponse holds the transcription result.
type TranscriptionResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

// Provider is the interface for speech-to-text backends.
type Provider interface {
	Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error)
	Name() string
}
