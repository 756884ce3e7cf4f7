// Package completion resolves a prompt template against a video's stored
// transcript and runs it through the chat-completion gateway.
package completion

import (
	"context"

	"github.com/google/uuid"

	"github.com/uploadai/uploadai/internal/apperr"
	"github.com/uploadai/uploadai/internal/llm"
	"github.com/uploadai/uploadai/internal/models"
)

// DefaultTemperature applies when the request omits temperature.
const DefaultTemperature = 0.5

type videoStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error)
}

type Service struct {
	videos  videoStore
	gateway llm.Gateway
	model   string
}

func NewService(videos videoStore, gateway llm.Gateway, model string) *Service {
	return &Service{videos: videos, gateway: gateway, model: model}
}

type Request struct {
	VideoID     uuid.UUID
	Template    string
	Temperature *float64 // nil = default
}

// resolve validates the request and builds the provider call. All business
// failures happen here, before any remote call is issued.
func (s *Service) resolve(ctx context.Context, req Request) (llm.ChatRequest, error) {
	if req.Template == "" {
		return llm.ChatRequest{}, apperr.Validation("prompt is required")
	}

	temp := DefaultTemperature
	if req.Temperature != nil {
		temp = *req.Temperature
		if temp < 0 || temp > 1 {
			return llm.ChatRequest{}, apperr.Validation("temperature must be between 0 and 1")
		}
	}

	v, err := s.videos.GetByID(ctx, req.VideoID)
	if err != nil {
		return llm.ChatRequest{}, err
	}

	if v.Transcription == nil || *v.Transcription == "" {
		return llm.ChatRequest{}, apperr.Precondition("video does not have a transcription yet")
	}

	prompt := RenderPrompt(req.Template, *v.Transcription)

	return llm.ChatRequest{
		Model:       s.model,
		Messages:    []llm.Message{{Role: "user", Content: prompt}},
		Temperature: temp,
	}, nil
}

// Complete runs the prompt in one shot and returns the full provider
// response. Nothing is persisted.
func (s *Service) Complete(ctx context.Context, req Request) (*llm.ChatResponse, error) {
	chatReq, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := s.gateway.Chat(ctx, chatReq)
	if err != nil {
		return nil, apperr.Provider("chat completion", err)
	}
	return resp, nil
}

// CompleteStream runs the prompt in streaming mode. The channel closes when
// the provider stream ends or ctx is cancelled.
func (s *Service) CompleteStream(ctx context.Context, req Request) (<-chan llm.StreamChunk, error) {
	chatReq, err := s.resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	ch, err := s.gateway.ChatStream(ctx, chatReq)
	if err != nil {
		return nil, apperr.Provider("chat completion stream", err)
	}
	return ch, nil
}
