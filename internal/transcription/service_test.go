package transcription

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/uploadai/uploadai/internal/apperr"
	"github.com/uploadai/uploadai/internal/models"
	"github.com/uploadai/uploadai/internal/stt"
)

type fakeVideos struct {
	video     *models.Video
	getErr    error
	saved     map[uuid.UUID]string
	saveCalls int
}

func (f *fakeVideos) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.video, nil
}

func (f *fakeVideos) SetTranscription(ctx context.Context, id uuid.UUID, text string) error {
	f.saveCalls++
	if f.saved == nil {
		f.saved = make(map[uuid.UUID]string)
	}
	f.saved[id] = text
	return nil
}

type fakeStorage struct {
	content string
	openErr error
}

func (f *fakeStorage) Save(ctx context.Context, name string, data io.Reader) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(strings.NewReader(f.content)), nil
}

func (f *fakeStorage) Remove(ctx context.Context, path string) error { return nil }

type fakeProvider struct {
	lastReq stt.TranscriptionRequest
	text    string
	err     error
	calls   int
}

func (f *fakeProvider) Transcribe(ctx context.Context, req stt.TranscriptionRequest) (*stt.TranscriptionResponse, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &stt.TranscriptionResponse{Text: f.text}, nil
}

func (f *fakeProvider) Name() string { return "fake" }

func TestTranscribe(t *testing.T) {
	videos := &fakeVideos{video: &models.Video{ID: uuid.New(), Name: "talk.mp3", Path: "/uploads/talk-abc.mp3"}}
	store := &fakeStorage{content: "mp3 bytes"}
	provider := &fakeProvider{text: "hello from the talk"}
	svc := NewService(videos, store, provider, "pt")

	text, err := svc.Transcribe(context.Background(), videos.video.ID, "jargon, acronyms")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "hello from the talk" {
		t.Errorf("text = %q, want %q", text, "hello from the talk")
	}

	if provider.lastReq.Filename != "talk-abc.mp3" {
		t.Errorf("Filename = %q, want %q", provider.lastReq.Filename, "talk-abc.mp3")
	}
	if provider.lastReq.Language != "pt" {
		t.Errorf("Language = %q, want %q", provider.lastReq.Language, "pt")
	}
	if provider.lastReq.Prompt != "jargon, acronyms" {
		t.Errorf("Prompt = %q, want %q", provider.lastReq.Prompt, "jargon, acronyms")
	}

	if got := videos.saved[videos.video.ID]; got != "hello from the talk" {
		t.Errorf("persisted transcript = %q, want %q", got, "hello from the talk")
	}
}

func TestTranscribeUnknownVideo(t *testing.T) {
	videos := &fakeVideos{getErr: apperr.NotFound("video not found")}
	provider := &fakeProvider{text: "x"}
	svc := NewService(videos, &fakeStorage{}, provider, "pt")

	_, err := svc.Transcribe(context.Background(), uuid.New(), "")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
		t.Fatalf("Transcribe() error = %v, want not found error", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider was called %d times, want 0", provider.calls)
	}
}

func TestTranscribeStorageFailure(t *testing.T) {
	videos := &fakeVideos{video: &models.Video{ID: uuid.New(), Path: "/uploads/gone.mp3"}}
	store := &fakeStorage{openErr: errors.New("no such file")}
	provider := &fakeProvider{text: "x"}
	svc := NewService(videos, store, provider, "pt")

	_, err := svc.Transcribe(context.Background(), videos.video.ID, "")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindStorage {
		t.Fatalf("Transcribe() error = %v, want storage error", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider was called %d times, want 0", provider.calls)
	}
}

func TestTranscribeProviderFailureDoesNotPersist(t *testing.T) {
	videos := &fakeVideos{video: &models.Video{ID: uuid.New(), Path: "/uploads/a.mp3"}}
	provider := &fakeProvider{err: errors.New("model overloaded")}
	svc := NewService(videos, &fakeStorage{content: "bytes"}, provider, "pt")

	_, err := svc.Transcribe(context.Background(), videos.video.ID, "")
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindProvider {
		t.Fatalf("Transcribe() error = %v, want provider error", err)
	}
	if videos.saveCalls != 0 {
		t.Errorf("SetTranscription was called %d times, want 0", videos.saveCalls)
	}
}

func TestTranscribeOverwritesPreviousTranscript(t *testing.T) {
	old := "first pass"
	videos := &fakeVideos{video: &models.Video{ID: uuid.New(), Path: "/uploads/a.mp3", Transcription: &old}}
	provider := &fakeProvider{text: "second pass"}
	svc := NewService(videos, &fakeStorage{content: "bytes"}, provider, "pt")

	text, err := svc.Transcribe(context.Background(), videos.video.ID, "")
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if text != "second pass" {
		t.Errorf("text = %q, want %q", text, "second pass")
	}
	if got := videos.saved[videos.video.ID]; got != "second pass" {
		t.Errorf("persisted transcript = %q, want %q", got, "second pass")
	}
}
