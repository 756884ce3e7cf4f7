package video

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/uploadai/uploadai/internal/apperr"
)

type recordingStore struct {
	saves       int
	removeCalls int
	saveErr     error
}

func (s *recordingStore) Save(ctx context.Context, name string, data io.Reader) (string, error) {
	s.saves++
	if s.saveErr != nil {
		return "", s.saveErr
	}
	return "/uploads/" + name, nil
}

func (s *recordingStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (s *recordingStore) Remove(ctx context.Context, path string) error {
	s.removeCalls++
	return nil
}

func TestUploadRejectsWrongExtensionBeforeStorage(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"wav", "talk.wav"},
		{"mp4", "talk.mp4"},
		{"no extension", "talk"},
		{"mp3 in the middle", "talk.mp3.wav"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &recordingStore{}
			svc := NewService(nil, store)

			_, err := svc.Upload(context.Background(), UploadRequest{
				Filename: tt.filename,
				Data:     strings.NewReader("bytes"),
			})

			var appErr *apperr.Error
			if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
				t.Fatalf("Upload(%q) error = %v, want validation error", tt.filename, err)
			}
			if store.saves != 0 {
				t.Errorf("storage Save was called %d times, want 0", store.saves)
			}
		})
	}
}

func TestUploadAcceptsUppercaseExtension(t *testing.T) {
	store := &recordingStore{saveErr: errors.New("disk full")}
	svc := NewService(nil, store)

	// a storage fault, not a validation fault, proves the extension check
	// already passed
	_, err := svc.Upload(context.Background(), UploadRequest{
		Filename: "TALK.MP3",
		Data:     strings.NewReader("bytes"),
	})

	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindStorage {
		t.Fatalf("Upload() error = %v, want storage error", err)
	}
	if store.saves != 1 {
		t.Errorf("storage Save was called %d times, want 1", store.saves)
	}
}

func TestUploadRejectsMissingInput(t *testing.T) {
	tests := []struct {
		name string
		req  UploadRequest
	}{
		{"empty filename", UploadRequest{Data: strings.NewReader("bytes")}},
		{"nil data", UploadRequest{Filename: "talk.mp3"}},
		{"both missing", UploadRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &recordingStore{}
			svc := NewService(nil, store)

			_, err := svc.Upload(context.Background(), tt.req)
			var appErr *apperr.Error
			if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
				t.Fatalf("Upload() error = %v, want validation error", err)
			}
			if store.saves != 0 {
				t.Errorf("storage Save was called %d times, want 0", store.saves)
			}
		})
	}
}
