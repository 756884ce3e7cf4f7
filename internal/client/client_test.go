package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUploadAudio(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/videos" {
			t.Errorf("%s %s, want POST /videos", r.Method, r.URL.Path)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		defer file.Close()

		if header.Filename != "demo.mp3" {
			t.Errorf("filename = %q, want %q", header.Filename, "demo.mp3")
		}
		data, _ := io.ReadAll(file)
		if string(data) != "mp3 bytes" {
			t.Errorf("file content = %q, want %q", data, "mp3 bytes")
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"video": map[string]interface{}{"id": id, "name": "demo.mp3", "path": "/uploads/demo-x.mp3"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	v, err := c.UploadAudio(context.Background(), "demo.mp3", strings.NewReader("mp3 bytes"))
	if err != nil {
		t.Fatalf("UploadAudio() error = %v", err)
	}
	if v.ID != id {
		t.Errorf("ID = %v, want %v", v.ID, id)
	}
	if v.Name != "demo.mp3" {
		t.Errorf("Name = %q, want %q", v.Name, "demo.mp3")
	}
}

func TestCreateTranscription(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wantPath := "/videos/" + id.String() + "/transcription"
		if r.URL.Path != wantPath {
			t.Errorf("path = %q, want %q", r.URL.Path, wantPath)
		}

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["prompt"] != "tech terms" {
			t.Errorf("prompt = %q, want %q", body["prompt"], "tech terms")
		}

		json.NewEncoder(w).Encode(map[string]string{"transcription": "hello world"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	text, err := c.CreateTranscription(context.Background(), id, "tech terms")
	if err != nil {
		t.Fatalf("CreateTranscription() error = %v", err)
	}
	if text != "hello world" {
		t.Errorf("transcription = %q, want %q", text, "hello world")
	}
}

func TestComplete(t *testing.T) {
	id := uuid.New()
	temp := 0.3
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ai/complete" {
			t.Errorf("path = %q, want /ai/complete", r.URL.Path)
		}

		var body struct {
			VideoID     uuid.UUID `json:"videoId"`
			Template    string    `json:"template"`
			Temperature *float64  `json:"temperature"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if body.VideoID != id {
			t.Errorf("videoId = %v, want %v", body.VideoID, id)
		}
		if body.Temperature == nil || *body.Temperature != 0.3 {
			t.Errorf("temperature = %v, want 0.3", body.Temperature)
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"response": map[string]interface{}{"content": "a title"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	resp, err := c.Complete(context.Background(), CompletionParams{
		VideoID:     id,
		Template:    "Title: {transcription}",
		Temperature: &temp,
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if resp.Content != "a title" {
		t.Errorf("Content = %q, want %q", resp.Content, "a title")
	}
}

func TestCompleteStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Stream bool `json:"stream"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		if !body.Stream {
			t.Error("stream flag not set")
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		flusher := w.(http.Flusher)
		for _, chunk := range []string{"a ", "catchy ", "title"} {
			io.WriteString(w, chunk)
			flusher.Flush()
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	var out bytes.Buffer
	err := c.CompleteStream(context.Background(), CompletionParams{VideoID: uuid.New(), Template: "t"}, &out)
	if err != nil {
		t.Fatalf("CompleteStream() error = %v", err)
	}
	if out.String() != "a catchy title" {
		t.Errorf("streamed output = %q, want %q", out.String(), "a catchy title")
	}
}

func TestListPrompts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" || r.URL.Path != "/prompts" {
			t.Errorf("%s %s, want GET /prompts", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"prompts": []map[string]interface{}{
				{"id": uuid.New(), "title": "YouTube title", "template": "Title: {transcription}"},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	prompts, err := c.ListPrompts(context.Background())
	if err != nil {
		t.Fatalf("ListPrompts() error = %v", err)
	}
	if len(prompts) != 1 || prompts[0].Title != "YouTube title" {
		t.Errorf("prompts = %+v", prompts)
	}
}

func TestAPIErrorMessageSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid input type, please upload an MP3"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.UploadAudio(context.Background(), "demo.wav", strings.NewReader("x"))
	if err == nil {
		t.Fatal("UploadAudio() error = nil, want API error")
	}
	if !strings.Contains(err.Error(), "invalid input type") {
		t.Errorf("error %q does not carry the server message", err)
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("error %q does not carry the status", err)
	}
}

func TestAPIErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.ListPrompts(context.Background())
	if err == nil {
		t.Fatal("ListPrompts() error = nil, want API error")
	}
	if !strings.Contains(err.Error(), "502") {
		t.Errorf("error %q does not carry the status", err)
	}
}
