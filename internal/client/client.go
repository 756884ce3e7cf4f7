// Package client is the typed HTTP client for the upload-ai API, used by
// the pipeline runner and the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/uploadai/uploadai/internal/llm"
	"github.com/uploadai/uploadai/internal/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the API at baseURL. No client-side timeout is
// set: streaming completions stay open until the provider finishes, so
// deadlines belong on the caller's context.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// UploadAudio posts the audio file as multipart form data and returns the
// created video record.
func (c *Client) UploadAudio(ctx context.Context, filename string, audio io.Reader) (*models.Video, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(fw, audio); err != nil {
		return nil, fmt.Errorf("copy audio: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/videos", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var respBody struct {
		Video models.Video `json:"video"`
	}
	if err := c.do(req, &respBody); err != nil {
		return nil, err
	}
	return &respBody.Video, nil
}

// CreateTranscription asks the server to transcribe an uploaded video,
// using prompt as a vocabulary hint, and returns the transcript.
func (c *Client) CreateTranscription(ctx context.Context, videoID uuid.UUID, prompt string) (string, error) {
	req, err := c.jsonRequest(ctx, fmt.Sprintf("%s/videos/%s/transcription", c.baseURL, videoID), map[string]string{
		"prompt": prompt,
	})
	if err != nil {
		return "", err
	}

	var respBody struct {
		Transcription string `json:"transcription"`
	}
	if err := c.do(req, &respBody); err != nil {
		return "", err
	}
	return respBody.Transcription, nil
}

// CompletionParams are the inputs for both completion modes.
type CompletionParams struct {
	VideoID     uuid.UUID `json:"videoId"`
	Template    string    `json:"template"`
	Temperature *float64  `json:"temperature,omitempty"`
}

// Complete requests a non-streaming completion.
func (c *Client) Complete(ctx context.Context, params CompletionParams) (*llm.ChatResponse, error) {
	req, err := c.jsonRequest(ctx, c.baseURL+"/ai/complete", params)
	if err != nil {
		return nil, err
	}

	var respBody struct {
		Response llm.ChatResponse `json:"response"`
	}
	if err := c.do(req, &respBody); err != nil {
		return nil, err
	}
	return &respBody.Response, nil
}

// CompleteStream requests a streaming completion and copies the raw chunks
// to w as they arrive.
func (c *Client) CompleteStream(ctx context.Context, params CompletionParams, w io.Writer) error {
	payload := struct {
		CompletionParams
		Stream bool `json:"stream"`
	}{CompletionParams: params, Stream: true}

	req, err := c.jsonRequest(ctx, c.baseURL+"/ai/complete", payload)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("read completion stream: %w", err)
	}
	return nil
}

// ListPrompts fetches the prompt catalog.
func (c *Client) ListPrompts(ctx context.Context) ([]models.Prompt, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/prompts", nil)
	if err != nil {
		return nil, err
	}

	var respBody struct {
		Prompts []models.Prompt `json:"prompts"`
	}
	if err := c.do(req, &respBody); err != nil {
		return nil, err
	}
	return respBody.Prompts, nil
}

func (c *Client) jsonRequest(ctx context.Context, url string, payload interface{}) (*http.Request, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, dest interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("api: %s (status %d)", body.Error, resp.StatusCode)
	}
	return fmt.Errorf("api: unexpected status %d", resp.StatusCode)
}
