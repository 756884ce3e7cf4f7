// Package pipeline drives the client-side upload workflow: convert the
// selected video to audio, upload it, then request a transcription. The
// run is strictly linear and its progress is published as state changes.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/uploadai/uploadai/internal/models"
)

type State string

const (
	StateWaiting                 State = "WAITING"
	StateConvertingVideo         State = "CONVERTING_VIDEO"
	StateUploadingVideo          State = "UPLOADING_VIDEO"
	StateGeneratingTranscription State = "GENERATING_TRANSCRIPTION"
	StateSuccess                 State = "SUCCESS"
	StateFailed                  State = "FAILED"
)

// ErrNotIdle is returned by Run when the runner is mid-run or already
// finished; a finished runner must be Reset before reuse.
var ErrNotIdle = errors.New("pipeline: runner is not idle")

// ErrRunning is returned by Reset while a run is in progress.
var ErrRunning = errors.New("pipeline: run in progress")

type extractor interface {
	Extract(ctx context.Context, videoPath, outDir string) (string, error)
}

type api interface {
	UploadAudio(ctx context.Context, filename string, audio io.Reader) (*models.Video, error)
	CreateTranscription(ctx context.Context, videoID uuid.UUID, prompt string) (string, error)
}

// Runner owns one pipeline run at a time. State changes are delivered on
// the OnStateChange callback from the goroutine calling Run.
type Runner struct {
	extractor extractor
	api       api
	workDir   string

	OnStateChange func(State)

	mu      sync.Mutex
	state   State
	lastErr error
}

func NewRunner(ex extractor, api api, workDir string) *Runner {
	return &Runner{
		extractor: ex,
		api:       api,
		workDir:   workDir,
		state:     StateWaiting,
	}
}

func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Err returns the failure that moved the runner to FAILED, if any.
func (r *Runner) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Reset returns a finished runner (SUCCESS or FAILED) to WAITING.
func (r *Runner) Reset() error {
	r.mu.Lock()
	switch r.state {
	case StateWaiting:
		r.mu.Unlock()
		return nil
	case StateSuccess, StateFailed:
		r.state = StateWaiting
		r.lastErr = nil
		r.mu.Unlock()
		r.notify(StateWaiting)
		return nil
	}
	r.mu.Unlock()
	return ErrRunning
}

type Result struct {
	VideoID       uuid.UUID
	Transcription string
}

// Run executes the pipeline for one video file. Only a WAITING runner may
// start; any stage failure moves the runner to FAILED and returns the
// error.
func (r *Runner) Run(ctx context.Context, videoPath, promptHint string) (*Result, error) {
	r.mu.Lock()
	if r.state != StateWaiting {
		r.mu.Unlock()
		return nil, ErrNotIdle
	}
	r.state = StateConvertingVideo
	r.mu.Unlock()
	r.notify(StateConvertingVideo)

	audioPath, err := r.extractor.Extract(ctx, videoPath, r.workDir)
	if err != nil {
		return nil, r.fail(fmt.Errorf("convert video: %w", err))
	}

	audio, err := os.Open(audioPath)
	if err != nil {
		return nil, r.fail(fmt.Errorf("open converted audio: %w", err))
	}

	r.setState(StateUploadingVideo)
	video, err := r.api.UploadAudio(ctx, filepath.Base(audioPath), audio)
	audio.Close()
	if err != nil {
		return nil, r.fail(fmt.Errorf("upload audio: %w", err))
	}

	r.setState(StateGeneratingTranscription)
	transcription, err := r.api.CreateTranscription(ctx, video.ID, promptHint)
	if err != nil {
		return nil, r.fail(fmt.Errorf("generate transcription: %w", err))
	}

	r.setState(StateSuccess)
	return &Result{VideoID: video.ID, Transcription: transcription}, nil
}

func (r *Runner) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
	r.notify(s)
}

func (r *Runner) fail(err error) error {
	r.mu.Lock()
	r.state = StateFailed
	r.lastErr = err
	r.mu.Unlock()
	r.notify(StateFailed)
	return err
}

func (r *Runner) notify(s State) {
	if r.OnStateChange != nil {
		r.OnStateChange(s)
	}
}
