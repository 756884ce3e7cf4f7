// Package extract converts video files into compressed mono audio suitable
// for transcription upload, using an ffmpeg subprocess.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// Error is an extraction failure: the transcoder could not be located or
// the encode step failed.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extract: %s: %v", e.Message, e.Err)
	}
	return "extract: " + e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// commandRunner abstracts process execution for testability.
type commandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stderr string, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.String(), err
}

// Extractor converts video to mono MP3 at ~20 kbit/s.
type Extractor struct {
	ffmpegPath string
	runner     commandRunner
}

var (
	sharedOnce sync.Once
	shared     *Extractor
	sharedErr  error
)

// Shared returns the process-wide extractor. The first caller pays the
// lookup cost; later calls reuse the resolved handle.
func Shared() (*Extractor, error) {
	sharedOnce.Do(func() {
		path, err := exec.LookPath("ffmpeg")
		if err != nil {
			sharedErr = &Error{Message: "ffmpeg not found in PATH", Err: err}
			return
		}
		shared = &Extractor{ffmpegPath: path, runner: execRunner{}}
	})
	return shared, sharedErr
}

func newForTests(ffmpegPath string, runner commandRunner) *Extractor {
	return &Extractor{ffmpegPath: ffmpegPath, runner: runner}
}

// Extract encodes the audio track of videoPath into <outDir>/<base>.mp3 and
// returns the output path.
func (e *Extractor) Extract(ctx context.Context, videoPath, outDir string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	out := filepath.Join(outDir, base+".mp3")

	args := []string{
		"-y",
		"-i", videoPath,
		"-vn",
		"-map", "0:a",
		"-acodec", "libmp3lame",
		"-b:a", "20k",
		"-ac", "1",
		out,
	}

	stderr, err := e.runner.Run(ctx, e.ffmpegPath, args...)
	if err != nil {
		msg := "encode failed"
		if s := strings.TrimSpace(stderr); s != "" {
			msg = fmt.Sprintf("encode failed: %s", lastLine(s))
		}
		return "", &Error{Message: msg, Err: err}
	}

	return out, nil
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}
