package extract

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

type fakeRunner struct {
	name   string
	args   []string
	stderr string
	err    error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	f.name = name
	f.args = args
	return f.stderr, f.err
}

func TestExtractBuildsEncoderCommand(t *testing.T) {
	runner := &fakeRunner{}
	ex := newForTests("/usr/bin/ffmpeg", runner)

	out, err := ex.Extract(context.Background(), "/videos/demo.mp4", "/tmp/work")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	want := filepath.Join("/tmp/work", "demo.mp3")
	if out != want {
		t.Errorf("output path = %q, want %q", out, want)
	}
	if runner.name != "/usr/bin/ffmpeg" {
		t.Errorf("command = %q, want ffmpeg path", runner.name)
	}

	wantArgs := []string{
		"-y",
		"-i", "/videos/demo.mp4",
		"-vn",
		"-map", "0:a",
		"-acodec", "libmp3lame",
		"-b:a", "20k",
		"-ac", "1",
		want,
	}
	if len(runner.args) != len(wantArgs) {
		t.Fatalf("got %d args, want %d: %v", len(runner.args), len(wantArgs), runner.args)
	}
	for i := range wantArgs {
		if runner.args[i] != wantArgs[i] {
			t.Errorf("arg[%d] = %q, want %q", i, runner.args[i], wantArgs[i])
		}
	}
}

func TestExtractKeepsBaseNameAcrossExtensions(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/v/clip.mp4", "clip.mp3"},
		{"/v/clip.webm", "clip.mp3"},
		{"/v/clip", "clip.mp3"},
		{"/v/my.talk.mkv", "my.talk.mp3"},
	}

	for _, tt := range tests {
		runner := &fakeRunner{}
		ex := newForTests("ffmpeg", runner)
		out, err := ex.Extract(context.Background(), tt.in, "/out")
		if err != nil {
			t.Fatalf("Extract(%q) error = %v", tt.in, err)
		}
		if got := filepath.Base(out); got != tt.want {
			t.Errorf("Extract(%q) output = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractReportsLastStderrLine(t *testing.T) {
	runner := &fakeRunner{
		stderr: "ffmpeg version 6.0\nStream mapping:\n/v/demo.mp4: Invalid data found when processing input\n",
		err:    errors.New("exit status 1"),
	}
	ex := newForTests("ffmpeg", runner)

	_, err := ex.Extract(context.Background(), "/v/demo.mp4", "/out")
	if err == nil {
		t.Fatal("Extract() error = nil, want encode failure")
	}

	var exErr *Error
	if !errors.As(err, &exErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if !strings.Contains(exErr.Message, "Invalid data found") {
		t.Errorf("message %q does not carry the last stderr line", exErr.Message)
	}
	if !strings.Contains(exErr.Message, "encode failed") {
		t.Errorf("message %q missing encode failure prefix", exErr.Message)
	}
	if !errors.Is(err, runner.err) {
		t.Error("underlying exec error is not wrapped")
	}
}

func TestExtractEmptyStderr(t *testing.T) {
	runner := &fakeRunner{err: errors.New("exit status 1")}
	ex := newForTests("ffmpeg", runner)

	_, err := ex.Extract(context.Background(), "/v/demo.mp4", "/out")
	var exErr *Error
	if !errors.As(err, &exErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if exErr.Message != "encode failed" {
		t.Errorf("message = %q, want %q", exErr.Message, "encode failed")
	}
}
