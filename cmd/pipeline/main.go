// Command pipeline is the client side of upload-ai: it converts a video to
// audio, uploads it, requests a transcription, and can then run a prompt
// template against the transcript, streaming the completion to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/uploadai/uploadai/internal/client"
	"github.com/uploadai/uploadai/internal/extract"
	"github.com/uploadai/uploadai/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	var (
		apiURL      = flag.String("api", "http://localhost:3333", "base URL of the upload-ai API")
		videoPath   = flag.String("video", "", "video file to process")
		hint        = flag.String("hint", "", "comma-separated keywords to bias transcription")
		template    = flag.String("template", "", "completion template; use {transcription} for the transcript")
		temperature = flag.Float64("temperature", 0.5, "completion temperature (0..1)")
		stream      = flag.Bool("stream", true, "stream the completion as it is generated")
		listPrompts = flag.Bool("list-prompts", false, "print the prompt catalog and exit")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := client.New(*apiURL)

	if *listPrompts {
		prompts, err := api.ListPrompts(ctx)
		if err != nil {
			fatal(err)
		}
		for _, p := range prompts {
			fmt.Printf("%s\t%s\n", p.ID, p.Title)
		}
		return
	}

	if *videoPath == "" {
		fatal(fmt.Errorf("-video is required"))
	}

	ex, err := extract.Shared()
	if err != nil {
		fatal(err)
	}

	runner := pipeline.NewRunner(ex, api, os.TempDir())
	runner.OnStateChange = func(s pipeline.State) {
		fmt.Fprintf(os.Stderr, "pipeline: %s\n", s)
	}

	result, err := runner.Run(ctx, *videoPath, *hint)
	if err != nil {
		fatal(err)
	}
	fmt.Fprintf(os.Stderr, "video id: %s\n", result.VideoID)

	if *template == "" {
		return
	}

	params := client.CompletionParams{
		VideoID:     result.VideoID,
		Template:    *template,
		Temperature: temperature,
	}

	if *stream {
		if err := api.CompleteStream(ctx, params, os.Stdout); err != nil {
			fatal(err)
		}
		fmt.Println()
		return
	}

	resp, err := api.Complete(ctx, params)
	if err != nil {
		fatal(err)
	}
	fmt.Println(resp.Content)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
