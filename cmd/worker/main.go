package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/uploadai/uploadai/internal/config"
	"github.com/uploadai/uploadai/internal/database"
	"github.com/uploadai/uploadai/internal/queue"
	"github.com/uploadai/uploadai/internal/queue/workers"
	"github.com/uploadai/uploadai/internal/storage"
	"github.com/uploadai/uploadai/internal/video"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		slog.Error("database unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store, err := storage.NewLocalStorage(cfg.Upload.Dir)
	if err != nil {
		slog.Error("failed to open upload storage", "error", err)
		os.Exit(1)
	}

	videoSvc := video.NewService(db, store)
	cleanup := workers.NewCleanupWorker(videoSvc, store.Root())

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}

	mux := asynq.NewServeMux()
	mux.Handle(queue.TypeMediaCleanup, asynq.HandlerFunc(cleanup.ProcessTask))

	// Periodic sweep; the API also enqueues a catch-up task at startup.
	payload, _ := json.Marshal(queue.MediaCleanupPayload{MaxAgeHours: cfg.Upload.RetentionHours})
	scheduler := asynq.NewScheduler(redisOpt, nil)
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(queue.TypeMediaCleanup, payload)); err != nil {
		slog.Error("failed to register cleanup schedule", "error", err)
		os.Exit(1)
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			slog.Error("scheduler error", "error", err)
			os.Exit(1)
		}
	}()

	srv := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 5})

	slog.Info("starting worker", "upload_dir", store.Root())
	if err := srv.Run(mux); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
