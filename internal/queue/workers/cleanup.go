package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hibiken/asynq"

	"github.com/uploadai/uploadai/internal/queue"
)

type pathLister interface {
	ReferencedPaths(ctx context.Context) (map[string]bool, error)
}

// CleanupWorker deletes stale files in the upload directory that no video
// row references. Referenced files are never touched: a recorded storage
// path stays valid for the lifetime of its row.
type CleanupWorker struct {
	videos    pathLister
	uploadDir string
}

func NewCleanupWorker(videos pathLister, uploadDir string) *CleanupWorker {
	return &CleanupWorker{videos: videos, uploadDir: uploadDir}
}

func (w *CleanupWorker) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload queue.MediaCleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	maxAge := time.Duration(payload.MaxAgeHours) * time.Hour
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}

	referenced, err := w.videos.ReferencedPaths(ctx)
	if err != nil {
		return fmt.Errorf("list referenced paths: %w", err)
	}

	entries, err := os.ReadDir(w.uploadDir)
	if err != nil {
		return fmt.Errorf("read upload dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path, err := filepath.Abs(filepath.Join(w.uploadDir, entry.Name()))
		if err != nil {
			continue
		}
		if referenced[path] {
			continue
		}

		info, err := entry.Info()
		if err != nil || time.Since(info.ModTime()) < maxAge {
			continue
		}

		if err := os.Remove(path); err != nil {
			slog.Warn("cleanup failed to remove orphan", "path", path, "error", err)
			continue
		}
		removed++
	}

	slog.Info("media cleanup finished", "scanned", len(entries), "removed", removed)
	return nil
}
