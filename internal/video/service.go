// Package video implements the upload service: it validates incoming audio
// files, persists the bytes, and owns the videos metadata table.
package video

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"lukechampine.com/blake3"

	"github.com/uploadai/uploadai/internal/apperr"
	"github.com/uploadai/uploadai/internal/models"
	"github.com/uploadai/uploadai/internal/storage"
)

// The pipeline always converts to compressed mono MP3 before uploading, so
// the server accepts nothing else.
const acceptedExtension = ".mp3"

type Service struct {
	db    *pgxpool.Pool
	store storage.Storage
}

func NewService(db *pgxpool.Pool, store storage.Storage) *Service {
	return &Service{db: db, store: store}
}

type UploadRequest struct {
	Filename string
	Data     io.Reader
}

// Upload validates the file, writes it to storage as <base>-<id>.mp3, and
// creates the metadata row. Every call creates a new asset; identical bytes
// are not deduplicated.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*models.Video, error) {
	if req.Filename == "" || req.Data == nil {
		return nil, apperr.Validation("missing file input")
	}

	ext := strings.ToLower(filepath.Ext(req.Filename))
	if ext != acceptedExtension {
		return nil, apperr.Validation("invalid input type, please upload an MP3")
	}

	id := uuid.New()
	base := strings.TrimSuffix(filepath.Base(req.Filename), filepath.Ext(req.Filename))
	storedName := fmt.Sprintf("%s-%s%s", base, id, ext)

	hasher := blake3.New(32, nil)
	path, err := s.store.Save(ctx, storedName, io.TeeReader(req.Data, hasher))
	if err != nil {
		return nil, apperr.Storage("persist upload", err)
	}
	hash := hex.EncodeToString(hasher.Sum(nil))

	var v models.Video
	err = s.db.QueryRow(ctx,
		`INSERT INTO videos (id, name, path, blake3_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, name, path, blake3_hash, transcription, created_at`,
		id, req.Filename, path, hash,
	).Scan(&v.ID, &v.Name, &v.Path, &v.Blake3Hash, &v.Transcription, &v.CreatedAt)
	if err != nil {
		// the row never existed, so the blob is an orphan
		_ = s.store.Remove(ctx, path)
		return nil, apperr.Storage("insert video", err)
	}

	return &v, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	var v models.Video
	err := s.db.QueryRow(ctx,
		`SELECT id, name, path, blake3_hash, transcription, created_at
		 FROM videos WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.Name, &v.Path, &v.Blake3Hash, &v.Transcription, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("video not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get video: %w", err)
	}
	return &v, nil
}

// SetTranscription overwrites the transcript unconditionally. Racing
// transcription calls are last-write-wins.
func (s *Service) SetTranscription(ctx context.Context, id uuid.UUID, text string) error {
	tag, err := s.db.Exec(ctx, "UPDATE videos SET transcription = $1 WHERE id = $2", text, id)
	if err != nil {
		return fmt.Errorf("update transcription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("video not found")
	}
	return nil
}

// ReferencedPaths returns every storage path recorded in the videos table.
// The cleanup worker uses it to tell orphaned blobs from live ones.
func (s *Service) ReferencedPaths(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.Query(ctx, "SELECT path FROM videos")
	if err != nil {
		return nil, fmt.Errorf("list paths: %w", err)
	}
	defer rows.Close()

	paths := make(map[string]bool)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan path: %w", err)
		}
		paths[p] = true
	}
	return paths, rows.Err()
}
