// Package prompt serves the read-only catalog of completion templates.
package prompt

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/uploadai/uploadai/internal/cache"
	"github.com/uploadai/uploadai/internal/models"
)

const (
	listCacheKey = "prompts:all"
	listCacheTTL = 5 * time.Minute
)

type Service struct {
	db    *pgxpool.Pool
	cache *cache.Cache
}

// NewService creates the catalog service. cache may be nil; reads then
// always hit the database.
func NewService(db *pgxpool.Pool, c *cache.Cache) *Service {
	return &Service{db: db, cache: c}
}

// List returns every catalog entry. The catalog is seeded by migration and
// changes rarely, so results are cached for a short TTL; cache failures
// fall through to the database.
func (s *Service) List(ctx context.Context) ([]models.Prompt, error) {
	if s.cache != nil {
		var cached []models.Prompt
		if err := s.cache.Get(ctx, listCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	rows, err := s.db.Query(ctx, "SELECT id, title, template FROM prompts ORDER BY title")
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close()

	var prompts []models.Prompt
	for rows.Next() {
		var p models.Prompt
		if err := rows.Scan(&p.ID, &p.Title, &p.Template); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, listCacheKey, prompts, listCacheTTL); err != nil {
			slog.Debug("prompt cache set failed", "error", err)
		}
	}

	return prompts, nil
}
