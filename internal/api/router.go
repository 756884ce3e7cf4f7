package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/uploadai/uploadai/internal/api/handlers"
	"github.com/uploadai/uploadai/internal/api/middleware"
	"github.com/uploadai/uploadai/internal/cache"
	"github.com/uploadai/uploadai/internal/completion"
	"github.com/uploadai/uploadai/internal/config"
	"github.com/uploadai/uploadai/internal/llm"
	"github.com/uploadai/uploadai/internal/prompt"
	"github.com/uploadai/uploadai/internal/storage"
	"github.com/uploadai/uploadai/internal/stt"
	"github.com/uploadai/uploadai/internal/transcription"
	"github.com/uploadai/uploadai/internal/video"
)

type Router struct {
	mux   *chi.Mux
	db    *pgxpool.Pool
	redis *redis.Client
	cfg   *config.Config
	store storage.Storage
	llmGW llm.Gateway
}

func NewRouter(db *pgxpool.Pool, rdb *redis.Client, store storage.Storage, cfg *config.Config) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		db:    db,
		redis: rdb,
		cfg:   cfg,
		store: store,
		llmGW: llm.NewGateway(cfg.LLM),
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	rl := middleware.NewRateLimiter(100, 200)
	r.Use(rl.Limit)

	// Health endpoints
	health := handlers.NewHealthHandler(rt.db, rt.redis)
	r.Get("/healthz", health.Healthz)
	r.Get("/readyz", health.Readyz)

	// Services
	videoSvc := video.NewService(rt.db, rt.store)
	var sttProvider stt.Provider
	if rt.cfg.STT.Backend == "local" {
		sttProvider = stt.NewLocal(stt.LocalConfig{BaseURL: rt.cfg.STT.LocalBaseURL})
	} else {
		sttProvider = stt.NewOpenAI(stt.OpenAIConfig{
			APIKey:  rt.cfg.STT.APIKey,
			BaseURL: rt.cfg.STT.BaseURL,
			Model:   rt.cfg.STT.Model,
		})
	}
	transcriptionSvc := transcription.NewService(videoSvc, rt.store, sttProvider, rt.cfg.STT.Language)
	completionSvc := completion.NewService(videoSvc, rt.llmGW, rt.cfg.LLM.Model)
	promptSvc := prompt.NewService(rt.db, cache.New(rt.redis))

	// Routes
	videoH := handlers.NewVideoHandler(videoSvc, rt.cfg.Upload.MaxBytes)
	r.Post("/videos", videoH.Upload)

	transcriptionH := handlers.NewTranscriptionHandler(transcriptionSvc)
	r.Post("/videos/{videoId}/transcription", transcriptionH.Create)

	completionH := handlers.NewCompletionHandler(completionSvc)
	r.Post("/ai/complete", completionH.Generate)

	promptH := handlers.NewPromptHandler(promptSvc)
	r.Get("/prompts", promptH.List)

	return r
}
