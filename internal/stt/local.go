package stt

// LocalConfig holds configuration for the local whisper.cpp backend.
type LocalConfig struct {
	BaseURL string // default: "http://localhost:8178"
}

// Local wraps the OpenAI backend pointing at a local whisper.cpp server.
// Start the server with: ./server -m models/ggml-base.bin --port 8178
type Local struct {
	*OpenAI
}

// NewLocal creates a Local STT backend backed by a whisper.cpp HTTP server.
func NewLocal(cfg LocalConfig) *Local {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8178"
	}
	return &Local{
		OpenAI: NewOpenAI(OpenAIConfig{
			BaseURL: baseURL,
			// No API key needed for the local server
		}),
	}
}

func (l *Local) Name() string { return "local-whisper" }
