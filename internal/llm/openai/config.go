package openai

import (
	"log/slog"
	"net/http"
	"os"
	"time"
)

// Config for the OpenAI client.
type Config struct {
	APIKey            string        // if empty, falls back to env OPENAI_API_KEY
	BaseURL           string        // default https://api.openai.com/v1
	VisionModel       string        // e.g., "gpt-4o"
	TextModel         string        // e.g., "gpt-4o-mini"
	TranscribeModel   string        // e.g., "gpt-4o-mini-transcribe"
	Temperature       float32       // low: determinism over creativity
	MaxTokens         int           // generous ceiling so steps are never truncated
	Timeout           time.Duration // chat-completions http client timeout
	TranscribeTimeout time.Duration
}

type Client struct {
	cfg            Config
	httpClient     *http.Client
	transcribeHTTP *http.Client
	log            *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = "gpt-4o"
	}
	if cfg.TextModel == "" {
		cfg.TextModel = "gpt-4o-mini"
	}
	if cfg.TranscribeModel == "" {
		cfg.TranscribeModel = "gpt-4o-mini-transcribe"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.3
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.TranscribeTimeout <= 0 {
		cfg.TranscribeTimeout = 2 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:            cfg,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		transcribeHTTP: &http.Client{Timeout: cfg.TranscribeTimeout},
		log:            logger,
	}
}
