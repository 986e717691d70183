package gemini_provider

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mohammad-safakhou/fitcoach/config"
	"github.com/mohammad-safakhou/fitcoach/internal/httpclient"
)

// client implements the provider interfaces on top of the Generative Language API.
type client struct {
	baseURL    string
	planModel  string
	ttsModel   string
	imageModel string
	voice      string
	http       *httpclient.Client
	logger     *slog.Logger
}

// NewGeminiClient creates a new Gemini client. Every call goes through the
// retrying executor configured by cfg.Retry.
func NewGeminiClient(cfg config.GeminiConfig, logger *slog.Logger, opts ...httpclient.Option) *client {
	if logger == nil {
		logger = slog.Default()
	}
	base := []httpclient.Option{
		httpclient.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		httpclient.WithRetry(cfg.Retry.MaxAttempts, cfg.Retry.BackoffBase),
		httpclient.WithHeader("x-goog-api-key", cfg.APIKey),
		httpclient.WithLogger(logger),
	}
	voice := cfg.Voice
	if voice == "" {
		voice = "Kore"
	}
	return &client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		planModel:  cfg.PlanModel,
		ttsModel:   cfg.TTSModel,
		imageModel: cfg.ImageModel,
		voice:      voice,
		http:       httpclient.New(append(base, opts...)...),
		logger:     logger.With("component", "gemini"),
	}
}

func (c *client) endpoint(model, method string) string {
	return c.baseURL + "/models/" + model + ":" + method
}
