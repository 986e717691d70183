package openai_provider

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mohammad-safakhou/fitcoach/config"
	"github.com/mohammad-safakhou/fitcoach/internal/httpclient"
)

// SpeechSampleRate is the rate of the raw PCM returned by the speech endpoint.
const SpeechSampleRate = 24000

// client implements the provider interfaces using OpenAI's API
type client struct {
	baseURL     string
	planModel   string
	ttsModel    string
	imageModel  string
	voice       string
	temperature float64
	maxTokens   int
	http        *httpclient.Client
	logger      *slog.Logger
}

// Message represents a message in a conversation
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type speechRequest struct {
	Model          string `json:"model"`
	Input          string `json:"input"`
	Voice          string `json:"voice"`
	Instructions   string `json:"instructions,omitempty"`
	ResponseFormat string `json:"response_format"`
}

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

// NewOpenAIClient creates a new OpenAI client. Calls share the retrying
// executor configured by cfg.Retry.
func NewOpenAIClient(cfg config.OpenAIConfig, logger *slog.Logger, opts ...httpclient.Option) *client {
	if logger == nil {
		logger = slog.Default()
	}
	base := []httpclient.Option{
		httpclient.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		httpclient.WithRetry(cfg.Retry.MaxAttempts, cfg.Retry.BackoffBase),
		httpclient.WithHeader("Authorization", "Bearer "+cfg.APIKey),
		httpclient.WithLogger(logger),
	}
	voice := cfg.Voice
	if voice == "" {
		voice = "alloy"
	}
	return &client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		planModel:   cfg.PlanModel,
		ttsModel:    cfg.TTSModel,
		imageModel:  cfg.ImageModel,
		voice:       voice,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		http:        httpclient.New(append(base, opts...)...),
		logger:      logger.With("component", "openai"),
	}
}
