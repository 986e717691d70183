package provider

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mohammad-safakhou/fitcoach/config"
	"github.com/mohammad-safakhou/fitcoach/internal/audio"
	"github.com/mohammad-safakhou/fitcoach/models"
	gemini_provider "github.com/mohammad-safakhou/fitcoach/provider/gemini"
	openai_provider "github.com/mohammad-safakhou/fitcoach/provider/openai"
)

// Client represents different generative AI providers
type Client string

const (
	OpenAI Client = "openai"
	Gemini Client = "gemini"
)

// PlanGenerator produces a full plan for a profile or fails as a whole.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, profile models.UserProfile) (*models.Plan, error)
}

// SpeechSynthesizer turns text into a playable clip tagged with id.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, id, text string) (*audio.Clip, error)
}

// ImageGenerator returns a data URI for a generated image.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// Provider is the interface that all generative AI backends must satisfy
type Provider interface {
	PlanGenerator
	SpeechSynthesizer
	ImageGenerator
}

// NewProvider creates a new client based on the provided configuration
func NewProvider(cfg config.ProviderConfig, logger *slog.Logger) (Provider, error) {
	switch Client(strings.ToLower(cfg.Type)) {
	case Gemini, "":
		if strings.TrimSpace(cfg.Gemini.APIKey) == "" {
			return nil, errors.New("gemini api key not set (provider.gemini.api_key or GEMINI_API_KEY)")
		}
		return gemini_provider.NewGeminiClient(cfg.Gemini, logger), nil
	case OpenAI:
		if strings.TrimSpace(cfg.OpenAI.APIKey) == "" {
			return nil, errors.New("openai api key not set (provider.openai.api_key or OPENAI_API_KEY)")
		}
		return openai_provider.NewOpenAIClient(cfg.OpenAI, logger), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Type)
	}
}
