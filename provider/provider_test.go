package provider

import (
	"testing"

	"github.com/mohammad-safakhou/fitcoach/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider(t *testing.T) {
	_, err := NewProvider(config.ProviderConfig{Type: "gemini"}, nil)
	require.Error(t, err, "missing api key")

	p, err := NewProvider(config.ProviderConfig{Type: "gemini", Gemini: config.GeminiConfig{APIKey: "k", BaseURL: "http://localhost"}}, nil)
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = NewProvider(config.ProviderConfig{Type: "openai"}, nil)
	assert.Error(t, err, "missing api key")

	p, err = NewProvider(config.ProviderConfig{Type: "openai", OpenAI: config.OpenAIConfig{APIKey: "sk", BaseURL: "http://localhost"}}, nil)
	require.NoError(t, err)
	assert.NotNil(t, p)

	_, err = NewProvider(config.ProviderConfig{Type: "mystery"}, nil)
	assert.Error(t, err)
}
