package openai_provider

import (
	"context"
	"errors"

	"github.com/mohammad-safakhou/fitcoach/internal/audio"
	"github.com/mohammad-safakhou/fitcoach/internal/httpclient"
)

const speechInstructions = "Speak with a friendly and encouraging tone."

// Synthesize requests raw PCM16 speech and wraps it into a WAV clip.
func (c *client) Synthesize(ctx context.Context, id, text string) (*audio.Clip, error) {
	req := speechRequest{
		Model:          c.ttsModel,
		Input:          text,
		Voice:          c.voice,
		Instructions:   speechInstructions,
		ResponseFormat: "pcm",
	}
	extract := func(body []byte) (*audio.Clip, error) {
		if len(body) == 0 {
			return nil, errors.New("empty speech response")
		}
		return audio.NewClip(id, body, SpeechSampleRate)
	}
	return httpclient.Do(ctx, c.http, "speech", c.baseURL+"/audio/speech", req, extract)
}
