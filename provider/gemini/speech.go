package gemini_provider

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mohammad-safakhou/fitcoach/internal/audio"
	"github.com/mohammad-safakhou/fitcoach/internal/httpclient"
)

// SpeechPrefix sets the delivery style of every utterance.
const SpeechPrefix = "Say with a friendly and encouraging tone: "

// Synthesize converts text to speech. The endpoint returns raw PCM16 which is
// wrapped into a WAV clip at the sample rate named in its mime type.
func (c *client) Synthesize(ctx context.Context, id, text string) (*audio.Clip, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: SpeechPrefix + text}}}},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{VoiceConfig: voiceConfig{
				PrebuiltVoiceConfig: prebuiltVoiceConfig{VoiceName: c.voice},
			}},
		},
		Model: c.ttsModel,
	}
	extract := func(body []byte) (*audio.Clip, error) {
		return extractClip(id, body)
	}
	return httpclient.Do(ctx, c.http, "speech", c.endpoint(c.ttsModel, "generateContent"), req, extract)
}

func extractClip(id string, body []byte) (*audio.Clip, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	p, ok := resp.firstPart()
	if !ok || p.InlineData == nil || p.InlineData.Data == "" || !strings.HasPrefix(p.InlineData.MimeType, "audio/") {
		return nil, errors.New("invalid tts response")
	}
	pcm, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
	if err != nil {
		return nil, fmt.Errorf("decode audio: %w", err)
	}
	return audio.NewClip(id, pcm, audio.SampleRateFromMIME(p.InlineData.MimeType))
}
