package gemini_provider

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mohammad-safakhou/fitcoach/internal/httpclient"
)

// GenerateImage asks the image model for a single sample and returns it as a
// PNG data URI.
func (c *client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	req := predictRequest{
		Instances:  []predictInstance{{Prompt: prompt}},
		Parameters: predictParameters{SampleCount: 1},
	}
	return httpclient.Do(ctx, c.http, "image", c.endpoint(c.imageModel, "predict"), req, extractImage)
}

func extractImage(body []byte) (string, error) {
	var resp predictResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	if len(resp.Predictions) == 0 || resp.Predictions[0].BytesBase64Encoded == "" {
		return "", errors.New("invalid imagen response structure")
	}
	return "data:image/png;base64," + resp.Predictions[0].BytesBase64Encoded, nil
}
