package openai_provider

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mohammad-safakhou/fitcoach/internal/httpclient"
)

// GenerateImage requests one base64 image and returns it as a PNG data URI.
func (c *client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	req := imageRequest{
		Model:          c.imageModel,
		Prompt:         prompt,
		N:              1,
		Size:           "1024x1024",
		ResponseFormat: "b64_json",
	}
	return httpclient.Do(ctx, c.http, "image", c.baseURL+"/images/generations", req, extractImage)
}

func extractImage(body []byte) (string, error) {
	var resp imageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", err
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return "", errors.New("no image data in response")
	}
	return "data:image/png;base64," + resp.Data[0].B64JSON, nil
}
