package server

import (
	"github.com/mohammad-safakhou/fitcoach/models"
)

// HTTPError is the error envelope returned by the server.
type HTTPError struct {
	Error string `json:"error"`
}

type DarkModeRequest struct {
	DarkMode *bool `json:"dark_mode"`
}

type DarkModeResponse struct {
	DarkMode bool `json:"dark_mode"`
}

// PlanResponse wraps the stored plan; Plan is null when none exists.
type PlanResponse struct {
	Plan *models.Plan `json:"plan"`
}

type NarrationResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PlayRequest names the item to narrate. When Text is empty the narration is
// derived from the stored plan using Tab and Day.
type PlayRequest struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Tab  string `json:"tab,omitempty"`
	Day  string `json:"day,omitempty"`
}

// ImageRequest asks for a photo. Either Prompt is given, or Kind
// ("exercise" or "meal") plus Name.
type ImageRequest struct {
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
	Kind   string `json:"kind,omitempty"`
	Name   string `json:"name,omitempty"`
}
