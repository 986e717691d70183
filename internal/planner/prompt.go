package planner

import (
	"encoding/json"
	"fmt"

	"github.com/mohammad-safakhou/fitcoach/models"
)

// Prompt is the instruction pair sent to the plan model.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt embeds the profile, serialized exactly as it is stored, into
// both the system instruction and the user turn.
func BuildPrompt(profile models.UserProfile) (Prompt, error) {
	raw, err := json.Marshal(profile)
	if err != nil {
		return Prompt{}, fmt.Errorf("encode profile: %w", err)
	}
	p := string(raw)
	return Prompt{
		System: "You are a world-class AI fitness and nutrition coach. Generate a comprehensive 7-day fitness and diet plan in strict JSON format matching the schema. Base it on: " +
			p + ". Include safety considerations for any medical history. Provide specific exercises and meals.",
		User: "Generate a 7-day workout and diet plan. User: " + p,
	}, nil
}
