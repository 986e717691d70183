package gemini_provider

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mohammad-safakhou/fitcoach/internal/helpers"
	"github.com/mohammad-safakhou/fitcoach/internal/httpclient"
	"github.com/mohammad-safakhou/fitcoach/internal/planner"
	"github.com/mohammad-safakhou/fitcoach/models"
)

// GeneratePlan requests a structured plan for profile. The response text must
// validate against the plan schema or the attempt counts as failed.
func (c *client) GeneratePlan(ctx context.Context, profile models.UserProfile) (*models.Plan, error) {
	prompt, err := planner.BuildPrompt(profile)
	if err != nil {
		return nil, err
	}
	req := generateRequest{
		Contents:          []content{{Parts: []part{{Text: prompt.User}}}},
		SystemInstruction: &content{Parts: []part{{Text: prompt.System}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   planner.ResponseSchema(),
		},
	}

	plan, err := httpclient.Do(ctx, c.http, "plan", c.endpoint(c.planModel, "generateContent"), req, extractPlan)
	if err != nil {
		return nil, err
	}
	c.logger.Info("plan generated",
		"workout_days", len(plan.WorkoutPlan.DailyRoutine),
		"meal_days", len(plan.DietPlan.MealPlan))
	return plan, nil
}

func extractPlan(body []byte) (*models.Plan, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	p, ok := resp.firstPart()
	if !ok || p.Text == "" {
		return nil, errors.New("invalid response structure")
	}
	text, err := helpers.ExtractJSONObject(p.Text)
	if err != nil {
		return nil, err
	}
	return planner.DecodePlan([]byte(text))
}
