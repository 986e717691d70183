package openai_provider

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mohammad-safakhou/fitcoach/internal/helpers"
	"github.com/mohammad-safakhou/fitcoach/internal/httpclient"
	"github.com/mohammad-safakhou/fitcoach/internal/planner"
	"github.com/mohammad-safakhou/fitcoach/models"
)

// GeneratePlan asks the chat model for a JSON plan. The content must validate
// against the plan schema or the attempt counts as failed.
func (c *client) GeneratePlan(ctx context.Context, profile models.UserProfile) (*models.Plan, error) {
	prompt, err := planner.BuildPrompt(profile)
	if err != nil {
		return nil, err
	}
	req := chatRequest{
		Model: c.planModel,
		Messages: []Message{
			{Role: "system", Content: prompt.System},
			{Role: "user", Content: prompt.User},
		},
		Temperature:    c.temperature,
		MaxTokens:      c.maxTokens,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
	plan, err := httpclient.Do(ctx, c.http, "plan", c.baseURL+"/chat/completions", req, extractPlan)
	if err != nil {
		return nil, err
	}
	c.logger.Info("plan generated",
		"workout_days", len(plan.WorkoutPlan.DailyRoutine),
		"meal_days", len(plan.DietPlan.MealPlan))
	return plan, nil
}

func extractPlan(body []byte) (*models.Plan, error) {
	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, errors.New("no choices in response")
	}
	text, err := helpers.ExtractJSONObject(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return planner.DecodePlan([]byte(text))
}
