package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"pulsestudy/internal/engine"
)

func planSchema() *genai.Schema {
	slot := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"time":     {Type: genai.TypeString},
			"activity": {Type: genai.TypeString},
		},
		Required: []string{"time", "activity"},
	}
	props := make(map[string]*genai.Schema, len(engine.Weekdays))
	for _, d := range engine.Weekdays {
		props[d] = &genai.Schema{Type: genai.TypeArray, Items: slot}
	}
	return &genai.Schema{Type: genai.TypeObject, Properties: props}
}

func planText(req engine.PlanRequest) (string, error) {
	history := "No recent study history."
	if len(req.History) > 0 {
		raw, err := json.Marshal(req.History)
		if err != nil {
			return "", err
		}
		history = string(raw)
	}
	return fmt.Sprintf(planPrompt, req.Timezone, req.Availability, req.Goals, history,
		req.CurrentDay, req.CurrentDay, req.CurrentDay), nil
}

// Generate asks the planner model for a week of study slots. It makes a
// single attempt; failures are *engine.PlanError.
func (c *Client) Generate(ctx context.Context, req engine.PlanRequest) (engine.WeeklyPlan, error) {
	prompt, err := planText(req)
	if err != nil {
		return nil, &engine.PlanError{Kind: engine.ErrPlannerUnavailable, Err: err}
	}
	resp, err := c.generate(ctx, c.cfg.PlannerModel, userText(prompt), &genai.GenerateContentConfig{
		SystemInstruction: systemText(plannerInstruction),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    planSchema(),
	}, 1)
	if err != nil {
		return nil, &engine.PlanError{Kind: engine.ErrPlannerUnavailable, Err: err}
	}
	return decodePlan(responseText(resp))
}

func decodePlan(text string) (engine.WeeklyPlan, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &engine.PlanError{Kind: engine.ErrEmptyPlan}
	}
	var plan engine.WeeklyPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		return nil, &engine.PlanError{Kind: engine.ErrMalformedPlan, Err: err}
	}
	if plan == nil {
		return nil, &engine.PlanError{Kind: engine.ErrMalformedPlan, Err: errors.New("plan is not an object")}
	}
	return plan, nil
}
