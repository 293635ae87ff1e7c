package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"pulsestudy/internal/engine"
)

var verdictSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"awardXP": {Type: genai.TypeBoolean, Description: "Whether to award XP for this completion."},
		"reason":  {Type: genai.TypeString, Description: "A brief explanation for the decision."},
	},
	Required: []string{"awardXP", "reason"},
}

func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

func moderationText(req engine.ModerationRequest) (string, error) {
	stamps := make([]string, len(req.Completions))
	for i, c := range req.Completions {
		stamps[i] = isoTime(c)
	}
	history, err := json.Marshal(stamps)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(moderationPrompt, req.Title, isoTime(req.Created), history, isoTime(req.Now)), nil
}

// Evaluate asks the model whether the latest completion of a task earns XP.
func (c *Client) Evaluate(ctx context.Context, req engine.ModerationRequest) (engine.Verdict, error) {
	prompt, err := moderationText(req)
	if err != nil {
		return engine.Verdict{}, fmt.Errorf("moderation prompt: %w", err)
	}
	resp, err := c.generate(ctx, c.cfg.ModeratorModel, userText(prompt), &genai.GenerateContentConfig{
		SystemInstruction: systemText(moderatorInstruction),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    verdictSchema,
	}, maxRetries)
	if err != nil {
		return engine.Verdict{}, fmt.Errorf("moderation: %w", err)
	}

	var out struct {
		AwardXP *bool  `json:"awardXP"`
		Reason  string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(responseText(resp))), &out); err != nil {
		return engine.Verdict{}, fmt.Errorf("moderation decode: %w", err)
	}
	if out.AwardXP == nil {
		return engine.Verdict{}, fmt.Errorf("moderation decode: missing awardXP")
	}
	return engine.Verdict{TaskID: req.TaskID, AwardXP: *out.AwardXP, Reason: out.Reason}, nil
}
