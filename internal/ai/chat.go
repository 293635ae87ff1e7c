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

var createTaskDeclaration = &genai.FunctionDeclaration{
	Name:        "createTask",
	Description: "Creates a new task in the user's to-do list.",
	Parameters: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title": {Type: genai.TypeString, Description: "The title or description of the task."},
			"priority": {
				Type:        genai.TypeString,
				Description: `The priority of the task. Can be "high", "medium", or "low". Defaults to "medium".`,
			},
			"dueDate": {
				Type:        genai.TypeNumber,
				Description: `The due date for the task, as a UTC timestamp in milliseconds. Calculate this based on the current date if relative terms like "tomorrow" are used.`,
			},
		},
		Required: []string{"title"},
	},
}

// chatContents maps the conversation onto API contents. Turns without text
// are dropped: the API rejects empty parts.
func chatContents(turns []engine.ChatTurn, now time.Time) []*genai.Content {
	out := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		role := genai.RoleModel
		if t.From == engine.ChatUser {
			role = genai.RoleUser
		}
		out = append(out, genai.NewContentFromText(t.Text, genai.Role(role)))
	}
	if n := len(out); n > 0 && out[n-1].Role == string(genai.RoleUser) {
		last := out[n-1].Parts[0]
		last.Text = fmt.Sprintf("Current date is %s. User's request: %q", isoTime(now), last.Text)
	}
	return out
}

func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

func millisArg(args map[string]any, key string) (int64, bool) {
	switch v := args[key].(type) {
	case float64:
		return int64(v), v > 0
	case int64:
		return v, v > 0
	case int:
		return int64(v), v > 0
	case json.Number:
		n, err := v.Int64()
		return n, err == nil && n > 0
	default:
		return 0, false
	}
}

func taskRequest(fc *genai.FunctionCall) (engine.TaskRequest, bool) {
	if fc == nil || fc.Name != createTaskDeclaration.Name {
		return engine.TaskRequest{}, false
	}
	tr := engine.TaskRequest{Title: stringArg(fc.Args, "title"), Priority: stringArg(fc.Args, "priority")}
	if ms, ok := millisArg(fc.Args, "dueDate"); ok {
		due := time.UnixMilli(ms)
		tr.DueDate = &due
	}
	return tr, true
}

// Stream sends the conversation to the chat model and relays text fragments
// and createTask calls as they arrive.
func (c *Client) Stream(ctx context.Context, turns []engine.ChatTurn, fn func(engine.ChatChunk) error) error {
	var temperature, topP float32 = 0.7, 0.95
	gc := &genai.GenerateContentConfig{
		SystemInstruction: systemText(tutorInstruction),
		Temperature:       &temperature,
		TopP:              &topP,
		Tools:             []*genai.Tool{{FunctionDeclarations: []*genai.FunctionDeclaration{createTaskDeclaration}}},
	}
	for resp, err := range c.models.GenerateContentStream(ctx, c.cfg.ChatModel, chatContents(turns, c.now()), gc) {
		if err != nil {
			return fmt.Errorf("chat stream: %w", err)
		}
		chunk := engine.ChatChunk{Text: responseText(resp)}
		for _, fc := range functionCalls(resp) {
			if tr, ok := taskRequest(fc); ok {
				chunk.Tasks = append(chunk.Tasks, tr)
			}
		}
		if chunk.Text == "" && len(chunk.Tasks) == 0 {
			continue
		}
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return nil
}
