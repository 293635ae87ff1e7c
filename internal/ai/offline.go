package ai

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"pulsestudy/internal/engine"
)

// Offline stands in for the Gemini client when no API key is configured.
// Moderation approves everything, planning is unavailable and chat streams a
// canned reply word by word.
type Offline struct {
	// WordDelay paces the canned chat reply.
	WordDelay time.Duration
}

var errNoAPIKey = errors.New("API key not configured")

func (Offline) Evaluate(_ context.Context, req engine.ModerationRequest) (engine.Verdict, error) {
	return engine.Verdict{TaskID: req.TaskID, AwardXP: true, Reason: "Mock mode: API key not present."}, nil
}

func (Offline) Generate(context.Context, engine.PlanRequest) (engine.WeeklyPlan, error) {
	return nil, &engine.PlanError{Kind: engine.ErrPlannerUnavailable, Err: errNoAPIKey}
}

func (o Offline) Stream(ctx context.Context, turns []engine.ChatTurn, fn func(engine.ChatChunk) error) error {
	var asked string
	if len(turns) > 0 {
		asked = turns[len(turns)-1].Text
		if r := []rune(asked); len(r) > 50 {
			asked = string(r[:50])
		}
	}
	reply := "This is a mock response as the Gemini API key is not configured. Streaming is not available in mock mode. You asked about: '" + asked + "...'"
	for _, w := range strings.Fields(reply) {
		if o.WordDelay > 0 {
			select {
			case <-time.After(o.WordDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := fn(engine.ChatChunk{Text: w + " "}); err != nil {
			return err
		}
	}
	return nil
}

// Gateways is the set of AI backends handed to the engine.
type Gateways struct {
	Moderator engine.Moderator
	Planner   engine.Planner
	Chat      engine.Chat
	Online    bool
}

// NewGateways returns the Gemini client when cfg carries an API key and the
// offline stand-in otherwise, including when the client cannot be built.
func NewGateways(cfg Config) Gateways {
	offline := Offline{WordDelay: 90 * time.Millisecond}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return Gateways{Moderator: offline, Planner: offline, Chat: offline}
	}
	c, err := NewClient(cfg)
	if err != nil {
		log.Printf("WARNING: %v; using offline mode", err)
		return Gateways{Moderator: offline, Planner: offline, Chat: offline}
	}
	return Gateways{Moderator: c, Planner: c, Chat: c, Online: true}
}

// Options converts the gateways into service options.
func (g Gateways) Options() []engine.Option {
	return []engine.Option{
		engine.WithModerator(g.Moderator),
		engine.WithPlanner(g.Planner),
		engine.WithChat(g.Chat),
	}
}
