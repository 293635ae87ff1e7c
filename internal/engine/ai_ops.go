package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// PlanHistorySize is how many recent focus sessions the planner sees.
const PlanHistorySize = 20

// Plan asks the planner for a weekly schedule. day defaults to today's
// weekday. Every failure is a *PlanError.
func (s *Service) Plan(ctx context.Context, timezone, availability, goals, day string) (WeeklyPlan, error) {
	if s.planner == nil {
		return nil, &PlanError{Kind: ErrPlannerUnavailable, Err: ErrNoGateway}
	}
	s.mu.Lock()
	req := PlanRequest{
		History:      RecentHistory(s.tracker.History(), PlanHistorySize),
		Timezone:     timezone,
		Availability: availability,
		Goals:        goals,
		CurrentDay:   day,
	}
	if req.CurrentDay == "" {
		req.CurrentDay = WeekdayName(s.now())
	}
	s.mu.Unlock()

	plan, err := s.planner.Generate(ctx, req)
	if err != nil {
		var pe *PlanError
		if errors.As(err, &pe) {
			return nil, pe
		}
		s.log.Printf("WARNING: planner: %v", err)
		return nil, &PlanError{Kind: ErrPlannerUnavailable, Err: err}
	}
	if plan == nil {
		return nil, &PlanError{Kind: ErrEmptyPlan}
	}
	return plan, nil
}

// ChatReply is the outcome of one chat exchange.
type ChatReply struct {
	Text  string
	Added []Task
}

// Confirmations returns one line per task the assistant created.
func (r ChatReply) Confirmations() []string {
	out := make([]string, 0, len(r.Added))
	for _, t := range r.Added {
		out = append(out, TaskAddedMessage(t.Title))
	}
	return out
}

func TaskAddedMessage(title string) string {
	return fmt.Sprintf("✅ Task added: %q", title)
}

// Chat streams the assistant's reply to turns, passing each text increment to
// onText. Task requests in the reply are applied through AddTask once the
// stream ends; requests with a blank title are skipped and an unknown priority
// becomes medium.
func (s *Service) Chat(ctx context.Context, turns []ChatTurn, onText func(string)) (ChatReply, error) {
	if s.chat == nil {
		return ChatReply{}, ErrNoGateway
	}
	var (
		text     strings.Builder
		requests []TaskRequest
	)
	err := s.chat.Stream(ctx, turns, func(c ChatChunk) error {
		if c.Text != "" {
			text.WriteString(c.Text)
			if onText != nil {
				onText(c.Text)
			}
		}
		requests = append(requests, c.Tasks...)
		return nil
	})
	reply := ChatReply{Text: text.String()}
	if err != nil {
		return reply, fmt.Errorf("chat: %w", err)
	}

	for _, r := range requests {
		p, perr := ParsePriority(r.Priority)
		if perr != nil {
			p = DefaultPriority
		}
		task, ok, err := s.AddTask(ctx, r.Title, p, r.DueDate)
		if err != nil {
			return reply, err
		}
		if ok {
			reply.Added = append(reply.Added, task)
		}
	}
	return reply, nil
}
