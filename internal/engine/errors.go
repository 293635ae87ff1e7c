package engine

import (
	"errors"
	"fmt"
)

// Planner failure kinds. Match them with errors.Is.
var (
	ErrEmptyPlan          = errors.New("empty plan")
	ErrMalformedPlan      = errors.New("malformed plan")
	ErrPlannerUnavailable = errors.New("planner unavailable")
)

// ErrNoGateway is returned when an AI feature is used without a configured gateway.
var ErrNoGateway = errors.New("ai gateway not configured")

// PlanError is a planner failure with a message fit to show the user.
type PlanError struct {
	Kind error
	Err  error
}

func (e *PlanError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrEmptyPlan):
		return "The AI returned an empty plan. Please try rephrasing your goals."
	case errors.Is(e.Kind, ErrMalformedPlan):
		return "The AI returned a plan in an unexpected format. Please try again."
	case errors.Is(e.Kind, ErrPlannerUnavailable):
		if e.Err != nil {
			return fmt.Sprintf("Could not connect to the AI planner (%v). Please check your connection and try again.", e.Err)
		}
		return "Could not connect to the AI planner. Please check your connection and try again."
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "planner failed"
	}
}

func (e *PlanError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

func (e *PlanError) Unwrap() error { return e.Err }
