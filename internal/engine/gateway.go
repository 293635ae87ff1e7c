package engine

import (
	"context"
	"strings"
	"time"
)

// ModerationRequest carries what the moderator sees about one completion.
type ModerationRequest struct {
	TaskID      string
	Title       string
	Created     time.Time
	Completions []time.Time
	Now         time.Time
}

// Verdict is the moderator's decision on the latest completion.
type Verdict struct {
	TaskID  string
	AwardXP bool
	Reason  string
}

// Moderator decides whether a task completion earns XP. Implementations may be
// slow or fail; the service treats any error as a denial.
type Moderator interface {
	Evaluate(ctx context.Context, req ModerationRequest) (Verdict, error)
}

// Weekdays in calendar order starting Monday.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type StudySlot struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

// WeeklyPlan maps weekday names to ordered slots. A missing or empty day is a rest day.
type WeeklyPlan map[string][]StudySlot

// PlanDay is one day of a plan in display order.
type PlanDay struct {
	Name  string
	Slots []StudySlot
}

func (d PlanDay) Rest() bool { return len(d.Slots) == 0 }

// Days returns the seven days of the week starting from start (a weekday name,
// case-insensitive). An unknown start begins on Monday.
func (p WeeklyPlan) Days(start string) []PlanDay {
	offset := 0
	if i := WeekdayIndex(start); i >= 0 {
		offset = i
	}
	out := make([]PlanDay, 0, len(Weekdays))
	for i := range Weekdays {
		name := Weekdays[(offset+i)%len(Weekdays)]
		out = append(out, PlanDay{Name: name, Slots: p.slots(name)})
	}
	return out
}

// Empty reports whether no day has any slot.
func (p WeeklyPlan) Empty() bool {
	for _, slots := range p {
		if len(slots) > 0 {
			return false
		}
	}
	return true
}

func (p WeeklyPlan) slots(day string) []StudySlot {
	for k, v := range p {
		if strings.EqualFold(k, day) {
			return v
		}
	}
	return nil
}

// WeekdayIndex returns the Monday-based index of a weekday name or of an
// abbreviation of at least three letters ("tue", "thurs"), or -1.
func WeekdayIndex(name string) int {
	n := strings.ToLower(strings.TrimSpace(name))
	if len(n) < 3 {
		return -1
	}
	for i, d := range Weekdays {
		if strings.HasPrefix(strings.ToLower(d), n) {
			return i
		}
	}
	return -1
}

// WeekdayName returns the English weekday name of t.
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

type PlanRequest struct {
	History      []FocusSession
	Timezone     string
	Availability string
	Goals        string
	CurrentDay   string
}

// Planner builds a weekly study plan. Errors should be *PlanError so the user
// gets an actionable message; the service does not retry.
type Planner interface {
	Generate(ctx context.Context, req PlanRequest) (WeeklyPlan, error)
}

type ChatRole string

const (
	ChatUser ChatRole = "user"
	ChatAI   ChatRole = "ai"
)

type ChatTurn struct {
	From ChatRole
	Text string
}

// TaskRequest is a structured "create task" call emitted by the chat model.
type TaskRequest struct {
	Title    string
	Priority string
	DueDate  *time.Time
}

// ChatChunk is one increment of a streamed reply.
type ChatChunk struct {
	Text  string
	Tasks []TaskRequest
}

// Chat streams a reply to the conversation, calling fn for every chunk in order.
type Chat interface {
	Stream(ctx context.Context, turns []ChatTurn, fn func(ChatChunk) error) error
}
