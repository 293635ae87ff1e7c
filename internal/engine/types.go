package engine

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// AllPriorities lists priorities from most to least urgent.
var AllPriorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// rank orders priorities for sorting: high < medium < low.
func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// DefaultPriority is used when user input is missing.
const DefaultPriority = PriorityMedium

// ParsePriority parses user input. Empty input yields DefaultPriority.
func ParsePriority(input string) (Priority, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return DefaultPriority, nil
	case "h", "hi":
		return PriorityHigh, nil
	case "m", "med":
		return PriorityMedium, nil
	case "l", "lo":
		return PriorityLow, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %q", input)
	}
	return p, nil
}

type Task struct {
	ID          string
	Title       string
	Done        bool
	Created     time.Time
	Priority    Priority
	DueDate     *time.Time
	Completions []time.Time
}

// taskWire is the stored shape: timestamps are unix milliseconds.
type taskWire struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Done        bool     `json:"done"`
	Created     int64    `json:"created"`
	Priority    Priority `json:"priority,omitempty"`
	DueDate     *int64   `json:"dueDate,omitempty"`
	Completions []int64  `json:"completions,omitempty"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	w := taskWire{
		ID:       t.ID,
		Title:    t.Title,
		Done:     t.Done,
		Created:  t.Created.UnixMilli(),
		Priority: t.Priority,
	}
	if t.DueDate != nil {
		ms := t.DueDate.UnixMilli()
		w.DueDate = &ms
	}
	w.Completions = make([]int64, len(t.Completions))
	for i, c := range t.Completions {
		w.Completions[i] = c.UnixMilli()
	}
	return json.Marshal(w)
}

// UnmarshalJSON also accepts records written before priority and completion
// history existed; those default to medium priority and an empty history.
func (t *Task) UnmarshalJSON(data []byte) error {
	var w taskWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*t = Task{
		ID:          w.ID,
		Title:       w.Title,
		Done:        w.Done,
		Created:     time.UnixMilli(w.Created),
		Priority:    w.Priority,
		Completions: make([]time.Time, 0, len(w.Completions)),
	}
	if !t.Priority.IsValid() {
		t.Priority = DefaultPriority
	}
	if w.DueDate != nil {
		due := time.UnixMilli(*w.DueDate)
		t.DueDate = &due
	}
	for _, ms := range w.Completions {
		t.Completions = append(t.Completions, time.UnixMilli(ms))
	}
	return nil
}

// clone returns a deep copy so callers never alias ledger state.
func (t Task) clone() Task {
	out := t
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	out.Completions = make([]time.Time, len(t.Completions))
	copy(out.Completions, t.Completions)
	return out
}

// NoteFile is an opaque attachment. Its content is edited elsewhere.
type NoteFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data []byte `json:"data"`
}

type Note struct {
	ID      string
	Title   string
	Body    string
	Created time.Time
	File    *NoteFile
}

type noteWire struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	Created int64     `json:"created"`
	File    *NoteFile `json:"file,omitempty"`
}

func (n Note) MarshalJSON() ([]byte, error) {
	return json.Marshal(noteWire{ID: n.ID, Title: n.Title, Body: n.Body, Created: n.Created.UnixMilli(), File: n.File})
}

func (n *Note) UnmarshalJSON(data []byte) error {
	var w noteWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*n = Note{ID: w.ID, Title: w.Title, Body: w.Body, Created: time.UnixMilli(w.Created), File: w.File}
	return nil
}

// PomodoroSession is the daily goal record. Completed never exceeds Total.
type PomodoroSession struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

// FocusSession is one entry of the focus history.
type FocusSession struct {
	Date  string
	Start time.Time
	End   time.Time
}

func (f FocusSession) Duration() time.Duration {
	return f.End.Sub(f.Start)
}

type focusSessionWire struct {
	Date      string `json:"date"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
}

func (f FocusSession) MarshalJSON() ([]byte, error) {
	return json.Marshal(focusSessionWire{Date: f.Date, StartTime: f.Start.UnixMilli(), EndTime: f.End.UnixMilli()})
}

func (f *FocusSession) UnmarshalJSON(data []byte) error {
	var w focusSessionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*f = FocusSession{Date: w.Date, Start: time.UnixMilli(w.StartTime), End: time.UnixMilli(w.EndTime)}
	return nil
}

// DateKey formats t as the YYYY-MM-DD day key used by sessions and history.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
