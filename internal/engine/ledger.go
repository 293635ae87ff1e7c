package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ledger is the in-memory task collection, most recent first. Its methods never
// fail: unknown ids and empty titles are no-ops reported through bool results.
type Ledger struct {
	tasks []Task
	newID func() string
}

func NewLedger(tasks []Task) *Ledger {
	l := &Ledger{newID: uuid.NewString}
	for _, t := range tasks {
		l.tasks = append(l.tasks, t.clone())
	}
	return l
}

// ToggleOutcome describes what a toggle did.
type ToggleOutcome struct {
	Found     bool
	Completed bool // transitioned false -> true; a completion was appended
}

// Add inserts a new pending task at the head. It reports false (and adds
// nothing) when the trimmed title is empty.
func (l *Ledger) Add(title string, priority Priority, due *time.Time, now time.Time) (Task, bool) {
	t := strings.TrimSpace(title)
	if t == "" {
		return Task{}, false
	}
	if !priority.IsValid() {
		priority = DefaultPriority
	}
	task := Task{
		ID:          l.newID(),
		Title:       t,
		Created:     now,
		Priority:    priority,
		Completions: []time.Time{},
	}
	if due != nil {
		d := *due
		task.DueDate = &d
	}
	l.tasks = append([]Task{task}, l.tasks...)
	return task.clone(), true
}

// Toggle flips done. Completing appends now to the history; reopening leaves
// the history as it is.
func (l *Ledger) Toggle(id string, now time.Time) (Task, ToggleOutcome) {
	i := l.index(id)
	if i < 0 {
		return Task{}, ToggleOutcome{}
	}
	t := &l.tasks[i]
	t.Done = !t.Done
	out := ToggleOutcome{Found: true}
	if t.Done {
		t.Completions = append(t.Completions, now)
		out.Completed = true
	}
	return t.clone(), out
}

// Remove hard-deletes the task.
func (l *Ledger) Remove(id string) bool {
	i := l.index(id)
	if i < 0 {
		return false
	}
	l.tasks = append(l.tasks[:i], l.tasks[i+1:]...)
	return true
}

func (l *Ledger) SetPriority(id string, p Priority) bool {
	i := l.index(id)
	if i < 0 || !p.IsValid() {
		return false
	}
	l.tasks[i].Priority = p
	return true
}

func (l *Ledger) Get(id string) (Task, bool) {
	i := l.index(id)
	if i < 0 {
		return Task{}, false
	}
	return l.tasks[i].clone(), true
}

// Tasks returns a copy of every task in ledger order.
func (l *Ledger) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	for i, t := range l.tasks {
		out[i] = t.clone()
	}
	return out
}

func (l *Ledger) Len() int { return len(l.tasks) }

// CompletedCount counts tasks currently marked done.
func (l *Ledger) CompletedCount() int {
	n := 0
	for _, t := range l.tasks {
		if t.Done {
			n++
		}
	}
	return n
}

// Resolve maps a user reference (a full id or an unambiguous id prefix) to a task id.
func (l *Ledger) Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(strings.ToLower(ref))
	if ref == "" {
		return "", fmt.Errorf("task id is required")
	}
	var match string
	for _, t := range l.tasks {
		id := strings.ToLower(t.ID)
		if id == ref {
			return t.ID, nil
		}
		if strings.HasPrefix(id, ref) {
			if match != "" {
				return "", fmt.Errorf("task id %q is ambiguous", ref)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("task %s not found", ref)
	}
	return match, nil
}

func (l *Ledger) index(id string) int {
	for i := range l.tasks {
		if l.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
