package engine

import (
	"context"
	"time"

	"pulsestudy/internal/storage"
)

// ToggleResult reports a toggle. Review is set when the toggle completed the
// task; hand it to Moderate (or ReviewCompletion + ApplyVerdict) to decide
// the XP award.
type ToggleResult struct {
	Task      Task
	Found     bool
	Completed bool
	Review    *ModerationRequest
}

// AddTask adds a pending task. ok is false when the title is blank.
func (s *Service) AddTask(ctx context.Context, title string, priority Priority, due *time.Time) (task Task, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return Task{}, false, err
	}

	task, ok = s.ledger.Add(title, priority, due, s.now())
	if !ok {
		return Task{}, false, nil
	}
	if err := s.persist(ctx, storage.KeyTasks); err != nil {
		return Task{}, false, err
	}
	return task, true, nil
}

// ToggleTask flips a task. It never grants XP itself.
func (s *Service) ToggleTask(ctx context.Context, id string) (*ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return nil, err
	}

	now := s.now()
	task, outcome := s.ledger.Toggle(id, now)
	if !outcome.Found {
		return &ToggleResult{}, nil
	}
	if err := s.persist(ctx, storage.KeyTasks); err != nil {
		return nil, err
	}

	res := &ToggleResult{Task: task, Found: true, Completed: outcome.Completed}
	if outcome.Completed {
		res.Review = &ModerationRequest{
			TaskID:      task.ID,
			Title:       task.Title,
			Created:     task.Created,
			Completions: task.Completions,
			Now:         now,
		}
	}
	return res, nil
}

// ReviewCompletion asks the moderator about a completion. It never fails: a
// missing moderator or a gateway error is a denial.
func (s *Service) ReviewCompletion(ctx context.Context, req ModerationRequest) Verdict {
	if s.moderator == nil {
		return Verdict{TaskID: req.TaskID, AwardXP: false, Reason: "no moderator configured"}
	}
	v, err := s.moderator.Evaluate(ctx, req)
	if err != nil {
		s.log.Printf("WARNING: moderation of %q failed: %v", req.Title, err)
		return Verdict{TaskID: req.TaskID, AwardXP: false, Reason: "An error occurred during AI evaluation."}
	}
	v.TaskID = req.TaskID
	return v
}

// ApplyVerdict applies a moderation result whenever it arrives. The award is
// keyed by task id: a task deleted in the meantime makes it a no-op, and a
// task reopened in the meantime still gets it.
func (s *Service) ApplyVerdict(ctx context.Context, v Verdict) (awarded bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return false, err
	}

	task, ok := s.ledger.Get(v.TaskID)
	if !ok {
		return false, nil
	}
	if !v.AwardXP {
		s.log.Printf("moderation: rejected %q: %s", task.Title, v.Reason)
		return false, nil
	}
	s.log.Printf("moderation: approved %q: %s", task.Title, v.Reason)
	s.progress.AddXP(TaskCompletionXP)
	if err := s.persist(ctx, storage.KeyXP); err != nil {
		return false, err
	}
	return true, nil
}

// Moderate reviews and applies in one call for callers that can wait.
func (s *Service) Moderate(ctx context.Context, req ModerationRequest) (Verdict, bool, error) {
	v := s.ReviewCompletion(ctx, req)
	awarded, err := s.ApplyVerdict(ctx, v)
	return v, awarded, err
}

// RemoveTask hard-deletes a task; an unknown id is a no-op.
func (s *Service) RemoveTask(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return false, err
	}

	if !s.ledger.Remove(id) {
		return false, nil
	}
	if err := s.persist(ctx, storage.KeyTasks); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) SetTaskPriority(ctx context.Context, id string, p Priority) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return false, err
	}

	if !s.ledger.SetPriority(id, p) {
		return false, nil
	}
	if err := s.persist(ctx, storage.KeyTasks); err != nil {
		return false, err
	}
	return true, nil
}

// Tasks returns the filtered and sorted view, recomputed on every call.
func (s *Service) Tasks(f Filter, by SortBy) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FilteredAndSorted(s.ledger.Tasks(), f, by)
}

func (s *Service) Task(id string) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Get(id)
}

// ResolveTask maps a full id or unambiguous prefix to a task id.
func (s *Service) ResolveTask(ref string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Resolve(ref)
}
