package engine

import (
	"context"

	"pulsestudy/internal/storage"
)

// rollIfIdle starts a new daily record when the day changed while idle.
func (s *Service) rollIfIdle() bool {
	if s.tracker.Running() {
		return false
	}
	return s.tracker.Rollover(DateKey(s.now()))
}

// FocusStart starts the timer. It reports false when it was already running.
func (s *Service) FocusStart(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return false, err
	}

	if s.rollIfIdle() {
		if err := s.persist(ctx, storage.KeyPomodoroSession); err != nil {
			return false, err
		}
	}
	return s.tracker.Start(s.now()), nil
}

// FocusTick advances the timer by one second. On natural completion it awards
// FocusXPPerMinute per configured minute, adds the focus minutes and bumps the
// daily counter.
func (s *Service) FocusTick(ctx context.Context) (TickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Only the completing tick writes, so only that one needs fresh state.
	if st := s.tracker.State(); st.Running && st.SecondsLeft <= 1 {
		if err := s.sync(ctx); err != nil {
			return TickResult{Ticked: true, SecondsLeft: st.SecondsLeft}, err
		}
	}
	res := s.tracker.Tick(s.now())
	if res.Completion == nil {
		return res, nil
	}
	c := res.Completion
	s.progress.AddXP(c.XP)
	s.progress.AddFocus(c.Minutes)

	keys := []string{storage.KeyXP, storage.KeyFocusMinutes, storage.KeyPomodoroSession}
	if c.Recorded != nil {
		keys = append(keys, storage.KeyFocusHistory)
	}
	if err := s.persist(ctx, keys...); err != nil {
		return res, err
	}
	return res, nil
}

// FocusPause stops the timer early, keeping the remaining time.
func (s *Service) FocusPause(ctx context.Context) (*FocusSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return nil, err
	}

	recorded, _ := s.tracker.Pause(s.now())
	if recorded != nil {
		if err := s.persist(ctx, storage.KeyFocusHistory); err != nil {
			return nil, err
		}
	}
	return recorded, nil
}

// FocusReset stops the timer and restores the full duration.
func (s *Service) FocusReset(ctx context.Context) (*FocusSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return nil, err
	}

	recorded := s.tracker.Reset(s.now())
	if recorded != nil {
		if err := s.persist(ctx, storage.KeyFocusHistory); err != nil {
			return nil, err
		}
	}
	return recorded, nil
}

// FocusDuration changes the session length; ignored while running or out of range.
func (s *Service) FocusDuration(ctx context.Context, minutes int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return false, err
	}

	if !s.tracker.ChangeDuration(minutes) {
		return false, nil
	}
	if err := s.persist(ctx, storage.KeyPomodoroDuration); err != nil {
		return false, err
	}
	return true, nil
}

// FocusGoal adjusts today's goal by delta (floored at one).
func (s *Service) FocusGoal(ctx context.Context, delta int) (PomodoroSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sync(ctx); err != nil {
		return s.tracker.Session(), err
	}

	s.rollIfIdle()
	session := s.tracker.SetGoal(delta)
	if err := s.persist(ctx, storage.KeyPomodoroSession); err != nil {
		return session, err
	}
	return session, nil
}

func (s *Service) FocusState() TrackerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.State()
}

func (s *Service) FocusHistory() []FocusSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.History()
}

// DailyFocus returns per-day focus totals for the last `days` days.
func (s *Service) DailyFocus(days int) []DayFocus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DailyFocus(s.tracker.History(), s.now(), days)
}
