package engine

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"pulsestudy/internal/storage"
)

// Store is the persistence the service writes through to. storage.KV satisfies it.
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	SetMany(ctx context.Context, values map[string]any) error
}

// Service owns the dashboard state. It is loaded once from the store and
// every mutation is written back before the call returns. Gateway calls run
// outside the lock; their results are applied afterwards as separate steps.
type Service struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time
	log   *log.Logger

	moderator Moderator
	planner   Planner
	chat      Chat

	defaultDuration int
	defaultGoal     int

	ledger   *Ledger
	notes    *Notebook
	tracker  *Tracker
	progress Progress
	userName string
	theme    Theme
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithModerator(m Moderator) Option {
	return func(s *Service) { s.moderator = m }
}

func WithPlanner(p Planner) Option {
	return func(s *Service) { s.planner = p }
}

func WithChat(c Chat) Option {
	return func(s *Service) { s.chat = c }
}

// WithDefaults sets the focus duration (minutes) and daily goal used when the
// store has none yet.
func WithDefaults(duration, goal int) Option {
	return func(s *Service) {
		if validDuration(duration) {
			s.defaultDuration = duration
		}
		if goal >= 1 {
			s.defaultGoal = goal
		}
	}
}

func NewService(ctx context.Context, store Store, opts ...Option) (*Service, error) {
	s := &Service{
		store:           store,
		now:             time.Now,
		log:             log.New(io.Discard, "", 0),
		defaultDuration: DefaultFocusMinutes,
		defaultGoal:     DefaultDailyGoal,
		theme:           ThemeDark,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// storedState is everything the service keeps in the store.
type storedState struct {
	tasks    []Task
	notes    []Note
	history  []FocusSession
	duration int
	session  PomodoroSession
	progress Progress
	userName string
	theme    Theme
}

func (s *Service) readState(ctx context.Context) (storedState, error) {
	st := storedState{
		duration: s.defaultDuration,
		session:  NewSession(DateKey(s.now()), s.defaultGoal),
		theme:    ThemeDark,
	}
	slots := []struct {
		key string
		dst any
	}{
		{storage.KeyTasks, &st.tasks},
		{storage.KeyNotes, &st.notes},
		{storage.KeyXP, &st.progress.XP},
		{storage.KeyFocusMinutes, &st.progress.FocusMinutes},
		{storage.KeyFocusHistory, &st.history},
		{storage.KeyPomodoroDuration, &st.duration},
		{storage.KeyPomodoroSession, &st.session},
		{storage.KeyUserName, &st.userName},
		{storage.KeyTheme, &st.theme},
	}
	for _, slot := range slots {
		if _, err := s.store.Get(ctx, slot.key, slot.dst); err != nil {
			return storedState{}, fmt.Errorf("load state: %w", err)
		}
	}
	if !st.theme.IsValid() {
		st.theme = ThemeDark
	}
	return st, nil
}

func (s *Service) load(ctx context.Context) error {
	st, err := s.readState(ctx)
	if err != nil {
		return err
	}
	s.ledger = NewLedger(st.tasks)
	s.notes = NewNotebook(st.notes)
	s.progress = st.progress
	s.userName = st.userName
	s.theme = st.theme
	s.tracker = NewTracker(st.duration, st.session, st.history, DateKey(s.now()))
	if s.tracker.Session() != st.session {
		if err := s.persist(ctx, storage.KeyPomodoroSession); err != nil {
			return err
		}
	}
	return nil
}

// sync re-reads the store so a mutation lands on top of whatever other
// processes sharing the database wrote since the last read. A running focus
// countdown is kept. Callers hold s.mu.
func (s *Service) sync(ctx context.Context) error {
	st, err := s.readState(ctx)
	if err != nil {
		return err
	}
	s.ledger = NewLedger(st.tasks)
	s.notes = NewNotebook(st.notes)
	s.progress = st.progress
	s.userName = st.userName
	s.theme = st.theme
	s.tracker.Restore(st.duration, st.session, st.history)
	return nil
}

// Refresh reloads the state from the store. Long-running front ends call it
// before showing data that other processes may have changed.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sync(ctx)
}

// persist writes the named slots from current state in one transaction.
// Callers hold s.mu (or own s exclusively during load).
func (s *Service) persist(ctx context.Context, keys ...string) error {
	values := make(map[string]any, len(keys))
	for _, k := range keys {
		switch k {
		case storage.KeyTasks:
			values[k] = s.ledger.Tasks()
		case storage.KeyNotes:
			values[k] = s.notes.Notes()
		case storage.KeyXP:
			values[k] = s.progress.XP
		case storage.KeyFocusMinutes:
			values[k] = s.progress.FocusMinutes
		case storage.KeyFocusHistory:
			values[k] = s.tracker.History()
		case storage.KeyPomodoroDuration:
			values[k] = s.tracker.Duration()
		case storage.KeyPomodoroSession:
			values[k] = s.tracker.Session()
		case storage.KeyUserName:
			values[k] = s.userName
		case storage.KeyTheme:
			values[k] = s.theme
		default:
			return fmt.Errorf("persist: unknown slot %q", k)
		}
	}
	if err := s.store.SetMany(ctx, values); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// Snapshot returns the current aggregate stats with rank and rating derived
// from them.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		CompletedTasks: s.ledger.CompletedCount(),
		FocusMinutes:   s.progress.FocusMinutes,
		Notes:          s.notes.Len(),
		XP:             s.progress.XP,
	}
	return newSnapshot(st, s.ledger.Len(), s.tracker.Session())
}

// Progress returns a copy of the gamification aggregate.
func (s *Service) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}
