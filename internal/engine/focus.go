package engine

import "time"

const (
	DefaultFocusMinutes = 25
	MaxFocusMinutes     = 120

	// MinRecordedFocus is the anti-noise threshold: shorter runs leave no history entry.
	MinRecordedFocus = 60 * time.Second
)

// Tracker is the Pomodoro state machine. It owns no timer: the host calls Tick
// once per second while the tracker is running, and stops calling it as soon
// as Running reports false.
type Tracker struct {
	duration    int // minutes
	secondsLeft int
	running     bool
	startedAt   time.Time

	session PomodoroSession
	history []FocusSession
}

// TrackerState is a value snapshot of the tracker.
type TrackerState struct {
	Running     bool
	SecondsLeft int
	Duration    int
	StartedAt   time.Time
	Session     PomodoroSession
}

// Completion is produced when a session runs to its natural end.
type Completion struct {
	Minutes  int
	XP       int
	Session  PomodoroSession
	Recorded *FocusSession
}

// TickResult reports what a tick did. Ticked is false when the tracker was idle.
type TickResult struct {
	Ticked      bool
	SecondsLeft int
	Completion  *Completion
}

func validDuration(minutes int) bool {
	return minutes > 0 && minutes <= MaxFocusMinutes
}

// NewTracker builds an idle tracker. An out-of-range duration falls back to
// DefaultFocusMinutes; the session is rolled over to today.
func NewTracker(duration int, session PomodoroSession, history []FocusSession, today string) *Tracker {
	if !validDuration(duration) {
		duration = DefaultFocusMinutes
	}
	if session.Total < 1 {
		session.Total = DefaultDailyGoal
	}
	t := &Tracker{
		duration:    duration,
		secondsLeft: duration * 60,
		session:     session,
		history:     append([]FocusSession(nil), history...),
	}
	t.Rollover(today)
	return t
}

func (t *Tracker) State() TrackerState {
	return TrackerState{
		Running:     t.running,
		SecondsLeft: t.secondsLeft,
		Duration:    t.duration,
		StartedAt:   t.startedAt,
		Session:     t.session,
	}
}

func (t *Tracker) Running() bool { return t.running }

func (t *Tracker) Duration() int { return t.duration }

func (t *Tracker) Session() PomodoroSession { return t.session }

func (t *Tracker) History() []FocusSession {
	return append([]FocusSession(nil), t.history...)
}

// Start moves Idle -> Running. Starting a running tracker is ignored.
func (t *Tracker) Start(now time.Time) bool {
	if t.running {
		return false
	}
	t.running = true
	t.startedAt = now
	return true
}

// Tick advances a running tracker by one second. The tick that would bring
// the countdown to zero completes the session instead.
func (t *Tracker) Tick(now time.Time) TickResult {
	if !t.running {
		return TickResult{SecondsLeft: t.secondsLeft}
	}
	if t.secondsLeft-1 > 0 {
		t.secondsLeft--
		return TickResult{Ticked: true, SecondsLeft: t.secondsLeft}
	}
	c := t.complete(now)
	return TickResult{Ticked: true, SecondsLeft: t.secondsLeft, Completion: &c}
}

func (t *Tracker) complete(now time.Time) Completion {
	recorded := t.stop(now)

	t.Rollover(DateKey(now))
	t.session.Completed = min(t.session.Total, t.session.Completed+1)
	t.secondsLeft = t.duration * 60

	return Completion{
		Minutes:  t.duration,
		XP:       t.duration * FocusXPPerMinute,
		Session:  t.session,
		Recorded: recorded,
	}
}

// stop leaves the running state and records the run when it lasted long enough.
func (t *Tracker) stop(now time.Time) *FocusSession {
	if !t.running {
		return nil
	}
	t.running = false
	start := t.startedAt
	t.startedAt = time.Time{}
	if now.Sub(start) <= MinRecordedFocus {
		return nil
	}
	entry := FocusSession{Date: DateKey(start), Start: start, End: now}
	t.history = append(t.history, entry)
	return &entry
}

// Pause stops a running session early and keeps the remaining time. No XP is
// awarded and the daily counter does not move.
func (t *Tracker) Pause(now time.Time) (recorded *FocusSession, wasRunning bool) {
	if !t.running {
		return nil, false
	}
	return t.stop(now), true
}

// Reset stops the tracker (recording like Pause) and restores the full duration.
func (t *Tracker) Reset(now time.Time) *FocusSession {
	recorded := t.stop(now)
	t.secondsLeft = t.duration * 60
	return recorded
}

// ChangeDuration sets a new session length in minutes. It is ignored while
// running and for values outside (0, MaxFocusMinutes].
func (t *Tracker) ChangeDuration(minutes int) bool {
	if t.running || !validDuration(minutes) {
		return false
	}
	t.duration = minutes
	t.secondsLeft = minutes * 60
	return true
}

// Restore replaces the stored parts of the tracker with values read back from
// the store. A running countdown keeps its length; an idle tracker whose
// duration changed starts over from the new one.
func (t *Tracker) Restore(duration int, session PomodoroSession, history []FocusSession) {
	if !t.running && validDuration(duration) && duration != t.duration {
		t.duration = duration
		t.secondsLeft = duration * 60
	}
	if session.Total < 1 {
		session.Total = DefaultDailyGoal
	}
	t.session = session
	t.history = append([]FocusSession(nil), history...)
}

// SetGoal moves today's goal by delta, never below one session.
func (t *Tracker) SetGoal(delta int) PomodoroSession {
	t.session.Total = max(1, t.session.Total+delta)
	t.session.Completed = min(t.session.Completed, t.session.Total)
	return t.session
}

// Rollover starts a fresh daily record when the stored one is not today's.
// The goal carries over; the completed count does not.
func (t *Tracker) Rollover(today string) bool {
	next, changed := RolloverSession(t.session, today)
	t.session = next
	return changed
}
