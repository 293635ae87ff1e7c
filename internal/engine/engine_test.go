package engine

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"pulsestudy/internal/storage"
)

type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *testClock {
	return &testClock{t: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}
}

func newTestStore(t *testing.T) (*storage.KV, func()) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")
	db, err := storage.Open(ctx, path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return storage.NewKV(db), func() { _ = db.Close() }
}

func newTestService(t *testing.T, clock *testClock, opts ...Option) (*Service, *storage.KV, func()) {
	t.Helper()
	kv, cleanup := newTestStore(t)
	opts = append([]Option{WithClock(clock.Now)}, opts...)
	svc, err := NewService(context.Background(), kv, opts...)
	if err != nil {
		cleanup()
		t.Fatalf("NewService: %v", err)
	}
	return svc, kv, cleanup
}

type stubModerator struct {
	verdict Verdict
	err     error
	calls   int
}

func (m *stubModerator) Evaluate(_ context.Context, req ModerationRequest) (Verdict, error) {
	m.calls++
	if m.err != nil {
		return Verdict{}, m.err
	}
	return m.verdict, nil
}

func approve() *stubModerator {
	return &stubModerator{verdict: Verdict{AwardXP: true, Reason: "looks real"}}
}

func TestToggleGatesXPOnModeration(t *testing.T) {
	clock := newClock()
	svc, _, cleanup := newTestService(t, clock, WithModerator(approve()))
	defer cleanup()
	ctx := context.Background()

	task, ok, err := svc.AddTask(ctx, "  Write report  ", PriorityHigh, nil)
	if err != nil || !ok {
		t.Fatalf("AddTask ok=%v err=%v", ok, err)
	}
	if task.Title != "Write report" {
		t.Fatalf("title=%q, want trimmed", task.Title)
	}

	clock.Advance(2 * time.Hour)
	res, err := svc.ToggleTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if !res.Completed || res.Review == nil {
		t.Fatalf("expected completion with review, got %+v", res)
	}
	if got := svc.Progress().XP; got != 0 {
		t.Fatalf("XP before moderation=%d, want 0", got)
	}
	if len(res.Review.Completions) != 1 || !res.Review.Completions[0].Equal(clock.Now()) {
		t.Fatalf("review completions=%v", res.Review.Completions)
	}

	v, awarded, err := svc.Moderate(ctx, *res.Review)
	if err != nil {
		t.Fatalf("Moderate: %v", err)
	}
	if !awarded || v.TaskID != task.ID {
		t.Fatalf("awarded=%v verdict=%+v", awarded, v)
	}
	if got := svc.Progress().XP; got != TaskCompletionXP {
		t.Fatalf("XP=%d, want %d", got, TaskCompletionXP)
	}

	// Reopening keeps the history and asks for no review.
	res, err = svc.ToggleTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("ToggleTask reopen: %v", err)
	}
	if res.Completed || res.Review != nil || res.Task.Done {
		t.Fatalf("reopen result=%+v", res)
	}
	if len(res.Task.Completions) != 1 {
		t.Fatalf("completions after reopen=%d, want 1", len(res.Task.Completions))
	}

	res, _ = svc.ToggleTask(ctx, task.ID)
	if len(res.Task.Completions) != 2 {
		t.Fatalf("completions after second completion=%d, want 2", len(res.Task.Completions))
	}
}

func TestToggleUnknownTaskIsNoop(t *testing.T) {
	svc, _, cleanup := newTestService(t, newClock())
	defer cleanup()

	res, err := svc.ToggleTask(context.Background(), "missing")
	if err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if res.Found || res.Review != nil {
		t.Fatalf("expected no-op, got %+v", res)
	}
}

func TestModerationFailsClosed(t *testing.T) {
	ctx := context.Background()
	for name, mod := range map[string]Moderator{
		"error":  &stubModerator{err: errors.New("boom")},
		"denied": &stubModerator{verdict: Verdict{AwardXP: false, Reason: "too fast"}},
		"none":   nil,
	} {
		t.Run(name, func(t *testing.T) {
			svc, _, cleanup := newTestService(t, newClock(), WithModerator(mod))
			defer cleanup()

			task, _, _ := svc.AddTask(ctx, "Read chapter", PriorityMedium, nil)
			res, err := svc.ToggleTask(ctx, task.ID)
			if err != nil {
				t.Fatalf("ToggleTask: %v", err)
			}
			v, awarded, err := svc.Moderate(ctx, *res.Review)
			if err != nil {
				t.Fatalf("Moderate: %v", err)
			}
			if awarded || v.AwardXP {
				t.Fatalf("expected denial, got %+v", v)
			}
			if v.Reason == "" {
				t.Fatalf("expected a reason")
			}
			if got := svc.Progress().XP; got != 0 {
				t.Fatalf("XP=%d, want 0", got)
			}
			if got, _ := svc.Task(task.ID); !got.Done {
				t.Fatalf("task should stay completed after denial")
			}
		})
	}
}

func TestVerdictForDeletedTaskIsNoop(t *testing.T) {
	svc, _, cleanup := newTestService(t, newClock(), WithModerator(approve()))
	defer cleanup()
	ctx := context.Background()

	task, _, _ := svc.AddTask(ctx, "Temp", PriorityLow, nil)
	res, _ := svc.ToggleTask(ctx, task.ID)
	v := svc.ReviewCompletion(ctx, *res.Review)

	if ok, err := svc.RemoveTask(ctx, task.ID); err != nil || !ok {
		t.Fatalf("RemoveTask ok=%v err=%v", ok, err)
	}
	awarded, err := svc.ApplyVerdict(ctx, v)
	if err != nil {
		t.Fatalf("ApplyVerdict: %v", err)
	}
	if awarded {
		t.Fatalf("verdict for a deleted task must not award")
	}
	if got := svc.Progress().XP; got != 0 {
		t.Fatalf("XP=%d, want 0", got)
	}
}

func TestVerdictAfterReopenStillAwards(t *testing.T) {
	svc, _, cleanup := newTestService(t, newClock(), WithModerator(approve()))
	defer cleanup()
	ctx := context.Background()

	task, _, _ := svc.AddTask(ctx, "Essay draft", PriorityMedium, nil)
	res, _ := svc.ToggleTask(ctx, task.ID)
	v := svc.ReviewCompletion(ctx, *res.Review)
	if _, err := svc.ToggleTask(ctx, task.ID); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if awarded, _ := svc.ApplyVerdict(ctx, v); !awarded {
		t.Fatalf("expected award for a task that still exists")
	}
}

func TestRemoveAndPriority(t *testing.T) {
	svc, _, cleanup := newTestService(t, newClock())
	defer cleanup()
	ctx := context.Background()

	task, _, _ := svc.AddTask(ctx, "Plan", PriorityLow, nil)
	if ok, _ := svc.SetTaskPriority(ctx, task.ID, PriorityHigh); !ok {
		t.Fatalf("SetTaskPriority failed")
	}
	if got, _ := svc.Task(task.ID); got.Priority != PriorityHigh {
		t.Fatalf("priority=%s, want high", got.Priority)
	}
	if ok, _ := svc.RemoveTask(ctx, "nope"); ok {
		t.Fatalf("removing unknown id should be a no-op")
	}
	if _, ok, _ := svc.AddTask(ctx, "   ", PriorityLow, nil); ok {
		t.Fatalf("blank title should be rejected")
	}
	if got := len(svc.Tasks(DefaultFilter(), SortCreated)); got != 1 {
		t.Fatalf("tasks=%d, want 1", got)
	}
}

func TestNoteXPOnlyOnCreate(t *testing.T) {
	svc, _, cleanup := newTestService(t, newClock())
	defer cleanup()
	ctx := context.Background()

	n, created, err := svc.SaveNote(ctx, NoteInput{Title: "", Body: "lecture 3"})
	if err != nil || !created {
		t.Fatalf("SaveNote created=%v err=%v", created, err)
	}
	if n.Title != "Untitled" {
		t.Fatalf("title=%q, want Untitled", n.Title)
	}
	if _, created, _ = svc.SaveNote(ctx, NoteInput{ID: n.ID, Title: "Lecture 3", Body: "edited"}); created {
		t.Fatalf("edit reported as create")
	}
	if got := svc.Progress().XP; got != NoteCreatedXP {
		t.Fatalf("XP=%d, want %d", got, NoteCreatedXP)
	}
	if got := svc.Snapshot().Notes; got != 1 {
		t.Fatalf("notes=%d, want 1", got)
	}
	if ok, _ := svc.DeleteNote(ctx, n.ID); !ok {
		t.Fatalf("DeleteNote failed")
	}
	if got := svc.Progress().XP; got != NoteCreatedXP {
		t.Fatalf("deleting a note changed XP to %d", got)
	}
}

func TestFocusCompletionAwardsXP(t *testing.T) {
	clock := newClock()
	svc, _, cleanup := newTestService(t, clock)
	defer cleanup()
	ctx := context.Background()

	if ok, _ := svc.FocusStart(ctx); !ok {
		t.Fatalf("FocusStart failed")
	}
	var done *Completion
	for i := 0; i < DefaultFocusMinutes*60; i++ {
		clock.Advance(time.Second)
		res, err := svc.FocusTick(ctx)
		if err != nil {
			t.Fatalf("FocusTick: %v", err)
		}
		if res.Completion != nil {
			if i != DefaultFocusMinutes*60-1 {
				t.Fatalf("completed early at tick %d", i)
			}
			done = res.Completion
		}
	}
	if done == nil {
		t.Fatalf("session did not complete")
	}

	p := svc.Progress()
	if p.XP != 25 || p.FocusMinutes != 25 {
		t.Fatalf("progress=%+v, want XP 25 focus 25", p)
	}
	st := svc.FocusState()
	if st.Running || st.SecondsLeft != 1500 || st.Session.Completed != 1 {
		t.Fatalf("state=%+v", st)
	}
	h := svc.FocusHistory()
	if len(h) != 1 || h[0].Duration() != 1500*time.Second {
		t.Fatalf("history=%+v", h)
	}

	clock.Advance(time.Second)
	if res, _ := svc.FocusTick(ctx); res.Ticked {
		t.Fatalf("idle tracker should ignore ticks")
	}
}

func TestFocusPauseRecordsOnlyLongRuns(t *testing.T) {
	clock := newClock()
	svc, _, cleanup := newTestService(t, clock)
	defer cleanup()
	ctx := context.Background()

	svc.FocusStart(ctx)
	clock.Advance(30 * time.Second)
	rec, err := svc.FocusPause(ctx)
	if err != nil {
		t.Fatalf("FocusPause: %v", err)
	}
	if rec != nil || len(svc.FocusHistory()) != 0 {
		t.Fatalf("30s run should not be recorded")
	}

	svc.FocusStart(ctx)
	clock.Advance(90 * time.Second)
	rec, _ = svc.FocusReset(ctx)
	if rec == nil || rec.Duration() != 90*time.Second {
		t.Fatalf("90s run should be recorded, got %+v", rec)
	}
	if got := svc.Progress().XP; got != 0 {
		t.Fatalf("stopping early awarded XP=%d", got)
	}
	if st := svc.FocusState(); st.SecondsLeft != 1500 {
		t.Fatalf("reset secondsLeft=%d, want 1500", st.SecondsLeft)
	}
}

func TestFocusDurationAndGoal(t *testing.T) {
	svc, _, cleanup := newTestService(t, newClock())
	defer cleanup()
	ctx := context.Background()

	for _, bad := range []int{0, -5, 121} {
		if ok, _ := svc.FocusDuration(ctx, bad); ok {
			t.Fatalf("duration %d should be ignored", bad)
		}
	}
	if ok, _ := svc.FocusDuration(ctx, 50); !ok {
		t.Fatalf("duration 50 rejected")
	}
	if st := svc.FocusState(); st.SecondsLeft != 3000 {
		t.Fatalf("secondsLeft=%d, want 3000", st.SecondsLeft)
	}

	svc.FocusStart(ctx)
	if ok, _ := svc.FocusDuration(ctx, 30); ok {
		t.Fatalf("duration change while running should be ignored")
	}

	s, _ := svc.FocusGoal(ctx, -10)
	if s.Total != 1 {
		t.Fatalf("goal=%d, want floor 1", s.Total)
	}
	s, _ = svc.FocusGoal(ctx, 2)
	if s.Total != 3 {
		t.Fatalf("goal=%d, want 3", s.Total)
	}
}

func TestSessionRollsOverOnLoad(t *testing.T) {
	kv, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	if err := kv.Set(ctx, storage.KeyPomodoroSession, PomodoroSession{Date: "2024-01-01", Total: 4, Completed: 3}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	clock := &testClock{t: time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)}
	svc, err := NewService(ctx, kv, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	want := PomodoroSession{Date: "2024-01-02", Total: 4, Completed: 0}
	if got := svc.FocusState().Session; got != want {
		t.Fatalf("session=%+v, want %+v", got, want)
	}

	var stored PomodoroSession
	if _, err := kv.Get(ctx, storage.KeyPomodoroSession, &stored); err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored != want {
		t.Fatalf("stored session=%+v, want %+v", stored, want)
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	clock := newClock()
	svc, kv, cleanup := newTestService(t, clock, WithModerator(approve()))
	defer cleanup()
	ctx := context.Background()

	due := clock.Now().Add(48 * time.Hour)
	task, _, _ := svc.AddTask(ctx, "Lab write-up", PriorityHigh, &due)
	res, _ := svc.ToggleTask(ctx, task.ID)
	svc.Moderate(ctx, *res.Review)
	svc.SaveNote(ctx, NoteInput{Title: "Ideas", File: &NoteFile{Name: "a.txt", Type: "text/plain", Data: []byte("hi")}})
	svc.FocusDuration(ctx, 40)
	svc.SetUserName(ctx, "Sam")
	svc.SetTheme(ctx, ThemeLight)

	again, err := NewService(ctx, kv, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got, want := again.Snapshot(), svc.Snapshot(); got.XP != want.XP || got.CompletedTasks != 1 || got.Notes != 1 {
		t.Fatalf("snapshot after reopen=%+v, want %+v", got, want)
	}
	got, ok := again.Task(task.ID)
	if !ok || got.DueDate == nil || !got.DueDate.Equal(due) || len(got.Completions) != 1 {
		t.Fatalf("task after reopen=%+v", got)
	}
	notes := again.Notes()
	if len(notes) != 1 || notes[0].File == nil || string(notes[0].File.Data) != "hi" {
		t.Fatalf("notes after reopen=%+v", notes)
	}
	if again.FocusState().Duration != 40 || again.UserName() != "Sam" || again.Theme() != ThemeLight {
		t.Fatalf("settings lost on reopen")
	}
}

func TestLegacyTasksAreMigrated(t *testing.T) {
	kv, cleanup := newTestStore(t)
	defer cleanup()
	ctx := context.Background()

	legacy := json.RawMessage(`[{"id":"a1","title":"Old task","done":true,"created":1700000000000}]`)
	if err := kv.Set(ctx, storage.KeyTasks, legacy); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc, err := NewService(ctx, kv, WithClock(newClock().Now))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	task, ok := svc.Task("a1")
	if !ok {
		t.Fatalf("legacy task missing")
	}
	if task.Priority != PriorityMedium || task.Completions == nil || len(task.Completions) != 0 {
		t.Fatalf("legacy task not normalized: %+v", task)
	}
}

func TestSnapshotDerivesRankAndRating(t *testing.T) {
	svc, _, cleanup := newTestService(t, newClock())
	defer cleanup()

	snap := svc.Snapshot()
	if snap.Rank.Name != "CALIBRATING" || snap.Rating != RatingFloor {
		t.Fatalf("fresh snapshot=%+v", snap)
	}
	if snap.NextRank == nil || snap.NextRank.Name != "IRON" || snap.XPToNext != 500 {
		t.Fatalf("next rank=%+v toNext=%d", snap.NextRank, snap.XPToNext)
	}
}

type stubPlanner struct {
	plan WeeklyPlan
	err  error
	got  PlanRequest
}

func (p *stubPlanner) Generate(_ context.Context, req PlanRequest) (WeeklyPlan, error) {
	p.got = req
	return p.plan, p.err
}

func TestPlanErrorsAreUserFacing(t *testing.T) {
	ctx := context.Background()

	svc, _, cleanup := newTestService(t, newClock())
	defer cleanup()
	_, err := svc.Plan(ctx, "UTC", "evenings", "calculus", "")
	if !errors.Is(err, ErrPlannerUnavailable) {
		t.Fatalf("no planner err=%v, want unavailable", err)
	}

	p := &stubPlanner{err: errors.New("dial tcp: refused")}
	svc2, _, cleanup2 := newTestService(t, newClock(), WithPlanner(p))
	defer cleanup2()
	_, err = svc2.Plan(ctx, "UTC", "evenings", "calculus", "")
	var pe *PlanError
	if !errors.As(err, &pe) || !errors.Is(err, ErrPlannerUnavailable) {
		t.Fatalf("transport err=%v, want *PlanError unavailable", err)
	}

	p.err = &PlanError{Kind: ErrMalformedPlan}
	_, err = svc2.Plan(ctx, "UTC", "evenings", "calculus", "")
	if err == nil || err.Error() != "The AI returned a plan in an unexpected format. Please try again." {
		t.Fatalf("malformed err=%v", err)
	}
}

func TestPlanSendsRecentHistory(t *testing.T) {
	clock := newClock()
	p := &stubPlanner{plan: WeeklyPlan{"Monday": {{Time: "18:00", Activity: "Review"}}}}
	svc, _, cleanup := newTestService(t, clock, WithPlanner(p))
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 22; i++ {
		svc.FocusStart(ctx)
		clock.Advance(2 * time.Minute)
		svc.FocusPause(ctx)
		clock.Advance(time.Minute)
	}
	plan, err := svc.Plan(ctx, "Europe/Berlin", "mornings", "exam", "")
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(plan["Monday"]) != 1 {
		t.Fatalf("plan=%v", plan)
	}
	if len(p.got.History) != PlanHistorySize {
		t.Fatalf("history sent=%d, want %d", len(p.got.History), PlanHistorySize)
	}
	if p.got.CurrentDay != "Monday" {
		t.Fatalf("current day=%q, want Monday", p.got.CurrentDay)
	}
}

type stubChat struct {
	chunks []ChatChunk
}

func (c *stubChat) Stream(_ context.Context, _ []ChatTurn, fn func(ChatChunk) error) error {
	for _, ch := range c.chunks {
		if err := fn(ch); err != nil {
			return err
		}
	}
	return nil
}

func TestChatAppliesTaskRequests(t *testing.T) {
	clock := newClock()
	due := clock.Now().Add(24 * time.Hour)
	chat := &stubChat{chunks: []ChatChunk{
		{Text: "Sure, "},
		{Text: "added it.", Tasks: []TaskRequest{
			{Title: "Buy flashcards", Priority: "urgent", DueDate: &due},
			{Title: "  "},
		}},
	}}
	svc, _, cleanup := newTestService(t, clock, WithChat(chat))
	defer cleanup()

	var streamed []string
	reply, err := svc.Chat(context.Background(), []ChatTurn{{From: ChatUser, Text: "add buy flashcards"}}, func(s string) {
		streamed = append(streamed, s)
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if reply.Text != "Sure, added it." || len(streamed) != 2 {
		t.Fatalf("reply=%q streamed=%v", reply.Text, streamed)
	}
	if len(reply.Added) != 1 || reply.Added[0].Priority != PriorityMedium {
		t.Fatalf("added=%+v", reply.Added)
	}
	if c := reply.Confirmations(); len(c) != 1 || c[0] != `✅ Task added: "Buy flashcards"` {
		t.Fatalf("confirmations=%v", c)
	}
	if got := svc.Snapshot().TotalTasks; got != 1 {
		t.Fatalf("tasks=%d, want 1", got)
	}
}

func TestChatWithoutGateway(t *testing.T) {
	svc, _, cleanup := newTestService(t, newClock())
	defer cleanup()
	if _, err := svc.Chat(context.Background(), nil, nil); !errors.Is(err, ErrNoGateway) {
		t.Fatalf("err=%v, want ErrNoGateway", err)
	}
}

func TestServicesSharingStoreKeepEachOthersWrites(t *testing.T) {
	clock := newClock()
	board, kv, cleanup := newTestService(t, clock)
	defer cleanup()
	ctx := context.Background()

	if _, _, err := board.SaveNote(ctx, NoteInput{Title: "Board note"}); err != nil {
		t.Fatalf("SaveNote: %v", err)
	}
	cli, err := NewService(ctx, kv, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("second service: %v", err)
	}
	if _, _, err := cli.AddTask(ctx, "from cli", PriorityMedium, nil); err != nil {
		t.Fatalf("cli AddTask: %v", err)
	}
	if _, _, err := cli.SaveNote(ctx, NoteInput{Title: "CLI note"}); err != nil {
		t.Fatalf("cli SaveNote: %v", err)
	}
	if _, _, err := board.AddTask(ctx, "from board", PriorityHigh, nil); err != nil {
		t.Fatalf("board AddTask: %v", err)
	}

	fresh, err := NewService(ctx, kv, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("fresh service: %v", err)
	}
	titles := map[string]bool{}
	for _, task := range fresh.Tasks(DefaultFilter(), SortCreated) {
		titles[task.Title] = true
	}
	if !titles["from cli"] || !titles["from board"] {
		t.Fatalf("stored tasks=%v, want both", titles)
	}
	if got, want := fresh.Progress().XP, 2*NoteCreatedXP; got != want {
		t.Fatalf("stored XP=%d, want %d", got, want)
	}
	if got := fresh.Snapshot().Notes; got != 2 {
		t.Fatalf("stored notes=%d, want 2", got)
	}
}

func TestRefreshKeepsRunningCountdown(t *testing.T) {
	clock := newClock()
	board, kv, cleanup := newTestService(t, clock)
	defer cleanup()
	ctx := context.Background()

	board.FocusStart(ctx)
	for i := 0; i < 10; i++ {
		clock.Advance(time.Second)
		board.FocusTick(ctx)
	}

	cli, err := NewService(ctx, kv, WithClock(clock.Now))
	if err != nil {
		t.Fatalf("second service: %v", err)
	}
	if _, _, err := cli.AddTask(ctx, "from cli", PriorityLow, nil); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if _, err := cli.FocusGoal(ctx, 2); err != nil {
		t.Fatalf("FocusGoal: %v", err)
	}

	if err := board.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	st := board.FocusState()
	if !st.Running || st.SecondsLeft != 1490 {
		t.Fatalf("countdown after refresh=%+v", st)
	}
	if st.Session.Total != DefaultDailyGoal+2 {
		t.Fatalf("goal after refresh=%d, want %d", st.Session.Total, DefaultDailyGoal+2)
	}
	if got := len(board.Tasks(DefaultFilter(), SortCreated)); got != 1 {
		t.Fatalf("tasks after refresh=%d, want 1", got)
	}
}

func TestTrackerRestoreIdleDurationChange(t *testing.T) {
	tr := NewTracker(25, NewSession("2024-03-04", 4), nil, "2024-03-04")
	tr.Restore(50, PomodoroSession{Date: "2024-03-04", Total: 0}, nil)
	st := tr.State()
	if st.Duration != 50 || st.SecondsLeft != 3000 || st.Session.Total != DefaultDailyGoal {
		t.Fatalf("state=%+v", st)
	}

	tr.Start(time.Now())
	tr.Restore(10, st.Session, nil)
	if st := tr.State(); st.Duration != 50 || st.SecondsLeft != 3000 {
		t.Fatalf("running tracker changed: %+v", st)
	}
}
