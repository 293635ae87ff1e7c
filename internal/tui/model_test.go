package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"pulsestudy/internal/ai"
	"pulsestudy/internal/engine"
	"pulsestudy/internal/storage"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestModel(t *testing.T) (boardModel, *clock) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	c := &clock{t: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)}
	opts := append(ai.NewGateways(ai.Config{}).Options(), engine.WithClock(c.now))
	svc, err := engine.NewService(ctx, storage.NewKV(db), opts...)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	m := newBoardModel(ctx, svc)
	m.interval = time.Millisecond
	return m, c
}

// run feeds msg to the model and keeps feeding the messages produced by
// returned commands, skipping timers and batches it cannot resolve inline.
func run(t *testing.T, m boardModel, msg tea.Msg) boardModel {
	t.Helper()
	queue := []tea.Msg{msg}
	for len(queue) > 0 && len(queue) < 100 {
		next := queue[0]
		queue = queue[1:]
		model, cmd := m.Update(next)
		m = model.(boardModel)
		if cmd == nil {
			continue
		}
		out := cmd()
		switch out := out.(type) {
		case tea.BatchMsg:
			for _, c := range out {
				if c != nil {
					queue = append(queue, c())
				}
			}
		case tickMsg, nil:
		default:
			queue = append(queue, out)
		}
	}
	return m
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestAddAndToggleTask(t *testing.T) {
	m, _ := newTestModel(t)
	m = run(t, m, keys("a"))
	if m.mode != modeAdd {
		t.Fatalf("expected add mode")
	}
	m = run(t, m, keys("Read"))
	m = run(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = run(t, m, keys("ch 2"))
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(m.tasks) != 1 || m.tasks[0].Title != "Read ch 2" {
		t.Fatalf("tasks=%+v", m.tasks)
	}

	m = run(t, m, keys("c"))
	if !m.tasks[0].Done {
		t.Fatalf("task not toggled")
	}
	if m.snap.XP != engine.TaskCompletionXP || !strings.Contains(m.lastLog, "+10 XP") {
		t.Fatalf("xp=%d log=%q", m.snap.XP, m.lastLog)
	}
	if !strings.Contains(m.View(), "[x] Read ch 2") {
		t.Fatalf("view:\n%s", m.View())
	}
}

func TestStaleTickIgnored(t *testing.T) {
	m, c := newTestModel(t)
	m = run(t, m, keys("t"))
	if !m.focus.Running {
		t.Fatalf("focus not running")
	}
	gen := m.tickGen

	c.t = c.t.Add(time.Second)
	m = run(t, m, tickMsg{gen: gen})
	if m.focus.SecondsLeft != 1499 {
		t.Fatalf("secondsLeft=%d, want 1499", m.focus.SecondsLeft)
	}

	m = run(t, m, keys("t"))
	if m.focus.Running {
		t.Fatalf("focus still running after pause")
	}
	m = run(t, m, tickMsg{gen: gen})
	if m.focus.SecondsLeft != 1499 {
		t.Fatalf("stale tick moved the timer to %d", m.focus.SecondsLeft)
	}
}

func TestCycleSortAndFilter(t *testing.T) {
	m, _ := newTestModel(t)
	m = run(t, m, keys("s"))
	if m.sortBy != engine.SortPriority {
		t.Fatalf("sort=%s", m.sortBy)
	}
	m = run(t, m, keys("f"))
	if m.filter.Status != engine.StatusPending {
		t.Fatalf("filter=%s", m.filter.Status)
	}
	m = run(t, m, keys("+"))
	if m.focus.Session.Total != engine.DefaultDailyGoal+1 {
		t.Fatalf("goal=%d", m.focus.Session.Total)
	}
}

func TestRefreshPicksUpOtherWriters(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "shared.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	kv := storage.NewKV(db)

	board, err := engine.NewService(ctx, kv)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	m := newBoardModel(ctx, board)
	m = run(t, m, m.Init()())

	cli, err := engine.NewService(ctx, kv)
	if err != nil {
		t.Fatalf("second service: %v", err)
	}
	if _, _, err := cli.AddTask(ctx, "from cli", engine.PriorityMedium, nil); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	m = run(t, m, keys("r"))
	if len(m.tasks) != 1 || m.tasks[0].Title != "from cli" {
		t.Fatalf("tasks after refresh=%+v", m.tasks)
	}
	if !strings.HasPrefix(m.lastLog, "Refreshed at") {
		t.Fatalf("log=%q", m.lastLog)
	}

	m = run(t, m, keys("a"))
	m = run(t, m, keys("board"))
	m = run(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	fresh, err := engine.NewService(ctx, kv)
	if err != nil {
		t.Fatalf("fresh service: %v", err)
	}
	if got := fresh.Snapshot().TotalTasks; got != 2 {
		t.Fatalf("stored tasks=%d, want 2", got)
	}
}
