package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pulsestudy/internal/engine"
	"pulsestudy/internal/ui"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	tasks []engine.Task
	snap  engine.Snapshot
	focus engine.TrackerState

	filter engine.Filter
	sortBy engine.SortBy

	selected int
	mode     mode
	input    []rune

	// tickGen invalidates ticks scheduled before the last start/stop.
	tickGen  int
	interval time.Duration

	lastLog string
	err     error
}

type loadedMsg struct {
	tasks []engine.Task
	snap  engine.Snapshot
	focus engine.TrackerState
}

type tickMsg struct {
	gen int
}

type actionMsg struct {
	log string
	err error
}

type toggledMsg struct {
	res *engine.ToggleResult
	err error
}

type verdictMsg struct {
	title   string
	verdict engine.Verdict
	awarded bool
	err     error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:      ctx,
		svc:      svc,
		filter:   engine.DefaultFilter(),
		sortBy:   engine.SortCreated,
		interval: time.Second,
		lastLog:  "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	filter, by := m.filter, m.sortBy
	return func() tea.Msg {
		return loadedMsg{
			tasks: m.svc.Tasks(filter, by),
			snap:  m.svc.Snapshot(),
			focus: m.svc.FocusState(),
		}
	}
}

// refreshCmd rereads the store so changes made by other pulse commands show up.
func (m boardModel) refreshCmd() tea.Cmd {
	return m.actionCmd(func() (string, error) {
		if err := m.svc.Refresh(m.ctx); err != nil {
			return "", err
		}
		return fmt.Sprintf("Refreshed at %s.", m.svc.Now().Format("15:04:05")), nil
	})
}

func (m boardModel) tickCmd() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m boardModel) actionCmd(fn func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		log, err := fn()
		return actionMsg{log: log, err: err}
	}
}

func (m boardModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleTask(m.ctx, id)
		return toggledMsg{res: res, err: err}
	}
}

// moderateCmd runs the review off the update loop; the verdict comes back as
// a message whenever the gateway answers.
func (m boardModel) moderateCmd(title string, req engine.ModerationRequest) tea.Cmd {
	return func() tea.Msg {
		v := m.svc.ReviewCompletion(m.ctx, req)
		awarded, err := m.svc.ApplyVerdict(m.ctx, v)
		return verdictMsg{title: title, verdict: v, awarded: awarded, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.tasks = msg.tasks
		m.snap = msg.snap
		m.focus = msg.focus
		m.clampSelection()
		return m, nil
	case tickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		res, err := m.svc.FocusTick(m.ctx)
		if err != nil {
			m.lastLog = "Tick failed: " + err.Error()
		}
		m.focus = m.svc.FocusState()
		if c := res.Completion; c != nil {
			m.lastLog = fmt.Sprintf("%s Focus session complete: +%d XP (%d/%d today)", ui.IconDone, c.XP, c.Session.Completed, c.Session.Total)
			m.tickGen++
			return m, m.loadCmd()
		}
		if !m.focus.Running {
			return m, nil
		}
		return m, m.tickCmd()
	case actionMsg:
		if msg.err != nil {
			m.lastLog = "Failed: " + msg.err.Error()
		} else if msg.log != "" {
			m.lastLog = msg.log
		}
		return m, m.loadCmd()
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		if !msg.res.Found {
			m.lastLog = "Task not found."
			return m, m.loadCmd()
		}
		if msg.res.Review == nil {
			m.lastLog = fmt.Sprintf("Reopened %q.", msg.res.Task.Title)
			return m, m.loadCmd()
		}
		m.lastLog = fmt.Sprintf("Completed %q, checking XP…", msg.res.Task.Title)
		return m, tea.Batch(m.loadCmd(), m.moderateCmd(msg.res.Task.Title, *msg.res.Review))
	case verdictMsg:
		switch {
		case msg.err != nil:
			m.lastLog = "Moderation failed: " + msg.err.Error()
		case msg.awarded:
			m.lastLog = fmt.Sprintf("%s +%d XP for %q: %s", ui.IconSparkle, engine.TaskCompletionXP, msg.title, msg.verdict.Reason)
		default:
			m.lastLog = fmt.Sprintf("No XP for %q: %s", msg.title, msg.verdict.Reason)
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		if m.mode == modeAdd {
			return m.updateAdd(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m boardModel) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.input = nil
		m.lastLog = "Cancelled."
		return m, nil
	case tea.KeyEnter:
		title := string(m.input)
		m.mode = modeBrowse
		m.input = nil
		return m, m.actionCmd(func() (string, error) {
			task, ok, err := m.svc.AddTask(m.ctx, title, engine.DefaultPriority, nil)
			if err != nil || !ok {
				return "Task title is empty.", err
			}
			return engine.TaskAddedMessage(task.Title), nil
		})
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeySpace:
		m.input = append(m.input, ' ')
		return m, nil
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	return m, nil
}

func (m boardModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "r":
		return m, m.refreshCmd()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.tasks)-1 {
			m.selected++
		}
		return m, nil
	case "a":
		m.mode = modeAdd
		m.input = nil
		m.lastLog = "New task: type a title, enter to save, esc to cancel."
		return m, nil
	case "c", " ":
		t, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, m.toggleCmd(t.ID)
	case "d":
		t, ok := m.current()
		if !ok {
			return m, nil
		}
		return m, m.actionCmd(func() (string, error) {
			_, err := m.svc.RemoveTask(m.ctx, t.ID)
			return fmt.Sprintf("Removed %q.", t.Title), err
		})
	case "p":
		t, ok := m.current()
		if !ok {
			return m, nil
		}
		next := nextPriority(t.Priority)
		return m, m.actionCmd(func() (string, error) {
			_, err := m.svc.SetTaskPriority(m.ctx, t.ID, next)
			return fmt.Sprintf("%q is now %s priority.", t.Title, next), err
		})
	case "s":
		m.sortBy = nextSort(m.sortBy)
		m.lastLog = "Sorted by " + string(m.sortBy) + "."
		return m, m.loadCmd()
	case "f":
		m.filter.Status = nextStatus(m.filter.Status)
		m.lastLog = "Showing " + string(m.filter.Status) + " tasks."
		return m, m.loadCmd()
	case "t":
		if m.focus.Running {
			m.tickGen++
			return m, m.actionCmd(func() (string, error) {
				rec, err := m.svc.FocusPause(m.ctx)
				return pausedLog(rec), err
			})
		}
		ok, err := m.svc.FocusStart(m.ctx)
		if err != nil {
			m.lastLog = "Start failed: " + err.Error()
			return m, nil
		}
		m.focus = m.svc.FocusState()
		if !ok {
			return m, nil
		}
		m.tickGen++
		m.lastLog = "Focus started."
		return m, m.tickCmd()
	case "R":
		m.tickGen++
		return m, m.actionCmd(func() (string, error) {
			rec, err := m.svc.FocusReset(m.ctx)
			if rec != nil {
				return "Timer reset. " + pausedLog(rec), err
			}
			return "Timer reset.", err
		})
	case "+", "=":
		return m, m.goalCmd(1)
	case "-":
		return m, m.goalCmd(-1)
	}
	return m, nil
}

func (m boardModel) goalCmd(delta int) tea.Cmd {
	return m.actionCmd(func() (string, error) {
		s, err := m.svc.FocusGoal(m.ctx, delta)
		return fmt.Sprintf("Daily goal: %d sessions.", s.Total), err
	})
}

func pausedLog(rec *engine.FocusSession) string {
	if rec == nil {
		return "Paused (too short to record)."
	}
	return fmt.Sprintf("Paused after %s.", rec.Duration().Round(time.Second))
}

func (m *boardModel) clampSelection() {
	if m.selected >= len(m.tasks) {
		m.selected = len(m.tasks) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m boardModel) current() (engine.Task, bool) {
	if m.selected < 0 || m.selected >= len(m.tasks) {
		return engine.Task{}, false
	}
	return m.tasks[m.selected], true
}

func nextPriority(p engine.Priority) engine.Priority {
	switch p {
	case engine.PriorityLow:
		return engine.PriorityMedium
	case engine.PriorityMedium:
		return engine.PriorityHigh
	default:
		return engine.PriorityLow
	}
}

func nextSort(s engine.SortBy) engine.SortBy {
	switch s {
	case engine.SortCreated:
		return engine.SortPriority
	case engine.SortPriority:
		return engine.SortDueDate
	default:
		return engine.SortCreated
	}
}

func nextStatus(s engine.StatusFilter) engine.StatusFilter {
	switch s {
	case engine.StatusAll:
		return engine.StatusPending
	case engine.StatusPending:
		return engine.StatusDone
	default:
		return engine.StatusAll
	}
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 30
	if m.width > 0 {
		leftW = max(22, min(leftW, m.width/2))
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	rows := max(len(linesLeft), len(linesRight))

	var body strings.Builder
	for i := 0; i < rows; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	s := m.snap
	span, into := 1, 1
	if s.NextRank != nil {
		span = s.NextRank.Min - s.Rank.Min
		into = s.XP - s.Rank.Min
	}
	return fmt.Sprintf("%s | %s | XP %d %s | AI rating %d",
		ui.Heading(ui.IconBrain, "Pulse"), ui.RankBadge(s.Rank), s.XP, ui.ProgressBar(into, span, 20), s.Rating)
}

func (m boardModel) renderSidebar() string {
	f := m.focus
	state := "idle"
	if f.Running {
		state = "running"
	}
	lines := []string{
		"Focus",
		fmt.Sprintf("%s %s (%s)", ui.IconFocus, ui.Clock(f.SecondsLeft), state),
		fmt.Sprintf("%d min sessions", f.Duration),
		fmt.Sprintf("Today %d/%d %s", f.Session.Completed, f.Session.Total, ui.ProgressBar(f.Session.Completed, f.Session.Total, 8)),
		"",
		"Stats",
		fmt.Sprintf("- tasks %d/%d", m.snap.CompletedTasks, m.snap.TotalTasks),
		fmt.Sprintf("- focus %d min", m.snap.FocusMinutes),
		fmt.Sprintf("- notes %d", m.snap.Notes),
		"",
		"Keys",
		"- ↑/↓ or j/k: move",
		"- c/space: toggle done",
		"- a: add  d: delete",
		"- p: priority  s: sort",
		"- f: filter  r: refresh",
		"- t: start/pause  R: reset",
		"- +/-: daily goal",
		"- q: quit",
	}
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	out := []string{fmt.Sprintf("Tasks (%s, by %s)", m.filter.Status, m.sortBy)}
	if m.mode == modeAdd {
		out = append(out, "New: "+string(m.input)+"█")
	}
	if len(m.tasks) == 0 {
		out = append(out, "(empty)")
		return strings.Join(out, "\n")
	}
	now := m.svc.Now()
	for i, t := range m.tasks {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := "[ ]"
		if t.Done {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s%s %s  %s", cursor, mark, t.Title, ui.PriorityText(t.Priority))
		if t.DueDate != nil {
			line += "  " + ui.Muted.Render(engine.DueLabel(*t.DueDate, now))
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
