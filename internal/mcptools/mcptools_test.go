package mcptools

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"pulsestudy/internal/ai"
	"pulsestudy/internal/engine"
	"pulsestudy/internal/storage"
)

func newTestService(t *testing.T) *engine.Service {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return newServiceOn(t, storage.NewKV(db))
}

func newServiceOn(t *testing.T, kv *storage.KV) *engine.Service {
	t.Helper()
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	opts := append(ai.NewGateways(ai.Config{}).Options(), engine.WithClock(func() time.Time { return now }))
	svc, err := engine.NewService(context.Background(), kv, opts...)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestAddTaskTool(t *testing.T) {
	svc := newTestService(t)
	tool := NewAddTaskTool(svc)
	if def := tool.Definition(); def.Name != "task_add" {
		t.Fatalf("name=%s", def.Name)
	}

	res, err := tool.Handle(context.Background(), makeReq(map[string]interface{}{
		"title": "Revise algebra", "priority": "high", "due": "tomorrow",
	}))
	if err != nil || res.IsError {
		t.Fatalf("Handle err=%v result=%s", err, resultText(res))
	}
	if !strings.Contains(resultText(res), `Task added: "Revise algebra"`) {
		t.Fatalf("text=%s", resultText(res))
	}
	tasks := svc.Tasks(engine.DefaultFilter(), engine.SortCreated)
	if len(tasks) != 1 || tasks[0].Priority != engine.PriorityHigh || tasks[0].DueDate == nil {
		t.Fatalf("tasks=%+v", tasks)
	}
}

func TestAddTaskToolRejectsBadInput(t *testing.T) {
	tool := NewAddTaskTool(newTestService(t))
	for _, args := range []map[string]interface{}{
		{"title": "  "},
		{"title": "x", "priority": "urgent"},
		{"title": "x", "due": "someday"},
	} {
		res, err := tool.Handle(context.Background(), makeReq(args))
		if err != nil || !res.IsError {
			t.Fatalf("args=%v: expected tool error, got %s", args, resultText(res))
		}
	}
}

func TestToggleToolModeratesAndAwards(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	task, _, _ := svc.AddTask(ctx, "Lab report", engine.PriorityMedium, nil)

	tool := NewToggleTaskTool(svc)
	res, err := tool.Handle(ctx, makeReq(map[string]interface{}{"id": task.ID[:6]}))
	if err != nil || res.IsError {
		t.Fatalf("Handle err=%v result=%s", err, resultText(res))
	}
	if !strings.Contains(resultText(res), "+10 XP") {
		t.Fatalf("text=%s", resultText(res))
	}
	if got := svc.Snapshot().XP; got != engine.TaskCompletionXP {
		t.Fatalf("XP=%d", got)
	}

	res, _ = tool.Handle(ctx, makeReq(map[string]interface{}{"id": task.ID}))
	if !strings.HasPrefix(resultText(res), "Reopened") {
		t.Fatalf("text=%s", resultText(res))
	}

	res, _ = tool.Handle(ctx, makeReq(map[string]interface{}{"id": "zzz"}))
	if !res.IsError {
		t.Fatalf("unknown id should be a tool error")
	}
}

func TestListTasksTool(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	svc.AddTask(ctx, "Low one", engine.PriorityLow, nil)
	svc.AddTask(ctx, "High one", engine.PriorityHigh, nil)

	tool := NewListTasksTool(svc)
	res, _ := tool.Handle(ctx, makeReq(map[string]interface{}{"sort": "priority"}))
	text := resultText(res)
	if strings.Index(text, "High one") > strings.Index(text, "Low one") {
		t.Fatalf("priority sort broken:\n%s", text)
	}

	res, _ = tool.Handle(ctx, makeReq(map[string]interface{}{"priority": "low"}))
	if text := resultText(res); strings.Contains(text, "High one") || !strings.Contains(text, "Low one") {
		t.Fatalf("priority filter broken:\n%s", text)
	}

	res, _ = tool.Handle(ctx, makeReq(map[string]interface{}{"priority": "high,"}))
	if text := resultText(res); res.IsError || strings.Contains(text, "Low one") || !strings.Contains(text, "High one") {
		t.Fatalf("trailing comma widened the filter:\n%s", text)
	}

	res, _ = tool.Handle(ctx, makeReq(map[string]interface{}{"priority": " , "}))
	if text := resultText(res); !strings.Contains(text, "High one") || !strings.Contains(text, "Low one") {
		t.Fatalf("blank priority list should select all:\n%s", text)
	}

	res, _ = tool.Handle(ctx, makeReq(map[string]interface{}{"status": "done"}))
	if resultText(res) != "No tasks." {
		t.Fatalf("text=%s", resultText(res))
	}
}

func TestRemoveTaskTool(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	task, _, _ := svc.AddTask(ctx, "Drop me", engine.PriorityLow, nil)

	res, _ := NewRemoveTaskTool(svc).Handle(ctx, makeReq(map[string]interface{}{"id": task.ID}))
	if res.IsError || svc.Snapshot().TotalTasks != 0 {
		t.Fatalf("remove failed: %s", resultText(res))
	}
}

func TestNoteAndProgressTools(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	res, _ := NewSaveNoteTool(svc).Handle(ctx, makeReq(map[string]interface{}{"body": "mitosis notes"}))
	if !strings.Contains(resultText(res), "+15 XP") {
		t.Fatalf("text=%s", resultText(res))
	}
	res, _ = NewSaveNoteTool(svc).Handle(ctx, makeReq(map[string]interface{}{}))
	if !res.IsError {
		t.Fatalf("empty note should be a tool error")
	}

	res, _ = NewProgressTool(svc).Handle(ctx, makeReq(nil))
	text := resultText(res)
	for _, want := range []string{"CALIBRATING", "15 XP", "IRON in 485 XP", "**Notes**: 1"} {
		if !strings.Contains(text, want) {
			t.Fatalf("progress missing %q:\n%s", want, text)
		}
	}
}

func TestFocusStatusTool(t *testing.T) {
	svc := newTestService(t)
	res, _ := NewFocusStatusTool(svc).Handle(context.Background(), makeReq(map[string]interface{}{"days": float64(3)}))
	text := resultText(res)
	if !strings.Contains(text, "idle, 25:00 left of 25 min") || !strings.Contains(text, "0/4 sessions") {
		t.Fatalf("text=%s", text)
	}
	if got := strings.Count(text, "min  "); got != 3 {
		t.Fatalf("days listed=%d, want 3:\n%s", got, text)
	}
}

func TestToolsSeeWritesFromOtherProcesses(t *testing.T) {
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "shared.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	kv := storage.NewKV(db)

	server := newServiceOn(t, kv)
	cli := newServiceOn(t, kv)
	task, _, err := cli.AddTask(ctx, "from cli", engine.PriorityMedium, nil)
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if _, _, err := cli.SaveNote(ctx, engine.NoteInput{Title: "cli note"}); err != nil {
		t.Fatalf("SaveNote: %v", err)
	}

	res, _ := NewListTasksTool(server).Handle(ctx, makeReq(nil))
	if !strings.Contains(resultText(res), "from cli") {
		t.Fatalf("list missed the other process's task:\n%s", resultText(res))
	}
	res, _ = NewProgressTool(server).Handle(ctx, makeReq(nil))
	if !strings.Contains(resultText(res), "15 XP") {
		t.Fatalf("progress missed the other process's XP:\n%s", resultText(res))
	}

	res, _ = NewAddTaskTool(server).Handle(ctx, makeReq(map[string]interface{}{"title": "from mcp"}))
	if res.IsError {
		t.Fatalf("add failed: %s", resultText(res))
	}
	fresh := newServiceOn(t, kv)
	if _, ok := fresh.Task(task.ID); !ok {
		t.Fatalf("task from cli lost after mcp write")
	}
	if got := fresh.Snapshot().TotalTasks; got != 2 {
		t.Fatalf("stored tasks=%d, want 2", got)
	}
	if got := fresh.Progress().XP; got != engine.NoteCreatedXP {
		t.Fatalf("stored XP=%d, want %d", got, engine.NoteCreatedXP)
	}
}

func TestNewServerRegistersTools(t *testing.T) {
	if s := NewServer(newTestService(t)); s == nil {
		t.Fatalf("nil server")
	}
}
