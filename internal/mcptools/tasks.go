package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"pulsestudy/internal/engine"
)

// AddTaskTool handles the task_add MCP tool.
type AddTaskTool struct {
	svc *engine.Service
}

func NewAddTaskTool(svc *engine.Service) *AddTaskTool {
	return &AddTaskTool{svc: svc}
}

func (t *AddTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("task_add",
		mcp.WithDescription("Create a new task in the user's to-do list."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("The title or description of the task."),
		),
		mcp.WithString("priority",
			mcp.Description("high, medium or low (default: medium)"),
			mcp.Enum("high", "medium", "low"),
		),
		mcp.WithString("due",
			mcp.Description("today, tomorrow, weekend, nextweek or YYYY-MM-DD"),
		),
	)
}

func (t *AddTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := refresh(ctx, t.svc); res != nil {
		return res, nil
	}
	title := req.GetString("title", "")
	if strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("'title' is required"), nil
	}
	p, err := engine.ParsePriority(req.GetString("priority", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	due, err := engine.ParseDue(req.GetString("due", ""), t.svc.Now())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	task, ok, err := t.svc.AddTask(ctx, title, p, due)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add task: %v", err)), nil
	}
	if !ok {
		return mcp.NewToolResultError("task title is empty"), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s (id %s)", engine.TaskAddedMessage(task.Title), shortID(task.ID))), nil
}

// ListTasksTool handles the task_list MCP tool.
type ListTasksTool struct {
	svc *engine.Service
}

func NewListTasksTool(svc *engine.Service) *ListTasksTool {
	return &ListTasksTool{svc: svc}
}

func (t *ListTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("task_list",
		mcp.WithDescription("List tasks, filtered by status and priority and sorted."),
		mcp.WithString("status",
			mcp.Description("all (default), pending or done"),
		),
		mcp.WithString("priority",
			mcp.Description("Comma-separated priorities to include (default: all)"),
		),
		mcp.WithString("sort",
			mcp.Description("created (default), priority or due"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max tasks (default: 50)"),
		),
	)
}

func (t *ListTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := refresh(ctx, t.svc); res != nil {
		return res, nil
	}
	status, err := engine.ParseStatusFilter(req.GetString("status", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	by, err := engine.ParseSortBy(req.GetString("sort", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	filter := engine.DefaultFilter()
	filter.Status = status
	var priorities []engine.Priority
	for _, part := range strings.Split(req.GetString("priority", ""), ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		p, err := engine.ParsePriority(part)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		priorities = append(priorities, p)
	}
	if len(priorities) > 0 {
		filter.Priorities = priorities
	}

	tasks := t.svc.Tasks(filter, by)
	if len(tasks) == 0 {
		return mcp.NewToolResultText("No tasks."), nil
	}
	limit := intArg(req, "limit", 50)
	var b strings.Builder
	fmt.Fprintf(&b, "%d tasks:\n", len(tasks))
	now := t.svc.Now()
	for i, task := range tasks {
		if limit > 0 && i >= limit {
			fmt.Fprintf(&b, "... %d more\n", len(tasks)-limit)
			break
		}
		writeTask(&b, task, now)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// ToggleTaskTool handles the task_toggle MCP tool. Completions are moderated
// before the call returns.
type ToggleTaskTool struct {
	svc *engine.Service
}

func NewToggleTaskTool(svc *engine.Service) *ToggleTaskTool {
	return &ToggleTaskTool{svc: svc}
}

func (t *ToggleTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("task_toggle",
		mcp.WithDescription("Mark a task done (or reopen it). Completing a task may earn XP after moderation."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id or unambiguous id prefix"),
		),
	)
}

func (t *ToggleTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := refresh(ctx, t.svc); res != nil {
		return res, nil
	}
	id, err := t.svc.ResolveTask(req.GetString("id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := t.svc.ToggleTask(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to toggle task: %v", err)), nil
	}
	if !res.Completed {
		return mcp.NewToolResultText(fmt.Sprintf("Reopened %q.", res.Task.Title)), nil
	}

	v, awarded, err := t.svc.Moderate(ctx, *res.Review)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to apply moderation: %v", err)), nil
	}
	if awarded {
		return mcp.NewToolResultText(fmt.Sprintf("Completed %q: +%d XP (%s)", res.Task.Title, engine.TaskCompletionXP, v.Reason)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Completed %q: no XP (%s)", res.Task.Title, v.Reason)), nil
}

// RemoveTaskTool handles the task_remove MCP tool.
type RemoveTaskTool struct {
	svc *engine.Service
}

func NewRemoveTaskTool(svc *engine.Service) *RemoveTaskTool {
	return &RemoveTaskTool{svc: svc}
}

func (t *RemoveTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("task_remove",
		mcp.WithDescription("Delete a task permanently."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Task id or unambiguous id prefix"),
		),
	)
}

func (t *RemoveTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := refresh(ctx, t.svc); res != nil {
		return res, nil
	}
	id, err := t.svc.ResolveTask(req.GetString("id", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	task, _ := t.svc.Task(id)
	if _, err := t.svc.RemoveTask(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to remove task: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Removed %q.", task.Title)), nil
}
