package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"pulsestudy/internal/engine"
)

// ProgressTool handles the progress MCP tool.
type ProgressTool struct {
	svc *engine.Service
}

func NewProgressTool(svc *engine.Service) *ProgressTool {
	return &ProgressTool{svc: svc}
}

func (t *ProgressTool) Definition() mcp.Tool {
	return mcp.NewTool("progress",
		mcp.WithDescription("Show XP, rank, AI rating and totals for the user."),
	)
}

func (t *ProgressTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := refresh(ctx, t.svc); res != nil {
		return res, nil
	}
	s := t.svc.Snapshot()

	var b strings.Builder
	b.WriteString("## Progress\n\n")
	fmt.Fprintf(&b, "- **Rank**: %s (%d XP)\n", s.Rank.Name, s.XP)
	if s.NextRank != nil {
		fmt.Fprintf(&b, "- **Next rank**: %s in %d XP\n", s.NextRank.Name, s.XPToNext)
	}
	fmt.Fprintf(&b, "- **AI rating**: %d\n", s.Rating)
	fmt.Fprintf(&b, "- **Tasks**: %d/%d done\n", s.CompletedTasks, s.TotalTasks)
	fmt.Fprintf(&b, "- **Focus**: %d min\n", s.FocusMinutes)
	fmt.Fprintf(&b, "- **Notes**: %d\n", s.Notes)
	return mcp.NewToolResultText(b.String()), nil
}

// FocusStatusTool handles the focus_status MCP tool.
type FocusStatusTool struct {
	svc *engine.Service
}

func NewFocusStatusTool(svc *engine.Service) *FocusStatusTool {
	return &FocusStatusTool{svc: svc}
}

func (t *FocusStatusTool) Definition() mcp.Tool {
	return mcp.NewTool("focus_status",
		mcp.WithDescription("Show the focus timer, today's session goal and recent daily focus minutes."),
		mcp.WithNumber("days",
			mcp.Description("Days of focus history to include (default: 7)"),
		),
	)
}

func (t *FocusStatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := refresh(ctx, t.svc); res != nil {
		return res, nil
	}
	st := t.svc.FocusState()
	days := intArg(req, "days", 7)

	var b strings.Builder
	state := "idle"
	if st.Running {
		state = "running"
	}
	fmt.Fprintf(&b, "Timer: %s, %02d:%02d left of %d min\n", state, st.SecondsLeft/60, st.SecondsLeft%60, st.Duration)
	fmt.Fprintf(&b, "Today (%s): %d/%d sessions\n", st.Session.Date, st.Session.Completed, st.Session.Total)
	for _, d := range t.svc.DailyFocus(days) {
		fmt.Fprintf(&b, "%s  %3d min  %d sessions\n", d.Date, d.Minutes, d.Sessions)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// SaveNoteTool handles the note_save MCP tool.
type SaveNoteTool struct {
	svc *engine.Service
}

func NewSaveNoteTool(svc *engine.Service) *SaveNoteTool {
	return &SaveNoteTool{svc: svc}
}

func (t *SaveNoteTool) Definition() mcp.Tool {
	return mcp.NewTool("note_save",
		mcp.WithDescription("Create a note, or update one when an id is given. New notes earn XP."),
		mcp.WithString("title", mcp.Description("Note title (default: Untitled)")),
		mcp.WithString("body", mcp.Description("Note text")),
		mcp.WithString("id", mcp.Description("Existing note id or prefix to update")),
	)
}

func (t *SaveNoteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if res := refresh(ctx, t.svc); res != nil {
		return res, nil
	}
	in := engine.NoteInput{
		Title: req.GetString("title", ""),
		Body:  req.GetString("body", ""),
	}
	if ref := req.GetString("id", ""); ref != "" {
		id, err := t.svc.ResolveNote(ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		in.ID = id
	}
	note, created, err := t.svc.SaveNote(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to save note: %v", err)), nil
	}
	if note.ID == "" {
		return mcp.NewToolResultError("note is empty"), nil
	}
	if created {
		return mcp.NewToolResultText(fmt.Sprintf("Saved note %q (+%d XP).", note.Title, engine.NoteCreatedXP)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Updated note %q.", note.Title)), nil
}
