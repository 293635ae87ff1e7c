package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"pulsestudy/internal/engine"
)

const instructions = "Pulse is a study dashboard. Use task_add to create tasks the user asks for, " +
	"asking for a priority and due date when they are missing. Use progress and focus_status to report on the user's study."

// NewServer registers every tool against svc.
func NewServer(svc *engine.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"pulse",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	addTask := NewAddTaskTool(svc)
	s.AddTool(addTask.Definition(), addTask.Handle)

	listTasks := NewListTasksTool(svc)
	s.AddTool(listTasks.Definition(), listTasks.Handle)

	toggleTask := NewToggleTaskTool(svc)
	s.AddTool(toggleTask.Definition(), toggleTask.Handle)

	removeTask := NewRemoveTaskTool(svc)
	s.AddTool(removeTask.Definition(), removeTask.Handle)

	saveNote := NewSaveNoteTool(svc)
	s.AddTool(saveNote.Definition(), saveNote.Handle)

	progress := NewProgressTool(svc)
	s.AddTool(progress.Definition(), progress.Handle)

	focus := NewFocusStatusTool(svc)
	s.AddTool(focus.Definition(), focus.Handle)

	return s
}

// ServeStdio runs the MCP server on stdin/stdout until the client disconnects.
func ServeStdio(svc *engine.Service) error {
	return server.ServeStdio(NewServer(svc))
}
