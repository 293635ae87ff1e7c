// Package mcptools exposes the dashboard service as MCP tools so an external
// assistant can read progress and manage tasks over stdio.
//
// Every tool is a struct holding the service, with Definition() returning the
// schema and Handle() doing the work.
package mcptools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"pulsestudy/internal/engine"
)

// Version is set at build time via ldflags.
var Version = "dev"

// refresh reloads the service so a call sees what other processes sharing the
// database wrote. It returns a tool error when the store cannot be read.
func refresh(ctx context.Context, svc *engine.Service) *mcp.CallToolResult {
	if err := svc.Refresh(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load state: %v", err))
	}
	return nil
}

func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

func writeTask(b *strings.Builder, t engine.Task, now time.Time) {
	mark := " "
	if t.Done {
		mark = "x"
	}
	fmt.Fprintf(b, "- [%s] %s (%s, id %s)", mark, t.Title, t.Priority, shortID(t.ID))
	if t.DueDate != nil {
		fmt.Fprintf(b, " due %s", engine.DueLabel(*t.DueDate, now))
	}
	b.WriteString("\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
