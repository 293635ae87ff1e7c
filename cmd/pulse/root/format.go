package root

import (
	"fmt"
	"io"
	"strings"
	"time"

	"pulsestudy/internal/engine"
	"pulsestudy/internal/ui"
)

const idWidth = 8

func shortID(id string) string {
	if len(id) > idWidth {
		return id[:idWidth]
	}
	return id
}

func writeTaskLine(w io.Writer, t engine.Task, now time.Time) {
	box := "[ ]"
	if t.Done {
		box = ui.Good.Render("[x]")
	}
	line := fmt.Sprintf("%s %s %s %s", box, ui.Muted.Render(shortID(t.ID)), t.Title, ui.PriorityText(t.Priority))
	if t.DueDate != nil {
		line += " " + ui.Muted.Render(ui.IconCal+" "+engine.DueLabel(*t.DueDate, now))
	}
	if n := len(t.Completions); n > 1 {
		line += " " + ui.Muted.Render(fmt.Sprintf("(completed %dx)", n))
	}
	fmt.Fprintln(w, line)
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
