package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pulsestudy/internal/engine"
)

// Pulse theme (CLI + TUI). Styles are package values rebuilt by ApplyTheme.

const (
	IconTask    = "📝"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconFocus   = "⏱️"
	IconNote    = "🗒️"
	IconBrain   = "🧠"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconCal     = "📅"
)

type palette struct {
	primary, accent, good, warn, bad, muted, gold lipgloss.Color
}

var (
	darkPalette = palette{
		primary: "63", accent: "205", good: "42", warn: "214", bad: "196", muted: "244", gold: "220",
	}
	lightPalette = palette{
		primary: "27", accent: "162", good: "28", warn: "166", bad: "160", muted: "240", gold: "136",
	}
)

var (
	Title lipgloss.Style
	H2    lipgloss.Style
	Muted lipgloss.Style
	Key   lipgloss.Style
	Good  lipgloss.Style
	Warn  lipgloss.Style
	Bad   lipgloss.Style
	Gold  lipgloss.Style

	Panel       lipgloss.Style
	SelectedRow lipgloss.Style
)

var current = engine.ThemeDark

func init() {
	ApplyTheme(engine.ThemeDark)
}

// ApplyTheme switches every style to the light or dark palette.
func ApplyTheme(t engine.Theme) {
	p := darkPalette
	if t == engine.ThemeLight {
		p = lightPalette
	} else {
		t = engine.ThemeDark
	}
	current = t

	Title = lipgloss.NewStyle().Bold(true).Foreground(p.accent)
	H2 = lipgloss.NewStyle().Bold(true).Foreground(p.primary)
	Muted = lipgloss.NewStyle().Foreground(p.muted)
	Key = lipgloss.NewStyle().Bold(true).Foreground(p.primary)
	Good = lipgloss.NewStyle().Bold(true).Foreground(p.good)
	Warn = lipgloss.NewStyle().Bold(true).Foreground(p.warn)
	Bad = lipgloss.NewStyle().Bold(true).Foreground(p.bad)
	Gold = lipgloss.NewStyle().Bold(true).Foreground(p.gold)

	Panel = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(p.muted).Padding(0, 1)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(p.gold)
}

// CurrentTheme reports the palette last applied.
func CurrentTheme() engine.Theme { return current }

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatusText(done bool) string {
	if done {
		return Good.Render("done")
	}
	return Warn.Render("pending")
}

func PriorityText(p engine.Priority) string {
	switch p {
	case engine.PriorityHigh:
		return Bad.Render("high")
	case engine.PriorityMedium:
		return Warn.Render("medium")
	case engine.PriorityLow:
		return Muted.Render("low")
	default:
		return Muted.Render(string(p))
	}
}

// RankBadge renders the rank icon and name in the rank's badge colours. Ranks
// with several colours cycle them across the letters.
func RankBadge(r engine.Rank) string {
	label := r.Name
	if r.Icon != "" {
		label = r.Icon + " " + r.Name
	}
	if len(r.BadgeColors) == 0 {
		return Gold.Render(label)
	}
	if len(r.BadgeColors) <= 2 {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(r.BadgeColors[0])).Render(label)
	}
	var b strings.Builder
	i := 0
	for _, ch := range label {
		if ch == ' ' {
			b.WriteRune(ch)
			continue
		}
		c := lipgloss.Color(r.BadgeColors[i%len(r.BadgeColors)])
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(c).Render(string(ch)))
		i++
	}
	return b.String()
}

// Clock formats seconds as MM:SS.
func Clock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ProgressBar renders value/total as a fixed-width bar.
func ProgressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	value = max(0, min(value, total))
	filled := min(width, int(float64(value)/float64(total)*float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
