package engine

import (
	"fmt"
	"strings"
	"time"
)

type DuePreset string

const (
	DueToday    DuePreset = "today"
	DueTomorrow DuePreset = "tomorrow"
	DueWeekend  DuePreset = "weekend"
	DueNextWeek DuePreset = "nextweek"
)

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DueDateFor resolves a preset to the end of the matching day. "weekend" is the
// coming Saturday (today when today is Saturday).
func DueDateFor(preset DuePreset, now time.Time) (time.Time, error) {
	switch preset {
	case DueToday:
		return endOfDay(now), nil
	case DueTomorrow:
		return endOfDay(now.AddDate(0, 0, 1)), nil
	case DueWeekend:
		days := int(time.Saturday - now.Weekday())
		return endOfDay(now.AddDate(0, 0, days)), nil
	case DueNextWeek:
		return endOfDay(now.AddDate(0, 0, 7)), nil
	default:
		return time.Time{}, fmt.Errorf("invalid due preset: %q", preset)
	}
}

// ParseDue accepts a preset name or a YYYY-MM-DD date (due at the end of that day).
func ParseDue(input string, now time.Time) (*time.Time, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return nil, nil
	}
	if s == "next-week" || s == "next week" {
		s = string(DueNextWeek)
	}
	if t, err := DueDateFor(DuePreset(s), now); err == nil {
		return &t, nil
	}
	d, err := time.ParseInLocation("2006-01-02", s, now.Location())
	if err != nil {
		return nil, fmt.Errorf("invalid due date %q (want today|tomorrow|weekend|nextweek|YYYY-MM-DD)", input)
	}
	due := endOfDay(d)
	return &due, nil
}

// DueLabel renders a due date relative to now, by calendar day.
func DueLabel(due time.Time, now time.Time) string {
	d := startOfDay(due.In(now.Location()))
	today := startOfDay(now)
	days := int(d.Sub(today).Round(time.Hour).Hours() / 24)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days > 1 && days < 7:
		return fmt.Sprintf("in %d days", days)
	case days >= 7 && days < 14:
		return "Next week"
	default:
		return d.Format("Jan 2")
	}
}
