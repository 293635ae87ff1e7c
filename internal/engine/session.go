package engine

import (
	"sort"
	"time"
)

// DefaultDailyGoal is the number of focus sessions planned for a fresh install.
const DefaultDailyGoal = 4

func NewSession(today string, total int) PomodoroSession {
	if total < 1 {
		total = DefaultDailyGoal
	}
	return PomodoroSession{Date: today, Total: total}
}

// RolloverSession returns today's record for s. A record from another day is
// replaced by {today, s.Total, 0}.
func RolloverSession(s PomodoroSession, today string) (PomodoroSession, bool) {
	if s.Date == today {
		return s, false
	}
	total := s.Total
	if total < 1 {
		total = DefaultDailyGoal
	}
	return PomodoroSession{Date: today, Total: total, Completed: 0}, true
}

// DayFocus is the focus total for one calendar day.
type DayFocus struct {
	Date     string
	Minutes  int
	Sessions int
}

// DailyFocus sums recorded focus per day for the `days` days ending today,
// oldest first. Days without sessions are present with zero minutes.
func DailyFocus(history []FocusSession, today time.Time, days int) []DayFocus {
	if days <= 0 {
		return nil
	}
	byDate := map[string]*DayFocus{}
	out := make([]DayFocus, days)
	for i := 0; i < days; i++ {
		d := today.AddDate(0, 0, -(days - 1 - i))
		out[i] = DayFocus{Date: DateKey(d)}
		byDate[out[i].Date] = &out[i]
	}

	totals := map[string]time.Duration{}
	for _, h := range history {
		df, ok := byDate[h.Date]
		if !ok {
			continue
		}
		totals[h.Date] += h.Duration()
		df.Sessions++
	}
	for date, total := range totals {
		byDate[date].Minutes = int(total.Round(time.Minute) / time.Minute)
	}
	return out
}

// RecentHistory returns the last n entries ordered by start time.
func RecentHistory(history []FocusSession, n int) []FocusSession {
	out := append([]FocusSession(nil), history...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	if n >= 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}

// TotalFocus sums the duration of every history entry.
func TotalFocus(history []FocusSession) time.Duration {
	var total time.Duration
	for _, h := range history {
		total += h.Duration()
	}
	return total
}
