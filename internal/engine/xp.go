package engine

const (
	// TaskCompletionXP is granted per completion, only after moderation approves it.
	TaskCompletionXP = 10

	// NoteCreatedXP is granted on the first save of a note, never on edits.
	NoteCreatedXP = 15

	// FocusXPPerMinute is granted per configured minute of a finished focus session.
	// It is not moderated.
	FocusXPPerMinute = 1
)

// Progress is the gamification aggregate. XP and FocusMinutes only move
// through its methods.
type Progress struct {
	XP           int
	FocusMinutes int
}

// AddXP adds amount to the XP counter. The sign is not checked; every caller in
// this package passes a non-negative award.
func (p *Progress) AddXP(amount int) {
	p.XP += amount
}

// AddFocus records finished focus minutes.
func (p *Progress) AddFocus(minutes int) {
	p.FocusMinutes += minutes
}

// Stats is the input of the derived views (rank, rating).
type Stats struct {
	CompletedTasks int
	FocusMinutes   int
	Notes          int
	XP             int
}

// Snapshot is an immutable read model. Rank and Rating are recomputed for
// every snapshot and never persisted.
type Snapshot struct {
	Stats
	TotalTasks int
	Rank       Rank
	NextRank   *Rank
	XPToNext   int
	Rating     int
	Session    PomodoroSession
}

func newSnapshot(st Stats, totalTasks int, session PomodoroSession) Snapshot {
	snap := Snapshot{
		Stats:      st,
		TotalTasks: totalTasks,
		Rank:       RankFor(st.XP),
		XPToNext:   XPToNextRank(st.XP),
		Rating:     AIRating(st.CompletedTasks, st.FocusMinutes, st.Notes, st.XP),
		Session:    session,
	}
	if next, ok := NextRank(st.XP); ok {
		snap.NextRank = &next
	}
	return snap
}
