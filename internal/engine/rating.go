package engine

import "math"

const (
	// RatingFloor and RatingCeiling bound the AI rating.
	RatingFloor   = 1000
	RatingCeiling = 10000

	// ratingTarget is the raw score of a very active user; it maps to the ceiling.
	ratingTarget = 12000.0
	ratingSpan   = RatingCeiling - RatingFloor

	ratingPerTask        = 15.0
	ratingPerFocusMinute = 2.0
	ratingPerNote        = 25.0
	ratingPerXP          = 0.5
)

// AIRating derives the engagement score from aggregate stats. It is never
// stored; callers recompute it on every read.
func AIRating(completedTasks, focusMinutes, notes, xp int) int {
	raw := float64(completedTasks)*ratingPerTask +
		float64(focusMinutes)*ratingPerFocusMinute +
		float64(notes)*ratingPerNote +
		float64(xp)*ratingPerXP

	scaled := raw / ratingTarget * ratingSpan
	bonus := math.Min(ratingSpan, math.Round(scaled))
	if bonus < 0 {
		bonus = 0
	}
	return RatingFloor + int(bonus)
}
