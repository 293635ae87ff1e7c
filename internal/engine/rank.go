package engine

import "math"

// Rank is a named XP tier. Min and Max are inclusive.
type Rank struct {
	Name        string
	Min         int
	Max         int
	BadgeColors []string
	Icon        string
	Animation   string
	Description string
}

// Ranks is the rank ladder, ordered by Min. Ranges are contiguous from 0 and the
// last one is unbounded. Treat it as read-only.
var Ranks = []Rank{
	{Name: "CALIBRATING", Min: 0, Max: 499, BadgeColors: []string{"#A9A9A9", "#808080"}, Icon: "—"},
	{Name: "IRON", Min: 500, Max: 999, BadgeColors: []string{"#a19d94", "#706c64"}, Icon: "I"},
	{Name: "BRONZE", Min: 1000, Max: 1499, BadgeColors: []string{"#cd7f32", "#a06426"}, Icon: "B", Animation: "shimmer"},
	{Name: "SILVER", Min: 1500, Max: 1999, BadgeColors: []string{"#c0c0c0", "#a8a8a8"}, Icon: "S", Animation: "shimmer"},
	{Name: "GOLD", Min: 2000, Max: 2499, BadgeColors: []string{"#ffd700", "#d4af00"}, Icon: "G", Animation: "shimmer"},
	{Name: "PLATINUM", Min: 2500, Max: 3499, BadgeColors: []string{"#e5e4e2", "#b7b6b4"}, Icon: "P", Animation: "glow-platinum"},
	{Name: "DIAMOND", Min: 3500, Max: 4499, BadgeColors: []string{"#b9f2ff", "#7dd8f0"}, Icon: "D", Animation: "glow-diamond"},
	{Name: "MASTER", Min: 4500, Max: 5999, BadgeColors: []string{"#800080", "#c000c0"}, Icon: "★", Animation: "pulse-master"},
	{Name: "SPECIAL", Min: 6000, Max: 14999, BadgeColors: []string{"#DA70D6", "#00FA9A", "#8A2BE2"}, Icon: "✨", Animation: "swirl-special"},
	{
		Name: "ELITE", Min: 15000, Max: math.MaxInt,
		BadgeColors: []string{"#ff6ec4", "#7873f5", "#45d4ff"}, Icon: "👑", Animation: "swirl-elite",
		Description: "Awarded to the Top 250 players in the world.",
	},
}

// RankFor returns the first rank whose range contains xp, or the last rank
// when none does.
func RankFor(xp int) Rank {
	for _, r := range Ranks {
		if xp >= r.Min && xp <= r.Max {
			return r
		}
	}
	return Ranks[len(Ranks)-1]
}

// NextRank returns the rank after the one xp falls in. ok is false at the top.
func NextRank(xp int) (next Rank, ok bool) {
	cur := RankFor(xp)
	for i, r := range Ranks {
		if r.Name == cur.Name && i+1 < len(Ranks) {
			return Ranks[i+1], true
		}
	}
	return Rank{}, false
}

// XPToNextRank is how much XP is missing to reach the next rank (0 at the top).
func XPToNextRank(xp int) int {
	next, ok := NextRank(xp)
	if !ok {
		return 0
	}
	if d := next.Min - xp; d > 0 {
		return d
	}
	return 0
}

// RankProgress is the fraction [0,1] of the current rank's range already covered.
func RankProgress(xp int) float64 {
	cur := RankFor(xp)
	next, ok := NextRank(xp)
	if !ok {
		return 1
	}
	span := next.Min - cur.Min
	if span <= 0 {
		return 1
	}
	p := float64(xp-cur.Min) / float64(span)
	return math.Max(0, math.Min(1, p))
}
