package gamification

import "math"

type Tier struct {
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
	Min   int64  `json:"min_points"`
	Max   int64  `json:"max_points"`
}

// Tiers partitions [0, inf) in ascending order.
var Tiers = []Tier{
	{Name: "Bronze Beginner", Emoji: "🪙", Min: 0, Max: 499},
	{Name: "Silver Saver", Emoji: "💡", Min: 500, Max: 999},
	{Name: "Gold Planner", Emoji: "🏆", Min: 1000, Max: 1999},
	{Name: "Platinum Financier", Emoji: "💳", Min: 2000, Max: 3499},
	{Name: "Diamond Investor", Emoji: "💎", Min: 3500, Max: 5499},
	{Name: "Elite Wealth Master", Emoji: "👑", Min: 5500, Max: 7999},
	{Name: "FinWise Legend", Emoji: "🌟", Min: 8000, Max: math.MaxInt64},
}

func rankIndex(points int64) int {
	for i, t := range Tiers {
		if points >= t.Min && points <= t.Max {
			return i
		}
	}

	return 0
}

// RankOf returns the tier containing points. Negative balances map to the lowest tier.
func RankOf(points int64) Tier {
	return Tiers[rankIndex(points)]
}

type RankProgress struct {
	Next         Tier  `json:"next"`
	PointsToNext int64 `json:"points_to_next"`
	Percent      int   `json:"percent"`
}

// NextRank reports the distance to the following tier, or nil at the top.
func NextRank(points int64) *RankProgress {
	i := rankIndex(points)
	if i == len(Tiers)-1 {
		return nil
	}

	cur, next := Tiers[i], Tiers[i+1]
	gained := max(points-cur.Min, 0)

	return &RankProgress{
		Next:         next,
		PointsToNext: next.Min - points,
		Percent:      int(100 * gained / (next.Min - cur.Min)),
	}
}
