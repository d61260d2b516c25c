package domain

import "math"

// Rank is the character rank awarded for an overall profile score.
type Rank struct {
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Rank  string `json:"rank"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// Ranks lists the score bands in ascending order. They cover 0..100 without gaps.
var Ranks = []Rank{
	{Min: 0, Max: 20, Rank: "Rookie", Title: "Just starting the journey", Icon: "👶"},
	{Min: 21, Max: 40, Rank: "Sidekick", Title: "Learning the ropes", Icon: "🧒"},
	{Min: 41, Max: 60, Rank: "Vigilante", Title: "Making a difference", Icon: "🦸‍♂️"},
	{Min: 61, Max: 80, Rank: "Hero", Title: "A force to be reckoned with", Icon: "⚡"},
	{Min: 81, Max: 100, Rank: "Legend", Title: "The stuff of legends", Icon: "🔱"},
}

// RankForScore returns the rank for a score. The score is rounded and clamped to 0..100 first.
func RankForScore(score float64) Rank {
	if math.IsNaN(score) {
		return Ranks[0]
	}
	s := int(math.Round(math.Max(0, math.Min(100, score))))
	for _, r := range Ranks {
		if s >= r.Min && s <= r.Max {
			return r
		}
	}
	return Ranks[0]
}
