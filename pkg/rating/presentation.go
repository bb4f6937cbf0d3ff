package rating

import "strconv"

// Presentation helpers: trivial pure formatting functions consumed by the CLI
// and simulator. They carry no rating semantics of their own.

// FormatDelta renders a rating delta with an explicit sign for gains.
func FormatDelta(delta int) string {
	if delta > 0 {
		return "+" + strconv.Itoa(delta)
	}
	return strconv.Itoa(delta)
}

// RankTitle maps a rating to a club ladder title.
func RankTitle(rating int) string {
	switch {
	case rating >= 2400:
		return "Legend"
	case rating >= 2000:
		return "Master"
	case rating >= 1700:
		return "Expert"
	case rating >= 1400:
		return "Advanced"
	case rating >= 1100:
		return "Intermediate"
	case rating >= 800:
		return "Improver"
	default:
		return "Beginner"
	}
}

// Trend classes reported by Trend
const (
	TrendRising  = "rising"
	TrendSteady  = "steady"
	TrendFalling = "falling"
)

// trendThreshold is the net movement, in rating points, below which a run of
// recent deltas reads as steady.
const trendThreshold = 15

// Trend classifies a run of recent rating deltas, most recent last.
func Trend(deltas []int) string {
	net := 0
	for _, d := range deltas {
		net += d
	}
	switch {
	case net > trendThreshold:
		return TrendRising
	case net < -trendThreshold:
		return TrendFalling
	default:
		return TrendSteady
	}
}
