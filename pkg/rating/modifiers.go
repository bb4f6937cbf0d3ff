package rating

import (
	"fmt"
	"math"
	"time"
)

// ModifierKind identifies one gameplay adjustment rule.
type ModifierKind string

// Supported modifier kinds
const (
	ModifierNewOpponent     ModifierKind = "new_opponent"     // First-ever pairing bonus
	ModifierRepetition      ModifierKind = "repetition"       // Recent rematch penalty
	ModifierUpset           ModifierKind = "upset"            // Win against a stronger opponent
	ModifierWeeklyDiversity ModifierKind = "weekly_diversity" // Varied opponents this week
)

// Modifier is one applied adjustment. Order of application does not affect
// the product; it determines display order only.
type Modifier struct {
	Kind        ModifierKind // Which rule fired
	Value       float64      // Positive multiplier
	Description string       // Human-readable explanation for display/audit
}

// Breakdown is the composite result of the gameplay modifier rules.
type Breakdown struct {
	Total   float64    // Product of all applied multipliers, rounded to 2 decimals; 1.0 if none apply
	Details []Modifier // Applied rules in evaluation order
}

// Modifiers evaluates the four gameplay rules for one player against one
// opponent. The rules fire independently except for the first two: a player
// who has ever faced this opponent is not "new" to them, regardless of how
// long ago they played, while the repetition penalty only counts rematches
// inside the repetition window. A pairing last played outside the window
// therefore receives neither rule, which is the intended behavior.
func (e *Engine) Modifiers(playerRating int, opponentID string, opponentRating int, history []HistoryEntry, won bool, now time.Time) Breakdown {
	var details []Modifier

	if e.neverPlayed(opponentID, history) {
		details = append(details, Modifier{
			Kind:        ModifierNewOpponent,
			Value:       e.Config.NewOpponentBonus,
			Description: "first match against this opponent",
		})
	} else if recent := e.recentRematches(opponentID, history, now); recent > 0 {
		value := 1.0 - e.Config.RepetitionStep*float64(recent)
		if value < e.Config.RepetitionFloor {
			value = e.Config.RepetitionFloor
		}
		if value < 1.0 {
			details = append(details, Modifier{
				Kind:        ModifierRepetition,
				Value:       value,
				Description: fmt.Sprintf("%d recent matches against this opponent", recent),
			})
		}
	}

	if won && opponentRating-playerRating >= e.Config.UpsetGap {
		details = append(details, Modifier{
			Kind:        ModifierUpset,
			Value:       e.Config.UpsetBonus,
			Description: fmt.Sprintf("win against an opponent rated %d points higher", opponentRating-playerRating),
		})
	}

	if distinct := e.distinctRecentOpponents(history, now); distinct >= e.Config.DiversityMinOpponents {
		details = append(details, Modifier{
			Kind:        ModifierWeeklyDiversity,
			Value:       e.Config.DiversityBonus,
			Description: fmt.Sprintf("%d distinct opponents this week", distinct),
		})
	}

	total := 1.0
	for _, d := range details {
		total *= d.Value
	}

	return Breakdown{
		Total:   math.Round(total*100) / 100,
		Details: details,
	}
}

// neverPlayed reports whether no history entry mentions the opponent. The
// lookback is unbounded: a single match years ago still disqualifies the
// new-opponent bonus.
func (e *Engine) neverPlayed(opponentID string, history []HistoryEntry) bool {
	for _, entry := range history {
		if entry.OpponentID == opponentID {
			return false
		}
	}
	return true
}

// recentRematches counts matches against the opponent inside the repetition
// window.
func (e *Engine) recentRematches(opponentID string, history []HistoryEntry, now time.Time) int {
	cutoff := now.Add(-e.Config.RepetitionWindow)
	count := 0
	for _, entry := range history {
		if entry.OpponentID == opponentID && !entry.PlayedAt.Before(cutoff) {
			count++
		}
	}
	return count
}

// distinctRecentOpponents counts distinct opponent IDs inside the diversity
// window.
func (e *Engine) distinctRecentOpponents(history []HistoryEntry, now time.Time) int {
	cutoff := now.Add(-e.Config.DiversityWindow)
	seen := make(map[string]bool)
	for _, entry := range history {
		if !entry.PlayedAt.Before(cutoff) {
			seen[entry.OpponentID] = true
		}
	}
	return len(seen)
}
