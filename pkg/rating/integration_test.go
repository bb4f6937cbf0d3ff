package rating

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// End-to-end scenarios exercising the full calculation pipeline the way the
// match-recording workflow drives it: parse the score, infer the format, run
// the calculator, compose the format weighting at the call site.

func TestFreshPairingAtEqualStrength(t *testing.T) {
	engine := createTestEngine()

	winner := createPlayer("anna", 1200, 20)
	loser := createPlayer("boris", 1200, 20)

	result, err := engine.CalculateMatch(winner, loser, nil, nil)
	require.NoError(t, err)

	assert.Positive(t, result.Winner.Delta)
	assert.Negative(t, result.Loser.Delta)

	// The new-opponent bonus applies symmetrically, so the deviation from
	// zero-sum stays small.
	assert.Less(t, math.Abs(float64(result.Winner.Delta+result.Loser.Delta)), 10.0)

	// Both sides got the bonus and nothing else
	for _, change := range []Change{result.Winner, result.Loser} {
		require.Len(t, change.Modifiers.Details, 1)
		assert.Equal(t, ModifierNewOpponent, change.Modifiers.Details[0].Kind)
		assert.InDelta(t, 1.15, change.Modifiers.Total, tolerance)
	}
}

func TestUpsetWin(t *testing.T) {
	engine := createTestEngine()

	winner := createPlayer("carla", 1200, 20)
	loser := createPlayer("dmitri", 1400, 20)

	result, err := engine.CalculateMatch(winner, loser, nil, nil)
	require.NoError(t, err)

	assert.Contains(t, modifierKinds(result.Winner.Modifiers), ModifierUpset)
	assert.NotContains(t, modifierKinds(result.Loser.Modifiers), ModifierUpset)

	// New opponent (1.15) stacked with the upset bonus (1.20)
	assert.InDelta(t, 1.38, result.Winner.Modifiers.Total, tolerance)

	// The underdog gains more than they would without the bonuses
	plain := engine.NewRating(1200, result.Winner.KFactor, result.Winner.ExpectedScore, 1, 1.0)
	assert.Greater(t, result.Winner.RatingAfter, plain)
}

func TestScoreDrivenCalculation(t *testing.T) {
	engine := createTestEngine()

	winner := createPlayer("elena", 1350, 40)
	loser := createPlayer("fedor", 1280, 40)

	score := "6-4 3-6 10-8"
	format := InferFormat(score)
	require.Equal(t, FormatTwoSetsSuperTiebreak, format)

	winnerGames, loserGames := ParseGames(score, "elena", "elena")
	assert.Equal(t, 19, winnerGames)
	assert.Equal(t, 18, loserGames)

	result, err := engine.CalculateMatch(winner, loser, nil, nil)
	require.NoError(t, err)

	// Call-site composition: gameplay modifiers times format weighting
	combined := CombinedModifier(result.Winner.Modifiers, format, winnerGames, loserGames)
	weighted := engine.NewRating(winner.Rating, result.Winner.KFactor, result.Winner.ExpectedScore, 1, combined)

	// A one-game margin in a shortened format damps the swing
	assert.Less(t, weighted-winner.Rating, result.Winner.Delta)
	assert.Greater(t, weighted, winner.Rating)
}

func TestBusyWeekAgainstFamiliarOpponent(t *testing.T) {
	engine := createTestEngine()

	player := createPlayer("greta", 1500, 60)
	opponent := createPlayer("henrik", 1450, 55)

	history := []HistoryEntry{
		{OpponentID: "henrik", PlayedAt: testNow.Add(-2 * 24 * time.Hour), WinnerID: "henrik"},
		{OpponentID: "henrik", PlayedAt: testNow.Add(-4 * 24 * time.Hour), WinnerID: "greta"},
		{OpponentID: "ivan", PlayedAt: testNow.Add(-3 * 24 * time.Hour), WinnerID: "greta"},
		{OpponentID: "jana", PlayedAt: testNow.Add(-5 * 24 * time.Hour), WinnerID: "jana"},
	}

	result, err := engine.CalculateMatch(player, opponent, history, nil)
	require.NoError(t, err)

	kinds := modifierKinds(result.Winner.Modifiers)
	assert.Contains(t, kinds, ModifierRepetition)
	assert.Contains(t, kinds, ModifierWeeklyDiversity)
	assert.NotContains(t, kinds, ModifierNewOpponent)

	// 0.90 repetition times 1.10 diversity
	assert.InDelta(t, 0.99, result.Winner.Modifiers.Total, tolerance)
}

func TestRatingsStayBoundedOverALongStreak(t *testing.T) {
	engine := createTestEngine()

	// A dominant player winning repeatedly against the same pool never
	// escapes the upper bound.
	champion := createPlayer("kira", 2960, 300)
	challenger := createPlayer("lev", 2800, 250)

	for i := 0; i < 20; i++ {
		result, err := engine.CalculateMatch(champion, challenger, nil, nil)
		require.NoError(t, err)

		assert.LessOrEqual(t, result.Winner.RatingAfter, engine.Config.MaxRating)
		assert.GreaterOrEqual(t, result.Loser.RatingAfter, engine.Config.MinRating)

		champion.Rating = result.Winner.RatingAfter
		champion.MatchesPlayed++
		challenger.Rating = result.Loser.RatingAfter
		challenger.MatchesPlayed++
	}

	assert.Equal(t, engine.Config.MaxRating, champion.Rating)
	assert.GreaterOrEqual(t, challenger.Rating, engine.Config.MinRating)
}
