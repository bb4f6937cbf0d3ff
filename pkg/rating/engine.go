// Package rating provides Elo rating calculations for club tennis matches.
// It implements the standard logistic expected-score model with an
// experience-based dynamic K-factor, a stack of multiplicative gameplay
// modifiers, and match-format weighting. The engine is stateless: every
// function takes immutable value inputs and returns a new value, so it may be
// called concurrently with zero coordination.
package rating

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Error types for validation
var (
	ErrInvalidBounds   = errors.New("min rating must be less than max rating")
	ErrInvalidKFactor  = errors.New("k-factor must be positive")
	ErrInvalidModifier = errors.New("modifier multiplier must be positive")
	ErrInvalidInput    = errors.New("invalid player input")
)

// Player is a snapshot of one side of a match at calculation time. The engine
// never mutates it; the caller derives a new snapshot from the result and
// persists it.
type Player struct {
	ID            string // Opaque player identifier
	Rating        int    // Current Elo rating
	MatchesPlayed int    // Lifetime completed match count
}

// HistoryEntry is one entry in a player's recent-match history, used only for
// modifier lookups. It carries no ratings.
type HistoryEntry struct {
	OpponentID string    // Opponent in that match
	PlayedAt   time.Time // When the match was played
	WinnerID   string    // Winner of that match
}

// Change records the full before/after rating movement for one player.
type Change struct {
	PlayerID      string    // Player being updated
	RatingBefore  int       // Rating before the match
	RatingAfter   int       // Rating after the match, clamped to bounds
	Delta         int       // RatingAfter - RatingBefore (post-clamping)
	KFactor       int       // K-factor used for this update
	ExpectedScore float64   // Logistic win probability against the opponent
	ActualScore   float64   // 1 for the winner, 0 for the loser
	Modifiers     Breakdown // Gameplay modifiers applied to the delta
}

// MatchResult is the atomic output of one match calculation.
type MatchResult struct {
	Winner Change
	Loser  Change
}

// Simulation holds both hypothetical outcomes of an unplayed match.
type Simulation struct {
	IfPlayer1Wins         MatchResult
	IfPlayer2Wins         MatchResult
	Player1WinProbability float64
}

// Config holds tuning parameters for the rating engine. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	MinRating int // Lower rating bound (default 100)
	MaxRating int // Upper rating bound (default 3000)

	// K-factor buckets, evaluated in this priority order
	HighRatingThreshold int // Rating at which the high bucket applies (default 1800)
	HighRatingK         int // K for high-rated players (default 16)
	NewPlayerMatches    int // Matches below which a player is new (default 10)
	NewPlayerK          int // K for new players (default 40)
	IntermediateMatches int // Matches below which a player is intermediate (default 30)
	IntermediateK       int // K for intermediate players (default 32)
	EstablishedK        int // K for established players (default 24)

	// Gameplay modifier tuning
	NewOpponentBonus      float64       // Multiplier for a first-time pairing (default 1.15)
	RepetitionStep        float64       // Penalty per recent rematch (default 0.05)
	RepetitionFloor       float64       // Lowest repetition multiplier (default 0.70)
	RepetitionWindow      time.Duration // Lookback for counting rematches (default 30 days)
	UpsetBonus            float64       // Multiplier for beating a stronger opponent (default 1.20)
	UpsetGap              int           // Rating gap that makes a win an upset (default 100)
	DiversityBonus        float64       // Multiplier for a varied week (default 1.10)
	DiversityWindow       time.Duration // Lookback for distinct opponents (default 7 days)
	DiversityMinOpponents int           // Distinct opponents needed for the bonus (default 3)
}

// DefaultConfig returns the reference tuning values.
func DefaultConfig() Config {
	return Config{
		MinRating:             100,
		MaxRating:             3000,
		HighRatingThreshold:   1800,
		HighRatingK:           16,
		NewPlayerMatches:      10,
		NewPlayerK:            40,
		IntermediateMatches:   30,
		IntermediateK:         32,
		EstablishedK:          24,
		NewOpponentBonus:      1.15,
		RepetitionStep:        0.05,
		RepetitionFloor:       0.70,
		RepetitionWindow:      30 * 24 * time.Hour,
		UpsetBonus:            1.20,
		UpsetGap:              100,
		DiversityBonus:        1.10,
		DiversityWindow:       7 * 24 * time.Hour,
		DiversityMinOpponents: 3,
	}
}

// Engine is the core rating engine with configurable parameters. It holds no
// mutable state across calls.
type Engine struct {
	Config Config

	// Now supplies the reference time for the time-windowed modifier rules.
	// Defaults to time.Now; override in tests for determinism.
	Now func() time.Time
}

// NewEngine creates a rating engine with the specified configuration.
func NewEngine(config Config) (*Engine, error) {
	if config.MinRating >= config.MaxRating {
		return nil, ErrInvalidBounds
	}
	for _, k := range []int{config.HighRatingK, config.NewPlayerK, config.IntermediateK, config.EstablishedK} {
		if k <= 0 {
			return nil, ErrInvalidKFactor
		}
	}
	if config.NewOpponentBonus <= 0 || config.UpsetBonus <= 0 || config.DiversityBonus <= 0 {
		return nil, ErrInvalidModifier
	}
	if config.RepetitionFloor <= 0 || config.RepetitionStep < 0 {
		return nil, ErrInvalidModifier
	}

	return &Engine{
		Config: config,
		Now:    time.Now,
	}, nil
}

// validatePlayer rejects inputs that break the caller contract.
func validatePlayer(p Player) error {
	if p.ID == "" {
		return fmt.Errorf("%w: player id is empty", ErrInvalidInput)
	}
	if p.Rating < 0 {
		return fmt.Errorf("%w: player %s has negative rating %d", ErrInvalidInput, p.ID, p.Rating)
	}
	if p.MatchesPlayed < 0 {
		return fmt.Errorf("%w: player %s has negative match count %d", ErrInvalidInput, p.ID, p.MatchesPlayed)
	}
	return nil
}

// clampRating keeps a rating within configured bounds.
func (e *Engine) clampRating(rating float64) float64 {
	if rating < float64(e.Config.MinRating) {
		return float64(e.Config.MinRating)
	}
	if rating > float64(e.Config.MaxRating) {
		return float64(e.Config.MaxRating)
	}
	return rating
}

// KFactor returns the rating-change ceiling for a player. Buckets are checked
// in priority order: the high-rating bucket wins even for brand-new players.
func (e *Engine) KFactor(p Player) int {
	switch {
	case p.Rating >= e.Config.HighRatingThreshold:
		return e.Config.HighRatingK
	case p.MatchesPlayed < e.Config.NewPlayerMatches:
		return e.Config.NewPlayerK
	case p.MatchesPlayed < e.Config.IntermediateMatches:
		return e.Config.IntermediateK
	default:
		return e.Config.EstablishedK
	}
}

// ExpectedScore computes the logistic win probability of a player rated
// playerRating against an opponent rated opponentRating.
func (e *Engine) ExpectedScore(playerRating, opponentRating int) float64 {
	return 1.0 / (1.0 + math.Pow(10.0, float64(opponentRating-playerRating)/400.0))
}

// NewRating applies one rating update. The delta is computed in full
// precision, then the final rating is rounded and clamped; intermediate values
// are never rounded.
func (e *Engine) NewRating(current, kFactor int, expected, actual, modifier float64) int {
	delta := float64(kFactor) * modifier * (actual - expected)
	return int(math.Round(e.clampRating(float64(current) + delta)))
}

// CalculateMatch runs the full per-match pipeline for both participants of a
// completed match. Gameplay modifiers are applied automatically; the format
// coefficient and margin modifier are not — compose those at the call site
// (see CombinedModifier) before persisting if the match format should weigh in.
func (e *Engine) CalculateMatch(winner, loser Player, winnerHistory, loserHistory []HistoryEntry) (MatchResult, error) {
	if err := validatePlayer(winner); err != nil {
		return MatchResult{}, err
	}
	if err := validatePlayer(loser); err != nil {
		return MatchResult{}, err
	}
	if winner.ID == loser.ID {
		return MatchResult{}, fmt.Errorf("%w: a player cannot play themselves", ErrInvalidInput)
	}

	now := e.Now()

	return MatchResult{
		Winner: e.calculateChange(winner, loser, winnerHistory, true, now),
		Loser:  e.calculateChange(loser, winner, loserHistory, false, now),
	}, nil
}

// calculateChange computes one side of the match symmetrically.
func (e *Engine) calculateChange(p, opponent Player, history []HistoryEntry, won bool, now time.Time) Change {
	kFactor := e.KFactor(p)
	expected := e.ExpectedScore(p.Rating, opponent.Rating)
	modifiers := e.Modifiers(p.Rating, opponent.ID, opponent.Rating, history, won, now)

	actual := 0.0
	if won {
		actual = 1.0
	}

	after := e.NewRating(p.Rating, kFactor, expected, actual, modifiers.Total)

	return Change{
		PlayerID:      p.ID,
		RatingBefore:  p.Rating,
		RatingAfter:   after,
		Delta:         after - p.Rating,
		KFactor:       kFactor,
		ExpectedScore: expected,
		ActualScore:   actual,
		Modifiers:     modifiers,
	}
}

// Simulate previews both hypothetical outcomes of a match between two players.
// It has no side effects and reuses the same primitives as CalculateMatch.
func (e *Engine) Simulate(player1, player2 Player, history1, history2 []HistoryEntry) (Simulation, error) {
	ifPlayer1Wins, err := e.CalculateMatch(player1, player2, history1, history2)
	if err != nil {
		return Simulation{}, err
	}
	ifPlayer2Wins, err := e.CalculateMatch(player2, player1, history2, history1)
	if err != nil {
		return Simulation{}, err
	}

	return Simulation{
		IfPlayer1Wins:         ifPlayer1Wins,
		IfPlayer2Wins:         ifPlayer2Wins,
		Player1WinProbability: e.ExpectedScore(player1.Rating, player2.Rating),
	}, nil
}
