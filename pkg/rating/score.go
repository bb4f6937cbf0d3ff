package rating

import (
	"strconv"
	"strings"
)

// Tennis scores arrive as user-typed free text ("6-4 6-3", "10-7"), so
// parsing is lenient by design: malformed tokens contribute zero and format
// inference always terminates with a concrete MatchFormat.

// setToken is one parsed "W-L" pair from a score string.
type setToken struct {
	first  int
	second int
}

// splitScore tokenizes a score string on whitespace and commas.
func splitScore(score string) []string {
	return strings.FieldsFunc(score, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ','
	})
}

// parseSetToken parses a single "<int>-<int>" token. Malformed tokens are
// reported as not ok and otherwise ignored.
func parseSetToken(token string) (setToken, bool) {
	parts := strings.Split(token, "-")
	if len(parts) != 2 {
		return setToken{}, false
	}
	first, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return setToken{}, false
	}
	second, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return setToken{}, false
	}
	if first < 0 || second < 0 {
		return setToken{}, false
	}
	return setToken{first: first, second: second}, true
}

// ParseGames sums the games won by each side across all well-formed set
// tokens of a score string, written from player1's perspective, and returns
// them as winner/loser totals by comparing winnerID to player1ID.
func ParseGames(score, winnerID, player1ID string) (winnerGames, loserGames int) {
	var player1Games, player2Games int
	for _, token := range splitScore(score) {
		set, ok := parseSetToken(token)
		if !ok {
			continue
		}
		player1Games += set.first
		player2Games += set.second
	}

	if winnerID == player1ID {
		return player1Games, player2Games
	}
	return player2Games, player1Games
}

// looksLikeSuperTiebreak reports whether a set token reads as a finished race
// to ten: either side has reached double digits with the win-by-two margin.
func looksLikeSuperTiebreak(set setToken) bool {
	if set.first < 10 && set.second < 10 {
		return false
	}
	diff := set.first - set.second
	if diff < 0 {
		diff = -diff
	}
	return diff >= 2
}

// InferFormat guesses the probable match format from a score string when the
// caller did not supply one explicitly. Unrecognized shapes fall back to
// FormatTwoSets rather than erroring.
func InferFormat(score string) MatchFormat {
	tokens := splitScore(score)

	switch len(tokens) {
	case 1:
		if set, ok := parseSetToken(tokens[0]); ok && looksLikeSuperTiebreak(set) {
			return FormatSuperTiebreakOnly
		}
		return FormatOneSet
	case 3:
		if set, ok := parseSetToken(tokens[2]); ok && looksLikeSuperTiebreak(set) {
			return FormatTwoSetsSuperTiebreak
		}
		return FormatThreeSets
	case 2:
		return FormatTwoSets
	default:
		return FormatTwoSets
	}
}

// IsValidSuperTiebreakScore validates a single "W-L" token as a finished
// super tiebreak: the winner reached at least ten with a margin of at least
// two, and a tiebreak won exactly at ten cannot have passed through 10-9.
func IsValidSuperTiebreakScore(score string) bool {
	tokens := splitScore(score)
	if len(tokens) != 1 {
		return false
	}
	set, ok := parseSetToken(tokens[0])
	if !ok {
		return false
	}

	winner, loser := set.first, set.second
	if loser > winner {
		winner, loser = loser, winner
	}

	if winner < 10 || winner-loser < 2 {
		return false
	}
	if winner == 10 && loser > 8 {
		return false
	}
	return true
}
