package rating

// MatchFormat identifies how a match was structured. Shorter formats carry
// less signal about relative skill and are weighted down accordingly.
type MatchFormat string

// Supported match formats
const (
	FormatOneSet               MatchFormat = "one_set"
	FormatTwoSets              MatchFormat = "two_sets"
	FormatTwoSetsSuperTiebreak MatchFormat = "two_sets_super_tiebreak"
	FormatThreeSets            MatchFormat = "three_sets"
	FormatSuperTiebreakOnly    MatchFormat = "super_tiebreak_only"
)

// FormatInfo describes one match format for display and weighting.
type FormatInfo struct {
	Coefficient float64 // Weighting applied to the rating delta
	Label       string  // Short display label
	Description string  // Why the format is weighted this way
}

// formatTable is the static per-format weighting lookup.
var formatTable = map[MatchFormat]FormatInfo{
	FormatOneSet: {
		Coefficient: 0.5,
		Label:       "One set",
		Description: "single set, high variance from a short sample",
	},
	FormatTwoSets: {
		Coefficient: 0.8,
		Label:       "Two sets",
		Description: "standard amateur format",
	},
	FormatTwoSetsSuperTiebreak: {
		Coefficient: 0.85,
		Label:       "Two sets + super tiebreak",
		Description: "third-set tiebreak still decisive",
	},
	FormatThreeSets: {
		Coefficient: 1.0,
		Label:       "Three sets",
		Description: "full match, maximal signal",
	},
	FormatSuperTiebreakOnly: {
		Coefficient: 0.3,
		Label:       "Super tiebreak only",
		Description: "very short format, mostly noise",
	},
}

// Formats returns all match formats in display order.
func Formats() []MatchFormat {
	return []MatchFormat{
		FormatOneSet,
		FormatTwoSets,
		FormatTwoSetsSuperTiebreak,
		FormatThreeSets,
		FormatSuperTiebreakOnly,
	}
}

// Valid reports whether the format is one of the supported values.
func (f MatchFormat) Valid() bool {
	_, ok := formatTable[f]
	return ok
}

// Info returns the display and weighting details for the format. Unknown
// formats report the FormatTwoSets entry, matching the parser's fallback.
func (f MatchFormat) Info() FormatInfo {
	if info, ok := formatTable[f]; ok {
		return info
	}
	return formatTable[FormatTwoSets]
}

// Coefficient returns the weighting coefficient for the format.
func (f MatchFormat) Coefficient() float64 {
	return f.Info().Coefficient
}

// Label returns the short display label for the format.
func (f MatchFormat) Label() string {
	return f.Info().Label
}

// MarginModifier scales confidence in a result by how lopsided it was.
// winnerUnits and loserUnits are total games for set-based formats and points
// for a lone super tiebreak. The result always lies in [0.90, 1.15].
func MarginModifier(winnerUnits, loserUnits int, format MatchFormat) float64 {
	diff := winnerUnits - loserUnits
	if diff < 0 {
		diff = -diff
	}

	if format == FormatSuperTiebreakOnly {
		switch {
		case diff >= 5:
			return 1.10
		case diff >= 3:
			return 1.05
		case diff <= 2:
			return 0.95
		default:
			return 1.0
		}
	}

	switch {
	case diff >= 5:
		return 1.15
	case diff >= 3:
		return 1.05
	case diff <= 1:
		return 0.90
	default:
		return 1.0
	}
}

// CombinedModifier composes the gameplay modifiers with the format
// coefficient and margin modifier. CalculateMatch applies only the gameplay
// modifiers on its own; callers who want format-weighted deltas compose the
// three factors explicitly through this helper and pass the product to
// NewRating, keeping each piece independently testable.
func CombinedModifier(gameplay Breakdown, format MatchFormat, winnerUnits, loserUnits int) float64 {
	return gameplay.Total * format.Coefficient() * MarginModifier(winnerUnits, loserUnits, format)
}
