// Package data provides configuration management and file plumbing for the
// courtelo command-line tool. It handles rating-engine tuning, CSV input
// parsing options and export settings with validation, YAML files and
// environment variable support. The rating engine itself stays pure; this
// package only feeds it and carries its results to disk.
package data

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/courtelo/courtelo/pkg/rating"
)

// Error types for configuration validation
var (
	ErrInvalidRatingConfig = errors.New("invalid rating configuration")
	ErrInvalidExportConfig = errors.New("invalid export configuration")
	ErrInvalidUIConfig     = errors.New("invalid UI configuration")
	ErrConfigNotFound      = errors.New("configuration file not found")
	ErrConfigParse         = errors.New("failed to parse configuration file")
)

// AppConfig is the top-level configuration for the courtelo tool
type AppConfig struct {
	Rating RatingConfig `yaml:"rating"`
	Export ExportConfig `yaml:"export"`
	UI     UIConfig     `yaml:"ui"`
}

// RatingConfig holds engine tuning values in file-friendly units (windows are
// whole days). Use EngineConfig to convert for the rating package.
type RatingConfig struct {
	MinRating int `yaml:"min_rating"` // Lower rating bound (default 100)
	MaxRating int `yaml:"max_rating"` // Upper rating bound (default 3000)

	HighRatingThreshold int `yaml:"high_rating_threshold"` // Rating for the low-K bucket (default 1800)
	HighRatingK         int `yaml:"high_rating_k"`         // K for high-rated players (default 16)
	NewPlayerMatches    int `yaml:"new_player_matches"`    // Matches below which a player is new (default 10)
	NewPlayerK          int `yaml:"new_player_k"`          // K for new players (default 40)
	IntermediateMatches int `yaml:"intermediate_matches"`  // Matches below which a player is intermediate (default 30)
	IntermediateK       int `yaml:"intermediate_k"`        // K for intermediate players (default 32)
	EstablishedK        int `yaml:"established_k"`         // K for established players (default 24)

	NewOpponentBonus      float64 `yaml:"new_opponent_bonus"`      // First-time pairing multiplier (default 1.15)
	RepetitionStep        float64 `yaml:"repetition_step"`         // Penalty per recent rematch (default 0.05)
	RepetitionFloor       float64 `yaml:"repetition_floor"`        // Lowest repetition multiplier (default 0.70)
	RepetitionWindowDays  int     `yaml:"repetition_window_days"`  // Rematch lookback (default 30)
	UpsetBonus            float64 `yaml:"upset_bonus"`             // Upset win multiplier (default 1.20)
	UpsetGap              int     `yaml:"upset_gap"`               // Rating gap for an upset (default 100)
	DiversityBonus        float64 `yaml:"diversity_bonus"`         // Varied-week multiplier (default 1.10)
	DiversityWindowDays   int     `yaml:"diversity_window_days"`   // Distinct-opponent lookback (default 7)
	DiversityMinOpponents int     `yaml:"diversity_min_opponents"` // Distinct opponents for the bonus (default 3)
}

// ExportConfig holds output format settings
type ExportConfig struct {
	Format           string `yaml:"format"`            // Output format (csv/json/yaml)
	IncludeModifiers bool   `yaml:"include_modifiers"` // Include the modifier breakdown per player
	RoundDecimals    int    `yaml:"round_decimals"`    // Decimal places for probabilities
}

// UIConfig holds terminal interface preferences
type UIConfig struct {
	ShowBreakdown bool   `yaml:"show_breakdown"` // Display per-rule modifier details
	DefaultFormat string `yaml:"default_format"` // Match format assumed when none is given or inferable
}

// DefaultAppConfig returns a configuration with the reference engine tuning
// and sensible tool defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Rating: DefaultRatingConfig(),
		Export: DefaultExportConfig(),
		UI:     DefaultUIConfig(),
	}
}

// DefaultRatingConfig returns the reference engine tuning values.
func DefaultRatingConfig() RatingConfig {
	return RatingConfig{
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
		RepetitionWindowDays:  30,
		UpsetBonus:            1.20,
		UpsetGap:              100,
		DiversityBonus:        1.10,
		DiversityWindowDays:   7,
		DiversityMinOpponents: 3,
	}
}

// DefaultExportConfig returns export format defaults
func DefaultExportConfig() ExportConfig {
	return ExportConfig{
		Format:           "csv",
		IncludeModifiers: true,
		RoundDecimals:    2,
	}
}

// DefaultUIConfig returns terminal interface defaults
func DefaultUIConfig() UIConfig {
	return UIConfig{
		ShowBreakdown: true,
		DefaultFormat: string(rating.FormatTwoSets),
	}
}

// EngineConfig converts the file-friendly tuning values into the rating
// package's configuration.
func (r RatingConfig) EngineConfig() rating.Config {
	return rating.Config{
		MinRating:             r.MinRating,
		MaxRating:             r.MaxRating,
		HighRatingThreshold:   r.HighRatingThreshold,
		HighRatingK:           r.HighRatingK,
		NewPlayerMatches:      r.NewPlayerMatches,
		NewPlayerK:            r.NewPlayerK,
		IntermediateMatches:   r.IntermediateMatches,
		IntermediateK:         r.IntermediateK,
		EstablishedK:          r.EstablishedK,
		NewOpponentBonus:      r.NewOpponentBonus,
		RepetitionStep:        r.RepetitionStep,
		RepetitionFloor:       r.RepetitionFloor,
		RepetitionWindow:      time.Duration(r.RepetitionWindowDays) * 24 * time.Hour,
		UpsetBonus:            r.UpsetBonus,
		UpsetGap:              r.UpsetGap,
		DiversityBonus:        r.DiversityBonus,
		DiversityWindow:       time.Duration(r.DiversityWindowDays) * 24 * time.Hour,
		DiversityMinOpponents: r.DiversityMinOpponents,
	}
}

// Validate checks that the whole application configuration is valid
func (c *AppConfig) Validate() error {
	if err := c.Rating.Validate(); err != nil {
		return fmt.Errorf("rating config validation failed: %w", err)
	}
	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("export config validation failed: %w", err)
	}
	if err := c.UI.Validate(); err != nil {
		return fmt.Errorf("UI config validation failed: %w", err)
	}
	return nil
}

// Validate checks that rating tuning is valid
func (r *RatingConfig) Validate() error {
	if r.MinRating >= r.MaxRating {
		return fmt.Errorf("%w: min_rating (%d) must be less than max_rating (%d)", ErrInvalidRatingConfig, r.MinRating, r.MaxRating)
	}

	kFactors := []struct {
		name  string
		value int
	}{
		{"high_rating_k", r.HighRatingK},
		{"new_player_k", r.NewPlayerK},
		{"intermediate_k", r.IntermediateK},
		{"established_k", r.EstablishedK},
	}
	for _, k := range kFactors {
		if k.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidRatingConfig, k.name, k.value)
		}
		if k.value > 100 {
			return fmt.Errorf("%w: %s %d is unusually high (typical range: 10-50)", ErrInvalidRatingConfig, k.name, k.value)
		}
	}

	if r.NewPlayerMatches >= r.IntermediateMatches {
		return fmt.Errorf("%w: new_player_matches (%d) must be below intermediate_matches (%d)",
			ErrInvalidRatingConfig, r.NewPlayerMatches, r.IntermediateMatches)
	}

	bonuses := []struct {
		name  string
		value float64
	}{
		{"new_opponent_bonus", r.NewOpponentBonus},
		{"upset_bonus", r.UpsetBonus},
		{"diversity_bonus", r.DiversityBonus},
	}
	for _, b := range bonuses {
		if b.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %.2f", ErrInvalidRatingConfig, b.name, b.value)
		}
	}

	if r.RepetitionFloor <= 0 || r.RepetitionFloor > 1 {
		return fmt.Errorf("%w: repetition_floor (%.2f) must be in (0, 1]", ErrInvalidRatingConfig, r.RepetitionFloor)
	}
	if r.RepetitionStep < 0 {
		return fmt.Errorf("%w: repetition_step must not be negative, got %.2f", ErrInvalidRatingConfig, r.RepetitionStep)
	}
	if r.RepetitionWindowDays <= 0 || r.DiversityWindowDays <= 0 {
		return fmt.Errorf("%w: modifier windows must be positive", ErrInvalidRatingConfig)
	}
	if r.UpsetGap <= 0 {
		return fmt.Errorf("%w: upset_gap must be positive, got %d", ErrInvalidRatingConfig, r.UpsetGap)
	}
	if r.DiversityMinOpponents <= 0 {
		return fmt.Errorf("%w: diversity_min_opponents must be positive, got %d", ErrInvalidRatingConfig, r.DiversityMinOpponents)
	}

	return nil
}

// Validate checks that export configuration is valid
func (e *ExportConfig) Validate() error {
	validFormats := map[string]bool{
		"csv":  true,
		"json": true,
		"yaml": true,
	}
	if !validFormats[e.Format] {
		return fmt.Errorf("%w: format '%s' must be one of: csv, json, yaml", ErrInvalidExportConfig, e.Format)
	}

	if e.RoundDecimals < 0 || e.RoundDecimals > 10 {
		return fmt.Errorf("%w: round_decimals %d must be between 0 and 10", ErrInvalidExportConfig, e.RoundDecimals)
	}

	return nil
}

// Validate checks that UI configuration is valid
func (u *UIConfig) Validate() error {
	if !rating.MatchFormat(u.DefaultFormat).Valid() {
		return fmt.Errorf("%w: default_format '%s' is not a known match format", ErrInvalidUIConfig, u.DefaultFormat)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) (*AppConfig, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, filename)
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	var config AppConfig
	if err := yaml.Unmarshal(raw, &config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, filename, err)
	}

	config = mergeWithDefaults(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", filename, err)
	}

	return &config, nil
}

// LoadWithEnvironment loads configuration from file and applies environment
// variable overrides on top.
func LoadWithEnvironment(filename string) (*AppConfig, error) {
	config := DefaultAppConfig()

	if filename != "" {
		fileConfig, err := LoadFromFile(filename)
		if err != nil && !errors.Is(err, ErrConfigNotFound) {
			return nil, err
		}
		if err == nil {
			config = *fileConfig
		}
	}

	applyEnvironmentOverrides(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid final configuration: %w", err)
	}

	return &config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *AppConfig) SaveToFile(filename string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, raw, 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", filename, err)
	}

	return nil
}

// mergeWithDefaults fills in missing values with defaults. Zero is not a
// meaningful value for any of these fields, so it marks absence.
func mergeWithDefaults(config AppConfig) AppConfig {
	defaults := DefaultAppConfig()

	if config.Rating.MaxRating == 0 {
		config.Rating.MaxRating = defaults.Rating.MaxRating
	}
	if config.Rating.MinRating == 0 {
		config.Rating.MinRating = defaults.Rating.MinRating
	}
	if config.Rating.HighRatingThreshold == 0 {
		config.Rating.HighRatingThreshold = defaults.Rating.HighRatingThreshold
	}
	if config.Rating.HighRatingK == 0 {
		config.Rating.HighRatingK = defaults.Rating.HighRatingK
	}
	if config.Rating.NewPlayerMatches == 0 {
		config.Rating.NewPlayerMatches = defaults.Rating.NewPlayerMatches
	}
	if config.Rating.NewPlayerK == 0 {
		config.Rating.NewPlayerK = defaults.Rating.NewPlayerK
	}
	if config.Rating.IntermediateMatches == 0 {
		config.Rating.IntermediateMatches = defaults.Rating.IntermediateMatches
	}
	if config.Rating.IntermediateK == 0 {
		config.Rating.IntermediateK = defaults.Rating.IntermediateK
	}
	if config.Rating.EstablishedK == 0 {
		config.Rating.EstablishedK = defaults.Rating.EstablishedK
	}
	if config.Rating.NewOpponentBonus == 0 {
		config.Rating.NewOpponentBonus = defaults.Rating.NewOpponentBonus
	}
	if config.Rating.RepetitionStep == 0 {
		config.Rating.RepetitionStep = defaults.Rating.RepetitionStep
	}
	if config.Rating.RepetitionFloor == 0 {
		config.Rating.RepetitionFloor = defaults.Rating.RepetitionFloor
	}
	if config.Rating.RepetitionWindowDays == 0 {
		config.Rating.RepetitionWindowDays = defaults.Rating.RepetitionWindowDays
	}
	if config.Rating.UpsetBonus == 0 {
		config.Rating.UpsetBonus = defaults.Rating.UpsetBonus
	}
	if config.Rating.UpsetGap == 0 {
		config.Rating.UpsetGap = defaults.Rating.UpsetGap
	}
	if config.Rating.DiversityBonus == 0 {
		config.Rating.DiversityBonus = defaults.Rating.DiversityBonus
	}
	if config.Rating.DiversityWindowDays == 0 {
		config.Rating.DiversityWindowDays = defaults.Rating.DiversityWindowDays
	}
	if config.Rating.DiversityMinOpponents == 0 {
		config.Rating.DiversityMinOpponents = defaults.Rating.DiversityMinOpponents
	}

	if config.Export.Format == "" {
		config.Export.Format = defaults.Export.Format
	}
	if config.UI.DefaultFormat == "" {
		config.UI.DefaultFormat = defaults.UI.DefaultFormat
	}

	return config
}

// applyEnvironmentOverrides applies COURTELO_* environment variable overrides
func applyEnvironmentOverrides(config *AppConfig) {
	// Rating tuning overrides
	intOverrides := []struct {
		env    string
		target *int
	}{
		{"COURTELO_RATING_MIN", &config.Rating.MinRating},
		{"COURTELO_RATING_MAX", &config.Rating.MaxRating},
		{"COURTELO_RATING_HIGH_THRESHOLD", &config.Rating.HighRatingThreshold},
		{"COURTELO_RATING_HIGH_K", &config.Rating.HighRatingK},
		{"COURTELO_RATING_NEW_PLAYER_MATCHES", &config.Rating.NewPlayerMatches},
		{"COURTELO_RATING_NEW_PLAYER_K", &config.Rating.NewPlayerK},
		{"COURTELO_RATING_INTERMEDIATE_MATCHES", &config.Rating.IntermediateMatches},
		{"COURTELO_RATING_INTERMEDIATE_K", &config.Rating.IntermediateK},
		{"COURTELO_RATING_ESTABLISHED_K", &config.Rating.EstablishedK},
		{"COURTELO_RATING_UPSET_GAP", &config.Rating.UpsetGap},
		{"COURTELO_RATING_REPETITION_WINDOW_DAYS", &config.Rating.RepetitionWindowDays},
		{"COURTELO_RATING_DIVERSITY_WINDOW_DAYS", &config.Rating.DiversityWindowDays},
		{"COURTELO_RATING_DIVERSITY_MIN_OPPONENTS", &config.Rating.DiversityMinOpponents},
		{"COURTELO_EXPORT_ROUND_DECIMALS", &config.Export.RoundDecimals},
	}
	for _, o := range intOverrides {
		if val := os.Getenv(o.env); val != "" {
			if parsed, err := strconv.Atoi(val); err == nil {
				*o.target = parsed
			}
		}
	}

	floatOverrides := []struct {
		env    string
		target *float64
	}{
		{"COURTELO_RATING_NEW_OPPONENT_BONUS", &config.Rating.NewOpponentBonus},
		{"COURTELO_RATING_REPETITION_STEP", &config.Rating.RepetitionStep},
		{"COURTELO_RATING_REPETITION_FLOOR", &config.Rating.RepetitionFloor},
		{"COURTELO_RATING_UPSET_BONUS", &config.Rating.UpsetBonus},
		{"COURTELO_RATING_DIVERSITY_BONUS", &config.Rating.DiversityBonus},
	}
	for _, o := range floatOverrides {
		if val := os.Getenv(o.env); val != "" {
			if parsed, err := strconv.ParseFloat(val, 64); err == nil {
				*o.target = parsed
			}
		}
	}

	// Export and UI overrides
	if val := os.Getenv("COURTELO_EXPORT_FORMAT"); val != "" {
		config.Export.Format = val
	}
	if val := os.Getenv("COURTELO_EXPORT_INCLUDE_MODIFIERS"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.Export.IncludeModifiers = parsed
		}
	}
	if val := os.Getenv("COURTELO_UI_SHOW_BREAKDOWN"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.UI.ShowBreakdown = parsed
		}
	}
	if val := os.Getenv("COURTELO_UI_DEFAULT_FORMAT"); val != "" {
		config.UI.DefaultFormat = val
	}
}
