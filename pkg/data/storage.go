// Package data provides CSV input parsing and result export for batch
// calculation. CSV rows are the caller-supplied match snapshots; exports are
// flat result records in CSV, JSON or YAML with atomic writes.
package data

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/courtelo/courtelo/pkg/rating"
)

// Error types for storage operations
var (
	ErrCSVFormat   = errors.New("CSV format error")
	ErrAtomicWrite = errors.New("atomic write operation failed")
)

// matchColumns is the expected CSV header for batch input, in order. The
// trailing format and played_at columns may be omitted.
var matchColumns = []string{
	"winner_id", "winner_rating", "winner_matches",
	"loser_id", "loser_rating", "loser_matches",
	"score", "format", "played_at",
}

// MatchRecord is one completed match read from a batch CSV: both player
// snapshots plus the raw score text. An empty Format is inferred from the
// score downstream.
type MatchRecord struct {
	Winner   rating.Player
	Loser    rating.Player
	Score    string
	Format   rating.MatchFormat
	PlayedAt time.Time
}

// RowError records one skipped input row with its line number.
type RowError struct {
	Line    int    // 1-based line number in the source file
	Message string // What was wrong with the row
}

// ParseResult carries the usable rows and the per-row errors of one CSV
// load. Parsing is lenient: bad rows are reported and skipped, never fatal.
type ParseResult struct {
	Matches []MatchRecord
	Errors  []RowError
}

// LoadMatchesFromCSV reads a batch input file. A header row is required.
func LoadMatchesFromCSV(filename string) (*ParseResult, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Row width is validated per row

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: %s is empty", ErrCSVFormat, filename)
		}
		return nil, fmt.Errorf("%w: failed to read header of %s: %v", ErrCSVFormat, filename, err)
	}
	if err := validateMatchHeader(header); err != nil {
		return nil, err
	}

	result := &ParseResult{}
	line := 1

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, RowError{Line: line, Message: err.Error()})
			continue
		}

		record, err := parseMatchRow(row)
		if err != nil {
			result.Errors = append(result.Errors, RowError{Line: line, Message: err.Error()})
			continue
		}
		result.Matches = append(result.Matches, record)
	}

	return result, nil
}

// validateMatchHeader checks the required leading columns of a batch file.
func validateMatchHeader(header []string) error {
	required := matchColumns[:7]
	if len(header) < len(required) {
		return fmt.Errorf("%w: header has %d columns, need at least %d", ErrCSVFormat, len(header), len(required))
	}
	for i, want := range required {
		got := strings.TrimSpace(strings.ToLower(header[i]))
		if got != want {
			return fmt.Errorf("%w: column %d is %q, want %q", ErrCSVFormat, i+1, header[i], want)
		}
	}
	return nil
}

// parseMatchRow converts one CSV row into a match record.
func parseMatchRow(row []string) (MatchRecord, error) {
	if len(row) < 7 {
		return MatchRecord{}, fmt.Errorf("row has %d columns, need at least 7", len(row))
	}

	winnerRating, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return MatchRecord{}, fmt.Errorf("winner_rating %q is not an integer", row[1])
	}
	winnerMatches, err := strconv.Atoi(strings.TrimSpace(row[2]))
	if err != nil {
		return MatchRecord{}, fmt.Errorf("winner_matches %q is not an integer", row[2])
	}
	loserRating, err := strconv.Atoi(strings.TrimSpace(row[4]))
	if err != nil {
		return MatchRecord{}, fmt.Errorf("loser_rating %q is not an integer", row[4])
	}
	loserMatches, err := strconv.Atoi(strings.TrimSpace(row[5]))
	if err != nil {
		return MatchRecord{}, fmt.Errorf("loser_matches %q is not an integer", row[5])
	}

	record := MatchRecord{
		Winner: rating.Player{
			ID:            strings.TrimSpace(row[0]),
			Rating:        winnerRating,
			MatchesPlayed: winnerMatches,
		},
		Loser: rating.Player{
			ID:            strings.TrimSpace(row[3]),
			Rating:        loserRating,
			MatchesPlayed: loserMatches,
		},
		Score: strings.TrimSpace(row[6]),
	}

	if record.Winner.ID == "" || record.Loser.ID == "" {
		return MatchRecord{}, fmt.Errorf("player ids must not be empty")
	}

	if len(row) > 7 && strings.TrimSpace(row[7]) != "" {
		format := rating.MatchFormat(strings.TrimSpace(row[7]))
		if !format.Valid() {
			return MatchRecord{}, fmt.Errorf("format %q is not a known match format", row[7])
		}
		record.Format = format
	}

	if len(row) > 8 && strings.TrimSpace(row[8]) != "" {
		playedAt, err := time.Parse(time.RFC3339, strings.TrimSpace(row[8]))
		if err != nil {
			return MatchRecord{}, fmt.Errorf("played_at %q is not an RFC 3339 timestamp", row[8])
		}
		record.PlayedAt = playedAt
	}

	return record, nil
}

// historyColumns is the expected CSV header for a player history file. The
// trailing winner_id column may be omitted.
var historyColumns = []string{"opponent_id", "played_at", "winner_id"}

// LoadHistoryFromCSV reads one player's recent-match history for modifier
// lookups: opponent id, RFC 3339 timestamp, optional winner id per row.
func LoadHistoryFromCSV(filename string) ([]rating.HistoryEntry, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: %s is empty", ErrCSVFormat, filename)
		}
		return nil, fmt.Errorf("%w: failed to read header of %s: %v", ErrCSVFormat, filename, err)
	}
	for i, want := range historyColumns[:2] {
		if i >= len(header) || strings.TrimSpace(strings.ToLower(header[i])) != want {
			return nil, fmt.Errorf("%w: history header must start with %q", ErrCSVFormat, historyColumns[:2])
		}
	}

	var entries []rating.HistoryEntry
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d of %s: %v", ErrCSVFormat, line, filename, err)
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: line %d of %s has %d columns, need at least 2", ErrCSVFormat, line, filename, len(row))
		}

		playedAt, err := time.Parse(time.RFC3339, strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d of %s: played_at %q is not an RFC 3339 timestamp", ErrCSVFormat, line, filename, row[1])
		}

		entry := rating.HistoryEntry{
			OpponentID: strings.TrimSpace(row[0]),
			PlayedAt:   playedAt,
		}
		if len(row) > 2 {
			entry.WinnerID = strings.TrimSpace(row[2])
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// Outcome is one flat, export-ready calculation result.
type Outcome struct {
	Score  string `json:"score" yaml:"score"`
	Format string `json:"format" yaml:"format"`

	WinnerID        string  `json:"winner_id" yaml:"winner_id"`
	WinnerBefore    int     `json:"winner_before" yaml:"winner_before"`
	WinnerAfter     int     `json:"winner_after" yaml:"winner_after"`
	WinnerDelta     int     `json:"winner_delta" yaml:"winner_delta"`
	WinnerK         int     `json:"winner_k" yaml:"winner_k"`
	WinnerExpected  float64 `json:"winner_expected" yaml:"winner_expected"`
	WinnerModifiers string  `json:"winner_modifiers,omitempty" yaml:"winner_modifiers,omitempty"`

	LoserID        string  `json:"loser_id" yaml:"loser_id"`
	LoserBefore    int     `json:"loser_before" yaml:"loser_before"`
	LoserAfter     int     `json:"loser_after" yaml:"loser_after"`
	LoserDelta     int     `json:"loser_delta" yaml:"loser_delta"`
	LoserK         int     `json:"loser_k" yaml:"loser_k"`
	LoserExpected  float64 `json:"loser_expected" yaml:"loser_expected"`
	LoserModifiers string  `json:"loser_modifiers,omitempty" yaml:"loser_modifiers,omitempty"`
}

// NewOutcome flattens one match result for export.
func NewOutcome(record MatchRecord, format rating.MatchFormat, result rating.MatchResult, config ExportConfig) Outcome {
	outcome := Outcome{
		Score:          record.Score,
		Format:         string(format),
		WinnerID:       result.Winner.PlayerID,
		WinnerBefore:   result.Winner.RatingBefore,
		WinnerAfter:    result.Winner.RatingAfter,
		WinnerDelta:    result.Winner.Delta,
		WinnerK:        result.Winner.KFactor,
		WinnerExpected: roundTo(result.Winner.ExpectedScore, config.RoundDecimals),
		LoserID:        result.Loser.PlayerID,
		LoserBefore:    result.Loser.RatingBefore,
		LoserAfter:     result.Loser.RatingAfter,
		LoserDelta:     result.Loser.Delta,
		LoserK:         result.Loser.KFactor,
		LoserExpected:  roundTo(result.Loser.ExpectedScore, config.RoundDecimals),
	}

	if config.IncludeModifiers {
		outcome.WinnerModifiers = DescribeModifiers(result.Winner.Modifiers)
		outcome.LoserModifiers = DescribeModifiers(result.Loser.Modifiers)
	}

	return outcome
}

// DescribeModifiers joins the applied rules into one display string.
func DescribeModifiers(b rating.Breakdown) string {
	if len(b.Details) == 0 {
		return ""
	}
	parts := make([]string, 0, len(b.Details))
	for _, d := range b.Details {
		parts = append(parts, fmt.Sprintf("%s x%.2f", d.Kind, d.Value))
	}
	return strings.Join(parts, "; ")
}

// roundTo rounds a non-negative value to the given number of decimal places.
func roundTo(value float64, decimals int) float64 {
	factor := 1.0
	for i := 0; i < decimals; i++ {
		factor *= 10
	}
	return float64(int(value*factor+0.5)) / factor
}

// WriteOutcomes writes calculation results to a file in the configured
// format. Writes are atomic: content lands in a temp file that replaces the
// target only on success.
func WriteOutcomes(outcomes []Outcome, filename string, config ExportConfig) error {
	var raw []byte
	var err error

	switch config.Format {
	case "json":
		raw, err = json.MarshalIndent(outcomes, "", "  ")
	case "yaml":
		raw, err = yaml.Marshal(outcomes)
	case "csv":
		raw, err = marshalOutcomesCSV(outcomes, config)
	default:
		return fmt.Errorf("%w: unsupported export format '%s'", ErrInvalidExportConfig, config.Format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal outcomes: %w", err)
	}

	return writeFileAtomic(filename, raw)
}

// marshalOutcomesCSV renders outcomes as CSV with one row per match.
func marshalOutcomesCSV(outcomes []Outcome, config ExportConfig) ([]byte, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"score", "format",
		"winner_id", "winner_before", "winner_after", "winner_delta", "winner_k", "winner_expected",
		"loser_id", "loser_before", "loser_after", "loser_delta", "loser_k", "loser_expected",
	}
	if config.IncludeModifiers {
		header = append(header, "winner_modifiers", "loser_modifiers")
	}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, o := range outcomes {
		row := []string{
			o.Score, o.Format,
			o.WinnerID,
			strconv.Itoa(o.WinnerBefore),
			strconv.Itoa(o.WinnerAfter),
			strconv.Itoa(o.WinnerDelta),
			strconv.Itoa(o.WinnerK),
			strconv.FormatFloat(o.WinnerExpected, 'f', config.RoundDecimals, 64),
			o.LoserID,
			strconv.Itoa(o.LoserBefore),
			strconv.Itoa(o.LoserAfter),
			strconv.Itoa(o.LoserDelta),
			strconv.Itoa(o.LoserK),
			strconv.FormatFloat(o.LoserExpected, 'f', config.RoundDecimals, 64),
		}
		if config.IncludeModifiers {
			row = append(row, o.WinnerModifiers, o.LoserModifiers)
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// writeFileAtomic writes data through a temp file in the target directory and
// renames it into place.
func writeFileAtomic(filename string, data []byte) error {
	dir := filepath.Dir(filename)

	tmp, err := os.CreateTemp(dir, filepath.Base(filename)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAtomicWrite, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrAtomicWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrAtomicWrite, err)
	}

	if err := os.Rename(tmpName, filename); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", ErrAtomicWrite, err)
	}
	return nil
}
