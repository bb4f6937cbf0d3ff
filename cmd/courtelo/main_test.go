// Package main provides integration tests for the courtelo CLI application.
// It tests the subcommands, error handling, and argument validation through
// the same Execute entry points the flag parser uses.
package main

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/courtelo/courtelo/pkg/data"
	"github.com/courtelo/courtelo/pkg/rating"
)

// TestMain sets up and tears down test environment
func TestMain(m *testing.M) {
	testDir, err := os.MkdirTemp("", "courtelo_cli_test")
	if err != nil {
		os.Exit(1)
	}

	oldDir, _ := os.Getwd()
	os.Chdir(testDir)

	code := m.Run()

	os.Chdir(oldDir)
	os.RemoveAll(testDir)

	os.Exit(code)
}

// noConfig returns shared options that skip config file discovery.
func noConfig() ConfigOptions {
	return ConfigOptions{Config: "courtelo.yaml", NoConfig: true}
}

// TestCalcCommand tests the calc subcommand functionality
func TestCalcCommand(t *testing.T) {
	tests := []struct {
		name         string
		cmd          *CalcCommand
		expectError  bool
		expectedCode ErrorCode
	}{
		{
			name: "basic calculation",
			cmd: &CalcCommand{
				Winner: "alice", WinnerRating: 1400, WinnerMatches: 25,
				Loser: "bob", LoserRating: 1350, LoserMatches: 40,
				ConfigOptions: noConfig(),
			},
		},
		{
			name: "score-driven calculation",
			cmd: &CalcCommand{
				Winner: "alice", WinnerRating: 1400, WinnerMatches: 25,
				Loser: "bob", LoserRating: 1350, LoserMatches: 40,
				Score:         "6-4 3-6 10-8",
				ConfigOptions: noConfig(),
			},
		},
		{
			name: "gameplay only skips format weighting",
			cmd: &CalcCommand{
				Winner: "alice", WinnerRating: 1400, WinnerMatches: 25,
				Loser: "bob", LoserRating: 1350, LoserMatches: 40,
				Score: "6-4 6-3", GameplayOnly: true,
				ConfigOptions: noConfig(),
			},
		},
		{
			name: "same player both sides",
			cmd: &CalcCommand{
				Winner: "alice", WinnerRating: 1400,
				Loser: "alice", LoserRating: 1400,
				ConfigOptions: noConfig(),
			},
			expectError:  true,
			expectedCode: ExitCalcError,
		},
		{
			name: "negative rating",
			cmd: &CalcCommand{
				Winner: "alice", WinnerRating: -5,
				Loser: "bob", LoserRating: 1350,
				ConfigOptions: noConfig(),
			},
			expectError:  true,
			expectedCode: ExitCalcError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Execute([]string{})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
					return
				}

				if cliErr, ok := err.(*CLIError); ok {
					if tt.expectedCode != 0 && cliErr.Code != tt.expectedCode {
						t.Errorf("Expected error code %d, got %d", tt.expectedCode, cliErr.Code)
					}
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

// TestCalcCommandExport tests file export from the calc subcommand
func TestCalcCommandExport(t *testing.T) {
	outputFile := "calc_export.csv"
	defer os.Remove(outputFile)

	cmd := &CalcCommand{
		Winner: "alice", WinnerRating: 1400, WinnerMatches: 25,
		Loser: "bob", LoserRating: 1350, LoserMatches: 40,
		Score:         "6-4 6-3",
		Output:        outputFile,
		ConfigOptions: noConfig(),
	}

	if err := cmd.Execute([]string{}); err != nil {
		t.Fatalf("Calc export failed: %v", err)
	}

	file, err := os.Open(outputFile)
	if err != nil {
		t.Fatalf("Expected output file %s was not created: %v", outputFile, err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read exported CSV: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("Expected header plus one row, got %d rows", len(rows))
	}
	if rows[1][2] != "alice" {
		t.Errorf("Expected winner_id alice, got %s", rows[1][2])
	}
}

// TestCalcCommandWithHistory tests history-driven modifier lookups
func TestCalcCommandWithHistory(t *testing.T) {
	historyCSV := "winner_history.csv"
	historyContent := `opponent_id,played_at,winner_id
bob,2026-08-25T18:00:00Z,alice
carol,2026-08-26T18:00:00Z,alice
dave,2026-08-27T18:00:00Z,dave
`
	if err := os.WriteFile(historyCSV, []byte(historyContent), 0644); err != nil {
		t.Fatalf("Failed to create history CSV: %v", err)
	}
	defer os.Remove(historyCSV)

	cmd := &CalcCommand{
		Winner: "alice", WinnerRating: 1400, WinnerMatches: 25,
		Loser: "eve", LoserRating: 1350, LoserMatches: 40,
		WinnerHistory: historyCSV,
		ConfigOptions: noConfig(),
	}
	if err := cmd.Execute([]string{}); err != nil {
		t.Fatalf("Calc with history failed: %v", err)
	}

	badCmd := &CalcCommand{
		Winner: "alice", WinnerRating: 1400,
		Loser: "eve", LoserRating: 1350,
		WinnerHistory: "missing_history.csv",
		ConfigOptions: noConfig(),
	}
	err := badCmd.Execute([]string{})
	if err == nil {
		t.Fatalf("Expected error for missing history file")
	}
	if cliErr, ok := err.(*CLIError); !ok || cliErr.Code != ExitFileError {
		t.Errorf("Expected file error code, got %v", err)
	}
}

// TestSimulateCommand tests the simulate subcommand functionality
func TestSimulateCommand(t *testing.T) {
	tests := []struct {
		name         string
		cmd          *SimulateCommand
		expectError  bool
		expectedCode ErrorCode
	}{
		{
			name: "basic simulation",
			cmd: &SimulateCommand{
				Player1: "alice", Player1Rating: 1400, Player1Matches: 25,
				Player2: "bob", Player2Rating: 1350, Player2Matches: 40,
				ConfigOptions: noConfig(),
			},
		},
		{
			name: "simulation as JSON",
			cmd: &SimulateCommand{
				Player1: "alice", Player1Rating: 1400,
				Player2: "bob", Player2Rating: 1350,
				JSON:          true,
				ConfigOptions: noConfig(),
			},
		},
		{
			name: "empty player id",
			cmd: &SimulateCommand{
				Player1: "", Player1Rating: 1400,
				Player2: "bob", Player2Rating: 1350,
				ConfigOptions: noConfig(),
			},
			expectError:  true,
			expectedCode: ExitCalcError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Execute([]string{})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
					return
				}

				if cliErr, ok := err.(*CLIError); ok {
					if tt.expectedCode != 0 && cliErr.Code != tt.expectedCode {
						t.Errorf("Expected error code %d, got %d", tt.expectedCode, cliErr.Code)
					}
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

// TestBatchCommand tests the batch subcommand functionality
func TestBatchCommand(t *testing.T) {
	testCSV := "batch_test.csv"
	csvContent := `winner_id,winner_rating,winner_matches,loser_id,loser_rating,loser_matches,score
alice,1400,25,bob,1350,40,6-4 6-3
carol,1200,5,dave,1500,60,10-8
`
	if err := os.WriteFile(testCSV, []byte(csvContent), 0644); err != nil {
		t.Fatalf("Failed to create test CSV: %v", err)
	}
	defer os.Remove(testCSV)

	tests := []struct {
		name         string
		cmd          *BatchCommand
		expectError  bool
		expectedCode ErrorCode
		checkFile    string
	}{
		{
			name: "csv batch",
			cmd: &BatchCommand{
				Input:         testCSV,
				Output:        "batch_out.csv",
				ConfigOptions: noConfig(),
			},
			checkFile: "batch_out.csv",
		},
		{
			name: "json batch",
			cmd: &BatchCommand{
				Input:         testCSV,
				Output:        "batch_out.json",
				Format:        "json",
				ConfigOptions: noConfig(),
			},
			checkFile: "batch_out.json",
		},
		{
			name: "non-existent input file",
			cmd: &BatchCommand{
				Input:         "nonexistent.csv",
				ConfigOptions: noConfig(),
			},
			expectError:  true,
			expectedCode: ExitFileError,
		},
		{
			name: "unknown export format",
			cmd: &BatchCommand{
				Input:         testCSV,
				Format:        "xml",
				ConfigOptions: noConfig(),
			},
			expectError:  true,
			expectedCode: ExitConfigError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Execute([]string{})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
					return
				}

				if cliErr, ok := err.(*CLIError); ok {
					if tt.expectedCode != 0 && cliErr.Code != tt.expectedCode {
						t.Errorf("Expected error code %d, got %d", tt.expectedCode, cliErr.Code)
					}
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}

				if tt.checkFile != "" {
					if _, err := os.Stat(tt.checkFile); os.IsNotExist(err) {
						t.Errorf("Expected output file %s was not created", tt.checkFile)
					} else {
						os.Remove(tt.checkFile)
					}
				}
			}
		})
	}
}

// TestFormatsCommand tests the formats subcommand functionality
func TestFormatsCommand(t *testing.T) {
	tests := []struct {
		name string
		cmd  *FormatsCommand
	}{
		{name: "table output", cmd: &FormatsCommand{ConfigOptions: noConfig()}},
		{name: "json output", cmd: &FormatsCommand{JSON: true, ConfigOptions: noConfig()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Execute([]string{}); err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

// TestValidateCommand tests the validate subcommand functionality
func TestValidateCommand(t *testing.T) {
	validCSV := "valid_matches.csv"
	validContent := `winner_id,winner_rating,winner_matches,loser_id,loser_rating,loser_matches,score
alice,1400,25,bob,1350,40,6-4 6-3
`
	invalidCSV := "invalid_matches.csv"
	invalidContent := `player_a,player_b,score
alice,bob,6-4 6-3
`

	if err := os.WriteFile(validCSV, []byte(validContent), 0644); err != nil {
		t.Fatalf("Failed to create valid test CSV: %v", err)
	}
	defer os.Remove(validCSV)

	if err := os.WriteFile(invalidCSV, []byte(invalidContent), 0644); err != nil {
		t.Fatalf("Failed to create invalid test CSV: %v", err)
	}
	defer os.Remove(invalidCSV)

	tests := []struct {
		name         string
		cmd          *ValidateCommand
		expectError  bool
		expectedCode ErrorCode
	}{
		{
			name: "valid CSV file",
			cmd:  &ValidateCommand{Input: validCSV, Preview: 5, ConfigOptions: noConfig()},
		},
		{
			name: "valid score string",
			cmd:  &ValidateCommand{Score: "6-4 3-6 10-8", ConfigOptions: noConfig()},
		},
		{
			name:         "score with no usable tokens",
			cmd:          &ValidateCommand{Score: "retired", ConfigOptions: noConfig()},
			expectError:  true,
			expectedCode: ExitValidationError,
		},
		{
			name:         "neither input nor score",
			cmd:          &ValidateCommand{ConfigOptions: noConfig()},
			expectError:  true,
			expectedCode: ExitUsageError,
		},
		{
			name:         "wrong header",
			cmd:          &ValidateCommand{Input: invalidCSV, ConfigOptions: noConfig()},
			expectError:  true,
			expectedCode: ExitValidationError,
		},
		{
			name:         "non-existent file",
			cmd:          &ValidateCommand{Input: "nonexistent.csv", ConfigOptions: noConfig()},
			expectError:  true,
			expectedCode: ExitFileError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Execute([]string{})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error but got none")
					return
				}

				if cliErr, ok := err.(*CLIError); ok {
					if tt.expectedCode != 0 && cliErr.Code != tt.expectedCode {
						t.Errorf("Expected error code %d, got %d", tt.expectedCode, cliErr.Code)
					}
				}
			} else {
				if err != nil {
					t.Errorf("Expected no error but got: %v", err)
				}
			}
		})
	}
}

// TestInitCommand tests the init subcommand functionality
func TestInitCommand(t *testing.T) {
	configFile := "init_test.yaml"
	defer os.Remove(configFile)

	cmd := &InitCommand{Path: configFile, ConfigOptions: noConfig()}
	if err := cmd.Execute([]string{}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	config, err := data.LoadFromFile(configFile)
	if err != nil {
		t.Fatalf("Failed to load written config: %v", err)
	}
	if config.Rating.MaxRating != 3000 {
		t.Errorf("Expected default max rating 3000, got %d", config.Rating.MaxRating)
	}

	// A second init must refuse to overwrite
	err = cmd.Execute([]string{})
	if err == nil {
		t.Fatalf("Expected error when config already exists")
	}
	if cliErr, ok := err.(*CLIError); !ok || cliErr.Code != ExitConfigError {
		t.Errorf("Expected config error code, got %v", err)
	}
}

// TestFormatWeighting tests the call-site format and margin composition
func TestFormatWeighting(t *testing.T) {
	engine, err := rating.NewEngine(rating.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	winner := rating.Player{ID: "alice", Rating: 1400, MatchesPlayed: 25}
	loser := rating.Player{ID: "bob", Rating: 1350, MatchesPlayed: 40}

	result, err := engine.CalculateMatch(winner, loser, nil, nil)
	if err != nil {
		t.Fatalf("Calculation failed: %v", err)
	}

	// A decisive two-set win gets the 0.8 coefficient and a margin boost
	weighted := applyFormatWeight(engine, result, rating.FormatTwoSets, "6-1 6-2")

	winnerGames, loserGames := rating.ParseGames("6-1 6-2", "alice", "alice")
	wantModifier := rating.CombinedModifier(result.Winner.Modifiers, rating.FormatTwoSets, winnerGames, loserGames)
	if weighted.Winner.Modifiers.Total != wantModifier {
		t.Errorf("Expected combined modifier %.4f, got %.4f", wantModifier, weighted.Winner.Modifiers.Total)
	}

	// The coefficient dampens the unweighted delta
	if weighted.Winner.Delta >= result.Winner.Delta {
		t.Errorf("Expected weighted delta %d below unweighted %d", weighted.Winner.Delta, result.Winner.Delta)
	}
	if weighted.Winner.RatingAfter-weighted.Winner.RatingBefore != weighted.Winner.Delta {
		t.Errorf("Delta out of sync with before/after ratings")
	}
}

// TestResolveFormat tests format resolution precedence
func TestResolveFormat(t *testing.T) {
	config := data.DefaultAppConfig()

	tests := []struct {
		name   string
		flag   string
		score  string
		expect rating.MatchFormat
	}{
		{"explicit flag wins", "three_sets", "6-4 6-3", rating.FormatThreeSets},
		{"score inference", "", "6-4 3-6 10-8", rating.FormatTwoSetsSuperTiebreak},
		{"configured default", "", "", rating.FormatTwoSets},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveFormat(tt.flag, tt.score, &config)
			if got != tt.expect {
				t.Errorf("Expected %s, got %s", tt.expect, got)
			}
		})
	}
}

// TestErrorHandling tests error handling and JSON error output
func TestErrorHandling(t *testing.T) {
	cliErr := &CLIError{
		Code:    ExitFileError,
		Message: "File not found: matches.csv",
		Details: map[string]interface{}{
			"file": "matches.csv",
		},
		Suggestions: []string{
			"Check file path and name",
		},
	}

	jsonStr := formatErrorJSON(cliErr)

	var errorObj map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &errorObj); err != nil {
		t.Fatalf("Failed to parse error JSON: %v", err)
	}

	errorData := errorObj["error"].(map[string]interface{})
	if errorData["code"].(float64) != float64(ExitFileError) {
		t.Errorf("Expected error code %d, got %v", ExitFileError, errorData["code"])
	}
	if !strings.Contains(errorData["message"].(string), "File not found") {
		t.Errorf("Expected message to contain 'File not found'")
	}
}

// TestVersionCommand tests version information display
func TestVersionCommand(t *testing.T) {
	cmd := &FormatsCommand{ConfigOptions: ConfigOptions{Version: true}}

	if err := cmd.Execute([]string{}); err != nil {
		t.Errorf("Version command should not return error, got: %v", err)
	}
}
