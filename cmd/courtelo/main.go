// Package main provides the command-line interface for the courtelo club
// tennis rating tool. It implements subcommands for single-match calculation,
// outcome simulation, batch CSV processing, format inspection and input
// validation, with an optional interactive terminal simulator.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/courtelo/courtelo/pkg/data"
	"github.com/courtelo/courtelo/pkg/rating"
	"github.com/courtelo/courtelo/pkg/tui"
)

// Version information - set by build process
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// ConfigOptions are the flags shared by every subcommand.
type ConfigOptions struct {
	Config   string `long:"config" short:"c" description:"Configuration file path" default:"courtelo.yaml"`
	NoConfig bool   `long:"no-config" description:"Skip configuration file loading"`
	Verbose  bool   `long:"verbose" short:"v" description:"Enable verbose output"`
	Version  bool   `long:"version" description:"Show version information"`
}

// CalcCommand handles 'courtelo calc': rate one completed match.
type CalcCommand struct {
	Winner        string `long:"winner" description:"Winner player id" required:"true"`
	WinnerRating  int    `long:"winner-rating" description:"Winner rating before the match" required:"true"`
	WinnerMatches int    `long:"winner-matches" description:"Winner lifetime match count" default:"0"`
	Loser         string `long:"loser" description:"Loser player id" required:"true"`
	LoserRating   int    `long:"loser-rating" description:"Loser rating before the match" required:"true"`
	LoserMatches  int    `long:"loser-matches" description:"Loser lifetime match count" default:"0"`
	Score         string `long:"score" short:"s" description:"Score text, e.g. '6-4 6-3' (format is inferred when omitted)"`
	Format        string `long:"format" short:"f" description:"Match format (one_set/two_sets/two_sets_super_tiebreak/three_sets/super_tiebreak_only)"`
	WinnerHistory string `long:"winner-history" description:"CSV of the winner's recent matches for modifier lookups"`
	LoserHistory  string `long:"loser-history" description:"CSV of the loser's recent matches for modifier lookups"`
	GameplayOnly  bool   `long:"gameplay-only" description:"Skip format and margin weighting"`
	Output        string `long:"output" short:"o" description:"Export the result to a file instead of printing"`
	JSON          bool   `long:"json" description:"Print the result as JSON"`

	ConfigOptions
}

// SimulateCommand handles 'courtelo simulate': preview both outcomes of an
// unplayed match.
type SimulateCommand struct {
	Player1        string `long:"player1" description:"First player id" required:"true"`
	Player1Rating  int    `long:"player1-rating" description:"First player rating" required:"true"`
	Player1Matches int    `long:"player1-matches" description:"First player lifetime match count" default:"0"`
	Player2        string `long:"player2" description:"Second player id" required:"true"`
	Player2Rating  int    `long:"player2-rating" description:"Second player rating" required:"true"`
	Player2Matches int    `long:"player2-matches" description:"Second player lifetime match count" default:"0"`
	Player1History string `long:"player1-history" description:"CSV of the first player's recent matches"`
	Player2History string `long:"player2-history" description:"CSV of the second player's recent matches"`
	JSON           bool   `long:"json" description:"Print the simulation as JSON"`

	ConfigOptions
}

// BatchCommand handles 'courtelo batch': rate every match in a CSV file.
type BatchCommand struct {
	Input        string `long:"input" short:"i" description:"Path to CSV file containing matches" required:"true"`
	Output       string `long:"output" short:"o" description:"Output file path (defaults next to the input)"`
	Format       string `long:"format" description:"Export format override (csv/json/yaml)"`
	GameplayOnly bool   `long:"gameplay-only" description:"Skip format and margin weighting"`

	ConfigOptions
}

// FormatsCommand handles 'courtelo formats': list the match format table.
type FormatsCommand struct {
	JSON bool `long:"json" description:"Print the table as JSON"`

	ConfigOptions
}

// ValidateCommand handles 'courtelo validate': check a batch CSV file or a
// single score string.
type ValidateCommand struct {
	Input   string `long:"input" short:"i" description:"Path to CSV file to validate"`
	Score   string `long:"score" short:"s" description:"Score text to inspect instead of a file"`
	Preview int    `long:"preview" description:"Number of rows to preview" default:"5"`

	ConfigOptions
}

// TuiCommand handles 'courtelo tui': the interactive match simulator.
type TuiCommand struct {
	ConfigOptions
}

// InitCommand handles 'courtelo init': write a default configuration file.
type InitCommand struct {
	Path string `long:"path" description:"Where to write the configuration" default:"courtelo.yaml"`

	ConfigOptions
}

// ErrorCode represents CLI exit codes
type ErrorCode int

const (
	ExitSuccess ErrorCode = iota
	ExitUsageError
	ExitConfigError
	ExitFileError
	ExitCalcError
	ExitExportError
	ExitValidationError
)

// CLIError represents a CLI error with exit code
type CLIError struct {
	Code        ErrorCode
	Message     string
	Details     map[string]interface{}
	Suggestions []string
}

func (e *CLIError) Error() string {
	return e.Message
}

// formatErrorJSON formats error as JSON for structured output
func formatErrorJSON(err *CLIError) string {
	errorObj := map[string]interface{}{
		"error": map[string]interface{}{
			"code":    err.Code,
			"message": err.Message,
		},
	}

	if err.Details != nil {
		errorObj["error"].(map[string]interface{})["details"] = err.Details
	}

	if err.Suggestions != nil {
		errorObj["error"].(map[string]interface{})["suggestions"] = err.Suggestions
	}

	jsonBytes, _ := json.MarshalIndent(errorObj, "", "  ")
	return string(jsonBytes)
}

func main() {
	if err := run(); err != nil {
		if cliErr, ok := err.(*CLIError); ok {
			fmt.Fprintln(os.Stderr, formatErrorJSON(cliErr))
			os.Exit(int(cliErr.Code))
		}
		log.Fatal(err)
	}
}

func run() error {
	parser := flags.NewParser(nil, flags.Default)
	parser.Usage = "[OPTIONS] COMMAND [COMMAND-OPTIONS]"

	parser.AddCommand("calc", "Rate one completed match", "", &CalcCommand{})
	parser.AddCommand("simulate", "Preview both outcomes of an unplayed match", "", &SimulateCommand{})
	parser.AddCommand("batch", "Rate every match in a CSV file", "", &BatchCommand{})
	parser.AddCommand("formats", "List supported match formats", "", &FormatsCommand{})
	parser.AddCommand("validate", "Validate a batch CSV file", "", &ValidateCommand{})
	parser.AddCommand("tui", "Start the interactive match simulator", "", &TuiCommand{})
	parser.AddCommand("init", "Write a default configuration file", "", &InitCommand{})

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			switch flagsErr.Type {
			case flags.ErrHelp:
				return nil
			case flags.ErrCommandRequired:
				fmt.Fprintln(os.Stderr, "Error: No command specified")
				parser.WriteHelp(os.Stderr)
				return &CLIError{
					Code:    ExitUsageError,
					Message: "No command specified",
					Suggestions: []string{
						"Use 'courtelo calc' to rate a completed match",
						"Use 'courtelo --help' to see all available commands",
					},
				}
			default:
				return &CLIError{
					Code:    ExitUsageError,
					Message: fmt.Sprintf("Invalid arguments: %v", err),
				}
			}
		}
		return err
	}

	return nil
}

// Execute implements the Command interface for CalcCommand
func (c *CalcCommand) Execute(args []string) error {
	if c.ConfigOptions.Version {
		return showVersion()
	}

	config, engine, err := loadEngine(c.ConfigOptions)
	if err != nil {
		return err
	}

	winner := rating.Player{ID: c.Winner, Rating: c.WinnerRating, MatchesPlayed: c.WinnerMatches}
	loser := rating.Player{ID: c.Loser, Rating: c.LoserRating, MatchesPlayed: c.LoserMatches}

	winnerHistory, err := loadHistory(c.WinnerHistory)
	if err != nil {
		return err
	}
	loserHistory, err := loadHistory(c.LoserHistory)
	if err != nil {
		return err
	}

	result, err := engine.CalculateMatch(winner, loser, winnerHistory, loserHistory)
	if err != nil {
		return &CLIError{
			Code:    ExitCalcError,
			Message: fmt.Sprintf("Calculation failed: %v", err),
			Suggestions: []string{
				"Check that both player ids are set and distinct",
				"Ratings and match counts must not be negative",
			},
		}
	}

	format := resolveFormat(c.Format, c.Score, config)
	if !c.GameplayOnly {
		result = applyFormatWeight(engine, result, format, c.Score)
	}

	if c.Output != "" {
		record := data.MatchRecord{Winner: winner, Loser: loser, Score: c.Score, Format: format}
		outcome := data.NewOutcome(record, format, result, config.Export)
		if err := data.WriteOutcomes([]data.Outcome{outcome}, c.Output, config.Export); err != nil {
			return &CLIError{
				Code:    ExitExportError,
				Message: fmt.Sprintf("Export failed: %v", err),
				Details: map[string]interface{}{"output_file": c.Output},
			}
		}
		fmt.Printf("Exported result to: %s\n", c.Output)
		return nil
	}

	if c.JSON {
		return printJSON(result)
	}

	printMatchResult(result, format, c.Score, config.UI.ShowBreakdown)
	return nil
}

// Execute implements the Command interface for SimulateCommand
func (c *SimulateCommand) Execute(args []string) error {
	if c.ConfigOptions.Version {
		return showVersion()
	}

	config, engine, err := loadEngine(c.ConfigOptions)
	if err != nil {
		return err
	}

	player1 := rating.Player{ID: c.Player1, Rating: c.Player1Rating, MatchesPlayed: c.Player1Matches}
	player2 := rating.Player{ID: c.Player2, Rating: c.Player2Rating, MatchesPlayed: c.Player2Matches}

	history1, err := loadHistory(c.Player1History)
	if err != nil {
		return err
	}
	history2, err := loadHistory(c.Player2History)
	if err != nil {
		return err
	}

	simulation, err := engine.Simulate(player1, player2, history1, history2)
	if err != nil {
		return &CLIError{
			Code:    ExitCalcError,
			Message: fmt.Sprintf("Simulation failed: %v", err),
		}
	}

	if c.JSON {
		return printJSON(simulation)
	}

	printSimulation(player1, player2, simulation, config.UI.ShowBreakdown)
	return nil
}

// Execute implements the Command interface for BatchCommand
func (c *BatchCommand) Execute(args []string) error {
	if c.ConfigOptions.Version {
		return showVersion()
	}

	config, engine, err := loadEngine(c.ConfigOptions)
	if err != nil {
		return err
	}
	if c.Format != "" {
		config.Export.Format = c.Format
		if err := config.Export.Validate(); err != nil {
			return &CLIError{
				Code:    ExitConfigError,
				Message: fmt.Sprintf("Invalid export format: %v", err),
			}
		}
	}

	if _, err := os.Stat(c.Input); os.IsNotExist(err) {
		return &CLIError{
			Code:    ExitFileError,
			Message: fmt.Sprintf("Input file not found: %s", c.Input),
			Details: map[string]interface{}{"file": c.Input},
			Suggestions: []string{
				"Check file path and name",
				"Use 'courtelo validate --input " + c.Input + "' to inspect the file",
			},
		}
	}

	parseResult, err := data.LoadMatchesFromCSV(c.Input)
	if err != nil {
		return &CLIError{
			Code:    ExitFileError,
			Message: fmt.Sprintf("Failed to load CSV file: %v", err),
			Details: map[string]interface{}{"file": c.Input},
			Suggestions: []string{
				"Validate the file with 'courtelo validate --input " + c.Input + "'",
				"Check for missing required columns",
			},
		}
	}

	outcomes := make([]data.Outcome, 0, len(parseResult.Matches))
	for _, record := range parseResult.Matches {
		result, err := engine.CalculateMatch(record.Winner, record.Loser, nil, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s vs %s: %v\n", record.Winner.ID, record.Loser.ID, err)
			continue
		}

		format := record.Format
		if format == "" {
			format = resolveFormat("", record.Score, config)
		}
		if !c.GameplayOnly {
			result = applyFormatWeight(engine, result, format, record.Score)
		}

		outcomes = append(outcomes, data.NewOutcome(record, format, result, config.Export))
	}

	outputFile := c.Output
	if outputFile == "" {
		outputFile = strings.TrimSuffix(c.Input, ".csv") + "_rated." + exportExtension(config.Export.Format)
	}

	if err := data.WriteOutcomes(outcomes, outputFile, config.Export); err != nil {
		return &CLIError{
			Code:    ExitExportError,
			Message: fmt.Sprintf("Export failed: %v", err),
			Details: map[string]interface{}{
				"output_file": outputFile,
				"format":      config.Export.Format,
			},
			Suggestions: []string{
				"Check output directory permissions",
				"Try a different output format",
			},
		}
	}

	fmt.Printf("Rated %d matches to: %s\n", len(outcomes), outputFile)
	if len(parseResult.Errors) > 0 {
		fmt.Printf("Skipped %d bad rows\n", len(parseResult.Errors))
		if c.ConfigOptions.Verbose {
			for _, rowErr := range parseResult.Errors {
				fmt.Printf("  - Line %d: %s\n", rowErr.Line, rowErr.Message)
			}
		}
	}

	return nil
}

// Execute implements the Command interface for FormatsCommand
func (c *FormatsCommand) Execute(args []string) error {
	if c.ConfigOptions.Version {
		return showVersion()
	}

	if c.JSON {
		type formatEntry struct {
			Format      string  `json:"format"`
			Coefficient float64 `json:"coefficient"`
			Label       string  `json:"label"`
			Description string  `json:"description"`
		}
		entries := make([]formatEntry, 0, len(rating.Formats()))
		for _, format := range rating.Formats() {
			info := format.Info()
			entries = append(entries, formatEntry{
				Format:      string(format),
				Coefficient: info.Coefficient,
				Label:       info.Label,
				Description: info.Description,
			})
		}
		return printJSON(entries)
	}

	fmt.Printf("%-25s %-12s %s\n", "FORMAT", "COEFFICIENT", "LABEL")
	fmt.Println(strings.Repeat("-", 70))
	for _, format := range rating.Formats() {
		info := format.Info()
		fmt.Printf("%-25s %-12.2f %s\n", format, info.Coefficient, info.Label)
	}

	return nil
}

// Execute implements the Command interface for ValidateCommand
func (c *ValidateCommand) Execute(args []string) error {
	if c.ConfigOptions.Version {
		return showVersion()
	}

	if c.Score != "" {
		return c.validateScore()
	}
	if c.Input == "" {
		return &CLIError{
			Code:    ExitUsageError,
			Message: "Either --input or --score is required",
			Suggestions: []string{
				"Use --input matches.csv to validate a batch file",
				"Use --score '6-4 6-3' to inspect a score string",
			},
		}
	}

	if _, err := os.Stat(c.Input); os.IsNotExist(err) {
		return &CLIError{
			Code:    ExitFileError,
			Message: fmt.Sprintf("Input file not found: %s", c.Input),
			Details: map[string]interface{}{"file": c.Input},
		}
	}

	parseResult, err := data.LoadMatchesFromCSV(c.Input)

	fmt.Printf("Validation Results for: %s\n", c.Input)
	fmt.Printf("===========================================\n\n")

	if err != nil {
		fmt.Printf("INVALID: %v\n", err)

		return &CLIError{
			Code:    ExitValidationError,
			Message: fmt.Sprintf("CSV validation failed: %v", err),
			Details: map[string]interface{}{"file": c.Input},
			Suggestions: []string{
				"Check CSV format and encoding",
				"Ensure required columns are present: winner_id, winner_rating, winner_matches, loser_id, loser_rating, loser_matches, score",
			},
		}
	}

	fmt.Printf("VALID CSV file\n\n")
	fmt.Printf("File Statistics:\n")
	fmt.Printf("  Usable rows: %d matches\n", len(parseResult.Matches))
	fmt.Printf("  Bad rows: %d\n", len(parseResult.Errors))

	if len(parseResult.Errors) > 0 {
		fmt.Printf("\nRow Errors:\n")
		for _, rowErr := range parseResult.Errors {
			fmt.Printf("  Line %d: %s\n", rowErr.Line, rowErr.Message)
		}
	}

	if c.Preview > 0 && len(parseResult.Matches) > 0 {
		limit := c.Preview
		if limit > len(parseResult.Matches) {
			limit = len(parseResult.Matches)
		}
		fmt.Printf("\nData Preview (%d rows):\n", limit)
		for i := 0; i < limit; i++ {
			record := parseResult.Matches[i]
			format := record.Format
			if format == "" {
				format = rating.InferFormat(record.Score)
			}
			fmt.Printf("  [%d] %s (%d) def. %s (%d)  %s  [%s]\n",
				i+1,
				record.Winner.ID, record.Winner.Rating,
				record.Loser.ID, record.Loser.Rating,
				record.Score, format.Label())
		}
	}

	return nil
}

// validateScore inspects one score string: parsed games, inferred format,
// margin and super-tiebreak validity.
func (c *ValidateCommand) validateScore() error {
	format := rating.InferFormat(c.Score)
	games1, games2 := rating.ParseGames(c.Score, "p1", "p1")

	if games1 == 0 && games2 == 0 {
		return &CLIError{
			Code:    ExitValidationError,
			Message: fmt.Sprintf("Score %q contains no well-formed set tokens", c.Score),
			Suggestions: []string{
				"Write set scores as winner-loser pairs, e.g. '6-4 6-3'",
			},
		}
	}

	fmt.Printf("Score: %s\n", c.Score)
	fmt.Printf("Inferred format: %s (%s, coefficient %.2f)\n", format, format.Label(), format.Coefficient())
	fmt.Printf("Games: %d-%d\n", games1, games2)
	fmt.Printf("Margin modifier: %.2f\n", rating.MarginModifier(games1, games2, format))

	if format == rating.FormatSuperTiebreakOnly {
		fmt.Printf("Super tiebreak: valid=%t\n", rating.IsValidSuperTiebreakScore(c.Score))
	}

	return nil
}

// Execute implements the Command interface for TuiCommand
func (c *TuiCommand) Execute(args []string) error {
	if c.ConfigOptions.Version {
		return showVersion()
	}

	config, engine, err := loadEngine(c.ConfigOptions)
	if err != nil {
		return err
	}

	app, err := tui.NewApp(engine, config)
	if err != nil {
		return &CLIError{
			Code:    ExitConfigError,
			Message: fmt.Sprintf("Failed to build terminal interface: %v", err),
		}
	}

	if err := app.Run(); err != nil {
		return &CLIError{
			Code:    ExitCalcError,
			Message: fmt.Sprintf("Terminal interface failed: %v", err),
			Suggestions: []string{
				"Ensure the terminal supports raw mode",
				"Use 'courtelo calc' for non-interactive calculation",
			},
		}
	}
	return nil
}

// Execute implements the Command interface for InitCommand
func (c *InitCommand) Execute(args []string) error {
	if c.ConfigOptions.Version {
		return showVersion()
	}

	if _, err := os.Stat(c.Path); err == nil {
		return &CLIError{
			Code:    ExitConfigError,
			Message: fmt.Sprintf("Configuration file already exists: %s", c.Path),
			Suggestions: []string{
				"Remove the existing file first, or pick another --path",
			},
		}
	}

	if err := data.CreateDefaultConfig(c.Path); err != nil {
		return &CLIError{
			Code:    ExitConfigError,
			Message: fmt.Sprintf("Failed to write configuration: %v", err),
		}
	}

	fmt.Printf("Wrote default configuration to: %s\n", c.Path)
	return nil
}

// Helper functions

func showVersion() error {
	fmt.Printf("courtelo version %s\n", Version)
	fmt.Printf("Build date: %s\n", BuildDate)
	fmt.Printf("Git commit: %s\n", GitCommit)
	return nil
}

// loadEngine builds the effective configuration and a rating engine from it.
func loadEngine(opts ConfigOptions) (*data.AppConfig, *rating.Engine, error) {
	config, err := data.LoadForCLI(opts.Config, opts.NoConfig)
	if err != nil {
		return nil, nil, &CLIError{
			Code:    ExitConfigError,
			Message: fmt.Sprintf("Failed to load configuration: %v", err),
			Suggestions: []string{
				"Check configuration file syntax",
				"Use --config to specify a different file, or --no-config for defaults",
			},
		}
	}

	engine, err := rating.NewEngine(config.Rating.EngineConfig())
	if err != nil {
		return nil, nil, &CLIError{
			Code:    ExitConfigError,
			Message: fmt.Sprintf("Invalid engine tuning: %v", err),
		}
	}

	if opts.Verbose {
		fmt.Fprintf(os.Stderr, "Using configuration: %s\n", data.ResolveConfigPath(opts.Config))
	}

	return config, engine, nil
}

// loadHistory reads an optional history CSV. An empty path means no history.
func loadHistory(path string) ([]rating.HistoryEntry, error) {
	if path == "" {
		return nil, nil
	}
	entries, err := data.LoadHistoryFromCSV(path)
	if err != nil {
		return nil, &CLIError{
			Code:    ExitFileError,
			Message: fmt.Sprintf("Failed to load history file: %v", err),
			Details: map[string]interface{}{"file": path},
			Suggestions: []string{
				"History files need an opponent_id,played_at header with RFC 3339 timestamps",
			},
		}
	}
	return entries, nil
}

// resolveFormat picks the match format: explicit flag, then score inference,
// then the configured default.
func resolveFormat(flag, score string, config *data.AppConfig) rating.MatchFormat {
	if flag != "" {
		return rating.MatchFormat(flag)
	}
	if score != "" {
		return rating.InferFormat(score)
	}
	return rating.MatchFormat(config.UI.DefaultFormat)
}

// applyFormatWeight reapplies both rating updates with the format coefficient
// and margin modifier folded into the gameplay total. Without a score there is
// no margin to judge, so only the coefficient applies.
func applyFormatWeight(engine *rating.Engine, result rating.MatchResult, format rating.MatchFormat, score string) rating.MatchResult {
	result.Winner = reweightChange(engine, result.Winner, format, score)
	result.Loser = reweightChange(engine, result.Loser, format, score)
	return result
}

func reweightChange(engine *rating.Engine, change rating.Change, format rating.MatchFormat, score string) rating.Change {
	combined := change.Modifiers.Total * format.Coefficient()
	if score != "" {
		winnerGames, loserGames := rating.ParseGames(score, change.PlayerID, change.PlayerID)
		combined = rating.CombinedModifier(change.Modifiers, format, winnerGames, loserGames)
	}
	after := engine.NewRating(change.RatingBefore, change.KFactor, change.ExpectedScore, change.ActualScore, combined)

	change.RatingAfter = after
	change.Delta = after - change.RatingBefore
	change.Modifiers.Total = combined
	return change
}

func exportExtension(format string) string {
	switch format {
	case "json":
		return "json"
	case "yaml":
		return "yaml"
	default:
		return "csv"
	}
}

func printJSON(value interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func printMatchResult(result rating.MatchResult, format rating.MatchFormat, score string, showBreakdown bool) {
	if score != "" {
		fmt.Printf("Match: %s def. %s  %s  [%s]\n", result.Winner.PlayerID, result.Loser.PlayerID, score, format.Label())
	} else {
		fmt.Printf("Match: %s def. %s  [%s]\n", result.Winner.PlayerID, result.Loser.PlayerID, format.Label())
	}
	fmt.Println()
	printChange(result.Winner, showBreakdown)
	printChange(result.Loser, showBreakdown)
}

func printChange(change rating.Change, showBreakdown bool) {
	fmt.Printf("%s: %d -> %d (%s)  K=%d  expected %.2f  %s\n",
		change.PlayerID,
		change.RatingBefore,
		change.RatingAfter,
		rating.FormatDelta(change.Delta),
		change.KFactor,
		change.ExpectedScore,
		rating.RankTitle(change.RatingAfter))

	if showBreakdown && len(change.Modifiers.Details) > 0 {
		for _, detail := range change.Modifiers.Details {
			fmt.Printf("    %s x%.2f (%s)\n", detail.Kind, detail.Value, detail.Description)
		}
		fmt.Printf("    total modifier x%.2f\n", change.Modifiers.Total)
	}
}

func printSimulation(player1, player2 rating.Player, simulation rating.Simulation, showBreakdown bool) {
	fmt.Printf("Simulation: %s (%d) vs %s (%d)\n", player1.ID, player1.Rating, player2.ID, player2.Rating)
	fmt.Printf("%s win probability: %.1f%%\n", player1.ID, simulation.Player1WinProbability*100)
	fmt.Println()

	fmt.Printf("If %s wins:\n", player1.ID)
	printChange(simulation.IfPlayer1Wins.Winner, showBreakdown)
	printChange(simulation.IfPlayer1Wins.Loser, showBreakdown)
	fmt.Println()

	fmt.Printf("If %s wins:\n", player2.ID)
	printChange(simulation.IfPlayer2Wins.Winner, showBreakdown)
	printChange(simulation.IfPlayer2Wins.Loser, showBreakdown)
}
