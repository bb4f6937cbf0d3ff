// Package tui provides the interactive terminal interface for courtelo: a
// single-screen match simulator where two player snapshots are typed into a
// form and both hypothetical rating outcomes are rendered live, with keyboard
// shortcuts for simulation, reset and export.
package tui

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/courtelo/courtelo/pkg/data"
	"github.com/courtelo/courtelo/pkg/rating"
)

// App represents the TUI match simulator application
type App struct {
	tviewApp *tview.Application
	form     *tview.Form
	results  *tview.TextView
	header   *tview.TextView
	footer   *tview.TextView

	player1Name    *tview.InputField
	player1Rating  *tview.InputField
	player1Matches *tview.InputField
	player2Name    *tview.InputField
	player2Rating  *tview.InputField
	player2Matches *tview.InputField
	score          *tview.InputField
	format         *tview.DropDown

	engine *rating.Engine
	config *data.AppConfig

	mu             sync.RWMutex
	isRunning      bool
	lastSimulation *rating.Simulation
	lastPlayer1    rating.Player
	lastPlayer2    rating.Player
	lastExportTime *time.Time
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         tcell.Key
	Description string
	Handler     func(app *App) error
}

// Global key bindings. Rune shortcuts are avoided on purpose so typing into
// form fields never triggers them.
var globalKeyBindings = []KeyBinding{
	{Key: tcell.KeyCtrlC, Description: "Exit", Handler: (*App).Exit},
	{Key: tcell.KeyCtrlS, Description: "Simulate", Handler: (*App).Simulate},
	{Key: tcell.KeyCtrlR, Description: "Reset form", Handler: (*App).Reset},
	{Key: tcell.KeyCtrlE, Description: "Export result", Handler: (*App).ExportResult},
}

// NewApp creates a new TUI application instance
func NewApp(engine *rating.Engine, config *data.AppConfig) (*App, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	app := &App{
		tviewApp: tview.NewApplication(),
		results:  tview.NewTextView(),
		header:   tview.NewTextView(),
		footer:   tview.NewTextView(),
		engine:   engine,
		config:   config,
	}

	app.setupUI()

	return app, nil
}

// setupUI initializes the UI components and layout
func (a *App) setupUI() {
	a.header.SetBorder(true).
		SetTitle("Club Tennis Rating Simulator").
		SetTitleAlign(tview.AlignCenter).
		SetBackgroundColor(tcell.ColorDarkBlue)
	a.header.SetTextColor(tcell.ColorWhite)
	a.header.SetText("Enter two player snapshots, then press Ctrl+S")

	a.footer.SetBorder(true).
		SetTitle("Keyboard Shortcuts").
		SetTitleAlign(tview.AlignCenter).
		SetBackgroundColor(tcell.ColorDarkGreen)
	a.footer.SetTextColor(tcell.ColorWhite)
	a.updateFooter()

	a.buildForm()

	a.results.SetBorder(true).
		SetTitle("Outcomes")
	a.results.SetDynamicColors(true)
	a.results.SetText("No simulation yet")

	body := tview.NewFlex().
		AddItem(a.form, 44, 0, true).
		AddItem(a.results, 0, 1, false)

	mainLayout := tview.NewFlex().SetDirection(tview.FlexRow)
	mainLayout.AddItem(a.header, 3, 0, false)
	mainLayout.AddItem(body, 0, 1, true)
	mainLayout.AddItem(a.footer, 3, 0, false)

	mainLayout.SetInputCapture(a.handleGlobalInput)

	a.tviewApp.SetRoot(mainLayout, true)
	a.tviewApp.EnableMouse(true)
}

// buildForm assembles the player input form.
func (a *App) buildForm() {
	a.player1Name = tview.NewInputField().SetLabel("Player 1").SetFieldWidth(20)
	a.player1Rating = tview.NewInputField().SetLabel("Rating").SetFieldWidth(6).SetText("1500")
	a.player1Matches = tview.NewInputField().SetLabel("Matches").SetFieldWidth(6).SetText("0")
	a.player2Name = tview.NewInputField().SetLabel("Player 2").SetFieldWidth(20)
	a.player2Rating = tview.NewInputField().SetLabel("Rating").SetFieldWidth(6).SetText("1500")
	a.player2Matches = tview.NewInputField().SetLabel("Matches").SetFieldWidth(6).SetText("0")
	a.score = tview.NewInputField().SetLabel("Score").SetFieldWidth(20)

	formatLabels := make([]string, 0, len(rating.Formats()))
	defaultIndex := 0
	for i, format := range rating.Formats() {
		formatLabels = append(formatLabels, format.Label())
		if string(format) == a.config.UI.DefaultFormat {
			defaultIndex = i
		}
	}
	a.format = tview.NewDropDown().
		SetLabel("Format").
		SetOptions(formatLabels, nil).
		SetCurrentOption(defaultIndex)

	a.form = tview.NewForm().
		AddFormItem(a.player1Name).
		AddFormItem(a.player1Rating).
		AddFormItem(a.player1Matches).
		AddFormItem(a.player2Name).
		AddFormItem(a.player2Rating).
		AddFormItem(a.player2Matches).
		AddFormItem(a.score).
		AddFormItem(a.format).
		AddButton("Simulate", func() { a.Simulate() }).
		AddButton("Reset", func() { a.Reset() }).
		AddButton("Quit", func() { a.Exit() })

	a.form.SetBorder(true).SetTitle("Match Setup")
}

// readPlayers converts the form fields into engine inputs.
func (a *App) readPlayers() (rating.Player, rating.Player, error) {
	player1, err := readPlayer(a.player1Name, a.player1Rating, a.player1Matches)
	if err != nil {
		return rating.Player{}, rating.Player{}, fmt.Errorf("player 1: %w", err)
	}
	player2, err := readPlayer(a.player2Name, a.player2Rating, a.player2Matches)
	if err != nil {
		return rating.Player{}, rating.Player{}, fmt.Errorf("player 2: %w", err)
	}
	return player1, player2, nil
}

func readPlayer(name, ratingField, matchesField *tview.InputField) (rating.Player, error) {
	id := strings.TrimSpace(name.GetText())
	if id == "" {
		return rating.Player{}, fmt.Errorf("name is empty")
	}
	ratingValue, err := strconv.Atoi(strings.TrimSpace(ratingField.GetText()))
	if err != nil {
		return rating.Player{}, fmt.Errorf("rating %q is not an integer", ratingField.GetText())
	}
	matches, err := strconv.Atoi(strings.TrimSpace(matchesField.GetText()))
	if err != nil {
		return rating.Player{}, fmt.Errorf("matches %q is not an integer", matchesField.GetText())
	}
	return rating.Player{ID: id, Rating: ratingValue, MatchesPlayed: matches}, nil
}

// selectedFormat resolves the match format from the dropdown, falling back to
// score inference when the score field disagrees with a one-set selection.
func (a *App) selectedFormat() rating.MatchFormat {
	index, _ := a.format.GetCurrentOption()
	formats := rating.Formats()
	if index >= 0 && index < len(formats) {
		return formats[index]
	}
	return rating.MatchFormat(a.config.UI.DefaultFormat)
}

// Simulate runs the engine over the current form inputs and renders both
// hypothetical outcomes.
func (a *App) Simulate() error {
	player1, player2, err := a.readPlayers()
	if err != nil {
		a.showErrorDialog("Input Error", err.Error())
		return err
	}

	simulation, err := a.engine.Simulate(player1, player2, nil, nil)
	if err != nil {
		a.showErrorDialog("Simulation Error", err.Error())
		return err
	}

	format := a.selectedFormat()
	score := strings.TrimSpace(a.score.GetText())
	if score != "" {
		simulation.IfPlayer1Wins = a.weighResult(simulation.IfPlayer1Wins, format, score)
		simulation.IfPlayer2Wins = a.weighResult(simulation.IfPlayer2Wins, format, score)
	}

	a.mu.Lock()
	a.lastSimulation = &simulation
	a.lastPlayer1 = player1
	a.lastPlayer2 = player2
	a.mu.Unlock()

	a.results.SetText(a.renderSimulation(player1, player2, simulation, format, score))
	a.header.SetText(fmt.Sprintf("%s vs %s | win probability %.1f%%",
		player1.ID, player2.ID, simulation.Player1WinProbability*100))

	return nil
}

// weighResult folds the format coefficient and margin modifier into one
// hypothetical outcome.
func (a *App) weighResult(result rating.MatchResult, format rating.MatchFormat, score string) rating.MatchResult {
	winnerGames, loserGames := rating.ParseGames(score, result.Winner.PlayerID, result.Winner.PlayerID)
	result.Winner = a.weighChange(result.Winner, format, winnerGames, loserGames)
	result.Loser = a.weighChange(result.Loser, format, winnerGames, loserGames)
	return result
}

func (a *App) weighChange(change rating.Change, format rating.MatchFormat, winnerGames, loserGames int) rating.Change {
	combined := rating.CombinedModifier(change.Modifiers, format, winnerGames, loserGames)
	after := a.engine.NewRating(change.RatingBefore, change.KFactor, change.ExpectedScore, change.ActualScore, combined)

	change.RatingAfter = after
	change.Delta = after - change.RatingBefore
	change.Modifiers.Total = combined
	return change
}

// renderSimulation builds the outcome text for the results pane.
func (a *App) renderSimulation(player1, player2 rating.Player, simulation rating.Simulation, format rating.MatchFormat, score string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[yellow]%s[-] (%d, %s) vs [yellow]%s[-] (%d, %s)\n",
		player1.ID, player1.Rating, rating.RankTitle(player1.Rating),
		player2.ID, player2.Rating, rating.RankTitle(player2.Rating))
	fmt.Fprintf(&sb, "Format: %s", format.Label())
	if score != "" {
		fmt.Fprintf(&sb, "  Score: %s", score)
	}
	fmt.Fprintf(&sb, "\n%s win probability: %.1f%%\n\n", player1.ID, simulation.Player1WinProbability*100)

	fmt.Fprintf(&sb, "[green]If %s wins:[-]\n", player1.ID)
	a.renderChange(&sb, simulation.IfPlayer1Wins.Winner)
	a.renderChange(&sb, simulation.IfPlayer1Wins.Loser)

	fmt.Fprintf(&sb, "\n[green]If %s wins:[-]\n", player2.ID)
	a.renderChange(&sb, simulation.IfPlayer2Wins.Winner)
	a.renderChange(&sb, simulation.IfPlayer2Wins.Loser)

	return sb.String()
}

func (a *App) renderChange(sb *strings.Builder, change rating.Change) {
	fmt.Fprintf(sb, "  %s: %d -> %d (%s)  K=%d  expected %.2f\n",
		change.PlayerID,
		change.RatingBefore,
		change.RatingAfter,
		rating.FormatDelta(change.Delta),
		change.KFactor,
		change.ExpectedScore)

	if a.config.UI.ShowBreakdown && len(change.Modifiers.Details) > 0 {
		for _, detail := range change.Modifiers.Details {
			fmt.Fprintf(sb, "      %s x%.2f\n", detail.Kind, detail.Value)
		}
		fmt.Fprintf(sb, "      total modifier x%.2f\n", change.Modifiers.Total)
	}
}

// Reset clears the form and the results pane.
func (a *App) Reset() error {
	a.player1Name.SetText("")
	a.player1Rating.SetText("1500")
	a.player1Matches.SetText("0")
	a.player2Name.SetText("")
	a.player2Rating.SetText("1500")
	a.player2Matches.SetText("0")
	a.score.SetText("")

	a.mu.Lock()
	a.lastSimulation = nil
	a.mu.Unlock()

	a.results.SetText("No simulation yet")
	a.header.SetText("Enter two player snapshots, then press Ctrl+S")

	return nil
}

// ExportResult writes the last simulation as two outcome rows, one per
// hypothetical winner, using the configured export format.
func (a *App) ExportResult() error {
	a.mu.RLock()
	simulation := a.lastSimulation
	player1 := a.lastPlayer1
	player2 := a.lastPlayer2
	a.mu.RUnlock()

	if simulation == nil {
		a.showErrorDialog("Export Error", "Nothing to export; run a simulation first")
		return fmt.Errorf("no simulation to export")
	}

	format := a.selectedFormat()
	score := strings.TrimSpace(a.score.GetText())

	outcomes := []data.Outcome{
		data.NewOutcome(data.MatchRecord{Winner: player1, Loser: player2, Score: score, Format: format},
			format, simulation.IfPlayer1Wins, a.config.Export),
		data.NewOutcome(data.MatchRecord{Winner: player2, Loser: player1, Score: score, Format: format},
			format, simulation.IfPlayer2Wins, a.config.Export),
	}

	outputFile := "courtelo_simulation." + a.config.Export.Format
	if err := data.WriteOutcomes(outcomes, outputFile, a.config.Export); err != nil {
		a.showErrorDialog("Export Failed", fmt.Sprintf("Failed to export simulation:\n\n%v", err))
		return err
	}

	now := time.Now()
	a.mu.Lock()
	a.lastExportTime = &now
	a.mu.Unlock()

	a.header.SetText(fmt.Sprintf("Exported simulation to %s at %s", outputFile, now.Format("15:04:05")))

	return nil
}

// Exit stops the application
func (a *App) Exit() error {
	a.mu.Lock()
	a.isRunning = false
	a.mu.Unlock()

	a.tviewApp.Stop()
	return nil
}

// Run starts the TUI application
func (a *App) Run() error {
	a.mu.Lock()
	a.isRunning = true
	a.mu.Unlock()

	return a.tviewApp.Run()
}

// Stop gracefully stops the application
func (a *App) Stop() {
	a.mu.RLock()
	running := a.isRunning
	a.mu.RUnlock()

	if running {
		a.Exit()
	}
}

// IsRunning returns whether the application is currently running
func (a *App) IsRunning() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.isRunning
}

// LastSimulation returns the most recent simulation, or nil.
func (a *App) LastSimulation() *rating.Simulation {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lastSimulation
}

// GetTViewApp returns the underlying tview application for advanced usage
func (a *App) GetTViewApp() *tview.Application {
	return a.tviewApp
}

// handleGlobalInput handles global keyboard shortcuts
func (a *App) handleGlobalInput(event *tcell.EventKey) *tcell.EventKey {
	for _, binding := range globalKeyBindings {
		if event.Key() == binding.Key {
			binding.Handler(a)
			return nil // Consume the event
		}
	}

	return event // Let other handlers process the event
}

// showErrorDialog displays an error message in the results pane rather than a
// modal, so the form keeps focus for a quick correction.
func (a *App) showErrorDialog(title, message string) {
	a.results.SetText(fmt.Sprintf("[red]%s[-]\n\n%s", title, message))
}

// updateFooter updates the footer with current key bindings
func (a *App) updateFooter() {
	parts := make([]string, 0, len(globalKeyBindings))
	for _, binding := range globalKeyBindings {
		parts = append(parts, fmt.Sprintf("%s: %s", tcell.KeyNames[binding.Key], binding.Description))
	}
	a.footer.SetText(strings.Join(parts, " | "))
}
