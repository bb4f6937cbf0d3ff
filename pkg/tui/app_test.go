// Package tui provides the interactive terminal interface for courtelo.
// These tests drive the simulator through its form state without starting the
// terminal event loop.
package tui

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtelo/courtelo/pkg/data"
	"github.com/courtelo/courtelo/pkg/rating"
)

func newTestApp(t *testing.T) *App {
	t.Helper()

	engine, err := rating.NewEngine(rating.DefaultConfig())
	require.NoError(t, err)

	config := data.DefaultAppConfig()

	app, err := NewApp(engine, &config)
	require.NoError(t, err)
	return app
}

func fillForm(app *App, name1 string, rating1 int, name2 string, rating2 int) {
	app.player1Name.SetText(name1)
	app.player1Rating.SetText(strconv.Itoa(rating1))
	app.player1Matches.SetText("25")
	app.player2Name.SetText(name2)
	app.player2Rating.SetText(strconv.Itoa(rating2))
	app.player2Matches.SetText("40")
}

func TestNewApp(t *testing.T) {
	t.Run("valid construction", func(t *testing.T) {
		app := newTestApp(t)
		assert.NotNil(t, app.GetTViewApp())
		assert.False(t, app.IsRunning())
		assert.Nil(t, app.LastSimulation())
	})

	t.Run("nil engine rejected", func(t *testing.T) {
		config := data.DefaultAppConfig()
		_, err := NewApp(nil, &config)
		assert.Error(t, err)
	})

	t.Run("nil config rejected", func(t *testing.T) {
		engine, err := rating.NewEngine(rating.DefaultConfig())
		require.NoError(t, err)

		_, err = NewApp(engine, nil)
		assert.Error(t, err)
	})
}

func TestReadPlayers(t *testing.T) {
	t.Run("valid inputs", func(t *testing.T) {
		app := newTestApp(t)
		fillForm(app, "alice", 1400, "bob", 1350)

		player1, player2, err := app.readPlayers()
		require.NoError(t, err)
		assert.Equal(t, rating.Player{ID: "alice", Rating: 1400, MatchesPlayed: 25}, player1)
		assert.Equal(t, rating.Player{ID: "bob", Rating: 1350, MatchesPlayed: 40}, player2)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		app := newTestApp(t)
		fillForm(app, "", 1400, "bob", 1350)

		_, _, err := app.readPlayers()
		assert.ErrorContains(t, err, "player 1")
	})

	t.Run("non-numeric rating rejected", func(t *testing.T) {
		app := newTestApp(t)
		fillForm(app, "alice", 1400, "bob", 1350)
		app.player2Rating.SetText("strong")

		_, _, err := app.readPlayers()
		assert.ErrorContains(t, err, "player 2")
	})
}

func TestSelectedFormat(t *testing.T) {
	app := newTestApp(t)

	// The dropdown starts on the configured default
	assert.Equal(t, rating.FormatTwoSets, app.selectedFormat())

	app.format.SetCurrentOption(0)
	assert.Equal(t, rating.Formats()[0], app.selectedFormat())
}

func TestSimulate(t *testing.T) {
	t.Run("records both outcomes", func(t *testing.T) {
		app := newTestApp(t)
		fillForm(app, "alice", 1400, "bob", 1350)

		require.NoError(t, app.Simulate())

		simulation := app.LastSimulation()
		require.NotNil(t, simulation)
		assert.Equal(t, "alice", simulation.IfPlayer1Wins.Winner.PlayerID)
		assert.Equal(t, "bob", simulation.IfPlayer2Wins.Winner.PlayerID)
		assert.Greater(t, simulation.Player1WinProbability, 0.5)

		text := app.results.GetText(true)
		assert.Contains(t, text, "If alice wins:")
		assert.Contains(t, text, "If bob wins:")
	})

	t.Run("score applies format weighting", func(t *testing.T) {
		app := newTestApp(t)
		fillForm(app, "alice", 1400, "bob", 1350)

		require.NoError(t, app.Simulate())
		unweighted := app.LastSimulation().IfPlayer1Wins.Winner.Delta

		app.score.SetText("6-4 6-3")
		require.NoError(t, app.Simulate())
		weighted := app.LastSimulation().IfPlayer1Wins.Winner.Delta

		// The two-set coefficient dampens the gain
		assert.Less(t, weighted, unweighted)
	})

	t.Run("invalid input renders error instead of result", func(t *testing.T) {
		app := newTestApp(t)
		fillForm(app, "alice", 1400, "alice", 1350)

		assert.Error(t, app.Simulate())
		assert.Nil(t, app.LastSimulation())
		assert.Contains(t, app.results.GetText(true), "Simulation Error")
	})
}

func TestReset(t *testing.T) {
	app := newTestApp(t)
	fillForm(app, "alice", 1400, "bob", 1350)
	require.NoError(t, app.Simulate())

	require.NoError(t, app.Reset())

	assert.Equal(t, "", app.player1Name.GetText())
	assert.Equal(t, "1500", app.player1Rating.GetText())
	assert.Nil(t, app.LastSimulation())
	assert.Contains(t, app.results.GetText(true), "No simulation yet")
}

func TestExportResult(t *testing.T) {
	t.Run("writes both hypothetical rows", func(t *testing.T) {
		t.Chdir(t.TempDir())

		app := newTestApp(t)
		fillForm(app, "alice", 1400, "bob", 1350)
		require.NoError(t, app.Simulate())

		require.NoError(t, app.ExportResult())

		raw, err := os.ReadFile(filepath.Join(".", "courtelo_simulation.csv"))
		require.NoError(t, err)

		content := string(raw)
		assert.Contains(t, content, "alice")
		assert.Contains(t, content, "bob")
	})

	t.Run("refuses without a simulation", func(t *testing.T) {
		app := newTestApp(t)
		assert.Error(t, app.ExportResult())
	})
}

func TestHandleGlobalInput(t *testing.T) {
	app := newTestApp(t)
	fillForm(app, "alice", 1400, "bob", 1350)

	t.Run("bound keys are consumed", func(t *testing.T) {
		event := tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModNone)
		assert.Nil(t, app.handleGlobalInput(event))
		assert.NotNil(t, app.LastSimulation())
	})

	t.Run("unbound keys pass through", func(t *testing.T) {
		event := tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)
		assert.Equal(t, event, app.handleGlobalInput(event))
	})
}

func TestStopWithoutRun(t *testing.T) {
	app := newTestApp(t)

	// Stop on a never-started app is a no-op
	app.Stop()
	assert.False(t, app.IsRunning())
}
