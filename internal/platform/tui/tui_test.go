package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ghostgrid/internal/config"
	"github.com/vovakirdan/ghostgrid/internal/core"
	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid"
	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/levels"
	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/levels/formats"
	"github.com/vovakirdan/ghostgrid/internal/games/ghostgrid/puzzle"
	"github.com/vovakirdan/ghostgrid/internal/storage"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var tick = TickMsg(time.Time{})

// lineLevel needs three moves right on a 5x1 board.
func lineLevel() levels.Level {
	return levels.Level{
		ID:        "line",
		Name:      "Line",
		Width:     5,
		Height:    1,
		MoveLimit: 10,
		Shapes:    formats.Batch{Kinds: []puzzle.Kind{1}, Positions: []puzzle.Vec{puzzle.V(0, 0)}},
		Ghosts:    formats.Batch{Kinds: []puzzle.Kind{1}, Positions: []puzzle.Vec{puzzle.V(3, 0)}},
	}
}

// oneSecondTicks makes every tick long enough to clear the move cooldown.
var oneSecondTicks = core.RuntimeConfig{ScreenW: 60, ScreenH: 20, TickRate: 1}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m tea.Model, msg tea.Msg) tea.Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{runes("w"), core.ActionUp, false},
		{runes("a"), core.ActionLeft, false},
		{runes("s"), core.ActionDown, false},
		{runes("d"), core.ActionRight, false},
		{runes("p"), core.ActionPause, false},
		{runes("r"), core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{runes("q"), core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{runes("x"), core.ActionNone, false},
	}

	for _, tc := range tests {
		action, quit := km.MapKey(tc.msg)
		if action != tc.expected || quit != tc.quit {
			t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.expected, tc.quit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{runes("k"), MenuActionUp},
		{runes("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runes("q"), MenuActionQuit},
		{runes("z"), MenuActionNone},
	}

	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.msg.String(), got, tc.expected)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "plain")
	s.SetCell(1, 1, core.Cell{Rune: '●', FG: core.ColorBrightCyan, BG: core.ColorTileDark})

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() produced %d lines, expected 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "plain") {
		t.Errorf("line 0 = %q, expected unstyled text first", lines[0])
	}
	if !strings.Contains(lines[1], "●") {
		t.Errorf("line 1 = %q, expected the styled rune", lines[1])
	}
}

func TestModelSavesWonRunOnce(t *testing.T) {
	store := openStore(t)
	game := ghostgrid.New(lineLevel(), config.DefaultGhostGridConfig(), nil)

	var m tea.Model = NewModel(game, oneSecondTicks, Options{Store: store, Player: "tester", Preset: "normal"})
	m.Init()

	for i := 0; i < 3; i++ {
		m = update(t, m, runes("d"))
		m = update(t, m, tick)
	}
	m = update(t, m, tick)
	m = update(t, m, tick)

	if !game.State().Won {
		t.Fatal("expected the level to be solved")
	}

	runs, err := store.RecentRuns("line", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(runs))
	}
	r := runs[0]
	if !r.Won || r.Moves != 3 || r.Player != "tester" || r.Preset != "normal" || r.Score != 170 {
		t.Errorf("saved run = %+v", r)
	}

	if last := m.(Model).LastRun(); last == nil || last.RunID != r.RunID {
		t.Errorf("LastRun() = %+v, expected run %s", last, r.RunID)
	}
}

func TestModelRestartAllowsSecondRun(t *testing.T) {
	store := openStore(t)
	l := lineLevel()
	l.MoveLimit = 1
	game := ghostgrid.New(l, config.DefaultGhostGridConfig(), nil)

	var m tea.Model = NewModel(game, oneSecondTicks, Options{Store: store})
	m.Init()

	for round := 0; round < 2; round++ {
		m = update(t, m, runes("w"))
		m = update(t, m, tick)
		if !game.State().GameOver {
			t.Fatalf("round %d: expected game over", round)
		}
		m = update(t, m, runes("r"))
		m = update(t, m, tick)
	}

	runs, err := store.RecentRuns("line", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 saved runs, got %d", len(runs))
	}
	for _, r := range runs {
		if r.Won || r.Player != storage.LocalPlayer {
			t.Errorf("run = %+v, expected a local loss", r)
		}
	}
}

func TestModelBackOnlyWhenOverOrPaused(t *testing.T) {
	game := ghostgrid.New(lineLevel(), config.DefaultGhostGridConfig(), nil)

	var m tea.Model = NewModel(game, oneSecondTicks, Options{Embedded: true})
	m.Init()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.(Model).BackToMenu() {
		t.Fatal("back should be ignored mid-game")
	}

	m = update(t, m, runes("p"))
	m = update(t, m, tick)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() {
		t.Error("back should work while paused")
	}
	if cmd != nil {
		t.Error("embedded model should not quit the program")
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	game := ghostgrid.New(lineLevel(), config.DefaultGhostGridConfig(), nil)

	m := NewModel(game, oneSecondTicks, Options{ScreenshotDir: dir})
	m.Init()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), ghostgrid.GameID+"_") {
		t.Fatalf("screenshot dir = %v", entries)
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "GhostGrid | Line") {
		t.Error("screenshot should contain the HUD")
	}
	if !strings.Contains(next.View(), "Saved ") {
		t.Error("expected a status message after the screenshot")
	}
}

func TestModelResizeKeepsProgress(t *testing.T) {
	game := ghostgrid.New(lineLevel(), config.DefaultGhostGridConfig(), nil)

	var m tea.Model = NewModel(game, oneSecondTicks, Options{})
	m.Init()

	m = update(t, m, runes("d"))
	m = update(t, m, tick)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if moves := game.Result().Moves; moves != 1 {
		t.Errorf("Moves after resize = %d, expected 1", moves)
	}
}

func TestMenuSelectsLevel(t *testing.T) {
	lvls := []levels.Level{lineLevel(), {ID: "second", Name: "Second", Width: 3, Height: 3}}
	store := openStore(t)
	if _, err := store.SaveRun(storage.RunResult{LevelID: "line", Won: true, Moves: 3}); err != nil {
		t.Fatal(err)
	}

	var m tea.Model = NewMenuModel(lvls, store, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	view := m.View()
	if !strings.Contains(view, "best: 3 moves") || !strings.Contains(view, "unsolved") {
		t.Errorf("menu view missing best runs:\n%s", view)
	}

	m = update(t, m, runes("j"))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	menu := next.(MenuModel)
	if menu.Selected() == nil || menu.Selected().ID != "second" {
		t.Errorf("Selected() = %+v, expected second", menu.Selected())
	}
	if cmd == nil {
		t.Error("standalone menu should quit after a selection")
	}
}

func TestSessionFlow(t *testing.T) {
	store := openStore(t)
	var m tea.Model = NewSessionModel(SessionConfig{
		Store:   store,
		Runtime: oneSecondTicks,
		Levels:  []levels.Level{lineLevel()},
		Game:    config.DefaultGhostGridConfig(),
		Player:  "alice",
	})
	m.Init()

	// Menu -> scoreboard -> menu.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.(SessionModel).screen != screenScores {
		t.Fatal("Tab should open the scoreboard")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).screen != screenMenu {
		t.Fatal("Esc should return to the menu")
	}

	// Menu -> game, solve, back to menu.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.(SessionModel).screen != screenGame {
		t.Fatal("Enter should start the level")
	}
	for i := 0; i < 3; i++ {
		m = update(t, m, runes("d"))
		m = update(t, m, tick)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).screen != screenMenu {
		t.Fatal("Esc after a win should return to the menu")
	}

	runs, err := store.PlayerRuns("alice", 10)
	if err != nil {
		t.Fatalf("PlayerRuns() failed: %v", err)
	}
	if len(runs) != 1 || !runs[0].Won {
		t.Errorf("runs = %+v, expected one win for alice", runs)
	}
	if !strings.Contains(m.View(), "best: 3 moves") {
		t.Error("menu should show the new best run")
	}
}

func TestThemeByName(t *testing.T) {
	mono := MonochromeTheme()
	if got := ThemeByName("mono"); got.MenuItemActive.GetUnderline() != mono.MenuItemActive.GetUnderline() {
		t.Error("ThemeByName(mono) should return the monochrome theme")
	}
	if ThemeByName("nope").MenuItemActive.GetUnderline() {
		t.Error("unknown theme should fall back to the default")
	}

	defer SetTheme(DefaultTheme())
	SetTheme(mono)
	if !GetTheme().MenuItemActive.GetUnderline() {
		t.Error("SetTheme() did not change the global theme")
	}
}
