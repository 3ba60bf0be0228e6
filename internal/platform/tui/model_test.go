package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
)

type memRecorder struct {
	runs []bricks.Summary
	err  error
}

func (r *memRecorder) RecordSummary(s bricks.Summary) error {
	r.runs = append(r.runs, s)
	return r.err
}

func newTestModel(t *testing.T, rec bricks.Recorder) Model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Bricks.Rows = 2
	m := NewModel(Options{
		Game:     cfg,
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 32, TickRate: 60, Seed: 1},
		Recorder: rec,
	})
	if m.session == nil {
		t.Fatalf("NewModel did not start a session: %v", m.err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelKeysNudgePaddle(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.session.Paddle().CX; got != 440 {
		t.Errorf("paddle cx = %v after right, expected 440", got)
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if got := m.session.Paddle().CX; got != 400 {
		t.Errorf("paddle cx = %v after a, expected 400", got)
	}
}

func TestModelMouseMovesPaddle(t *testing.T) {
	m := newTestModel(t, nil)

	// 80x30 arena cells: 10x20 pixels each
	m, _ = update(t, m, tea.MouseMsg{X: 30, Y: 29, Action: tea.MouseActionMotion})
	if got := m.session.Paddle().CX; got != 305 {
		t.Errorf("paddle cx = %v, expected 305", got)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 62})
	m, _ = update(t, m, tea.MouseMsg{X: 30, Y: 0, Action: tea.MouseActionMotion})
	if got := m.session.Paddle().CX; got != 152.5 {
		t.Errorf("paddle cx = %v after resize, expected 152.5", got)
	}
	if m.screen.Width() != 160 || m.screen.Height() != 60 {
		t.Errorf("screen = %dx%d, expected 160x60", m.screen.Width(), m.screen.Height())
	}
}

func TestModelTicksAdvanceSession(t *testing.T) {
	m := newTestModel(t, nil)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	m, cmd := update(t, m, TickMsg(t0))
	if cmd == nil {
		t.Fatal("tick should schedule the next tick")
	}
	m, _ = update(t, m, TickMsg(t0.Add(50*time.Millisecond)))

	pos, _ := m.session.Ball()
	if pos.CX <= 100 || pos.CY <= 350 {
		t.Errorf("ball did not move: (%v, %v)", pos.CX, pos.CY)
	}
	if sum := m.session.Summary(); sum.Frames != 2 {
		t.Errorf("Frames = %d, expected 2", sum.Frames)
	}

	view := m.View()
	if !strings.Contains(view, "seed 1") || !strings.Contains(view, "frame 2") {
		t.Errorf("status line missing from view:\n%s", view)
	}
}

func TestModelRestartJournalsAndReseeds(t *testing.T) {
	rec := &memRecorder{}
	m := newTestModel(t, rec)
	first := m.session

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.session == first || m.seed != 2 {
		t.Fatalf("restart kept the session or seed (seed %d)", m.seed)
	}
	if !first.Stopped() {
		t.Error("old session still running")
	}
	if len(rec.runs) != 1 || rec.runs[0].Outcome != bricks.OutcomeStopped || rec.runs[0].Seed != 1 {
		t.Errorf("journal = %+v", rec.runs)
	}

	// Input goes to the new session only
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if first.Paddle().CX != 400 || m.session.Paddle().CX != 440 {
		t.Error("input reached the stopped session")
	}
}

func TestModelQuitJournalsOnce(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	m := newTestModel(t, rec)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || !m.quitting {
		t.Fatal("ctrl+c should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}

	// A failed journal write is logged, not retried
	m, _ = update(t, m, TickMsg(time.Now()))
	if len(rec.runs) != 1 {
		t.Errorf("journaled %d times, expected once", len(rec.runs))
	}
	if sum, ok := m.Summary(); !ok || sum.Outcome != bricks.OutcomeStopped {
		t.Errorf("Summary() = %+v, %v", sum, ok)
	}
}

func TestModelGameOverJournals(t *testing.T) {
	rec := &memRecorder{}
	cfg := config.DefaultConfig()
	cfg.Bricks.Rows = 0
	cfg.Ball.X, cfg.Ball.Y = 50, 580
	cfg.Ball.VX, cfg.Ball.VY = 0, 100
	m := NewModel(Options{
		Game:     cfg,
		Runtime:  core.RuntimeConfig{ScreenW: 80, ScreenH: 32, TickRate: 60, Seed: 3},
		Recorder: rec,
	})

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m, _ = update(t, m, TickMsg(t0))
	m, _ = update(t, m, TickMsg(t0.Add(100*time.Millisecond)))

	if len(rec.runs) != 1 || rec.runs[0].Outcome != bricks.OutcomeGameOver {
		t.Fatalf("journal = %+v", rec.runs)
	}
	if !strings.Contains(m.View(), "GAME OVER") {
		t.Error("view should announce game over")
	}
	if row := m.screen.Row(m.screen.Height() / 2); !strings.Contains(row, " GAME OVER ") {
		t.Errorf("arena middle row = %q, expected the game over banner", row)
	}
	if c := m.screen.GetCell(40, 15); c.FG != core.ColorRed {
		t.Errorf("banner cell = %+v, expected red text", c)
	}
}

func TestModelRunningHasNoBanner(t *testing.T) {
	m := newTestModel(t, nil)
	m.View()
	if row := m.screen.Row(m.screen.Height() / 2); strings.Contains(row, "GAME OVER") || strings.Contains(row, "FAULT") {
		t.Errorf("running session drew a banner: %q", row)
	}
}

func TestModelBadLayout(t *testing.T) {
	m := NewModel(Options{
		Game:    config.DefaultConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Layout: "nope"},
	})
	if m.session != nil || m.err == nil {
		t.Fatal("unknown layout should fail to start")
	}
	if !strings.Contains(m.View(), "cannot start") {
		t.Error("view should show the start error")
	}

	// Ticks and keys are harmless without a session
	m, _ = update(t, m, TickMsg(time.Now()))
	update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
}

func TestGameKeyMapAction(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")}, core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, core.ActionRestart},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.Action(tt.msg); got != tt.want {
			t.Errorf("Action(%s) = %v, expected %v", tt.msg, got, tt.want)
		}
	}
}
