package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
	"github.com/vovakirdan/tui-bricks/internal/render"
)

// Lines below the arena: status and help.
const chromeLines = 2

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	overStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	faultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Options configures the game screen.
type Options struct {
	Game     config.GameConfig
	Runtime  core.RuntimeConfig
	Logger   *log.Logger     // Nil discards
	Recorder bricks.Recorder // Nil disables the journal
}

// Model is the Bubble Tea model running one brick session at a time.
type Model struct {
	opts   Options
	logger *log.Logger
	bus    *core.Bus
	view   *viewport
	screen *core.Screen
	keys   GameKeyMap
	help   help.Model
	cache  styles

	store    *render.Store
	session  *bricks.Session
	seed     int64
	recorded bool
	err      error // Last session construction error

	quitting bool
}

// NewModel creates the game model and its first session.
func NewModel(opts Options) Model {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	view := &viewport{arenaW: opts.Game.Arena.Width, arenaH: opts.Game.Arena.Height}
	view.resize(opts.Runtime.ScreenW, opts.Runtime.ScreenH-chromeLines)

	m := Model{
		opts:   opts,
		logger: logger,
		bus:    core.NewBus(),
		view:   view,
		screen: core.NewScreen(view.cols, view.rows),
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		cache:  make(styles),
		seed:   opts.Runtime.Seed,
	}
	m.help.Width = opts.Runtime.ScreenW
	m.newSession()
	return m
}

// newSession replaces the current session with a fresh one at m.seed.
func (m *Model) newSession() {
	store := render.NewStore()
	store.SetRoot(m.view.root)

	s, err := bricks.New(store, m.opts.Game,
		bricks.WithInput(m.bus),
		bricks.WithSeed(m.seed),
		bricks.WithLayout(m.layout()),
		bricks.WithLogger(m.logger),
	)
	if err != nil {
		m.logger.Error("cannot start session", "err", err)
		m.store, m.session, m.err = nil, nil, err
		return
	}
	m.store, m.session, m.err = store, s, nil
	m.recorded = false
}

func (m *Model) layout() string {
	if m.opts.Runtime.Layout != "" {
		return m.opts.Runtime.Layout
	}
	return m.opts.Game.Bricks.Layout
}

// finish stops the current session and journals it once.
func (m *Model) finish() {
	if m.session == nil {
		return
	}
	m.session.Stop()
	m.record()
}

// record journals the session the first time it is seen done.
func (m *Model) record() {
	if m.session == nil || m.recorded || !m.session.Done() {
		return
	}
	m.recorded = true

	sum := m.session.Summary()
	m.logger.Info("session finished",
		"id", sum.ID,
		"outcome", sum.Outcome,
		"frames", sum.Frames,
		"bricks_left", sum.BricksLeft,
	)
	if m.opts.Recorder == nil {
		return
	}
	if err := m.opts.Recorder.RecordSummary(sum); err != nil {
		m.logger.Warn("could not journal run", "id", sum.ID, "err", err)
	}
}

// Init starts the frame ticks.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress {
			m.bus.PublishPointer(m.view.pointer(msg.X, msg.Y))
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.view.resize(msg.Width, msg.Height-chromeLines)
		m.screen.Resize(m.view.cols, m.view.rows)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.finish()
		m.quitting = true
		return m, tea.Quit
	case core.ActionRestart:
		m.finish()
		m.seed++
		m.newSession()
		return m, nil
	}

	m.bus.PublishKey(core.KeyEvent{Key: msg.String(), Action: action})
	return m, nil
}

// handleTick advances the session to the tick's timestamp.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.session != nil {
		// Faults are logged by the session and shown in the status line
		_ = m.session.Frame(now)
		m.record()
	}
	return m, tickCmd(m.opts.Runtime.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	if m.store != nil {
		Rasterize(m.screen, m.store.List(), *m.view)
		if banner := m.banner(); banner != "" {
			m.screen.DrawTextCentered(m.screen.Height()/2, banner, core.ColorRed)
		}
		b.WriteString(renderScreen(m.screen, m.cache))
	}
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// banner is drawn across the middle of the arena once the session is over.
func (m Model) banner() string {
	if m.session == nil {
		return ""
	}
	switch m.session.Summary().Outcome {
	case bricks.OutcomeGameOver:
		return " GAME OVER "
	case bricks.OutcomeFault:
		return " FAULT "
	}
	return ""
}

func (m Model) statusLine() string {
	if m.session == nil {
		return faultStyle.Render(fmt.Sprintf(" cannot start: %v ", m.err))
	}

	sum := m.session.Summary()
	line := statusStyle.Render(fmt.Sprintf("%s · seed %d · bricks %d/%d · frame %d",
		sum.Layout, sum.Seed, sum.BricksLeft, sum.BricksTotal, sum.Frames))

	switch sum.Outcome {
	case bricks.OutcomeGameOver:
		line += "  " + overStyle.Render("GAME OVER - r to play again")
	case bricks.OutcomeFault:
		line += "  " + faultStyle.Render(" "+sum.Fault+" ")
	}
	return line
}

// Summary returns the summary of the current session, if there is one.
func (m Model) Summary() (bricks.Summary, bool) {
	if m.session == nil {
		return bricks.Summary{}, false
	}
	return m.session.Summary(), true
}

// Run starts the Bubble Tea program and returns the last session's summary.
func Run(opts Options) (bricks.Summary, error) {
	model := NewModel(opts)
	if model.err != nil {
		return bricks.Summary{}, model.err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return bricks.Summary{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return bricks.Summary{}, nil
	}
	sum, _ := m.Summary()
	return sum, nil
}
