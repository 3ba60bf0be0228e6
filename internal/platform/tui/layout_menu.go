package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-bricks/internal/config"
	"github.com/vovakirdan/tui-bricks/internal/core"
	"github.com/vovakirdan/tui-bricks/internal/games/bricks"
	"github.com/vovakirdan/tui-bricks/internal/registry"
	"github.com/vovakirdan/tui-bricks/internal/render"
)

// Preview size in cells.
const (
	previewCols = 40
	previewRows = 15
)

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	previewStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
)

// LayoutMenuModel lets users choose the brick layout before playing.
type LayoutMenuModel struct {
	layouts []registry.LayoutInfo
	cursor  int
	cfg     config.GameConfig
	seed    int64
	width   int
	height  int
	keys    MenuKeyMap
	help    help.Model

	preview string

	selected string
	quitting bool
}

// NewLayoutMenuModel creates the picker with the configured layout highlighted.
func NewLayoutMenuModel(cfg config.GameConfig, seed int64, width, height int) LayoutMenuModel {
	m := LayoutMenuModel{
		layouts: registry.List(),
		cfg:     cfg,
		seed:    seed,
		width:   width,
		height:  height,
		keys:    DefaultMenuKeyMap(),
		help:    help.New(),
	}
	for i, l := range m.layouts {
		if l.ID == cfg.Bricks.Layout {
			m.cursor = i
		}
	}
	m.refreshPreview()
	return m
}

// refreshPreview rasterizes a fresh session of the highlighted layout.
func (m *LayoutMenuModel) refreshPreview() {
	if len(m.layouts) == 0 {
		m.preview = ""
		return
	}
	id := m.layouts[m.cursor].ID

	store := render.NewStore()
	if _, err := bricks.New(store, m.cfg, bricks.WithSeed(m.seed), bricks.WithLayout(id)); err != nil {
		m.preview = lipgloss.NewStyle().
			Width(previewCols).
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Render(fmt.Sprintf("no preview: %v", err))
		return
	}

	v := viewport{arenaW: m.cfg.Arena.Width, arenaH: m.cfg.Arena.Height}
	v.resize(previewCols, previewRows)
	screen := core.NewScreen(previewCols, previewRows)
	Rasterize(screen, store.List(), v)
	m.preview = RenderScreen(screen)
}

// Init initializes the model.
func (m LayoutMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LayoutMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.refreshPreview()
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.layouts)-1 {
				m.cursor++
				m.refreshPreview()
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.layouts) > 0 {
				m.selected = m.layouts[m.cursor].ID
				return m, tea.Quit
			}
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// View renders the layout list next to the preview.
func (m LayoutMenuModel) View() string {
	if m.quitting || m.selected != "" {
		return ""
	}

	var list strings.Builder
	for i, l := range m.layouts {
		line := fmt.Sprintf("  %-14s %s", l.Title, l.ID)
		if i == m.cursor {
			line = menuSelectedStyle.Render(fmt.Sprintf("> %-14s %s", l.Title, l.ID))
		}
		list.WriteString(line)
		list.WriteString("\n")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(centerText("B R I C K S", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select layout:", m.width))
	b.WriteString("\n\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", previewStyle.Render(m.preview))
	for _, line := range strings.Split(body, "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// Selected returns the chosen layout ID, or "" if the user backed out.
func (m LayoutMenuModel) Selected() string {
	return m.selected
}

// RunLayoutMenu runs the layout picker and returns the chosen layout ID, or ""
// if the user quit.
func RunLayoutMenu(cfg config.GameConfig, seed int64, width, height int) (string, error) {
	p := tea.NewProgram(
		NewLayoutMenuModel(cfg, seed, width, height),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(LayoutMenuModel)
	if !ok {
		return "", nil
	}
	return m.Selected(), nil
}
