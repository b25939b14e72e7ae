// Package tui is the interactive terminal browser: a search box, category
// toggles, the list of show cards and a detail view for the selected show.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/podlanding/podcast-discovery/internal/config"
	"github.com/podlanding/podcast-discovery/internal/discovery"
	"github.com/podlanding/podcast-discovery/internal/models"
	"github.com/podlanding/podcast-discovery/internal/store"
)

// stateMsg carries a store snapshot into the update loop.
type stateMsg store.State

// loadDoneMsg reports the end of a load started by the browser.
type loadDoneMsg struct{ err error }

type model struct {
	ctx     context.Context
	store   *store.Store
	updates <-chan store.State
	now     func() time.Time

	view    discovery.State
	input   textinput.Model
	spinner spinner.Model
	cursor  int
	offset  int
	width   int
	height  int

	quitting bool
}

// newModel starts in the loading state since Init always triggers a load.
func newModel(ctx context.Context, s *store.Store, updates <-chan store.State, now func() time.Time) model {
	ti := textinput.New()
	ti.Placeholder = "Search podcasts..."
	ti.Prompt = "search> "
	ti.CharLimit = 256
	ti.Width = 48

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return model{
		ctx:     ctx,
		store:   s,
		updates: updates,
		now:     now,
		view:    discovery.NewState().Apply(s.Snapshot()).StartLoad(),
		input:   ti,
		spinner: sp,
	}
}

// Run starts the browser on the terminal and blocks until the user quits.
// The catalog is loaded as soon as the browser opens.
func Run(ctx context.Context, s *store.Store) error {
	return run(ctx, s, tea.WithAltScreen())
}

func run(ctx context.Context, s *store.Store, opts ...tea.ProgramOption) error {
	updates, cancel := s.Subscribe()
	defer cancel()

	m := newModel(ctx, s, updates, time.Now)
	p := tea.NewProgram(m, append(opts, tea.WithContext(ctx))...)
	if _, err := p.Run(); err != nil {
		logger := config.GetLogger()
		logger.Error().Err(err).Msg("Browser exited with error")
		return err
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForState(), m.load())
}

func (m model) load() tea.Cmd {
	return func() tea.Msg {
		return loadDoneMsg{err: m.store.Refresh(m.ctx)}
	}
}

func (m model) waitForState() tea.Cmd {
	if m.updates == nil {
		return nil
	}
	updates := m.updates
	return func() tea.Msg {
		st, ok := <-updates
		if !ok {
			return nil
		}
		return stateMsg(st)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampCursor()
		return m, nil

	case stateMsg:
		m.view = m.view.Apply(store.State(msg))
		m.clampCursor()
		return m, m.waitForState()

	case loadDoneMsg:
		// The outcome arrives through the store subscription.
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.view.Selected != nil {
		switch msg.String() {
		case "esc", "q", "enter", "backspace", "x":
			m.view = m.view.ClearSelection()
		}
		return m, nil
	}

	if m.input.Focused() {
		switch msg.String() {
		case "esc", "enter", "tab", "down":
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != m.view.Search {
			m.view = m.view.SetSearch(m.input.Value())
			m.cursor, m.offset = 0, 0
		}
		return m, cmd
	}

	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "/", "s":
		m.input.Focus()
		return m, textinput.Blink
	case "1":
		m.setCategory(models.CategoryAll)
	case "2":
		m.setCategory(models.CategoryPopular)
	case "3":
		m.setCategory(models.CategoryRecent)
	case "tab":
		m.setCategory(nextCategory(m.view.Category))
	case "r", "ctrl+r":
		if m.view.Loading {
			return m, nil
		}
		return m, tea.Batch(m.spinner.Tick, m.load())
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampCursor()
	case "down", "j":
		m.cursor++
		m.clampCursor()
	case "home", "g":
		m.cursor = 0
		m.clampCursor()
	case "end", "G":
		m.cursor = len(m.view.Visible()) - 1
		m.clampCursor()
	case "enter":
		visible := m.view.Visible()
		if !m.view.Loading && m.view.Err == nil && m.cursor < len(visible) {
			m.view = m.view.SelectShow(visible[m.cursor])
		}
	}
	return m, nil
}

func (m *model) setCategory(c models.Category) {
	if m.view.Category == c {
		return
	}
	m.view = m.view.SetCategory(c)
	m.cursor, m.offset = 0, 0
}

func nextCategory(c models.Category) models.Category {
	for i, candidate := range models.Categories {
		if candidate == c {
			return models.Categories[(i+1)%len(models.Categories)]
		}
	}
	return models.CategoryAll
}

// clampCursor keeps the cursor inside the visible list and scrolls the
// window so the cursor stays on screen.
func (m *model) clampCursor() {
	n := len(m.view.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// pageSize is the number of cards that fit between the header and the help line.
func (m model) pageSize() int {
	if m.height == 0 {
		return 8
	}
	page := (m.height - chromeLines) / cardLines
	if page < 1 {
		return 1
	}
	return page
}
