// Package tui is the terminal front end of the trip planner. It holds one
// planner.State, feeds key events through planner.Reduce, and draws the
// result of planner.Compose with lipgloss.
package tui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pkordes/travelvista/internal/domain"
	"github.com/pkordes/travelvista/internal/planner"
)

// Catalog is the read side of the destination catalog the model draws from.
// *service.CatalogService satisfies it.
type Catalog interface {
	Status() planner.CatalogStatus
	Done() <-chan struct{}
	Err() error
}

// focus is the region receiving key input.
type focus int

const (
	focusGrid focus = iota
	focusSearch
	focusTitle
	focusBudget
)

// defaultColumns is the grid width used before the first WindowSizeMsg.
const defaultColumns = 3

// catalogLoadedMsg reports that the catalog fetch has finished.
type catalogLoadedMsg struct{ err error }

// Model implements tea.Model for the planner.
type Model struct {
	catalog Catalog
	log     *slog.Logger
	keys    KeyMap
	help    help.Model

	state  planner.State
	focus  focus
	cursor int // index into the catalog grid
	result int // index into the open search results

	search textinput.Model
	editor textinput.Model // title or budget, depending on focus

	width, height int
	status        string
	err           string
}

// NewModel returns a model over catalog. log may be nil.
func NewModel(catalog Catalog, log *slog.Logger) Model {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "destination, country or region"
	search.CharLimit = 64

	editor := textinput.New()
	editor.CharLimit = 64

	return Model{
		catalog: catalog,
		log:     log,
		keys:    DefaultKeyMap,
		help:    help.New(),
		state:   planner.NewState(),
		search:  search,
		editor:  editor,
	}
}

// State returns the planner state the model currently shows.
func (m Model) State() planner.State {
	return m.state
}

// Init waits for the catalog load in the background.
func (m Model) Init() tea.Cmd {
	return waitForCatalog(m.catalog)
}

func waitForCatalog(c Catalog) tea.Cmd {
	return func() tea.Msg {
		<-c.Done()
		return catalogLoadedMsg{err: c.Err()}
	}
}

// Update implements tea.Model. Key input is routed by the focused region.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		if msg.err != nil {
			// The page shows an empty catalog; the error itself goes to the log.
			m.log.Error("catalog load failed", "error", msg.err)
		}
		m.clampCursor()
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.status, m.err = "", ""
		switch m.focus {
		case focusSearch:
			return m.handleSearchKeys(msg)
		case focusTitle, focusBudget:
			return m.handleEditorKeys(msg)
		default:
			return m.handleGridKeys(msg)
		}
	}
	return m, nil
}

func (m Model) handleGridKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	destinations := m.destinations()
	cols := m.columns()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.cursor -= cols
	case key.Matches(msg, m.keys.Down):
		m.cursor += cols
	case key.Matches(msg, m.keys.Left):
		m.cursor--
	case key.Matches(msg, m.keys.Right):
		m.cursor++
	case key.Matches(msg, m.keys.Select):
		if d, ok := m.current(destinations); ok {
			m.dispatch(planner.Select{Destination: d})
		}
	case key.Matches(msg, m.keys.Remove):
		if d, ok := m.current(destinations); ok {
			m.dispatch(planner.Deselect{ID: d.ID})
		}
	case key.Matches(msg, m.keys.Fav):
		if d, ok := m.current(destinations); ok {
			m.dispatch(planner.ToggleFavorite{ID: d.ID})
		}
	case key.Matches(msg, m.keys.Clear):
		m.dispatch(planner.ClearSelection{})
	case key.Matches(msg, m.keys.Save):
		// Saving is acknowledged but nothing is stored.
		m.log.Info("trip save requested", "destinations", len(m.state.Selection))
		m.status = "Trip saving is not available yet"
	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		m.result = 0
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Title):
		return m, m.startEditing(focusTitle, "Title: ", m.state.Draft.Title)
	case key.Matches(msg, m.keys.Budget):
		return m, m.startEditing(focusBudget, "Budget $", m.state.Draft.Budget)
	}
	m.clampCursor()
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	results := planner.Filter(m.destinations(), m.state.Query)

	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.search.Reset()
		m.search.Blur()
		m.dispatch(planner.SetQuery{Query: ""})
		m.focus = focusGrid
		return m, nil
	case tea.KeyUp:
		if m.result > 0 {
			m.result--
		}
		return m, nil
	case tea.KeyDown:
		if m.result < len(results.Results)-1 {
			m.result++
		}
		return m, nil
	case tea.KeyEnter:
		if !results.Open || len(results.Results) == 0 {
			return m, nil
		}
		d := results.Results[m.result]
		m.dispatch(planner.SelectFromSearch{Destination: d})
		m.search.Reset()
		m.search.Blur()
		m.focus = focusGrid
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.state.Query {
		m.dispatch(planner.SetQuery{Query: m.search.Value()})
		m.result = 0
	}
	return m, cmd
}

func (m Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.stopEditing()
		return m, nil
	case tea.KeyEnter:
		draft := m.state.Draft
		value := strings.TrimSpace(m.editor.Value())
		if m.focus == focusBudget {
			if _, err := planner.ParseBudget(value); err != nil {
				m.err = validationMessage(err)
				return m, nil
			}
			draft.Budget = value
		} else {
			draft.Title = value
		}
		m.dispatch(planner.EditDraft{Draft: draft})
		m.stopEditing()
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) startEditing(f focus, prompt, value string) tea.Cmd {
	m.focus = f
	m.editor.Prompt = prompt
	m.editor.SetValue(value)
	m.editor.CursorEnd()
	return m.editor.Focus()
}

func (m *Model) stopEditing() {
	m.editor.Blur()
	m.editor.Reset()
	m.focus = focusGrid
}

func (m *Model) dispatch(a planner.Action) {
	m.state = planner.Reduce(m.state, a)
	m.log.Debug("planner action", "action", actionName(a), "selected", len(m.state.Selection), "query", m.state.Query)
}

func (m Model) destinations() []domain.Destination {
	st := m.catalog.Status()
	if st.Loading {
		return nil
	}
	return st.Destinations
}

func (m Model) current(list []domain.Destination) (domain.Destination, bool) {
	if m.cursor < 0 || m.cursor >= len(list) {
		return domain.Destination{}, false
	}
	return list[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.destinations())
	switch {
	case n == 0:
		m.cursor = 0
	case m.cursor < 0:
		m.cursor = 0
	case m.cursor >= n:
		m.cursor = n - 1
	}
}

// columns is how many cards fit across the terminal.
func (m Model) columns() int {
	if m.width == 0 {
		return defaultColumns
	}
	return max(1, m.width/(cardWidth+2))
}

func actionName(a planner.Action) string {
	switch a.(type) {
	case planner.SetQuery:
		return "set_query"
	case planner.Select:
		return "select"
	case planner.SelectFromSearch:
		return "select_from_search"
	case planner.Deselect:
		return "deselect"
	case planner.ClearSelection:
		return "clear_selection"
	case planner.EditDraft:
		return "edit_draft"
	case planner.ToggleFavorite:
		return "toggle_favorite"
	default:
		return "unknown"
	}
}
