package view

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/smileynet/contacts/internal/contact"
)

// headerHeight is the number of lines above the card viewport (title + blank).
const headerHeight = 2

// DefaultBreakpoint is the terminal width below which cards use the narrow width.
const DefaultBreakpoint = 80

// Model is the root Bubble Tea model for the contact list.
// All state is owned here and mutated only inside Update.
type Model struct {
	fetcher    Fetcher
	ctx        context.Context
	logger     zerolog.Logger
	breakpoint int

	state  LoadState
	sel    Selection
	cursor int

	width    int
	height   int
	viewport viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     keyMap
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithFetcher sets the contact source.
func WithFetcher(f Fetcher) ModelOption {
	return func(m *Model) {
		m.fetcher = f
	}
}

// WithContext sets the context passed to each fetch.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithLogger sets the logger for load outcomes.
func WithLogger(l zerolog.Logger) ModelOption {
	return func(m *Model) {
		m.logger = l
	}
}

// WithBreakpoint sets the narrow/wide card breakpoint in columns.
func WithBreakpoint(cols int) ModelOption {
	return func(m *Model) {
		m.breakpoint = cols
	}
}

// NewModel creates a Model in the Loading state with nothing expanded.
func NewModel(opts ...ModelOption) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		ctx:        context.Background(),
		logger:     zerolog.Nop(),
		breakpoint: DefaultBreakpoint,
		state:      LoadingState(),
		viewport:   viewport.New(0, 0),
		spinner:    s,
		help:       help.New(),
		keys:       KeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// State returns the current load state.
func (m Model) State() LoadState { return m.state }

// Selection returns the current selection.
func (m Model) Selection() Selection { return m.sel }

// Cursor returns the index of the focused card.
func (m Model) Cursor() int { return m.cursor }

// Init starts the fetch and the loading spinner.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.spinner.Tick)
}

// fetchCmd returns a tea.Cmd that runs one fetch and wraps the result in a
// ContactsLoadedMsg.
func (m Model) fetchCmd() tea.Cmd {
	f, ctx := m.fetcher, m.ctx
	return func() tea.Msg {
		if f == nil {
			return ContactsLoadedMsg{Err: fmt.Errorf("view: no contact source configured")}
		}
		contacts, err := f.Fetch(ctx)
		return ContactsLoadedMsg{Contacts: contacts, Err: err}
	}
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = msg.Width
		m.resizeViewport()
		m.syncViewport()
		return m, nil

	case ContactsLoadedMsg:
		m = m.applyLoad(msg)
		m.syncViewport()
		return m, nil

	case RefreshMsg:
		if m.state.Kind() == Loading {
			return m, nil
		}
		m.state = LoadingState()
		m.syncViewport()
		return m, tea.Batch(m.fetchCmd(), m.spinner.Tick)

	case spinner.TickMsg:
		if m.state.Kind() != Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncViewport()
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// applyLoad stores a fetch outcome. A success replaces the collection
// wholesale; a selection whose contact vanished is cleared.
func (m Model) applyLoad(msg ContactsLoadedMsg) Model {
	if msg.Err != nil {
		m.logger.Error().Err(msg.Err).Msg("error fetching contacts")
		m.state = FailedState(msg.Err)
		return m
	}
	m.state = LoadedState(msg.Contacts)
	m.cursor = 0
	if id, ok := m.sel.ID(); ok && contact.IndexOf(m.state.Contacts(), id) < 0 {
		m.sel = Selection{}
	}
	m.logger.Debug().Int("count", len(msg.Contacts)).Msg("collection stored")
	return m
}

// handleKey processes key messages.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeViewport()
		m.syncViewport()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if m.state.Kind() == Loading {
			return m, nil
		}
		return m, func() tea.Msg { return RefreshMsg{} }
	}

	contacts := m.state.Contacts()
	if len(contacts) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(contacts) - 1
		}
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		if m.cursor >= len(contacts) {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Toggle):
		m.sel = m.sel.Toggle(contacts[m.cursor].ID)
	default:
		// pgup/pgdown and friends scroll the viewport directly.
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.syncViewport()
	return m, nil
}

// handleMouse toggles the card under a left click; wheel events scroll.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	contacts := m.state.Contacts()
	if len(contacts) == 0 || m.width == 0 {
		return m, nil
	}
	y := msg.Y - headerHeight
	if y < 0 || y >= m.viewport.Height {
		return m, nil
	}
	_, spans := renderCards(contacts, m.sel, m.cursor, m.width, m.breakpoint)
	idx := cardAt(spans, y+m.viewport.YOffset)
	if idx < 0 {
		return m, nil
	}

	m.cursor = idx
	m.sel = m.sel.Toggle(contacts[idx].ID)
	m.syncViewport()
	return m, nil
}

// footerHeight returns the number of lines used by the help bar.
func (m Model) footerHeight() int {
	return lipgloss.Height(m.help.View(m.keys))
}

// resizeViewport fits the viewport between header and help bar.
func (m *Model) resizeViewport() {
	h := m.height - headerHeight - m.footerHeight()
	if h < 1 {
		h = 1
	}
	m.viewport.Height = h
}

// syncViewport re-renders the body into the viewport and scrolls so the
// focused card is visible.
func (m *Model) syncViewport() {
	if m.width == 0 {
		return
	}
	switch m.state.Kind() {
	case Loading:
		m.viewport.SetContent(fmt.Sprintf("%s Loading contacts...", m.spinner.View()))
		m.viewport.GotoTop()
	case Failed:
		m.viewport.SetContent(errorStyle.Render("Error fetching contacts: "+FailureReason(m.state.Err())) +
			"\n\n" + mutedText.Render("Press r to reload"))
		m.viewport.GotoTop()
	case Loaded:
		contacts := m.state.Contacts()
		if len(contacts) == 0 {
			m.viewport.SetContent(mutedText.Render("No contacts. Press r to reload"))
			m.viewport.GotoTop()
			return
		}
		content, spans := renderCards(contacts, m.sel, m.cursor, m.width, m.breakpoint)
		m.viewport.SetContent(content)
		focused := spans[m.cursor]
		switch {
		case focused.start < m.viewport.YOffset:
			m.viewport.SetYOffset(focused.start)
		case focused.end > m.viewport.YOffset+m.viewport.Height:
			m.viewport.SetYOffset(focused.end - m.viewport.Height)
		}
	}
}

// View renders the title, the card viewport and the help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	title := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render(Title))
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.viewport.View(),
		m.help.View(m.keys),
	)
}
