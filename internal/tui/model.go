// Package tui is a terminal front-end for a browsing session.
package tui

import (
	"fmt"

	"browsed/internal/errors"
	"browsed/internal/session"
	"browsed/internal/tui/components"
	"browsed/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

// Mode is the input mode of the model.
type Mode int

const (
	Normal Mode = iota
	FilterPrompt
	CopyPrompt
)

// Pane selects which listing is shown.
type Pane int

const (
	CurrentPane Pane = iota
	MarkedPane
)

// copyDoneMsg carries the results of a background copy.
type copyDoneMsg struct {
	dest    string
	results []types.CopyResult
}

// Model drives a session from key presses.
type Model struct {
	session *session.Session
	keys    KeyMap
	help    help.Model
	input   textinput.Model
	status  *components.StatusBar

	mode    Mode
	pane    Pane
	listing types.Listing
	cursor  int
	preview types.Preview

	showHelp bool
	width    int
	height   int
}

// New creates a model over s.
func New(s *session.Session) *Model {
	input := textinput.New()
	input.CharLimit = 256

	m := &Model{
		session: s,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		input:   input,
		status:  components.NewStatusBar(),
	}
	m.reload()
	return m
}

// Run starts the terminal UI and blocks until it exits.
func Run(s *session.Session, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(New(s), opts...).Run()
	return err
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case copyDoneMsg:
		m.status.SetLoading(false)
		copied, failed := types.CopySummary(msg.results)
		var bytes uint64
		for _, r := range msg.results {
			bytes += uint64(r.Bytes)
		}
		text := fmt.Sprintf("copied %d file(s), %s to %s", copied, humanize.Bytes(bytes), msg.dest)
		if failed > 0 {
			m.status.SetError(fmt.Errorf("%s; %d failed", text, failed))
		} else {
			m.status.SetText(text)
		}
		m.reload()
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case FilterPrompt, CopyPrompt:
			return m.handlePromptKeys(msg)
		default:
			return m.handleNormalKeys(msg)
		}
	}

	return m, m.status.Update(msg)
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.SetCursor(m.cursor - 1)

	case key.Matches(msg, m.keys.Down):
		m.SetCursor(m.cursor + 1)

	case key.Matches(msg, m.keys.Open):
		if m.pane != CurrentPane {
			break
		}
		moved, err := m.session.NavigateIntoAt(m.listing.Generation, m.cursor)
		m.report(err)
		if moved {
			m.cursor = 0
			m.status.SetText(m.session.CurrentPath())
		}
		m.reload()

	case key.Matches(msg, m.keys.Back):
		if m.pane != CurrentPane {
			break
		}
		if err := m.session.NavigateParent(); err != nil {
			m.report(err)
			break
		}
		m.cursor = 0
		m.status.Clear()
		m.reload()

	case key.Matches(msg, m.keys.Mark):
		if m.pane != CurrentPane {
			m.status.SetText("marks can only be changed from the directory listing")
			break
		}
		_, err := m.session.ToggleMarkAt(m.listing.Generation, m.cursor)
		m.report(err)
		m.reload()
		m.SetCursor(m.cursor + 1)

	case key.Matches(msg, m.keys.Unmark):
		if m.session.MarkedCount() == 0 {
			break
		}
		m.session.ClearMarks()
		m.status.SetText("marks cleared")
		m.reload()

	case key.Matches(msg, m.keys.View):
		if m.pane == CurrentPane {
			m.pane = MarkedPane
		} else {
			m.pane = CurrentPane
		}
		m.cursor = 0
		m.reload()

	case key.Matches(msg, m.keys.Filter):
		m.mode = FilterPrompt
		m.input.Prompt = "filter: "
		m.input.SetValue(m.session.FilterPattern())
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Copy):
		if m.status.Loading() {
			break
		}
		if m.session.MarkedCount() == 0 {
			m.status.SetText("no files marked")
			break
		}
		m.mode = CopyPrompt
		m.input.Prompt = "copy marked to: "
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Refresh):
		m.report(m.session.Refresh())
		m.reload()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}

	return m, nil
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = Normal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		value := m.input.Value()
		mode := m.mode
		m.mode = Normal
		m.input.Blur()

		if mode == FilterPrompt {
			if err := m.session.SetFilter(value); err != nil {
				m.report(err)
				return m, nil
			}
			m.pane = CurrentPane
			m.cursor = 0
			m.status.Clear()
			m.reload()
			return m, nil
		}

		if value == "" {
			m.status.SetText("copy cancelled")
			return m, nil
		}
		m.status.SetText("copying to " + value)
		return m, tea.Batch(m.status.SetLoading(true), m.copyMarked(value))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) copyMarked(dest string) tea.Cmd {
	s := m.session
	return func() tea.Msg {
		return copyDoneMsg{dest: dest, results: s.CopyMarkedTo(dest)}
	}
}

// report shows err in the status bar. A stale listing is reloaded silently.
func (m *Model) report(err error) {
	switch {
	case err == nil:
	case errors.IsStaleListing(err):
		m.status.SetText("listing changed, refreshed")
	case errors.IsAtRoot(err):
		m.status.SetText("already at the filesystem root")
	default:
		m.status.SetError(err)
	}
}

// reload fetches the listing for the active pane and clamps the cursor.
func (m *Model) reload() {
	if m.pane == MarkedPane {
		m.listing = m.session.ListMarked()
	} else {
		m.listing = m.session.ListCurrent(true)
	}
	m.SetCursor(m.cursor)
}

func (m *Model) refreshPreview() {
	if m.listing.Len() == 0 {
		m.preview = types.NoPreview()
		return
	}
	if m.pane == MarkedPane {
		m.preview = m.session.PreviewMarkedAt(m.cursor)
	} else {
		m.preview = m.session.PreviewAt(m.cursor)
	}
}

// SetCursor moves the cursor, clamped to the listing.
func (m *Model) SetCursor(pos int) {
	if pos >= m.listing.Len() {
		pos = m.listing.Len() - 1
	}
	if pos < 0 {
		pos = 0
	}
	m.cursor = pos
	m.refreshPreview()
}

// Getters

func (m *Model) Cursor() int {
	return m.cursor
}

func (m *Model) Mode() Mode {
	return m.mode
}

func (m *Model) Pane() Pane {
	return m.pane
}

func (m *Model) Listing() types.Listing {
	return m.listing
}

func (m *Model) Preview() types.Preview {
	return m.preview
}

func (m *Model) ShowHelp() bool {
	return m.showHelp
}

func (m *Model) Status() string {
	return m.status.Text()
}

// CurrentItem returns the row under the cursor.
func (m *Model) CurrentItem() (types.ListItem, bool) {
	if m.cursor >= m.listing.Len() {
		return types.ListItem{}, false
	}
	return m.listing.Items[m.cursor], true
}
