package components

import (
	"browsed/internal/tui/styles"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// StatusBar shows the outcome of the last action, with a spinner while a
// background action runs.
type StatusBar struct {
	text    string
	isError bool
	spinner spinner.Model
	loading bool
}

func NewStatusBar() *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Theme.Help

	return &StatusBar{spinner: s}
}

// SetLoading starts or stops the spinner. The returned command drives it.
func (s *StatusBar) SetLoading(loading bool) tea.Cmd {
	s.loading = loading
	if loading {
		return s.spinner.Tick
	}
	return nil
}

// Loading reports whether the spinner is running.
func (s *StatusBar) Loading() bool {
	return s.loading
}

func (s *StatusBar) SetText(text string) {
	s.text = text
	s.isError = false
}

// SetError shows err in the error style.
func (s *StatusBar) SetError(err error) {
	s.text = err.Error()
	s.isError = true
}

// Clear removes the current message.
func (s *StatusBar) Clear() {
	s.text = ""
	s.isError = false
}

func (s *StatusBar) Text() string {
	return s.text
}

func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if s.loading {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	}
	return nil
}

func (s *StatusBar) View() string {
	if s.text == "" && !s.loading {
		return ""
	}
	if s.loading {
		return styles.Theme.Help.Render(s.spinner.View() + " " + s.text)
	}
	if s.isError {
		return styles.Theme.Error.Render(s.text)
	}
	return styles.Theme.Help.Render(s.text)
}
