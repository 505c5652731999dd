package tui

import (
	"fmt"
	"strings"

	"browsed/internal/tui/styles"
	"browsed/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

const listHeight = 20

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Theme.Pane.Render(m.renderList()),
		styles.Theme.Pane.Render(m.renderPreview()),
	))
	sb.WriteString("\n")

	if m.mode != Normal {
		sb.WriteString(styles.Theme.Prompt.Render(m.input.View()))
		sb.WriteString("\n")
	}
	if status := m.status.View(); status != "" {
		sb.WriteString(status)
		sb.WriteString("\n")
	}
	sb.WriteString(m.help.View(m.keys))

	return styles.Theme.App.Render(sb.String())
}

func (m *Model) renderHeader() string {
	title := m.session.CurrentPath()
	if m.pane == MarkedPane {
		title = fmt.Sprintf("Marked files (%d)", m.listing.Len())
	}
	var extra []string
	if p := m.session.FilterPattern(); p != "" && m.pane == CurrentPane {
		extra = append(extra, fmt.Sprintf("filter %s: %s", m.session.FilterMode(), p))
	}
	if n := m.session.MarkedCount(); n > 0 && m.pane == CurrentPane {
		extra = append(extra, fmt.Sprintf("%d marked", n))
	}
	header := styles.Theme.Title.Render(title)
	if len(extra) > 0 {
		header += "  " + styles.Theme.Help.Render(strings.Join(extra, "  "))
	}
	return header
}

func (m *Model) renderList() string {
	if m.listing.Len() == 0 {
		if m.pane == MarkedPane {
			return styles.Theme.Help.Render("nothing marked")
		}
		return styles.Theme.Help.Render("empty")
	}

	// keep the cursor inside a window of listHeight rows
	start := 0
	if m.cursor >= listHeight {
		start = m.cursor - listHeight + 1
	}
	end := start + listHeight
	if end > m.listing.Len() {
		end = m.listing.Len()
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderItem(i, m.listing.Items[i]))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderItem(i int, it types.ListItem) string {
	mark := "[ ]"
	if it.Marked {
		mark = "[x]"
	}
	name := it.Name
	if it.IsDir {
		mark = "   "
		name += "/"
	}
	line := mark + " " + name
	if m.pane == MarkedPane {
		line = mark + " " + it.Path
	}

	switch {
	case i == m.cursor:
		return styles.Theme.Cursor.Render(line)
	case it.Marked:
		return styles.Theme.Marked.Render(line)
	case it.IsDir:
		return styles.Theme.Directory.Render(line)
	default:
		return styles.Theme.File.Render(line)
	}
}

func (m *Model) renderPreview() string {
	p := m.preview
	switch p.Type {
	case types.PreviewDirectory:
		return styles.Theme.Directory.Render("Directory") + "\n" + p.Path
	case types.PreviewFile:
		if p.Kind == types.FileKindImage {
			return fmt.Sprintf("%s\n%s\n%s",
				styles.Theme.Marked.Render("Image"),
				p.MimeType,
				humanize.Bytes(uint64(p.Size)))
		}
		return styles.Theme.Help.Render(p.Content)
	default:
		return styles.Theme.Help.Render("no preview")
	}
}
