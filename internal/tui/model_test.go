package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"browsed/internal/config"
	"browsed/internal/log"
	"browsed/internal/session"
	"browsed/pkg/testutils"
	"browsed/pkg/types"

	alsrt "github.com/alecthomas/assert"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModel(t *testing.T, dir string) *Model {
	t.Helper()
	s, err := session.New(config.NewTestConfig(),
		session.WithStartDir(dir),
		session.WithLogger(log.NewLogger(log.WithOutput(&bytes.Buffer{}))))
	require.NoError(t, err)
	return New(s)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m *Model, msgs ...tea.Msg) tea.Cmd {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var model tea.Model
		model, cmd = m.Update(msg)
		require.Same(t, m, model)
	}
	return cmd
}

func typeText(t *testing.T, m *Model, text string) {
	t.Helper()
	for _, r := range text {
		press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestModelInitialization(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTree(t, dir, "a.txt", "b.txt", "sub/")
	m := newModel(t, dir)

	alsrt.Equal(t, 0, m.Cursor(), "cursor should start at index 0")
	alsrt.Equal(t, Normal, m.Mode(), "initial mode should be Normal")
	alsrt.Equal(t, 3, m.Listing().Len())
	alsrt.Contains(t, testutils.StripANSI(m.View()), dir, "header should show the location")
	assert.Equal(t, types.PreviewDirectory, m.Preview().Type, "first row is the directory")
}

func TestModelCursorBounds(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTree(t, dir, "a.txt", "b.txt")
	m := newModel(t, dir)

	press(t, m, runes("k"))
	assert.Equal(t, 0, m.Cursor())

	press(t, m, runes("j"), runes("j"), tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Cursor())

	m.SetCursor(-4)
	assert.Equal(t, 0, m.Cursor())
	m.SetCursor(100)
	assert.Equal(t, 1, m.Cursor())
}

func TestModelEmptyDirectory(t *testing.T) {
	m := newModel(t, t.TempDir())

	press(t, m, runes("j"), runes(" "), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 0, m.Cursor())
	assert.True(t, m.Preview().IsNone())
	_, ok := m.CurrentItem()
	assert.False(t, ok)
	alsrt.Contains(t, testutils.StripANSI(m.View()), "empty")
}

func TestModelNavigation(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTree(t, dir, "dir1/inner.txt", "file.txt")
	m := newModel(t, dir)

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	item, ok := m.CurrentItem()
	require.True(t, ok)
	alsrt.Equal(t, "inner.txt", item.Name, "should have navigated into dir1")

	press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	item, _ = m.CurrentItem()
	assert.Equal(t, "dir1", item.Name)

	// opening a file does nothing
	press(t, m, runes("j"), runes("l"))
	item, _ = m.CurrentItem()
	assert.Equal(t, "file.txt", item.Name)
	assert.Empty(t, m.Status())
}

func TestModelMarkAndMarkedPane(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTree(t, dir, "a.txt", "b.txt", "sub/")
	m := newModel(t, dir)

	// directories cannot be marked
	press(t, m, runes(" "))
	assert.False(t, m.Listing().Items[0].Marked)
	assert.Equal(t, 1, m.Cursor(), "mark advances the cursor")

	press(t, m, runes(" "))
	assert.True(t, m.Listing().Items[1].Marked)
	alsrt.Contains(t, testutils.StripANSI(m.View()), "[x] a.txt")

	press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, MarkedPane, m.Pane())
	require.Equal(t, 1, m.Listing().Len())
	assert.Equal(t, filepath.Join(dir, "a.txt"), m.Listing().Items[0].Path)
	assert.Equal(t, types.FileKindOther, m.Preview().Kind)

	press(t, m, runes(" "))
	assert.Contains(t, m.Status(), "directory listing")

	press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, CurrentPane, m.Pane())

	press(t, m, runes("x"))
	assert.Equal(t, "marks cleared", m.Status())
	assert.False(t, m.Listing().Items[1].Marked)
	assert.Equal(t, 0, m.session.MarkedCount())
}

func TestModelFilterPrompt(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTree(t, dir, "alpha.txt", "beta.log", "gamma.txt")
	m := newModel(t, dir)

	cmd := press(t, m, runes("/"))
	assert.NotNil(t, cmd, "focusing the input blinks the cursor")
	assert.Equal(t, FilterPrompt, m.Mode())

	typeText(t, m, "txt")
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, Normal, m.Mode())
	assert.Equal(t, 2, m.Listing().Len())
	alsrt.Contains(t, testutils.StripANSI(m.View()), "filter regex: txt")

	// invalid pattern keeps the filter
	press(t, m, runes("/"))
	typeText(t, m, "[")
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.Listing().Len())
	assert.Contains(t, m.Status(), "invalid filter pattern")

	// escape cancels, empty clears
	press(t, m, runes("/"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, Normal, m.Mode())
	assert.Equal(t, 2, m.Listing().Len())

	press(t, m, runes("/"))
	for i := 0; i < 3; i++ {
		press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 3, m.Listing().Len())
}

func TestModelCopyPrompt(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutils.CreateTestFilesWithContent(t, src, map[string]string{"a.txt": "hello"})
	m := newModel(t, src)

	press(t, m, runes("c"))
	assert.Equal(t, Normal, m.Mode())
	assert.Equal(t, "no files marked", m.Status())

	press(t, m, runes(" "), runes("c"))
	require.Equal(t, CopyPrompt, m.Mode())
	typeText(t, m, dst)
	cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	press(t, m, runes("c"))
	assert.Equal(t, Normal, m.Mode(), "no second prompt while a copy runs")

	// run the copy synchronously and feed its result back
	press(t, m, copyDoneMsg{dest: dst, results: m.session.CopyMarkedTo(dst)})
	assert.Contains(t, m.Status(), "copied 1 file(s), 5 B")

	data, err := os.ReadFile(filepath.Join(dst, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	// a second copy collides
	press(t, m, copyDoneMsg{dest: dst, results: m.session.CopyMarkedTo(dst)})
	assert.Contains(t, m.Status(), "1 failed")
}

func TestModelKeyHandling(t *testing.T) {
	t.Run("quit on q", func(t *testing.T) {
		m := newModel(t, t.TempDir())
		cmd := press(t, m, runes("q"))
		require.NotNil(t, cmd)
		_, isQuit := cmd().(tea.QuitMsg)
		assert.True(t, isQuit)
	})

	t.Run("toggle help on ?", func(t *testing.T) {
		m := newModel(t, t.TempDir())
		press(t, m, runes("?"))
		assert.True(t, m.ShowHelp())
		alsrt.Contains(t, testutils.StripANSI(m.View()), "copy marked")
		press(t, m, runes("?"))
		assert.False(t, m.ShowHelp())
	})

	t.Run("parent at root", func(t *testing.T) {
		m := newModel(t, "/")
		press(t, m, runes("h"))
		assert.Equal(t, "already at the filesystem root", m.Status())
	})

	t.Run("window size", func(t *testing.T) {
		m := newModel(t, t.TempDir())
		press(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
		assert.Equal(t, 120, m.help.Width)
	})
}

func TestModelRefresh(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTree(t, dir, "a.txt")
	m := newModel(t, dir)

	testutils.CreateTree(t, dir, "b.txt")
	assert.Equal(t, 1, m.Listing().Len())
	press(t, m, runes("r"))
	assert.Equal(t, 2, m.Listing().Len())
}
