package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"browsed/internal/command"
	"browsed/internal/log"
	"browsed/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with an isolated config file and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgFile = ""
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := execute(root)
	return out.String(), err
}

func decodeResponses(t *testing.T, out string) []command.Response {
	t.Helper()
	var resps []command.Response
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var r command.Response
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &r), scanner.Text())
		resps = append(resps, r)
	}
	return resps
}

func TestShellSession(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	testutils.CreateTree(t, src, "a.txt", "b.png", "sub/c.txt")

	script := strings.Join([]string{
		"# comment lines are skipped",
		"list_files",
		"mark_file 1",
		"navigate_into 0",
		"get_current_path",
		"list_marked_files",
		"go_to_parent",
		"filter_by_pattern \\.png$",
		"filter_by_pattern",
		"copy_marked_to " + dst,
		`{"id":"j1","command":"get_starting_path"}`,
		"mark_file",
		"bogus",
		"exit",
		"list_files",
	}, "\n")

	out, err := run(t, script, "shell", src)
	require.NoError(t, err)
	resps := decodeResponses(t, out)
	require.Len(t, resps, 12, "exit stops the shell")

	assert.Len(t, resps[0].Files, 3)
	assert.Equal(t, "sub", resps[0].Files[0].Name)
	assert.True(t, resps[1].OK)
	assert.Equal(t, filepath.Join(src, "sub"), resps[2].Path)
	assert.Equal(t, filepath.Join(src, "sub"), resps[3].Path)
	require.Len(t, resps[4].Files, 1)
	assert.Equal(t, "a.txt", resps[4].Files[0].Name)
	assert.Equal(t, src, resps[5].Path)
	require.Len(t, resps[6].Files, 1)
	assert.Equal(t, "b.png", resps[6].Files[0].Name)
	assert.Len(t, resps[7].Files, 3, "empty pattern clears the filter")
	assert.True(t, resps[8].OK, resps[8].Error)
	assert.FileExists(t, filepath.Join(dst, "a.txt"))
	assert.Equal(t, "j1", resps[9].ID)
	assert.Equal(t, filepath.Base(src), resps[9].Path)
	assert.False(t, resps[10].OK)
	assert.Contains(t, resps[10].Error, "needs an index")
	assert.False(t, resps[11].OK)
	assert.Contains(t, resps[11].Error, "unknown command")
}

func TestParseLine(t *testing.T) {
	req, err := parseLine("get_preview 3 7")
	require.NoError(t, err)
	require.NotNil(t, req.Index)
	require.NotNil(t, req.Generation)
	assert.Equal(t, 3, *req.Index)
	assert.Equal(t, uint64(7), *req.Generation)

	req, err = parseLine("navigate_to_path /tmp/with space")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/with space", req.Path)

	_, err = parseLine("mark_file x")
	assert.Error(t, err)
	_, err = parseLine("mark_file 1 y")
	assert.Error(t, err)

	_, err = parseLine("{broken")
	assert.Error(t, err)
}

func TestLs(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTree(t, dir, "a.txt", "b.log", ".hidden", "sub/")

	out, err := run(t, "", "ls", dir)
	require.NoError(t, err)
	assert.Equal(t, "sub/\na.txt\nb.log\n", out)

	out, err = run(t, "", "ls", dir, "--pattern", "*.txt", "--mode", "glob")
	require.NoError(t, err)
	assert.Equal(t, "a.txt\n", out)

	out, err = run(t, "", "ls", dir, "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"files"`)
	assert.Contains(t, out, `"is_dir": true`)

	_, err = run(t, "", "ls", filepath.Join(dir, "missing"))
	assert.Error(t, err)

	_, err = run(t, "", "ls", dir, "--pattern", "(")
	assert.Error(t, err)
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := run(t, "", "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mode: regex")

	_, err = run(t, "", "config", "init", path)
	assert.Error(t, err, "refuses to overwrite")

	_, err = run(t, "", "config", "init", path, "--force")
	assert.NoError(t, err)

	out, err = run(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "image_extensions:")
	assert.Contains(t, out, "placeholder: No preview available")
}

func TestLogFileClosedAfterRun(t *testing.T) {
	dir := t.TempDir()
	testutils.CreateTree(t, dir, "a.txt")
	logPath := filepath.Join(t.TempDir(), "browsed.log")

	_, err := run(t, "", "--log-file", logPath, "--debug", "ls", dir, "--pattern", "(")
	require.Error(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rejected filter pattern")
	assert.Error(t, log.Default().Close(), "file already released")
}
