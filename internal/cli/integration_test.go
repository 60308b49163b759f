package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/chatmark/internal/cli"
)

// testMessage has one heading and one paragraph with a code span: two
// blocks, three inlines.
const testMessage = "# Hello\n\nworld `code`\n"

// testDeepQuote nests quotes past the depth guard, producing error nodes.
var testDeepQuote = strings.Repeat("> ", 60) + "too deep\n"

// execute runs the root command with the given arguments and returns the
// combined captured output.
func execute(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	info := cli.BuildInfo{
		Version: "test",
		Commit:  "test",
		Date:    "test",
	}

	cmd := cli.NewRootCommand(info)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if stdin != nil {
		cmd.SetIn(stdin)
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String() + stderr.String(), err
}

func writeMessage(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestIntegration_ParseFileTree(t *testing.T) {
	t.Parallel()

	mdFile := writeMessage(t, t.TempDir(), "test.md", testMessage)

	output, err := execute(t, nil, "parse", mdFile, "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, output, "test.md")
	assert.Contains(t, output, "2 blocks, 3 inlines")
	assert.Contains(t, output, "message")
	assert.Contains(t, output, "├─ heading")
	assert.Contains(t, output, "└─ paragraph")
	assert.Contains(t, output, "code-span")
	assert.Contains(t, output, `"Hello"`)
}

func TestIntegration_FormatJSON(t *testing.T) {
	t.Parallel()

	mdFile := writeMessage(t, t.TempDir(), "test.md", testMessage)

	output, err := execute(t, nil, "parse", mdFile, "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Version string `json:"version"`
		Files   []struct {
			Path    string          `json:"path"`
			Blocks  int             `json:"blocks"`
			Inlines int             `json:"inlines"`
			Content json.RawMessage `json:"content"`
		} `json:"files"`
		Summary struct {
			FilesParsed int `json:"filesParsed"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &doc))

	assert.Equal(t, "1.0.0", doc.Version)
	require.Len(t, doc.Files, 1)
	assert.Equal(t, mdFile, doc.Files[0].Path)
	assert.Equal(t, 2, doc.Files[0].Blocks)
	assert.Equal(t, 3, doc.Files[0].Inlines)
	assert.NotEmpty(t, doc.Files[0].Content)
	assert.Equal(t, 1, doc.Summary.FilesParsed)

	assert.Contains(t, output, `"type": "heading"`)
	assert.Contains(t, output, `"type": "code"`)
}

func TestIntegration_FormatText(t *testing.T) {
	t.Parallel()

	mdFile := writeMessage(t, t.TempDir(), "test.md", testMessage)

	output, err := execute(t, nil, "parse", mdFile, "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, output, "heading [")
	assert.Contains(t, output, "paragraph [")
	assert.Contains(t, output, `"Hello"`)
	assert.Contains(t, output, "code-span [")
	assert.NotContains(t, output, "├─")
}

func TestIntegration_Stdin(t *testing.T) {
	t.Parallel()

	output, err := execute(t, strings.NewReader("hi **there**\n"), "parse", "--color", "never")
	require.NoError(t, err)

	assert.Contains(t, output, "<stdin>")
	assert.Contains(t, output, "bold")
	assert.Contains(t, output, `"there"`)
}

func TestIntegration_StdinDash(t *testing.T) {
	t.Parallel()

	output, err := execute(t, strings.NewReader("plain words\n"), "parse", "-", "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, output, "<stdin>:")
	assert.Contains(t, output, "paragraph [")
}

func TestIntegration_StrictCleanInput(t *testing.T) {
	t.Parallel()

	mdFile := writeMessage(t, t.TempDir(), "clean.md", testMessage)

	_, err := execute(t, nil, "parse", "--strict", mdFile)
	require.NoError(t, err)
}

func TestIntegration_StrictErrorNodes(t *testing.T) {
	t.Parallel()

	mdFile := writeMessage(t, t.TempDir(), "deep.md", testDeepQuote)

	output, err := execute(t, nil, "parse", "--strict", "--color", "never", mdFile)
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrParseErrorsFound)
	assert.Equal(t, cli.ExitParseErrors, cli.ExitCode(err))
	assert.Contains(t, output, "error")
}

func TestIntegration_ErrorNodesWithoutStrict(t *testing.T) {
	t.Parallel()

	mdFile := writeMessage(t, t.TempDir(), "deep.md", testDeepQuote)

	_, err := execute(t, nil, "parse", mdFile)
	require.NoError(t, err)
}

func TestIntegration_MissingPath(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "missing.md")

	_, err := execute(t, nil, "parse", missing)
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrUnreadableInputs)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestIntegration_MaxSizeExceeded(t *testing.T) {
	t.Parallel()

	mdFile := writeMessage(t, t.TempDir(), "big.md", strings.Repeat("x", 200))

	output, err := execute(t, nil, "parse", "--max-size", "100", "--color", "never", mdFile)
	require.Error(t, err)
	assert.ErrorIs(t, err, cli.ErrUnreadableInputs)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
	assert.Contains(t, output, "input exceeds size limit")
}

func TestIntegration_UnknownFormat(t *testing.T) {
	t.Parallel()

	mdFile := writeMessage(t, t.TempDir(), "test.md", testMessage)

	_, err := execute(t, nil, "parse", "--format", "xml", mdFile)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
	assert.Contains(t, err.Error(), "unknown format")
}

func TestIntegration_NegativeMaxSize(t *testing.T) {
	t.Parallel()

	mdFile := writeMessage(t, t.TempDir(), "test.md", testMessage)

	_, err := execute(t, nil, "parse", "--max-size", "-5", mdFile)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_UnknownFlag(t *testing.T) {
	t.Parallel()

	_, err := execute(t, strings.NewReader(""), "parse", "--bogus")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_UnknownCommand(t *testing.T) {
	t.Parallel()

	_, err := execute(t, nil, "bogus")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestIntegration_DetectLang(t *testing.T) {
	t.Parallel()

	mdFile := writeMessage(t, t.TempDir(), "snippet.md", "```\nfunc main() {}\n```\n")

	output, err := execute(t, nil, "parse", "--detect-lang", "--color", "never", mdFile)
	require.NoError(t, err)
	assert.Contains(t, output, "lang=go")
}

func TestIntegration_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeMessage(t, dir, "a.md", "first\n")
	writeMessage(t, dir, "b.md", "second\n")

	output, err := execute(t, nil, "parse", "--color", "never", dir)
	require.NoError(t, err)
	assert.Contains(t, output, "a.md")
	assert.Contains(t, output, "b.md")
	assert.Contains(t, output, "parsed 2 files")
}

func TestIntegration_VersionJSON(t *testing.T) {
	t.Parallel()

	output, err := execute(t, nil, "version", "--json")
	require.NoError(t, err)

	var v struct {
		Version  string `json:"version"`
		Commit   string `json:"commit"`
		Go       string `json:"go"`
		Platform string `json:"platform"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &v))

	assert.Equal(t, "test", v.Version)
	assert.Equal(t, "test", v.Commit)
	assert.NotEmpty(t, v.Go)
	assert.Contains(t, v.Platform, "/")
}

func TestIntegration_CompactJSON(t *testing.T) {
	t.Parallel()

	mdFile := writeMessage(t, t.TempDir(), "test.md", testMessage)

	output, err := execute(t, nil, "parse", "--format", "json", "--compact", mdFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Len(t, lines, 1)
}
