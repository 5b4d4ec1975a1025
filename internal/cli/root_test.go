package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlagState restores the package-level flag variables to their registered
// defaults so values parsed by one Execute call on the shared rootCmd do not
// leak into the next.
func resetFlagState() {
	cfgFile = ""
	logLevel = "warn"
	listCategory = ""
	runText = ""
	runFiles = nil
	runFields = nil
	runFieldFiles = nil
	runOpts = nil
	runOptsJSON = ""
	runOut = ""
	runTimeout = 0
	runProgress = false
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlagState()
	root := GetRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, err := executeCommand(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "toolbox version "+GetVersion())
}

func TestListCommand(t *testing.T) {
	t.Run("lists all tools", func(t *testing.T) {
		out, err := executeCommand(t, "list")
		require.NoError(t, err)
		assert.Contains(t, out, "format.json-prettify")
		assert.Contains(t, out, "crypto.base64-encode")
		assert.Contains(t, out, "time.cron")
		assert.Contains(t, out, "tools\n")
	})

	t.Run("filters by category", func(t *testing.T) {
		out, err := executeCommand(t, "list", "--category", "diff")
		require.NoError(t, err)
		assert.Contains(t, out, "diff.text")
		assert.NotContains(t, out, "crypto.base64-encode")
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := executeCommand(t, "list", "--category", "nonsense")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown category")
	})
}

func TestSearchCommand(t *testing.T) {
	t.Run("finds tools by keyword", func(t *testing.T) {
		out, err := executeCommand(t, "search", "base64")
		require.NoError(t, err)
		assert.Contains(t, out, "crypto.base64-encode")
		assert.Contains(t, out, "crypto.base64-decode")
	})

	t.Run("reports no matches", func(t *testing.T) {
		out, err := executeCommand(t, "search", "zzzzzz")
		require.NoError(t, err)
		assert.Contains(t, out, "No tools match")
	})
}

func TestInfoCommand(t *testing.T) {
	t.Run("shows tool descriptor", func(t *testing.T) {
		out, err := executeCommand(t, "info", "format.json-prettify")
		require.NoError(t, err)
		assert.Contains(t, out, "JSON Prettify")
		assert.Contains(t, out, "Category: Format")
		assert.Contains(t, out, "indent")
		assert.Contains(t, out, "sortKeys")
	})

	t.Run("unknown tool errors", func(t *testing.T) {
		_, err := executeCommand(t, "info", "no-such-tool")
		require.Error(t, err)
	})
}

func TestRunCommand(t *testing.T) {
	t.Run("runs a text tool", func(t *testing.T) {
		out, err := executeCommand(t, "run", "crypto.base64-encode", "-i", "hello")
		require.NoError(t, err)
		assert.Equal(t, "aGVsbG8=", strings.TrimSpace(out))
	})

	t.Run("applies options", func(t *testing.T) {
		out, err := executeCommand(t, "run", "format.json-minify", "-i", `{ "a": 1 }`)
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, strings.TrimSpace(out))
	})

	t.Run("rejects malformed option flag", func(t *testing.T) {
		_, err := executeCommand(t, "run", "crypto.base64-encode", "-i", "x", "-o", "urlSafe")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected key=value")
	})

	t.Run("unknown tool errors", func(t *testing.T) {
		_, err := executeCommand(t, "run", "no-such-tool", "-i", "x")
		require.Error(t, err)
	})
}

func TestFileLogging(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "toolbox.log")
	cfgPath := filepath.Join(dir, "toolbox.json")

	cfgJSON := fmt.Sprintf(`{"logging": {"level": "debug", "file": %q, "console": false}}`, logPath)
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgJSON), 0o644))

	out, err := executeCommand(t, "--config", cfgPath, "run", "crypto.base64-encode", "-i", "hello")
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8=", strings.TrimSpace(out))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Executing tool")
	assert.Contains(t, string(data), "crypto.base64-encode")
}

func TestCoerceOption(t *testing.T) {
	assert.Equal(t, true, coerceOption("true"))
	assert.Equal(t, float64(4), coerceOption("4"))
	assert.Equal(t, "hello", coerceOption("hello"))
	assert.Equal(t, "snake_case", coerceOption("snake_case"))
}
