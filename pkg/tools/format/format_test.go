package format

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolbox/pkg/tool"
)

func run(t *testing.T, id string, text string, opts map[string]interface{}) (tool.Output, error) {
	t.Helper()
	r := tool.NewRegistry()
	require.NoError(t, Register(r))
	return tool.NewExecutor(r).Execute(context.Background(), id, tool.TextInput(text), opts, nil)
}

func TestRegister(t *testing.T) {
	r := tool.NewRegistry()
	require.NoError(t, Register(r))
	assert.Equal(t, 6, r.Count())
}

func TestJSONPrettify(t *testing.T) {
	t.Run("default two space indent", func(t *testing.T) {
		out, err := run(t, "format.json-prettify", `{"a":1}`, nil)
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"a\": 1\n}", out.Text)
	})

	t.Run("custom indent", func(t *testing.T) {
		out, err := run(t, "format.json-prettify", `{"a":1}`,
			map[string]interface{}{"indent": 4})
		require.NoError(t, err)
		assert.Equal(t, "{\n    \"a\": 1\n}", out.Text)
	})

	t.Run("key order preserved without sortKeys", func(t *testing.T) {
		out, err := run(t, "format.json-prettify", `{"b":1,"a":2}`, nil)
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"b\": 1,\n  \"a\": 2\n}", out.Text)
	})

	t.Run("sortKeys orders keys", func(t *testing.T) {
		out, err := run(t, "format.json-prettify", `{"b":1,"a":2}`,
			map[string]interface{}{"sortKeys": true})
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"a\": 2,\n  \"b\": 1\n}", out.Text)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := run(t, "format.json-prettify", "{bad", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid JSON: ")
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := run(t, "format.json-prettify", "  ", nil)
		require.Error(t, err)
		assert.Equal(t, "Please enter some JSON", err.Error())
	})

	t.Run("indent out of range", func(t *testing.T) {
		_, err := run(t, "format.json-prettify", `{}`,
			map[string]interface{}{"indent": 20})
		require.Error(t, err)
		assert.True(t, tool.IsKind(err, tool.KindInvalidOptions))
	})
}

func TestJSONMinify(t *testing.T) {
	t.Run("removes whitespace", func(t *testing.T) {
		out, err := run(t, "format.json-minify", "{\n  \"a\": [1, 2]\n}", nil)
		require.NoError(t, err)
		assert.Equal(t, `{"a":[1,2]}`, out.Text)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := run(t, "format.json-minify", "[1,", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid JSON: ")
	})
}

func TestYAMLPrettify(t *testing.T) {
	t.Run("normalizes indentation", func(t *testing.T) {
		out, err := run(t, "format.yaml-prettify", "a:\n      b: 1", nil)
		require.NoError(t, err)
		assert.Equal(t, "a:\n  b: 1\n", out.Text)
	})

	t.Run("custom indent", func(t *testing.T) {
		out, err := run(t, "format.yaml-prettify", "a:\n  b: 1",
			map[string]interface{}{"indent": 4})
		require.NoError(t, err)
		assert.Equal(t, "a:\n    b: 1\n", out.Text)
	})

	t.Run("key order preserved without sortKeys", func(t *testing.T) {
		out, err := run(t, "format.yaml-prettify", "b: 1\na: 2", nil)
		require.NoError(t, err)
		assert.Equal(t, "b: 1\na: 2\n", out.Text)
	})

	t.Run("sortKeys orders keys", func(t *testing.T) {
		out, err := run(t, "format.yaml-prettify", "b: 1\na: 2",
			map[string]interface{}{"sortKeys": true})
		require.NoError(t, err)
		assert.Equal(t, "a: 2\nb: 1\n", out.Text)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := run(t, "format.yaml-prettify", "a: [1,", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid YAML: ")
	})
}

func TestXMLPrettify(t *testing.T) {
	t.Run("indents nested elements", func(t *testing.T) {
		out, err := run(t, "format.xml-prettify", "<root><item attr=\"1\"><name>x</name></item></root>", nil)
		require.NoError(t, err)
		assert.Equal(t, "<root>\n  <item attr=\"1\">\n    <name>x</name>\n  </item>\n</root>", out.Text)
	})

	t.Run("self closing tags stay on one line", func(t *testing.T) {
		out, err := run(t, "format.xml-prettify", "<root><empty/></root>", nil)
		require.NoError(t, err)
		assert.Equal(t, "<root>\n  <empty/>\n</root>", out.Text)
	})

	t.Run("declaration kept", func(t *testing.T) {
		out, err := run(t, "format.xml-prettify", `<?xml version="1.0"?><a>x</a>`, nil)
		require.NoError(t, err)
		assert.Equal(t, "<?xml version=\"1.0\"?>\n<a>x</a>", out.Text)
	})

	t.Run("invalid xml", func(t *testing.T) {
		_, err := run(t, "format.xml-prettify", "<a><b></a>", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid XML: ")
	})
}

func TestSQLFormat(t *testing.T) {
	t.Run("breaks clauses onto lines and uppercases", func(t *testing.T) {
		out, err := run(t, "format.sql-format",
			"select id, name from users where age > 21 and city = 'NYC' order by name", nil)
		require.NoError(t, err)
		assert.Equal(t,
			"SELECT id, name\nFROM users\nWHERE age > 21\n  AND city = 'NYC'\nORDER BY name",
			out.Text)
	})

	t.Run("lowercase keywords", func(t *testing.T) {
		out, err := run(t, "format.sql-format", "SELECT * FROM t",
			map[string]interface{}{"uppercase": false})
		require.NoError(t, err)
		assert.Equal(t, "select *\nfrom t", out.Text)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := run(t, "format.sql-format", "", nil)
		require.Error(t, err)
		assert.Equal(t, "Please enter a SQL query", err.Error())
	})
}

func TestMarkdownPreview(t *testing.T) {
	t.Run("renders html document", func(t *testing.T) {
		out, err := run(t, "format.markdown-preview", "# Title\n\nSome **bold** text.", nil)
		require.NoError(t, err)
		assert.Contains(t, out.Text, "<!DOCTYPE html>")
		assert.Contains(t, out.Text, "<h1>Title</h1>")
		assert.Contains(t, out.Text, "<strong>bold</strong>")
		assert.Contains(t, out.Text, "</html>")
	})

	t.Run("gfm tables", func(t *testing.T) {
		out, err := run(t, "format.markdown-preview", "| a | b |\n|---|---|\n| 1 | 2 |", nil)
		require.NoError(t, err)
		assert.Contains(t, out.Text, "<table>")
	})

	t.Run("hard breaks option", func(t *testing.T) {
		out, err := run(t, "format.markdown-preview", "line one\nline two",
			map[string]interface{}{"breaks": true})
		require.NoError(t, err)
		assert.Contains(t, out.Text, "<br")
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := run(t, "format.markdown-preview", " ", nil)
		require.Error(t, err)
		assert.Equal(t, "Please enter some Markdown", err.Error())
	})
}
