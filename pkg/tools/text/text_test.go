package text

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

func TestCaseConvert(t *testing.T) {
	cases := []struct {
		caseType string
		in       string
		want     string
	}{
		{"uppercase", "hello world", "HELLO WORLD"},
		{"lowercase", "Hello World", "hello world"},
		{"titlecase", "hello world", "Hello World"},
		{"sentencecase", "hello world. second SENTENCE.", "Hello world. Second sentence."},
		{"camelCase", "hello world", "helloWorld"},
		{"camelCase", "some-kebab_mix", "someKebabMix"},
		{"PascalCase", "hello world", "HelloWorld"},
		{"snake_case", "helloWorld example", "hello_world_example"},
		{"SCREAMING_SNAKE_CASE", "hello world", "HELLO_WORLD"},
		{"kebab-case", "Hello World", "hello-world"},
		{"kebab-case", "XMLHttpRequest", "xml-http-request"},
	}

	for _, tc := range cases {
		t.Run(tc.caseType+"/"+tc.in, func(t *testing.T) {
			out, err := run(t, "text.case-convert", tc.in, map[string]interface{}{"caseType": tc.caseType})
			require.NoError(t, err)
			assert.Equal(t, tc.want, out.Text)
		})
	}

	t.Run("empty input", func(t *testing.T) {
		_, err := run(t, "text.case-convert", "", nil)
		require.Error(t, err)
		assert.Equal(t, "Please enter some text", err.Error())
	})
}

func TestFindReplace(t *testing.T) {
	t.Run("literal replace all", func(t *testing.T) {
		out, err := run(t, "text.find-replace", "a.b a.b",
			map[string]interface{}{"find": "a.b", "replace": "x"})
		require.NoError(t, err)
		assert.Equal(t, "x x", out.Text)
	})

	t.Run("literal find is not regex", func(t *testing.T) {
		_, err := run(t, "text.find-replace", "axb",
			map[string]interface{}{"find": "a.b", "replace": "x"})
		require.Error(t, err)
		assert.Equal(t, "No matches found", err.Error())
	})

	t.Run("regex with group expansion", func(t *testing.T) {
		out, err := run(t, "text.find-replace", "john smith",
			map[string]interface{}{"find": `(\w+) (\w+)`, "replace": "$2 $1", "useRegex": true})
		require.NoError(t, err)
		assert.Equal(t, "smith john", out.Text)
	})

	t.Run("case insensitive", func(t *testing.T) {
		out, err := run(t, "text.find-replace", "Hello HELLO",
			map[string]interface{}{"find": "hello", "replace": "hi", "caseSensitive": false})
		require.NoError(t, err)
		assert.Equal(t, "hi hi", out.Text)
	})

	t.Run("replace first only", func(t *testing.T) {
		out, err := run(t, "text.find-replace", "a a a",
			map[string]interface{}{"find": "a", "replace": "b", "replaceAll": false})
		require.NoError(t, err)
		assert.Equal(t, "b a a", out.Text)
	})

	t.Run("invalid regex", func(t *testing.T) {
		_, err := run(t, "text.find-replace", "text",
			map[string]interface{}{"find": "[unclosed", "useRegex": true})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid regex: ")
	})

	t.Run("empty pattern", func(t *testing.T) {
		_, err := run(t, "text.find-replace", "text", nil)
		require.Error(t, err)
		assert.Equal(t, "Please enter a search pattern", err.Error())
	})
}

func TestLineEndings(t *testing.T) {
	t.Run("to lf", func(t *testing.T) {
		out, err := run(t, "text.line-endings", "a\r\nb\rc\nd", nil)
		require.NoError(t, err)
		assert.Equal(t, "a\nb\nc\nd", out.Text)
	})

	t.Run("to crlf", func(t *testing.T) {
		out, err := run(t, "text.line-endings", "a\nb\r\nc",
			map[string]interface{}{"targetEnding": "crlf"})
		require.NoError(t, err)
		assert.Equal(t, "a\r\nb\r\nc", out.Text)
	})
}

func TestRemoveDuplicates(t *testing.T) {
	t.Run("removes repeated lines", func(t *testing.T) {
		out, err := run(t, "text.remove-duplicates", "a\nb\na\nc", nil)
		require.NoError(t, err)
		assert.Equal(t, "a\nb\nc", out.Text)
	})

	t.Run("case insensitive", func(t *testing.T) {
		out, err := run(t, "text.remove-duplicates", "Apple\napple\nbanana",
			map[string]interface{}{"caseSensitive": false})
		require.NoError(t, err)
		assert.Equal(t, "Apple\nbanana", out.Text)
	})

	t.Run("trim before comparing", func(t *testing.T) {
		out, err := run(t, "text.remove-duplicates", "a\n  a\nb",
			map[string]interface{}{"trimLines": true})
		require.NoError(t, err)
		assert.Equal(t, "a\nb", out.Text)
	})

	t.Run("empty lines kept when ignored", func(t *testing.T) {
		out, err := run(t, "text.remove-duplicates", "a\n\n\na",
			map[string]interface{}{"ignoreEmpty": true})
		require.NoError(t, err)
		assert.Equal(t, "a\n\n", out.Text)
	})

	t.Run("no duplicates returns input unchanged", func(t *testing.T) {
		out, err := run(t, "text.remove-duplicates", "a\r\nb", nil)
		require.NoError(t, err)
		assert.Equal(t, "a\r\nb", out.Text)
	})
}

func TestSortLines(t *testing.T) {
	t.Run("alphabetical ascending", func(t *testing.T) {
		out, err := run(t, "text.sort-lines", "banana\napple\ncherry", nil)
		require.NoError(t, err)
		assert.Equal(t, "apple\nbanana\ncherry", out.Text)
	})

	t.Run("descending", func(t *testing.T) {
		out, err := run(t, "text.sort-lines", "a\nc\nb",
			map[string]interface{}{"order": "desc"})
		require.NoError(t, err)
		assert.Equal(t, "c\nb\na", out.Text)
	})

	t.Run("natural ordering of numbered items", func(t *testing.T) {
		out, err := run(t, "text.sort-lines", "item10\nitem2\nitem1",
			map[string]interface{}{"sortType": "natural"})
		require.NoError(t, err)
		assert.Equal(t, "item1\nitem2\nitem10", out.Text)
	})

	t.Run("numeric sort", func(t *testing.T) {
		out, err := run(t, "text.sort-lines", "10\n2\n33.5\n1",
			map[string]interface{}{"sortType": "numeric"})
		require.NoError(t, err)
		assert.Equal(t, "1\n2\n10\n33.5", out.Text)
	})

	t.Run("length sort", func(t *testing.T) {
		out, err := run(t, "text.sort-lines", "ccc\na\nbb",
			map[string]interface{}{"sortType": "length"})
		require.NoError(t, err)
		assert.Equal(t, "a\nbb\nccc", out.Text)
	})

	t.Run("unique drops duplicates before sorting", func(t *testing.T) {
		out, err := run(t, "text.sort-lines", "b\na\nb",
			map[string]interface{}{"unique": true})
		require.NoError(t, err)
		assert.Equal(t, "a\nb", out.Text)
	})

	t.Run("case insensitive by default", func(t *testing.T) {
		out, err := run(t, "text.sort-lines", "Banana\napple", nil)
		require.NoError(t, err)
		assert.Equal(t, "apple\nBanana", out.Text)
	})
}

func TestWordCount(t *testing.T) {
	t.Run("statistics block", func(t *testing.T) {
		out, err := run(t, "text.word-count", "hello world\n\nsecond paragraph here", nil)
		require.NoError(t, err)
		assert.Contains(t, out.Text, "Statistics:")
		assert.Contains(t, out.Text, "Words:                5")
		assert.Contains(t, out.Text, "Lines:                3")
		assert.Contains(t, out.Text, "Paragraphs:           2")
		assert.Contains(t, out.Text, "Characters (with spaces): 34")
		assert.Contains(t, out.Text, "Characters (no spaces): 29")
	})

	t.Run("counts characters as runes", func(t *testing.T) {
		out, err := run(t, "text.word-count", "héllo wörld", nil)
		require.NoError(t, err)
		assert.Contains(t, out.Text, "Words:                2")
		assert.Contains(t, out.Text, "Characters (with spaces): 11")
		assert.Contains(t, out.Text, "Characters (no spaces): 10")
	})

	t.Run("thousands separators", func(t *testing.T) {
		long := ""
		for i := 0; i < 1200; i++ {
			long += "word "
		}
		out, err := run(t, "text.word-count", long, nil)
		require.NoError(t, err)
		assert.Contains(t, out.Text, "Words:                1,200")
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := run(t, "text.word-count", "", nil)
		require.Error(t, err)
		assert.Equal(t, "Please enter some text", err.Error())
	})
}
