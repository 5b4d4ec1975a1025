package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTool(id string, category Category) Tool {
	return Tool{
		ID:          id,
		Title:       "Sample " + id,
		Category:    category,
		Description: "Echoes its input back.",
		Keywords:    []string{"echo", "sample"},
		Input:       InputSpec{Kind: InputText},
		Output:      OutputSpec{Kind: OutputText},
		Run: func(rc *RunContext, input Input, opts Options) (Output, error) {
			return TextOutput(input.Text), nil
		},
	}
}

func TestRegister(t *testing.T) {
	t.Run("registers a valid tool", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(sampleTool("a", CategoryText)))
		assert.Equal(t, 1, r.Count())
		assert.NotNil(t, r.Get("a"))
	})

	t.Run("overwrites duplicate id", func(t *testing.T) {
		r := NewRegistry()
		first := sampleTool("a", CategoryText)
		second := sampleTool("a", CategoryText)
		second.Title = "Replacement"

		require.NoError(t, r.Register(first))
		require.NoError(t, r.Register(second))

		assert.Equal(t, 1, r.Count())
		assert.Equal(t, "Replacement", r.Get("a").Title)
	})

	t.Run("rejects empty id", func(t *testing.T) {
		r := NewRegistry()
		bad := sampleTool("", CategoryText)
		err := r.Register(bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "id cannot be empty")
	})

	t.Run("rejects invalid category", func(t *testing.T) {
		r := NewRegistry()
		bad := sampleTool("a", Category("bogus"))
		require.Error(t, r.Register(bad))
	})

	t.Run("rejects nil run function", func(t *testing.T) {
		r := NewRegistry()
		bad := sampleTool("a", CategoryText)
		bad.Run = nil
		require.Error(t, r.Register(bad))
	})

	t.Run("rejects option without default", func(t *testing.T) {
		r := NewRegistry()
		bad := sampleTool("a", CategoryText)
		bad.Options = []OptionField{{Name: "mode", Type: OptionString}}
		err := r.Register(bad)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no default")
	})
}

func TestGet(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(sampleTool("a", CategoryText)))

	assert.NotNil(t, r.Get("a"))
	assert.Nil(t, r.Get("missing"))
}

func TestAll(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(sampleTool("b", CategoryText)))
	require.NoError(t, r.Register(sampleTool("a", CategoryDev)))

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID)
	assert.Equal(t, "a", all[1].ID)
}

func TestByCategory(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(sampleTool("a", CategoryText)))
	require.NoError(t, r.Register(sampleTool("b", CategoryDev)))
	require.NoError(t, r.Register(sampleTool("c", CategoryText)))

	text := r.ByCategory(CategoryText)
	require.Len(t, text, 2)
	assert.Equal(t, "a", text[0].ID)
	assert.Equal(t, "c", text[1].ID)

	assert.Empty(t, r.ByCategory(CategoryImage))
}

func TestSearch(t *testing.T) {
	r := NewRegistry()
	base := sampleTool("json-pretty", CategoryFormat)
	base.Title = "JSON Prettify"
	base.Description = "Formats JSON with indentation."
	base.Keywords = []string{"json", "beautify"}
	require.NoError(t, r.Register(base))
	require.NoError(t, r.Register(sampleTool("other", CategoryDev)))

	t.Run("matches id", func(t *testing.T) {
		assert.Len(t, r.Search("json-pretty"), 1)
	})

	t.Run("matches title case-insensitively", func(t *testing.T) {
		assert.Len(t, r.Search("PRETTIFY"), 1)
	})

	t.Run("matches keywords", func(t *testing.T) {
		assert.Len(t, r.Search("beautify"), 1)
	})

	t.Run("matches category", func(t *testing.T) {
		assert.Len(t, r.Search("format"), 1)
	})

	t.Run("empty query returns all", func(t *testing.T) {
		assert.Len(t, r.Search("   "), 2)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		assert.Empty(t, r.Search("nonexistent"))
	})
}
