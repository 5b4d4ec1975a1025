package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	t.Run("identical inputs", func(t *testing.T) {
		lines := Lines([]string{"a", "b"}, []string{"a", "b"})
		require.Len(t, lines, 2)
		for _, l := range lines {
			assert.Equal(t, LineSame, l.Kind)
		}
	})

	t.Run("changed line becomes removal plus addition", func(t *testing.T) {
		lines := Lines(
			[]string{"line one", "line two"},
			[]string{"line one", "line three"},
		)
		require.Len(t, lines, 3)
		assert.Equal(t, LineSame, lines[0].Kind)
		assert.Equal(t, LineRemoved, lines[1].Kind)
		assert.Equal(t, "line two", lines[1].Text)
		assert.Equal(t, LineAdded, lines[2].Kind)
		assert.Equal(t, "line three", lines[2].Text)
	})

	t.Run("insertion resyncs within lookahead", func(t *testing.T) {
		lines := Lines(
			[]string{"a", "b"},
			[]string{"a", "inserted", "b"},
		)
		require.Len(t, lines, 3)
		assert.Equal(t, LineSame, lines[0].Kind)
		assert.Equal(t, LineAdded, lines[1].Kind)
		assert.Equal(t, "inserted", lines[1].Text)
		assert.Equal(t, LineSame, lines[2].Kind)
	})

	t.Run("deletion resyncs within lookahead", func(t *testing.T) {
		lines := Lines(
			[]string{"a", "gone", "b"},
			[]string{"a", "b"},
		)
		require.Len(t, lines, 3)
		assert.Equal(t, LineRemoved, lines[1].Kind)
		assert.Equal(t, "gone", lines[1].Text)
	})

	t.Run("trailing additions", func(t *testing.T) {
		lines := Lines([]string{"a"}, []string{"a", "b", "c"})
		require.Len(t, lines, 3)
		assert.Equal(t, LineAdded, lines[1].Kind)
		assert.Equal(t, LineAdded, lines[2].Kind)
		assert.Equal(t, 3, lines[2].RightNum)
	})

	t.Run("line numbers are one based", func(t *testing.T) {
		lines := Lines([]string{"a"}, []string{"a"})
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].LeftNum)
		assert.Equal(t, 1, lines[0].RightNum)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Empty(t, Lines(nil, nil))
	})
}

func TestFormatLines(t *testing.T) {
	lines := Lines(
		[]string{"line one", "line two"},
		[]string{"line one", "line three"},
	)
	out := FormatLines(lines)
	assert.Equal(t, "  line one\n- line two\n+ line three", out)
}
