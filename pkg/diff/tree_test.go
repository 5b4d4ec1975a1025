package diff

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrees(t *testing.T) {
	t.Run("equal trees produce no entries", func(t *testing.T) {
		a := map[string]interface{}{"a": 1.0, "b": []interface{}{"x"}}
		b := map[string]interface{}{"a": 1.0, "b": []interface{}{"x"}}
		assert.Empty(t, Trees(a, b))
	})

	t.Run("added key", func(t *testing.T) {
		a := map[string]interface{}{"a": 1.0}
		b := map[string]interface{}{"a": 1.0, "b": 2.0}
		entries := Trees(a, b)
		require.Len(t, entries, 1)
		assert.Equal(t, Added, entries[0].Kind)
		assert.Equal(t, "b", entries[0].Path)
		assert.Equal(t, 2.0, entries[0].Value)
	})

	t.Run("removed key", func(t *testing.T) {
		a := map[string]interface{}{"a": 1.0, "b": 2.0}
		b := map[string]interface{}{"a": 1.0}
		entries := Trees(a, b)
		require.Len(t, entries, 1)
		assert.Equal(t, Removed, entries[0].Kind)
		assert.Equal(t, "b", entries[0].Path)
	})

	t.Run("changed scalar", func(t *testing.T) {
		entries := Trees(
			map[string]interface{}{"a": 1.0},
			map[string]interface{}{"a": 2.0},
		)
		require.Len(t, entries, 1)
		assert.Equal(t, Changed, entries[0].Kind)
		assert.Equal(t, 1.0, entries[0].OldValue)
		assert.Equal(t, 2.0, entries[0].NewValue)
	})

	t.Run("nested path uses dot notation", func(t *testing.T) {
		entries := Trees(
			map[string]interface{}{"user": map[string]interface{}{"name": "alice"}},
			map[string]interface{}{"user": map[string]interface{}{"name": "bob"}},
		)
		require.Len(t, entries, 1)
		assert.Equal(t, "user.name", entries[0].Path)
	})

	t.Run("array index path uses brackets", func(t *testing.T) {
		entries := Trees(
			map[string]interface{}{"tags": []interface{}{"a", "b"}},
			map[string]interface{}{"tags": []interface{}{"a", "c", "d"}},
		)
		require.Len(t, entries, 2)
		assert.Equal(t, Changed, entries[0].Kind)
		assert.Equal(t, "tags[1]", entries[0].Path)
		assert.Equal(t, Added, entries[1].Kind)
		assert.Equal(t, "tags[2]", entries[1].Path)
	})

	t.Run("type change is a single changed entry", func(t *testing.T) {
		entries := Trees(
			map[string]interface{}{"a": 1.0},
			map[string]interface{}{"a": []interface{}{1.0}},
		)
		require.Len(t, entries, 1)
		assert.Equal(t, Changed, entries[0].Kind)
	})

	t.Run("root scalar change has empty path", func(t *testing.T) {
		entries := Trees(1.0, 2.0)
		require.Len(t, entries, 1)
		assert.Equal(t, "", entries[0].Path)
	})

	t.Run("swapping sides inverts the diff", func(t *testing.T) {
		a := map[string]interface{}{
			"name": "alice",
			"tags": []interface{}{"x", "y"},
			"meta": map[string]interface{}{"role": "admin", "age": 30.0},
			"only": true,
		}
		b := map[string]interface{}{
			"name": "bob",
			"tags": []interface{}{"x", "y", "z"},
			"meta": map[string]interface{}{"role": "admin", "city": "oslo"},
		}

		inverted := make([]Entry, 0)
		for _, e := range Trees(a, b) {
			switch e.Kind {
			case Added:
				e.Kind = Removed
			case Removed:
				e.Kind = Added
			case Changed:
				e.OldValue, e.NewValue = e.NewValue, e.OldValue
			}
			inverted = append(inverted, e)
		}
		assert.ElementsMatch(t, Trees(b, a), inverted)
	})

	t.Run("map keys are visited in sorted order", func(t *testing.T) {
		entries := Trees(
			map[string]interface{}{},
			map[string]interface{}{"z": 1.0, "a": 2.0, "m": 3.0},
		)
		require.Len(t, entries, 3)
		assert.Equal(t, "a", entries[0].Path)
		assert.Equal(t, "m", entries[1].Path)
		assert.Equal(t, "z", entries[2].Path)
	})
}

func TestFormatEntries(t *testing.T) {
	format := func(v interface{}) string { return fmt.Sprintf("%v", v) }

	t.Run("empty renders sentinel", func(t *testing.T) {
		assert.Equal(t, NoDifferences, FormatEntries(nil, format))
	})

	t.Run("root path renders as dollar", func(t *testing.T) {
		out := FormatEntries([]Entry{{Kind: Changed, Path: "", OldValue: 1, NewValue: 2}}, format)
		assert.Equal(t, "~ $:\n    - 1\n    + 2", out)
	})

	t.Run("mixed entries join with blank lines", func(t *testing.T) {
		out := FormatEntries([]Entry{
			{Kind: Added, Path: "b", Value: 2},
			{Kind: Removed, Path: "c", Value: 3},
		}, format)
		assert.Equal(t, "+ b: 2\n\n- c: 3", out)
	})
}

func TestSortKeys(t *testing.T) {
	in := map[string]interface{}{
		"z": map[string]interface{}{"b": 1.0, "a": 2.0},
		"a": []interface{}{map[string]interface{}{"y": 1.0, "x": 2.0}},
	}
	out := SortKeys(in)

	// The copy carries the same content.
	assert.Equal(t, in, out)

	// And the original is not shared.
	outMap := out.(map[string]interface{})
	outMap["new"] = true
	_, leaked := in["new"]
	assert.False(t, leaked)
}
