package tool

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		err := ErrNotFound("missing")
		assert.Equal(t, "tool not found: missing", err.Error())
		assert.True(t, IsKind(err, KindToolNotFound))
	})

	t.Run("invalid options renders fields", func(t *testing.T) {
		err := ErrInvalidOptions([]FieldError{
			{Field: "indent", Message: "Must be less than or equal to 8"},
		})
		assert.Contains(t, err.Error(), "indent: Must be less than or equal to 8")
		assert.True(t, IsKind(err, KindInvalidOptions))
	})

	t.Run("malformed wraps cause", func(t *testing.T) {
		cause := fmt.Errorf("unexpected end of JSON input")
		err := ErrMalformedWrap(cause, "First JSON is invalid")
		assert.Equal(t, "First JSON is invalid", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("kind of plain error", func(t *testing.T) {
		_, ok := KindOf(errors.New("plain"))
		assert.False(t, ok)
		assert.False(t, IsKind(errors.New("plain"), KindInvalidInput))
	})

	t.Run("kind survives wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("outer: %w", ErrInvalidInput("Please enter some text"))
		assert.True(t, IsKind(wrapped, KindInvalidInput))
	})
}

func TestOptionsGetters(t *testing.T) {
	opts := Options{
		"name":    "value",
		"flag":    true,
		"count":   float64(3),
		"literal": 7,
	}

	assert.Equal(t, "value", opts.String("name"))
	assert.Equal(t, "", opts.String("missing"))
	assert.True(t, opts.Bool("flag"))
	assert.False(t, opts.Bool("missing"))
	assert.Equal(t, 3.0, opts.Float("count"))
	assert.Equal(t, 3, opts.Int("count"))
	assert.Equal(t, 7, opts.Int("literal"))
	assert.Equal(t, 0, opts.Int("missing"))
}

func TestDefaults(t *testing.T) {
	tl := sampleTool("a", CategoryText)
	tl.Options = []OptionField{
		{Name: "indent", Type: OptionInteger, Default: 2},
		{Name: "sortKeys", Type: OptionBoolean, Default: false},
	}
	defaults := tl.Defaults()
	require.Len(t, defaults, 2)
	assert.Equal(t, 2, defaults["indent"])
	assert.Equal(t, false, defaults["sortKeys"])
}
