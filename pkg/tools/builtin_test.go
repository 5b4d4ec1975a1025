package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toolbox/pkg/tool"
)

func TestRegisterBuiltin(t *testing.T) {
	r := tool.NewRegistry()
	require.NoError(t, RegisterBuiltin(r))

	assert.Equal(t, 36, r.Count())

	t.Run("every category represented", func(t *testing.T) {
		for _, id := range []string{
			"text.case-convert",
			"format.json-prettify",
			"dev.regex-test",
			"crypto.base64-encode",
			"time.cron",
			"diff.text",
			"archive.zip",
			"image.resize",
		} {
			assert.NotNil(t, r.Get(id), "missing %s", id)
		}
	})

	t.Run("ids are namespaced by category", func(t *testing.T) {
		for _, def := range r.All() {
			assert.Contains(t, def.ID, ".")
			assert.True(t, tool.IsValidCategory(string(def.Category)))
		}
	})
}
