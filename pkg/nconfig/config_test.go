package nconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nuru-cli/nuru/pkg/nconfig"
)

func TestReadFilenameYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "Prompt: \"myapp> \"\nKeymap: emacs\nHistoryCapacity: 500\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := nconfig.ReadFilename(path)
	require.NoError(t, err)
	assert.Equal(t, "myapp> ", c.Prompt)
	assert.Equal(t, nconfig.KeymapEmacs, c.Keymap)
	assert.Equal(t, 500, c.HistoryCapacity)
}

func TestReadFilenameJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"Prompt": "x> ", "Keymap": "vi"}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := nconfig.ReadFilename(path)
	require.NoError(t, err)
	assert.Equal(t, "x> ", c.Prompt)
	assert.Equal(t, nconfig.KeymapVi, c.Keymap)
}

func TestValidateRejectsUnknownKeymap(t *testing.T) {
	c := nconfig.Config{Keymap: "bogus"}
	err := c.Validate()
	require.Error(t, err)
}

func TestValidateRejectsNegativeHistoryCapacity(t *testing.T) {
	c := nconfig.Config{HistoryCapacity: -1, Keymap: nconfig.KeymapDefault}
	err := c.Validate()
	require.Error(t, err)
}

func TestValidateRejectsMalformedOverrideKey(t *testing.T) {
	c := nconfig.Config{
		Keymap:          nconfig.KeymapDefault,
		KeymapOverrides: map[string]string{"Ctrl+X": "ActionAccept"},
	}
	err := c.Validate()
	require.Error(t, err)
}
