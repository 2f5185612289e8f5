package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEditor(t *testing.T) {
	t.Setenv("VISUAL", "code --wait")
	t.Setenv("EDITOR", "vim")
	assert.Equal(t, "code --wait", getEditor())

	t.Setenv("VISUAL", "")
	assert.Equal(t, "vim", getEditor())

	t.Setenv("EDITOR", "")
	assert.Equal(t, "", getEditor())
}

func TestEditInEditorNoEditor(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "")

	_, err := EditInEditor([]byte("x"), ".txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EDITOR not set")
}

func TestEditInEditorUnchanged(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "true")

	out, err := EditInEditor([]byte("keep me"), ".txt")
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(out))
}

func TestEditInEditorFailure(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "false")

	_, err := EditInEditor([]byte("x"), ".txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exited with status 1")
}

func TestEditTitle(t *testing.T) {
	script := filepath.Join(t.TempDir(), "fake-editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nprintf '# comment\\n\\n  Buy milk  \\nignored\\n' > \"$1\"\n"), 0755))
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", script)

	title, err := EditTitle("")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", title)
}

func TestParseTitle(t *testing.T) {
	assert.Equal(t, "first", ParseTitle([]byte("\n# note\n  first \nsecond")))
	assert.Equal(t, "", ParseTitle([]byte("# only comments\n\n")))
	assert.Equal(t, "", ParseTitle(nil))
}
