package actions_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigargs/actions"
)

func TestConfigLoadInline(t *testing.T) {
	action := actions.NewConfigLoad("model")

	v, err := action.Apply("depth: 3\nrate: 0.1\n")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"depth": 3, "rate": 0.1}, v)
}

func TestConfigLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte("depth: 5\n"), 0o600))

	action := actions.NewConfigLoad("model")
	v, err := action.Apply(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"depth": 5}, v)
}

func TestConfigLoadRejectsGarbage(t *testing.T) {
	action := actions.NewConfigLoad("model")
	_, err := action.Apply(": : :")
	assert.Error(t, err)
}
