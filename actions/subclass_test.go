package actions_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sigargs/actions"
	"sigargs/typedesc"
)

func registerHierarchy(t *testing.T) (base, child, stranger *typedesc.Class) {
	t.Helper()
	base = &typedesc.Class{Name: "Source"}
	child = &typedesc.Class{Name: "FileSource", Bases: []*typedesc.Class{base}}
	stranger = &typedesc.Class{Name: "Sink"}

	actions.RegisterClass("test.Source", base)
	actions.RegisterClass("test.FileSource", child)
	actions.RegisterClass("test.Sink", stranger)
	return base, child, stranger
}

func TestSubclassValuePlainPath(t *testing.T) {
	base, _, _ := registerHierarchy(t)

	action, err := actions.NewSubclassValue(base)
	require.NoError(t, err)

	v, err := action.Apply("test.FileSource")
	require.NoError(t, err)
	spec, ok := v.(actions.SubclassSpec)
	require.True(t, ok)
	assert.Equal(t, "test.FileSource", spec.ClassPath)
	assert.Nil(t, spec.InitArgs)
}

func TestSubclassValueInlineMapping(t *testing.T) {
	base, _, _ := registerHierarchy(t)

	action, err := actions.NewSubclassValue(base)
	require.NoError(t, err)

	v, err := action.Apply(`{"class_path": "test.FileSource", "init_args": {"path": "/tmp/x"}}`)
	require.NoError(t, err)
	spec := v.(actions.SubclassSpec)
	assert.Equal(t, "test.FileSource", spec.ClassPath)
	assert.Equal(t, map[string]any{"path": "/tmp/x"}, spec.InitArgs)
}

func TestSubclassValueFromFile(t *testing.T) {
	base, _, _ := registerHierarchy(t)

	path := filepath.Join(t.TempDir(), "source.yaml")
	require.NoError(t, os.WriteFile(path, []byte("class_path: test.FileSource\ninit_args:\n  path: /data\n"), 0o600))

	action, err := actions.NewSubclassValue(base)
	require.NoError(t, err)

	v, err := action.Apply(path)
	require.NoError(t, err)
	assert.Equal(t, "test.FileSource", v.(actions.SubclassSpec).ClassPath)
}

func TestSubclassValueRejections(t *testing.T) {
	base, _, _ := registerHierarchy(t)

	action, err := actions.NewSubclassValue(base)
	require.NoError(t, err)

	_, err = action.Apply("test.Missing")
	assert.ErrorIs(t, err, actions.ErrUnknownClassPath)

	_, err = action.Apply("test.Sink")
	assert.ErrorIs(t, err, actions.ErrNotASubclass)

	_, err = action.Apply("{broken yaml")
	assert.Error(t, err)

	_, err = actions.NewSubclassValue(nil)
	assert.Error(t, err)
}

func TestClassPathHelp(t *testing.T) {
	base, _, _ := registerHierarchy(t)

	help := actions.NewClassPathHelp(base, func(class *typedesc.Class) (string, error) {
		return "arguments of " + class.Name, nil
	})

	v, err := help.Apply("test.FileSource")
	require.NoError(t, err)
	assert.Equal(t, "arguments of FileSource", v)

	_, err = help.Apply("test.Missing")
	assert.ErrorIs(t, err, actions.ErrUnknownClassPath)

	_, err = help.Apply("test.Sink")
	assert.ErrorIs(t, err, actions.ErrNotASubclass)
}

func TestRegisteredPaths(t *testing.T) {
	registerHierarchy(t)

	paths := actions.RegisteredPaths()
	assert.Contains(t, paths, "test.FileSource")
	assert.Contains(t, paths, "test.Source")
	assert.IsNonDecreasing(t, paths)
}
