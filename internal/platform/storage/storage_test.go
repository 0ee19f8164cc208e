package storage_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"coursework_tracker/internal/platform/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixtureStore_CreateAndRemove(t *testing.T) {
	root := filepath.Join(t.TempDir(), "tasks")
	store, err := storage.NewFixtureStore(root)
	require.NoError(t, err)

	path, err := store.Create("even-check", "test_even.py", []byte("def test_even(): pass\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "even-check", "tests", "test_even.py"), path)
	assert.True(t, store.Exists("even-check"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "def test_even(): pass\n", string(content))

	require.NoError(t, store.Remove("even-check"))
	assert.False(t, store.Exists("even-check"))
	assert.NoError(t, store.Remove("even-check"), "removing twice is fine")
}

func TestFixtureStore_RefusesExistingDirectory(t *testing.T) {
	store, err := storage.NewFixtureStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Create("vector2d", "test_a.py", []byte("a"))
	require.NoError(t, err)
	_, err = store.Create("vector2d", "test_b.py", []byte("b"))

	assert.ErrorIs(t, err, storage.ErrFixtureDirExists)
	_, statErr := os.Stat(filepath.Join(store.Dir("vector2d"), "tests", "test_b.py"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestFixtureStore_RejectsUnsafeNames(t *testing.T) {
	store, err := storage.NewFixtureStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Create("../escape", "x.py", []byte("x"))
	assert.Error(t, err)
	assert.Error(t, store.Remove(""))
}

func TestArtifactStore_SameNameTwice(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewArtifactStore(dir)
	require.NoError(t, err)

	first, err := store.Save("solution.zip", []byte("one"))
	require.NoError(t, err)
	second, err := store.Save("solution.zip", []byte("two"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasSuffix(first, "-solution.zip"))
	assert.True(t, strings.HasSuffix(second, "-solution.zip"))

	content, err := os.ReadFile(store.Path(second))
	require.NoError(t, err)
	assert.Equal(t, "two", string(content))
}
