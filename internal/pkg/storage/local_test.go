package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	name, err := s.Save(strings.NewReader("fake image bytes"), "photo.JPG")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".jpg"), "extension is lowercased: %s", name)

	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(content))

	require.NoError(t, s.Delete(name))
	_, err = os.Stat(filepath.Join(dir, name))
	assert.True(t, os.IsNotExist(err))
}

func TestSaveNamesAreUnique(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		name, err := s.Save(strings.NewReader("x"), "a.png")
		require.NoError(t, err)
		assert.False(t, seen[name], "duplicate generated name %s", name)
		seen[name] = true
	}
}

func TestSavePrefix(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "avatar-")
	require.NoError(t, err)

	name, err := s.Save(strings.NewReader("x"), "me.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "avatar-"))
}

func TestDeleteMissingFileIsTolerated(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	assert.NoError(t, s.Delete("never-existed.png"))
	assert.NoError(t, s.Delete(""))
}

func TestDeleteRejectsPathEscape(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	assert.Error(t, s.Delete("../etc/passwd"))
}

func TestNewLocalStorageCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads", "avatars")
	_, err := NewLocalStorage(dir, "")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
