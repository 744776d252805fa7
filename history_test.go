package modalprompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistoryDefaults(t *testing.T) {
	t.Parallel()

	h := NewHistory(HistoryConfig{})
	assert.Equal(t, 1000, h.config.MaxEntries)
	assert.Equal(t, int64(1024*1024), h.config.MaxFileSize)
	assert.Equal(t, 3, h.config.MaxBackups)
	assert.Empty(t, h.File())
}

func TestHistoryAdd(t *testing.T) {
	t.Parallel()

	h := NewHistory(HistoryConfig{MaxEntries: 3})
	h.Add("one")
	h.Add("")
	h.Add("two")
	h.Add("two") // Consecutive duplicate should be ignored
	h.Add("three")
	assert.Equal(t, []string{"one", "two", "three"}, h.Entries())

	h.Add("four")
	assert.Equal(t, []string{"two", "three", "four"}, h.Entries(), "oldest entry is dropped")
	assert.Equal(t, 3, h.Len())

	entries := h.Entries()
	entries[0] = "mutated"
	assert.Equal(t, "two", h.Entries()[0], "Entries returns a copy")

	h.Clear()
	assert.Empty(t, h.Entries())
}

func TestHistoryFilePersistence(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "nested", "history")
	h := NewHistory(HistoryConfig{File: file})
	h.Add("plain")
	h.Add("two\nlines")
	h.Add(`with "quotes"`)
	require.NoError(t, h.Save())

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(data), "\n"), "one line per entry")

	loaded := NewHistory(HistoryConfig{File: file})
	require.NoError(t, loaded.Load())
	assert.Equal(t, []string{"plain", "two\nlines", `with "quotes"`}, loaded.Entries())
}

func TestHistoryLoadUnquotedLines(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(file, []byte("git status\n\n\"quoted\"\n  spaced  \n"), 0o600))

	h := NewHistory(HistoryConfig{File: file})
	require.NoError(t, h.Load())
	assert.Equal(t, []string{"git status", "quoted", "spaced"}, h.Entries())
}

func TestHistoryLoadNonExistentFile(t *testing.T) {
	t.Parallel()

	h := NewHistory(HistoryConfig{File: filepath.Join(t.TempDir(), "missing")})
	require.NoError(t, h.Load())
	assert.Empty(t, h.Entries())
}

func TestHistoryMemoryOnly(t *testing.T) {
	t.Parallel()

	h := NewHistory(HistoryConfig{})
	h.Add("x")
	assert.NoError(t, h.Save())
	assert.NoError(t, h.Load())
	assert.Equal(t, []string{"x"}, h.Entries())
}

func TestHistoryFileRotation(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "history")
	h := NewHistory(HistoryConfig{File: file, MaxFileSize: 50, MaxBackups: 2})
	for i := 0; i < 5; i++ {
		h.Add(fmt.Sprintf("entry long enough to fill the file %d", i))
	}

	// The first save creates the file, every later save rotates it.
	require.NoError(t, h.Save())
	require.NoFileExists(t, file+".1")

	for i := 0; i < 3; i++ {
		require.NoError(t, h.Save())
	}
	assert.FileExists(t, file)
	assert.FileExists(t, file+".1")
	assert.FileExists(t, file+".2")
	assert.NoFileExists(t, file+".3", "only MaxBackups backups are kept")

	loaded := NewHistory(HistoryConfig{File: file})
	require.NoError(t, loaded.Load())
	assert.Len(t, loaded.Entries(), 5)
}

func TestHistoryRotationTrimsLargeHistories(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "history")
	h := NewHistory(HistoryConfig{File: file, MaxFileSize: 10})
	for i := 0; i < 300; i++ {
		h.Add(fmt.Sprintf("cmd %d", i))
	}
	require.NoError(t, h.Save())
	require.NoError(t, h.Save())

	entries := h.Entries()
	assert.Len(t, entries, 150)
	assert.Equal(t, "cmd 299", entries[len(entries)-1])
}

func TestExpandHistoryPath(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	rel, err := filepath.Abs("./test_history")
	require.NoError(t, err)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"empty path", "", ""},
		{"home directory", "~/.test_history", filepath.Join(home, ".test_history")},
		{"home only", "~", home},
		{"relative path", "./test_history", rel},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := expandHistoryPath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultHistoryFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	assert.Equal(t, filepath.Join(dir, "modalprompt", "history"), DefaultHistoryFile())
}
