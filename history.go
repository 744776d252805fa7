package modalprompt

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// HistoryConfig holds history settings.
//
// File path supports multiple formats:
//   - Empty string: memory-only history (no persistence)
//   - Absolute path: "/home/user/.prompt_history"
//   - Home directory: "~/.prompt_history"
//   - Relative path: "./prompt_history" (converted to absolute)
//   - XDG compliant: use DefaultHistoryFile()
type HistoryConfig struct {
	MaxEntries  int    // Maximum number of entries kept in memory (default: 1000)
	File        string // File path for persistence (empty = memory only)
	MaxFileSize int64  // Maximum file size in bytes before rotation (default: 1MB)
	MaxBackups  int    // Maximum number of backup files to keep (default: 3)
}

// DefaultHistoryFile returns $XDG_CONFIG_HOME/modalprompt/history, or
// ~/.config/modalprompt/history when XDG_CONFIG_HOME is unset.
func DefaultHistoryFile() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "modalprompt", "history")
}

// History keeps previously submitted prompt values so a TerminalHost can
// recall them with the Up and Down keys in single-line prompts.
//
// Entries are stored one per line as Go-quoted strings, which keeps
// multi-line values on a single line of the file. Unquoted lines written
// by hand are read back verbatim.
type History struct {
	config  HistoryConfig
	entries []string
}

// NewHistory creates a history with the given configuration.
func NewHistory(config HistoryConfig) *History {
	if config.MaxEntries <= 0 {
		config.MaxEntries = 1000
	}
	if config.MaxFileSize <= 0 {
		config.MaxFileSize = 1024 * 1024
	}
	if config.MaxBackups <= 0 {
		config.MaxBackups = 3
	}
	if config.File != "" {
		if absPath, err := expandHistoryPath(config.File); err == nil {
			config.File = absPath
		}
	}
	return &History{config: config}
}

// File returns the resolved history file path, or "" for memory-only history.
func (h *History) File() string {
	return h.config.File
}

// Load reads entries from the history file. A missing file is not an error.
func (h *History) Load() error {
	if h.config.File == "" {
		return nil
	}

	file, err := os.Open(h.config.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if entry, err := strconv.Unquote(line); err == nil {
			line = entry
		}
		h.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}
	return nil
}

// Save writes the entries to the history file, rotating it first when it
// has grown past MaxFileSize.
func (h *History) Save() error {
	if h.config.File == "" {
		return nil
	}

	if err := h.rotateIfNeeded(); err != nil {
		return fmt.Errorf("failed to rotate history file: %w", err)
	}

	if dir := filepath.Dir(h.config.File); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create history directory: %w", err)
		}
	}
	return h.writeEntries(h.entries)
}

// Add appends an entry. Empty entries and repeats of the last entry are
// skipped; the oldest entries are dropped beyond MaxEntries.
func (h *History) Add(entry string) {
	if entry == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return
	}
	h.entries = append(h.entries, entry)
	if over := len(h.entries) - h.config.MaxEntries; over > 0 {
		h.entries = h.entries[over:]
	}
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []string {
	return append([]string{}, h.entries...)
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Clear removes all entries from memory.
func (h *History) Clear() {
	h.entries = nil
}

func (h *History) writeEntries(entries []string) error {
	file, err := os.Create(h.config.File)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	for _, entry := range entries {
		if _, err := fmt.Fprintln(w, strconv.Quote(entry)); err != nil {
			return fmt.Errorf("failed to write history entry: %w", err)
		}
	}
	return w.Flush()
}

func (h *History) rotateIfNeeded() error {
	info, err := os.Stat(h.config.File)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() < h.config.MaxFileSize {
		return nil
	}
	return h.rotate()
}

// rotate shifts file.N to file.N+1 and moves the file to file.1. Histories
// of 200 entries or more keep only their newer half.
func (h *History) rotate() error {
	oldest := h.config.File + "." + strconv.Itoa(h.config.MaxBackups)
	if _, err := os.Stat(oldest); err == nil {
		if err := os.Remove(oldest); err != nil {
			return fmt.Errorf("failed to remove oldest backup: %w", err)
		}
	}
	for i := h.config.MaxBackups - 1; i >= 1; i-- {
		from := h.config.File + "." + strconv.Itoa(i)
		to := h.config.File + "." + strconv.Itoa(i+1)
		if _, err := os.Stat(from); err == nil {
			if err := os.Rename(from, to); err != nil {
				return fmt.Errorf("failed to rotate backup %d: %w", i, err)
			}
		}
	}
	if err := os.Rename(h.config.File, h.config.File+".1"); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	keep := len(h.entries) / 2
	if keep < 100 {
		keep = len(h.entries)
	}
	h.entries = h.entries[len(h.entries)-keep:]
	return nil
}

// expandHistoryPath expands ~ and converts path to an absolute path.
func expandHistoryPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert to absolute path: %w", err)
	}
	return absPath, nil
}
