// Package cache persists interactive choices (sheet selection, column
// mappings) per source file, so unchanged files never re-prompt.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const cacheFileName = "file_processing_cache.json"

// Choices holds everything remembered for one file fingerprint.
type Choices struct {
	SheetName      string            `json:"sheet_name,omitempty"`
	ColumnMappings map[string]string `json:"column_mappings,omitempty"`
}

// FileCache is a whole-document JSON store keyed by file fingerprint.
// The fingerprint covers path, mtime and size, so editing a file
// invalidates its entry implicitly.
type FileCache struct {
	dir     string
	entries map[string]Choices
}

func New(dir string) *FileCache {
	return &FileCache{dir: dir}
}

func (c *FileCache) path() string {
	return filepath.Join(c.dir, cacheFileName)
}

// Fingerprint derives the cache key for a file. A file that does not
// exist yet (template targets) falls back to hashing the path alone.
func Fingerprint(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		sum := md5.Sum([]byte(path))
		return hex.EncodeToString(sum[:])
	}
	key := fmt.Sprintf("%s_%d_%d", path, info.ModTime().UnixNano(), info.Size())
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

func (c *FileCache) load() map[string]Choices {
	if c.entries != nil {
		return c.entries
	}

	c.entries = map[string]Choices{}
	blob, err := os.ReadFile(c.path())
	if err != nil {
		return c.entries
	}
	if err := json.Unmarshal(blob, &c.entries); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load cache: %v\n", err)
		c.entries = map[string]Choices{}
	}
	return c.entries
}

func (c *FileCache) save() {
	blob, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save cache: %v\n", err)
		return
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save cache: %v\n", err)
		return
	}
	if err := os.WriteFile(c.path(), blob, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save cache: %v\n", err)
	}
}

// Choices returns the remembered choices for a file, empty if none.
func (c *FileCache) Choices(path string) Choices {
	return c.load()[Fingerprint(path)]
}

// SaveSheet remembers a sheet selection for a file.
func (c *FileCache) SaveSheet(path, sheet string) {
	entries := c.load()
	entry := entries[Fingerprint(path)]
	entry.SheetName = sheet
	entries[Fingerprint(path)] = entry
	c.save()
}

// SaveColumnMapping remembers one resolved column decision ("skip" or a
// canonical column title) for a file.
func (c *FileCache) SaveColumnMapping(path, source, target string) {
	entries := c.load()
	entry := entries[Fingerprint(path)]
	if entry.ColumnMappings == nil {
		entry.ColumnMappings = map[string]string{}
	}
	entry.ColumnMappings[source] = target
	entries[Fingerprint(path)] = entry
	c.save()
}

// Clear drops one file's entry, or every entry when path is empty.
func (c *FileCache) Clear(path string) {
	entries := c.load()
	if path == "" {
		c.entries = map[string]Choices{}
	} else {
		delete(entries, Fingerprint(path))
	}
	c.save()
}

// Len reports how many fingerprints are cached.
func (c *FileCache) Len() int {
	return len(c.load())
}
