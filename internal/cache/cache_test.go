package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCacheRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	src := writeSource(t, tmp, "reqs.csv", "a;b\n1;2\n")

	c := New(filepath.Join(tmp, ".cache"))
	c.SaveSheet(src, "Requirements")
	c.SaveColumnMapping(src, "custom col", "Title")
	c.SaveColumnMapping(src, "junk col", "skip")

	// A fresh instance must read the same choices back from disk.
	c2 := New(filepath.Join(tmp, ".cache"))
	choices := c2.Choices(src)
	if choices.SheetName != "Requirements" {
		t.Fatalf("sheet=%q", choices.SheetName)
	}
	if choices.ColumnMappings["custom col"] != "Title" {
		t.Fatalf("mappings=%v", choices.ColumnMappings)
	}
	if choices.ColumnMappings["junk col"] != "skip" {
		t.Fatalf("mappings=%v", choices.ColumnMappings)
	}
}

func TestFingerprintChangesWithContent(t *testing.T) {
	tmp := t.TempDir()
	src := writeSource(t, tmp, "reqs.csv", "a;b\n")
	before := Fingerprint(src)

	if err := os.WriteFile(src, []byte("a;b\n1;2\nmore content\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if after := Fingerprint(src); after == before {
		t.Fatal("fingerprint did not change after edit")
	}
}

func TestChangedFileInvalidatesChoices(t *testing.T) {
	tmp := t.TempDir()
	src := writeSource(t, tmp, "reqs.csv", "a;b\n")

	c := New(filepath.Join(tmp, ".cache"))
	c.SaveSheet(src, "Sheet2")

	if err := os.WriteFile(src, []byte("different contents entirely\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := c.Choices(src).SheetName; got != "" {
		t.Fatalf("stale choices survived edit: %q", got)
	}
}

func TestCorruptCacheIsTreatedAsEmpty(t *testing.T) {
	tmp := t.TempDir()
	cacheDir := filepath.Join(tmp, ".cache")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cacheDir, cacheFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(cacheDir)
	if c.Len() != 0 {
		t.Fatalf("len=%d", c.Len())
	}

	// And it stays usable.
	src := writeSource(t, tmp, "reqs.csv", "a;b\n")
	c.SaveSheet(src, "S")
	if c.Choices(src).SheetName != "S" {
		t.Fatal("cache unusable after corruption recovery")
	}
}

func TestClear(t *testing.T) {
	tmp := t.TempDir()
	a := writeSource(t, tmp, "a.csv", "a\n")
	b := writeSource(t, tmp, "b.csv", "b\n")

	c := New(filepath.Join(tmp, ".cache"))
	c.SaveSheet(a, "A")
	c.SaveSheet(b, "B")

	c.Clear(a)
	if c.Choices(a).SheetName != "" {
		t.Fatal("entry for a not cleared")
	}
	if c.Choices(b).SheetName != "B" {
		t.Fatal("entry for b lost")
	}

	c.Clear("")
	if c.Len() != 0 {
		t.Fatalf("len=%d after full clear", c.Len())
	}
}
