package instance

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempMap(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.map")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp map: %v", err)
	}
	return path
}

func TestLoadMapParsesBlockedCells(t *testing.T) {
	path := writeTempMap(t, `height 3
width 4
map
....
.@@.
....
`)
	g, err := LoadMap(path)
	if err != nil {
		t.Fatalf("LoadMap returned error: %v", err)
	}
	if g.Width != 4 || g.Height != 3 {
		t.Fatalf("grid dims = %dx%d, want 4x3", g.Width, g.Height)
	}
	if g.Exists(1, 1) || g.Exists(2, 1) {
		t.Errorf("cells (1,1) and (2,1) should be blocked")
	}
	if !g.Exists(0, 1) || !g.Exists(3, 1) {
		t.Errorf("cells (0,1) and (3,1) should be passable")
	}
}

func TestLoadMapMissingHeaderErrors(t *testing.T) {
	path := writeTempMap(t, `....
....
`)
	if _, err := LoadMap(path); err == nil {
		t.Errorf("expected an error when height/width headers are missing")
	}
}

func TestLoadMapRowCountMismatchErrors(t *testing.T) {
	path := writeTempMap(t, `height 3
width 2
..
..
`)
	if _, err := LoadMap(path); err == nil {
		t.Errorf("expected an error when the row count does not match height")
	}
}

func TestLoadMapRowWidthMismatchErrors(t *testing.T) {
	path := writeTempMap(t, `height 1
width 4
..
`)
	if _, err := LoadMap(path); err == nil {
		t.Errorf("expected an error when a row's length does not match width")
	}
}

func TestLoadMapMissingFileErrors(t *testing.T) {
	if _, err := LoadMap(filepath.Join(t.TempDir(), "missing.map")); err == nil {
		t.Errorf("expected an error for a nonexistent file")
	}
}
