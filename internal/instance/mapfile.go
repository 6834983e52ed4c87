package instance

import (
	"bufio"
	"fmt"
	"os"

	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
)

// LoadMap reads a grid map file: a "height H" line, a "width W" line,
// then H lines of W characters each, '.' for passable and anything
// else for blocked. This is the de-facto format for the benchmark
// instances this solver targets.
func LoadMap(path string) (*gridmap.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("instance: open map file: %w", err)
	}
	defer f.Close()

	var height, width int
	rows := make([]string, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case height == 0 && hasPrefix(line, "height"):
			if _, err := fmt.Sscanf(line, "height %d", &height); err != nil {
				return nil, fmt.Errorf("instance: bad height line %q: %w", line, err)
			}
		case width == 0 && hasPrefix(line, "width"):
			if _, err := fmt.Sscanf(line, "width %d", &width); err != nil {
				return nil, fmt.Errorf("instance: bad width line %q: %w", line, err)
			}
		case line == "map":
			continue
		case line == "":
			continue
		default:
			rows = append(rows, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("instance: reading map file: %w", err)
	}
	if height == 0 || width == 0 {
		return nil, fmt.Errorf("instance: map file missing height/width header")
	}
	if len(rows) != height {
		return nil, fmt.Errorf("instance: map file has %d rows, want %d", len(rows), height)
	}

	g := gridmap.New(width, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("instance: row %d has length %d, want %d", y, len(row), width)
		}
		for x, ch := range row {
			if ch != '.' {
				g.SetBlocked(x, y, true)
			}
		}
	}
	return g, nil
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
