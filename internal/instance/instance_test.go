package instance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
)

func writeTempInstance(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "instance.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp instance: %v", err)
	}
	return path
}

func TestParseBasicSquareInstance(t *testing.T) {
	path := writeTempInstance(t, `# a comment line
map_file=some.map
agents=2
sizes=(0.3, 0.4)
seed=42
max_timestep=100
1,1,5,5
2,2,6,6
`)

	spec, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if spec.MapFile != "some.map" {
		t.Errorf("MapFile = %q, want some.map", spec.MapFile)
	}
	if spec.NumAgents != 2 {
		t.Errorf("NumAgents = %d, want 2", spec.NumAgents)
	}
	if spec.Kind != footprint.Square {
		t.Errorf("Kind = %v, want Square", spec.Kind)
	}
	if len(spec.Sizes) != 2 || spec.Sizes[0] != 0.3 || spec.Sizes[1] != 0.4 {
		t.Errorf("Sizes = %v, want [0.3 0.4]", spec.Sizes)
	}
	if spec.Seed != 42 {
		t.Errorf("Seed = %d, want 42", spec.Seed)
	}
	if spec.MaxTimestep != 100 {
		t.Errorf("MaxTimestep = %d, want 100", spec.MaxTimestep)
	}
	if len(spec.StartGoals) != 2 {
		t.Fatalf("StartGoals = %v, want 2 entries", spec.StartGoals)
	}
	if spec.StartGoals[0] != (StartGoal{SX: 1, SY: 1, GX: 5, GY: 5}) {
		t.Errorf("StartGoals[0] = %v, want {1 1 5 5}", spec.StartGoals[0])
	}
}

func TestParseDiskInstance(t *testing.T) {
	path := writeTempInstance(t, `map_file=m.map
agents=1
radiuses=(0.8)
0,0,3,3
`)
	spec, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if spec.Kind != footprint.Disk {
		t.Errorf("Kind = %v, want Disk", spec.Kind)
	}
	if len(spec.Radii) != 1 || spec.Radii[0] != 0.8 {
		t.Errorf("Radii = %v, want [0.8]", spec.Radii)
	}
}

func TestParseFillsMissingSizesFromDefault(t *testing.T) {
	path := writeTempInstance(t, `map_file=m.map
agents=3
sizes=(0.3)
0,0,1,1
0,0,1,1
0,0,1,1
`)
	spec, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(spec.Sizes) != 3 {
		t.Fatalf("Sizes = %v, want length 3", spec.Sizes)
	}
	if spec.Sizes[0] != 0.3 {
		t.Errorf("Sizes[0] = %v, want 0.3 (explicit)", spec.Sizes[0])
	}
	if spec.Sizes[1] != defaultSquareSize || spec.Sizes[2] != defaultSquareSize {
		t.Errorf("Sizes[1:] = %v, want filled with default %v", spec.Sizes[1:], defaultSquareSize)
	}
}

func TestParseDefaultsToSquareWhenNoSizeKeyGiven(t *testing.T) {
	path := writeTempInstance(t, `map_file=m.map
agents=1
0,0,1,1
`)
	spec, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if spec.Kind != footprint.Square {
		t.Errorf("Kind = %v, want Square by default", spec.Kind)
	}
	if len(spec.Sizes) != 1 || spec.Sizes[0] != defaultSquareSize {
		t.Errorf("Sizes = %v, want [%v]", spec.Sizes, defaultSquareSize)
	}
}

func TestParseMissingMapFileErrors(t *testing.T) {
	path := writeTempInstance(t, `agents=1
0,0,1,1
`)
	if _, err := Parse(path); err == nil {
		t.Errorf("expected an error for a missing map_file key")
	}
}

func TestParseNonPositiveAgentsErrors(t *testing.T) {
	path := writeTempInstance(t, `map_file=m.map
agents=0
`)
	if _, err := Parse(path); err == nil {
		t.Errorf("expected an error for agents <= 0")
	}
}

func TestParseUnknownKeyErrors(t *testing.T) {
	path := writeTempInstance(t, `map_file=m.map
agents=1
bogus_key=1
0,0,1,1
`)
	if _, err := Parse(path); err == nil {
		t.Errorf("expected an error for an unrecognized key")
	}
}

func TestParseOrderInsensitive(t *testing.T) {
	path := writeTempInstance(t, `agents=1
sizes=(0.5)
map_file=m.map
0,0,1,1
`)
	spec, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if spec.MapFile != "m.map" || spec.NumAgents != 1 {
		t.Errorf("key order should not affect parsing, got %+v", spec)
	}
}

func TestFootprintsBuildsFromKind(t *testing.T) {
	spec := &Spec{NumAgents: 2, Kind: footprint.Disk, Radii: []float64{0.5, 0.6}}
	fps := spec.Footprints()
	if len(fps) != 2 {
		t.Fatalf("Footprints() len = %d, want 2", len(fps))
	}
	if fps[0].Kind != footprint.Disk || fps[0].R != 0.5 {
		t.Errorf("Footprints()[0] = %+v, want disk radius 0.5", fps[0])
	}
}
