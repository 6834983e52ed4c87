// Package instance parses the line-oriented key=value instance file
// format of spec.md §6 and builds the Grid/Agent inputs the scheduler
// consumes. This, plan validation, logging, and the CLI/batch drivers
// are the external collaborators spec.md deliberately keeps outside the
// PIBT core (spec.md §1); this package is where they live.
package instance

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
)

// defaultSquareSize and defaultRadiusRange are the fill-in defaults of
// spec.md §6 when fewer sizes/radiuses are given than agents.
const defaultSquareSize = 0.45

var defaultRadiusRange = [2]float64{1, 2}

// StartGoal is one `<sx>,<sy>,<gx>,<gy>` scenario line.
type StartGoal struct {
	SX, SY, GX, GY int
}

// Spec is the parsed, defaulted instance: everything the CLI driver
// needs to build a Grid, a set of Agents, and a Scheduler Config.
type Spec struct {
	MapFile string

	NumAgents int
	Kind      footprint.Kind
	Sizes     []float64 // square mode, len == NumAgents
	Radii     []float64 // disk mode, len == NumAgents

	Seed          int64
	RandomProblem bool
	WellFormed    bool

	MaxTimestep int
	MaxCompTime time.Duration

	StartGoals []StartGoal
}

var (
	reStartGoal = regexp.MustCompile(`^\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*$`)
	reList      = regexp.MustCompile(`[\(\)\s]`)
)

// Parse reads an instance file, order-insensitive, `#`-commented, and
// resolves defaults (spec.md §6). Returns an error for any
// instance-invalid condition of spec.md §7 taxonomy item 1.
func Parse(path string) (*Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("instance: %w", err)
	}
	defer f.Close()

	spec := &Spec{MaxTimestep: 0, MaxCompTime: 0}
	var rawSizes, rawRadii string
	haveSizes, haveRadii := false, false
	var sizesRandomMin, sizesRandomMax float64
	haveSizesRandom := false

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if m := reStartGoal.FindStringSubmatch(line); m != nil && !strings.Contains(line, "=") {
			sx, _ := strconv.Atoi(m[1])
			sy, _ := strconv.Atoi(m[2])
			gx, _ := strconv.Atoi(m[3])
			gy, _ := strconv.Atoi(m[4])
			spec.StartGoals = append(spec.StartGoals, StartGoal{SX: sx, SY: sy, GX: gx, GY: gy})
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("instance: unparseable line %q", line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "map_file":
			spec.MapFile = value
		case "agents":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("instance: bad agents value %q: %w", value, err)
			}
			spec.NumAgents = n
		case "sizes":
			rawSizes = value
			haveSizes = true
			spec.Kind = footprint.Square
		case "sizes_random_uniform":
			lo, hi, err := parseRange(value)
			if err != nil {
				return nil, fmt.Errorf("instance: bad sizes_random_uniform %q: %w", value, err)
			}
			sizesRandomMin, sizesRandomMax = lo, hi
			haveSizesRandom = true
			spec.Kind = footprint.Square
		case "radiuses":
			rawRadii = value
			haveRadii = true
			spec.Kind = footprint.Disk
		case "seed":
			n, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("instance: bad seed %q: %w", value, err)
			}
			spec.Seed = n
		case "random_problem":
			spec.RandomProblem = value == "1"
		case "well_formed":
			spec.WellFormed = value == "1"
		case "max_timestep":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("instance: bad max_timestep %q: %w", value, err)
			}
			spec.MaxTimestep = n
		case "max_comp_time":
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("instance: bad max_comp_time %q: %w", value, err)
			}
			spec.MaxCompTime = time.Duration(n) * time.Millisecond
		default:
			return nil, fmt.Errorf("instance: unknown key %q", key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("instance: %w", err)
	}

	if spec.MapFile == "" {
		return nil, fmt.Errorf("instance: missing map_file")
	}
	if spec.NumAgents <= 0 {
		return nil, fmt.Errorf("instance: agents must be positive")
	}

	rng := rand.New(rand.NewSource(spec.Seed))

	switch {
	case haveRadii:
		spec.Radii = resolveList(rawRadii, spec.NumAgents, func() float64 {
			return defaultRadiusRange[0] + rng.Float64()*(defaultRadiusRange[1]-defaultRadiusRange[0])
		})
	case haveSizesRandom:
		spec.Sizes = make([]float64, spec.NumAgents)
		for i := range spec.Sizes {
			spec.Sizes[i] = sizesRandomMin + rng.Float64()*(sizesRandomMax-sizesRandomMin)
		}
	case haveSizes:
		spec.Sizes = resolveList(rawSizes, spec.NumAgents, func() float64 { return defaultSquareSize })
	default:
		spec.Kind = footprint.Square
		spec.Sizes = resolveList("", spec.NumAgents, func() float64 { return defaultSquareSize })
	}

	return spec, nil
}

func parseRange(value string) (float64, float64, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected min,max")
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, err
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, err
	}
	return lo, hi, nil
}

// resolveList parses a "(v1, v2, ...)" list, then fills any remaining
// agents up to n with fallback().
func resolveList(raw string, n int, fallback func() float64) []float64 {
	out := make([]float64, 0, n)
	cleaned := reList.ReplaceAllString(raw, "")
	if cleaned != "" {
		for _, tok := range strings.Split(cleaned, ",") {
			if tok == "" {
				continue
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				continue
			}
			out = append(out, v)
		}
	}
	for len(out) < n {
		out = append(out, fallback())
	}
	return out[:n]
}

// Footprints builds the per-agent footprint.Footprint values from the
// resolved Spec.
func (s *Spec) Footprints() []footprint.Footprint {
	out := make([]footprint.Footprint, s.NumAgents)
	for i := range out {
		if s.Kind == footprint.Disk {
			out[i] = footprint.NewDisk(s.Radii[i])
		} else {
			out[i] = footprint.NewSquare(s.Sizes[i])
		}
	}
	return out
}
