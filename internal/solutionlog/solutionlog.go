// Package solutionlog implements the persisted solution log and the
// human-readable result summary of spec.md §6, kept as two distinct
// operations, matching the original solver's separate makeLog and
// printResult (SPEC_FULL.md §6).
package solutionlog

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
)

// Summary is everything the log needs: instance metadata plus the
// scheduler's Result, flattened so this package doesn't import pibt
// (the CLI driver does the gluing).
type Summary struct {
	InstancePath string
	MapFile      string
	Solver       string
	NumAgents    int
	Kind         footprint.Kind
	Sizes        []float64
	Radii        []float64

	Solved             bool
	SOC                int
	LowerBoundSOC      int
	Makespan           int
	LowerBoundMakespan int
	CompTime           time.Duration
	PreprocessingTime  time.Duration

	Starts   []gridmap.Cell
	Goals    []gridmap.Cell
	Solution [][]gridmap.Cell // Solution[t][agentIdx]; may hold a partial plan when unsolved, written only when Solved
}

// WriteLog writes the persisted key=value + solution-block format of
// spec.md §6. When short is true (the `-L` CLI flag) the `solution=`
// block is omitted entirely, useful for large batch runs.
func WriteLog(w io.Writer, s Summary, short bool) error {
	fmt.Fprintf(w, "instance=%s\n", s.InstancePath)
	fmt.Fprintf(w, "agents=%d\n", s.NumAgents)
	if s.Kind == footprint.Disk {
		fmt.Fprintf(w, "radiuses=%s\n", joinFloats(s.Radii))
	} else {
		fmt.Fprintf(w, "sizes=%s\n", joinFloats(s.Sizes))
	}
	fmt.Fprintf(w, "map_file=%s\n", s.MapFile)
	fmt.Fprintf(w, "solver=%s\n", s.Solver)
	fmt.Fprintf(w, "solved=%d\n", boolToInt(s.Solved))
	fmt.Fprintf(w, "soc=%d   lb_soc=%d\n", s.SOC, s.LowerBoundSOC)
	fmt.Fprintf(w, "makespan=%d   lb_makespan=%d\n", s.Makespan, s.LowerBoundMakespan)
	fmt.Fprintf(w, "comp_time=%d   preprocessing_comp_time=%d\n",
		s.CompTime.Milliseconds(), s.PreprocessingTime.Milliseconds())
	fmt.Fprintf(w, "starts=%s\n", joinCells(s.Starts))
	fmt.Fprintf(w, "goals=%s\n", joinCells(s.Goals))

	if short || !s.Solved {
		return nil
	}

	fmt.Fprintln(w, "solution=")
	for t, config := range s.Solution {
		fmt.Fprintf(w, "%d:%s\n", t, joinCells(config))
	}
	return nil
}

// PrintResult prints the short, human-oriented summary the teacher's
// cmd/mapfhet driver printed inline (not the persisted log format).
func PrintResult(w io.Writer, s Summary) {
	fmt.Fprintf(w, "%s: solved=%v soc=%d (lb %d) makespan=%d (lb %d) comp_time=%v\n",
		s.Solver, s.Solved, s.SOC, s.LowerBoundSOC, s.Makespan, s.LowerBoundMakespan, s.CompTime)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func joinFloats(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return strings.Join(parts, ",")
}

func joinCells(cells []gridmap.Cell) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("(%d,%d)", c.X, c.Y)
	}
	return strings.Join(parts, ",")
}
