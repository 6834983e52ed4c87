// Command fspibtbench runs the scheduler over a directory of instance
// files and collects CSV+JSON metrics, adapted from the solver
// package's run_benchmarks tool to drive the PIBT scheduler directly
// in-process instead of shelling out (SPEC_FULL.md §6).
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/elektrokombinacija/fspibt-grid/internal/distance"
	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
	"github.com/elektrokombinacija/fspibt-grid/internal/instance"
	"github.com/elektrokombinacija/fspibt-grid/internal/pibt"
)

// TrialResult stores the outcome of a single instance run.
type TrialResult struct {
	Timestamp  string  `json:"timestamp"`
	CommitHash string  `json:"commit_hash"`
	GoVersion  string  `json:"go_version"`
	OS         string  `json:"os"`
	Arch       string  `json:"arch"`
	Instance   string  `json:"instance"`
	NumAgents  int     `json:"num_agents"`
	Solver     string  `json:"solver"`
	RuntimeMs  float64 `json:"runtime_ms"`
	Solved     bool    `json:"solved"`
	SOC        int     `json:"soc"`
	LBSOC      int     `json:"lb_soc"`
	Makespan   int     `json:"makespan"`
	LBMakespan int     `json:"lb_makespan"`
}

// SolverMetrics holds per-solver aggregated metrics across trials.
type SolverMetrics struct {
	Name           string
	TotalRuns      int
	Solved         int
	TotalRuntimeMs float64
	TotalSOC       int
	TotalMakespan  int
}

func getGitCommit() string {
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(out))
}

func runTrial(path string, timeout time.Duration) (*TrialResult, error) {
	spec, err := instance.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	g, err := instance.LoadMap(spec.MapFile)
	if err != nil {
		return nil, fmt.Errorf("load map for %s: %w", path, err)
	}
	if len(spec.StartGoals) != spec.NumAgents {
		return nil, fmt.Errorf("%s: declares %d agents but has %d start/goal lines", path, spec.NumAgents, len(spec.StartGoals))
	}

	footprints := spec.Footprints()
	rng := rand.New(rand.NewSource(spec.Seed))

	oracleSpecs := make([]distance.AgentSpec, spec.NumAgents)
	starts := make([]gridmap.Cell, spec.NumAgents)
	goals := make([]gridmap.Cell, spec.NumAgents)
	for i, sg := range spec.StartGoals {
		starts[i] = g.Cell(sg.SX, sg.SY)
		goals[i] = g.Cell(sg.GX, sg.GY)
		oracleSpecs[i] = distance.AgentSpec{Goal: goals[i], Footprint: footprints[i]}
	}
	oracle := distance.Build(g, spec.MaxTimestep, oracleSpecs)

	agents := make([]*pibt.Agent, spec.NumAgents)
	for i := range agents {
		agents[i] = pibt.NewAgent(i, starts[i], goals[i], footprints[i], oracle.Dist(i, starts[i]), rng.Float64())
	}

	solver := "LAPIBT"
	if spec.Kind == footprint.Disk {
		solver = "FSPIBT"
	}

	sched := pibt.New(g, oracle, agents, pibt.Config{
		MaxTimestep: spec.MaxTimestep,
		MaxCompTime: timeout,
		Seed:        spec.Seed,
	})

	start := time.Now()
	res, err := sched.Run()
	elapsed := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", path, err)
	}

	return &TrialResult{
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		CommitHash: getGitCommit(),
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		Instance:   filepath.Base(path),
		NumAgents:  spec.NumAgents,
		Solver:     solver,
		RuntimeMs:  float64(elapsed.Microseconds()) / 1000.0,
		Solved:     res.Solved,
		SOC:        res.SOC,
		LBSOC:      res.LowerBoundSOC,
		Makespan:   res.Makespan,
		LBMakespan: res.LowerBoundMakespan,
	}, nil
}

func writeCSV(results []*TrialResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"timestamp", "commit_hash", "go_version", "os", "arch",
		"instance", "num_agents", "solver", "runtime_ms", "solved",
		"soc", "lb_soc", "makespan", "lb_makespan",
	}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			r.Timestamp, r.CommitHash, r.GoVersion, r.OS, r.Arch,
			r.Instance, fmt.Sprintf("%d", r.NumAgents), r.Solver,
			fmt.Sprintf("%.3f", r.RuntimeMs), fmt.Sprintf("%t", r.Solved),
			fmt.Sprintf("%d", r.SOC), fmt.Sprintf("%d", r.LBSOC),
			fmt.Sprintf("%d", r.Makespan), fmt.Sprintf("%d", r.LBMakespan),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(results []*TrialResult, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func printSummary(results []*TrialResult) {
	metrics := make(map[string]*SolverMetrics)
	for _, r := range results {
		m, ok := metrics[r.Solver]
		if !ok {
			m = &SolverMetrics{Name: r.Solver}
			metrics[r.Solver] = m
		}
		m.TotalRuns++
		if r.Solved {
			m.Solved++
			m.TotalRuntimeMs += r.RuntimeMs
			m.TotalSOC += r.SOC
			m.TotalMakespan += r.Makespan
		}
	}

	fmt.Println("\n=== FSPIBT BENCHMARK SUMMARY ===")
	fmt.Printf("%-10s %8s %8s %14s %10s %10s\n",
		"Solver", "Runs", "Solved", "Avg Time(ms)", "AvgSOC", "AvgMkspn")
	fmt.Println(strings.Repeat("-", 64))

	var names []string
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		m := metrics[name]
		avgTime, avgSOC, avgMakespan := 0.0, 0.0, 0.0
		if m.Solved > 0 {
			avgTime = m.TotalRuntimeMs / float64(m.Solved)
			avgSOC = float64(m.TotalSOC) / float64(m.Solved)
			avgMakespan = float64(m.TotalMakespan) / float64(m.Solved)
		}
		fmt.Printf("%-10s %8d %8d %14.2f %10.2f %10.2f\n",
			m.Name, m.TotalRuns, m.Solved, avgTime, avgSOC, avgMakespan)
	}
}

func main() {
	inputDir := flag.String("input", "testdata", "directory containing instance files")
	outputCSV := flag.String("output", "evidence/benchmark_results.csv", "output CSV file")
	outputJSON := flag.String("json", "", "optional output JSON file")
	timeout := flag.Duration("timeout", 5*time.Second, "wall-clock cap per instance")
	verbose := flag.Bool("verbose", false, "print each trial as it runs")

	flag.Parse()

	if err := os.MkdirAll(filepath.Dir(*outputCSV), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "fspibtbench: creating output directory: %v\n", err)
		os.Exit(1)
	}

	files, err := filepath.Glob(filepath.Join(*inputDir, "*.txt"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "fspibtbench: finding instance files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "fspibtbench: no instance files found in %s\n", *inputDir)
		os.Exit(1)
	}
	sort.Strings(files)

	var results []*TrialResult
	for _, f := range files {
		if *verbose {
			fmt.Printf("running %s...\n", f)
		}
		r, err := runTrial(f, *timeout)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fspibtbench: %v\n", err)
			continue
		}
		results = append(results, r)
	}

	if err := writeCSV(results, *outputCSV); err != nil {
		fmt.Fprintf(os.Stderr, "fspibtbench: writing CSV: %v\n", err)
		os.Exit(1)
	}
	if *outputJSON != "" {
		if err := writeJSON(results, *outputJSON); err != nil {
			fmt.Fprintf(os.Stderr, "fspibtbench: writing JSON: %v\n", err)
			os.Exit(1)
		}
	}

	printSummary(results)
}
