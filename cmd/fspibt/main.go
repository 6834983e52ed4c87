// Command fspibt runs the LA-PIBT/FSPIBT scheduler on a single instance
// file and writes a solution log, per spec.md §6.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/elektrokombinacija/fspibt-grid/internal/distance"
	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/geninstance"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
	"github.com/elektrokombinacija/fspibt-grid/internal/instance"
	"github.com/elektrokombinacija/fspibt-grid/internal/pibt"
	"github.com/elektrokombinacija/fspibt-grid/internal/solutionlog"
	"github.com/elektrokombinacija/fspibt-grid/internal/validate"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("fspibt", flag.ContinueOnError)
	instancePath := fs.String("i", "", "instance file (required)")
	solverName := fs.String("s", "", "solver label, LAPIBT or FSPIBT (default: inferred from instance)")
	outputPath := fs.String("o", "", "solution log output path (default: stdout)")
	verbose := fs.Bool("v", false, "print a human-readable summary to stderr")
	timeoutMs := fs.Int("T", 0, "wall-clock cap in milliseconds, 0 = use the instance's max_comp_time")
	shortLog := fs.Bool("L", false, "omit the solution= block from the log")
	emitScenario := fs.Bool("P", false, "emit a reproducible scenario file at <instance>.scenario")
	depth := fs.Int("D", 5, "inheritance depth cap")
	seedFlag := fs.Int64("x", 0, "override the instance's seed")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *instancePath == "" {
		fmt.Fprintln(os.Stderr, "fspibt: -i INSTANCE is required")
		return 2
	}

	spec, err := instance.Parse(*instancePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fspibt:", err)
		return 2
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "x" {
			spec.Seed = *seedFlag
		}
	})

	label := *solverName
	if label == "" {
		if spec.Kind == footprint.Disk {
			label = "FSPIBT"
		} else {
			label = "LAPIBT"
		}
	}
	if (label == "FSPIBT") != (spec.Kind == footprint.Disk) {
		fmt.Fprintf(os.Stderr, "fspibt: solver %s does not match instance footprint kind\n", label)
		return 2
	}

	preStart := time.Now()

	g, err := instance.LoadMap(spec.MapFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fspibt:", err)
		return 2
	}

	rng := rand.New(rand.NewSource(spec.Seed))
	startGoals, err := resolveStartGoals(g, spec, rng)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fspibt:", err)
		return 2
	}

	footprints := spec.Footprints()
	maxComp := spec.MaxCompTime
	if *timeoutMs > 0 {
		maxComp = time.Duration(*timeoutMs) * time.Millisecond
	}

	oracleSpecs := make([]distance.AgentSpec, spec.NumAgents)
	starts := make([]gridmap.Cell, spec.NumAgents)
	goals := make([]gridmap.Cell, spec.NumAgents)
	for i, sg := range startGoals {
		starts[i] = g.Cell(sg.SX, sg.SY)
		goals[i] = g.Cell(sg.GX, sg.GY)
		oracleSpecs[i] = distance.AgentSpec{Goal: goals[i], Footprint: footprints[i]}
	}
	oracle := distance.Build(g, spec.MaxTimestep, oracleSpecs)

	agents := make([]*pibt.Agent, spec.NumAgents)
	for i := range agents {
		initD := oracle.Dist(i, starts[i])
		agents[i] = pibt.NewAgent(i, starts[i], goals[i], footprints[i], initD, rng.Float64())
	}

	sched := pibt.New(g, oracle, agents, pibt.Config{
		InheritanceDepth: *depth,
		MaxTimestep:      spec.MaxTimestep,
		MaxCompTime:      maxComp,
		Seed:             spec.Seed,
	})
	preprocessing := time.Since(preStart)

	result, err := sched.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fspibt:", err)
		return 1
	}

	if result.Solved {
		if verr := validate.Plan(result.Configs, goals, footprints); verr != nil {
			fmt.Fprintln(os.Stderr, "fspibt: internal error: solved plan failed validation:", verr)
			return 1
		}
	}

	summary := solutionlog.Summary{
		InstancePath:       *instancePath,
		MapFile:            spec.MapFile,
		Solver:             label,
		NumAgents:          spec.NumAgents,
		Kind:               spec.Kind,
		Sizes:              spec.Sizes,
		Radii:              spec.Radii,
		Solved:             result.Solved,
		SOC:                result.SOC,
		LowerBoundSOC:      result.LowerBoundSOC,
		Makespan:           result.Makespan,
		LowerBoundMakespan: result.LowerBoundMakespan,
		CompTime:           result.CompTime,
		PreprocessingTime:  preprocessing,
		Starts:             starts,
		Goals:              goals,
		Solution:           result.Configs,
	}

	out := os.Stdout
	if *outputPath != "" {
		f, err := os.Create(*outputPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "fspibt:", err)
			return 2
		}
		defer f.Close()
		out = f
	}
	if err := solutionlog.WriteLog(out, summary, *shortLog); err != nil {
		fmt.Fprintln(os.Stderr, "fspibt:", err)
		return 2
	}

	if *verbose {
		solutionlog.PrintResult(os.Stderr, summary)
	}

	if *emitScenario {
		scenarioPath := *instancePath + ".scenario"
		f, err := os.Create(scenarioPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "fspibt:", err)
			return 2
		}
		defer f.Close()
		if err := instance.WriteScenario(f, spec, startGoals); err != nil {
			fmt.Fprintln(os.Stderr, "fspibt:", err)
			return 2
		}
	}

	return 0
}

// resolveStartGoals returns the concrete start/goal cells the run uses:
// the instance file's scenario lines verbatim, or freshly generated
// ones when random_problem/well_formed is set (spec.md §6).
func resolveStartGoals(g *gridmap.Grid, spec *instance.Spec, rng *rand.Rand) ([]instance.StartGoal, error) {
	if !spec.RandomProblem && !spec.WellFormed {
		if len(spec.StartGoals) != spec.NumAgents {
			return nil, fmt.Errorf("instance declares %d agents but has %d start/goal lines", spec.NumAgents, len(spec.StartGoals))
		}
		return spec.StartGoals, nil
	}

	footprints := spec.Footprints()
	var placements []geninstance.Placement
	var err error
	if spec.WellFormed {
		placements, err = geninstance.GenerateWellFormed(g, footprints, spec.MaxTimestep, rng)
	} else {
		placements, err = geninstance.GenerateRandom(g, footprints, rng)
	}
	if err != nil {
		return nil, err
	}

	out := make([]instance.StartGoal, len(placements))
	for i, p := range placements {
		out[i] = instance.StartGoal{SX: p.Start.X, SY: p.Start.Y, GX: p.Goal.X, GY: p.Goal.Y}
	}
	return out, nil
}
