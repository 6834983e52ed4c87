// Command fspibtvis solves an instance and opens a GUI viewer over the
// resulting plan, adapted from the research visualizer's mapfhetvis
// entry point (SPEC_FULL.md §4).
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"

	"gioui.org/app"
	"gioui.org/unit"

	"github.com/elektrokombinacija/fspibt-grid/internal/distance"
	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
	"github.com/elektrokombinacija/fspibt-grid/internal/instance"
	"github.com/elektrokombinacija/fspibt-grid/internal/pibt"
	"github.com/elektrokombinacija/fspibt-grid/internal/solutionlog"
	"github.com/elektrokombinacija/fspibt-grid/internal/viewer"
)

func main() {
	instancePath := flag.String("i", "", "instance file (required)")
	depth := flag.Int("D", 5, "inheritance depth cap")
	flag.Parse()

	if *instancePath == "" {
		fmt.Fprintln(os.Stderr, "fspibtvis: -i INSTANCE is required")
		os.Exit(2)
	}

	g, footprints, summary, events, err := solve(*instancePath, *depth)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fspibtvis:", err)
		os.Exit(1)
	}

	go func() {
		window := new(app.Window)
		window.Option(
			app.Title("FSPIBT Viewer"),
			app.Size(unit.Dp(1000), unit.Dp(800)),
		)

		application := viewer.NewApp(g, footprints, summary)
		application.State().Events = events
		if err := application.Run(window); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

// solve parses and runs the instance the way cmd/fspibt does for an
// instance with explicit start/goal lines, and additionally attaches a
// viewer.RecordingObserver so the GUI can narrate escape/inheritance
// events alongside the resulting plan. It does not generate random or
// well-formed start/goals and applies no wall-clock cap.
func solve(path string, depth int) (*gridmap.Grid, []footprint.Footprint, solutionlog.Summary, []viewer.Event, error) {
	spec, err := instance.Parse(path)
	if err != nil {
		return nil, nil, solutionlog.Summary{}, nil, err
	}
	if len(spec.StartGoals) != spec.NumAgents {
		return nil, nil, solutionlog.Summary{}, nil, fmt.Errorf("%s: declares %d agents but has %d start/goal lines", path, spec.NumAgents, len(spec.StartGoals))
	}

	g, err := instance.LoadMap(spec.MapFile)
	if err != nil {
		return nil, nil, solutionlog.Summary{}, nil, err
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

	recorder := viewer.NewRecordingObserver()
	sched := pibt.New(g, oracle, agents, pibt.Config{
		InheritanceDepth: depth,
		MaxTimestep:      spec.MaxTimestep,
		Seed:             spec.Seed,
		Observer:         recorder,
	})

	res, err := sched.Run()
	if err != nil {
		return nil, nil, solutionlog.Summary{}, nil, err
	}

	summary := solutionlog.Summary{
		InstancePath:       path,
		MapFile:            spec.MapFile,
		NumAgents:          spec.NumAgents,
		Kind:               spec.Kind,
		Sizes:              spec.Sizes,
		Radii:              spec.Radii,
		Solved:             res.Solved,
		SOC:                res.SOC,
		LowerBoundSOC:      res.LowerBoundSOC,
		Makespan:           res.Makespan,
		LowerBoundMakespan: res.LowerBoundMakespan,
		CompTime:           res.CompTime,
		Starts:             starts,
		Goals:              goals,
		Solution:           res.Configs,
	}

	return g, footprints, summary, recorder.Events(), nil
}
