package instance

import (
	"fmt"
	"io"

	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
)

// WriteScenario emits an instance file reproducing this Spec with a
// concrete, resolved set of start/goal pairs (the `-P` CLI flag of
// spec.md §6), the same key=value format Parse reads, so a generated
// or randomized run can be replayed exactly.
func WriteScenario(w io.Writer, s *Spec, resolved []StartGoal) error {
	fmt.Fprintf(w, "map_file=%s\n", s.MapFile)
	fmt.Fprintf(w, "agents=%d\n", s.NumAgents)
	if s.Kind == footprint.Disk {
		fmt.Fprintf(w, "radiuses=(%s)\n", joinFloats(s.Radii))
	} else {
		fmt.Fprintf(w, "sizes=(%s)\n", joinFloats(s.Sizes))
	}
	fmt.Fprintf(w, "seed=%d\n", s.Seed)
	if s.MaxTimestep > 0 {
		fmt.Fprintf(w, "max_timestep=%d\n", s.MaxTimestep)
	}
	if s.MaxCompTime > 0 {
		fmt.Fprintf(w, "max_comp_time=%d\n", s.MaxCompTime.Milliseconds())
	}
	for _, sg := range resolved {
		fmt.Fprintf(w, "%d,%d,%d,%d\n", sg.SX, sg.SY, sg.GX, sg.GY)
	}
	return nil
}

func joinFloats(vs []float64) string {
	out := ""
	for i, v := range vs {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf("%g", v)
	}
	return out
}
