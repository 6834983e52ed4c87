package pibt

import (
	"math/rand"
	"sort"
	"time"

	"github.com/elektrokombinacija/fspibt-grid/internal/distance"
	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
)

// Config holds the tunables of spec.md §6/§9.
type Config struct {
	InheritanceDepth int           // default 5 (the "-D" CLI flag)
	MaxTimestep      int           // T
	MaxCompTime      time.Duration // wall-clock cap
	Seed             int64         // PRNG seed for tie-breaker and anti-deadlock skip

	// Observer, when set, is notified of scheduling events as Run
	// progresses (a visualizer's hook; nil is the common case).
	Observer Observer

	// disableDistInit skips seeding InitD from the Distance Oracle
	// (falls back to 0), matching the original solver's
	// disable_dist_init option. Not exposed on the CLI (see
	// SPEC_FULL.md §6); set only from tests.
	disableDistInit bool
}

// timeoutSignal is the only propagated "exception" in this package
// (spec.md §7): a wall-clock abort raised deep inside conflict
// detection and caught once, at Run()'s boundary.
type timeoutSignal struct{}

// Scheduler is the per-timestep driver plus the inheritance machinery
// of spec.md §4.4-§4.6, all sharing one flat agent array (spec.md §9).
type Scheduler struct {
	grid   *gridmap.Grid
	oracle *distance.Oracle
	agents []*Agent
	conflict conflictSet
	cfg    Config
	rng    *rand.Rand
	start  time.Time

	// startCells freezes each agent's initial cell so lower-bound
	// accessors remain correct after Run has advanced every path.
	startCells []gridmap.Cell
}

// New builds a Scheduler. agents must already have InitD and
// TieBreaker populated by the caller (the cmd drivers do this from the
// Distance Oracle and a PRNG seeded with the instance seed; the
// Scheduler draws from its own PRNG seeded with cfg.Seed).
func New(g *gridmap.Grid, oracle *distance.Oracle, agents []*Agent, cfg Config) *Scheduler {
	if cfg.InheritanceDepth == 0 {
		cfg.InheritanceDepth = 5
	}
	if cfg.disableDistInit {
		for _, a := range agents {
			a.InitD = 0
		}
	}
	return &Scheduler{
		grid:     g,
		oracle:   oracle,
		agents:   agents,
		conflict: conflictSet{},
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Result is the outcome of Run, matching the fields of the persisted
// solution log (spec.md §6).
type Result struct {
	Solved            bool
	Configs           [][]gridmap.Cell // Configs[t][agentIdx]
	Makespan          int
	SOC               int
	LowerBoundSOC     int
	LowerBoundMakespan int
	CompTime          time.Duration
}

func (s *Scheduler) checkTime() {
	if s.cfg.MaxCompTime > 0 && time.Since(s.start) > s.cfg.MaxCompTime {
		panic(timeoutSignal{})
	}
}

// Run executes the per-timestep driver of spec.md §4.6 and returns the
// joint-configuration plan, or an unsolved Result if a goal is
// unreachable, the step cap is hit, or the wall-clock cap is hit.
func (s *Scheduler) Run() (res *Result, err error) {
	s.start = time.Now()
	s.startCells = make([]gridmap.Cell, len(s.agents))
	for i, a := range s.agents {
		s.startCells[i] = a.Path.Front()
	}

	for i, a := range s.agents {
		if s.oracle.Dist(i, a.Path.Front()) == s.oracle.Unreachable() {
			return s.unsolvedResult(), nil
		}
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(timeoutSignal); ok {
				res = s.unsolvedResult()
				res.CompTime = time.Since(s.start)
				err = nil
				return
			}
			panic(r)
		}
	}()

	configs := make([][]gridmap.Cell, 0, s.cfg.MaxTimestep+1)
	configs = append(configs, startConfiguration(s.agents))

	solved := false
	timestep := 0
	for {
		timestep++

		order := make([]*Agent, len(s.agents))
		copy(order, s.agents)
		sortByPriority(order)

		for _, a := range order {
			if a.Path.Len() == 1 {
				s.step(a)
			}
		}

		config := make([]gridmap.Cell, len(s.agents))
		allAtGoal := true
		for _, a := range s.agents {
			next := a.Path.At(1)
			atGoal := next == a.Goal
			config[a.Index] = next
			a.Path.CommitAdvance()
			if atGoal {
				a.Elapsed = 0
			} else {
				a.Elapsed++
				allAtGoal = false
			}
		}
		configs = append(configs, config)
		s.notifyTimestep(timestep, config)

		if allAtGoal {
			solved = true
			break
		}
		if timestep >= s.cfg.MaxTimestep {
			break
		}
		s.checkTime()
	}

	return s.buildResult(solved, configs), nil
}

// step implements spec.md §4.5.
func (s *Scheduler) step(a *Agent) {
	if a.Path.Back() == a.Goal {
		a.Path.PushWait()
		return
	}

	neighbors := s.grid.Neighbors(a.Path.Back())
	sort.SliceStable(neighbors, func(i, j int) bool {
		return s.oracle.Dist(a.Index, neighbors[i]) < s.oracle.Dist(a.Index, neighbors[j])
	})

	for _, n := range neighbors {
		if s.oracle.Dist(a.Index, n) == s.oracle.Unreachable() {
			continue
		}
		a.Path.Push(n)

		s.checkTime()
		if collision(a, s.agents, s.conflict) {
			a.Path.Pop()
			continue
		}

		if inheritance(a, s.agents) {
			if _, ok := s.solveInheritance(a); !ok {
				a.Path.Pop()
				continue
			}
		}
		return
	}

	a.Path.PushWait()
}

func startConfiguration(agents []*Agent) []gridmap.Cell {
	cfg := make([]gridmap.Cell, len(agents))
	for _, a := range agents {
		cfg[a.Index] = a.Path.Front()
	}
	return cfg
}

func (s *Scheduler) unsolvedResult() *Result {
	r := s.buildResult(false, nil)
	return r
}

func (s *Scheduler) buildResult(solved bool, configs [][]gridmap.Cell) *Result {
	lbSOC, lbMakespan := s.lowerBounds()
	r := &Result{
		Solved:             solved,
		Configs:            configs,
		LowerBoundSOC:      lbSOC,
		LowerBoundMakespan: lbMakespan,
		CompTime:           time.Since(s.start),
	}
	if solved {
		r.Makespan, r.SOC = planCost(configs, s.agents)
	}
	return r
}

// lowerBounds implements spec.md §6: lb_soc = sum dist(i,start_i),
// lb_makespan = max_i dist(i,start_i).
func (s *Scheduler) lowerBounds() (soc, makespan int) {
	for i := range s.agents {
		d := s.oracle.Dist(i, s.startCells[i])
		soc += d
		if d > makespan {
			makespan = d
		}
	}
	return soc, makespan
}

// LowerBoundSOC and LowerBoundMakespan expose the accessors
// original_source/ keeps as first-class methods on the solver rather
// than plain fields (SPEC_FULL.md §6).
func (s *Scheduler) LowerBoundSOC() int {
	soc, _ := s.lowerBounds()
	return soc
}

func (s *Scheduler) LowerBoundMakespan() int {
	_, ms := s.lowerBounds()
	return ms
}

// planCost computes SOC (sum, over agents, of the timestep from which
// the agent stays at its goal until the end of the plan) and makespan
// (the largest such timestep over all agents).
func planCost(configs [][]gridmap.Cell, agents []*Agent) (makespan, soc int) {
	for _, a := range agents {
		last := 0
		for t := len(configs) - 1; t >= 0; t-- {
			if configs[t][a.Index] != a.Goal {
				last = t + 1
				break
			}
		}
		soc += last
		if last > makespan {
			makespan = last
		}
	}
	return makespan, soc
}
