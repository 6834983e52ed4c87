package pibt

import (
	"testing"

	"github.com/elektrokombinacija/fspibt-grid/internal/footprint"
)

func TestRollbackRestoresPath(t *testing.T) {
	fp := footprint.NewSquare(1.0)
	a := NewAgent(0, cell(0, 0), cell(5, 5), fp, 0, 0)
	agents := []*Agent{a}

	snaps := snapshots{}
	snaps.captureIfAbsent(a)
	a.Path.Push(cell(1, 0))
	a.Path.Push(cell(2, 0))

	snaps.rollback(agents)
	if a.Path.Len() != 1 || a.Path.Back() != cell(0, 0) {
		t.Errorf("rollback should restore the path to its pre-snapshot state, got len=%d back=%v", a.Path.Len(), a.Path.Back())
	}
}

func TestCaptureIfAbsentKeepsEarliestState(t *testing.T) {
	fp := footprint.NewSquare(1.0)
	a := NewAgent(0, cell(0, 0), cell(5, 5), fp, 0, 0)

	snaps := snapshots{}
	snaps.captureIfAbsent(a)
	a.Path.Push(cell(1, 0))
	snaps.captureIfAbsent(a) // should be a no-op now

	st := snaps[a.Index]
	if st.SizeBefore != 1 || st.LastCell != cell(0, 0) {
		t.Errorf("second captureIfAbsent should not overwrite the first snapshot, got %+v", st)
	}
}

func TestMergeFirstWriteWins(t *testing.T) {
	dst := snapshots{0: PathState{SizeBefore: 1, LastCell: cell(0, 0)}}
	src := snapshots{0: PathState{SizeBefore: 3, LastCell: cell(2, 0)}, 1: PathState{SizeBefore: 1, LastCell: cell(5, 5)}}

	mergeFirstWriteWins(dst, src)

	if dst[0].SizeBefore != 1 {
		t.Errorf("merge should keep dst's existing entry for agent 0, got %+v", dst[0])
	}
	if _, ok := dst[1]; !ok {
		t.Errorf("merge should add src's entry for agent 1")
	}
}
