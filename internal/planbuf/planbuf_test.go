package planbuf

import (
	"testing"

	"github.com/elektrokombinacija/fspibt-grid/internal/gridmap"
)

func TestPushPopWait(t *testing.T) {
	start := gridmap.Cell{X: 0, Y: 0}
	p := NewPath(start)
	if p.Len() != 1 || p.Front() != start || p.Back() != start {
		t.Fatalf("fresh path should hold only the start cell")
	}

	next := gridmap.Cell{X: 1, Y: 0}
	p.Push(next)
	if p.Len() != 2 || p.Back() != next {
		t.Fatalf("Push should append to the tail")
	}

	p.Pop()
	if p.Len() != 1 || p.Back() != start {
		t.Fatalf("Pop should remove the pushed tail cell")
	}

	p.PushWait()
	if p.Len() != 2 || p.At(1) != start {
		t.Fatalf("PushWait should duplicate the current tail")
	}
}

func TestCommitAdvance(t *testing.T) {
	start := gridmap.Cell{X: 0, Y: 0}
	next := gridmap.Cell{X: 1, Y: 0}
	p := NewPath(start)
	p.Push(next)
	p.CommitAdvance()
	if p.Len() != 1 || p.Front() != next {
		t.Fatalf("CommitAdvance should drop the old front, promoting the next cell")
	}
}

func TestResizeAndRestore(t *testing.T) {
	start := gridmap.Cell{X: 0, Y: 0}
	p := NewPath(start)
	p.Push(gridmap.Cell{X: 1, Y: 0})
	p.Push(gridmap.Cell{X: 2, Y: 0})
	sizeBefore := p.Len()
	snapshotLast := p.Back()

	p.Push(gridmap.Cell{X: 3, Y: 0})
	p.Push(gridmap.Cell{X: 4, Y: 0})

	p.ResizeAndRestore(sizeBefore, snapshotLast)
	if p.Len() != sizeBefore {
		t.Fatalf("ResizeAndRestore should restore length %d, got %d", sizeBefore, p.Len())
	}
	if p.Back() != snapshotLast {
		t.Fatalf("ResizeAndRestore should restore tail to %v, got %v", snapshotLast, p.Back())
	}
}
